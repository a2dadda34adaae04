// Package auth resolves the signed-in user from a stored or environment
// token. Credentials are issued by the managed identity provider; this
// package only keeps the token and reads the identity out of it.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	credFileName = "credentials.json"
	tokenEnv     = "BUCKETLIST_TOKEN"
)

var ErrNotLoggedIn = errors.New("not logged in (run `bucketlist auth login <token>`)")

type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // from the JWT exp claim
}

// Identity is the signed-in user.
type Identity struct {
	Username  string
	Source    string
	ExpiresAt *time.Time
}

// Manager reads and writes credentials under Dir. Secret, when set, is used
// to verify token signatures.
type Manager struct {
	Dir    string
	Secret []byte
	Now    func() time.Time
}

// DefaultDir is ~/.bucketlist.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".bucketlist"), nil
}

func (m *Manager) credFilePath() string {
	return filepath.Join(m.Dir, credFileName)
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// GetToken returns the active token, or nil when not logged in.
func (m *Manager) GetToken() (*TokenInfo, error) {
	// 1) env override
	env := strings.TrimSpace(os.Getenv(tokenEnv))
	if env != "" {
		return &TokenInfo{Token: stripBearer(env), Source: "env"}, nil
	}

	// 2) file
	b, err := os.ReadFile(m.credFilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	ti.Token = stripBearer(ti.Token)
	return &ti, nil
}

// Login validates token and saves it for later sessions.
func (m *Manager) Login(token string) (Identity, error) {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return Identity{}, fmt.Errorf("empty token")
	}
	id, err := m.identify(token, "file")
	if err != nil {
		return Identity{}, err
	}
	// ensure the credentials dir exists with 0700
	if err := os.MkdirAll(m.Dir, 0o700); err != nil {
		return Identity{}, fmt.Errorf("mkdir: %w", err)
	}
	ti := TokenInfo{
		Token:     token,
		Source:    "file",
		CreatedAt: m.now(),
		ExpiresAt: id.ExpiresAt,
	}
	b, err := json.MarshalIndent(ti, "", "  ")
	if err != nil {
		return Identity{}, fmt.Errorf("marshal: %w", err)
	}
	// write with 0600 (owner-only)
	if err := os.WriteFile(m.credFilePath(), b, 0o600); err != nil {
		return Identity{}, fmt.Errorf("write: %w", err)
	}
	return id, nil
}

// Logout is the sign-out action: it forgets the stored token.
func (m *Manager) Logout() error {
	if err := os.Remove(m.credFilePath()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Current returns the signed-in identity.
func (m *Manager) Current() (Identity, error) {
	ti, err := m.GetToken()
	if err != nil {
		return Identity{}, err
	}
	if ti == nil {
		return Identity{}, ErrNotLoggedIn
	}
	return m.identify(ti.Token, ti.Source)
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
