package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoUsername = errors.New("token carries no username claim")

// usernameClaims are tried in order.
var usernameClaims = []string{"username", "cognito:username", "preferred_username", "sub"}

func (m *Manager) identify(token, source string) (Identity, error) {
	claims, err := m.parse(token)
	if err != nil {
		return Identity{}, err
	}

	var exp *time.Time
	if e, err := claims.GetExpirationTime(); err == nil && e != nil {
		t := e.Time
		if !t.After(m.now()) {
			return Identity{}, fmt.Errorf("token expired at %s", t.Format(time.RFC3339))
		}
		exp = &t
	}

	for _, k := range usernameClaims {
		if v, ok := claims[k].(string); ok && strings.TrimSpace(v) != "" {
			return Identity{Username: strings.TrimSpace(v), Source: source, ExpiresAt: exp}, nil
		}
	}
	return Identity{}, ErrNoUsername
}

// parse verifies the signature when a secret is configured. Without one the
// claims are read as-is; the identity provider is the verifier.
func (m *Manager) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if len(m.Secret) == 0 {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, fmt.Errorf("parse token: %w", err)
		}
		return claims, nil
	}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	return claims, nil
}
