// Package upload holds the file-transfer collaborators used by attach.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/bucketlist/internal/attach"
	"github.com/idilsaglam/bucketlist/internal/retry"
)

// Disk stores uploads below a local root directory. Each item directory holds
// at most one file: a new upload replaces what was there.
type Disk struct {
	Root string
}

var _ attach.Uploader = Disk{}

// Upload copies f to Root/dir/<name> and returns a file:// URL. The new
// file is written beside the destination first, so a failed upload leaves
// the previous image in place.
func (d Disk) Upload(ctx context.Context, dir string, f attach.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", retry.Permanent(err)
	}
	if f.Open == nil {
		return "", retry.Permanent(errors.New("upload: file has no content"))
	}
	rel := filepath.FromSlash(strings.TrimSuffix(dir, "/"))
	if rel == "" || filepath.IsAbs(rel) || filepath.Clean(rel) != rel || strings.HasPrefix(rel, "..") {
		return "", retry.Permanent(fmt.Errorf("upload: invalid path %q", dir))
	}
	destDir := filepath.Join(d.Root, rel)
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	src, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	name := filepath.Base(f.Name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "image"
	}

	tmpDir, err := os.MkdirTemp(parent, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("mkdir temp: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	if err := os.Chmod(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("chmod temp: %w", err)
	}

	if err := copyFile(filepath.Join(tmpDir, name), src); err != nil {
		return "", err
	}
	if err := os.RemoveAll(destDir); err != nil {
		return "", fmt.Errorf("clear previous upload: %w", err)
	}
	if err := os.Rename(tmpDir, destDir); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}

	abs, err := filepath.Abs(filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func copyFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
