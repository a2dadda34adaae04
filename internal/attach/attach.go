// Package attach binds uploaded images to bucket-list items.
//
// Every image lives under a path derived from the owning user and the item, so
// two items never share a location and re-deriving the path for the same pair
// always yields the same place (uploading again replaces the image).
package attach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/idilsaglam/bucketlist/internal/retry"
)

// Prefix is the storage root all image paths live under.
const Prefix = "bucket-list-images"

// DefaultMaxBytes caps a single image.
const DefaultMaxBytes int64 = 10 * 1024 * 1024

var (
	ErrMissingUser = errors.New("attach: missing user id")
	ErrMissingItem = errors.New("attach: missing item id")
	ErrNotImage    = errors.New("attach: file is not an image")
	ErrTooLarge    = errors.New("attach: file too large")
)

// UploadError reports a failed transfer for one item.
type UploadError struct {
	ItemID string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload image for item %s: %v", e.ItemID, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Path returns the storage prefix for the (user, item) pair, with a trailing
// slash. Segments are escaped so ids containing '/' cannot collide, and ids
// made only of dots are percent-encoded so they never resolve to a parent.
// Empty ids produce an empty segment; Attach rejects them before this point.
func Path(userID, itemID string) string {
	return Prefix + "/" + segment(userID) + "/" + segment(itemID) + "/"
}

func segment(id string) string {
	s := url.PathEscape(id)
	if s != "" && strings.Trim(s, ".") == "" {
		s = strings.ReplaceAll(s, ".", "%2E")
	}
	return s
}

// File is a single file picked by the user.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FromPath describes a file on the local disk.
func FromPath(p string) (File, error) {
	p = filepath.Clean(strings.TrimSpace(p))
	st, err := os.Stat(p)
	if err != nil {
		return File{}, err
	}
	if st.IsDir() {
		return File{}, fmt.Errorf("attach: %s is a directory", p)
	}
	return File{
		Name: filepath.Base(p),
		Size: st.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(p) },
	}, nil
}

// ContentType guesses the MIME type from the file extension.
func (f File) ContentType() string {
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name)))
}

// Uploader transfers one file below dir and returns a resolvable reference.
type Uploader interface {
	Upload(ctx context.Context, dir string, f File) (string, error)
}

// Binder validates image files and hands them to the Uploader at the path
// derived for the item.
type Binder struct {
	up       Uploader
	policy   retry.Policy
	maxBytes int64
	log      *zap.Logger
}

type Option func(*Binder)

func WithRetry(p retry.Policy) Option {
	return func(b *Binder) { b.policy = p }
}

func WithMaxBytes(n int64) Option {
	return func(b *Binder) {
		if n > 0 {
			b.maxBytes = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Binder) { b.log = l }
}

func NewBinder(up Uploader, opts ...Option) *Binder {
	b := &Binder{
		up:       up,
		policy:   retry.Once,
		maxBytes: DefaultMaxBytes,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Attach uploads f for the item and returns the reference to store on it.
func (b *Binder) Attach(ctx context.Context, userID, itemID string, f File) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrMissingUser
	}
	if strings.TrimSpace(itemID) == "" {
		return "", ErrMissingItem
	}
	if ct := f.ContentType(); !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, f.Name)
	}
	if f.Size > b.maxBytes {
		return "", fmt.Errorf("%w (%d bytes > %d bytes)", ErrTooLarge, f.Size, b.maxBytes)
	}

	dir := Path(userID, itemID)
	ref, err := retry.Do(ctx, b.policy, func(ctx context.Context) (string, error) {
		ref, err := b.up.Upload(ctx, dir, f)
		if err != nil {
			b.log.Warn("image upload attempt failed",
				zap.String("item_id", itemID),
				zap.String("path", dir),
				zap.Error(err),
			)
		}
		return ref, err
	})
	if err != nil {
		return "", &UploadError{ItemID: itemID, Err: err}
	}

	b.log.Info("image uploaded",
		zap.String("item_id", itemID),
		zap.String("path", dir),
		zap.String("ref", ref),
	)
	return ref, nil
}
