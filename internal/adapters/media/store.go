// Package media persists uploaded clips on disk, keyed by content digest.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pitchlab/rabona/internal/domain/model"
)

// Sentinel kinds for media store errors.
var (
	ErrWrite = errors.New("media write failed")
)

// File permissions for retained clips and their directory.
const (
	blobFileMode = os.FileMode(0o600)
	blobDirMode  = os.FileMode(0o750)
	blobFileExt  = ".bin"
)

// DirStore writes each blob to <dir>/<digest>.bin. Because the name is the
// content digest, re-writing the same clip is idempotent; a temp-then-rename
// keeps partially written blobs from ever being visible.
type DirStore struct {
	dir string
}

// NewDirStore creates the base directory if needed and returns the store.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, blobDirMode); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrWrite, dir, err)
	}
	return &DirStore{dir: dir}, nil
}

// Write persists one blob and returns the number of bytes written. A blob
// already on disk is left alone.
func (s *DirStore) Write(ctx context.Context, b model.MediaBlob) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if b.Digest == "" {
		return 0, fmt.Errorf("%w: blob has no digest", ErrWrite)
	}

	final := filepath.Join(s.dir, b.Digest+blobFileExt)
	if _, err := os.Stat(final); err == nil {
		return 0, nil
	}

	tmp, err := os.CreateTemp(s.dir, b.Digest+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	n, err := tmp.Write(b.Data)
	if err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Chmod(tmp.Name(), blobFileMode); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return int64(n), nil
}

// Path returns where a digest would be stored. Used by tests and tooling.
func (s *DirStore) Path(digest string) string {
	return filepath.Join(s.dir, digest+blobFileExt)
}
