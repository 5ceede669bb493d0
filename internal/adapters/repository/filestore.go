package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pitchlab/rabona/internal/domain/model"
	"github.com/pitchlab/rabona/pkg/metrics"
)

// Default file permissions for session records and their directory.
const (
	sessionFileMode = os.FileMode(0o600)
	sessionDirMode  = os.FileMode(0o750)
	sessionFileExt  = ".json"
)

// FileStore persists one JSON file per session under a base directory.
// Writes go to a temp file first and are renamed into place, so a crash
// mid-write never leaves a half-written record observable.
type FileStore struct {
	dir      string
	fileMode os.FileMode
}

// NewFileStore creates the base directory if needed and returns the store.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	s := &FileStore{
		dir:      dir,
		fileMode: sessionFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(dir, sessionDirMode); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrWrite, dir, err)
	}
	return s, nil
}

// Create writes the session record atomically.
func (s *FileStore) Create(ctx context.Context, session model.Session) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := validateID(session.ID); err != nil {
		return err
	}

	final := s.path(session.ID)
	if _, err := os.Stat(final); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, session.ID)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, session.ID, err)
	}

	tmp, err := os.CreateTemp(s.dir, session.ID+".tmp-*")
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		// Best effort cleanup; a successful rename leaves nothing behind.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		metrics.RecordStoreError()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Chmod(tmp.Name(), s.fileMode); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	metrics.RecordSessionCreated()
	return nil
}

// Get reads one session record by id.
func (s *FileStore) Get(ctx context.Context, id string) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, fmt.Errorf("session get: %w", err)
	}
	if err := validateID(id); err != nil {
		return model.Session{}, err
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return model.Session{}, fmt.Errorf("session read %s: %w", id, err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return model.Session{}, fmt.Errorf("session decode %s: %w", id, err)
	}
	return session, nil
}

// Count returns the number of persisted session files.
func (s *FileStore) Count(_ context.Context) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), sessionFileExt) {
			n++
		}
	}
	return n
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+sessionFileExt)
}

// validateID rejects ids that could escape the session directory.
func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return nil
}
