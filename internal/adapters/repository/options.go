// Package repository defines the session store interface and errors.
package repository

import "os"

// FileStoreOption applies a configuration option to the FileStore.
type FileStoreOption func(*FileStore)

// WithFileMode sets the permission bits for persisted session files.
func WithFileMode(mode os.FileMode) FileStoreOption {
	return func(s *FileStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}
