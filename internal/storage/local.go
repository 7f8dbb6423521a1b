// Package storage keeps uploaded image blobs keyed by file name.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	apperrors "blogapp/internal/errors"
)

const maxFilenameLength = 200

// Storage persists opaque blobs under a caller-chosen name.
type Storage interface {
	Save(ctx context.Context, name string, data []byte) error
	Exists(ctx context.Context, name string) (bool, error)
}

// LocalStorage stores blobs as files in one directory.
type LocalStorage struct {
	dir string
}

var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage creates dir if needed and returns a store rooted there.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir returns the directory blobs are written to.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes data under name. Existing blobs are never overwritten.
func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) error {
	clean, err := SanitizeFilename(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.dir, clean)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return apperrors.ErrFileExists
		}
		return fmt.Errorf("create blob: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close blob: %w", err)
	}
	return nil
}

// Exists reports whether a blob named name is stored.
func (s *LocalStorage) Exists(ctx context.Context, name string) (bool, error) {
	clean, err := SanitizeFilename(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(s.dir, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// SanitizeFilename accepts a bare file name only: no directories, no
// traversal, no hidden files, no control characters.
func SanitizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxFilenameLength {
		return "", apperrors.ErrInvalidFilename
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", apperrors.ErrInvalidFilename
	}
	if strings.HasPrefix(name, ".") {
		return "", apperrors.ErrInvalidFilename
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", apperrors.ErrInvalidFilename
		}
	}
	return name, nil
}
