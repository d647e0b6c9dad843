// Package storage keeps the binary files behind image and file content items
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/coursehub/backend/internal/apperrors"
	"github.com/google/uuid"
)

// localStorage stores blobs under basePath, one directory per item kind
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// Save writes r under a fresh name in the directory of kind and returns the stored reference,
// e.g. "images/6f1c...e2.png", together with the number of bytes written
func (s *localStorage) Save(kind, filename string, r io.Reader) (string, int64, error) {
	ref := path.Join(kind+"s", GenerateFileName(filepath.Ext(filename)))

	fullPath, err := s.resolve(ref)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create storage directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}

	written, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return ref, written, nil
}

// Open opens a stored blob for reading
func (s *localStorage) Open(ref string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NotFound("file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes a stored blob; a missing blob is not an error
func (s *localStorage) Delete(ref string) error {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps a reference to a path inside basePath, rejecting anything that escapes it
func (s *localStorage) resolve(ref string) (string, error) {
	cleaned := path.Clean("/" + ref)
	if ref == "" || cleaned == "/" || strings.Contains(ref, "..") {
		return "", apperrors.Validation("invalid file reference")
	}
	return filepath.Join(s.basePath, filepath.FromSlash(cleaned)), nil
}

// GenerateFileName returns a UUID-based file name keeping the given extension
func GenerateFileName(extension string) string {
	name := uuid.NewString()
	if extension == "" {
		return name
	}
	if extension[0] != '.' {
		extension = "." + extension
	}
	return name + strings.ToLower(extension)
}
