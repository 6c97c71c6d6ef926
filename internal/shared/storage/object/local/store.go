package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"applicant-tracker/internal/shared/storage/object"
	"applicant-tracker/internal/shared/util"
)

// Store implements BlobStore on a local folder.
type Store struct {
	baseDir string
}

// New creates a new local blob store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Dir returns the folder blobs are written to.
func (s *Store) Dir() string {
	return s.baseDir
}

// Bootstrap creates the upload folder and its parents if absent.
func (s *Store) Bootstrap(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.baseDir, err)
	}
	return nil
}

// Save writes the reader to <baseDir>/<sanitized name>, overwriting silently.
func (s *Store) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error) {
	sanitizedName, err := util.SecureFilename(fileName)
	if err != nil {
		return "", 0, fmt.Errorf("sanitize file name: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	fullPath := filepath.Join(s.baseDir, sanitizedName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("write body: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("close file: %w", err)
	}

	return fullPath, written, nil
}

// Open opens a stored blob for reading.
func (s *Store) Open(ctx context.Context, fileName string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sanitizedName, err := util.SecureFilename(fileName)
	if err != nil {
		return nil, object.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.baseDir, sanitizedName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, object.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

var _ object.BlobStore = (*Store)(nil)
