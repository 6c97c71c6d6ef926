package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when no blob exists under the given name.
var ErrNotFound = errors.New("object not found")

// BlobStore saves uploaded files under their sanitized name and serves them back.
type BlobStore interface {
	// Bootstrap ensures the destination exists. It is safe to call repeatedly.
	Bootstrap(ctx context.Context) error
	// Save writes r under the sanitized form of fileName, replacing any
	// existing blob of that name, and returns the path reference to record.
	Save(ctx context.Context, fileName string, r io.Reader) (path string, sizeBytes int64, err error)
	// Open reads back a blob by its (sanitized) file name.
	Open(ctx context.Context, fileName string) (io.ReadCloser, error)
}
