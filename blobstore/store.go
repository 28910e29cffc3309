package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for storing immutable forest snapshots.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a blob for writing. The blob's contents become
	// visible atomically when Close returns.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Delete removes a blob.
	Delete(ctx context.Context, name string) error
}

// Blob is a read-only handle to a stored snapshot.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a write handle for a new blob. Data is not guaranteed
// visible to readers until Close succeeds.
type WritableBlob interface {
	io.Writer
	io.Closer
}

// Mappable is an optional interface for Blobs backed by memory-mapped
// files.
type Mappable interface {
	// Bytes returns the underlying byte slice, valid until the Blob is
	// closed. This is a zero-copy operation if supported.
	Bytes() ([]byte, error)
}
