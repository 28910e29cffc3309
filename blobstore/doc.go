// Package blobstore provides storage abstraction for forest snapshots.
//
// BlobStore is the interface for reading and writing snapshot blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap-backed reads
//   - MemoryStore: in-memory store for tests
//   - minio.Store: MinIO-compatible object storage
//   - s3.Store: Amazon S3 with streamed uploads
//
// Wrap any store with RateLimited to cap transfer bandwidth.
package blobstore
