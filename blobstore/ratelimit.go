package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a BlobStore so that blob writes are throttled to
// bytesPerSec. Snapshot uploads from a training job can otherwise saturate
// the link shared with serving traffic.
//
// Reads are not throttled; they are mmap-backed on the local store and
// already range-limited on remote ones.
func RateLimited(inner BlobStore, bytesPerSec int) BlobStore {
	return &rateLimitedStore{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}
}

type rateLimitedStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

func (s *rateLimitedStore) Open(ctx context.Context, name string) (Blob, error) {
	return s.inner.Open(ctx, name)
}

func (s *rateLimitedStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &rateLimitedBlob{ctx: ctx, inner: w, limiter: s.limiter}, nil
}

func (s *rateLimitedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

type rateLimitedBlob struct {
	ctx     context.Context
	inner   WritableBlob
	limiter *rate.Limiter
}

func (w *rateLimitedBlob) Write(p []byte) (int, error) {
	// WaitN caps n at the limiter burst; feed large writes in chunks.
	burst := w.limiter.Burst()
	for off := 0; off < len(p); off += burst {
		end := off + burst
		if end > len(p) {
			end = len(p)
		}
		if err := w.limiter.WaitN(w.ctx, end-off); err != nil {
			return off, err
		}
		if n, err := w.inner.Write(p[off:end]); err != nil {
			return off + n, err
		}
	}
	return len(p), nil
}

func (w *rateLimitedBlob) Close() error {
	return w.inner.Close()
}
