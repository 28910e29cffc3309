package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the BlobStore behavior every implementation must
// share.
func storeContract(t *testing.T, bs BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := bs.Open(ctx, "absent")
	require.ErrorIs(t, err, ErrNotFound)

	w, err := bs.Create(ctx, "blob")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = w.Write([]byte("forest"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	blob, err := bs.Open(ctx, "blob")
	require.NoError(t, err)
	assert.Equal(t, int64(12), blob.Size())

	buf := make([]byte, 6)
	n, err := blob.ReadAt(buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "forest", string(buf))

	// Reads past the end report EOF with whatever was available.
	n, err = blob.ReadAt(buf, 9)
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, blob.Close())

	require.NoError(t, bs.Delete(ctx, "blob"))
	_, err = bs.Open(ctx, "blob")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	bs, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	storeContract(t, bs)
}

func TestRateLimitedStore(t *testing.T) {
	// A generous budget keeps the throttle out of the way; the wrapper
	// must still behave like its inner store.
	storeContract(t, RateLimited(NewMemoryStore(), 1<<20))
}

func TestMemoryStoreOpenSnapshotsContents(t *testing.T) {
	ctx := context.Background()
	bs := NewMemoryStore()

	w, err := bs.Create(ctx, "blob")
	require.NoError(t, err)
	_, err = w.Write([]byte("v1"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	blob, err := bs.Open(ctx, "blob")
	require.NoError(t, err)
	defer blob.Close()

	// Overwriting the blob must not change an already open handle.
	w, err = bs.Create(ctx, "blob")
	require.NoError(t, err)
	_, err = w.Write([]byte("v2!"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	buf := make([]byte, 2)
	_, err = blob.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(buf))
	assert.Equal(t, int64(2), blob.Size())
}

func TestLocalStoreCreateIsAtomic(t *testing.T) {
	ctx := context.Background()
	bs, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	w, err := bs.Create(ctx, "blob")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)

	// Not closed yet: the blob must not be visible.
	_, err = bs.Open(ctx, "blob")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())

	blob, err := bs.Open(ctx, "blob")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(7), blob.Size())
}

func TestLocalStoreMappable(t *testing.T) {
	ctx := context.Background()
	bs, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	w, err := bs.Create(ctx, "blob")
	require.NoError(t, err)
	_, err = w.Write([]byte("mapped"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	blob, err := bs.Open(ctx, "blob")
	require.NoError(t, err)
	defer blob.Close()

	m, ok := blob.(Mappable)
	require.True(t, ok)
	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "mapped", string(data))
}

func TestRateLimitedChunkedWrite(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	bs := RateLimited(inner, 1024)

	w, err := bs.Create(ctx, "blob")
	require.NoError(t, err)

	// Larger than the burst, so the write is split into waited chunks.
	payload := make([]byte, 1536)
	for i := range payload {
		payload[i] = byte(i)
	}
	n, err := w.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	require.NoError(t, w.Close())

	blob, err := inner.Open(ctx, "blob")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(1536), blob.Size())
}
