package store

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/forestsum"
	"github.com/hupe1980/forestsum/blobstore"
)

// Manager saves and loads forest snapshots through a BlobStore.
type Manager struct {
	store       blobstore.BlobStore
	logger      *forestsum.Logger
	compression Compression
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager's logger. Defaults to a no-op logger.
func WithLogger(logger *forestsum.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithManagerCompression selects the snapshot compression codec.
func WithManagerCompression(c Compression) ManagerOption {
	return func(m *Manager) {
		m.compression = c
	}
}

// NewManager creates a snapshot manager over the given blob store.
func NewManager(bs blobstore.BlobStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:       bs,
		logger:      forestsum.NoopLogger(),
		compression: CompressionZSTD,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save writes the forest's leaf summaries as a named snapshot blob. The
// blob becomes visible atomically when the write completes.
func (m *Manager) Save(ctx context.Context, name string, forest Forest) error {
	blob, err := m.store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create snapshot blob: %w", err)
	}

	if err := Write(blob, forest, WithCompression(m.compression)); err != nil {
		blob.Close()
		m.logger.ErrorContext(ctx, "snapshot save failed", "name", name, "error", err)
		return err
	}
	if err := blob.Close(); err != nil {
		m.logger.ErrorContext(ctx, "snapshot save failed", "name", name, "error", err)
		return fmt.Errorf("finalize snapshot blob: %w", err)
	}

	m.logger.WithTrees(len(forest)).InfoContext(ctx, "snapshot saved", "name", name)
	return nil
}

// Load reads a named snapshot blob back into a forest.
func (m *Manager) Load(ctx context.Context, name string) (Forest, error) {
	blob, err := m.store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open snapshot blob: %w", err)
	}
	defer blob.Close()

	forest, err := Read(io.NewSectionReader(blob, 0, blob.Size()))
	if err != nil {
		m.logger.ErrorContext(ctx, "snapshot load failed", "name", name, "error", err)
		return nil, err
	}

	m.logger.WithTrees(len(forest)).InfoContext(ctx, "snapshot loaded", "name", name)
	return forest, nil
}
