// Package store persists the leaf summaries of a trained forest in a
// compact binary snapshot: a fixed header, then one compressed payload
// holding every tree's leaf SummarySets. The snapshot is self-contained;
// reloading it needs no other collaborator.
package store

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/forestsum"
)

// Forest is the leaf summaries of a trained forest: one slice of leaf
// SummarySets per tree, in leaf order.
type Forest [][]*forestsum.SummarySet

// Options configures snapshot writing.
type Options struct {
	// Compression is the payload codec. Defaults to CompressionZSTD.
	Compression Compression
}

// Option mutates Options.
type Option func(*Options)

// WithCompression selects the payload compression codec.
func WithCompression(c Compression) Option {
	return func(o *Options) {
		o.Compression = c
	}
}

// Write serializes the forest's leaf summaries to w.
func Write(w io.Writer, forest Forest, opts ...Option) error {
	o := Options{Compression: CompressionZSTD}
	for _, opt := range opts {
		opt(&o)
	}

	var payload []byte
	for _, leaves := range forest {
		payload = binary.LittleEndian.AppendUint32(payload, uint32(len(leaves)))
		for _, set := range leaves {
			payload = set.AppendBinary(payload)
		}
	}

	compressed, err := compressPayload(payload, o.Compression)
	if err != nil {
		return err
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(o.Compression),
		TreeCount:   uint32(len(forest)),
		PayloadSize: uint64(len(compressed)),
		Checksum:    crc32.ChecksumIEEE(compressed),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("write snapshot payload: %w", err)
	}
	return nil
}

// Read loads a forest snapshot written by Write.
func Read(r io.Reader) (Forest, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, header.Version)
	}

	compressed := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("read snapshot payload: %w", err)
	}
	if sum := crc32.ChecksumIEEE(compressed); sum != header.Checksum {
		return nil, fmt.Errorf("%w: expected 0x%08x, got 0x%08x",
			ErrChecksumMismatch, header.Checksum, sum)
	}

	payload, err := decompressPayload(compressed, Compression(header.Compression))
	if err != nil {
		return nil, err
	}

	forest := make(Forest, header.TreeCount)
	for t := range forest {
		if len(payload) < 4 {
			return nil, fmt.Errorf("tree %d: %w", t, forestsum.ErrTruncatedData)
		}
		leafCount := int(binary.LittleEndian.Uint32(payload))
		payload = payload[4:]

		leaves := make([]*forestsum.SummarySet, leafCount)
		for l := range leaves {
			set, n, err := forestsum.DecodeSummarySet(payload)
			if err != nil {
				return nil, fmt.Errorf("tree %d leaf %d: %w", t, l, err)
			}
			leaves[l] = set
			payload = payload[n:]
		}
		forest[t] = leaves
	}
	return forest, nil
}
