package store

import "errors"

const (
	// MagicNumber identifies forestsum snapshot files (ASCII: "FRS1").
	MagicNumber = 0x46525331
	// Version is the current snapshot format version (v1.0.0).
	Version = 0x00010000
)

var (
	// ErrInvalidMagic is returned when a snapshot does not start with the
	// expected magic number.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for an unsupported format version.
	ErrInvalidVersion = errors.New("unsupported version")
	// ErrChecksumMismatch is returned when the payload checksum does not
	// match the header.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// FileHeader is the fixed-size header at the start of every snapshot file.
// The payload that follows is the compressed leaf-summary section.
type FileHeader struct {
	Magic       uint32 // 0x46525331 ("FRS1")
	Version     uint32 // File format version
	Compression uint8  // Compression codec of the payload
	Padding     [3]byte
	TreeCount   uint32 // Number of trees in the forest
	PayloadSize uint64 // Length of the compressed payload in bytes
	Checksum    uint32 // CRC32 (IEEE) of the compressed payload
	Reserved    [8]byte
}
