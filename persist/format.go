package persist

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies snapshot files (ASCII: "EMB1").
	MagicNumber = 0x454D4231
	// Version is the current file format version.
	Version = 0x00010000
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("payload checksum mismatch")
	ErrUnknownCodec       = errors.New("unknown payload codec")
)

// Compression selects the payload compression scheme.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ErrUnknownCompression indicates a compression byte this build cannot decode.
type ErrUnknownCompression struct {
	Compression Compression
}

func (e *ErrUnknownCompression) Error() string {
	return fmt.Sprintf("unknown compression scheme: %d", uint8(e.Compression))
}
