package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/embset"
	"github.com/hupe1980/embset/codec"
)

type setSnapshot struct {
	Label   string          `json:"label"`
	Entries []entrySnapshot `json:"entries"`
}

type entrySnapshot struct {
	Key        string         `json:"key"`
	Name       string         `json:"name"`
	Original   string         `json:"original,omitempty"`
	Vector     []float64      `json:"vector"`
	Properties map[string]any `json:"properties,omitempty"`
}

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures snapshot writing. Loading needs no options: snapshots
// are self-describing.
type Option func(*options)

// WithCodec configures the payload codec. If nil is passed, codec.Default is
// used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the payload compression scheme.
// Defaults to CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// Save writes a snapshot of the set to path, replacing any existing file.
func Save(path string, set *embset.EmbeddingSet, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := Write(w, set, opts...); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Load reads a snapshot from path.
func Load(path string) (*embset.EmbeddingSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()

	return Read(bufio.NewReader(f))
}

// Write writes a snapshot of the set to w.
//
// Frame layout (little endian):
//
//	[magic u32][version u32]
//	[codec name len u8][codec name]
//	[compression u8][raw payload len u32]
//	[payload len u32][payload][crc32 u32]
func Write(w io.Writer, set *embset.EmbeddingSet, opts ...Option) error {
	o := options{
		codec:       codec.Default,
		compression: CompressionNone,
	}
	for _, opt := range opts {
		opt(&o)
	}

	snap := setSnapshot{
		Label:   set.Label(),
		Entries: make([]entrySnapshot, 0, set.Len()),
	}

	embeddings := set.Embeddings()
	for i, key := range set.Names() {
		e := embeddings[i]
		snap.Entries = append(snap.Entries, entrySnapshot{
			Key:        key,
			Name:       e.Name(),
			Original:   e.OriginalLabel(),
			Vector:     e.Vector(),
			Properties: e.Properties(),
		})
	}

	raw, err := o.codec.Marshal(snap)
	if err != nil {
		return fmt.Errorf("codec %s marshal failed: %w", o.codec.Name(), err)
	}

	payload, err := compress(raw, o.compression)
	if err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(MagicNumber)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(Version)); err != nil {
		return err
	}

	name := o.codec.Name()
	if err := binary.Write(w, binary.LittleEndian, uint8(len(name))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint8(o.compression)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(raw))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(payload))); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}

	return binary.Write(w, binary.LittleEndian, crc32.ChecksumIEEE(payload))
}

// Read reads a snapshot from r and reconstructs the set.
func Read(r io.Reader) (*embset.EmbeddingSet, error) {
	var magic, version uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != MagicNumber {
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidMagic, magic)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: 0x%08X", ErrUnsupportedVersion, version)
	}

	var nameLen uint8
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, err
	}
	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, err
	}

	c, ok := codec.ByName(string(nameBuf))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, string(nameBuf))
	}

	var compression uint8
	if err := binary.Read(r, binary.LittleEndian, &compression); err != nil {
		return nil, err
	}

	var rawLen, payloadLen uint32
	if err := binary.Read(r, binary.LittleEndian, &rawLen); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &payloadLen); err != nil {
		return nil, err
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	var checksum uint32
	if err := binary.Read(r, binary.LittleEndian, &checksum); err != nil {
		return nil, err
	}
	if checksum != crc32.ChecksumIEEE(payload) {
		return nil, ErrChecksumMismatch
	}

	raw, err := decompress(payload, Compression(compression), int(rawLen))
	if err != nil {
		return nil, err
	}

	var snap setSnapshot
	if err := c.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("codec %s unmarshal failed: %w", c.Name(), err)
	}

	keys := make([]string, 0, len(snap.Entries))
	embeddings := make([]*embset.Embedding, 0, len(snap.Entries))
	for _, entry := range snap.Entries {
		keys = append(keys, entry.Key)
		embeddings = append(embeddings, embset.NewEmbedding(entry.Name, entry.Vector,
			embset.WithOriginalLabel(entry.Original),
			embset.WithProperties(entry.Properties),
		))
	}

	return embset.Restore(snap.Label, keys, embeddings)
}

func compress(raw []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return raw, nil
	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(raw))
		dst := make([]byte, bound)
		n, err := lz4.CompressBlock(raw, dst, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if n == 0 {
			// Incompressible data is stored raw with a length marker that
			// matches, letting decompress pass it through.
			return raw, nil
		}
		return dst[:n], nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(raw, nil), nil
	default:
		return nil, &ErrUnknownCompression{Compression: c}
	}
}

func decompress(payload []byte, c Compression, rawLen int) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		if len(payload) == rawLen {
			// Stored raw: block compression did not shrink the payload.
			return payload, nil
		}
		dst := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return dst[:n], nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer dec.Close()
		return dec.DecodeAll(payload, nil)
	default:
		return nil, &ErrUnknownCompression{Compression: c}
	}
}
