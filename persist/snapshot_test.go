package persist

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/embset"
)

func newTestSet(t *testing.T) *embset.EmbeddingSet {
	t.Helper()

	set, err := embset.New("words",
		embset.NewEmbedding("foo", []float64{0.1, 0.3}, embset.WithProperties(map[string]any{"group": "one"})),
		embset.NewEmbedding("bar", []float64{0.7, 0.2}),
		embset.NewEmbedding("buz", []float64{0.1, 0.9}),
	)
	require.NoError(t, err)

	return set
}

func requireSetEqual(t *testing.T, want, got *embset.EmbeddingSet) {
	t.Helper()

	assert.Equal(t, want.Label(), got.Label())
	assert.Equal(t, want.Names(), got.Names())

	wantNames, wantMatrix := want.NamedMatrix()
	gotNames, gotMatrix := got.NamedMatrix()
	assert.Equal(t, wantNames, gotNames)
	for i := range wantMatrix {
		assert.InDeltaSlice(t, wantMatrix[i], gotMatrix[i], 1e-12)
	}
}

func TestRoundTrip(t *testing.T) {
	set := newTestSet(t)

	tests := []struct {
		name        string
		compression Compression
	}{
		{"None", CompressionNone},
		{"LZ4", CompressionLZ4},
		{"Zstd", CompressionZstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, set, WithCompression(tt.compression)))

			got, err := Read(&buf)
			require.NoError(t, err)
			requireSetEqual(t, set, got)

			// Properties survive the round trip.
			e, err := got.Get("foo")
			require.NoError(t, err)
			v, ok := e.Property("group")
			require.True(t, ok)
			assert.Equal(t, "one", v)
		})
	}
}

func TestRoundTripDerivedKeys(t *testing.T) {
	// After an algebraic operation, map keys and embedding names diverge;
	// both must survive persistence.
	set := newTestSet(t)
	shifted, err := set.Add(embset.NewEmbedding("shift", []float64{1, 1}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, shifted))

	got, err := Read(&buf)
	require.NoError(t, err)
	requireSetEqual(t, shifted, got)

	e, err := got.Get("foo")
	require.NoError(t, err)
	assert.Equal(t, "(foo + shift)", e.Name())
	assert.Equal(t, "foo", e.OriginalLabel())
}

func TestSaveLoadFile(t *testing.T) {
	set := newTestSet(t)
	path := filepath.Join(t.TempDir(), "words.emb")

	require.NoError(t, Save(path, set, WithCompression(CompressionZstd)))

	got, err := Load(path)
	require.NoError(t, err)
	requireSetEqual(t, set, got)
}

func TestReadErrors(t *testing.T) {
	set := newTestSet(t)

	encode := func(t *testing.T, opts ...Option) []byte {
		t.Helper()
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, set, opts...))
		return buf.Bytes()
	}

	t.Run("InvalidMagic", func(t *testing.T) {
		data := encode(t)
		data[0] ^= 0xFF

		_, err := Read(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		data := encode(t)
		data[4] ^= 0xFF

		_, err := Read(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("CorruptPayload", func(t *testing.T) {
		data := encode(t)
		data[len(data)-8] ^= 0xFF // flip a payload byte, checksum no longer matches

		_, err := Read(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("Truncated", func(t *testing.T) {
		data := encode(t)

		_, err := Read(bytes.NewReader(data[:len(data)-6]))
		require.Error(t, err)
	})
}
