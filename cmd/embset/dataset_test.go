package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/embset"
	"github.com/hupe1980/embset/persist"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDatasetJSON(t *testing.T) {
	path := writeFile(t, "words.json", `{
		"label": "words",
		"embeddings": [
			{"name": "foo", "vector": [0.1, 0.3]},
			{"name": "bar", "vector": [0.7, 0.2]}
		]
	}`)

	set, err := loadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, "words", set.Label())
	assert.Equal(t, []string{"foo", "bar"}, set.Names())
	assert.Equal(t, 2, set.Dim())
}

func TestLoadDatasetYAML(t *testing.T) {
	path := writeFile(t, "words.yaml", `
label: words
embeddings:
  - name: foo
    vector: [0.1, 0.3]
  - name: bar
    vector: [0.7, 0.2]
`)

	set, err := loadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, "words", set.Label())
	assert.Equal(t, []string{"foo", "bar"}, set.Names())
}

func TestLoadDatasetSnapshot(t *testing.T) {
	set, err := embset.New("words",
		embset.NewEmbedding("foo", []float64{0.1, 0.3}),
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "words.emb")
	require.NoError(t, persist.Save(path, set))

	got, err := loadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, set.Names(), got.Names())
}

func TestLoadDatasetErrors(t *testing.T) {
	t.Run("UnsupportedExtension", func(t *testing.T) {
		path := writeFile(t, "words.csv", "foo,1,0")
		_, err := loadDataset(path)
		require.Error(t, err)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{
			"label": "bad",
			"embeddings": [
				{"name": "foo", "vector": [1]},
				{"name": "bar", "vector": [1, 2]}
			]
		}`)

		_, err := loadDataset(path)
		var dm *embset.ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := loadDataset(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}
