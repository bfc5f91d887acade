package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/embset"
)

func newTestSet(t *testing.T) *embset.EmbeddingSet {
	t.Helper()

	set, err := embset.New("animals",
		embset.NewEmbedding("cat", []float64{1, 0}, embset.WithProperties(map[string]any{"kind": "mammal", "legs": 4})),
		embset.NewEmbedding("dog", []float64{0, 1}, embset.WithProperties(map[string]any{"kind": "mammal", "legs": 4})),
		embset.NewEmbedding("hen", []float64{1, 1}, embset.WithProperties(map[string]any{"kind": "bird", "legs": 2})),
		embset.NewEmbedding("rock", []float64{0, 0}),
	)
	require.NoError(t, err)

	return set
}

func TestLookup(t *testing.T) {
	ix := Build(newTestSet(t), "kind", "legs")

	assert.Equal(t, []string{"kind", "legs"}, ix.Keys())
	assert.Equal(t, 2, ix.Cardinality("kind", "mammal"))
	assert.Equal(t, 1, ix.Cardinality("kind", "bird"))
	assert.Equal(t, 0, ix.Cardinality("kind", "fish"))

	mammals, err := ix.Lookup("kind", "mammal")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, mammals.Names())

	t.Run("NoMatch", func(t *testing.T) {
		fish, err := ix.Lookup("kind", "fish")
		require.NoError(t, err)
		assert.Equal(t, 0, fish.Len())
	})

	t.Run("UnindexedKey", func(t *testing.T) {
		_, err := ix.Lookup("color", "red")
		require.Error(t, err)
	})

	t.Run("MissingPropertyMembersExcluded", func(t *testing.T) {
		// "rock" carries no properties and never matches.
		all, err := ix.Lookup("legs", 4)
		require.NoError(t, err)
		assert.NotContains(t, all.Names(), "rock")
	})
}

func TestLookupAll(t *testing.T) {
	ix := Build(newTestSet(t), "kind", "legs")

	out, err := ix.LookupAll(map[string]any{"kind": "mammal", "legs": 4})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, out.Names())

	t.Run("ConflictingClauses", func(t *testing.T) {
		out, err := ix.LookupAll(map[string]any{"kind": "bird", "legs": 4})
		require.NoError(t, err)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("EmptyClauses", func(t *testing.T) {
		out, err := ix.LookupAll(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Len())
	})
}
