package embset

import (
	"fmt"

	"github.com/hupe1980/embset/distance"
)

// Transformer applies a whole-set transformation, producing a new set.
type Transformer interface {
	Transform(s *EmbeddingSet) (*EmbeddingSet, error)
}

// Transform applies the transformer to the set.
func (s *EmbeddingSet) Transform(t Transformer) (*EmbeddingSet, error) {
	return t.Transform(s)
}

// Normalizer L2-normalizes every member vector. Zero vectors are left
// unchanged.
type Normalizer struct{}

// Transform implements Transformer.
func (Normalizer) Transform(s *EmbeddingSet) (*EmbeddingSet, error) {
	return s.lift(fmt.Sprintf("%s.normalize()", s.label), func(e *Embedding) (*Embedding, error) {
		v := e.Vector()
		distance.NormalizeL2InPlace(v)
		return e.derive(e.name, v), nil
	})
}
