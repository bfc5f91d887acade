package embset

import (
	"sort"

	"github.com/hupe1980/embset/distance"
)

// MovementScore records how far a member moved between two sets.
type MovementScore struct {
	Name  string
	Score float64
}

// Movement computes the paired distance between the two sets' versions of
// every key present in both, sorted by decreasing movement (ties resolve to
// the receiver's iteration order). Useful for quantifying the effect of an
// algebraic transformation on a set.
func (s *EmbeddingSet) Movement(other *EmbeddingSet, metric distance.Metric) ([]MovementScore, error) {
	fn, err := distance.Provider(metric)
	if err != nil {
		return nil, err
	}

	var out []MovementScore
	for _, k := range s.keys {
		b, ok := other.entries[k]
		if !ok {
			continue
		}
		a := s.entries[k]
		if err := checkDim(a.Dim(), b.Dim()); err != nil {
			return nil, err
		}
		out = append(out, MovementScore{Name: k, Score: fn(a.vector, b.vector)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out, nil
}
