package embset

import (
	"fmt"
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/embset/distance"
)

// DefaultLabel is used for sets constructed without an explicit label.
const DefaultLabel = "EmbSet"

// EmbeddingSet is a named, deduplicated mapping of keys to embeddings sharing
// one fixed dimension.
//
// Iteration order is the insertion order of the keys and is deterministic.
// Sets are immutable: every operation returns a new set and never modifies
// the receiver. Derived sets carry a label describing the operation chain
// that produced them.
type EmbeddingSet struct {
	label   string
	keys    []string
	entries map[string]*Embedding
}

// New creates a set from a list of embeddings keyed by their names.
// A repeated name fails with ErrDuplicateName; entries of differing dimension
// fail with ErrDimensionMismatch.
func New(label string, embeddings ...*Embedding) (*EmbeddingSet, error) {
	if label == "" {
		label = DefaultLabel
	}

	s := &EmbeddingSet{
		label:   label,
		keys:    make([]string, 0, len(embeddings)),
		entries: make(map[string]*Embedding, len(embeddings)),
	}

	for _, e := range embeddings {
		if _, ok := s.entries[e.name]; ok {
			return nil, &ErrDuplicateName{Name: e.name}
		}
		if err := s.checkEntryDim(e); err != nil {
			return nil, err
		}
		s.keys = append(s.keys, e.name)
		s.entries[e.name] = e
	}

	return s, nil
}

// FromMapping creates a set from an explicit key-to-embedding mapping.
// Keys are taken as-is (they may differ from the embedding names after
// algebraic operations) and are ordered lexicographically for determinism.
func FromMapping(label string, entries map[string]*Embedding) (*EmbeddingSet, error) {
	if label == "" {
		label = DefaultLabel
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := &EmbeddingSet{
		label:   label,
		keys:    keys,
		entries: make(map[string]*Embedding, len(entries)),
	}

	dim := -1
	for _, k := range keys {
		e := entries[k]
		if dim < 0 {
			dim = e.Dim()
		} else if err := checkDim(dim, e.Dim()); err != nil {
			return nil, err
		}
		s.entries[k] = e
	}

	return s, nil
}

// FromNamesAndVectors creates a set from parallel slices of names and raw
// vectors. Unequal lengths fail with ErrLengthMismatch. A repeated name
// resolves last-write-wins, mirroring mapping-union semantics.
func FromNamesAndVectors(label string, names []string, vectors [][]float64) (*EmbeddingSet, error) {
	if len(names) != len(vectors) {
		return nil, &ErrLengthMismatch{Names: len(names), Vectors: len(vectors)}
	}

	if label == "" {
		label = DefaultLabel
	}

	s := &EmbeddingSet{
		label:   label,
		keys:    make([]string, 0, len(names)),
		entries: make(map[string]*Embedding, len(names)),
	}

	for i, name := range names {
		e := NewEmbedding(name, vectors[i])
		if err := s.checkEntryDim(e); err != nil {
			return nil, err
		}
		if _, ok := s.entries[name]; !ok {
			s.keys = append(s.keys, name)
		}
		s.entries[name] = e
	}

	return s, nil
}

// Restore reconstructs a set from explicit keys and embeddings in key order.
// It is the constructor used by snapshot loading, where keys and embedding
// names may legitimately differ. Keys must be unique and embeddings must
// share one dimension.
func Restore(label string, keys []string, embeddings []*Embedding) (*EmbeddingSet, error) {
	if len(keys) != len(embeddings) {
		return nil, &ErrLengthMismatch{Names: len(keys), Vectors: len(embeddings)}
	}

	if label == "" {
		label = DefaultLabel
	}

	s := &EmbeddingSet{
		label:   label,
		keys:    make([]string, 0, len(keys)),
		entries: make(map[string]*Embedding, len(keys)),
	}

	for i, k := range keys {
		if _, ok := s.entries[k]; ok {
			return nil, &ErrDuplicateName{Name: k}
		}
		if err := s.checkEntryDim(embeddings[i]); err != nil {
			return nil, err
		}
		s.keys = append(s.keys, k)
		s.entries[k] = embeddings[i]
	}

	return s, nil
}

func (s *EmbeddingSet) checkEntryDim(e *Embedding) error {
	if len(s.keys) == 0 {
		return nil
	}
	return checkDim(s.Dim(), e.Dim())
}

// Label returns the set label.
func (s *EmbeddingSet) Label() string { return s.label }

// Len returns the number of members.
func (s *EmbeddingSet) Len() int { return len(s.keys) }

// Dim returns the shared vector dimension, or 0 for an empty set.
func (s *EmbeddingSet) Dim() int {
	if len(s.keys) == 0 {
		return 0
	}
	return s.entries[s.keys[0]].Dim()
}

// Names returns the member keys in iteration order.
func (s *EmbeddingSet) Names() []string {
	return slices.Clone(s.keys)
}

// Contains reports whether a key is present in the set.
func (s *EmbeddingSet) Contains(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Get returns the embedding stored under the given key.
// Returns ErrUnknownName when the key is absent.
func (s *EmbeddingSet) Get(name string) (*Embedding, error) {
	e, ok := s.entries[name]
	if !ok {
		return nil, &ErrUnknownName{Name: name}
	}
	return e, nil
}

// Embeddings returns the members in iteration order.
func (s *EmbeddingSet) Embeddings() []*Embedding {
	out := make([]*Embedding, len(s.keys))
	for i, k := range s.keys {
		out[i] = s.entries[k]
	}
	return out
}

// Subset returns a new set containing only the given keys, in the given
// order. Returns ErrUnknownName for an absent key.
func (s *EmbeddingSet) Subset(names ...string) (*EmbeddingSet, error) {
	out := &EmbeddingSet{
		label:   fmt.Sprintf("%s.subset(%d)", s.label, len(names)),
		keys:    make([]string, 0, len(names)),
		entries: make(map[string]*Embedding, len(names)),
	}

	for _, name := range names {
		e, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		if _, ok := out.entries[name]; !ok {
			out.keys = append(out.keys, name)
		}
		out.entries[name] = e
	}

	return out, nil
}

func (s *EmbeddingSet) String() string { return s.label }

// lift applies fn to every member in parallel and assembles a new set under
// the given label. Results are written to index-addressed slots, so the
// output iteration order matches the receiver regardless of scheduling.
func (s *EmbeddingSet) lift(label string, fn func(*Embedding) (*Embedding, error)) (*EmbeddingSet, error) {
	results := make([]*Embedding, len(s.keys))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, k := range s.keys {
		i, k := i, k
		g.Go(func() error {
			e, err := fn(s.entries[k])
			if err != nil {
				return err
			}
			results[i] = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &EmbeddingSet{
		label:   label,
		keys:    slices.Clone(s.keys),
		entries: make(map[string]*Embedding, len(s.keys)),
	}
	for i, k := range out.keys {
		out.entries[k] = results[i]
	}

	return out, nil
}

// Add adds the embedding to every member.
func (s *EmbeddingSet) Add(other *Embedding) (*EmbeddingSet, error) {
	return s.lift(fmt.Sprintf("(%s + %s)", s.label, other.name), func(e *Embedding) (*Embedding, error) {
		return e.Add(other)
	})
}

// Sub subtracts the embedding from every member.
func (s *EmbeddingSet) Sub(other *Embedding) (*EmbeddingSet, error) {
	return s.lift(fmt.Sprintf("(%s - %s)", s.label, other.name), func(e *Embedding) (*Embedding, error) {
		return e.Sub(other)
	})
}

// ProjectOnto projects every member onto the embedding.
func (s *EmbeddingSet) ProjectOnto(other *Embedding) (*EmbeddingSet, error) {
	return s.lift(fmt.Sprintf("(%s >> %s)", s.label, other.name), func(e *Embedding) (*Embedding, error) {
		return e.ProjectOnto(other)
	})
}

// OrthogonalTo makes every member orthogonal to the embedding.
func (s *EmbeddingSet) OrthogonalTo(other *Embedding) (*EmbeddingSet, error) {
	return s.lift(fmt.Sprintf("(%s | %s)", s.label, other.name), func(e *Embedding) (*Embedding, error) {
		return e.OrthogonalTo(other)
	})
}

// OrthogonalToSpan projects every member away from the entire subspace
// spanned by the members of other, not merely away from each vector
// independently.
//
// An orthogonal basis is built from other's members via Gram-Schmidt in
// iteration order. An intermediate basis vector with zero norm (one that lies
// fully in the span of its predecessors) contributes no direction and is
// skipped. A basis that degenerates entirely leaves the set unchanged apart
// from its label.
func (s *EmbeddingSet) OrthogonalToSpan(other *EmbeddingSet) (*EmbeddingSet, error) {
	if s.Len() > 0 && other.Len() > 0 {
		if err := checkDim(s.Dim(), other.Dim()); err != nil {
			return nil, err
		}
	}

	var basis []*Embedding
	for _, v := range other.Embeddings() {
		u := v
		for _, b := range basis {
			next, err := u.OrthogonalTo(b)
			if err != nil {
				return nil, err
			}
			u = next
		}
		if distance.Dot(u.vector, u.vector) == 0 {
			if other.Len() == 1 {
				// A sole degenerate operand keeps the single-vector contract.
				return nil, fmt.Errorf("%w: cannot orthogonalize against %q", ErrZeroVector, v.name)
			}
			// Lies in the span of the previous vectors.
			continue
		}
		basis = append(basis, u)
	}

	label := fmt.Sprintf("(%s | %s)", s.label, other.label)

	out := s
	for _, u := range basis {
		next, err := out.OrthogonalTo(u)
		if err != nil {
			return nil, err
		}
		out = next
	}

	if out == s {
		// Degenerate span: relabel only.
		out = &EmbeddingSet{label: label, keys: slices.Clone(s.keys), entries: s.entries}
		return out, nil
	}

	out.label = label

	return out, nil
}

// CompareAgainst places every member on the axis defined by the referenced
// embedding, returning the signed scores in iteration order.
func (s *EmbeddingSet) CompareAgainst(axis Ref) ([]float64, error) {
	target, err := axis.resolve(s)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(s.keys))
	for i, k := range s.keys {
		score, err := s.entries[k].CompareAgainst(target)
		if err != nil {
			return nil, err
		}
		out[i] = score
	}

	return out, nil
}

// Average returns a new embedding whose vector is the arithmetic mean of all
// member vectors. Returns ErrEmptySet for an empty set. An empty name
// defaults to "<label>.average()".
func (s *EmbeddingSet) Average(name string) (*Embedding, error) {
	if len(s.keys) == 0 {
		return nil, fmt.Errorf("%w: cannot average %q", ErrEmptySet, s.label)
	}

	if name == "" {
		name = fmt.Sprintf("%s.average()", s.label)
	}

	mean := make([]float64, s.Dim())
	for _, k := range s.keys {
		for i, x := range s.entries[k].vector {
			mean[i] += x
		}
	}
	for i := range mean {
		mean[i] /= float64(len(s.keys))
	}

	return NewEmbedding(name, mean), nil
}

// Filter returns a new set containing only the members for which pred is
// true. Iteration order is preserved.
func (s *EmbeddingSet) Filter(pred func(*Embedding) bool) *EmbeddingSet {
	out := &EmbeddingSet{
		label:   s.label,
		entries: make(map[string]*Embedding),
	}

	for _, k := range s.keys {
		if pred(s.entries[k]) {
			out.keys = append(out.keys, k)
			out.entries[k] = s.entries[k]
		}
	}

	return out
}

// Merge returns the union of the two sets. On key collision the entry from
// other wins; colliding keys keep their original position in the receiver's
// iteration order.
func (s *EmbeddingSet) Merge(other *EmbeddingSet) (*EmbeddingSet, error) {
	if s.Len() > 0 && other.Len() > 0 {
		if err := checkDim(s.Dim(), other.Dim()); err != nil {
			return nil, err
		}
	}

	out := &EmbeddingSet{
		label:   s.label,
		keys:    slices.Clone(s.keys),
		entries: make(map[string]*Embedding, len(s.keys)+other.Len()),
	}

	for _, k := range s.keys {
		out.entries[k] = s.entries[k]
	}
	for _, k := range other.keys {
		if _, ok := out.entries[k]; !ok {
			out.keys = append(out.keys, k)
		}
		out.entries[k] = other.entries[k]
	}

	return out, nil
}

// AddProperty returns a new set where every member gains (or overwrites) the
// property computed by fn. Source embeddings are not modified.
func (s *EmbeddingSet) AddProperty(key string, fn func(*Embedding) any) *EmbeddingSet {
	out := &EmbeddingSet{
		label:   s.label,
		keys:    slices.Clone(s.keys),
		entries: make(map[string]*Embedding, len(s.keys)),
	}

	for _, k := range s.keys {
		out.entries[k] = s.entries[k].AddProperty(key, fn)
	}

	return out
}

// Matrix materializes the member vectors as a matrix with one row per member
// in iteration order. With normalize set, rows are L2-normalized; zero rows
// are left unchanged.
func (s *EmbeddingSet) Matrix(normalize bool) [][]float64 {
	out := make([][]float64, len(s.keys))
	for i, k := range s.keys {
		row := s.entries[k].Vector()
		if normalize {
			distance.NormalizeL2InPlace(row)
		}
		out[i] = row
	}
	return out
}

// NamedMatrix returns the member keys and the coordinate matrix, rows aligned
// to names. This is the export boundary consumed by reporting layers.
func (s *EmbeddingSet) NamedMatrix() ([]string, [][]float64) {
	return s.Names(), s.Matrix(false)
}

// LabeledMatrix returns the coordinate matrix plus the per-member values of
// the given property key, aligned by row. A member missing the property fails
// with ErrUnknownProperty.
func (s *EmbeddingSet) LabeledMatrix(key string) ([][]float64, []any, error) {
	labels := make([]any, len(s.keys))
	for i, k := range s.keys {
		v, ok := s.entries[k].Property(key)
		if !ok {
			return nil, nil, &ErrUnknownProperty{Key: key, Name: k}
		}
		labels[i] = v
	}

	return s.Matrix(false), labels, nil
}
