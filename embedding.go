package embset

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hupe1980/embset/distance"
)

// Embedding is a single named, fixed-dimension vector.
//
// Embeddings are immutable: algebraic operations return new values and never
// modify their operands. The original label survives every transformation so
// derived embeddings stay traceable to the raw entity they came from.
type Embedding struct {
	name   string
	vector []float64
	orig   string
	props  map[string]any
}

// EmbeddingOption configures embedding construction.
type EmbeddingOption func(*Embedding)

// WithOriginalLabel overrides the original label, which otherwise defaults to
// the embedding name.
func WithOriginalLabel(orig string) EmbeddingOption {
	return func(e *Embedding) {
		e.orig = orig
	}
}

// WithProperties seeds the embedding's property map. The map is copied.
func WithProperties(props map[string]any) EmbeddingOption {
	return func(e *Embedding) {
		e.props = maps.Clone(props)
	}
}

// NewEmbedding creates an embedding from a name and a raw vector.
// The vector is copied; the caller keeps ownership of the input slice.
func NewEmbedding(name string, vector []float64, opts ...EmbeddingOption) *Embedding {
	e := &Embedding{
		name:   name,
		vector: slices.Clone(vector),
		orig:   name,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Name returns the embedding name.
func (e *Embedding) Name() string { return e.name }

// OriginalLabel returns the label of the raw entity this embedding was
// derived from.
func (e *Embedding) OriginalLabel() string { return e.orig }

// Dim returns the vector dimension.
func (e *Embedding) Dim() int { return len(e.vector) }

// Vector returns a copy of the embedding vector.
func (e *Embedding) Vector() []float64 { return slices.Clone(e.vector) }

// Property returns the value of a property and whether it is set.
func (e *Embedding) Property(key string) (any, bool) {
	v, ok := e.props[key]
	return v, ok
}

// Properties returns a copy of the property map.
func (e *Embedding) Properties() map[string]any {
	return maps.Clone(e.props)
}

func (e *Embedding) String() string { return e.name }

// derive creates a new embedding carrying over the original label and
// properties of the receiver.
func (e *Embedding) derive(name string, vector []float64) *Embedding {
	return &Embedding{
		name:   name,
		vector: vector,
		orig:   e.orig,
		props:  maps.Clone(e.props),
	}
}

// Add returns the elementwise sum of the two embeddings.
func (e *Embedding) Add(other *Embedding) (*Embedding, error) {
	if err := checkDim(e.Dim(), other.Dim()); err != nil {
		return nil, err
	}

	v := make([]float64, len(e.vector))
	for i := range v {
		v[i] = e.vector[i] + other.vector[i]
	}

	return e.derive(fmt.Sprintf("(%s + %s)", e.name, other.name), v), nil
}

// Sub returns the elementwise difference of the two embeddings.
func (e *Embedding) Sub(other *Embedding) (*Embedding, error) {
	if err := checkDim(e.Dim(), other.Dim()); err != nil {
		return nil, err
	}

	v := make([]float64, len(e.vector))
	for i := range v {
		v[i] = e.vector[i] - other.vector[i]
	}

	return e.derive(fmt.Sprintf("(%s - %s)", e.name, other.name), v), nil
}

// ProjectOnto returns the orthogonal projection of e onto other:
// ((e·other)/(other·other)) * other.
// Returns ErrZeroVector when other has zero norm.
func (e *Embedding) ProjectOnto(other *Embedding) (*Embedding, error) {
	if err := checkDim(e.Dim(), other.Dim()); err != nil {
		return nil, err
	}

	denom := distance.Dot(other.vector, other.vector)
	if denom == 0 {
		return nil, fmt.Errorf("%w: cannot project onto %q", ErrZeroVector, other.name)
	}

	scale := distance.Dot(e.vector, other.vector) / denom
	v := make([]float64, len(other.vector))
	for i := range v {
		v[i] = scale * other.vector[i]
	}

	return e.derive(fmt.Sprintf("%s > %s", e.name, other.name), v), nil
}

// OrthogonalTo returns the component of e perpendicular to other.
// Returns ErrZeroVector when other has zero norm.
func (e *Embedding) OrthogonalTo(other *Embedding) (*Embedding, error) {
	proj, err := e.ProjectOnto(other)
	if err != nil {
		return nil, err
	}

	v := make([]float64, len(e.vector))
	for i := range v {
		v[i] = e.vector[i] - proj.vector[i]
	}

	return e.derive(fmt.Sprintf("%s | %s", e.name, other.name), v), nil
}

// CompareAgainst returns the signed length of the projection of e onto the
// axis defined by other: (e·other)/‖other‖.
// Returns ErrZeroVector when other has zero norm.
func (e *Embedding) CompareAgainst(other *Embedding) (float64, error) {
	if err := checkDim(e.Dim(), other.Dim()); err != nil {
		return 0, err
	}

	norm := distance.Norm(other.vector)
	if norm == 0 {
		return 0, fmt.Errorf("%w: cannot compare against %q", ErrZeroVector, other.name)
	}

	return distance.Dot(e.vector, other.vector) / norm, nil
}

// Distance computes the pairwise distance between the two raw vectors under
// the given metric.
func (e *Embedding) Distance(other *Embedding, metric distance.Metric) (float64, error) {
	if err := checkDim(e.Dim(), other.Dim()); err != nil {
		return 0, err
	}

	fn, err := distance.Provider(metric)
	if err != nil {
		return 0, err
	}

	return fn(e.vector, other.vector), nil
}

// AddProperty returns a copy of the embedding with the property set to the
// value computed by fn.
func (e *Embedding) AddProperty(key string, fn func(*Embedding) any) *Embedding {
	out := e.derive(e.name, slices.Clone(e.vector))
	if out.props == nil {
		out.props = make(map[string]any)
	}
	out.props[key] = fn(e)
	return out
}
