// Package embset provides algebra and similarity search over sets of named,
// fixed-dimension embedding vectors.
//
// An Embedding is a single named vector. An EmbeddingSet is a deduplicated,
// insertion-ordered collection of embeddings sharing one dimension. Both are
// immutable: every operation returns a new value and never modifies its
// operands.
//
// # Quick Start
//
//	foo := embset.NewEmbedding("foo", []float64{0.1, 0.3})
//	bar := embset.NewEmbedding("bar", []float64{0.7, 0.2})
//
//	set, _ := embset.New("words", foo, bar)
//
//	// Elementwise algebra across the whole set.
//	shifted, _ := set.Sub(bar)
//
//	// Project every member away from the span of another set.
//	axes, _ := embset.New("axes", foo, bar)
//	ortho, _ := set.OrthogonalToSpan(axes)
//
//	// Similarity ranking.
//	scored, _ := set.ScoreSimilar(embset.ByName("foo"), 2, distance.MetricCosine)
//
// # Export Boundary
//
// NamedMatrix and LabeledMatrix materialize a set as a plain coordinate matrix
// plus aligned names or property values. This is the sole interface handed to
// downstream reporting and plotting layers.
//
// # Persistence
//
// The persist package saves and loads sets as compressed, checksummed
// snapshot files. The index package builds roaring-bitmap property indexes
// over a set for repeated property-equality filtering.
package embset
