// Package distance provides the distance and similarity functions used for
// vector comparison and similarity ranking.
//
// # Supported Metrics
//
//   - MetricCosine: cosine distance (1 - cosine similarity)
//   - MetricCosineSimilarity: cosine similarity (normalized dot product)
//   - MetricEuclidean: Euclidean (L2) distance
//   - MetricSquaredEuclidean: squared Euclidean distance (no sqrt)
//   - MetricCorrelation: Pearson correlation distance (1 - r)
//   - MetricManhattan: Manhattan (L1) distance
//
// Metrics are addressable both as typed constants (Metric) and by their stable
// string names via ParseMetric, so callers can plumb metric selection through
// configuration and CLIs.
//
// # Usage
//
//	dist := distance.CosineDistance(a, b)
//	fn, err := distance.Provider(distance.MetricEuclidean)
package distance
