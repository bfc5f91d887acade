package distance

import (
	"fmt"
	"math"
	"slices"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}

	return dot
}

// Norm calculates the L2 norm (length) of a vector.
func Norm(v []float64) float64 {
	return math.Sqrt(Dot(v, v))
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
// Returns 0 when either vector has zero norm.
func CosineSimilarity(a, b []float64) float64 {
	dot := Dot(a, b)
	normA := Norm(a)
	normB := Norm(b)

	// Avoid division by zero
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (normA * normB)
}

// CosineDistance calculates the cosine distance (1 - cosine similarity).
func CosineDistance(a, b []float64) float64 {
	return 1 - CosineSimilarity(a, b)
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return sum
}

// EuclideanDistance calculates the L2 (Euclidean) distance between two vectors.
func EuclideanDistance(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// ManhattanDistance calculates the L1 (Manhattan) distance between two vectors.
func ManhattanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}

	return sum
}

// PearsonCorrelation calculates the Pearson correlation coefficient.
// Returns a value between -1 and 1, where 1 means perfect positive correlation.
// Returns 0 when either vector has zero variance.
func PearsonCorrelation(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}

	n := float64(len(a))

	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= n
	meanB /= n

	var numerator, sumSqA, sumSqB float64
	for i := range a {
		diffA := a[i] - meanA
		diffB := b[i] - meanB
		numerator += diffA * diffB
		sumSqA += diffA * diffA
		sumSqB += diffB * diffB
	}

	denominator := math.Sqrt(sumSqA * sumSqB)
	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}

// CorrelationDistance calculates the Pearson correlation distance (1 - r).
func CorrelationDistance(a, b []float64) float64 {
	return 1 - PearsonCorrelation(a, b)
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float64) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := Dot(v, v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / math.Sqrt(norm2)
	for i := range v {
		v[i] *= inv
	}
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float64) ([]float64, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricCosine Metric = iota
	MetricCosineSimilarity
	MetricEuclidean
	MetricSquaredEuclidean
	MetricCorrelation
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "cosine"
	case MetricCosineSimilarity:
		return "cosine-similarity"
	case MetricEuclidean:
		return "euclidean"
	case MetricSquaredEuclidean:
		return "sqeuclidean"
	case MetricCorrelation:
		return "correlation"
	case MetricManhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// ErrUnsupportedMetric indicates an unknown or unsupported metric.
type ErrUnsupportedMetric struct {
	Metric string
}

func (e *ErrUnsupportedMetric) Error() string {
	return fmt.Sprintf("unsupported metric: %q", e.Metric)
}

// ParseMetric returns the metric for its stable string name.
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "cosine":
		return MetricCosine, nil
	case "cosine-similarity", "cosine_similarity":
		return MetricCosineSimilarity, nil
	case "euclidean", "l2":
		return MetricEuclidean, nil
	case "sqeuclidean", "squared-euclidean":
		return MetricSquaredEuclidean, nil
	case "correlation":
		return MetricCorrelation, nil
	case "manhattan", "l1":
		return MetricManhattan, nil
	default:
		return 0, &ErrUnsupportedMetric{Metric: name}
	}
}

// Func is a function type for pairwise distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
//
// Note that MetricCosineSimilarity returns a similarity (higher is closer);
// similarity ranking expects a distance-like metric where lower is closer.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricCosine:
		return CosineDistance, nil
	case MetricCosineSimilarity:
		return CosineSimilarity, nil
	case MetricEuclidean:
		return EuclideanDistance, nil
	case MetricSquaredEuclidean:
		return SquaredL2, nil
	case MetricCorrelation:
		return CorrelationDistance, nil
	case MetricManhattan:
		return ManhattanDistance, nil
	default:
		return nil, &ErrUnsupportedMetric{Metric: m.String()}
	}
}
