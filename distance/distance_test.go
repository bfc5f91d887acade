package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 32},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Mixed", []float64{1, -1, 2}, []float64{1, 1, -2}, -4},
		{"Empty", []float64{}, []float64{}, 0},
		{"Single", []float64{2}, []float64{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dot(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		wantSim  float64
		wantDist float64
	}{
		{"Identical", []float64{1, 0, 0}, []float64{1, 0, 0}, 1, 0},
		{"Orthogonal", []float64{1, 0, 0}, []float64{0, 1, 0}, 0, 1},
		{"Opposite", []float64{1, 0}, []float64{-1, 0}, -1, 2},
		{"Scaled", []float64{1, 2}, []float64{2, 4}, 1, 0},
		{"ZeroVector", []float64{0, 0}, []float64{1, 1}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantSim, CosineSimilarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.wantDist, CosineDistance(tt.a, tt.b), 1e-9)
		})
	}
}

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		squared  float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27, 5.196152422706632},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8, 2.8284271247461903},
		{"Empty", []float64{}, []float64{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.squared, SquaredL2(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.expected, EuclideanDistance(tt.a, tt.b), 1e-9)
		})
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2}, []float64{4, 6}, 7},
		{"Identical", []float64{1, 2}, []float64{1, 2}, 0},
		{"Negative", []float64{-1, -2}, []float64{1, 2}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ManhattanDistance(tt.a, tt.b), 1e-9)
		})
	}
}

func TestPearsonCorrelation(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"PerfectPositive", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"PerfectNegative", []float64{1, 2, 3}, []float64{3, 2, 1}, -1},
		{"ZeroVariance", []float64{1, 1, 1}, []float64{1, 2, 3}, 0},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PearsonCorrelation(tt.a, tt.b), 1e-9)
			assert.InDelta(t, 1-tt.expected, CorrelationDistance(tt.a, tt.b), 1e-9)
		})
	}
}

func TestNormalizeL2(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		v := []float64{3, 4}
		ok := NormalizeL2InPlace(v)
		assert.True(t, ok)
		assert.InDelta(t, 0.6, v[0], 1e-9)
		assert.InDelta(t, 0.8, v[1], 1e-9)

		vZero := []float64{0, 0}
		assert.False(t, NormalizeL2InPlace(vZero))

		vEmpty := []float64{}
		assert.False(t, NormalizeL2InPlace(vEmpty))
	})

	t.Run("Copy", func(t *testing.T) {
		v := []float64{1, 0}
		dst, ok := NormalizeL2Copy(v)
		assert.True(t, ok)
		assert.Equal(t, float64(1), dst[0])
		assert.NotSame(t, &v[0], &dst[0])

		dst, ok = NormalizeL2Copy([]float64{0, 0})
		assert.False(t, ok)
		assert.Nil(t, dst)
	})
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Metric
	}{
		{"Cosine", "cosine", MetricCosine},
		{"CosineSimilarity", "cosine-similarity", MetricCosineSimilarity},
		{"Euclidean", "euclidean", MetricEuclidean},
		{"EuclideanAlias", "l2", MetricEuclidean},
		{"SquaredEuclidean", "sqeuclidean", MetricSquaredEuclidean},
		{"Correlation", "correlation", MetricCorrelation},
		{"Manhattan", "manhattan", MetricManhattan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got.String(), tt.expected.String())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseMetric("chebyshev")
		require.Error(t, err)

		var ume *ErrUnsupportedMetric
		require.ErrorAs(t, err, &ume)
		assert.Equal(t, "chebyshev", ume.Metric)
	})
}

func TestProvider(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}

	tests := []struct {
		name     string
		metric   Metric
		expected float64
	}{
		{"Cosine", MetricCosine, 1},
		{"CosineSimilarity", MetricCosineSimilarity, 0},
		{"Euclidean", MetricEuclidean, 1.4142135623730951},
		{"SquaredEuclidean", MetricSquaredEuclidean, 2},
		{"Correlation", MetricCorrelation, 2},
		{"Manhattan", MetricManhattan, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := Provider(tt.metric)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, fn(a, b), 1e-9)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := Provider(Metric(99))
		require.Error(t, err)
	})
}
