package embset

import (
	"fmt"
	"runtime"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/embset/distance"
)

// Scored pairs a member embedding with its distance to a query.
type Scored struct {
	Embedding *Embedding
	Score     float64
}

// ScoreSimilar ranks all members by distance to the query and returns the n
// closest (Embedding, score) pairs, sorted by non-decreasing distance. Ties
// resolve to iteration order. The query itself is included when it is a
// member.
//
// Returns ErrInvalidN when n is not positive or exceeds the set size, and
// ErrUnknownName when a by-name query is absent from the set.
func (s *EmbeddingSet) ScoreSimilar(query Ref, n int, metric distance.Metric) ([]Scored, error) {
	if n <= 0 || n > s.Len() {
		return nil, fmt.Errorf("%w: n=%d, set size %d", ErrInvalidN, n, s.Len())
	}

	target, err := query.resolve(s)
	if err != nil {
		return nil, err
	}

	if s.Len() > 0 {
		if err := checkDim(s.Dim(), target.Dim()); err != nil {
			return nil, err
		}
	}

	fn, err := distance.Provider(metric)
	if err != nil {
		return nil, err
	}

	scored := make([]Scored, s.Len())

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, k := range s.keys {
		i, k := i, k
		g.Go(func() error {
			e := s.entries[k]
			scored[i] = Scored{Embedding: e, Score: fn(e.vector, target.vector)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score < scored[j].Score
	})

	return scored[:n], nil
}

// MostSimilar runs the same query as ScoreSimilar but returns only the
// matched embeddings as a new set, scores discarded.
func (s *EmbeddingSet) MostSimilar(query Ref, n int, metric distance.Metric) (*EmbeddingSet, error) {
	scored, err := s.ScoreSimilar(query, n, metric)
	if err != nil {
		return nil, err
	}

	embeddings := make([]*Embedding, len(scored))
	for i, sc := range scored {
		embeddings[i] = sc.Embedding
	}

	return New(fmt.Sprintf("%s.similar(n=%d)", s.label, n), embeddings...)
}

// Searcher is a reusable query handle over an immutable set.
//
// Because sets never change after construction, by-name query results can be
// cached; the optional LRU cache memoizes them. Queries passed by embedding
// value bypass the cache.
type Searcher struct {
	set    *EmbeddingSet
	metric distance.Metric
	cache  *lru.Cache[string, []Scored]
	logger *Logger
}

// SearcherOption configures a Searcher.
type SearcherOption func(*searcherOptions)

type searcherOptions struct {
	metric    distance.Metric
	cacheSize int
	logger    *Logger
}

// WithMetric sets the distance metric used for ranking.
// Defaults to cosine distance.
func WithMetric(m distance.Metric) SearcherOption {
	return func(o *searcherOptions) {
		o.metric = m
	}
}

// WithCacheSize enables an LRU cache of by-name query results with the given
// capacity. A size <= 0 disables caching (the default).
func WithCacheSize(size int) SearcherOption {
	return func(o *searcherOptions) {
		o.cacheSize = size
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *Logger) SearcherOption {
	return func(o *searcherOptions) {
		o.logger = l
	}
}

// NewSearcher creates a Searcher over the given set.
func NewSearcher(set *EmbeddingSet, opts ...SearcherOption) (*Searcher, error) {
	o := searcherOptions{
		metric: distance.MetricCosine,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := distance.Provider(o.metric); err != nil {
		return nil, err
	}

	if o.logger == nil {
		o.logger = NoopLogger()
	}

	s := &Searcher{
		set:    set,
		metric: o.metric,
		logger: o.logger.WithLabel(set.Label()),
	}

	if o.cacheSize > 0 {
		cache, err := lru.New[string, []Scored](o.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create query cache: %w", err)
		}
		s.cache = cache
	}

	return s, nil
}

// ScoreSimilar ranks the n members closest to the query under the searcher's
// metric.
func (s *Searcher) ScoreSimilar(query Ref, n int) ([]Scored, error) {
	var key string
	if s.cache != nil && query.cacheable() {
		key = fmt.Sprintf("%s|%d|%s", query.name, n, s.metric)
		if cached, ok := s.cache.Get(key); ok {
			s.logger.LogSearch(n, s.metric, len(cached), true, nil)
			return cached, nil
		}
	}

	scored, err := s.set.ScoreSimilar(query, n, s.metric)
	s.logger.LogSearch(n, s.metric, len(scored), false, err)
	if err != nil {
		return nil, err
	}

	if key != "" {
		s.cache.Add(key, scored)
	}

	return scored, nil
}

// MostSimilar returns the n members closest to the query as a new set.
func (s *Searcher) MostSimilar(query Ref, n int) (*EmbeddingSet, error) {
	scored, err := s.ScoreSimilar(query, n)
	if err != nil {
		return nil, err
	}

	embeddings := make([]*Embedding, len(scored))
	for i, sc := range scored {
		embeddings[i] = sc.Embedding
	}

	return New(fmt.Sprintf("%s.similar(n=%d)", s.set.label, n), embeddings...)
}
