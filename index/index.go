package index

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/embset"
)

// PropertyIndex is an inverted index from property values to member
// positions of one embedding set.
type PropertyIndex struct {
	set      *embset.EmbeddingSet
	keys     []string
	postings map[string]map[string]*roaring.Bitmap
}

// Build indexes the given property keys of the set. Members missing a key
// are absent from that key's postings.
func Build(set *embset.EmbeddingSet, keys ...string) *PropertyIndex {
	ix := &PropertyIndex{
		set:      set,
		keys:     keys,
		postings: make(map[string]map[string]*roaring.Bitmap, len(keys)),
	}

	for _, key := range keys {
		ix.postings[key] = make(map[string]*roaring.Bitmap)
	}

	for pos, e := range set.Embeddings() {
		for _, key := range keys {
			v, ok := e.Property(key)
			if !ok {
				continue
			}
			term := termOf(v)
			bm, ok := ix.postings[key][term]
			if !ok {
				bm = roaring.New()
				ix.postings[key][term] = bm
			}
			bm.Add(uint32(pos))
		}
	}

	return ix
}

// Keys returns the indexed property keys.
func (ix *PropertyIndex) Keys() []string {
	return append([]string(nil), ix.keys...)
}

// Cardinality returns the number of members carrying the given property
// value.
func (ix *PropertyIndex) Cardinality(key string, value any) int {
	bm, ok := ix.postings[key][termOf(value)]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// Lookup returns the members whose property equals the value, as a new set
// in the source set's iteration order.
func (ix *PropertyIndex) Lookup(key string, value any) (*embset.EmbeddingSet, error) {
	bm, ok := ix.postings[key]
	if !ok {
		return nil, fmt.Errorf("property %q is not indexed", key)
	}

	term, ok := bm[termOf(value)]
	if !ok {
		return ix.set.Subset()
	}

	return ix.materialize(term)
}

// LookupAll returns the members matching every clause (logical AND).
func (ix *PropertyIndex) LookupAll(clauses map[string]any) (*embset.EmbeddingSet, error) {
	var acc *roaring.Bitmap
	for key, value := range clauses {
		bm, ok := ix.postings[key]
		if !ok {
			return nil, fmt.Errorf("property %q is not indexed", key)
		}
		term, ok := bm[termOf(value)]
		if !ok {
			return ix.set.Subset()
		}
		if acc == nil {
			acc = term.Clone()
		} else {
			acc.And(term)
		}
	}

	if acc == nil {
		return ix.set.Subset()
	}

	return ix.materialize(acc)
}

func (ix *PropertyIndex) materialize(bm *roaring.Bitmap) (*embset.EmbeddingSet, error) {
	names := ix.set.Names()

	selected := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		selected = append(selected, names[it.Next()])
	}

	return ix.set.Subset(selected...)
}

// termOf canonicalizes a property value for posting lookup. Values that
// format identically collide; properties used for indexing should be plain
// scalars.
func termOf(v any) string {
	return fmt.Sprintf("%v", v)
}
