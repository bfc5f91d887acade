package embset

// Ref identifies the operand of a set-level operation: either a key resolved
// against the set, or an embedding passed directly. Resolution happens once
// at the call boundary.
type Ref struct {
	name string
	emb  *Embedding
}

// ByName references a member of the set by key.
func ByName(name string) Ref {
	return Ref{name: name}
}

// ByEmbedding references an embedding directly. It does not have to be a
// member of the set it is used against.
func ByEmbedding(e *Embedding) Ref {
	return Ref{emb: e}
}

func (r Ref) resolve(s *EmbeddingSet) (*Embedding, error) {
	if r.emb != nil {
		return r.emb, nil
	}
	return s.Get(r.name)
}

// cacheable reports whether the reference has a stable identity usable as a
// cache key.
func (r Ref) cacheable() bool {
	return r.emb == nil
}
