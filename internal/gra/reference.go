package gra

import (
	"fmt"
	"iter"
)

// ReferenceSet is the full candidate set {0,1}^n in depth-first order,
// trying 0 before 1 at each position. References are built on demand.
type ReferenceSet struct {
	n int
}

func GenerateReferences(n int) (ReferenceSet, error) {
	if n <= 0 || n > MaxNumIndices {
		return ReferenceSet{}, fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidNumIndices, n, MaxNumIndices)
	}
	return ReferenceSet{n: n}, nil
}

func (s ReferenceSet) Len() int {
	return 1 << s.n
}

// At returns candidate k; position 0 holds the most significant bit of k.
func (s ReferenceSet) At(k int) Reference {
	ref := make(Reference, s.n)
	for j := range s.n {
		ref[j] = uint8((k >> (s.n - 1 - j)) & 1)
	}
	return ref
}

func (s ReferenceSet) All() iter.Seq2[int, Reference] {
	return func(yield func(int, Reference) bool) {
		for k := range s.Len() {
			if !yield(k, s.At(k)) {
				return
			}
		}
	}
}

func (s ReferenceSet) Materialize() []Reference {
	refs := make([]Reference, 0, s.Len())
	for _, ref := range s.All() {
		refs = append(refs, ref)
	}
	return refs
}
