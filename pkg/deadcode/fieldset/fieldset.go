// Package fieldset implements the compact sorted-integer-set used to
// represent the field set S of a Live(S) liveness value. It is backed
// by github.com/bits-and-blooms/bitset, following the precedent set
// elsewhere in this corpus for exactly this kind of per-node
// gen/kill/live set (godoctor's dataflow and cfg packages use the
// predecessor willf/bitset the same way).
package fieldset

import "github.com/bits-and-blooms/bitset"

// Set is an immutable-from-the-outside sorted set of non-negative field
// indices. The zero value is the empty set.
type Set struct {
	bits *bitset.BitSet
}

// Of builds a Set containing exactly the given indices.
func Of(indices ...int) Set {
	var s Set
	for _, i := range indices {
		s = s.Add(i)
	}
	return s
}

// Add returns a Set equal to s with i additionally present. It does not
// mutate s.
func (s Set) Add(i int) Set {
	var b *bitset.BitSet
	if s.bits == nil {
		b = bitset.New(uint(i) + 1)
	} else {
		b = s.bits.Clone()
	}
	b.Set(uint(i))
	return Set{bits: b}
}

// Contains reports whether i is a member of s.
func (s Set) Contains(i int) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Test(uint(i))
}

// IsEmpty reports whether s has no members. Live(∅) never occurs as a
// liveness value; this predicate is what enforces that at the Live
// constructor.
func (s Set) IsEmpty() bool {
	return s.bits == nil || s.bits.None()
}

// Union returns s ∪ o without mutating either operand.
func (s Set) Union(o Set) Set {
	switch {
	case s.bits == nil:
		return o
	case o.bits == nil:
		return s
	default:
		return Set{bits: s.bits.Union(o.bits)}
	}
}

// Equal reports value equality between two field sets.
func (s Set) Equal(o Set) bool {
	switch {
	case s.bits == nil && o.bits == nil:
		return true
	case s.bits == nil:
		return o.bits.None()
	case o.bits == nil:
		return s.bits.None()
	default:
		return s.bits.Equal(o.bits)
	}
}

// Sorted returns the members of s in ascending order.
func (s Set) Sorted() []int {
	if s.bits == nil {
		return nil
	}
	out := make([]int, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
