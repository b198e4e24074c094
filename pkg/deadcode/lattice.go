// Package deadcode implements the global dead-code analysis and
// rewriting pass: a field-sensitive dataflow over a closure/tuple IR
// (pkg/ir) that decides which variables are observed and replaces every
// dead reference with a single sentinel variable. It does not delete
// instructions; a downstream local dead-code eliminator is expected to
// clean up the now-unused bindings this pass leaves behind.
package deadcode

import (
	"strconv"

	"github.com/raymyers/ralph-cc/pkg/deadcode/fieldset"
)

// kind discriminates the three points of the liveness lattice.
type kind int

const (
	kindDead kind = iota
	kindLive
	kindTop
)

// Liveness is one point in the lattice Dead ≤ Live(S) ≤ Top, where
// Live(S1) ≤ Live(S2) iff S1 ⊆ S2.
type Liveness struct {
	k      kind
	fields fieldset.Set
}

// Dead (⊥) means no use of the variable was observed.
var Dead = Liveness{k: kindDead}

// Top (⊤) means the variable is live and either not a heap block or has
// a non-field observer.
var Top = Liveness{k: kindTop}

// Live builds a Live(fields) lattice value. fields must be non-empty.
// Live(∅) never occurs; violating that is a logic error in the caller,
// not a recoverable condition.
func Live(fields fieldset.Set) Liveness {
	if fields.IsEmpty() {
		panic("deadcode: Live(∅) is not a valid lattice value")
	}
	return Liveness{k: kindLive, fields: fields}
}

// IsDead reports whether l is ⊥.
func (l Liveness) IsDead() bool { return l.k == kindDead }

// IsLive reports whether l is a Live(S) point (neither ⊥ nor ⊤).
func (l Liveness) IsLive() bool { return l.k == kindLive }

// IsTop reports whether l is ⊤.
func (l Liveness) IsTop() bool { return l.k == kindTop }

// Fields returns l's field set. It is only meaningful when IsLive().
func (l Liveness) Fields() fieldset.Set { return l.fields }

// Join computes l ⊔ o.
func (l Liveness) Join(o Liveness) Liveness {
	switch {
	case l.k == kindDead:
		return o
	case o.k == kindDead:
		return l
	case l.k == kindTop || o.k == kindTop:
		return Top
	default:
		return Live(l.fields.Union(o.fields))
	}
}

// Equal reports value equality in the lattice.
func (l Liveness) Equal(o Liveness) bool {
	if l.k != o.k {
		return false
	}
	if l.k == kindLive {
		return l.fields.Equal(o.fields)
	}
	return true
}

// LessEq reports whether l ≤ o.
func (l Liveness) LessEq(o Liveness) bool {
	return l.Join(o).Equal(o)
}

func (l Liveness) String() string {
	switch l.k {
	case kindDead:
		return "Dead"
	case kindTop:
		return "Top"
	default:
		return "Live" + sortedFieldString(l.fields)
	}
}

func sortedFieldString(s fieldset.Set) string {
	out := "{"
	for i, f := range s.Sorted() {
		if i > 0 {
			out += ","
		}
		out += strconv.Itoa(f)
	}
	return out + "}"
}
