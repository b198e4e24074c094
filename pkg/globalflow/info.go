// Package globalflow defines the facade the global flow collaborator
// presents to the dead-code pass: per-variable value approximations,
// per-closure return-value sets, and escape flags. Building
// a real inter-procedural flow analysis is out of scope for this
// module. The dead-code pass only consumes the result and never
// computes one of its own, so this package carries the data shape plus a
// conservative builder (Conservative) that makes the pass and its CLI
// runnable without that analysis existing yet.
package globalflow

import "github.com/raymyers/ralph-cc/pkg/ir"

// Def mirrors the local definition-map cell (pkg/deadcode.Def) but at
// global-flow scope: DefExpr for a variable bound by Let, DefParam
// otherwise.
type Def interface {
	isDef()
}

// DefExpr records that a variable is bound by Let to Expr.
type DefExpr struct {
	Expr ir.Expression
}

// DefParam records that a variable is a parameter or assignment target.
type DefParam struct{}

func (DefExpr) isDef()  {}
func (DefParam) isDef() {}

// Approx is the global flow analysis's value approximation for a
// variable that is applied as a function.
type Approx interface {
	isApprox()
}

// Top means the analysis could not enumerate the closures that might
// reach this position.
type Top struct{}

// Values lists the closure-constant variables that may flow here.
type Values struct {
	Known map[ir.Var]bool
}

func (Top) isApprox()    {}
func (Values) isApprox() {}

// EscapeKind classifies whether a variable's value may become
// observable outside its defining closure.
type EscapeKind int

const (
	NoEscape EscapeKind = iota
	Escapes
	EscapesConstant
)

// GlobalInfo is the read-only record the global-flow collaborator
// produces and the dead-code pass borrows for the duration of one
// invocation and must not be mutated by it.
type GlobalInfo struct {
	Defs          map[ir.Var]Def
	Approximation map[ir.Var]Approx
	ReturnVals    map[ir.Var]map[ir.Var]bool
	MayEscape     map[ir.Var]EscapeKind
}

// New builds an empty GlobalInfo ready to be populated.
func New() *GlobalInfo {
	return &GlobalInfo{
		Defs:          make(map[ir.Var]Def),
		Approximation: make(map[ir.Var]Approx),
		ReturnVals:    make(map[ir.Var]map[ir.Var]bool),
		MayEscape:     make(map[ir.Var]EscapeKind),
	}
}

// DefOf returns g's definition for v, defaulting to DefParam when v was
// never recorded.
func (g *GlobalInfo) DefOf(v ir.Var) Def {
	if d, ok := g.Defs[v]; ok {
		return d
	}
	return DefParam{}
}

// ApproxOf returns g's approximation for v, defaulting to Top.
func (g *GlobalInfo) ApproxOf(v ir.Var) Approx {
	if a, ok := g.Approximation[v]; ok {
		return a
	}
	return Top{}
}

// ReturnValsOf returns the set of variables that may be returned by the
// closure bound to v.
func (g *GlobalInfo) ReturnValsOf(v ir.Var) map[ir.Var]bool {
	return g.ReturnVals[v]
}

// EscapeOf returns g's escape classification for v, defaulting to
// Escapes (the safe choice when nothing is known).
func (g *GlobalInfo) EscapeOf(v ir.Var) EscapeKind {
	if e, ok := g.MayEscape[v]; ok {
		return e
	}
	return Escapes
}
