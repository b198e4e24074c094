package deadcode

import (
	"github.com/raymyers/ralph-cc/pkg/deadcode/fieldset"
	"github.com/raymyers/ralph-cc/pkg/ir"
)

// invert turns the use-graph (indexed by used variable, mapping to its
// users) into the adjacency a worklist solver actually needs: for a
// user x whose liveness just changed, the set of variables x uses and
// how. Built once per Solve call.
func invert(nv int, g UseGraph) []map[ir.Var]Edge {
	fwd := make([]map[ir.Var]Edge, nv)
	for i := range fwd {
		fwd[i] = make(map[ir.Var]Edge)
	}
	for used, users := range g {
		for user, e := range users {
			fwd[user.Idx()][ir.VarOfIdx(used)] = e
		}
	}
	return fwd
}

// contribution computes what a used variable y should receive given
// its user x's current liveness lx, the edge describing how x uses y,
// and x's own definition. A Field-read definition on x always wins,
// regardless of the edge's nominal kind, giving the analysis its field
// sensitivity: whatever makes fld = field(z, i) observed makes z's
// field i (and only that field) observed too.
func contribution(lx Liveness, e Edge, defX Def) Liveness {
	if fe, ok := defX.(DefExpr); ok {
		if fld, ok := fe.Expr.(ir.Field); ok {
			if lx.IsDead() {
				return Dead
			}
			return Live(fieldset.Of(fld.I))
		}
	}
	switch e.Kind {
	case Propagate:
		return lx
	case ComputeField:
		if lx.IsTop() {
			return Top
		}
		if lx.IsLive() && lx.Fields().Contains(e.Field) {
			return Top
		}
		return Dead
	default: // ComputeFull
		if lx.IsDead() {
			return Dead
		}
		return Top
	}
}

// Solve is S4: the monotone worklist fixpoint. seed supplies the
// initial liveness; Solve never lowers a variable's value, only raises
// it, so it terminates after at most nv * (lattice height) raises.
func Solve(nv int, g UseGraph, seed []Liveness, defs []Def) []Liveness {
	lv := make([]Liveness, nv)
	copy(lv, seed)

	fwd := invert(nv, g)
	worklist := make([]ir.Var, 0, nv)
	onList := make([]bool, nv)
	for i, l := range lv {
		if !l.IsDead() {
			worklist = append(worklist, ir.VarOfIdx(i))
			onList[i] = true
		}
	}

	for len(worklist) > 0 {
		x := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		onList[x.Idx()] = false

		for y, e := range fwd[x.Idx()] {
			c := contribution(lv[x.Idx()], e, defs[x.Idx()])
			joined := lv[y.Idx()].Join(c)
			if joined.Equal(lv[y.Idx()]) {
				continue
			}
			lv[y.Idx()] = joined
			if !onList[y.Idx()] {
				worklist = append(worklist, y)
				onList[y.Idx()] = true
			}
		}
	}
	return lv
}
