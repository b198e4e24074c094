package deadcode

import (
	"github.com/raymyers/ralph-cc/pkg/globalflow"
	"github.com/raymyers/ralph-cc/pkg/ir"
	"github.com/raymyers/ralph-cc/pkg/purity"
)

// UsageKind tags a use-graph edge with how the used variable's liveness
// contributes to the user's.
type UsageKind int

const (
	// Propagate means the used variable inherits the user's liveness
	// identically: an argument/formal pairing or a return-value edge.
	Propagate UsageKind = iota
	// ComputeFull means the used variable must be fully observed (Top)
	// whenever the user is observed at all. contribution overrides this
	// with field-sensitive precision when the user's own definition is
	// a Field read (see contribution).
	ComputeFull
	// ComputeField means the used variable is one component (at Field)
	// of a block the user constructs; it is only forced live when that
	// specific field is in the user's observed field set.
	ComputeField
)

// Edge is one use-graph edge: a used variable contributes to its user
// according to Kind, with Field meaningful only for ComputeField.
type Edge struct {
	Kind  UsageKind
	Field int
}

// UseGraph is indexed by the used variable y; UseGraph[y] maps each
// user x to the edge describing how x depends on y. This is the
// "inverted relative to natural reading" graph: reading cell y yields
// every x that references y.
type UseGraph []map[ir.Var]Edge

func newUseGraph(nv int) UseGraph {
	g := make(UseGraph, nv)
	for i := range g {
		g[i] = make(map[ir.Var]Edge)
	}
	return g
}

// addEdge records that user x references used variable y with the given
// edge. A later call for the same (x, y) pair overwrites it, consistent
// with this pass's policy of tolerating degenerate inputs rather than
// raising an error.
func (g UseGraph) addEdge(user, used ir.Var, e Edge) {
	g[used.Idx()][user] = e
}

// Usages is S2: builds the use-graph for the whole program, consulting
// the purity oracle to decide whether a pure expression's operands are
// field-sensitive and the global-flow oracle to connect Apply sites
// with known closures' parameters and return values.
func Usages(nv int, prog *ir.Program, info *globalflow.GlobalInfo, defs []Def, pure *purity.Oracle) UseGraph {
	g := newUseGraph(nv)
	for _, pc := range ir.SortedPCs(prog) {
		b := prog.Blocks[pc]
		for _, stmt := range b.Body {
			addInstrEdges(g, prog, stmt.Instr, info, defs, pure)
		}
		addBranchConts(g, prog, b.Last.Branch)
	}
	return g
}

func addInstrEdges(g UseGraph, prog *ir.Program, instr ir.Instruction, info *globalflow.GlobalInfo, defs []Def, pure *purity.Oracle) {
	switch in := instr.(type) {
	case ir.Let:
		addExprEdges(g, prog, in.X, in.Expr, info, defs, pure)
	case ir.Assign:
		// Assign rebinds x to y's current value rather than renaming y,
		// so x being observed at all forces y fully live, the same way
		// any other full read does: x's own field-sensitive observers
		// (if x is itself read through a Field) are not y's observers.
		g.addEdge(in.X, in.Y, Edge{Kind: ComputeFull})
	case ir.SetField, ir.ArraySet, ir.OffsetRef:
		// No use-graph edges; these are mutating instructions that are
		// never deleted, so their operands are seeded directly rather
		// than made contingent on a downstream reader.
	}
}

func addExprEdges(g UseGraph, prog *ir.Program, x ir.Var, e ir.Expression, info *globalflow.GlobalInfo, defs []Def, pure *purity.Oracle) {
	switch ex := e.(type) {
	case ir.Apply:
		// ex.Fn is never wired here: calling requires the exact closure
		// identity regardless of whether the call's result is ever
		// read, so it is seeded Top unconditionally (see Seed).
		addApplyPropagateEdges(g, x, ex, info, defs)
	case ir.BlockExpr:
		if !pure.Pure(ex) {
			// The oracle is disabled: every construction is treated as
			// opaque, so its components are seeded Top unconditionally
			// rather than made contingent on x (see Seed).
			return
		}
		for i, v := range ex.Vars {
			g.addEdge(x, v, Edge{Kind: ComputeField, Field: i})
		}
	case ir.Field:
		if !pure.Pure(ex) {
			return
		}
		g.addEdge(x, ex.Z, Edge{Kind: ComputeFull})
	case ir.Constant:
		// No operands.
	case ir.Closure:
		addContEdges(g, prog, ex.Cont)
	case ir.Prim:
		if !pure.Pure(ex) {
			// Side-effecting primitives always execute; their operands
			// are seeded Top unconditionally rather than made
			// contingent on x (see Seed).
			return
		}
		for _, a := range ex.Args {
			if pv, ok := a.(ir.Pv); ok {
				g.addEdge(x, pv.V, Edge{Kind: ComputeFull})
			}
		}
	}
}

// addApplyPropagateEdges wires the inter-procedural edges for an exactly
// matched call to a known closure constant: every possible return value
// inherits the liveness of the call result, and each actual argument
// inherits the liveness of the formal it's bound to.
func addApplyPropagateEdges(g UseGraph, x ir.Var, ap ir.Apply, info *globalflow.GlobalInfo, defs []Def) {
	values, ok := info.ApproxOf(ap.Fn).(globalflow.Values)
	if !ok {
		// Top: the oracle's escape bits already force the relevant
		// variables to Top during seeding; add no propagate edges.
		return
	}
	for k := range values.Known {
		kd, ok := defs[k.Idx()].(DefExpr)
		if !ok {
			continue
		}
		clos, ok := kd.Expr.(ir.Closure)
		if !ok {
			continue
		}
		if len(clos.Params) != len(ap.Args) {
			// Over/under-application: already marked escaping by the
			// oracle; skip it here rather than pairing mismatched args.
			continue
		}
		for r := range info.ReturnValsOf(k) {
			g.addEdge(x, r, Edge{Kind: Propagate})
		}
		for i, p := range clos.Params {
			g.addEdge(p, ap.Args[i], Edge{Kind: Propagate})
		}
	}
}

// addContEdges pairs a continuation's actual arguments with its target
// block's formal parameters. A missing target block contributes no
// edges (its arguments are treated as dead); a length mismatch is
// tolerated by pairing only the common prefix.
func addContEdges(g UseGraph, prog *ir.Program, target ir.Cont) {
	block, ok := prog.Blocks[target.PC]
	if !ok {
		return
	}
	n := len(block.Params)
	if len(target.Args) < n {
		n = len(target.Args)
	}
	for i := 0; i < n; i++ {
		g.addEdge(block.Params[i], target.Args[i], Edge{Kind: Propagate})
	}
}

func addBranchConts(g UseGraph, prog *ir.Program, br ir.Branch) {
	switch b := br.(type) {
	case ir.Goto:
		addContEdges(g, prog, b.Cont)
	case ir.Poptrap:
		addContEdges(g, prog, b.Cont)
	case ir.CondBr:
		addContEdges(g, prog, b.IfTrue)
		addContEdges(g, prog, b.IfFalse)
	case ir.Switch:
		for _, c := range b.Ints {
			addContEdges(g, prog, c)
		}
		for _, c := range b.Tags {
			addContEdges(g, prog, c)
		}
	case ir.Pushtrap:
		addContEdges(g, prog, b.Body)
		addContEdges(g, prog, b.Handler)
	case ir.Return, ir.Raise, ir.Stop:
		// None.
	}
}
