package globalflow

import "github.com/raymyers/ralph-cc/pkg/ir"

// Conservative builds a GlobalInfo for prog that answers every query
// with the safe over-approximation: every Apply target is Top (so the
// dead-code pass never fabricates a Propagate edge it cannot justify),
// and every variable may escape. It fills Defs honestly from a single
// syntactic walk (the same walk pkg/deadcode's Definitions performs),
// since that much requires no inter-procedural reasoning at all.
//
// This is a stand-in for the real global-flow collaborator, not a
// reimplementation of it. See the package doc comment.
func Conservative(prog *ir.Program) *GlobalInfo {
	g := New()
	for _, pc := range ir.SortedPCs(prog) {
		b := prog.Blocks[pc]
		for _, v := range b.Params {
			g.Defs[v] = DefParam{}
		}
		for _, stmt := range b.Body {
			switch in := stmt.Instr.(type) {
			case ir.Let:
				g.Defs[in.X] = DefExpr{Expr: in.Expr}
				// Apply targets are left unset; ApproxOf defaults to
				// Top, the safe over-approximation for "may be any
				// closure" that a real flow analysis would refine.
			case ir.Assign:
				g.Defs[in.X] = DefParam{}
			}
		}
		if ret, ok := b.Last.Branch.(ir.Return); ok {
			g.MayEscape[ret.X] = Escapes
		}
	}
	return g
}
