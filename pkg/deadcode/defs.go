package deadcode

import "github.com/raymyers/ralph-cc/pkg/ir"

// Def records how a variable is bound: Expr(e) for a Let, or Param for
// everything else (formal parameters and Assign targets).
type Def interface {
	isDef()
}

// DefExpr records that a variable is bound by Let to Expr.
type DefExpr struct {
	Expr ir.Expression
}

// DefParam records a parameter or an Assign target: a variable whose
// value is not fixed by a single static definition.
type DefParam struct{}

func (DefExpr) isDef()  {}
func (DefParam) isDef() {}

// Definitions is S1: a single syntactic walk of prog's blocks producing
// the definition map. Every variable is pre-initialized to DefParam so
// that block and closure formals are classified correctly without a
// second pass.
func Definitions(nv int, prog *ir.Program) []Def {
	defs := make([]Def, nv)
	for i := range defs {
		defs[i] = DefParam{}
	}
	for _, pc := range ir.SortedPCs(prog) {
		for _, stmt := range prog.Blocks[pc].Body {
			switch in := stmt.Instr.(type) {
			case ir.Let:
				defs[in.X.Idx()] = DefExpr{Expr: in.Expr}
			case ir.Assign:
				defs[in.X.Idx()] = DefParam{}
			}
		}
	}
	return defs
}
