package deadcode

import "github.com/raymyers/ralph-cc/pkg/ir"

// AddSentinel allocates the well-known dead variable this pass
// substitutes for every reference it proves unobserved, and extends
// prog's entry block with the one instruction that defines it:
// `let zero = 0`. Every rewritten program shares this single sentinel
// rather than minting one per elimination site, so two sentinel
// references are always the same variable.
func AddSentinel(prog *ir.Program) ir.Var {
	zero := prog.Pool.Fresh()
	entry := prog.Blocks[prog.Entry]
	entry.Body = append([]ir.Stmt{
		{Instr: ir.Let{X: zero, Expr: ir.Constant{Value: 0}}},
	}, entry.Body...)
	return zero
}
