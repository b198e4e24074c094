package deadcode

import (
	"github.com/raymyers/ralph-cc/pkg/deadcode/fieldset"
	"github.com/raymyers/ralph-cc/pkg/globalflow"
	"github.com/raymyers/ralph-cc/pkg/ir"
	"github.com/raymyers/ralph-cc/pkg/purity"
)

// Seed is S3: it computes the initial liveness array, the set of
// variables that are live independently of anything that might read
// them later. Two kinds of root exist:
//
//   - direct observation: a variable used as a branch condition, a
//     raised value, an exception binder, or an array index is always
//     examined by the runtime, so it starts at Top.
//   - mandatory operands: an instruction this pass never deletes
//     (Apply's callee, a side-effecting Prim's arguments, a written
//     SetField/ArraySet value, an ArraySet array/index) must keep its
//     exact operands, so those operands start at Top regardless of
//     whether the instruction's own result is ever read. SetField and
//     OffsetRef promote the mutated block itself to Live({i}): the
//     write makes field i of that block observable through any other
//     reference to it.
//
// Everything else starts at Dead and is raised only by Solve
// propagating along the use-graph.
func Seed(nv int, prog *ir.Program, info *globalflow.GlobalInfo, defs []Def, pure *purity.Oracle) []Liveness {
	lv := make([]Liveness, nv)
	for i := range lv {
		lv[i] = Dead
	}
	raise := func(v ir.Var) { lv[v.Idx()] = Top }
	contribute := func(v ir.Var, l Liveness) { lv[v.Idx()] = lv[v.Idx()].Join(l) }

	for _, pc := range ir.SortedPCs(prog) {
		b := prog.Blocks[pc]
		for _, stmt := range b.Body {
			seedInstr(stmt.Instr, info, raise, contribute, pure)
		}
		seedBranch(b.Last.Branch, info, raise)
	}
	return lv
}

func seedInstr(instr ir.Instruction, info *globalflow.GlobalInfo, raise func(ir.Var), contribute func(ir.Var, Liveness), pure *purity.Oracle) {
	switch in := instr.(type) {
	case ir.Let:
		seedExpr(in.Expr, info, raise, pure)
	case ir.SetField:
		raise(in.Y)
		contribute(in.X, Live(fieldset.Of(in.I)))
	case ir.ArraySet:
		raise(in.X)
		raise(in.Y)
		raise(in.Z)
	case ir.OffsetRef:
		contribute(in.X, Live(fieldset.Of(in.I)))
	}
}

func seedExpr(e ir.Expression, info *globalflow.GlobalInfo, raise func(ir.Var), pure *purity.Oracle) {
	switch ex := e.(type) {
	case ir.Apply:
		// The callee's identity must always survive intact: a call
		// site is never deleted, and substituting a sentinel for Fn
		// would call the wrong closure.
		raise(ex.Fn)
		if _, ok := info.ApproxOf(ex.Fn).(globalflow.Values); !ok {
			// The callee can't be enumerated, so every actual argument
			// might matter to it; no use-graph edge can refine this.
			for _, a := range ex.Args {
				raise(a)
			}
		}
	case ir.Prim:
		if pure.Pure(ex) {
			return
		}
		for _, a := range ex.Args {
			if pv, ok := a.(ir.Pv); ok {
				raise(pv.V)
			}
		}
	case ir.BlockExpr:
		if pure.Pure(ex) {
			return
		}
		for _, v := range ex.Vars {
			raise(v)
		}
	case ir.Field:
		if pure.Pure(ex) {
			return
		}
		raise(ex.Z)
	}
}

func seedBranch(br ir.Branch, info *globalflow.GlobalInfo, raise func(ir.Var)) {
	switch b := br.(type) {
	case ir.Return:
		// A return reaching a caller we can see through (a known,
		// exact Apply match) is resolved by propagation via the
		// ReturnVals edge wired in Usages; anything else is treated as
		// an escaping observation.
		if info.EscapeOf(b.X) != globalflow.NoEscape {
			raise(b.X)
		}
	case ir.Raise:
		raise(b.X)
	case ir.CondBr:
		raise(b.X)
	case ir.Switch:
		raise(b.X)
	case ir.Pushtrap:
		raise(b.ExnVar)
	}
}
