package deadcode

import "github.com/raymyers/ralph-cc/pkg/ir"

// Zero is S5: it rewrites prog in place, replacing references to a
// variable lv marks Dead with zero, the shared sentinel AddSentinel
// installed. Assign's source and the mutated block of a SetField,
// ArraySet or OffsetRef are never replaced. It never deletes an instruction or a branch target; only
// variable operands change, with one exception: a trailing run of
// now-sentinel fields in a heap-block literal is trimmed, since a
// shorter block allocation is observably equivalent once nothing reads
// past the new length. Interior fields are never compacted; doing so
// would shift the index of every field after them.
func Zero(prog *ir.Program, lv []Liveness, zero ir.Var) {
	for _, pc := range ir.SortedPCs(prog) {
		zeroBlock(prog.Blocks[pc], lv, zero)
	}
}

func isDead(v ir.Var, lv []Liveness) bool {
	return lv[v.Idx()].IsDead()
}

func sigma(v ir.Var, lv []Liveness, zero ir.Var) ir.Var {
	if v == zero {
		return v
	}
	if isDead(v, lv) {
		return zero
	}
	return v
}

func zeroBlock(b *ir.Block, lv []Liveness, zero ir.Var) {
	for i, stmt := range b.Body {
		b.Body[i].Instr = zeroInstr(stmt.Instr, lv, zero)
	}
	b.Last.Branch = zeroBranch(b.Last.Branch, lv, zero)
}

func zeroInstr(instr ir.Instruction, lv []Liveness, zero ir.Var) ir.Instruction {
	switch in := instr.(type) {
	case ir.Let:
		in.Expr = zeroExpr(in.Expr, lv, zero)
		return in
	case ir.Assign:
		// Assign and Offset_ref are left unchanged by this instruction's
		// own rewrite rule (Set_field and Array_set only have their
		// written operands passed through sigma); Assign's Y is never an
		// unconditional seed root (propagation is its only liveness
		// source), so rewriting it here would zero out a variable whose
		// only fault is not being independently observed yet.
		return in
	case ir.SetField:
		in.Y = sigma(in.Y, lv, zero)
		return in
	case ir.ArraySet:
		in.Y = sigma(in.Y, lv, zero)
		in.Z = sigma(in.Z, lv, zero)
		return in
	case ir.OffsetRef:
		return in
	default:
		return instr
	}
}

func zeroExpr(e ir.Expression, lv []Liveness, zero ir.Var) ir.Expression {
	switch ex := e.(type) {
	case ir.Apply:
		ex.Fn = sigma(ex.Fn, lv, zero)
		for i, a := range ex.Args {
			ex.Args[i] = sigma(a, lv, zero)
		}
		return ex
	case ir.BlockExpr:
		for i, v := range ex.Vars {
			ex.Vars[i] = sigma(v, lv, zero)
		}
		ex.Vars = trimTrailingSentinel(ex.Vars, zero)
		return ex
	case ir.Field:
		ex.Z = sigma(ex.Z, lv, zero)
		return ex
	case ir.Closure:
		ex.Cont = zeroCont(ex.Cont, lv, zero)
		return ex
	case ir.Prim:
		for i, a := range ex.Args {
			if pv, ok := a.(ir.Pv); ok {
				ex.Args[i] = ir.Pv{V: sigma(pv.V, lv, zero)}
			}
		}
		return ex
	default:
		return e
	}
}

// trimTrailingSentinel strips the longest suffix of vars that are all
// the sentinel. The block's tag is untouched, so a fully-trimmed
// literal is still distinguishable from "no block at all" by its tag.
func trimTrailingSentinel(vars []ir.Var, zero ir.Var) []ir.Var {
	n := len(vars)
	for n > 0 && vars[n-1] == zero {
		n--
	}
	return vars[:n]
}

func zeroBranch(br ir.Branch, lv []Liveness, zero ir.Var) ir.Branch {
	switch b := br.(type) {
	case ir.Return:
		b.X = sigma(b.X, lv, zero)
		return b
	case ir.Raise:
		b.X = sigma(b.X, lv, zero)
		return b
	case ir.CondBr:
		b.X = sigma(b.X, lv, zero)
		b.IfTrue = zeroCont(b.IfTrue, lv, zero)
		b.IfFalse = zeroCont(b.IfFalse, lv, zero)
		return b
	case ir.Switch:
		b.X = sigma(b.X, lv, zero)
		for i, c := range b.Ints {
			b.Ints[i] = zeroCont(c, lv, zero)
		}
		for i, c := range b.Tags {
			b.Tags[i] = zeroCont(c, lv, zero)
		}
		return b
	case ir.Goto:
		b.Cont = zeroCont(b.Cont, lv, zero)
		return b
	case ir.Pushtrap:
		b.Body = zeroCont(b.Body, lv, zero)
		b.Handler = zeroCont(b.Handler, lv, zero)
		return b
	case ir.Poptrap:
		b.Cont = zeroCont(b.Cont, lv, zero)
		return b
	default:
		return br
	}
}

func zeroCont(c ir.Cont, lv []Liveness, zero ir.Var) ir.Cont {
	for i, a := range c.Args {
		c.Args[i] = sigma(a, lv, zero)
	}
	return c
}
