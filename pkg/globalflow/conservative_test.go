package globalflow

import (
	"testing"

	"github.com/raymyers/ralph-cc/pkg/ir"
)

func TestConservativeDefaultsToTop(t *testing.T) {
	g := New()
	f := ir.VarOfIdx(7)
	if _, ok := g.ApproxOf(f).(Top); !ok {
		t.Errorf("ApproxOf(unseen) = %#v, want Top", g.ApproxOf(f))
	}
	if g.EscapeOf(f) != Escapes {
		t.Errorf("EscapeOf(unseen) = %v, want Escapes", g.EscapeOf(f))
	}
}

func TestConservativeRecordsDefs(t *testing.T) {
	pool := ir.NewPool()
	x := pool.Fresh()
	prog := ir.NewProgram(pool)
	prog.Blocks[0] = &ir.Block{
		Body: []ir.Stmt{{Instr: ir.Let{X: x, Expr: ir.Constant{Value: 1}}}},
		Last: ir.Terminator{Branch: ir.Return{X: x}},
	}

	g := Conservative(prog)
	d, ok := g.DefOf(x).(DefExpr)
	if !ok {
		t.Fatalf("DefOf(x) = %#v, want DefExpr", g.DefOf(x))
	}
	if _, ok := d.Expr.(ir.Constant); !ok {
		t.Errorf("DefOf(x).Expr = %#v, want Constant", d.Expr)
	}
	if g.EscapeOf(x) != Escapes {
		t.Errorf("EscapeOf(x) = %v, want Escapes (returned value)", g.EscapeOf(x))
	}
}
