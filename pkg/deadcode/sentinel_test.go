package deadcode

import (
	"testing"

	"github.com/raymyers/ralph-cc/pkg/ir"
)

func TestAddSentinelPrependsToEntry(t *testing.T) {
	pool := ir.NewPool()
	x := pool.Fresh()
	prog := ir.NewProgram(pool)
	prog.Entry = 0
	prog.Blocks[0] = &ir.Block{
		Body: []ir.Stmt{{Instr: ir.Let{X: x, Expr: ir.Constant{Value: 1}}}},
		Last: ir.Terminator{Branch: ir.Return{X: x}},
	}

	zero := AddSentinel(prog)

	if zero == x {
		t.Fatalf("sentinel should be a fresh variable")
	}
	entry := prog.Blocks[prog.Entry]
	if len(entry.Body) != 2 {
		t.Fatalf("expected the entry block to gain one statement, got %d", len(entry.Body))
	}
	let, ok := entry.Body[0].Instr.(ir.Let)
	if !ok || let.X != zero {
		t.Fatalf("expected the sentinel definition first, got %#v", entry.Body[0].Instr)
	}
	if c, ok := let.Expr.(ir.Constant); !ok || c.Value != 0 {
		t.Errorf("expected the sentinel to be defined as constant 0, got %#v", let.Expr)
	}
}
