package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var cmpVar = cmp.Comparer(func(a, b Var) bool { return a.Idx() == b.Idx() })

func TestDecodeEncodeProgramRoundTrip(t *testing.T) {
	src := []byte(`
vars: 3
entry: 0
blocks:
  - pc: 0
    body:
      - op: let
        x: 2
        expr:
          op: block
          tag: 0
          vars: [0, 1]
    last:
      op: return
      x: 2
`)
	prog, err := DecodeProgram(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if prog.NumVars() != 3 {
		t.Fatalf("NumVars() = %d, want 3", prog.NumVars())
	}
	block := prog.Blocks[0]
	if block == nil {
		t.Fatal("missing entry block")
	}
	let, ok := block.Body[0].Instr.(Let)
	if !ok {
		t.Fatalf("expected Let, got %T", block.Body[0].Instr)
	}
	be, ok := let.Expr.(BlockExpr)
	if !ok {
		t.Fatalf("expected BlockExpr, got %T", let.Expr)
	}
	if len(be.Vars) != 2 || be.Vars[0].Idx() != 0 || be.Vars[1].Idx() != 1 {
		t.Errorf("unexpected block vars: %v", be.Vars)
	}
	if _, ok := block.Last.Branch.(Return); !ok {
		t.Fatalf("expected Return, got %T", block.Last.Branch)
	}

	out, err := EncodeProgram(prog)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	prog2, err := DecodeProgram(out)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if prog2.NumVars() != prog.NumVars() {
		t.Errorf("round trip changed NumVars: %d vs %d", prog2.NumVars(), prog.NumVars())
	}
	if diff := cmp.Diff(prog.Blocks, prog2.Blocks, cmpVar); diff != "" {
		t.Errorf("round trip changed block structure (-want +got):\n%s", diff)
	}
}

func TestDecodeProgramUnknownOp(t *testing.T) {
	_, err := DecodeProgram([]byte(`
vars: 1
entry: 0
blocks:
  - pc: 0
    last:
      op: frobnicate
`))
	if err == nil {
		t.Fatal("expected error for unknown branch op")
	}
}
