package ir

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// This file defines the on-disk surface syntax for a Program: a small
// YAML document the CLI (cmd/ralph-cc) reads and writes, so the
// closure/tuple IR the dead-code pass operates on can be exercised
// end-to-end without a full C-to-closure-IR front end.

type surfaceProgram struct {
	Vars   int             `yaml:"vars"`
	Entry  int             `yaml:"entry"`
	Blocks []surfaceBlock  `yaml:"blocks"`
}

type surfaceBlock struct {
	PC     int           `yaml:"pc"`
	Params []int         `yaml:"params,omitempty"`
	Body   []surfaceStmt `yaml:"body,omitempty"`
	Last   surfaceTerm   `yaml:"last"`
}

type surfaceStmt struct {
	Op   string      `yaml:"op"`
	X    int         `yaml:"x,omitempty"`
	Y    int         `yaml:"y,omitempty"`
	Z    int         `yaml:"z,omitempty"`
	I    int         `yaml:"i,omitempty"`
	Expr *surfaceExpr `yaml:"expr,omitempty"`
}

type surfaceExpr struct {
	Op     string        `yaml:"op"`
	Fn     int           `yaml:"fn,omitempty"`
	Args   []int         `yaml:"args,omitempty"`
	Tag    int           `yaml:"tag,omitempty"`
	Vars   []int         `yaml:"vars,omitempty"`
	Kind   int           `yaml:"kind,omitempty"`
	Z      int           `yaml:"z,omitempty"`
	I      int           `yaml:"i,omitempty"`
	Value  any           `yaml:"value,omitempty"`
	Params []int         `yaml:"params,omitempty"`
	Cont   *surfaceCont  `yaml:"cont,omitempty"`
	Prim   string        `yaml:"prim,omitempty"`
	PArgs  []surfaceArg  `yaml:"prim_args,omitempty"`
}

type surfaceArg struct {
	Var   *int `yaml:"var,omitempty"`
	Const any  `yaml:"const,omitempty"`
}

type surfaceCont struct {
	PC   int   `yaml:"pc"`
	Args []int `yaml:"args,omitempty"`
}

type surfaceTerm struct {
	Op       string         `yaml:"op"`
	X        int            `yaml:"x,omitempty"`
	NoTrace  bool           `yaml:"no_trace,omitempty"`
	Cont     *surfaceCont   `yaml:"cont,omitempty"`
	IfTrue   *surfaceCont   `yaml:"if_true,omitempty"`
	IfFalse  *surfaceCont   `yaml:"if_false,omitempty"`
	Ints     []surfaceCont  `yaml:"ints,omitempty"`
	Tags     []surfaceCont  `yaml:"tags,omitempty"`
	Body     *surfaceCont   `yaml:"body,omitempty"`
	ExnVar   int            `yaml:"exn_var,omitempty"`
	Handler  *surfaceCont   `yaml:"handler,omitempty"`
	ExtraPCs []int          `yaml:"extra_pcs,omitempty"`
}

// DecodeProgram parses the YAML surface syntax into a Program.
func DecodeProgram(data []byte) (*Program, error) {
	var sp surfaceProgram
	if err := yaml.Unmarshal(data, &sp); err != nil {
		return nil, fmt.Errorf("ir: decoding program: %w", err)
	}
	pool := NewPool()
	pool.Grow(sp.Vars)
	prog := NewProgram(pool)
	prog.Entry = PC(sp.Entry)

	for _, b := range sp.Blocks {
		block := &Block{Params: varsOf(b.Params)}
		for _, s := range b.Body {
			instr, err := decodeInstr(s)
			if err != nil {
				return nil, err
			}
			block.Body = append(block.Body, Stmt{Instr: instr})
		}
		branch, err := decodeTerm(b.Last)
		if err != nil {
			return nil, err
		}
		block.Last = Terminator{Branch: branch}
		prog.Blocks[PC(b.PC)] = block
	}
	return prog, nil
}

// EncodeProgram renders prog back into the YAML surface syntax.
func EncodeProgram(prog *Program) ([]byte, error) {
	sp := surfaceProgram{Vars: prog.NumVars(), Entry: int(prog.Entry)}
	for _, pc := range sortedPCs(prog) {
		b := prog.Blocks[pc]
		sb := surfaceBlock{PC: int(pc), Params: idxOf(b.Params), Last: encodeTerm(b.Last.Branch)}
		for _, stmt := range b.Body {
			sb.Body = append(sb.Body, encodeInstr(stmt.Instr))
		}
		sp.Blocks = append(sp.Blocks, sb)
	}
	out, err := yaml.Marshal(sp)
	if err != nil {
		return nil, fmt.Errorf("ir: encoding program: %w", err)
	}
	return out, nil
}

func varsOf(idxs []int) []Var {
	out := make([]Var, len(idxs))
	for i, x := range idxs {
		out[i] = VarOfIdx(x)
	}
	return out
}

func idxOf(vs []Var) []int {
	if len(vs) == 0 {
		return nil
	}
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v.Idx()
	}
	return out
}

func contOf(c *surfaceCont) Cont {
	if c == nil {
		return Cont{}
	}
	return Cont{PC: PC(c.PC), Args: varsOf(c.Args)}
}

func encodeCont(c Cont) *surfaceCont {
	return &surfaceCont{PC: int(c.PC), Args: idxOf(c.Args)}
}

func decodeInstr(s surfaceStmt) (Instruction, error) {
	switch s.Op {
	case "let":
		if s.Expr == nil {
			return nil, fmt.Errorf("ir: let %d missing expr", s.X)
		}
		e, err := decodeExpr(*s.Expr)
		if err != nil {
			return nil, err
		}
		return Let{X: VarOfIdx(s.X), Expr: e}, nil
	case "assign":
		return Assign{X: VarOfIdx(s.X), Y: VarOfIdx(s.Y)}, nil
	case "set_field":
		return SetField{X: VarOfIdx(s.X), I: s.I, Y: VarOfIdx(s.Y)}, nil
	case "array_set":
		return ArraySet{X: VarOfIdx(s.X), Y: VarOfIdx(s.Y), Z: VarOfIdx(s.Z)}, nil
	case "offset_ref":
		return OffsetRef{X: VarOfIdx(s.X), I: s.I}, nil
	default:
		return nil, fmt.Errorf("ir: unknown instruction op %q", s.Op)
	}
}

func encodeInstr(instr Instruction) surfaceStmt {
	switch i := instr.(type) {
	case Let:
		e := encodeExpr(i.Expr)
		return surfaceStmt{Op: "let", X: i.X.Idx(), Expr: &e}
	case Assign:
		return surfaceStmt{Op: "assign", X: i.X.Idx(), Y: i.Y.Idx()}
	case SetField:
		return surfaceStmt{Op: "set_field", X: i.X.Idx(), I: i.I, Y: i.Y.Idx()}
	case ArraySet:
		return surfaceStmt{Op: "array_set", X: i.X.Idx(), Y: i.Y.Idx(), Z: i.Z.Idx()}
	case OffsetRef:
		return surfaceStmt{Op: "offset_ref", X: i.X.Idx(), I: i.I}
	default:
		return surfaceStmt{Op: "?"}
	}
}

func decodeExpr(e surfaceExpr) (Expression, error) {
	switch e.Op {
	case "apply":
		return Apply{Fn: VarOfIdx(e.Fn), Args: varsOf(e.Args)}, nil
	case "block":
		return BlockExpr{Tag: e.Tag, Vars: varsOf(e.Vars), Kind: BlockKind(e.Kind)}, nil
	case "field":
		return Field{Z: VarOfIdx(e.Z), I: e.I}, nil
	case "constant":
		return Constant{Value: e.Value}, nil
	case "closure":
		return Closure{Params: varsOf(e.Params), Cont: contOf(e.Cont)}, nil
	case "prim":
		args := make([]Arg, len(e.PArgs))
		for i, a := range e.PArgs {
			if a.Var != nil {
				args[i] = Pv{V: VarOfIdx(*a.Var)}
			} else {
				args[i] = Pc{Value: a.Const}
			}
		}
		return Prim{Op: e.Prim, Args: args}, nil
	default:
		return nil, fmt.Errorf("ir: unknown expression op %q", e.Op)
	}
}

func encodeExpr(e Expression) surfaceExpr {
	switch ex := e.(type) {
	case Apply:
		return surfaceExpr{Op: "apply", Fn: ex.Fn.Idx(), Args: idxOf(ex.Args)}
	case BlockExpr:
		return surfaceExpr{Op: "block", Tag: ex.Tag, Vars: idxOf(ex.Vars), Kind: int(ex.Kind)}
	case Field:
		return surfaceExpr{Op: "field", Z: ex.Z.Idx(), I: ex.I}
	case Constant:
		return surfaceExpr{Op: "constant", Value: ex.Value}
	case Closure:
		return surfaceExpr{Op: "closure", Params: idxOf(ex.Params), Cont: encodeCont(ex.Cont)}
	case Prim:
		args := make([]surfaceArg, len(ex.Args))
		for i, a := range ex.Args {
			switch v := a.(type) {
			case Pv:
				idx := v.V.Idx()
				args[i] = surfaceArg{Var: &idx}
			case Pc:
				args[i] = surfaceArg{Const: v.Value}
			}
		}
		return surfaceExpr{Op: "prim", Prim: ex.Op, PArgs: args}
	default:
		return surfaceExpr{Op: "?"}
	}
}

func decodeTerm(t surfaceTerm) (Branch, error) {
	switch t.Op {
	case "return":
		return Return{X: VarOfIdx(t.X)}, nil
	case "raise":
		return Raise{X: VarOfIdx(t.X), NoTrace: t.NoTrace}, nil
	case "stop":
		return Stop{}, nil
	case "goto":
		return Goto{Cont: contOf(t.Cont)}, nil
	case "cond":
		return CondBr{X: VarOfIdx(t.X), IfTrue: contOf(t.IfTrue), IfFalse: contOf(t.IfFalse)}, nil
	case "switch":
		ints := make([]Cont, len(t.Ints))
		for i, c := range t.Ints {
			ints[i] = contOf(&c)
		}
		tags := make([]Cont, len(t.Tags))
		for i, c := range t.Tags {
			tags[i] = contOf(&c)
		}
		return Switch{X: VarOfIdx(t.X), Ints: ints, Tags: tags}, nil
	case "pushtrap":
		pcs := make([]PC, len(t.ExtraPCs))
		for i, p := range t.ExtraPCs {
			pcs[i] = PC(p)
		}
		return Pushtrap{Body: contOf(t.Body), ExnVar: VarOfIdx(t.ExnVar), Handler: contOf(t.Handler), ExtraPCs: pcs}, nil
	case "poptrap":
		return Poptrap{Cont: contOf(t.Cont)}, nil
	default:
		return nil, fmt.Errorf("ir: unknown branch op %q", t.Op)
	}
}

func encodeTerm(b Branch) surfaceTerm {
	switch br := b.(type) {
	case Return:
		return surfaceTerm{Op: "return", X: br.X.Idx()}
	case Raise:
		return surfaceTerm{Op: "raise", X: br.X.Idx(), NoTrace: br.NoTrace}
	case Stop:
		return surfaceTerm{Op: "stop"}
	case Goto:
		return surfaceTerm{Op: "goto", Cont: encodeCont(br.Cont)}
	case CondBr:
		return surfaceTerm{Op: "cond", X: br.X.Idx(), IfTrue: encodeCont(br.IfTrue), IfFalse: encodeCont(br.IfFalse)}
	case Switch:
		ints := make([]surfaceCont, len(br.Ints))
		for i, c := range br.Ints {
			ints[i] = *encodeCont(c)
		}
		tags := make([]surfaceCont, len(br.Tags))
		for i, c := range br.Tags {
			tags[i] = *encodeCont(c)
		}
		return surfaceTerm{Op: "switch", X: br.X.Idx(), Ints: ints, Tags: tags}
	case Pushtrap:
		pcs := make([]int, len(br.ExtraPCs))
		for i, p := range br.ExtraPCs {
			pcs[i] = int(p)
		}
		return surfaceTerm{Op: "pushtrap", Body: encodeCont(br.Body), ExnVar: br.ExnVar.Idx(), Handler: encodeCont(br.Handler), ExtraPCs: pcs}
	case Poptrap:
		return surfaceTerm{Op: "poptrap", Cont: encodeCont(br.Cont)}
	default:
		return surfaceTerm{Op: "?"}
	}
}
