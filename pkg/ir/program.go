package ir

// PC is a block address: the label of a basic block within a Program.
type PC int

// Location is a source position attached to an instruction or branch
// for diagnostics. It carries no analysis meaning.
type Location struct {
	File string
	Line int
}

// Cont is a continuation: a jump to a target block together with the
// actual arguments bound to that block's formal parameters.
type Cont struct {
	PC   PC
	Args []Var
}

// Stmt pairs an instruction with its source location.
type Stmt struct {
	Instr Instruction
	Loc   Location
}

// Terminator pairs a branch with its source location.
type Terminator struct {
	Branch Branch
	Loc    Location
}

// Block is an ordered sequence of parameter variables, an ordered body
// of instructions, and a terminating branch.
type Block struct {
	Params []Var
	Body   []Stmt
	Last   Terminator
}

// Program is a mapping from block address to Block, with one
// distinguished entry block, plus the variable pool that assigned every
// Var appearing in it.
type Program struct {
	Blocks map[PC]*Block
	Entry  PC
	Pool   *Pool
}

// NewProgram creates an empty program bound to the given pool.
func NewProgram(pool *Pool) *Program {
	return &Program{Blocks: make(map[PC]*Block), Pool: pool}
}

// NumVars returns nv, the number of variables allocated in this program.
func (p *Program) NumVars() int { return p.Pool.Count() }
