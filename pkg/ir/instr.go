package ir

// Instruction is one non-terminating statement within a block's body.
type Instruction interface {
	isInstruction()
}

// Let binds fresh x to the value of expression e. A variable is bound
// by exactly one Let in a well-formed program.
type Let struct {
	X    Var
	Expr Expression
}

// Assign mutates the existing variable X to the current value of Y.
// Unlike Let, X is not freshly bound here.
type Assign struct {
	X, Y Var
}

// SetField writes field I of heap block X with the value of Y.
type SetField struct {
	X Var
	I int
	Y Var
}

// ArraySet writes index Y of array X with the value of Z.
type ArraySet struct {
	X, Y, Z Var
}

// OffsetRef increments integer cell X by I.
type OffsetRef struct {
	X Var
	I int
}

func (Let) isInstruction()       {}
func (Assign) isInstruction()    {}
func (SetField) isInstruction()  {}
func (ArraySet) isInstruction()  {}
func (OffsetRef) isInstruction() {}
