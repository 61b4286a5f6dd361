package tac

import "github.com/dmars-lang/dmarsc/internal/types"

// Label names an anchor point for control transfer. Labels are attached
// to the quad that follows them, not modeled as a separate quad kind.
type Label string

// Quad is the tagged-variant base of every three-address instruction.
// Each carries the set of labels that mark its entry (usually zero or
// one, occasionally more than one when a fallthrough target and a jump
// target coincide).
type Quad interface {
	quadNode()
	Labels() []Label
	AddLabel(l Label)
}

type base struct {
	labels []Label
}

func (b *base) Labels() []Label  { return b.labels }
func (b *base) AddLabel(l Label) { b.labels = append(b.labels, l) }

type BinOp int

const (
	ADD BinOp = iota
	SUB
	MULT
	DIV
	EQ
	NEQ
	LT
	LTE
	GT
	GTE
	AND
	OR
)

type UnaryOp int

const (
	NEG UnaryOp = iota
	NOT
)

type BinOpQuad struct {
	base
	Op         BinOp
	Src1, Src2 Operand
	Dst        Operand
	Width      int
}

func (q *BinOpQuad) quadNode() {}

type UnaryOpQuad struct {
	base
	Op    UnaryOp
	Src   Operand
	Dst   Operand
	Width int
}

func (q *UnaryOpQuad) quadNode() {}

type AssignQuad struct {
	base
	Src, Dst Operand
}

func (q *AssignQuad) quadNode() {}

// ReadQuad lowers a `take` statement: dstType names which runtime getter
// to dispatch to at emission time.
type ReadQuad struct {
	base
	Dst     Operand
	DstType types.Type
}

func (q *ReadQuad) quadNode() {}

// WriteQuad lowers a `give` statement.
type WriteQuad struct {
	base
	Src     Operand
	SrcType types.Type
}

func (q *WriteQuad) quadNode() {}

type GotoQuad struct {
	base
	Target Label
}

func (q *GotoQuad) quadNode() {}

// IfzQuad branches to Target if Cond is zero (false).
type IfzQuad struct {
	base
	Cond   Operand
	Target Label
}

func (q *IfzQuad) quadNode() {}

// CallQuad invokes a procedure by its unmangled source name; emission is
// responsible for applying the fun_ prefix (spec.md §4.4). ArgCount lets
// codegen decide the stack-alignment padding for calls with more than
// six arguments without re-deriving it from a formal-type list.
type CallQuad struct {
	base
	Callee   string
	ArgCount int
}

func (q *CallQuad) quadNode() {}

type SetArgQuad struct {
	base
	Index   int
	Operand Operand
}

func (q *SetArgQuad) quadNode() {}

// GetArgQuad only appears at the head of a Procedure's body: one per
// formal, populating it from the calling convention on entry.
type GetArgQuad struct {
	base
	Index     int
	Operand   Operand
	Procedure string
}

func (q *GetArgQuad) quadNode() {}

type SetRetQuad struct {
	base
	Operand Operand
}

func (q *SetRetQuad) quadNode() {}

type GetRetQuad struct {
	base
	Operand Operand
}

func (q *GetRetQuad) quadNode() {}

// EnterQuad/LeaveQuad bracket a Procedure's body as prologue/epilogue
// markers; LeaveQuad's label is the procedure's epilogue target, the jump
// destination for every Return.
type EnterQuad struct {
	base
	Procedure string
}

func (q *EnterQuad) quadNode() {}

type LeaveQuad struct {
	base
	Procedure string
}

func (q *LeaveQuad) quadNode() {}

type ExitQuad struct{ base }

func (q *ExitQuad) quadNode() {}

// MagicQuad is reserved: lowering never emits one (Magic is a hard error
// in type analysis, so it can never reach a typed tree), but the variant
// is part of the closed vocabulary.
type MagicQuad struct{ base }

func (q *MagicQuad) quadNode() {}

type NopQuad struct{ base }

func (q *NopQuad) quadNode() {}

// LocQuad is reserved for a source-location marker; unused by this
// grammar's emission (no debug-info goal) but kept in the vocabulary.
type LocQuad struct{ base }

func (q *LocQuad) quadNode() {}
