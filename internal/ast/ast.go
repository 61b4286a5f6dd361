// Package ast defines the Drewno Mars abstract syntax tree.
//
// The tree is a closed set of tagged variants (no open-ended inheritance):
// every node implements Accept so that a pass can be expressed as a Visitor
// implementation rather than virtual methods scattered across node types,
// in the same shape as the reference interpreter's AST
// (internal/ast/ast_core.go in the teacher repo).
package ast

import "github.com/dmars-lang/dmarsc/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	Accept(v Visitor)
}

// Decl is a top-level or local declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Exp is an expression.
type Exp interface {
	Node
	expNode()
}

// TypeNode is a syntactic type annotation.
type TypeNode interface {
	Node
	typeNode()
}

// Program is the root of the tree: an ordered list of global declarations.
type Program struct {
	Globals []Decl
}

func (p *Program) Pos() token.Position {
	if len(p.Globals) == 0 {
		return token.Position{}
	}
	return token.Span(p.Globals[0].Pos(), p.Globals[len(p.Globals)-1].Pos())
}
func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }

// ---- Declarations ----------------------------------------------------

// VarDecl declares a variable (or, as FormalDecl, a function parameter).
type VarDecl struct {
	Token    token.Token // the identifier token
	ID       *ID
	Type     TypeNode
	Init     Exp // nil if no initializer; always nil for a FormalDecl
	IsFormal bool
}

func (d *VarDecl) Pos() token.Position {
	end := d.Type.Pos()
	if d.Init != nil {
		end = d.Init.Pos()
	}
	return token.Span(d.ID.Pos(), end)
}
func (d *VarDecl) Accept(v Visitor) { v.VisitVarDecl(d) }
func (d *VarDecl) declNode()        {}

// stmtNode lets a VarDecl also satisfy Stmt: local declarations appear
// directly in a function body's statement list alongside Assign, If,
// While, and the rest (spec.md §3's AST abridgement folds local VarDecls
// into the statement grammar rather than a separate DeclStmt wrapper).
func (d *VarDecl) stmtNode() {}

// FnDecl declares a function.
type FnDecl struct {
	Token   token.Token
	ID      *ID
	Formals []*VarDecl // each has IsFormal == true
	RetType TypeNode
	Body    []Stmt
}

func (d *FnDecl) Pos() token.Position { return token.Span(d.ID.Pos(), d.RetType.Pos()) }
func (d *FnDecl) Accept(v Visitor)    { v.VisitFnDecl(d) }
func (d *FnDecl) declNode()           {}

// ---- Statements --------------------------------------------------------

type AssignStmt struct {
	Dst Exp // a Loc (ID)
	Src Exp
}

func (s *AssignStmt) Pos() token.Position { return token.Span(s.Dst.Pos(), s.Src.Pos()) }
func (s *AssignStmt) Accept(v Visitor)    { v.VisitAssignStmt(s) }
func (s *AssignStmt) stmtNode()           {}

type TakeStmt struct {
	Token token.Token
	Dst   Exp
}

func (s *TakeStmt) Pos() token.Position { return token.Span(s.Token.Pos, s.Dst.Pos()) }
func (s *TakeStmt) Accept(v Visitor)    { v.VisitTakeStmt(s) }
func (s *TakeStmt) stmtNode()           {}

type GiveStmt struct {
	Token token.Token
	Src   Exp
}

func (s *GiveStmt) Pos() token.Position { return token.Span(s.Token.Pos, s.Src.Pos()) }
func (s *GiveStmt) Accept(v Visitor)    { v.VisitGiveStmt(s) }
func (s *GiveStmt) stmtNode()           {}

type ExitStmt struct{ Token token.Token }

func (s *ExitStmt) Pos() token.Position { return s.Token.Pos }
func (s *ExitStmt) Accept(v Visitor)    { v.VisitExitStmt(s) }
func (s *ExitStmt) stmtNode()           {}

type PostIncStmt struct {
	Token token.Token
	Loc   Exp
}

func (s *PostIncStmt) Pos() token.Position { return token.Span(s.Loc.Pos(), s.Token.Pos) }
func (s *PostIncStmt) Accept(v Visitor)    { v.VisitPostIncStmt(s) }
func (s *PostIncStmt) stmtNode()           {}

type PostDecStmt struct {
	Token token.Token
	Loc   Exp
}

func (s *PostDecStmt) Pos() token.Position { return token.Span(s.Loc.Pos(), s.Token.Pos) }
func (s *PostDecStmt) Accept(v Visitor)    { v.VisitPostDecStmt(s) }
func (s *PostDecStmt) stmtNode()           {}

type IfStmt struct {
	Token token.Token
	Cond  Exp
	Body  []Stmt
}

func (s *IfStmt) Pos() token.Position { return s.Token.Pos }
func (s *IfStmt) Accept(v Visitor)    { v.VisitIfStmt(s) }
func (s *IfStmt) stmtNode()           {}

type IfElseStmt struct {
	Token     token.Token
	Cond      Exp
	BodyTrue  []Stmt
	BodyFalse []Stmt
}

func (s *IfElseStmt) Pos() token.Position { return s.Token.Pos }
func (s *IfElseStmt) Accept(v Visitor)    { v.VisitIfElseStmt(s) }
func (s *IfElseStmt) stmtNode()           {}

type WhileStmt struct {
	Token token.Token
	Cond  Exp
	Body  []Stmt
}

func (s *WhileStmt) Pos() token.Position { return s.Token.Pos }
func (s *WhileStmt) Accept(v Visitor)    { v.VisitWhileStmt(s) }
func (s *WhileStmt) stmtNode()           {}

type ReturnStmt struct {
	Token token.Token
	Exp   Exp // nil for `return;`
}

func (s *ReturnStmt) Pos() token.Position { return s.Token.Pos }
func (s *ReturnStmt) Accept(v Visitor)    { v.VisitReturnStmt(s) }
func (s *ReturnStmt) stmtNode()           {}

type CallStmt struct {
	Call *CallExp
}

func (s *CallStmt) Pos() token.Position { return s.Call.Pos() }
func (s *CallStmt) Accept(v Visitor)    { v.VisitCallStmt(s) }
func (s *CallStmt) stmtNode()           {}

// ---- Expressions ---------------------------------------------------------

// ID is both a Loc (assignable/callable reference) and an Exp.
type ID struct {
	Token  token.Token
	Name   string
	Symbol Symbol // attached by name analysis; nil until then
}

func (n *ID) Pos() token.Position { return n.Token.Pos }
func (n *ID) Accept(v Visitor)    { v.VisitID(n) }
func (n *ID) expNode()            {}

// AttachSymbol binds the resolved symbol to this identifier use. Name
// analysis is the only pass that mutates the tree; this is its mutation.
func (n *ID) AttachSymbol(sym Symbol) { n.Symbol = sym }

// Symbol is the minimal view of symbols.Symbol that ast needs, expressed
// as an interface so that ast does not import symbols.
type Symbol interface {
	SymbolName() string
}

type IntLit struct {
	Token token.Token
	Value int64
}

func (n *IntLit) Pos() token.Position { return n.Token.Pos }
func (n *IntLit) Accept(v Visitor)    { v.VisitIntLit(n) }
func (n *IntLit) expNode()            {}

type StrLit struct {
	Token token.Token
	Value string
}

func (n *StrLit) Pos() token.Position { return n.Token.Pos }
func (n *StrLit) Accept(v Visitor)    { v.VisitStrLit(n) }
func (n *StrLit) expNode()            {}

type True struct{ Token token.Token }

func (n *True) Pos() token.Position { return n.Token.Pos }
func (n *True) Accept(v Visitor)    { v.VisitTrue(n) }
func (n *True) expNode()            {}

type False struct{ Token token.Token }

func (n *False) Pos() token.Position { return n.Token.Pos }
func (n *False) Accept(v Visitor)    { v.VisitFalse(n) }
func (n *False) expNode()            {}

// Magic is the unimplemented expression: accepted by the parser, rejected
// as an internal error if type analysis ever walks into it.
type Magic struct{ Token token.Token }

func (n *Magic) Pos() token.Position { return n.Token.Pos }
func (n *Magic) Accept(v Visitor)    { v.VisitMagic(n) }
func (n *Magic) expNode()            {}

type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

type UnaryExp struct {
	Token token.Token
	Op    UnaryOp
	Exp   Exp
}

func (n *UnaryExp) Pos() token.Position { return token.Span(n.Token.Pos, n.Exp.Pos()) }
func (n *UnaryExp) Accept(v Visitor)    { v.VisitUnaryExp(n) }
func (n *UnaryExp) expNode()            {}

type BinOp int

const (
	Plus BinOp = iota
	Minus
	Times
	Divide
	And
	Or
	Equals
	NotEquals
	Less
	LessEq
	Greater
	GreaterEq
)

type BinaryExp struct {
	Op   BinOp
	LHS  Exp
	RHS  Exp
}

func (n *BinaryExp) Pos() token.Position { return token.Span(n.LHS.Pos(), n.RHS.Pos()) }
func (n *BinaryExp) Accept(v Visitor)    { v.VisitBinaryExp(n) }
func (n *BinaryExp) expNode()            {}

type CallExp struct {
	Callee *ID
	Args   []Exp
	EndPos token.Position
}

func (n *CallExp) Pos() token.Position { return token.Span(n.Callee.Pos(), n.EndPos) }
func (n *CallExp) Accept(v Visitor)    { v.VisitCallExp(n) }
func (n *CallExp) expNode()            {}

// ---- Type nodes ------------------------------------------------------

type IntType struct{ Token token.Token }

func (n *IntType) Pos() token.Position { return n.Token.Pos }
func (n *IntType) Accept(v Visitor)    { v.VisitIntType(n) }
func (n *IntType) typeNode()           {}

type BoolType struct{ Token token.Token }

func (n *BoolType) Pos() token.Position { return n.Token.Pos }
func (n *BoolType) Accept(v Visitor)    { v.VisitBoolType(n) }
func (n *BoolType) typeNode()           {}

type VoidType struct{ Token token.Token }

func (n *VoidType) Pos() token.Position { return n.Token.Pos }
func (n *VoidType) Accept(v Visitor)    { v.VisitVoidType(n) }
func (n *VoidType) typeNode()           {}

type StringType struct{ Token token.Token }

func (n *StringType) Pos() token.Position { return n.Token.Pos }
func (n *StringType) Accept(v Visitor)    { v.VisitStringType(n) }
func (n *StringType) typeNode()           {}

// ImmutableType wraps another type node with the "perfect"/immutable
// modifier.
type ImmutableType struct {
	Token token.Token
	Inner TypeNode
}

func (n *ImmutableType) Pos() token.Position { return token.Span(n.Token.Pos, n.Inner.Pos()) }
func (n *ImmutableType) Accept(v Visitor)    { v.VisitImmutableType(n) }
func (n *ImmutableType) typeNode()           {}
