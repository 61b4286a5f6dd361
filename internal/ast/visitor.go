package ast

// Visitor gives a pass flat double dispatch over the closed AST
// vocabulary instead of virtual methods scattered across node types. The
// unparser implements it; name analysis, type analysis and TAC lowering
// walk the tree with direct type switches instead.
type Visitor interface {
	VisitProgram(n *Program)

	VisitVarDecl(n *VarDecl)
	VisitFnDecl(n *FnDecl)

	VisitAssignStmt(n *AssignStmt)
	VisitTakeStmt(n *TakeStmt)
	VisitGiveStmt(n *GiveStmt)
	VisitExitStmt(n *ExitStmt)
	VisitPostIncStmt(n *PostIncStmt)
	VisitPostDecStmt(n *PostDecStmt)
	VisitIfStmt(n *IfStmt)
	VisitIfElseStmt(n *IfElseStmt)
	VisitWhileStmt(n *WhileStmt)
	VisitReturnStmt(n *ReturnStmt)
	VisitCallStmt(n *CallStmt)

	VisitID(n *ID)
	VisitIntLit(n *IntLit)
	VisitStrLit(n *StrLit)
	VisitTrue(n *True)
	VisitFalse(n *False)
	VisitMagic(n *Magic)
	VisitUnaryExp(n *UnaryExp)
	VisitBinaryExp(n *BinaryExp)
	VisitCallExp(n *CallExp)

	VisitIntType(n *IntType)
	VisitBoolType(n *BoolType)
	VisitVoidType(n *VoidType)
	VisitStringType(n *StringType)
	VisitImmutableType(n *ImmutableType)
}

// BaseVisitor implements every Visitor method as a no-op, so that a
// concrete visitor only needs to override the handful of node kinds it
// cares about (e.g. the unparser overrides everything, but a small
// tree-query pass might override just a couple of methods).
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(n *Program)             {}
func (BaseVisitor) VisitVarDecl(n *VarDecl)              {}
func (BaseVisitor) VisitFnDecl(n *FnDecl)                {}
func (BaseVisitor) VisitAssignStmt(n *AssignStmt)        {}
func (BaseVisitor) VisitTakeStmt(n *TakeStmt)            {}
func (BaseVisitor) VisitGiveStmt(n *GiveStmt)            {}
func (BaseVisitor) VisitExitStmt(n *ExitStmt)            {}
func (BaseVisitor) VisitPostIncStmt(n *PostIncStmt)      {}
func (BaseVisitor) VisitPostDecStmt(n *PostDecStmt)      {}
func (BaseVisitor) VisitIfStmt(n *IfStmt)                {}
func (BaseVisitor) VisitIfElseStmt(n *IfElseStmt)        {}
func (BaseVisitor) VisitWhileStmt(n *WhileStmt)          {}
func (BaseVisitor) VisitReturnStmt(n *ReturnStmt)        {}
func (BaseVisitor) VisitCallStmt(n *CallStmt)            {}
func (BaseVisitor) VisitID(n *ID)                        {}
func (BaseVisitor) VisitIntLit(n *IntLit)                {}
func (BaseVisitor) VisitStrLit(n *StrLit)                {}
func (BaseVisitor) VisitTrue(n *True)                    {}
func (BaseVisitor) VisitFalse(n *False)                  {}
func (BaseVisitor) VisitMagic(n *Magic)                  {}
func (BaseVisitor) VisitUnaryExp(n *UnaryExp)            {}
func (BaseVisitor) VisitBinaryExp(n *BinaryExp)          {}
func (BaseVisitor) VisitCallExp(n *CallExp)              {}
func (BaseVisitor) VisitIntType(n *IntType)              {}
func (BaseVisitor) VisitBoolType(n *BoolType)            {}
func (BaseVisitor) VisitVoidType(n *VoidType)            {}
func (BaseVisitor) VisitStringType(n *StringType)        {}
func (BaseVisitor) VisitImmutableType(n *ImmutableType)  {}
