package tac

import (
	"fmt"

	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/symbols"
	"github.com/dmars-lang/dmarsc/internal/types"
)

// lowerer carries the mutable state of one lowering pass, mirroring the
// shape of the teacher's Compiler: a per-procedure cursor over the body
// being built, plus counters for fresh temporaries and labels shared
// across the whole program.
type lowerer struct {
	ctx       *types.Context
	nodeTypes map[ast.Node]types.Type

	prog *Program

	proc      *Procedure
	initTemps []*AuxOpd // temporaries used by Program.Init, homed in main's frame
	tempCount int
	labelNum  int
	strNum    int
}

// Lower walks prog (which must already have passed name and type
// analysis) and produces its three-address form.
func Lower(prog *ast.Program, nodeTypes map[ast.Node]types.Type, ctx *types.Context) *Program {
	l := &lowerer{
		ctx:       ctx,
		nodeTypes: nodeTypes,
		prog:      &Program{Globals: make(map[*symbols.Symbol]*SymOpd)},
	}
	for _, decl := range prog.Globals {
		switch n := decl.(type) {
		case *ast.VarDecl:
			l.lowerGlobalVarDecl(n)
		case *ast.FnDecl:
			l.lowerFnDecl(n)
		}
	}
	if len(l.prog.Init) > 0 {
		for _, proc := range l.prog.Procedures {
			if proc.Name == "main" {
				insertAt := 1 + len(proc.Formals) // past Enter, then one GetArgQuad per formal
				head := append([]Quad{}, proc.Body[:insertAt]...)
				head = append(head, l.prog.Init...)
				proc.Body = append(head, proc.Body[insertAt:]...)
				proc.Temps = append(proc.Temps, l.initTemps...)
				break
			}
		}
	}
	return l.prog
}

func (l *lowerer) typeOf(n ast.Node) types.Type {
	t, ok := l.nodeTypes[n]
	if !ok {
		diagnostics.Fatalf("tac: node %T has no recorded type", n)
	}
	return t
}

func widthOf(t types.Type) int {
	if types.IsBasic(t, types.Bool) {
		return 8
	}
	return 64
}

func (l *lowerer) lowerGlobalVarDecl(n *ast.VarDecl) {
	sym := n.ID.Symbol.(*symbols.Symbol)
	opd := &SymOpd{Symbol: sym, Global: true, Wid: widthOf(sym.Type)}
	l.prog.Globals[sym] = opd
	l.prog.GlobalOrder = append(l.prog.GlobalOrder, opd)
	if n.Init == nil {
		return
	}
	// Lower the initializer against a throwaway Procedure so the normal
	// flatten/emit machinery can be reused, then move the resulting
	// quads into Program.Init rather than a real procedure body.
	synthetic := &Procedure{Name: "$init", Locals: make(map[*symbols.Symbol]*SymOpd)}
	prevProc := l.proc
	l.proc = synthetic
	src := l.flatten(n.Init)
	l.emit(&AssignQuad{Src: src, Dst: opd})
	l.prog.Init = append(l.prog.Init, synthetic.Body...)
	l.initTemps = append(l.initTemps, synthetic.Temps...)
	l.proc = prevProc
}

func (l *lowerer) lowerFnDecl(n *ast.FnDecl) {
	fnSym := n.ID.Symbol.(*symbols.Symbol)
	proc := &Procedure{
		Name:   fnSym.Name,
		Locals: make(map[*symbols.Symbol]*SymOpd),
	}
	prevProc := l.proc
	l.proc = proc

	proc.Enter = &EnterQuad{Procedure: proc.Name}
	proc.Leave = &LeaveQuad{Procedure: proc.Name}
	proc.Leave.AddLabel(Label("lbl_leave_" + proc.Name))
	l.emit(proc.Enter)

	for i, formal := range n.Formals {
		sym := formal.ID.Symbol.(*symbols.Symbol)
		opd := &SymOpd{Symbol: sym, Wid: widthOf(sym.Type)}
		proc.Formals = append(proc.Formals, opd)
		proc.Locals[sym] = opd
		l.emit(&GetArgQuad{Index: i + 1, Operand: opd, Procedure: proc.Name})
	}

	for _, stmt := range n.Body {
		l.lowerStmt(stmt)
	}

	proc.Body = append(proc.Body, proc.Leave)
	l.prog.Procedures = append(l.prog.Procedures, proc)
	l.proc = prevProc
}

func (l *lowerer) emit(q Quad) { l.proc.Body = append(l.proc.Body, q) }

func (l *lowerer) newLabel() Label {
	l.labelNum++
	return Label(fmt.Sprintf("lbl_%d", l.labelNum))
}

func (l *lowerer) newTemp(width int) *AuxOpd {
	l.tempCount++
	t := &AuxOpd{Name: fmt.Sprintf("tmp_%d", l.tempCount), Wid: width}
	l.proc.Temps = append(l.proc.Temps, t)
	return t
}

// emitLabeled attaches lbl to q and appends q to the current procedure;
// callers pass the label together with the one quad that must carry it.
func (l *lowerer) emitLabeled(q Quad, lbl Label) {
	q.AddLabel(lbl)
	l.emit(q)
}

func (l *lowerer) symOpd(sym *symbols.Symbol) Operand {
	if opd, ok := l.prog.Globals[sym]; ok {
		return opd
	}
	if opd, ok := l.proc.Locals[sym]; ok {
		return opd
	}
	// A local VarDecl seen for the first time; formals were already
	// registered in Locals by lowerFnDecl and returned above.
	opd := &SymOpd{Symbol: sym, Wid: widthOf(sym.Type)}
	l.proc.Locals[sym] = opd
	l.proc.LocalOrder = append(l.proc.LocalOrder, opd)
	return opd
}
