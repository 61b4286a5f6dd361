// Package parser turns a Drewno Mars token stream into an *ast.Program by
// recursive descent, with precedence climbing for the binary operator
// grammar. Like the lexer, this is ambient machinery the core consumes
// (spec.md §1) rather than the subject of this project; it is laid out
// one file per grammar area in the teacher's style
// (internal/parser/expressions_*.go, statements_*.go in funvibe-funxy).
package parser

import (
	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/lexer"
	"github.com/dmars-lang/dmarsc/internal/token"
)

// Parser holds the mutable cursor over the token stream.
type Parser struct {
	lex *lexer.Lexer
	rep *diagnostics.Reporter

	cur  token.Token
	peek token.Token
}

// New constructs a Parser over src, reporting syntax errors to rep.
func New(src string, rep *diagnostics.Reporter) *Parser {
	p := &Parser{lex: lexer.New(src), rep: rep}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) expect(k token.Kind) token.Token {
	if p.cur.Kind != k {
		p.rep.Report(p.cur.Pos, "expected %s, found %s", k, p.cur.Kind)
		tok := p.cur
		return tok
	}
	tok := p.cur
	p.advance()
	return tok
}

// ParseProgram parses the entire token stream into an *ast.Program.
func ParseProgram(src string, rep *diagnostics.Reporter) *ast.Program {
	p := New(src, rep)
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		if p.at(token.CLASS) {
			p.rep.Report(p.cur.Pos, "class declarations are not supported")
			p.skipClassDecl()
			continue
		}
		decl := p.parseTopDecl()
		if decl != nil {
			prog.Globals = append(prog.Globals, decl)
		}
	}
	return prog
}

// skipClassDecl consumes a `class name { ... }`-shaped decl so that
// parsing of the rest of the file can continue after reporting the
// rejection.
func (p *Parser) skipClassDecl() {
	p.advance() // 'class'
	for !p.at(token.LCURLY) && !p.at(token.EOF) {
		p.advance()
	}
	depth := 0
	for {
		if p.at(token.LCURLY) {
			depth++
		} else if p.at(token.RCURLY) {
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		} else if p.at(token.EOF) {
			return
		}
		p.advance()
	}
}

// parseTopDecl parses `name : ...` where what follows `:` disambiguates a
// VarDecl (a type, optionally `= exp`) from an FnDecl (a formals list).
func (p *Parser) parseTopDecl() ast.Decl {
	idTok := p.expect(token.ID)
	id := &ast.ID{Token: idTok, Name: idTok.Lexeme}
	p.expect(token.COLON)

	if p.at(token.LPAREN) {
		return p.parseFnDeclRest(id)
	}
	return p.parseVarDeclRest(id, false)
}

func (p *Parser) parseType() ast.TypeNode {
	if p.at(token.IMMUTABLE) {
		tok := p.cur
		p.advance()
		return &ast.ImmutableType{Token: tok, Inner: p.parseType()}
	}
	switch p.cur.Kind {
	case token.INT:
		tok := p.cur
		p.advance()
		return &ast.IntType{Token: tok}
	case token.BOOL:
		tok := p.cur
		p.advance()
		return &ast.BoolType{Token: tok}
	case token.VOID:
		tok := p.cur
		p.advance()
		return &ast.VoidType{Token: tok}
	case token.STRING:
		tok := p.cur
		p.advance()
		return &ast.StringType{Token: tok}
	default:
		p.rep.Report(p.cur.Pos, "expected a type, found %s", p.cur.Kind)
		tok := p.cur
		p.advance()
		return &ast.VoidType{Token: tok}
	}
}

func (p *Parser) parseVarDeclRest(id *ast.ID, isFormal bool) *ast.VarDecl {
	typ := p.parseType()
	decl := &ast.VarDecl{Token: id.Token, ID: id, Type: typ, IsFormal: isFormal}
	if !isFormal && p.at(token.ASSIGN) {
		p.advance()
		decl.Init = p.parseExp()
	}
	if !isFormal {
		p.expect(token.SEMICOLON)
	}
	return decl
}

func (p *Parser) parseFnDeclRest(id *ast.ID) *ast.FnDecl {
	p.expect(token.LPAREN)
	var formals []*ast.VarDecl
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		fIDTok := p.expect(token.ID)
		fID := &ast.ID{Token: fIDTok, Name: fIDTok.Lexeme}
		p.expect(token.COLON)
		formals = append(formals, p.parseVarDeclRest(fID, true))
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	retType := p.parseType()
	p.expect(token.LCURLY)
	body := p.parseStmtList()
	p.expect(token.RCURLY)
	return &ast.FnDecl{Token: id.Token, ID: id, Formals: formals, RetType: retType, Body: body}
}

func (p *Parser) parseStmtList() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.at(token.RCURLY) && !p.at(token.EOF) {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

