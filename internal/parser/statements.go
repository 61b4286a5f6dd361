package parser

import "github.com/dmars-lang/dmarsc/internal/ast"
import "github.com/dmars-lang/dmarsc/internal/token"

// parseStmt dispatches on the current token's keyword, falling back to
// the assignment/call/post-inc-dec/var-decl family that all begin with an
// identifier.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Kind {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.TAKE:
		return p.parseTake()
	case token.GIVE:
		return p.parseGive()
	case token.EXIT:
		tok := p.cur
		p.advance()
		p.expect(token.SEMICOLON)
		return &ast.ExitStmt{Token: tok}
	case token.ID:
		return p.parseIDLedStmt()
	default:
		p.rep.Report(p.cur.Pos, "unexpected token %s in statement", p.cur.Kind)
		p.advance()
		return nil
	}
}

func (p *Parser) parseIf() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExp()
	p.expect(token.RPAREN)
	p.expect(token.LCURLY)
	body := p.parseStmtList()
	p.expect(token.RCURLY)
	if p.at(token.ELSE) {
		p.advance()
		p.expect(token.LCURLY)
		elseBody := p.parseStmtList()
		p.expect(token.RCURLY)
		return &ast.IfElseStmt{Token: tok, Cond: cond, BodyTrue: body, BodyFalse: elseBody}
	}
	return &ast.IfStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseWhile() ast.Stmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExp()
	p.expect(token.RPAREN)
	p.expect(token.LCURLY)
	body := p.parseStmtList()
	p.expect(token.RCURLY)
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	tok := p.cur
	p.advance()
	if p.at(token.SEMICOLON) {
		p.advance()
		return &ast.ReturnStmt{Token: tok}
	}
	exp := p.parseExp()
	p.expect(token.SEMICOLON)
	return &ast.ReturnStmt{Token: tok, Exp: exp}
}

func (p *Parser) parseTake() ast.Stmt {
	tok := p.cur
	p.advance()
	dst := p.parseExp()
	p.expect(token.SEMICOLON)
	return &ast.TakeStmt{Token: tok, Dst: dst}
}

func (p *Parser) parseGive() ast.Stmt {
	tok := p.cur
	p.advance()
	src := p.parseExp()
	p.expect(token.SEMICOLON)
	return &ast.GiveStmt{Token: tok, Src: src}
}

// parseIDLedStmt handles every statement form that starts with an
// identifier: a var decl (`x : type ;`), an assignment (`x = exp ;`), a
// post-inc/dec (`x++ ;` / `x-- ;`), or a call statement (`f(args) ;`).
func (p *Parser) parseIDLedStmt() ast.Stmt {
	idTok := p.expect(token.ID)
	id := &ast.ID{Token: idTok, Name: idTok.Lexeme}

	switch p.cur.Kind {
	case token.COLON:
		p.advance()
		return p.parseVarDeclRest(id, false)
	case token.ASSIGN:
		p.advance()
		src := p.parseExp()
		p.expect(token.SEMICOLON)
		return &ast.AssignStmt{Dst: id, Src: src}
	case token.PLUSPLUS:
		tok := p.cur
		p.advance()
		p.expect(token.SEMICOLON)
		return &ast.PostIncStmt{Token: tok, Loc: id}
	case token.MINUSMINUS:
		tok := p.cur
		p.advance()
		p.expect(token.SEMICOLON)
		return &ast.PostDecStmt{Token: tok, Loc: id}
	case token.LPAREN:
		call := p.parseCallRest(id)
		p.expect(token.SEMICOLON)
		return &ast.CallStmt{Call: call}
	default:
		p.rep.Report(p.cur.Pos, "expected ':', '=', '++', '--' or '(' after identifier, found %s", p.cur.Kind)
		p.advance()
		return nil
	}
}
