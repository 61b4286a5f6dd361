package parser

import (
	"strconv"

	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/token"
)

// precedence levels, lowest to highest.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

var binPrec = map[token.Kind]int{
	token.OR:        precOr,
	token.AND:       precAnd,
	token.EQUALS:    precEquality,
	token.NOTEQUALS: precEquality,
	token.LESS:      precRelational,
	token.LESSEQ:    precRelational,
	token.GREATER:   precRelational,
	token.GREATEREQ: precRelational,
	token.PLUS:      precAdditive,
	token.MINUS:     precAdditive,
	token.TIMES:     precMultiplicative,
	token.DIVIDE:    precMultiplicative,
}

var binOpKind = map[token.Kind]ast.BinOp{
	token.PLUS:      ast.Plus,
	token.MINUS:     ast.Minus,
	token.TIMES:     ast.Times,
	token.DIVIDE:    ast.Divide,
	token.AND:       ast.And,
	token.OR:        ast.Or,
	token.EQUALS:    ast.Equals,
	token.NOTEQUALS: ast.NotEquals,
	token.LESS:      ast.Less,
	token.LESSEQ:    ast.LessEq,
	token.GREATER:   ast.Greater,
	token.GREATEREQ: ast.GreaterEq,
}

// parseExp parses a full expression via precedence climbing.
func (p *Parser) parseExp() ast.Exp {
	return p.parseBinary(precLowest)
}

func (p *Parser) parseBinary(minPrec int) ast.Exp {
	lhs := p.parseUnary()
	for {
		prec, ok := binPrec[p.cur.Kind]
		if !ok || prec <= minPrec {
			return lhs
		}
		opKind := binOpKind[p.cur.Kind]
		p.advance()
		rhs := p.parseBinary(prec)
		lhs = &ast.BinaryExp{Op: opKind, LHS: lhs, RHS: rhs}
	}
}

func (p *Parser) parseUnary() ast.Exp {
	switch p.cur.Kind {
	case token.MINUS:
		tok := p.cur
		p.advance()
		return &ast.UnaryExp{Token: tok, Op: ast.Neg, Exp: p.parseUnary()}
	case token.NOT:
		tok := p.cur
		p.advance()
		return &ast.UnaryExp{Token: tok, Op: ast.Not, Exp: p.parseUnary()}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Exp {
	switch p.cur.Kind {
	case token.INTLITERAL:
		tok := p.cur
		p.advance()
		v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return &ast.IntLit{Token: tok, Value: v}
	case token.STRINGLITERAL:
		tok := p.cur
		p.advance()
		return &ast.StrLit{Token: tok, Value: tok.Lexeme}
	case token.TRUE:
		tok := p.cur
		p.advance()
		return &ast.True{Token: tok}
	case token.FALSE:
		tok := p.cur
		p.advance()
		return &ast.False{Token: tok}
	case token.MAGIC:
		tok := p.cur
		p.advance()
		return &ast.Magic{Token: tok}
	case token.LPAREN:
		p.advance()
		e := p.parseExp()
		p.expect(token.RPAREN)
		return e
	case token.ID:
		idTok := p.cur
		p.advance()
		id := &ast.ID{Token: idTok, Name: idTok.Lexeme}
		if p.at(token.LPAREN) {
			return p.parseCallRest(id)
		}
		return id
	default:
		p.rep.Report(p.cur.Pos, "unexpected token %s in expression", p.cur.Kind)
		tok := p.cur
		p.advance()
		return &ast.IntLit{Token: tok, Value: 0}
	}
}

func (p *Parser) parseCallRest(callee *ast.ID) *ast.CallExp {
	p.expect(token.LPAREN)
	var args []ast.Exp
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseExp())
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end := p.expect(token.RPAREN)
	return &ast.CallExp{Callee: callee, Args: args, EndPos: end.Pos}
}
