package parser

import (
	"fmt"
	"strconv"

	"lisc/internal/ast"
	"lisc/internal/diag"
	"lisc/internal/lexer"
)

// Parser consumes tokens and produces an AST. It holds exactly one token
// of lookahead, refreshed from the lexer, and never backtracks: every
// token is consumed by at most one grammar rule.
type Parser struct {
	lx   *lexer.Lexer
	cur  lexer.Token
	diag *diag.Reporter
}

// New creates a parser over the given lexer and primes the lookahead.
func New(lx *lexer.Lexer, d *diag.Reporter) *Parser {
	p := &Parser{lx: lx, diag: d}
	p.next()
	return p
}

// Peek returns the current token without consuming it. The driver uses
// this to decide whether a fresh top-level expression can start here.
func (p *Parser) Peek() lexer.Token {
	return p.cur
}

func (p *Parser) next() {
	p.cur = p.lx.Next()
}

// ParseExpression parses one expression starting at the current token.
// On failure no node is returned and the error has already been reported
// once, at the point of detection.
func (p *Parser) ParseExpression() (ast.Node, error) {
	tok := p.cur
	switch tok.Type {
	case lexer.IDENT:
		p.next()
		return &ast.IdentExpr{Name: tok.Lexeme}, nil
	case lexer.NUMBER:
		p.next()
		return &ast.NumberExpr{Value: tok.Value}, nil
	case lexer.LPAREN:
		return p.parseList()
	default:
		return nil, p.errorf(UnexpectedToken, tok, "unexpected token %s", describe(tok))
	}
}

// parseList consumes '(' expr* ')'. Empty lists are legal.
func (p *Parser) parseList() (ast.Node, error) {
	open := p.cur
	p.next() // consume '('

	var items []ast.Node
	for p.cur.Type != lexer.RPAREN {
		if p.cur.Type == lexer.EOF {
			return nil, p.errorf(UnterminatedList, open, "unterminated list")
		}
		item, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	p.next() // consume ')'

	return &ast.ListExpr{Items: items}, nil
}

func (p *Parser) errorf(kind ErrorKind, tok lexer.Token, format string, args ...any) error {
	err := &Error{
		Kind: kind,
		Line: tok.Line,
		Col:  tok.Column,
		Msg:  fmt.Sprintf(format, args...),
	}
	return p.diag.Report(err)
}

func describe(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return strconv.Quote(tok.Lexeme)
}
