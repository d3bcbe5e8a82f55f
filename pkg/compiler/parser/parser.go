// Package parser builds hyperlines program trees from tokens.
//
// Grammar:
//
//	program := block EOF
//	block   := IDENT "(" [expr {"," expr}] ")" [body]
//	body    := "{" "|" [IDENT {"," IDENT}] "|" {block} "}"
//	expr    := "\" [IDENT {"," IDENT}] "->" expr
//	         | primary {"(" [expr {"," expr}] ")"}
//	primary := NUMBER | "[" NUMBER "," NUMBER "]" | IDENT
package parser

import (
	"fmt"
	"strconv"

	"github.com/josephg/hyperlines/pkg/ast"
	"github.com/josephg/hyperlines/pkg/compiler/lexer"
)

// ParserError is a syntax error at a source position.
type ParserError struct {
	Message string
	Line    int
	Column  int
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Parser parses hyperlines source code into a block tree.
type Parser struct {
	l      *lexer.Lexer
	errors []error

	curToken  lexer.Token
	peekToken lexer.Token
}

// New creates a new Parser.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []error{},
	}

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the parser errors.
func (p *Parser) Errors() []error {
	return p.errors
}

// ParseProgram parses exactly one root block. Parsing stops at the first
// error, so at most one error is returned.
func (p *Parser) ParseProgram() (*ast.Block, []error) {
	b := p.parseBlock()
	if b == nil {
		return nil, p.errors
	}
	if !p.peekTokenIs(lexer.TOKEN_EOF) {
		p.nextToken()
		p.errorf(p.curToken, "expected end of input after the root block, got %s", describe(p.curToken))
		return nil, p.errors
	}
	return b, nil
}

// parseBlock expects curToken on the block name and leaves it on the
// block's last token.
func (p *Parser) parseBlock() *ast.Block {
	if !p.curTokenIs(lexer.TOKEN_IDENT) {
		p.errorf(p.curToken, "expected block name, got %s", describe(p.curToken))
		return nil
	}
	name := p.curToken.Literal

	if !p.expectPeek(lexer.TOKEN_LPAREN) {
		return nil
	}
	args, ok := p.parseExpressionList(lexer.TOKEN_RPAREN)
	if !ok {
		return nil
	}
	block := ast.NewBlock(name, args, nil)

	if !p.peekTokenIs(lexer.TOKEN_LBRACE) {
		return block
	}
	p.nextToken()
	if !p.expectPeek(lexer.TOKEN_PIPE) {
		return nil
	}
	bindings, ok := p.parseNameList(lexer.TOKEN_PIPE)
	if !ok {
		return nil
	}
	block.Bindings = bindings

	for !p.peekTokenIs(lexer.TOKEN_RBRACE) {
		if p.peekTokenIs(lexer.TOKEN_EOF) {
			p.nextToken()
			p.errorf(p.curToken, "unterminated body of block %s", name)
			return nil
		}
		p.nextToken()
		child := p.parseBlock()
		if child == nil {
			return nil
		}
		block.Children = append(block.Children, child)
	}
	p.nextToken()
	return block
}

// parseExpression expects curToken on the first token of the expression
// and leaves it on the last.
func (p *Parser) parseExpression() ast.Expression {
	if p.curTokenIs(lexer.TOKEN_BACKSLASH) {
		return p.parseLambda()
	}

	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for p.peekTokenIs(lexer.TOKEN_LPAREN) {
		p.nextToken()
		args, ok := p.parseExpressionList(lexer.TOKEN_RPAREN)
		if !ok {
			return nil
		}
		expr = &ast.Call{Callee: expr, Args: args}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case lexer.TOKEN_IDENT:
		return ast.Var(p.curToken.Literal)
	case lexer.TOKEN_NUMBER:
		v, ok := p.parseNumber()
		if !ok {
			return nil
		}
		return ast.Num(v)
	case lexer.TOKEN_LBRACKET:
		return p.parsePoint()
	default:
		p.errorf(p.curToken, "expected expression, got %s", describe(p.curToken))
		return nil
	}
}

func (p *Parser) parseNumber() (float64, bool) {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(p.curToken, "could not parse %q as number", p.curToken.Literal)
		return 0, false
	}
	return v, true
}

// parsePoint parses [x, y]. Both coordinates must be number literals.
func (p *Parser) parsePoint() ast.Expression {
	if !p.expectPeek(lexer.TOKEN_NUMBER) {
		return nil
	}
	x, ok := p.parseNumber()
	if !ok {
		return nil
	}
	if !p.expectPeek(lexer.TOKEN_COMMA) || !p.expectPeek(lexer.TOKEN_NUMBER) {
		return nil
	}
	y, ok := p.parseNumber()
	if !ok {
		return nil
	}
	if !p.expectPeek(lexer.TOKEN_RBRACKET) {
		return nil
	}
	return ast.Pt(x, y)
}

func (p *Parser) parseLambda() ast.Expression {
	var params []string
	if !p.peekTokenIs(lexer.TOKEN_ARROW) {
		var ok bool
		params, ok = p.parseNameList(lexer.TOKEN_ARROW)
		if !ok {
			return nil
		}
	} else {
		p.nextToken()
	}
	p.nextToken()
	body := p.parseExpression()
	if body == nil {
		return nil
	}
	return ast.Fn(params, body)
}

// parseExpressionList expects curToken on the opening delimiter and
// leaves it on end.
func (p *Parser) parseExpressionList(end lexer.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	e := p.parseExpression()
	if e == nil {
		return nil, false
	}
	list = append(list, e)

	for p.peekTokenIs(lexer.TOKEN_COMMA) {
		p.nextToken()
		p.nextToken()
		e := p.parseExpression()
		if e == nil {
			return nil, false
		}
		list = append(list, e)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

// parseNameList parses comma separated identifiers up to end. It expects
// curToken just before the first name and leaves it on end.
func (p *Parser) parseNameList(end lexer.TokenType) ([]string, bool) {
	names := []string{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return names, true
	}

	if !p.expectPeek(lexer.TOKEN_IDENT) {
		return nil, false
	}
	names = append(names, p.curToken.Literal)

	for p.peekTokenIs(lexer.TOKEN_COMMA) {
		p.nextToken()
		if !p.expectPeek(lexer.TOKEN_IDENT) {
			return nil, false
		}
		names = append(names, p.curToken.Literal)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return names, true
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()

	// Skip comments
	for p.peekToken.Type == lexer.TOKEN_COMMENT {
		p.peekToken = p.l.NextToken()
	}
}

func (p *Parser) peekError(t lexer.TokenType) {
	p.errorf(p.peekToken, "expected %s, got %s", t, describe(p.peekToken))
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) {
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	})
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TOKEN_EOF:
		return "end of input"
	case lexer.TOKEN_IDENT, lexer.TOKEN_NUMBER, lexer.TOKEN_ILLEGAL:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}
