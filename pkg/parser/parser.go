package parser

import (
	"github.com/spiel0meister/fun/pkg/ast"
	"github.com/spiel0meister/fun/pkg/lexer"
)

// Descriptions of what a statement form expects next. The streaming executor
// reports its syntax errors with the same wording.
const (
	ExpectLetName       = "variable name after 'let'"
	ExpectLetShape      = "'=' or ':' after variable name"
	ExpectLiteral       = "string or number literal"
	ExpectTypeName      = "type name after ':'"
	ExpectSemicolon     = "';'"
	ExpectPrintArgument = "'(' or literal after 'print'"
	ExpectPrintOperand  = "identifier or literal"
	ExpectCloseParen    = "')'"
	ExpectAssignment    = "'='"
)

// ParseSource tokenizes and parses a whole program.
func ParseSource(source string) (*ast.Module, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens builds a module from a token sequence.
func ParseTokens(tokens []lexer.Token) (*ast.Module, error) {
	p := &Parser{tokens: tokens}
	return p.ParseModule()
}

// Parser is a recursive-descent parser over a token slice.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// ParseModule parses statements until the tokens are exhausted.
func (p *Parser) ParseModule() (*ast.Module, error) {
	var body []ast.Statement
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	module := ast.NewModule(body)
	if len(p.tokens) > 0 {
		ast.SetSpan(module, ast.Span{Start: p.tokens[0].Pos, End: p.tokens[len(p.tokens)-1].Pos})
	}
	return module, nil
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.atEnd() {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

// next consumes one token, failing with an end-of-input error when none remain.
func (p *Parser) next(expected string) (lexer.Token, error) {
	tok, ok := p.peek()
	if !ok {
		return lexer.Token{}, UnexpectedEOF(p.last(), expected)
	}
	p.pos++
	return tok, nil
}

// expect consumes a token of the given kind.
func (p *Parser) expect(kind lexer.Kind, expected string) (lexer.Token, error) {
	tok, err := p.next(expected)
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, UnexpectedToken(tok, expected)
	}
	return tok, nil
}

func (p *Parser) last() *lexer.Token {
	if len(p.tokens) == 0 {
		return nil
	}
	return &p.tokens[len(p.tokens)-1]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) span(start lexer.Token) ast.Span {
	return ast.Span{Start: start.Pos, End: p.previous().Pos}
}
