package parser

import (
	"github.com/spiel0meister/fun/pkg/ast"
	"github.com/spiel0meister/fun/pkg/lexer"
)

func identifierFrom(tok lexer.Token) *ast.Identifier {
	id := ast.NewIdentifier(tok.Text)
	ast.SetSpan(id, ast.Span{Start: tok.Pos, End: tok.Pos})
	return id
}

// literalFrom converts a KindLiteral token into its AST node.
func literalFrom(tok lexer.Token) ast.Literal {
	var lit ast.Literal
	if tok.Literal == lexer.LiteralNumber {
		lit = ast.NewNumberLiteral(tok.Text)
	} else {
		lit = ast.NewStringLiteral(tok.Text)
	}
	ast.SetSpan(lit, ast.Span{Start: tok.Pos, End: tok.Pos})
	return lit
}
