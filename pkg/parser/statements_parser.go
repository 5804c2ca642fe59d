package parser

import (
	"github.com/spiel0meister/fun/pkg/ast"
	"github.com/spiel0meister/fun/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, _ := p.peek()
	switch {
	case tok.IsKeyword(lexer.KeywordLet):
		return p.parseLetStatement()
	case tok.IsKeyword(lexer.KeywordPrint):
		return p.parsePrintStatement()
	case tok.Kind == lexer.KindIdent:
		return p.parseAssignmentStatement()
	case tok.Kind == lexer.KindSemicolon:
		p.pos++
		stmt := ast.NewEmptyStatement()
		ast.SetSpan(stmt, p.span(tok))
		return stmt, nil
	default:
		return nil, UnexpectedStatement(tok)
	}
}

// let NAME = LIT ;
// let NAME : TYPE ;
// let NAME : TYPE = LIT ;
func (p *Parser) parseLetStatement() (ast.Statement, error) {
	start, _ := p.next("let")
	nameTok, err := p.expect(lexer.KindIdent, ExpectLetName)
	if err != nil {
		return nil, err
	}
	name := identifierFrom(nameTok)

	shape, err := p.next(ExpectLetShape)
	if err != nil {
		return nil, err
	}

	var annotation *ast.TypeAnnotation
	var value ast.Literal
	switch shape.Kind {
	case lexer.KindAssignment:
		if value, err = p.parseLiteral(); err != nil {
			return nil, err
		}
	case lexer.KindColon:
		if annotation, err = p.parseTypeAnnotation(); err != nil {
			return nil, err
		}
		if tok, ok := p.peek(); ok && tok.Kind == lexer.KindAssignment {
			p.pos++
			if value, err = p.parseLiteral(); err != nil {
				return nil, err
			}
		}
	default:
		return nil, UnexpectedToken(shape, ExpectLetShape)
	}

	if _, err := p.expect(lexer.KindSemicolon, ExpectSemicolon); err != nil {
		return nil, err
	}
	stmt := ast.NewLetStatement(name, annotation, value)
	ast.SetSpan(stmt, p.span(start))
	return stmt, nil
}

// print ( IDENT | LIT ) ;
// print LIT ;
func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	start, _ := p.next("print")
	tok, err := p.next(ExpectPrintArgument)
	if err != nil {
		return nil, err
	}

	var stmt *ast.PrintStatement
	switch tok.Kind {
	case lexer.KindOpenParen:
		operand, err := p.next(ExpectPrintOperand)
		if err != nil {
			return nil, err
		}
		var arg ast.Expression
		switch operand.Kind {
		case lexer.KindIdent:
			arg = identifierFrom(operand)
		case lexer.KindLiteral:
			arg = literalFrom(operand)
		default:
			return nil, UnexpectedToken(operand, ExpectPrintOperand)
		}
		if _, err := p.expect(lexer.KindCloseParen, ExpectCloseParen); err != nil {
			return nil, err
		}
		stmt = ast.NewPrintStatement(arg, true)
	case lexer.KindLiteral:
		stmt = ast.NewPrintStatement(literalFrom(tok), false)
	case lexer.KindAssignment:
		return nil, PrintNotAssignable(tok)
	default:
		return nil, UnexpectedToken(tok, ExpectPrintArgument)
	}

	if _, err := p.expect(lexer.KindSemicolon, ExpectSemicolon); err != nil {
		return nil, err
	}
	ast.SetSpan(stmt, p.span(start))
	return stmt, nil
}

// NAME = LIT ;
func (p *Parser) parseAssignmentStatement() (ast.Statement, error) {
	nameTok, _ := p.next("identifier")
	if _, err := p.expect(lexer.KindAssignment, ExpectAssignment); err != nil {
		return nil, err
	}
	value, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindSemicolon, ExpectSemicolon); err != nil {
		return nil, err
	}
	stmt := ast.NewAssignmentStatement(identifierFrom(nameTok), value)
	ast.SetSpan(stmt, p.span(nameTok))
	return stmt, nil
}

func (p *Parser) parseLiteral() (ast.Literal, error) {
	tok, err := p.expect(lexer.KindLiteral, ExpectLiteral)
	if err != nil {
		return nil, err
	}
	return literalFrom(tok), nil
}

func (p *Parser) parseTypeAnnotation() (*ast.TypeAnnotation, error) {
	tok, err := p.expect(lexer.KindIdent, ExpectTypeName)
	if err != nil {
		return nil, err
	}
	typ, ok := lexer.LookupType(tok.Text)
	if !ok {
		return nil, UnknownType(tok)
	}
	annotation := ast.NewTypeAnnotation(identifierFrom(tok), typ)
	ast.SetSpan(annotation, ast.Span{Start: tok.Pos, End: tok.Pos})
	return annotation, nil
}
