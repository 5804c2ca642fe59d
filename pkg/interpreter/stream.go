package interpreter

import (
	"github.com/spiel0meister/fun/pkg/lexer"
	"github.com/spiel0meister/fun/pkg/parser"
	"github.com/spiel0meister/fun/pkg/runtime"
)

// tokenCursor is a read-only window over the token sequence. The index only
// moves forward, and only through consume.
type tokenCursor struct {
	tokens []lexer.Token
	index  int
}

func (c *tokenCursor) done() bool {
	return c.index >= len(c.tokens)
}

// peek looks offset tokens past the cursor without consuming anything.
func (c *tokenCursor) peek(offset int, expected string) (lexer.Token, error) {
	at := c.index + offset
	if at >= len(c.tokens) {
		var last *lexer.Token
		if len(c.tokens) > 0 {
			last = &c.tokens[len(c.tokens)-1]
		}
		return lexer.Token{}, parser.UnexpectedEOF(last, expected)
	}
	return c.tokens[at], nil
}

// peekKind is peek plus a kind check.
func (c *tokenCursor) peekKind(offset int, kind lexer.Kind, expected string) (lexer.Token, error) {
	tok, err := c.peek(offset, expected)
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, parser.UnexpectedToken(tok, expected)
	}
	return tok, nil
}

func (c *tokenCursor) consume(n int) {
	c.index += n
}

// ExecuteTokens runs the program directly off the token sequence. Each
// statement is recognized through bounded lookahead, validated, executed, and
// then exactly its tokens are consumed.
func (i *Interpreter) ExecuteTokens(tokens []lexer.Token) error {
	cursor := &tokenCursor{tokens: tokens}
	for !cursor.done() {
		tok, _ := cursor.peek(0, "statement")
		var (
			width int
			err   error
		)
		switch {
		case tok.IsKeyword(lexer.KeywordLet):
			width, err = i.streamLet(cursor)
		case tok.IsKeyword(lexer.KeywordPrint):
			width, err = i.streamPrint(cursor)
		case tok.Kind == lexer.KindIdent:
			width, err = i.streamAssignment(cursor)
		case tok.Kind == lexer.KindSemicolon:
			width = 1
		default:
			err = parser.UnexpectedStatement(tok)
		}
		if err != nil {
			return err
		}
		cursor.consume(width)
	}
	return nil
}

// streamLet handles
//
//	let NAME = LIT ;          (5 tokens)
//	let NAME : TYPE ;         (5 tokens)
//	let NAME : TYPE = LIT ;   (7 tokens)
func (i *Interpreter) streamLet(c *tokenCursor) (int, error) {
	name, err := c.peekKind(1, lexer.KindIdent, parser.ExpectLetName)
	if err != nil {
		return 0, err
	}
	shape, err := c.peek(2, parser.ExpectLetShape)
	if err != nil {
		return 0, err
	}

	switch shape.Kind {
	case lexer.KindAssignment:
		lit, err := c.peekKind(3, lexer.KindLiteral, parser.ExpectLiteral)
		if err != nil {
			return 0, err
		}
		if _, err := c.peekKind(4, lexer.KindSemicolon, parser.ExpectSemicolon); err != nil {
			return 0, err
		}
		val, err := i.literalValue(lit.Literal, lit.Text, lit.Pos)
		if err != nil {
			return 0, err
		}
		return 5, i.declare(name.Text, 0, val, lit.Pos)

	case lexer.KindColon:
		typeTok, err := c.peekKind(3, lexer.KindIdent, parser.ExpectTypeName)
		if err != nil {
			return 0, err
		}
		annotation, ok := lexer.LookupType(typeTok.Text)
		if !ok {
			return 0, parser.UnknownType(typeTok)
		}
		next, err := c.peek(4, parser.ExpectSemicolon)
		if err != nil {
			return 0, err
		}
		switch next.Kind {
		case lexer.KindSemicolon:
			return 5, i.declare(name.Text, annotation, nil, name.Pos)
		case lexer.KindAssignment:
			lit, err := c.peekKind(5, lexer.KindLiteral, parser.ExpectLiteral)
			if err != nil {
				return 0, err
			}
			if _, err := c.peekKind(6, lexer.KindSemicolon, parser.ExpectSemicolon); err != nil {
				return 0, err
			}
			val, err := i.literalValue(lit.Literal, lit.Text, lit.Pos)
			if err != nil {
				return 0, err
			}
			return 7, i.declare(name.Text, annotation, val, lit.Pos)
		default:
			return 0, parser.UnexpectedToken(next, parser.ExpectSemicolon)
		}

	default:
		return 0, parser.UnexpectedToken(shape, parser.ExpectLetShape)
	}
}

// streamPrint handles
//
//	print ( IDENT ) ;   print ( LIT ) ;   (5 tokens)
//	print LIT ;                           (3 tokens)
func (i *Interpreter) streamPrint(c *tokenCursor) (int, error) {
	next, err := c.peek(1, parser.ExpectPrintArgument)
	if err != nil {
		return 0, err
	}

	switch next.Kind {
	case lexer.KindOpenParen:
		operand, err := c.peek(2, parser.ExpectPrintOperand)
		if err != nil {
			return 0, err
		}
		if operand.Kind != lexer.KindIdent && operand.Kind != lexer.KindLiteral {
			return 0, parser.UnexpectedToken(operand, parser.ExpectPrintOperand)
		}
		if _, err := c.peekKind(3, lexer.KindCloseParen, parser.ExpectCloseParen); err != nil {
			return 0, err
		}
		if _, err := c.peekKind(4, lexer.KindSemicolon, parser.ExpectSemicolon); err != nil {
			return 0, err
		}
		var val runtime.Value
		if operand.Kind == lexer.KindIdent {
			val, err = i.lookup(operand.Text, operand.Pos)
		} else {
			val, err = i.literalValue(operand.Literal, operand.Text, operand.Pos)
		}
		if err != nil {
			return 0, err
		}
		return 5, i.emit(val)

	case lexer.KindLiteral:
		if _, err := c.peekKind(2, lexer.KindSemicolon, parser.ExpectSemicolon); err != nil {
			return 0, err
		}
		val, err := i.literalValue(next.Literal, next.Text, next.Pos)
		if err != nil {
			return 0, err
		}
		return 3, i.emit(val)

	case lexer.KindAssignment:
		return 0, parser.PrintNotAssignable(next)

	default:
		return 0, parser.UnexpectedToken(next, parser.ExpectPrintArgument)
	}
}

// streamAssignment handles NAME = LIT ; (4 tokens).
func (i *Interpreter) streamAssignment(c *tokenCursor) (int, error) {
	name, _ := c.peek(0, "identifier")
	if _, err := c.peekKind(1, lexer.KindAssignment, parser.ExpectAssignment); err != nil {
		return 0, err
	}
	lit, err := c.peekKind(2, lexer.KindLiteral, parser.ExpectLiteral)
	if err != nil {
		return 0, err
	}
	if _, err := c.peekKind(3, lexer.KindSemicolon, parser.ExpectSemicolon); err != nil {
		return 0, err
	}
	val, err := i.literalValue(lit.Literal, lit.Text, lit.Pos)
	if err != nil {
		return 0, err
	}
	return 4, i.assign(name.Text, name.Pos, val, lit.Pos)
}
