package parser

import (
	"fmt"

	"github.com/spiel0meister/fun/pkg/lexer"
)

// SourceLocation captures a source position for parser diagnostics.
type SourceLocation struct {
	Line   int
	Column int
}

func locationOf(pos lexer.Position) SourceLocation {
	return SourceLocation{Line: pos.Line, Column: pos.Column}
}

// ParseError includes a message plus a best-effort source location.
type ParseError struct {
	Message  string
	Location SourceLocation
}

func (e *ParseError) Error() string {
	if e.Location.Line > 0 {
		return fmt.Sprintf("parser: %d:%d: %s", e.Location.Line, e.Location.Column, e.Message)
	}
	return "parser: " + e.Message
}

// Errorf builds a ParseError located at tok.
func Errorf(tok lexer.Token, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Location: locationOf(tok.Pos)}
}

// UnexpectedToken reports tok where something else was expected.
func UnexpectedToken(tok lexer.Token, expected string) *ParseError {
	return Errorf(tok, "expected %s, got %s", expected, tok.Describe())
}

// UnexpectedEOF reports that input ended mid-statement. last is the final
// token of the program, used only for its location.
func UnexpectedEOF(last *lexer.Token, expected string) *ParseError {
	err := &ParseError{Message: "unexpected end of input, expected " + expected}
	if last != nil {
		err.Location = locationOf(last.Pos)
	}
	return err
}

// UnexpectedStatement reports a token that cannot begin a statement.
func UnexpectedStatement(tok lexer.Token) *ParseError {
	return Errorf(tok, "unexpected %s at start of statement", tok.Describe())
}

// UnknownType reports an unsupported type annotation.
func UnknownType(tok lexer.Token) *ParseError {
	return Errorf(tok, "unknown type %q (expected string or number)", tok.Text)
}

// PrintNotAssignable reports `print = ...`.
func PrintNotAssignable(tok lexer.Token) *ParseError {
	return Errorf(tok, "'print' is not assignable")
}
