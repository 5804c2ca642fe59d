package interpreter

import (
	"fmt"

	"github.com/spiel0meister/fun/pkg/lexer"
	"github.com/spiel0meister/fun/pkg/runtime"
)

// RuntimeError is a semantic failure raised while executing a statement.
type RuntimeError struct {
	Message  string
	Location lexer.Position
	err      error
}

func (e *RuntimeError) Error() string {
	if e.Location.Line > 0 {
		return fmt.Sprintf("runtime: %s: %s", e.Location, e.Message)
	}
	return "runtime: " + e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.err
}

func newRuntimeError(pos lexer.Position, err error) *RuntimeError {
	return &RuntimeError{Message: err.Error(), Location: pos, err: err}
}

func typeMismatch(expected, got lexer.LiteralType) error {
	return fmt.Errorf("%w: expected %s, got %s", runtime.ErrTypeMismatch, expected, got)
}
