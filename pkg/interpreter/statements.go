package interpreter

import (
	"errors"
	"fmt"

	"github.com/spiel0meister/fun/pkg/lexer"
	"github.com/spiel0meister/fun/pkg/runtime"
)

// The helpers below carry the statement semantics shared by the treewalker
// and the streaming executor. Positions only feed diagnostics.

func (i *Interpreter) literalValue(typ lexer.LiteralType, text string, pos lexer.Position) (runtime.Value, error) {
	val, err := runtime.FromLiteral(typ, text)
	if err != nil {
		return nil, newRuntimeError(pos, err)
	}
	return val, nil
}

// declare binds name. A zero annotation means the type is inferred from value;
// a nil value means the annotated type's zero value.
func (i *Interpreter) declare(name string, annotation lexer.LiteralType, value runtime.Value, valuePos lexer.Position) error {
	if value == nil {
		zero, err := runtime.ZeroValue(annotation)
		if err != nil {
			return newRuntimeError(valuePos, err)
		}
		value = zero
	} else if annotation != 0 && value.Type() != annotation {
		return newRuntimeError(valuePos, typeMismatch(annotation, value.Type()))
	}
	i.global.Declare(name, value)
	return nil
}

func (i *Interpreter) assign(name string, namePos lexer.Position, value runtime.Value, valuePos lexer.Position) error {
	if err := i.global.Assign(name, value); err != nil {
		if errors.Is(err, runtime.ErrTypeMismatch) {
			return newRuntimeError(valuePos, err)
		}
		return newRuntimeError(namePos, err)
	}
	return nil
}

func (i *Interpreter) lookup(name string, pos lexer.Position) (runtime.Value, error) {
	val, err := i.global.Get(name)
	if err != nil {
		return nil, newRuntimeError(pos, err)
	}
	return val, nil
}

// emit writes one rendered value followed by a newline.
func (i *Interpreter) emit(val runtime.Value) error {
	if _, err := fmt.Fprintln(i.out, runtime.Render(val)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
