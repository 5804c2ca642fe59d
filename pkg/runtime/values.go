package runtime

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spiel0meister/fun/pkg/lexer"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
	Type() lexer.LiteralType
}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind              { return KindString }
func (v StringValue) Type() lexer.LiteralType { return lexer.LiteralString }

// NumberValue keeps the literal's decimal text alongside the float parsed once
// at construction.
type NumberValue struct {
	Text string
	Val  float64
}

func (v NumberValue) Kind() Kind              { return KindNumber }
func (v NumberValue) Type() lexer.LiteralType { return lexer.LiteralNumber }

// ParseNumber converts decimal literal text into a NumberValue.
func ParseNumber(text string) (NumberValue, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return NumberValue{}, fmt.Errorf("number literal %s is out of range", text)
		}
		return NumberValue{}, fmt.Errorf("malformed number literal %q", text)
	}
	return NumberValue{Text: text, Val: f}, nil
}

// ZeroValue returns the default for a declaration without an initializer.
func ZeroValue(typ lexer.LiteralType) (Value, error) {
	switch typ {
	case lexer.LiteralString:
		return StringValue{}, nil
	case lexer.LiteralNumber:
		return NumberValue{Text: "0", Val: 0}, nil
	default:
		return nil, fmt.Errorf("no zero value for type %s", typ)
	}
}

// FromLiteral builds the runtime value denoted by a literal of the given type.
func FromLiteral(typ lexer.LiteralType, text string) (Value, error) {
	switch typ {
	case lexer.LiteralString:
		return StringValue{Val: text}, nil
	case lexer.LiteralNumber:
		return ParseNumber(text)
	default:
		return nil, fmt.Errorf("unsupported literal type %s", typ)
	}
}

// Render formats a value the way print writes it: strings verbatim, numbers
// as the shortest decimal that round-trips through a 64-bit float.
func Render(v Value) string {
	switch val := v.(type) {
	case StringValue:
		return val.Val
	case NumberValue:
		return FormatNumber(val.Val)
	default:
		return fmt.Sprintf("<%v>", v)
	}
}

// FormatNumber renders f without an exponent.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
