package runtime

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/spiel0meister/fun/pkg/lexer"
)

func TestRenderNumbers(t *testing.T) {
	cases := map[string]string{
		"3.5":      "3.5",
		"0":        "0",
		"007":      "7",
		"1.0":      "1",
		"0.5":      "0.5",
		"7.":       "7",
		"0.1":      "0.1",
		"12345678": "12345678",
		"100000000000000000000000": "100000000000000000000000",
	}
	for text, want := range cases {
		v, err := ParseNumber(text)
		if err != nil {
			t.Fatalf("ParseNumber(%q) error: %v", text, err)
		}
		if got := Render(v); got != want {
			t.Fatalf("Render(%q) = %q, want %q", text, got, want)
		}
		if v.Text != text {
			t.Fatalf("Text = %q, want %q", v.Text, text)
		}
	}
}

func TestRenderMatchesPrintTimeParse(t *testing.T) {
	for _, text := range []string{"1", "2.5", "0.30000000000000004", "123.456", "0.000001", "99999999999999999"} {
		v, err := FromLiteral(lexer.LiteralNumber, text)
		if err != nil {
			t.Fatalf("FromLiteral(%q) error: %v", text, err)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", text, err)
		}
		if got, want := Render(v), strconv.FormatFloat(f, 'f', -1, 64); got != want {
			t.Fatalf("Render(%q) = %q, want %q", text, got, want)
		}
	}
}

// Overflowing literals are rejected rather than printed as +Inf.
func TestParseNumberOutOfRange(t *testing.T) {
	_, err := ParseNumber("1" + strings.Repeat("0", 400))
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected out of range error, got %v", err)
	}
}

func TestZeroValues(t *testing.T) {
	s, err := ZeroValue(lexer.LiteralString)
	if err != nil || Render(s) != "" || s.Type() != lexer.LiteralString {
		t.Fatalf("string zero value = %#v, %v", s, err)
	}
	n, err := ZeroValue(lexer.LiteralNumber)
	if err != nil || Render(n) != "0" || n.Type() != lexer.LiteralNumber {
		t.Fatalf("number zero value = %#v, %v", n, err)
	}
}

func TestEnvironmentAssignChecksTypes(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", NumberValue{Text: "1", Val: 1})

	err := env.Assign("x", StringValue{Val: "s"})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if got := err.Error(); got != "type mismatch: expected number, got string" {
		t.Fatalf("error = %q", got)
	}

	if err := env.Assign("x", NumberValue{Text: "2", Val: 2}); err != nil {
		t.Fatalf("Assign error: %v", err)
	}
	v, err := env.Get("x")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if Render(v) != "2" {
		t.Fatalf("x = %q, want 2", Render(v))
	}
}

func TestEnvironmentUnknownIdentifier(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Get("y"); !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("Get(y) error = %v", err)
	}
	err := env.Assign("y", StringValue{Val: "v"})
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("Assign(y) error = %v", err)
	}
	if got := err.Error(); got != `unknown identifier "y"` {
		t.Fatalf("error = %q", got)
	}
	if env.Has("y") {
		t.Fatalf("failed assignment must not create a binding")
	}
}

func TestEnvironmentDeclareReplacesType(t *testing.T) {
	env := NewEnvironment()
	env.Declare("x", NumberValue{Text: "1", Val: 1})
	env.Declare("x", StringValue{Val: "now a string"})
	if err := env.Assign("x", StringValue{Val: "ok"}); err != nil {
		t.Fatalf("Assign after redeclare: %v", err)
	}
	if got := strings.Join(env.Keys(), ","); got != "x" {
		t.Fatalf("Keys = %q", got)
	}
	if env.Len() != 1 || len(env.Snapshot()) != 1 {
		t.Fatalf("expected one binding")
	}
}
