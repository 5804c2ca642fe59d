package ast

import (
	"testing"

	"github.com/spiel0meister/fun/pkg/lexer"
)

func TestSetSpan(t *testing.T) {
	node := Let("x", Num("1"))
	span := Span{
		Start: lexer.Position{Offset: 0, Line: 1, Column: 1},
		End:   lexer.Position{Offset: 10, Line: 1, Column: 11},
	}
	SetSpan(node, span)
	if got := node.Span(); got != span {
		t.Fatalf("Span = %+v, want %+v", got, span)
	}
	SetSpan(nil, span)
}

func TestDSLBuildsTypedNodes(t *testing.T) {
	mod := Mod(
		LetTyped("x", "number", nil),
		Assign("x", Num("2")),
		Print(ID("x")),
		PrintBare(Str("hi")),
		Empty(),
	)
	if mod.NodeType() != NodeModule || len(mod.Body) != 5 {
		t.Fatalf("unexpected module %#v", mod)
	}
	let := mod.Body[0].(*LetStatement)
	if let.TypeAnnotation == nil || let.TypeAnnotation.Type != lexer.LiteralNumber {
		t.Fatalf("annotation = %#v", let.TypeAnnotation)
	}
	if let.Value != nil {
		t.Fatalf("expected no initializer, got %#v", let.Value)
	}
	if Ty("int").Type != 0 {
		t.Fatalf("unknown type names should not resolve")
	}
	print := mod.Body[3].(*PrintStatement)
	if print.Parenthesized {
		t.Fatalf("PrintBare should not be parenthesized")
	}
	if got := LiteralText(print.Argument.(Literal)); got != "hi" {
		t.Fatalf("LiteralText = %q", got)
	}
	if got := LiteralText(Num("0.5")); got != "0.5" {
		t.Fatalf("LiteralText = %q", got)
	}
}
