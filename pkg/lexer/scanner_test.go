package lexer

import (
	"errors"
	"io"
	"strings"
	"testing"
)

type tokenShape struct {
	kind Kind
	text string
}

func shapes(tokens []Token) []tokenShape {
	out := make([]tokenShape, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenShape{kind: tok.Kind, text: tok.Text})
	}
	return out
}

func assertShapes(t *testing.T, got []Token, want []tokenShape) {
	t.Helper()
	gotShapes := shapes(got)
	if len(gotShapes) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(gotShapes), len(want), gotShapes)
	}
	for i := range want {
		if gotShapes[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, gotShapes[i], want[i])
		}
	}
}

func TestTokenizeEmptySource(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "# only a comment"} {
		tokens, err := Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", src, err)
		}
		if len(tokens) != 0 {
			t.Fatalf("Tokenize(%q) = %v, want no tokens", src, tokens)
		}
	}
}

func TestTokenizeDeclarations(t *testing.T) {
	tokens, err := Tokenize(`let x: number = 3.5; print(x);`)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	assertShapes(t, tokens, []tokenShape{
		{KindKeyword, "let"},
		{KindIdent, "x"},
		{KindColon, ":"},
		{KindIdent, "number"},
		{KindAssignment, "="},
		{KindLiteral, "3.5"},
		{KindSemicolon, ";"},
		{KindKeyword, "print"},
		{KindOpenParen, "("},
		{KindIdent, "x"},
		{KindCloseParen, ")"},
		{KindSemicolon, ";"},
	})
	if !tokens[0].IsKeyword(KeywordLet) || !tokens[7].IsKeyword(KeywordPrint) {
		t.Fatalf("expected let/print keywords, got %#v / %#v", tokens[0], tokens[7])
	}
	if tokens[5].Literal != LiteralNumber {
		t.Fatalf("expected number literal, got %v", tokens[5].Literal)
	}
}

func TestTokenizeStringLiteralIsVerbatim(t *testing.T) {
	tokens, err := Tokenize(`"a \n b # not a comment"`)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Literal != LiteralString {
		t.Fatalf("expected one string literal, got %#v", tokens)
	}
	if got, want := tokens[0].Text, `a \n b # not a comment`; got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestTokenizeNumberForms(t *testing.T) {
	cases := map[string]string{
		"42":   "42",
		"3.25": "3.25",
		".5":   "0.5",
		"7.":   "7.",
		"007":  "007",
	}
	for src, want := range cases {
		tokens, err := Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", src, err)
		}
		if len(tokens) != 1 || tokens[0].Literal != LiteralNumber || tokens[0].Text != want {
			t.Fatalf("Tokenize(%q) = %#v, want number %q", src, tokens, want)
		}
	}
}

func TestTokenizeNumberStopsAtNonDigit(t *testing.T) {
	tokens, err := Tokenize("12ab")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	assertShapes(t, tokens, []tokenShape{{KindLiteral, "12"}, {KindIdent, "ab"}})
}

func TestTokenizeKeywordBoundaries(t *testing.T) {
	tokens, err := Tokenize("letter printer let2 print")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	assertShapes(t, tokens, []tokenShape{
		{KindIdent, "letter"},
		{KindIdent, "printer"},
		{KindIdent, "let2"},
		{KindKeyword, "print"},
	})
}

func TestTokenizeKeywordBeforePunctuation(t *testing.T) {
	tokens, err := Tokenize("print(x)")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if !tokens[0].IsKeyword(KeywordPrint) || tokens[1].Kind != KindOpenParen {
		t.Fatalf("unexpected tokens %#v", tokens)
	}
}

func TestTokenizeIdentifiersAreCaseSensitive(t *testing.T) {
	tokens, err := Tokenize("Let PRINT x1y")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	assertShapes(t, tokens, []tokenShape{{KindIdent, "Let"}, {KindIdent, "PRINT"}, {KindIdent, "x1y"}})
}

func TestTokenizeCommentIsTransparent(t *testing.T) {
	withComment, err := Tokenize("let x = \"a\" # comment\n;")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	without, err := Tokenize("let x = \"a\"\n;")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(withComment) != len(without) {
		t.Fatalf("comment changed token count: %d vs %d", len(withComment), len(without))
	}
	for i := range without {
		if !withComment[i].Same(without[i]) {
			t.Fatalf("token %d differs: %#v vs %#v", i, withComment[i], without[i])
		}
	}
}

func TestTokenizeCommentAtEndOfInput(t *testing.T) {
	tokens, err := Tokenize("print 1; # trailing, no newline")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	src := "let a = \"x\";\nlet b: number = .25; # c\nprint(a);\nb = 3;"
	first, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	second, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("token %d differs: %#v vs %#v", i, first[i], second[i])
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("let x = 1;\n  print x;")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if got := tokens[1].Pos; got.Line != 1 || got.Column != 5 {
		t.Fatalf("x position = %v, want 1:5", got)
	}
	if got := tokens[5].Pos; got.Line != 2 || got.Column != 3 || got.Offset != 13 {
		t.Fatalf("print position = %+v, want 2:3 offset 13", got)
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src     string
		message string
		line    int
		column  int
	}{
		{`let x = "abc`, "unterminated string", 1, 9},
		{"let x = 1.2.3;", "multiple decimal points", 1, 12},
		{"let x = 1 + 2;", "unexpected character '+'", 1, 11},
		{"\n  @", "unexpected character '@'", 2, 3},
		{"let x = \xff;", `unexpected character "\xff"`, 1, 9},
	}
	for _, tc := range cases {
		_, err := Tokenize(tc.src)
		if err == nil {
			t.Fatalf("Tokenize(%q) expected error", tc.src)
		}
		var lexErr *Error
		if !errors.As(err, &lexErr) {
			t.Fatalf("Tokenize(%q) error type %T, want *Error", tc.src, err)
		}
		if !strings.Contains(lexErr.Message, tc.message) {
			t.Fatalf("Tokenize(%q) message = %q, want it to contain %q", tc.src, lexErr.Message, tc.message)
		}
		if lexErr.Pos.Line != tc.line || lexErr.Pos.Column != tc.column {
			t.Fatalf("Tokenize(%q) position = %v, want %d:%d", tc.src, lexErr.Pos, tc.line, tc.column)
		}
		if !strings.HasPrefix(err.Error(), "lexer: ") {
			t.Fatalf("Error() = %q, want lexer prefix", err.Error())
		}
	}
}

func TestTokenizeStringKeepsInvalidUTF8(t *testing.T) {
	tokens, err := Tokenize("print \"a\xffb\";")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("token count = %d, want 3", len(tokens))
	}
	if got := tokens[1].Text; got != "a\xffb" {
		t.Fatalf("string text = %q, want %q", got, "a\xffb")
	}
	if tokens[2].Pos.Column != 12 {
		t.Fatalf("';' column = %d, want 12", tokens[2].Pos.Column)
	}
}

func TestScannerResetStartsOver(t *testing.T) {
	s := NewScanner("let")
	if _, err := s.Next(); err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	s.Reset("print")
	tok, err := s.Next()
	if err != nil {
		t.Fatalf("Next after Reset error: %v", err)
	}
	if !tok.IsKeyword(KeywordPrint) || tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("unexpected token after Reset: %#v", tok)
	}
}

func TestLookupType(t *testing.T) {
	if typ, ok := LookupType("string"); !ok || typ != LiteralString {
		t.Fatalf("LookupType(string) = %v, %v", typ, ok)
	}
	if typ, ok := LookupType("number"); !ok || typ != LiteralNumber {
		t.Fatalf("LookupType(number) = %v, %v", typ, ok)
	}
	if _, ok := LookupType("int"); ok {
		t.Fatalf("LookupType(int) should fail")
	}
}
