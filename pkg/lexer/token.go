package lexer

import "fmt"

// Kind identifies the lexical category of a token.
type Kind uint8

const (
	KindKeyword Kind = iota
	KindIdent
	KindAssignment
	KindSemicolon
	KindOpenParen
	KindCloseParen
	KindColon
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindIdent:
		return "identifier"
	case KindAssignment:
		return "'='"
	case KindSemicolon:
		return "';'"
	case KindOpenParen:
		return "'('"
	case KindCloseParen:
		return "')'"
	case KindColon:
		return "':'"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Keyword is the payload of a KindKeyword token.
type Keyword uint8

const (
	KeywordNone Keyword = iota
	KeywordLet
	KeywordPrint
)

func (k Keyword) String() string {
	switch k {
	case KeywordLet:
		return "let"
	case KeywordPrint:
		return "print"
	default:
		return ""
	}
}

var keywords = []Keyword{KeywordLet, KeywordPrint}

// LiteralType tags literal tokens and runtime values alike.
type LiteralType uint8

const (
	LiteralString LiteralType = iota + 1
	LiteralNumber
)

// String returns the type name as written in source annotations.
func (t LiteralType) String() string {
	switch t {
	case LiteralString:
		return "string"
	case LiteralNumber:
		return "number"
	default:
		return "unknown"
	}
}

// LookupType maps a source type annotation to its literal type.
func LookupType(name string) (LiteralType, bool) {
	switch name {
	case "string":
		return LiteralString, true
	case "number":
		return LiteralNumber, true
	default:
		return 0, false
	}
}

// Position locates a token in the source. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is an immutable lexical unit. Keyword is set only for KindKeyword and
// Literal only for KindLiteral.
type Token struct {
	Kind    Kind
	Keyword Keyword
	Literal LiteralType
	Text    string
	Pos     Position
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind Kind) bool { return t.Kind == kind }

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Kind == KindKeyword && t.Keyword == kw
}

// Describe renders the token for diagnostics, e.g. `identifier "x"` or `';'`.
func (t Token) Describe() string {
	switch t.Kind {
	case KindKeyword:
		return fmt.Sprintf("keyword %q", t.Text)
	case KindIdent:
		return fmt.Sprintf("identifier %q", t.Text)
	case KindLiteral:
		if t.Literal == LiteralString {
			return fmt.Sprintf("string literal %q", t.Text)
		}
		return fmt.Sprintf("number literal %s", t.Text)
	default:
		return t.Kind.String()
	}
}

// Same compares kind, payload and text, ignoring position.
func (t Token) Same(other Token) bool {
	return t.Kind == other.Kind && t.Keyword == other.Keyword && t.Literal == other.Literal && t.Text == other.Text
}
