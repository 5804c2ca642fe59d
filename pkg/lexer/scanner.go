package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error is a fatal lexical error.
type Error struct {
	Message string
	Pos     Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: %s: %s", e.Pos, e.Message)
}

// Scanner turns source text into tokens one at a time.
type Scanner struct {
	source string
	cursor int
	line   int
	column int
}

// NewScanner creates a scanner positioned at the start of source.
func NewScanner(source string) *Scanner {
	s := &Scanner{}
	s.Reset(source)
	return s
}

// Reset re-initializes the scanner with new source.
func (s *Scanner) Reset(source string) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.column = 1
}

// Tokenize scans the whole source. An empty source yields an empty program.
func Tokenize(source string) ([]Token, error) {
	s := NewScanner(source)
	var tokens []Token
	for {
		tok, err := s.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or io.EOF once the source is exhausted.
func (s *Scanner) Next() (Token, error) {
	for {
		s.skipWhitespace()
		if s.cursor >= len(s.source) {
			return Token{}, io.EOF
		}
		if s.source[s.cursor] != '#' {
			break
		}
		s.skipComment()
	}

	start := s.position()
	ch, _ := s.peek()

	if kw, ok := s.matchKeyword(); ok {
		text := kw.String()
		s.advanceBy(len(text))
		return Token{Kind: KindKeyword, Keyword: kw, Text: text, Pos: start}, nil
	}

	switch {
	case ch == '"':
		return s.scanString(start)
	case isDigit(ch) || ch == '.':
		return s.scanNumber(start)
	case unicode.IsLetter(ch):
		return s.scanIdentifier(start), nil
	}

	kind, ok := punctuation(ch)
	if !ok {
		if _, size := utf8.DecodeRuneInString(s.source[s.cursor:]); ch == utf8.RuneError && size == 1 {
			return Token{}, &Error{Message: fmt.Sprintf("unexpected character %q", s.source[s.cursor:s.cursor+1]), Pos: start}
		}
		return Token{}, &Error{Message: fmt.Sprintf("unexpected character %q", ch), Pos: start}
	}
	s.advance()
	return Token{Kind: kind, Text: string(ch), Pos: start}, nil
}

// matchKeyword compares each keyword against the remaining input. A keyword
// directly followed by an identifier character is left to scanIdentifier.
func (s *Scanner) matchKeyword() (Keyword, bool) {
	rest := s.source[s.cursor:]
	for _, kw := range keywords {
		text := kw.String()
		if !strings.HasPrefix(rest, text) {
			continue
		}
		next, size := utf8.DecodeRuneInString(rest[len(text):])
		if size > 0 && isIdentRune(next) {
			continue
		}
		return kw, true
	}
	return KeywordNone, false
}

// scanString keeps the bytes between the quotes as written, including
// invalid UTF-8.
func (s *Scanner) scanString(start Position) (Token, error) {
	s.advance() // opening quote
	from := s.cursor
	for {
		ch, ok := s.peek()
		if !ok {
			return Token{}, &Error{Message: "unterminated string", Pos: start}
		}
		if ch == '"' {
			break
		}
		s.advance()
	}
	text := s.source[from:s.cursor]
	s.advance() // closing quote
	return Token{Kind: KindLiteral, Literal: LiteralString, Text: text, Pos: start}, nil
}

func (s *Scanner) scanNumber(start Position) (Token, error) {
	var b strings.Builder
	seenDot := false
	for {
		ch, ok := s.peek()
		if !ok || !(isDigit(ch) || ch == '.') {
			break
		}
		if ch == '.' {
			if seenDot {
				return Token{}, &Error{Message: "multiple decimal points in number literal", Pos: s.position()}
			}
			seenDot = true
			if b.Len() == 0 {
				b.WriteByte('0')
			}
		}
		b.WriteRune(ch)
		s.advance()
	}
	return Token{Kind: KindLiteral, Literal: LiteralNumber, Text: b.String(), Pos: start}, nil
}

func (s *Scanner) scanIdentifier(start Position) Token {
	from := s.cursor
	for {
		ch, ok := s.peek()
		if !ok || !isIdentRune(ch) {
			break
		}
		s.advance()
	}
	return Token{Kind: KindIdent, Text: s.source[from:s.cursor], Pos: start}
}

func (s *Scanner) skipWhitespace() {
	for {
		ch, ok := s.peek()
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		s.advance()
	}
}

// skipComment consumes through the end of the line, or to end of input.
func (s *Scanner) skipComment() {
	for {
		ch, ok := s.peek()
		if !ok {
			return
		}
		s.advance()
		if ch == '\n' {
			return
		}
	}
}

func (s *Scanner) peek() (rune, bool) {
	if s.cursor >= len(s.source) {
		return 0, false
	}
	ch, _ := utf8.DecodeRuneInString(s.source[s.cursor:])
	return ch, true
}

func (s *Scanner) advance() {
	ch, size := utf8.DecodeRuneInString(s.source[s.cursor:])
	s.cursor += size
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
}

// advanceBy skips n bytes of single-line ASCII text.
func (s *Scanner) advanceBy(n int) {
	s.cursor += n
	s.column += n
}

func (s *Scanner) position() Position {
	return Position{Offset: s.cursor, Line: s.line, Column: s.column}
}

func punctuation(ch rune) (Kind, bool) {
	switch ch {
	case '=':
		return KindAssignment, true
	case ';':
		return KindSemicolon, true
	case '(':
		return KindOpenParen, true
	case ')':
		return KindCloseParen, true
	case ':':
		return KindColon, true
	default:
		return 0, false
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
