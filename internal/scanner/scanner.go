// Package scanner provides a rune-level lexer for notebook expression text.
package scanner

import (
	"strings"
	"unicode"

	"qalctxt.net/qalc/internal/token"
	"qalctxt.net/qalc/internal/value"
)

// Scanner tokenizes expression text rune-by-rune. Lines are short, so the
// whole input is held as a rune slice and scanned by index.
type Scanner struct {
	src    []rune
	pos    int
	peeked *Item
}

// Item represents a scanned token with its text.
type Item struct {
	Token token.Token
	Text  string
	Pos   int // rune offset where this token started
}

// New creates a new Scanner for the given text.
func New(text string) *Scanner {
	return &Scanner{src: []rune(text)}
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// Next returns the next token from the input.
func (s *Scanner) Next() (*Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	s.skipSpace()
	start := s.pos

	if s.pos >= len(s.src) {
		return &Item{Token: token.EOF, Pos: start}, nil
	}

	r := s.src[s.pos]
	switch {
	case unicode.IsDigit(r), r == '.' && s.digitAt(s.pos+1):
		return s.scanNumber(start)
	case unicode.IsLetter(r), r == '_':
		return s.scanIdent(start)
	}

	s.pos++
	switch r {
	case '+':
		return &Item{Token: token.PLUS, Text: "+", Pos: start}, nil
	case '-':
		return &Item{Token: token.MINUS, Text: "-", Pos: start}, nil
	case '*':
		if s.pos < len(s.src) && s.src[s.pos] == '*' {
			s.pos++
			return &Item{Token: token.POW, Text: "**", Pos: start}, nil
		}
		return &Item{Token: token.STAR, Text: "*", Pos: start}, nil
	case '^': // input alias for **
		return &Item{Token: token.POW, Text: "**", Pos: start}, nil
	case '×': // ×
		return &Item{Token: token.STAR, Text: "*", Pos: start}, nil
	case '÷': // ÷
		return &Item{Token: token.SLASH, Text: "/", Pos: start}, nil
	case '/':
		return &Item{Token: token.SLASH, Text: "/", Pos: start}, nil
	case '%':
		return &Item{Token: token.PERCENT, Text: "%", Pos: start}, nil
	case '(':
		return &Item{Token: token.LPAREN, Text: "(", Pos: start}, nil
	case ')':
		return &Item{Token: token.RPAREN, Text: ")", Pos: start}, nil
	case '[':
		return &Item{Token: token.LBRACKET, Text: "[", Pos: start}, nil
	case ']':
		return &Item{Token: token.RBRACKET, Text: "]", Pos: start}, nil
	case ',':
		return &Item{Token: token.COMMA, Text: ",", Pos: start}, nil
	case '=':
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++ // == is tolerated and means the same as =
		}
		return &Item{Token: token.EQUALS, Text: "=", Pos: start}, nil
	}

	return nil, value.Errorf(value.ErrSyntax, "unexpected character %q", r)
}

// scanNumber scans digits, an optional fraction, and an optional exponent.
func (s *Scanner) scanNumber(start int) (*Item, error) {
	seenDot := false
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		if unicode.IsDigit(r) {
			s.pos++
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			s.pos++
			continue
		}
		if (r == 'e' || r == 'E') && s.exponentAt(s.pos) {
			s.pos++ // marker
			if s.src[s.pos] == '+' || s.src[s.pos] == '-' {
				s.pos++
			}
			for s.pos < len(s.src) && unicode.IsDigit(s.src[s.pos]) {
				s.pos++
			}
			break
		}
		break
	}
	return &Item{Token: token.NUMBER, Text: string(s.src[start:s.pos]), Pos: start}, nil
}

// exponentAt reports whether an e/E at index i is followed by a valid
// (optionally signed) exponent.
func (s *Scanner) exponentAt(i int) bool {
	j := i + 1
	if j < len(s.src) && (s.src[j] == '+' || s.src[j] == '-') {
		j++
	}
	return j < len(s.src) && unicode.IsDigit(s.src[j])
}

func (s *Scanner) digitAt(i int) bool {
	return i < len(s.src) && unicode.IsDigit(s.src[i])
}

// scanIdent scans a letter or underscore followed by letters, digits, and
// underscores.
func (s *Scanner) scanIdent(start int) (*Item, error) {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		s.pos++
	}
	return &Item{Token: token.IDENT, Text: string(s.src[start:s.pos]), Pos: start}, nil
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.src) && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

// StripComment removes everything from the first comment marker to the end
// of the line. The expression grammar has no textual literals, so a marker
// anywhere always starts a comment. wholeLine is true when the visible
// content of the line was entirely comment (or blank): such lines contribute
// no expression and no result.
func StripComment(raw string) (text string, wholeLine bool) {
	text = raw
	if i := strings.IndexRune(raw, token.RuneComment); i >= 0 {
		text = raw[:i]
	}
	return text, strings.TrimSpace(text) == ""
}
