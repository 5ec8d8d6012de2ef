// Package token defines the token types of the notebook expression grammar.
package token

// Token represents an expression token type.
type Token int

const (
	EOF Token = iota
	NUMBER
	IDENT

	// Operators and delimiters
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	POW      // ** (also written ^ before preprocessing)
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COMMA    // ,
	EQUALS   // =
)

// Marker runes recognized outside the expression grammar proper.
const (
	RuneComment   = '#' // starts a comment, always (the grammar has no literals)
	RuneReference = '@' // starts a line reference @N or @N.M
)

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case POW:
		return "**"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case LBRACKET:
		return "["
	case RBRACKET:
		return "]"
	case COMMA:
		return ","
	case EQUALS:
		return "="
	}
	return "UNKNOWN"
}
