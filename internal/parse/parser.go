package parse

import (
	"strconv"
	"strings"

	"qalctxt.net/qalc/internal/scanner"
	"qalctxt.net/qalc/internal/token"
	"qalctxt.net/qalc/internal/value"
)

// parser is a recursive-descent parser over the scanner's token stream.
type parser struct {
	scan *scanner.Scanner
}

// Line parses one comment-free, reference-free line of notebook text.
// The result is an Equation node when the line contains a top-level =,
// otherwise a plain expression node.
func Line(text string) (Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, value.Errorf(value.ErrSyntax, "empty expression")
	}
	p := &parser{scan: scanner.New(text)}

	lhs, err := p.expr()
	if err != nil {
		return nil, err
	}

	item, err := p.scan.Next()
	if err != nil {
		return nil, err
	}
	switch item.Token {
	case token.EOF:
		return lhs, nil
	case token.EQUALS:
		rhs, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.EOF); err != nil {
			return nil, err
		}
		return Equation{L: lhs, R: rhs}, nil
	}
	return nil, value.Errorf(value.ErrSyntax, "unexpected %q", item.Text)
}

// Expr parses a single expression with no top-level equals sign.
func Expr(text string) (Node, error) {
	n, err := Line(text)
	if err != nil {
		return nil, err
	}
	if _, ok := n.(Equation); ok {
		return nil, value.Errorf(value.ErrSyntax, "unexpected equals sign")
	}
	return n, nil
}

func (p *parser) expect(want token.Token) error {
	item, err := p.scan.Next()
	if err != nil {
		return err
	}
	if item.Token != want {
		return value.Errorf(value.ErrSyntax, "expected %s, found %q", want, item.Text)
	}
	return nil
}

// expr := term (('+'|'-') term)*
func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		item, err := p.scan.Peek()
		if err != nil {
			return nil, err
		}
		if item.Token != token.PLUS && item.Token != token.MINUS {
			return left, nil
		}
		p.scan.Next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: item.Token, L: left, R: right}
	}
}

// term := unary (('*'|'/'|'%') unary)*, with implicit multiplication when an
// operand is directly followed by another operand start: 2pi, 3(x+1), (a)(b).
func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		item, err := p.scan.Peek()
		if err != nil {
			return nil, err
		}
		switch item.Token {
		case token.STAR, token.SLASH, token.PERCENT:
			p.scan.Next()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = Binary{Op: item.Token, L: left, R: right}
		case token.NUMBER, token.IDENT, token.LPAREN, token.LBRACKET:
			// implicit multiplication
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = Binary{Op: token.STAR, L: left, R: right}
		default:
			return left, nil
		}
	}
}

// unary := ('+'|'-') unary | power
func (p *parser) unary() (Node, error) {
	item, err := p.scan.Peek()
	if err != nil {
		return nil, err
	}
	if item.Token == token.PLUS || item.Token == token.MINUS {
		p.scan.Next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if item.Token == token.PLUS {
			return x, nil
		}
		return Unary{Op: token.MINUS, X: x}, nil
	}
	return p.power()
}

// power := primary ('**' unary)?  Right-associative, and the exponent may
// carry its own sign (2**-3).
func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	item, err := p.scan.Peek()
	if err != nil {
		return nil, err
	}
	if item.Token != token.POW {
		return base, nil
	}
	p.scan.Next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return Binary{Op: token.POW, L: base, R: exp}, nil
}

// primary := NUMBER | IDENT | IDENT '(' args ')' | '(' expr ')' | '[' elems ']'
func (p *parser) primary() (Node, error) {
	item, err := p.scan.Next()
	if err != nil {
		return nil, err
	}

	switch item.Token {
	case token.NUMBER:
		f, err := strconv.ParseFloat(item.Text, 64)
		if err != nil {
			return nil, value.Errorf(value.ErrSyntax, "malformed number %q", item.Text)
		}
		return Num{Val: f}, nil

	case token.IDENT:
		next, err := p.scan.Peek()
		if err != nil {
			return nil, err
		}
		if next.Token == token.LPAREN {
			p.scan.Next()
			args, err := p.list(token.RPAREN)
			if err != nil {
				return nil, err
			}
			return Call{Name: item.Text, Args: args}, nil
		}
		return Ident{Name: item.Text}, nil

	case token.LPAREN:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	case token.LBRACKET:
		elems, err := p.list(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		if len(elems) == 0 {
			return nil, value.Errorf(value.ErrSyntax, "empty vector literal")
		}
		return VectorLit{Elems: elems}, nil

	case token.EOF:
		return nil, value.Errorf(value.ErrSyntax, "unexpected end of expression")
	}
	return nil, value.Errorf(value.ErrSyntax, "unexpected %q", item.Text)
}

// list parses a comma-separated expression list up to the closing token.
// Equation arguments are allowed inside call parentheses so that directives
// like solve(x**2 = 4, x) parse; the solver interprets them.
func (p *parser) list(close token.Token) ([]Node, error) {
	var out []Node

	item, err := p.scan.Peek()
	if err != nil {
		return nil, err
	}
	if item.Token == close {
		p.scan.Next()
		return out, nil
	}

	for {
		elem, err := p.expr()
		if err != nil {
			return nil, err
		}
		// an equals sign inside an argument makes it an equation argument
		item, err = p.scan.Peek()
		if err != nil {
			return nil, err
		}
		if item.Token == token.EQUALS {
			p.scan.Next()
			rhs, err := p.expr()
			if err != nil {
				return nil, err
			}
			elem = Equation{L: elem, R: rhs}
			item, err = p.scan.Peek()
			if err != nil {
				return nil, err
			}
		}
		out = append(out, elem)

		switch item.Token {
		case token.COMMA:
			p.scan.Next()
		case close:
			p.scan.Next()
			return out, nil
		default:
			return nil, value.Errorf(value.ErrSyntax, "expected %s, found %q", close, item.Text)
		}
	}
}
