package solve

import (
	"math"
	"math/cmplx"

	"qalctxt.net/qalc/internal/eval"
	"qalctxt.net/qalc/internal/parse"
	"qalctxt.net/qalc/internal/token"
	"qalctxt.net/qalc/internal/value"
)

// maxDegree bounds the polynomial degree the solver accepts.
const maxDegree = 24

// poly holds coefficients by ascending degree: p[k] multiplies x**k.
type poly []complex128

func (p poly) trim() poly {
	n := len(p)
	var max float64
	for _, c := range p {
		if a := cmplx.Abs(c); a > max {
			max = a
		}
	}
	eps := 1e-12 * math.Max(max, 1)
	for n > 0 && cmplx.Abs(p[n-1]) < eps {
		n--
	}
	return p[:n]
}

func (p poly) add(q poly) poly {
	out := make(poly, maxLen(p, q))
	copy(out, p)
	for i, c := range q {
		out[i] += c
	}
	return out
}

func (p poly) sub(q poly) poly {
	out := make(poly, maxLen(p, q))
	copy(out, p)
	for i, c := range q {
		out[i] -= c
	}
	return out
}

func (p poly) neg() poly {
	out := make(poly, len(p))
	for i, c := range p {
		out[i] = -c
	}
	return out
}

func (p poly) mul(q poly) poly {
	if len(p) == 0 || len(q) == 0 {
		return poly{}
	}
	out := make(poly, len(p)+len(q)-1)
	for i, a := range p {
		for j, b := range q {
			out[i+j] += a * b
		}
	}
	return out
}

func (p poly) scale(c complex128) poly {
	out := make(poly, len(p))
	for i, a := range p {
		out[i] = a * c
	}
	return out
}

func (p poly) at(x complex128) complex128 {
	var acc complex128
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc*x + p[i]
	}
	return acc
}

func maxLen(p, q poly) int {
	if len(p) > len(q) {
		return len(p)
	}
	return len(q)
}

// contains reports whether the named symbol appears as an identifier in n.
func contains(n parse.Node, name string) bool {
	found := false
	parse.Walk(n, func(m parse.Node) {
		if id, ok := m.(parse.Ident); ok && id.Name == name {
			found = true
		}
	})
	return found
}

// constant evaluates a subtree that does not mention the solve variable.
func constant(n parse.Node, ns *eval.Namespace) (complex128, error) {
	v, err := eval.Evaluate(n, ns)
	if err != nil {
		return 0, err
	}
	num, ok := v.(value.Number)
	if !ok {
		return 0, value.Errorf(value.ErrSyntax, "expected a number, got %s", v)
	}
	return complex128(num), nil
}

// extract rewrites n as a polynomial in the named variable. Subtrees that do
// not mention the variable are folded to constant coefficients; anything else
// that is not closed under polynomial arithmetic is rejected.
func extract(n parse.Node, variable string, ns *eval.Namespace) (poly, error) {
	if !contains(n, variable) {
		c, err := constant(n, ns)
		if err != nil {
			return nil, err
		}
		return poly{c}, nil
	}

	switch t := n.(type) {
	case parse.Ident:
		return poly{0, 1}, nil

	case parse.Unary:
		p, err := extract(t.X, variable, ns)
		if err != nil {
			return nil, err
		}
		if t.Op == token.MINUS {
			return p.neg(), nil
		}
		return p, nil

	case parse.Binary:
		switch t.Op {
		case token.PLUS, token.MINUS, token.STAR:
			l, err := extract(t.L, variable, ns)
			if err != nil {
				return nil, err
			}
			r, err := extract(t.R, variable, ns)
			if err != nil {
				return nil, err
			}
			switch t.Op {
			case token.PLUS:
				return l.add(r), nil
			case token.MINUS:
				return l.sub(r), nil
			default:
				p := l.mul(r)
				if len(p) > maxDegree+1 {
					return nil, value.Errorf(value.ErrSyntax, "polynomial degree exceeds %d", maxDegree)
				}
				return p, nil
			}

		case token.SLASH:
			if contains(t.R, variable) {
				return nil, value.Errorf(value.ErrSyntax, "cannot solve with %s in a divisor", variable)
			}
			l, err := extract(t.L, variable, ns)
			if err != nil {
				return nil, err
			}
			c, err := constant(t.R, ns)
			if err != nil {
				return nil, err
			}
			if c == 0 {
				return nil, value.Errorf(value.ErrMathDomain, "division by zero")
			}
			return l.scale(1 / c), nil

		case token.POW:
			if contains(t.R, variable) {
				return nil, value.Errorf(value.ErrSyntax, "cannot solve with %s in an exponent", variable)
			}
			c, err := constant(t.R, ns)
			if err != nil {
				return nil, err
			}
			k := real(c)
			if imag(c) != 0 || k != math.Trunc(k) || k < 0 || k > maxDegree {
				return nil, value.Errorf(value.ErrSyntax, "exponent %s is not a small whole number", value.Number(c))
			}
			base, err := extract(t.L, variable, ns)
			if err != nil {
				return nil, err
			}
			out := poly{1}
			for i := 0; i < int(k); i++ {
				out = out.mul(base)
				if len(out) > maxDegree+1 {
					return nil, value.Errorf(value.ErrSyntax, "polynomial degree exceeds %d", maxDegree)
				}
			}
			return out, nil
		}
		return nil, value.Errorf(value.ErrSyntax, "cannot solve across %s", t.Op)

	case parse.Call:
		return nil, value.Errorf(value.ErrSyntax, "cannot solve across %s(...)", t.Name)
	}
	return nil, value.Errorf(value.ErrSyntax, "equation is not polynomial in %s", variable)
}
