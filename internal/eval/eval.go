package eval

import (
	"math"
	"math/cmplx"

	"qalctxt.net/qalc/internal/parse"
	"qalctxt.net/qalc/internal/token"
	"qalctxt.net/qalc/internal/value"
)

// Evaluate reduces an expression AST to a value under the given
// permitted-name table. It has no side effects: all state an evaluation can
// observe arrives through ns.
func Evaluate(n parse.Node, ns *Namespace) (value.Value, error) {
	switch t := n.(type) {
	case parse.Num:
		return value.Real(t.Val), nil

	case parse.Ident:
		if c, ok := ns.Const(t.Name); ok {
			return c, nil
		}
		return nil, value.Errorf(value.ErrUnknownSymbol, "%s", t.Name)

	case parse.Unary:
		x, err := Evaluate(t.X, ns)
		if err != nil {
			return nil, err
		}
		return negate(x)

	case parse.Binary:
		l, err := Evaluate(t.L, ns)
		if err != nil {
			return nil, err
		}
		r, err := Evaluate(t.R, ns)
		if err != nil {
			return nil, err
		}
		return apply(t.Op, l, r)

	case parse.Call:
		fn, ok := ns.Lookup(t.Name)
		if !ok {
			return nil, value.Errorf(value.ErrUnknownSymbol, "%s", t.Name)
		}
		if len(t.Args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(t.Args) > fn.MaxArgs) {
			return nil, value.Errorf(value.ErrSyntax, "%s: wrong number of arguments (%d)", t.Name, len(t.Args))
		}
		args := make([]value.Value, len(t.Args))
		for i, a := range t.Args {
			v, err := Evaluate(a, ns)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fn.Apply(args)

	case parse.VectorLit:
		vec := make(value.Vector, len(t.Elems))
		for i, e := range t.Elems {
			v, err := Evaluate(e, ns)
			if err != nil {
				return nil, err
			}
			if _, ok := v.(value.Number); !ok {
				return nil, value.Errorf(value.ErrMathDomain, "vector elements must be numbers")
			}
			vec[i] = v
		}
		return vec, nil

	case parse.Equation:
		// equations are routed to the solver, never here
		return nil, value.Errorf(value.ErrSyntax, "unexpected equals sign")
	}
	return nil, value.Errorf(value.ErrSyntax, "unsupported expression")
}

func negate(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Number:
		return value.Number(-complex128(t)), nil
	case value.Vector:
		out := make(value.Vector, len(t))
		for i, e := range t {
			n, err := negate(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return nil, value.Errorf(value.ErrMathDomain, "cannot negate %s", v)
}

// apply dispatches a binary operator over numbers and vectors. Vectors add
// and subtract elementwise and scale by numbers; everything else is a
// domain error.
func apply(op token.Token, l, r value.Value) (value.Value, error) {
	ln, lIsNum := l.(value.Number)
	rn, rIsNum := r.(value.Number)
	if lIsNum && rIsNum {
		return applyNumber(op, ln, rn)
	}

	lv, lIsVec := l.(value.Vector)
	rv, rIsVec := r.(value.Vector)
	switch {
	case lIsVec && rIsVec:
		if op != token.PLUS && op != token.MINUS {
			return nil, value.Errorf(value.ErrMathDomain, "unsupported vector operation %s", op)
		}
		if len(lv) != len(rv) {
			return nil, value.Errorf(value.ErrMathDomain, "vector lengths %d and %d differ", len(lv), len(rv))
		}
		out := make(value.Vector, len(lv))
		for i := range lv {
			v, err := apply(op, lv[i], rv[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case lIsVec && rIsNum:
		if op != token.STAR && op != token.SLASH {
			return nil, value.Errorf(value.ErrMathDomain, "unsupported vector operation %s", op)
		}
		return scale(op, lv, rn)

	case lIsNum && rIsVec:
		if op != token.STAR {
			return nil, value.Errorf(value.ErrMathDomain, "unsupported vector operation %s", op)
		}
		return scale(op, rv, ln)
	}
	return nil, value.Errorf(value.ErrMathDomain, "unsupported operands for %s", op)
}

func scale(op token.Token, v value.Vector, by value.Number) (value.Value, error) {
	out := make(value.Vector, len(v))
	for i, e := range v {
		n, err := apply(op, e, by)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func applyNumber(op token.Token, l, r value.Number) (value.Value, error) {
	a, b := complex128(l), complex128(r)
	switch op {
	case token.PLUS:
		return value.Number(a + b), nil
	case token.MINUS:
		return value.Number(a - b), nil
	case token.STAR:
		return value.Number(a * b), nil
	case token.SLASH:
		if b == 0 {
			return nil, value.Errorf(value.ErrMathDomain, "division by zero")
		}
		return value.Number(a / b), nil
	case token.PERCENT:
		if !l.IsReal() || !r.IsReal() {
			return nil, value.Errorf(value.ErrMathDomain, "%% of a complex number")
		}
		if r.Float() == 0 {
			return nil, value.Errorf(value.ErrMathDomain, "division by zero")
		}
		// Python-style modulo: result takes the sign of the divisor
		m := math.Mod(l.Float(), r.Float())
		if m != 0 && (m < 0) != (r.Float() < 0) {
			m += r.Float()
		}
		return value.Real(m), nil
	case token.POW:
		return power(l, r)
	}
	return nil, value.Errorf(value.ErrSyntax, "unsupported operator %s", op)
}

// power computes l**r, staying in the reals when the result is real:
// a negative real base with a fractional exponent goes complex, matching
// how the j constant extends the rest of the namespace.
func power(l, r value.Number) (value.Value, error) {
	if l.IsReal() && r.IsReal() {
		b, e := l.Float(), r.Float()
		if b == 0 && e < 0 {
			return nil, value.Errorf(value.ErrMathDomain, "zero to a negative power")
		}
		if b >= 0 || e == math.Trunc(e) {
			return value.Real(math.Pow(b, e)), nil
		}
	}
	if complex128(l) == 0 {
		return value.Real(0), nil
	}
	return value.Number(cmplx.Pow(complex128(l), complex128(r))), nil
}
