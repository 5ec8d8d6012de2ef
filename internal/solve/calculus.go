package solve

import (
	"math"

	"qalctxt.net/qalc/internal/parse"
	"qalctxt.net/qalc/internal/token"
	"qalctxt.net/qalc/internal/value"
)

func num(v float64) parse.Node            { return parse.Num{Val: v} }
func add(l, r parse.Node) parse.Node      { return parse.Binary{Op: token.PLUS, L: l, R: r} }
func sub(l, r parse.Node) parse.Node      { return parse.Binary{Op: token.MINUS, L: l, R: r} }
func mul(l, r parse.Node) parse.Node      { return parse.Binary{Op: token.STAR, L: l, R: r} }
func div(l, r parse.Node) parse.Node      { return parse.Binary{Op: token.SLASH, L: l, R: r} }
func pow(l, r parse.Node) parse.Node      { return parse.Binary{Op: token.POW, L: l, R: r} }
func neg(n parse.Node) parse.Node         { return parse.Unary{Op: token.MINUS, X: n} }
func call(name string, arg parse.Node) parse.Node {
	return parse.Call{Name: name, Args: []parse.Node{arg}}
}

// derivative differentiates n with respect to the named variable using the
// usual sum, product, quotient, power, and chain rules. Forms outside those
// rules are rejected rather than approximated.
func derivative(n parse.Node, v string) (parse.Node, error) {
	if !contains(n, v) {
		return num(0), nil
	}

	switch t := n.(type) {
	case parse.Ident:
		return num(1), nil

	case parse.Unary:
		d, err := derivative(t.X, v)
		if err != nil {
			return nil, err
		}
		if t.Op == token.MINUS {
			return neg(d), nil
		}
		return d, nil

	case parse.Binary:
		switch t.Op {
		case token.PLUS, token.MINUS:
			dl, err := derivative(t.L, v)
			if err != nil {
				return nil, err
			}
			dr, err := derivative(t.R, v)
			if err != nil {
				return nil, err
			}
			return parse.Binary{Op: t.Op, L: dl, R: dr}, nil

		case token.STAR:
			dl, err := derivative(t.L, v)
			if err != nil {
				return nil, err
			}
			dr, err := derivative(t.R, v)
			if err != nil {
				return nil, err
			}
			return add(mul(dl, t.R), mul(t.L, dr)), nil

		case token.SLASH:
			dl, err := derivative(t.L, v)
			if err != nil {
				return nil, err
			}
			dr, err := derivative(t.R, v)
			if err != nil {
				return nil, err
			}
			return div(sub(mul(dl, t.R), mul(t.L, dr)), pow(t.R, num(2))), nil

		case token.POW:
			if contains(t.R, v) {
				return nil, value.Errorf(value.ErrSyntax, "cannot differentiate with %s in an exponent", v)
			}
			du, err := derivative(t.L, v)
			if err != nil {
				return nil, err
			}
			return mul(mul(t.R, pow(t.L, sub(t.R, num(1)))), du), nil
		}
		return nil, value.Errorf(value.ErrSyntax, "cannot differentiate across %s", t.Op)

	case parse.Call:
		if len(t.Args) != 1 {
			return nil, value.Errorf(value.ErrSyntax, "cannot differentiate %s", t.Name)
		}
		u := t.Args[0]
		var outer parse.Node
		switch t.Name {
		case "sin":
			outer = call("cos", u)
		case "cos":
			outer = neg(call("sin", u))
		case "tan":
			outer = div(num(1), pow(call("cos", u), num(2)))
		case "exp":
			outer = call("exp", u)
		case "log":
			outer = div(num(1), u)
		case "sqrt":
			outer = div(num(1), mul(num(2), call("sqrt", u)))
		default:
			return nil, value.Errorf(value.ErrSyntax, "cannot differentiate %s", t.Name)
		}
		du, err := derivative(u, v)
		if err != nil {
			return nil, err
		}
		return mul(outer, du), nil
	}
	return nil, value.Errorf(value.ErrSyntax, "cannot differentiate %s", n)
}

// antiderivative integrates n with respect to the named variable. The rule
// set covers polynomial terms, constant factors, and the elementary
// sin/cos/exp forms; no integration constant is appended.
func antiderivative(n parse.Node, v string) (parse.Node, error) {
	if !contains(n, v) {
		return mul(n, parse.Ident{Name: v}), nil
	}

	switch t := n.(type) {
	case parse.Ident:
		return div(pow(parse.Ident{Name: v}, num(2)), num(2)), nil

	case parse.Unary:
		in, err := antiderivative(t.X, v)
		if err != nil {
			return nil, err
		}
		if t.Op == token.MINUS {
			return neg(in), nil
		}
		return in, nil

	case parse.Binary:
		switch t.Op {
		case token.PLUS, token.MINUS:
			il, err := antiderivative(t.L, v)
			if err != nil {
				return nil, err
			}
			ir, err := antiderivative(t.R, v)
			if err != nil {
				return nil, err
			}
			return parse.Binary{Op: t.Op, L: il, R: ir}, nil

		case token.STAR:
			if !contains(t.L, v) {
				in, err := antiderivative(t.R, v)
				if err != nil {
					return nil, err
				}
				return mul(t.L, in), nil
			}
			if !contains(t.R, v) {
				in, err := antiderivative(t.L, v)
				if err != nil {
					return nil, err
				}
				return mul(in, t.R), nil
			}
			return nil, value.Errorf(value.ErrSyntax, "cannot integrate a product of terms in %s", v)

		case token.SLASH:
			if id, ok := t.R.(parse.Ident); ok && id.Name == v && !contains(t.L, v) {
				return mul(t.L, call("log", parse.Ident{Name: v})), nil
			}
			if !contains(t.R, v) {
				in, err := antiderivative(t.L, v)
				if err != nil {
					return nil, err
				}
				return div(in, t.R), nil
			}
			return nil, value.Errorf(value.ErrSyntax, "cannot integrate with %s in a divisor", v)

		case token.POW:
			id, lok := t.L.(parse.Ident)
			k, rok := t.R.(parse.Num)
			if !lok || id.Name != v || !rok {
				return nil, value.Errorf(value.ErrSyntax, "cannot integrate %s", n)
			}
			if k.Val == -1 {
				return call("log", parse.Ident{Name: v}), nil
			}
			return div(pow(parse.Ident{Name: v}, num(k.Val+1)), num(k.Val+1)), nil
		}
		return nil, value.Errorf(value.ErrSyntax, "cannot integrate across %s", t.Op)

	case parse.Call:
		if len(t.Args) != 1 {
			return nil, value.Errorf(value.ErrSyntax, "cannot integrate %s", n)
		}
		id, ok := t.Args[0].(parse.Ident)
		if !ok || id.Name != v {
			return nil, value.Errorf(value.ErrSyntax, "cannot integrate %s", n)
		}
		switch t.Name {
		case "sin":
			return neg(call("cos", parse.Ident{Name: v})), nil
		case "cos":
			return call("sin", parse.Ident{Name: v}), nil
		case "exp":
			return call("exp", parse.Ident{Name: v}), nil
		}
		return nil, value.Errorf(value.ErrSyntax, "cannot integrate %s", t.Name)
	}
	return nil, value.Errorf(value.ErrSyntax, "cannot integrate %s", n)
}

// simplify folds constant arithmetic and strips identity operations so the
// rendered result reads like hand-written algebra.
func simplify(n parse.Node) parse.Node {
	switch t := n.(type) {
	case parse.Unary:
		x := simplify(t.X)
		if t.Op == token.PLUS {
			return x
		}
		if k, ok := x.(parse.Num); ok {
			return num(-k.Val)
		}
		if u, ok := x.(parse.Unary); ok && u.Op == token.MINUS {
			return u.X
		}
		return parse.Unary{Op: t.Op, X: x}

	case parse.Binary:
		l, r := simplify(t.L), simplify(t.R)
		lk, lnum := l.(parse.Num)
		rk, rnum := r.(parse.Num)

		if lnum && rnum {
			if folded, ok := fold(t.Op, lk.Val, rk.Val); ok {
				return num(folded)
			}
		}
		switch t.Op {
		case token.PLUS:
			if lnum && lk.Val == 0 {
				return r
			}
			if rnum && rk.Val == 0 {
				return l
			}
		case token.MINUS:
			if rnum && rk.Val == 0 {
				return l
			}
			if lnum && lk.Val == 0 {
				return simplify(neg(r))
			}
		case token.STAR:
			if lnum && lk.Val == 0 || rnum && rk.Val == 0 {
				return num(0)
			}
			if lnum && lk.Val == 1 {
				return r
			}
			if rnum && rk.Val == 1 {
				return l
			}
			// c*(u/c) cancels to u
			if lnum {
				if q, ok := r.(parse.Binary); ok && q.Op == token.SLASH {
					if d, ok := q.R.(parse.Num); ok && d.Val == lk.Val {
						return q.L
					}
				}
			}
		case token.SLASH:
			if rnum && rk.Val == 1 {
				return l
			}
			if lnum && lk.Val == 0 && !(rnum && rk.Val == 0) {
				return num(0)
			}
		case token.POW:
			if rnum && rk.Val == 1 {
				return l
			}
			if rnum && rk.Val == 0 {
				return num(1)
			}
		}
		return parse.Binary{Op: t.Op, L: l, R: r}

	case parse.Call:
		args := make([]parse.Node, len(t.Args))
		for i, a := range t.Args {
			args[i] = simplify(a)
		}
		return parse.Call{Name: t.Name, Args: args}
	}
	return n
}

func fold(op token.Token, l, r float64) (float64, bool) {
	switch op {
	case token.PLUS:
		return l + r, true
	case token.MINUS:
		return l - r, true
	case token.STAR:
		return l * r, true
	case token.SLASH:
		if r != 0 && l/r == math.Trunc(l/r) {
			return l / r, true
		}
	case token.POW:
		if r == math.Trunc(r) && r >= 0 {
			return math.Pow(l, r), true
		}
	}
	return 0, false
}
