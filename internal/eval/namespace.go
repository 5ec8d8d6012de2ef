// Package eval evaluates notebook expression ASTs under a closed
// permitted-name table.
package eval

import (
	"math"
	"math/cmplx"

	"qalctxt.net/qalc/internal/value"
)

// Func is a permitted function. Args outside [MinArgs, MaxArgs] are rejected
// before Apply runs; MaxArgs < 0 means variadic.
type Func struct {
	MinArgs int
	MaxArgs int
	Apply   func(args []value.Value) (value.Value, error)
}

// Namespace is the permitted-name table an evaluation resolves against: a
// closed set of functions and constants with no access to ambient state.
// It is never mutated after construction, so one line's evaluation cannot
// leak bindings into another's.
type Namespace struct {
	funcs  map[string]Func
	consts map[string]value.Number
}

// Known returns true if the name is a permitted function or constant.
func (ns *Namespace) Known(name string) bool {
	if _, ok := ns.consts[name]; ok {
		return true
	}
	_, ok := ns.funcs[name]
	return ok
}

// Const returns the named constant.
func (ns *Namespace) Const(name string) (value.Number, bool) {
	c, ok := ns.consts[name]
	return c, ok
}

// Lookup returns the named function.
func (ns *Namespace) Lookup(name string) (Func, bool) {
	f, ok := ns.funcs[name]
	return f, ok
}

// Default constructs the standard permitted-name table: elementary
// functions, aggregates, and named constants. Each call builds fresh maps.
func Default() *Namespace {
	ns := &Namespace{
		funcs: make(map[string]Func),
		consts: map[string]value.Number{
			"pi":  value.Real(math.Pi),
			"e":   value.Real(math.E),
			"tau": value.Real(2 * math.Pi),
			"j":   value.Number(complex(0, 1)),
		},
	}

	real1 := func(name string, f func(float64) float64, domain func(float64) bool, cf func(complex128) complex128) {
		ns.funcs[name] = Func{MinArgs: 1, MaxArgs: 1, Apply: func(args []value.Value) (value.Value, error) {
			x, err := number(name, args[0])
			if err != nil {
				return nil, err
			}
			if x.IsReal() {
				v := x.Float()
				if domain != nil && !domain(v) {
					return nil, value.Errorf(value.ErrMathDomain, "%s(%s)", name, x)
				}
				return value.Real(f(v)), nil
			}
			if cf == nil {
				return nil, value.Errorf(value.ErrMathDomain, "%s of a complex number", name)
			}
			return value.Number(cf(complex128(x))), nil
		}}
	}

	nonneg := func(v float64) bool { return v >= 0 }
	pos := func(v float64) bool { return v > 0 }
	unit := func(v float64) bool { return v >= -1 && v <= 1 }

	real1("sin", math.Sin, nil, cmplx.Sin)
	real1("cos", math.Cos, nil, cmplx.Cos)
	real1("tan", math.Tan, nil, cmplx.Tan)
	real1("asin", math.Asin, unit, cmplx.Asin)
	real1("acos", math.Acos, unit, cmplx.Acos)
	real1("atan", math.Atan, nil, cmplx.Atan)
	real1("sinh", math.Sinh, nil, cmplx.Sinh)
	real1("cosh", math.Cosh, nil, cmplx.Cosh)
	real1("tanh", math.Tanh, nil, cmplx.Tanh)
	real1("asinh", math.Asinh, nil, cmplx.Asinh)
	real1("acosh", math.Acosh, func(v float64) bool { return v >= 1 }, cmplx.Acosh)
	real1("atanh", math.Atanh, func(v float64) bool { return v > -1 && v < 1 }, cmplx.Atanh)
	real1("exp", math.Exp, nil, cmplx.Exp)
	real1("log", math.Log, pos, cmplx.Log)
	real1("log10", math.Log10, pos, cmplx.Log10)
	real1("log2", math.Log2, pos, nil)
	real1("sqrt", math.Sqrt, nonneg, cmplx.Sqrt)
	real1("ceil", math.Ceil, nil, nil)
	real1("floor", math.Floor, nil, nil)
	real1("trunc", math.Trunc, nil, nil)
	real1("degrees", func(v float64) float64 { return v * 180 / math.Pi }, nil, nil)
	real1("radians", func(v float64) float64 { return v * math.Pi / 180 }, nil, nil)

	ns.funcs["abs"] = Func{MinArgs: 1, MaxArgs: 1, Apply: func(args []value.Value) (value.Value, error) {
		x, err := number("abs", args[0])
		if err != nil {
			return nil, err
		}
		return value.Real(cmplx.Abs(complex128(x))), nil
	}}

	ns.funcs["atan2"] = Func{MinArgs: 2, MaxArgs: 2, Apply: func(args []value.Value) (value.Value, error) {
		y, err := realArg("atan2", args[0])
		if err != nil {
			return nil, err
		}
		x, err := realArg("atan2", args[1])
		if err != nil {
			return nil, err
		}
		return value.Real(math.Atan2(y, x)), nil
	}}

	ns.funcs["pow"] = Func{MinArgs: 2, MaxArgs: 2, Apply: func(args []value.Value) (value.Value, error) {
		b, err := number("pow", args[0])
		if err != nil {
			return nil, err
		}
		e, err := number("pow", args[1])
		if err != nil {
			return nil, err
		}
		return power(b, e)
	}}

	ns.funcs["round"] = Func{MinArgs: 1, MaxArgs: 2, Apply: func(args []value.Value) (value.Value, error) {
		x, err := realArg("round", args[0])
		if err != nil {
			return nil, err
		}
		digits := 0.0
		if len(args) == 2 {
			digits, err = realArg("round", args[1])
			if err != nil {
				return nil, err
			}
		}
		scale := math.Pow(10, math.Trunc(digits))
		return value.Real(math.Round(x*scale) / scale), nil
	}}

	ns.funcs["factorial"] = Func{MinArgs: 1, MaxArgs: 1, Apply: func(args []value.Value) (value.Value, error) {
		x, err := realArg("factorial", args[0])
		if err != nil {
			return nil, err
		}
		if x < 0 || x != math.Trunc(x) || x > 170 {
			return nil, value.Errorf(value.ErrMathDomain, "factorial(%g)", x)
		}
		out := 1.0
		for i := 2.0; i <= x; i++ {
			out *= i
		}
		return value.Real(out), nil
	}}

	ns.funcs["gcd"] = Func{MinArgs: 2, MaxArgs: 2, Apply: func(args []value.Value) (value.Value, error) {
		a, err := intArg("gcd", args[0])
		if err != nil {
			return nil, err
		}
		b, err := intArg("gcd", args[1])
		if err != nil {
			return nil, err
		}
		for b != 0 {
			a, b = b, a%b
		}
		if a < 0 {
			a = -a
		}
		return value.Real(float64(a)), nil
	}}

	// Aggregates accept either a single vector or a variadic argument list.
	ns.funcs["min"] = aggregate("min", math.Min)
	ns.funcs["max"] = aggregate("max", math.Max)
	ns.funcs["sum"] = aggregate("sum", func(acc, v float64) float64 { return acc + v })

	ns.funcs["len"] = Func{MinArgs: 1, MaxArgs: 1, Apply: func(args []value.Value) (value.Value, error) {
		vec, ok := args[0].(value.Vector)
		if !ok {
			return nil, value.Errorf(value.ErrMathDomain, "len expects a vector")
		}
		return value.Real(float64(len(vec))), nil
	}}

	ns.funcs["dot"] = Func{MinArgs: 2, MaxArgs: 2, Apply: func(args []value.Value) (value.Value, error) {
		a, aok := args[0].(value.Vector)
		b, bok := args[1].(value.Vector)
		if !aok || !bok {
			return nil, value.Errorf(value.ErrMathDomain, "dot expects two vectors")
		}
		if len(a) != len(b) {
			return nil, value.Errorf(value.ErrMathDomain, "dot: vector lengths %d and %d differ", len(a), len(b))
		}
		var acc complex128
		for i := range a {
			x, err := number("dot", a[i])
			if err != nil {
				return nil, err
			}
			y, err := number("dot", b[i])
			if err != nil {
				return nil, err
			}
			acc += complex128(x) * complex128(y)
		}
		return value.Number(acc), nil
	}}

	return ns
}

// aggregate builds a fold over a vector or a variadic number list, seeded
// from the first element.
func aggregate(name string, fold func(acc, v float64) float64) Func {
	return Func{MinArgs: 1, MaxArgs: -1, Apply: func(args []value.Value) (value.Value, error) {
		var elems []value.Value
		if len(args) == 1 {
			if vec, ok := args[0].(value.Vector); ok {
				elems = vec
			}
		}
		if elems == nil {
			elems = args
		}
		if len(elems) == 0 {
			return nil, value.Errorf(value.ErrMathDomain, "%s of an empty sequence", name)
		}
		acc, err := realArg(name, elems[0])
		if err != nil {
			return nil, err
		}
		for _, e := range elems[1:] {
			v, err := realArg(name, e)
			if err != nil {
				return nil, err
			}
			acc = fold(acc, v)
		}
		return value.Real(acc), nil
	}}
}

func number(name string, v value.Value) (value.Number, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, value.Errorf(value.ErrMathDomain, "%s expects a number, got %s", name, v)
	}
	return n, nil
}

func realArg(name string, v value.Value) (float64, error) {
	n, err := number(name, v)
	if err != nil {
		return 0, err
	}
	if !n.IsReal() {
		return 0, value.Errorf(value.ErrMathDomain, "%s of a complex number", name)
	}
	return n.Float(), nil
}

func intArg(name string, v value.Value) (int64, error) {
	f, err := realArg(name, v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, value.Errorf(value.ErrMathDomain, "%s expects an integer, got %g", name, f)
	}
	return int64(f), nil
}
