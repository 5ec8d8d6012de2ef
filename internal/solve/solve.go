// Package solve finds roots of single-variable polynomial equations and
// evaluates the symbolic directives solve, diff, and integrate.
package solve

import (
	"strings"

	"qalctxt.net/qalc/internal/eval"
	"qalctxt.net/qalc/internal/parse"
	"qalctxt.net/qalc/internal/value"
)

// Solve finds the roots of l = r for the given variable. An empty variable
// name means infer it: the equation must then mention exactly one symbol the
// namespace does not know.
func Solve(l, r parse.Node, variable string, ns *eval.Namespace) ([]value.Number, error) {
	if variable == "" {
		free := freeIn(ns, l, r)
		switch len(free) {
		case 0:
			return nil, value.Errorf(value.ErrNoSolution, "equation has no unknown")
		case 1:
			variable = free[0]
		default:
			return nil, value.Errorf(value.ErrMultipleFreeSymbols,
				"equation has %d unknowns: %s", len(free), strings.Join(free, ", "))
		}
	}

	pl, err := extract(l, variable, ns)
	if err != nil {
		return nil, err
	}
	pr, err := extract(r, variable, ns)
	if err != nil {
		return nil, err
	}
	rs, err := roots(pl.sub(pr))
	if err != nil {
		return nil, err
	}
	out := make([]value.Number, len(rs))
	for i, z := range rs {
		out[i] = value.Number(z)
	}
	return out, nil
}

// freeIn unions the free symbols of the nodes, preserving first appearance.
func freeIn(ns *eval.Namespace, nodes ...parse.Node) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range nodes {
		for _, s := range parse.FreeSymbols(n, ns.Known) {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// IsDirective reports whether the name is a symbolic directive.
func IsDirective(name string) bool {
	switch name {
	case "solve", "diff", "integrate":
		return true
	}
	return false
}

// Directive evaluates a symbolic directive call. multiple is true when the
// values are the addressable solution set of a solve directive.
func Directive(name string, args []parse.Node, ns *eval.Namespace) (values []value.Value, multiple bool, err error) {
	variable := ""
	if len(args) == 2 {
		id, ok := args[1].(parse.Ident)
		if !ok {
			return nil, false, value.Errorf(value.ErrSyntax, "%s: second argument must be a symbol", name)
		}
		variable = id.Name
	} else if len(args) != 1 {
		return nil, false, value.Errorf(value.ErrSyntax, "%s expects 1 or 2 arguments, got %d", name, len(args))
	}

	switch name {
	case "solve":
		l, r := args[0], parse.Node(parse.Num{Val: 0})
		if eq, ok := args[0].(parse.Equation); ok {
			l, r = eq.L, eq.R
		}
		rs, err := Solve(l, r, variable, ns)
		if err != nil {
			return nil, false, err
		}
		values = make([]value.Value, len(rs))
		for i, z := range rs {
			values[i] = z
		}
		return values, true, nil

	case "diff", "integrate":
		expr := args[0]
		if _, ok := expr.(parse.Equation); ok {
			return nil, false, value.Errorf(value.ErrSyntax, "%s of an equation", name)
		}
		if variable == "" {
			free := freeIn(ns, expr)
			switch len(free) {
			case 0:
				variable = "x"
			case 1:
				variable = free[0]
			default:
				return nil, false, value.Errorf(value.ErrMultipleFreeSymbols,
					"%s has %d unknowns: %s", name, len(free), strings.Join(free, ", "))
			}
		}
		var out parse.Node
		if name == "diff" {
			out, err = derivative(expr, variable)
		} else {
			out, err = antiderivative(expr, variable)
		}
		if err != nil {
			return nil, false, err
		}
		return []value.Value{value.Symbolic(simplify(out).String())}, false, nil
	}
	return nil, false, value.Errorf(value.ErrSyntax, "unknown directive %s", name)
}
