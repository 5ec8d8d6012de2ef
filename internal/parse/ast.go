// Package parse builds expression ASTs from notebook line text.
package parse

import (
	"strconv"
	"strings"

	"qalctxt.net/qalc/internal/token"
)

// Node is the interface all AST nodes implement.
type Node interface {
	// String renders the node back to expression text.
	String() string
}

// Num is a numeric literal.
type Num struct {
	Val float64
}

func (n Num) String() string {
	if n.Val == float64(int64(n.Val)) && n.Val < 1e15 && n.Val > -1e15 {
		return strconv.FormatInt(int64(n.Val), 10)
	}
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

// Ident is a name: a constant, a free symbol, or a function name in a Call.
type Ident struct {
	Name string
}

func (i Ident) String() string { return i.Name }

// Unary is a prefix + or - applied to an operand.
type Unary struct {
	Op token.Token
	X  Node
}

func (u Unary) String() string {
	return u.Op.String() + wrap(u.X, precUnary)
}

// Binary is an infix operator applied to two operands.
type Binary struct {
	Op   token.Token
	L, R Node
}

func (b Binary) String() string {
	p := prec(b)
	l := wrap(b.L, p)
	if b.Op == token.POW && prec(b.L) == precPow {
		// ** is right-associative, a left ** chain keeps its parens
		l = "(" + b.L.String() + ")"
	}
	sep := b.Op.String()
	if b.Op == token.PLUS || b.Op == token.MINUS {
		sep = " " + sep + " "
	}
	return l + sep + wrapRight(b.R, b.Op, p)
}

// Call is a function application.
type Call struct {
	Name string
	Args []Node
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// VectorLit is a vector literal [a, b, c].
type VectorLit struct {
	Elems []Node
}

func (v VectorLit) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Equation is a top-level lhs = rhs. It never nests.
type Equation struct {
	L, R Node
}

func (e Equation) String() string { return e.L.String() + " = " + e.R.String() }

// Operator precedence levels for rendering.
const (
	precAdd = iota + 1
	precMul
	precUnary
	precPow
	precAtom
)

func prec(n Node) int {
	switch t := n.(type) {
	case Binary:
		switch t.Op {
		case token.PLUS, token.MINUS:
			return precAdd
		case token.STAR, token.SLASH, token.PERCENT:
			return precMul
		case token.POW:
			return precPow
		}
	case Unary:
		return precUnary
	}
	return precAtom
}

func wrap(n Node, outer int) string {
	if prec(n) < outer {
		return "(" + n.String() + ")"
	}
	return n.String()
}

func wrapRight(n Node, op token.Token, outer int) string {
	p := prec(n)
	if p < outer {
		return "(" + n.String() + ")"
	}
	if p == outer {
		switch op {
		case token.MINUS, token.SLASH, token.PERCENT:
			return "(" + n.String() + ")"
		}
	}
	return n.String()
}

// Walk calls fn for n and every node beneath it.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	switch t := n.(type) {
	case Unary:
		Walk(t.X, fn)
	case Binary:
		Walk(t.L, fn)
		Walk(t.R, fn)
	case Call:
		for _, a := range t.Args {
			Walk(a, fn)
		}
	case VectorLit:
		for _, e := range t.Elems {
			Walk(e, fn)
		}
	case Equation:
		Walk(t.L, fn)
		Walk(t.R, fn)
	}
}

// FreeSymbols returns, in first-appearance order, the identifiers in n that
// the known predicate does not recognize. Function names of calls are not
// symbols; they are resolved against the permitted-name table at evaluation.
func FreeSymbols(n Node, known func(string) bool) []string {
	var out []string
	seen := make(map[string]bool)
	Walk(n, func(m Node) {
		id, ok := m.(Ident)
		if !ok || known(id.Name) || seen[id.Name] {
			return
		}
		seen[id.Name] = true
		out = append(out, id.Name)
	})
	return out
}
