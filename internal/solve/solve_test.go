package solve

import (
	"testing"

	"qalctxt.net/qalc/internal/eval"
	"qalctxt.net/qalc/internal/parse"
	"qalctxt.net/qalc/internal/value"
)

func solveText(t *testing.T, text string) ([]value.Number, error) {
	t.Helper()
	n, err := parse.Line(text)
	if err != nil {
		t.Fatalf("parse %q failed: %v", text, err)
	}
	eq, ok := n.(parse.Equation)
	if !ok {
		t.Fatalf("%q is not an equation", text)
	}
	return Solve(eq.L, eq.R, "", eval.Default())
}

func expectRoots(t *testing.T, text string, want ...string) {
	t.Helper()
	roots, err := solveText(t, text)
	if err != nil {
		t.Fatalf("%q failed: %v", text, err)
	}
	if len(roots) != len(want) {
		t.Fatalf("%q: expected %d roots, got %d (%v)", text, len(want), len(roots), roots)
	}
	for i, w := range want {
		if got := roots[i].String(); got != w {
			t.Errorf("%q root %d: expected %s, got %s", text, i, w, got)
		}
	}
}

func TestSolveLinear(t *testing.T) {
	expectRoots(t, "2*x + 6 = 0", "-3")
	expectRoots(t, "x - 1 = 4", "5")
	expectRoots(t, "3*(y + 1) = y + 7", "2")
}

func TestSolveQuadratic(t *testing.T) {
	expectRoots(t, "x**2 - 5*x + 6 = 0", "2", "3")
	expectRoots(t, "x**2 = 4", "-2", "2")
	expectRoots(t, "x**2 - 2*x + 1 = 0", "1", "1")
}

func TestSolveQuadraticComplexRoots(t *testing.T) {
	expectRoots(t, "x**2 + 1 = 0", "-j", "j")
	expectRoots(t, "x**2 + 4 = 0", "-2j", "2j")
}

func TestSolveCubic(t *testing.T) {
	expectRoots(t, "x**3 - 6*x**2 + 11*x - 6 = 0", "1", "2", "3")
}

func TestSolveRootOrderIsStable(t *testing.T) {
	first, err := solveText(t, "x**3 - 6*x**2 + 11*x - 6 = 0")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := solveText(t, "x**3 - 6*x**2 + 11*x - 6 = 0")
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d root %d: expected %s, got %s", i, j, first[j], again[j])
			}
		}
	}
}

func TestSolveDegenerate(t *testing.T) {
	// an identity has every value as a solution, a contradiction has none
	if _, err := solveText(t, "x = x"); !value.IsKind(err, value.ErrNoSolution) {
		t.Errorf("identity: expected no-solution error, got %v", err)
	}
	if _, err := solveText(t, "x + 1 = x"); !value.IsKind(err, value.ErrNoSolution) {
		t.Errorf("contradiction: expected no-solution error, got %v", err)
	}
	if _, err := solveText(t, "2 = 2"); !value.IsKind(err, value.ErrNoSolution) {
		t.Errorf("no unknown: expected no-solution error, got %v", err)
	}
}

func TestSolveMultipleFreeSymbols(t *testing.T) {
	_, err := solveText(t, "x + y = 3")
	if !value.IsKind(err, value.ErrMultipleFreeSymbols) {
		t.Errorf("expected multiple-free-symbols error, got %v", err)
	}
}

func TestSolveNonPolynomial(t *testing.T) {
	if _, err := solveText(t, "sin(x) = 0"); !value.IsKind(err, value.ErrSyntax) {
		t.Errorf("expected syntax error for sin(x), got %v", err)
	}
	if _, err := solveText(t, "2**x = 8"); !value.IsKind(err, value.ErrSyntax) {
		t.Errorf("expected syntax error for unknown exponent, got %v", err)
	}
}

func directiveText(t *testing.T, text string) ([]value.Value, bool, error) {
	t.Helper()
	n, err := parse.Line(text)
	if err != nil {
		t.Fatalf("parse %q failed: %v", text, err)
	}
	c, ok := n.(parse.Call)
	if !ok {
		t.Fatalf("%q is not a call", text)
	}
	return Directive(c.Name, c.Args, eval.Default())
}

func TestSolveDirective(t *testing.T) {
	vs, multiple, err := directiveText(t, "solve(x**2 = 4, x)")
	if err != nil {
		t.Fatalf("solve directive failed: %v", err)
	}
	if !multiple || len(vs) != 2 {
		t.Fatalf("expected 2 addressable solutions, got %d (multiple=%v)", len(vs), multiple)
	}
	if vs[0].String() != "-2" || vs[1].String() != "2" {
		t.Errorf("expected [-2 2], got [%s %s]", vs[0], vs[1])
	}

	// expression form means expr = 0
	vs, _, err = directiveText(t, "solve(x**2 - 9)")
	if err != nil {
		t.Fatalf("solve directive failed: %v", err)
	}
	if vs[0].String() != "-3" || vs[1].String() != "3" {
		t.Errorf("expected [-3 3], got [%s %s]", vs[0], vs[1])
	}
}

func TestDiffDirective(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"diff(x**2)", "2*x"},
		{"diff(x**3 + x, x)", "3*x**2 + 1"},
		{"diff(sin(x))", "cos(x)"},
		{"diff(5)", "0"},
	}
	for _, c := range cases {
		vs, multiple, err := directiveText(t, c.in)
		if err != nil {
			t.Fatalf("%q failed: %v", c.in, err)
		}
		if multiple || len(vs) != 1 {
			t.Fatalf("%q: expected one symbolic result", c.in)
		}
		if got := vs[0].String(); got != c.want {
			t.Errorf("%q: expected '%s', got '%s'", c.in, c.want, got)
		}
	}
}

func TestIntegrateDirective(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"integrate(2*x)", "x**2"},
		{"integrate(cos(x))", "sin(x)"},
		{"integrate(x**2, x)", "x**3/3"},
	}
	for _, c := range cases {
		vs, _, err := directiveText(t, c.in)
		if err != nil {
			t.Fatalf("%q failed: %v", c.in, err)
		}
		if got := vs[0].String(); got != c.want {
			t.Errorf("%q: expected '%s', got '%s'", c.in, c.want, got)
		}
	}
}

func TestDirectiveErrors(t *testing.T) {
	if _, _, err := directiveText(t, "diff(x + y)"); !value.IsKind(err, value.ErrMultipleFreeSymbols) {
		t.Errorf("expected multiple-free-symbols error, got %v", err)
	}
	if _, _, err := directiveText(t, "solve(x = 1, 2)"); !value.IsKind(err, value.ErrSyntax) {
		t.Errorf("expected syntax error for numeric variable, got %v", err)
	}
}
