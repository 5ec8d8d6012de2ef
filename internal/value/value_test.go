package value

import (
	"testing"
)

func TestNumberFormatting(t *testing.T) {
	cases := []struct {
		n    Number
		want string
	}{
		{Real(5), "5"},
		{Real(-5), "-5"},
		{Real(3.5), "3.5"},
		{Real(0), "0"},
		{Real(1e20), "1e+20"},
		{Real(0.3333333333333333), "0.3333333333"},
		{Number(complex(0, 1)), "j"},
		{Number(complex(0, -1)), "-j"},
		{Number(complex(0, 2)), "2j"},
		{Number(complex(3, 2)), "3+2j"},
		{Number(complex(3, -2)), "3-2j"},
		{Number(complex(1.5, 1)), "1.5+j"},
		{Number(complex(2, 0)), "2"},
	}
	for _, c := range cases {
		if got := c.n.String(); got != c.want {
			t.Errorf("expected '%s', got '%s'", c.want, got)
		}
	}
}

func TestVectorFormatting(t *testing.T) {
	v := Vector{Real(1), Real(2.5), Number(complex(0, 1))}
	if got := v.String(); got != "[1, 2.5, j]" {
		t.Errorf("expected '[1, 2.5, j]', got '%s'", got)
	}
}

func TestRecordSolutionLookup(t *testing.T) {
	rec := NewMultiple(3, []Value{Real(2), Real(3)})
	if rec.Kind != Multiple {
		t.Fatalf("expected multiple, got %s", rec.Kind)
	}

	// indexed lookups
	v, ok := rec.Value(1)
	if !ok || v.String() != "3" {
		t.Errorf("expected '3', got '%v' (%v)", v, ok)
	}

	// a bare lookup yields solution 0
	v, ok = rec.Value(-1)
	if !ok || v.String() != "2" {
		t.Errorf("expected '2', got '%v' (%v)", v, ok)
	}

	// out of range
	if _, ok := rec.Value(2); ok {
		t.Errorf("expected out-of-range lookup to fail")
	}
}

func TestMultipleCollapsesToSingle(t *testing.T) {
	rec := NewMultiple(1, []Value{Real(7)})
	if rec.Kind != Single {
		t.Errorf("expected single, got %s", rec.Kind)
	}
	if got := rec.Display(); got != "7" {
		t.Errorf("expected '7', got '%s'", got)
	}
}

func TestRecordDisplay(t *testing.T) {
	rec := NewMultiple(3, []Value{Real(2), Real(3)})
	if got := rec.Display(); got != "x[0] = 2, x[1] = 3" {
		t.Errorf("expected 'x[0] = 2, x[1] = 3', got '%s'", got)
	}

	errRec := NewError(4, Errorf(ErrUnresolvedReference, "line 9 has no result"))
	if got := errRec.Display(); got != "unresolved reference: line 9 has no result" {
		t.Errorf("unexpected error display '%s'", got)
	}
	if _, ok := errRec.Value(0); ok {
		t.Errorf("expected no value from an error record")
	}
}

func TestErrorKinds(t *testing.T) {
	err := Errorf(ErrMathDomain, "division by zero")
	if !IsKind(err, ErrMathDomain) {
		t.Errorf("expected math domain kind")
	}
	if IsKind(err, ErrSyntax) {
		t.Errorf("kind should not match syntax")
	}
	if got := AsEvalError(err); got.Kind != ErrMathDomain {
		t.Errorf("expected kind preserved, got %s", got.Kind)
	}
}
