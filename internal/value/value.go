// Package value defines evaluated values, per-line result records, and the
// classified error taxonomy of the notebook core.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is an evaluated quantity. Only the formatted string is needed to
// substitute a value into another line's text; re-parsing happens downstream.
type Value interface {
	// String returns the display-formatted representation.
	String() string
}

// Number is a numeric value. Complex numbers use a nonzero imaginary part.
type Number complex128

// Real creates a Number from a float64.
func Real(f float64) Number { return Number(complex(f, 0)) }

// IsReal returns true if the imaginary part is zero.
func (n Number) IsReal() bool { return imag(complex128(n)) == 0 }

// Float returns the real part.
func (n Number) Float() float64 { return real(complex128(n)) }

func (n Number) String() string {
	c := complex128(n)
	re, im := real(c), imag(c)
	if im == 0 {
		return formatFloat(re)
	}
	if re == 0 {
		switch im {
		case 1:
			return "j"
		case -1:
			return "-j"
		}
		return formatFloat(im) + "j"
	}
	sign := "+"
	if im < 0 {
		sign = "-"
	}
	mag := formatFloat(abs(im))
	if abs(im) == 1 {
		return formatFloat(re) + sign + "j"
	}
	return formatFloat(re) + sign + mag + "j"
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// formatFloat renders a float the way the notebook displays results:
// integral values collapse to integers, everything else uses %.10g.
func formatFloat(f float64) string {
	if f == float64(int64(f)) && abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', 10, 64)
}

// Symbolic is a non-numeric result rendered as text, e.g. the output of a
// diff or integrate directive.
type Symbolic string

func (s Symbolic) String() string { return string(s) }

// Vector is an ordered sequence of values.
type Vector []Value

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Kind classifies a result record.
type Kind int

const (
	Single Kind = iota
	Multiple
	Error
)

// String returns the string representation of a result kind.
func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	case Error:
		return "error"
	}
	return "unknown"
}

// Record is the stored result of evaluating one line. A Single record has
// exactly one value, a Multiple record has two or more indexed solutions,
// and an Error record has none.
type Record struct {
	Line   int
	Kind   Kind
	Values []Value
	Err    *EvalError
}

// NewSingle creates a Single record for a line.
func NewSingle(line int, v Value) *Record {
	return &Record{Line: line, Kind: Single, Values: []Value{v}}
}

// NewMultiple creates a record from solver output. One solution collapses to
// a Single record.
func NewMultiple(line int, vs []Value) *Record {
	if len(vs) == 1 {
		return NewSingle(line, vs[0])
	}
	return &Record{Line: line, Kind: Multiple, Values: vs}
}

// NewError creates an Error record for a line.
func NewError(line int, err *EvalError) *Record {
	return &Record{Line: line, Kind: Error, Err: err}
}

// Value returns the solution at index i. A bare lookup (i < 0) on a Multiple
// record yields solution 0, matching how references without an index resolve.
func (r *Record) Value(i int) (Value, bool) {
	if r.Kind == Error {
		return nil, false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(r.Values) {
		return nil, false
	}
	return r.Values[i], true
}

// Display returns the rendering of the record for the UI layer.
func (r *Record) Display() string {
	switch r.Kind {
	case Error:
		return r.Err.Error()
	case Multiple:
		parts := make([]string, len(r.Values))
		for i, v := range r.Values {
			parts[i] = fmt.Sprintf("x[%d] = %s", i, v)
		}
		return strings.Join(parts, ", ")
	default:
		if len(r.Values) == 0 {
			return ""
		}
		return r.Values[0].String()
	}
}
