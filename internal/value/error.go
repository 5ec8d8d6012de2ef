package value

import (
	"errors"
	"fmt"
)

// ErrKind classifies an evaluation failure. Every failure the core can
// produce is one of these; all are local to the line that produced them.
type ErrKind int

const (
	ErrSyntax ErrKind = iota
	ErrUnknownSymbol
	ErrMathDomain
	ErrUnresolvedReference
	ErrIndexOutOfRange
	ErrResolutionOverflow
	ErrMultipleFreeSymbols
	ErrNoSolution
)

// String returns the display name of an error kind.
func (k ErrKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUnknownSymbol:
		return "unknown symbol"
	case ErrMathDomain:
		return "math domain error"
	case ErrUnresolvedReference:
		return "unresolved reference"
	case ErrIndexOutOfRange:
		return "index out of range"
	case ErrResolutionOverflow:
		return "reference resolution overflow"
	case ErrMultipleFreeSymbols:
		return "multiple free symbols"
	case ErrNoSolution:
		return "no solution"
	}
	return "error"
}

// EvalError is a classified evaluation failure. It is stored as data in an
// Error record and never crosses line boundaries, except as the cause of a
// downstream unresolved reference.
type EvalError struct {
	Kind ErrKind
	Msg  string
}

// Errorf creates an EvalError with a formatted message.
func Errorf(kind ErrKind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *EvalError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// IsKind reports whether err is (or wraps) an EvalError of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}

// AsEvalError converts any error into an EvalError, defaulting unclassified
// errors to syntax errors so they remain representable as record data.
func AsEvalError(err error) *EvalError {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee
	}
	return &EvalError{Kind: ErrSyntax, Msg: err.Error()}
}
