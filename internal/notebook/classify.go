package notebook

import (
	"regexp"
	"strings"
)

// Class is the evaluation category of a line, decided from its stripped
// text before any reference is resolved.
type Class int

const (
	Numeric Class = iota
	Array
	Equation
	Symbolic
	System
)

// String returns the display name of a class.
func (c Class) String() string {
	switch c {
	case Numeric:
		return "numeric"
	case Array:
		return "array"
	case Equation:
		return "equation"
	case Symbolic:
		return "symbolic"
	case System:
		return "system"
	}
	return "unknown"
}

var (
	directivePattern = regexp.MustCompile(`^\s*(solve|diff|integrate)\s*\(`)
	systemPattern    = regexp.MustCompile(`^\s*[A-Za-z_]\w*\s*(,\s*[A-Za-z_]\w*\s*)+:`)
)

// Classify decides how a line's stripped text will be evaluated. A directive
// keyword wins over an equals sign, so solve(x = 2, x) is symbolic rather
// than an equation; an equals sign wins over brackets. Classification is
// pure and identical for identical text.
func Classify(text string) Class {
	switch {
	case directivePattern.MatchString(text):
		return Symbolic
	case systemPattern.MatchString(text):
		return System
	case strings.ContainsRune(text, '='):
		return Equation
	case strings.ContainsRune(text, '['):
		return Array
	}
	return Numeric
}
