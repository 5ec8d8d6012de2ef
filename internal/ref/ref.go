// Package ref resolves @N and @N.M line references against prior results.
package ref

import (
	"regexp"
	"strconv"
	"strings"

	"qalctxt.net/qalc/internal/value"
)

// MaxPasses bounds the substitution loop. A single pass resolves every
// well-formed reference; the bound defends against malformed text that
// keeps producing reference tokens.
const MaxPasses = 8

// pattern is the reference token grammar: @ then digits, optionally
// followed by . and digits.
var pattern = regexp.MustCompile(`@(\d+)(?:\.(\d+))?`)

// Lookup is the restricted view of the result store a resolution reads.
type Lookup interface {
	// Value returns the formatted value of one solution of a line's record.
	// solution < 0 requests a bare lookup.
	Value(line, solution int) (string, error)
}

// Ref is one parsed reference token.
type Ref struct {
	Line     int
	Solution int // -1 when no index was written
}

// Refs extracts all reference tokens from text in order of appearance.
func Refs(text string) []Ref {
	var out []Ref
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		r := Ref{Solution: -1}
		r.Line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			r.Solution, _ = strconv.Atoi(m[2])
		}
		out = append(out, r)
	}
	return out
}

// Resolve substitutes every reference token in the stripped text of the
// given line with the referenced result, wrapped in parentheses to preserve
// operator precedence across the substitution boundary. Only results of
// lines before the referencing line are visible: forward and self
// references fail, so evaluation order alone rules out dependency cycles.
// Resolution is idempotent on reference-free text.
func Resolve(text string, line int, results Lookup) (string, error) {
	for pass := 0; pass < MaxPasses; pass++ {
		matches := pattern.FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			return text, nil
		}

		var sb strings.Builder
		last := 0
		for _, m := range matches {
			target, _ := strconv.Atoi(text[m[2]:m[3]])
			solution := -1
			if m[4] >= 0 {
				solution, _ = strconv.Atoi(text[m[4]:m[5]])
			}

			if target == line {
				return "", value.Errorf(value.ErrUnresolvedReference, "line %d references itself", line)
			}
			if target > line {
				return "", value.Errorf(value.ErrUnresolvedReference, "forward reference to line %d", target)
			}
			formatted, err := results.Value(target, solution)
			if err != nil {
				return "", err
			}

			sb.WriteString(text[last:m[0]])
			sb.WriteString("(")
			sb.WriteString(formatted)
			sb.WriteString(")")
			last = m[1]
		}
		sb.WriteString(text[last:])
		text = sb.String()
	}
	return "", value.Errorf(value.ErrResolutionOverflow, "references still unresolved after %d passes", MaxPasses)
}
