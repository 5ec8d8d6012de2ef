package solve

import (
	"math"
	"math/cmplx"
	"sort"

	"qalctxt.net/qalc/internal/value"
)

// roots returns the complex roots of p in ascending (real, imaginary) order.
// Linear and quadratic cases are closed-form; higher degrees iterate the
// Durand-Kerner method from fixed seeds so repeated runs agree exactly.
func roots(p poly) ([]complex128, error) {
	p = p.trim()
	switch len(p) {
	case 0:
		return nil, value.Errorf(value.ErrNoSolution, "equation holds for every value")
	case 1:
		return nil, value.Errorf(value.ErrNoSolution, "equation has no solution")
	}

	var rs []complex128
	switch len(p) {
	case 2:
		rs = []complex128{-p[0] / p[1]}
	case 3:
		a, b, c := p[2], p[1], p[0]
		d := cmplx.Sqrt(b*b - 4*a*c)
		rs = []complex128{(-b - d) / (2 * a), (-b + d) / (2 * a)}
	default:
		rs = durandKerner(p)
	}

	for i, r := range rs {
		rs[i] = snap(r)
	}
	sort.Slice(rs, func(i, j int) bool {
		if real(rs[i]) != real(rs[j]) {
			return real(rs[i]) < real(rs[j])
		}
		return imag(rs[i]) < imag(rs[j])
	})
	return rs, nil
}

func durandKerner(p poly) []complex128 {
	n := len(p) - 1
	monic := p.scale(1 / p[n])

	rs := make([]complex128, n)
	seed := complex(0.4, 0.9)
	cur := seed
	for i := range rs {
		rs[i] = cur
		cur *= seed
	}

	for iter := 0; iter < 500; iter++ {
		var worst float64
		for i := range rs {
			den := complex(1, 0)
			for j := range rs {
				if j != i {
					den *= rs[i] - rs[j]
				}
			}
			d := monic.at(rs[i]) / den
			rs[i] -= d
			if a := cmplx.Abs(d); a > worst {
				worst = a
			}
		}
		if worst < 1e-13 {
			break
		}
	}
	return rs
}

// snap collapses floating-point residue: components within 1e-9 of an
// integer become that integer, and a vanishing imaginary part drops.
func snap(z complex128) complex128 {
	re, im := real(z), imag(z)
	if r := math.Round(re); math.Abs(re-r) < 1e-9*math.Max(1, math.Abs(re)) {
		re = r
	}
	if r := math.Round(im); math.Abs(im-r) < 1e-9*math.Max(1, math.Abs(im)) {
		im = r
	}
	if math.Abs(im) < 1e-9*math.Max(1, math.Abs(re)) {
		im = 0
	}
	return complex(re, im)
}
