// Package simpson integrates sampled functions over an irregular axis with
// the composite Simpson rule. The per-pair interval statistics are
// precomputed once per axis, so many integrands (one per wavelength, say)
// reuse the same [Rule].
//
// An even sample count leaves an interval that Simpson pairing cannot
// absorb; the rule skips the first interval and covers it with a
// trapezoid correction instead.
package simpson

// Intervals returns the consecutive differences of the sample axis x,
// the spacing array a [Rule] is built from.
func Intervals(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	h := make([]float64, len(x)-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}
	return h
}

// Rule carries the precomputed pair statistics for one spacing array.
type Rule struct {
	h       []float64
	hsum    []float64 // h[j] + h[j+1] per Simpson pair
	hratio  []float64 // h[j+1] / h[j]
	hfactor []float64 // hsum^2 / (h[j]*h[j+1])
}

// NewRule precomputes the Simpson pair statistics for the spacing array h.
// With an even sample count the first interval is excluded from pairing,
// so there are exactly (samples-1)/2 pairs either way.
func NewRule(h []float64) *Rule {
	n := len(h) + 1
	e := 0
	if n%2 == 0 {
		e = 1
	}
	pairs := (n - 1) / 2

	r := &Rule{
		h:       h,
		hsum:    make([]float64, pairs),
		hratio:  make([]float64, pairs),
		hfactor: make([]float64, pairs),
	}
	for i := 0; i < pairs; i++ {
		j := 2*i + e
		sum := h[j] + h[j+1]
		r.hsum[i] = sum
		r.hratio[i] = h[j+1] / h[j]
		r.hfactor[i] = sum * sum / (h[j] * h[j+1])
	}
	return r
}

// Len returns the sample count the rule integrates over.
func (r *Rule) Len() int { return len(r.h) + 1 }

// Integrate computes the integral of the sampled integrand y over the
// rule's axis. One sample integrates to zero and two samples reduce to a
// plain trapezoid. y must have exactly [Rule.Len] samples.
func (r *Rule) Integrate(y []float64) float64 {
	if len(y) != r.Len() {
		panic("simpson: integrand length does not match rule")
	}
	n := len(y)
	if n < 2 {
		return 0
	}
	if n == 2 {
		return r.h[0] * (y[0] + y[1]) / 2
	}

	e := 0
	if n%2 == 0 {
		e = 1
	}
	res := 0.0
	for i := range r.hsum {
		j := 2*i + e
		res += (y[j]*(2-r.hratio[i]) +
			y[j+1]*r.hfactor[i] +
			y[j+2]*(2-1/r.hratio[i])) * r.hsum[i]
	}
	integ := res / 6

	if e == 1 {
		integ += r.h[0] * (y[0] + y[1]) / 2
	}
	return integ
}
