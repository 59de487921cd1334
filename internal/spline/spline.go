// Package spline fits natural cubic splines and evaluates them either as a
// batch projection onto an ascending target axis or as single-point queries.
// Both evaluation paths share one segment formula, so they agree bit for bit
// on the same target.
package spline

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrShortTable indicates a reference table with fewer than two points.
	ErrShortTable = errors.New("spline: reference table needs at least two points")

	// ErrNotIncreasing indicates reference abscissas out of ascending order.
	ErrNotIncreasing = errors.New("spline: reference abscissas must be strictly increasing")

	// ErrLengthMismatch indicates x and y arrays of different lengths.
	ErrLengthMismatch = errors.New("spline: x and y lengths differ")
)

// Spline is a natural cubic spline fitted to a reference table. It borrows
// the caller's x and y arrays read-only and owns only the derived arrays.
type Spline struct {
	x, y []float64
	h    []float64 // interval lengths, len(x)-1
	z    []float64 // second derivatives at the knots, boundary entries zero
}

// Fit builds a natural cubic spline over the table (x, y). x must be
// strictly increasing with at least two points; two points degenerate to a
// straight line.
func Fit(x, y []float64) (*Spline, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w (%d vs %d)", ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return nil, fmt.Errorf("%w (%d)", ErrShortTable, n)
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("%w: x[%d]=%g, x[%d]=%g",
				ErrNotIncreasing, i-1, x[i-1], i, x[i])
		}
	}

	h := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}

	// Natural boundary condition: z[0] and z[n-1] stay zero. The interior
	// second derivatives solve a symmetric tridiagonal system.
	z := make([]float64, n)
	if m := n - 2; m > 0 {
		off := make([]float64, m)
		diag := make([]float64, m)
		rhs := make([]float64, m)
		for i := 0; i < m; i++ {
			off[i] = h[i+1]
			diag[i] = 2 * (h[i] + h[i+1])
			rhs[i] = 6 * ((y[i+2]-y[i+1])/h[i+1] - (y[i+1]-y[i])/h[i])
		}
		solveTridiag(off, diag, rhs, z[1:n-1])
	}

	return &Spline{x: x, y: y, h: h, z: z}, nil
}

// solveTridiag solves a symmetric tridiagonal system by the Thomas
// algorithm, no pivoting. off[i] is both the super-diagonal of row i and the
// sub-diagonal of row i+1; diag and rhs are clobbered, the solution lands in
// out. The natural-spline matrix is diagonally dominant, so elimination
// without pivoting is stable.
func solveTridiag(off, diag, rhs, out []float64) {
	m := len(diag)
	for i := 1; i < m; i++ {
		w := off[i-1] / diag[i-1]
		diag[i] -= w * off[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	out[m-1] = rhs[m-1] / diag[m-1]
	for i := m - 2; i >= 0; i-- {
		out[i] = (rhs[i] - off[i]*out[i+1]) / diag[i]
	}
}

// segment evaluates the cubic piece j at target t. Targets outside the
// reference domain extrapolate with the boundary segment.
func (s *Spline) segment(j int, t float64) float64 {
	h := s.h[j]
	a := (s.z[j+1] - s.z[j]) / (6 * h)
	b := s.z[j] / 2
	c := (s.y[j+1]-s.y[j])/h - h/6*(s.z[j+1]+2*s.z[j])
	dx := t - s.x[j]
	return s.y[j] + dx*(c+dx*(b+dx*a))
}

// locate returns the segment index for target t: the rightmost knot j with
// x[j] <= t, clamped to the valid segment range.
func (s *Spline) locate(t float64) int {
	i := sort.SearchFloat64s(s.x, t)
	j := i
	if i >= len(s.x) || s.x[i] != t {
		j = i - 1
	}
	if j < 0 {
		j = 0
	}
	if last := len(s.x) - 2; j > last {
		j = last
	}
	return j
}

// At evaluates the spline at a single target abscissa.
func (s *Spline) At(t float64) float64 {
	return s.segment(s.locate(t), t)
}

// Project evaluates the spline at every target abscissa. targets must be
// ascending: the bracket scan resumes from the previous segment instead of
// restarting, so a full projection costs O(N+M). Results go into out if
// given (it must have the targets' length), else into a fresh array.
func (s *Spline) Project(targets []float64, out ...[]float64) []float64 {
	var dst []float64
	if len(out) > 0 {
		dst = out[0]
	} else {
		dst = make([]float64, len(targets))
	}

	j := 0
	last := len(s.x) - 2
	for i, t := range targets {
		for j < last && s.x[j+1] <= t {
			j++
		}
		dst[i] = s.segment(j, t)
	}
	return dst
}

// Len returns the number of reference knots.
func (s *Spline) Len() int { return len(s.x) }
