package spline_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/interp"

	"github.com/exosim-labs/transpec/internal/spline"
)

var _ = Describe("Fit", func() {
	It("rejects tables shorter than two points", func() {
		_, err := spline.Fit([]float64{1}, []float64{2})
		Expect(err).To(MatchError(spline.ErrShortTable))
	})

	It("rejects mismatched table lengths", func() {
		_, err := spline.Fit([]float64{1, 2, 3}, []float64{1, 2})
		Expect(err).To(MatchError(spline.ErrLengthMismatch))
	})

	It("rejects non-increasing abscissas", func() {
		_, err := spline.Fit([]float64{1, 2, 2, 3}, []float64{0, 0, 0, 0})
		Expect(err).To(MatchError(spline.ErrNotIncreasing))

		_, err = spline.Fit([]float64{1, 3, 2}, []float64{0, 0, 0})
		Expect(err).To(MatchError(spline.ErrNotIncreasing))
	})

	It("reproduces every knot value", func() {
		x := []float64{0.0, 0.5, 1.3, 2.0, 3.1, 4.0}
		y := []float64{0.1, 0.9, 1.4, 0.2, -0.5, 0.3}
		s, err := spline.Fit(x, y)
		Expect(err).NotTo(HaveOccurred())

		for i := range x {
			Expect(s.At(x[i])).To(BeNumerically("~", y[i], 1e-12), "knot %d", i)
		}
	})
})

var _ = Describe("Evaluation", func() {
	It("is exact for linear data, including extrapolation", func() {
		x := []float64{1.0, 2.0, 3.5, 5.0}
		y := make([]float64, len(x))
		for i, v := range x {
			y[i] = 3*v - 1
		}
		s, err := spline.Fit(x, y)
		Expect(err).NotTo(HaveOccurred())

		for _, t := range []float64{0.2, 1.0, 1.7, 3.0, 4.9, 5.0, 6.4} {
			Expect(s.At(t)).To(BeNumerically("~", 3*t-1, 1e-10), "t=%g", t)
		}
	})

	It("degenerates to a straight line for two knots", func() {
		s, err := spline.Fit([]float64{0, 2}, []float64{1, 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.At(1)).To(BeNumerically("~", 3.0, 1e-12))
		Expect(s.At(-1)).To(BeNumerically("~", -1.0, 1e-12))
	})

	It("agrees with gonum's natural cubic spline between knots", func() {
		x := []float64{0.0, 0.7, 1.1, 2.4, 3.0, 4.2, 5.0}
		y := make([]float64, len(x))
		for i, v := range x {
			y[i] = math.Sin(v) + 0.3*v
		}
		s, err := spline.Fit(x, y)
		Expect(err).NotTo(HaveOccurred())

		var nc interp.NaturalCubic
		Expect(nc.Fit(x, y)).To(Succeed())

		for t := 0.05; t < 5.0; t += 0.173 {
			Expect(s.At(t)).To(BeNumerically("~", nc.Predict(t), 1e-8), "t=%g", t)
		}
	})
})

var _ = Describe("Project", func() {
	var s *spline.Spline

	BeforeEach(func() {
		x := []float64{0.0, 1.0, 2.5, 3.2, 4.8, 6.0}
		y := []float64{2.0, -1.0, 0.5, 3.3, 1.1, 0.0}
		var err error
		s, err = spline.Fit(x, y)
		Expect(err).NotTo(HaveOccurred())
	})

	It("matches single-point queries bit for bit", func() {
		targets := []float64{-0.5, 0.0, 0.4, 1.0, 1.9, 2.5, 3.19, 3.2, 5.5, 6.0, 6.7}
		got := s.Project(targets)
		Expect(got).To(HaveLen(len(targets)))
		for i, t := range targets {
			Expect(got[i]).To(Equal(s.At(t)), "t=%g", t)
		}
	})

	It("writes into a caller-supplied buffer", func() {
		targets := []float64{0.5, 1.5, 2.5}
		buf := make([]float64, len(targets))
		got := s.Project(targets, buf)
		Expect(&got[0]).To(BeIdenticalTo(&buf[0]))
	})

	It("handles targets denser than the knots", func() {
		targets := make([]float64, 601)
		for i := range targets {
			targets[i] = float64(i) * 0.01
		}
		got := s.Project(targets)
		for i, t := range targets {
			Expect(got[i]).To(Equal(s.At(t)), "t=%g", t)
		}
	})
})
