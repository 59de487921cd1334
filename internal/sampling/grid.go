package sampling

import "fmt"

// okFinalExcess lets the last bin survive floating-point rounding when the
// range is an exact multiple of the spacing.
const okFinalExcess = 1e-8

// Grid is a sampled one-dimensional axis. Values is owned by the Grid and
// never aliased; Spacing 0 marks an axis copied verbatim from an explicit
// array, in which case Oversample is 0 as well.
type Grid struct {
	Initial    float64
	Final      float64
	Factor     float64
	Spacing    float64
	Oversample int
	Values     []float64
}

// Spec is a transient hint or reference record consumed by the constructors.
// Zero (or non-positive, for boundaries and Factor) fields are unset; a
// reference may carry an explicit Values array instead of a spacing.
type Spec struct {
	Initial    float64
	Final      float64
	Factor     float64
	Spacing    float64
	Oversample int
	Values     []float64
}

// Flags reports non-fatal conditions met while constructing a Grid.
type Flags uint

const (
	// FlagInitialFromRef marks an initial boundary adopted from the reference.
	FlagInitialFromRef Flags = 1 << iota
	// FlagFinalFromRef marks a final boundary adopted from the reference.
	FlagFinalFromRef
	// FlagCopiedValues marks a grid copied verbatim from a reference array.
	FlagCopiedValues
	// FlagOversampleIgnored marks a reference oversample dropped on a copied array.
	FlagOversampleIgnored
	// FlagShortFinal marks generated values that stop short of the final boundary.
	FlagShortFinal
)

// New builds a Grid preferring hint values over the reference. Boundary and
// factor hints count as set only when positive; a spacing hint counts as set
// when nonzero, so descending grids are requested with a negative spacing.
// When neither spec carries a spacing the reference's explicit array is
// copied verbatim and no points are generated.
func New(hint, ref Spec) (*Grid, Flags, error) {
	g := &Grid{}
	var flags Flags

	if hint.Factor > 0 {
		g.Factor = hint.Factor
	} else {
		g.Factor = ref.Factor
	}

	if hint.Initial > 0 {
		g.Initial = hint.Initial
	} else {
		g.Initial = ref.Initial
		if g.Initial > 0 {
			flags |= FlagInitialFromRef
		}
	}

	if hint.Final > 0 {
		g.Final = hint.Final
	} else {
		g.Final = ref.Final
		if g.Final > 0 {
			flags |= FlagFinalFromRef
		}
	}

	switch {
	case hint.Spacing != 0:
		g.Spacing = hint.Spacing
	case ref.Spacing != 0:
		g.Spacing = ref.Spacing
	default:
		if len(ref.Values) == 0 {
			return nil, flags, fmt.Errorf("%w (spacing %g, %d values)",
				ErrUnderspecified, ref.Spacing, len(ref.Values))
		}
		g.Values = append([]float64(nil), ref.Values...)
		flags |= FlagCopiedValues
		if ref.Oversample != 0 {
			flags |= FlagOversampleIgnored
		}
		return g, flags, nil
	}

	if (g.Final <= g.Initial && g.Spacing > 0) || (g.Final >= g.Initial && g.Spacing < 0) {
		return nil, flags, fmt.Errorf("%w: initial %g, final %g, spacing %g",
			ErrInvalidRange, g.Initial, g.Final, g.Spacing)
	}

	switch {
	case hint.Oversample > 0:
		g.Oversample = hint.Oversample
	case ref.Oversample > 0:
		g.Oversample = ref.Oversample
	default:
		return nil, flags, fmt.Errorf("%w (hint %d, reference %d)",
			ErrInvalidOversample, hint.Oversample, ref.Oversample)
	}

	g.generate()
	if g.Initial != 0 && g.Truncated() {
		flags |= FlagShortFinal
	}
	return g, flags, nil
}

// NewFromReference builds a Grid strictly from the reference spec, with no
// hint fallback: boundaries and factor are taken verbatim, spacing and
// oversample must be usable on their own.
func NewFromReference(ref Spec) (*Grid, error) {
	g := &Grid{
		Initial: ref.Initial,
		Final:   ref.Final,
		Factor:  ref.Factor,
	}
	if g.Final < g.Initial {
		return nil, fmt.Errorf("%w: final %g below initial %g",
			ErrInvalidRange, g.Final, g.Initial)
	}
	if ref.Spacing == 0 {
		return nil, ErrInvalidSpacing
	}
	g.Spacing = ref.Spacing
	if ref.Oversample <= 0 {
		return nil, fmt.Errorf("%w (reference %d)", ErrInvalidOversample, ref.Oversample)
	}
	g.Oversample = ref.Oversample
	g.generate()
	return g, nil
}

// generate fills Values as the arithmetic progression Initial + k*osd with
// osd = Spacing/Oversample. The nominal point count truncates
// ((1+excess)*Final - Initial)/Spacing + 1, where the excess keeps an exact
// multiple of the spacing from losing its last point.
func (g *Grid) generate() {
	excess := okFinalExcess
	if g.Spacing < 0 {
		excess = -excess
	}
	n := int(((1+excess)*g.Final-g.Initial)/g.Spacing + 1)
	if n < 0 {
		n = -n
	}
	count := (n-1)*g.Oversample + 1
	osd := g.Spacing / float64(g.Oversample)

	g.Values = make([]float64, count)
	for k := range g.Values {
		g.Values[k] = g.Initial + float64(k)*osd
	}
}

// Len returns the number of sampled points.
func (g *Grid) Len() int { return len(g.Values) }

// Truncated reports whether a spacing-generated grid stops short of its
// final boundary, an expected consequence of step-based generation when the
// range is not a multiple of the spacing.
func (g *Grid) Truncated() bool {
	n := len(g.Values)
	return g.Spacing != 0 && n > 0 && g.Values[n-1] != g.Final
}

// Divisors returns the exact positive divisors of k in ascending order.
// The wavenumber builder records them for downstream resampling.
func Divisors(k int) []int {
	if k <= 0 {
		return nil
	}
	var divs []int
	for i := 1; i <= k; i++ {
		if k%i == 0 {
			divs = append(divs, i)
		}
	}
	return divs
}
