package biquad

import (
	"math"
	"math/cmplx"
)

// PoleZeroPair holds the z-plane roots of one section. Missing roots of a
// first-order section are reported as 0.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the roots of z² + A1 z + A2.
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0 z² + B1 z + B2.
func (c Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns poles and zeros together.
func (c Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{Poles: c.Poles(), Zeros: c.Zeros()}
}

// PoleRadius returns the larger pole magnitude of the section.
func (c Coefficients) PoleRadius() float64 {
	p := c.Poles()
	return math.Max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// PoleZeroPairs returns the roots of every section in cascade order.
func (c *Chain) PoleZeroPairs() []PoleZeroPair {
	out := make([]PoleZeroPair, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].PoleZeroPair()
	}

	return out
}

// MaxPoleRadius returns the largest pole magnitude over all sections.
func (c *Chain) MaxPoleRadius() float64 {
	r := 0.0
	for i := range c.sections {
		r = math.Max(r, c.sections[i].PoleRadius())
	}

	return r
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}

		return [2]complex128{complex(-c/b, 0), 0}
	}

	disc := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)

	return [2]complex128{(complex(-b, 0) + disc) / den, (complex(-b, 0) - disc) / den}
}
