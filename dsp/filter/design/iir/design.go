package iir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var (
	// ErrInvalidParams reports a precondition violation: a non-positive
	// section count, ripple, attenuation, frequency or sample rate.
	ErrInvalidParams = errors.New("iir: invalid parameters")

	// ErrUnresolvedZero is returned by Realize when a section still carries
	// a zero at infinity, i.e. the design was never discretized.
	ErrUnresolvedZero = errors.New("iir: zero at infinity in digital design")

	// ErrUnstable reports a digital pole on or outside the unit circle.
	ErrUnstable = errors.New("iir: unstable pole")
)

// Zero is an optional complex zero. The zero value lies at infinity.
type Zero struct {
	value  complex128
	finite bool
}

// FiniteZero returns a zero located at z.
func FiniteZero(z complex128) Zero {
	return Zero{value: z, finite: true}
}

// AtInfinity returns a zero at infinity.
func AtInfinity() Zero { return Zero{} }

// IsFinite reports whether the zero has a finite location.
func (z Zero) IsFinite() bool { return z.finite }

// Value returns the zero location and whether it is finite.
func (z Zero) Value() (complex128, bool) { return z.value, z.finite }

func (z Zero) String() string {
	if !z.finite {
		return "inf"
	}

	return fmt.Sprint(z.value)
}

// Section holds one conjugate pole pair and its matching zero pair.
// Only one member of each pair is stored.
type Section struct {
	Pole complex128
	Zero Zero
}

// Design is a zero-pole-gain filter description: an ordered list of
// sections and the overall gain. Sections carry no gain of their own.
type Design struct {
	Sections []Section
	Gain     float64
}

// NumSections returns the number of sections.
func (d Design) NumSections() int { return len(d.Sections) }

// Order returns the filter order, two per section.
func (d Design) Order() int { return 2 * len(d.Sections) }

// Clone returns a deep copy of d.
func (d Design) Clone() Design {
	out := Design{Gain: d.Gain}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		copy(out.Sections, d.Sections)
	}

	return out
}

// MaxPoleRadius returns the largest pole magnitude. For a digital design
// the filter is stable when the result is below 1.
func (d Design) MaxPoleRadius() float64 {
	r := 0.0
	for _, s := range d.Sections {
		r = math.Max(r, cmplx.Abs(s.Pole))
	}

	return r
}

// AnalogResponse evaluates H(s) at s = jω for an analog design.
func (d Design) AnalogResponse(omega float64) complex128 {
	s := complex(0, omega)
	h := complex(d.Gain, 0)

	for _, sec := range d.Sections {
		p := sec.Pole
		h /= (s - p) * (s - cmplx.Conj(p))

		if z, ok := sec.Zero.Value(); ok {
			h *= (s - z) * (s - cmplx.Conj(z))
		}
	}

	return h
}

// DigitalResponse evaluates H(z) at z = e^(jw) for a digital design, with
// w in radians per sample. Zeros at infinity contribute a factor of 1.
func (d Design) DigitalResponse(w float64) complex128 {
	zinv := cmplx.Exp(complex(0, -w))
	h := complex(d.Gain, 0)

	for _, sec := range d.Sections {
		p := sec.Pole
		h /= (1 - p*zinv) * (1 - cmplx.Conj(p)*zinv)

		if z, ok := sec.Zero.Value(); ok {
			h *= (1 - z*zinv) * (1 - cmplx.Conj(z)*zinv)
		}
	}

	return h
}

// CheckStability returns an error wrapping ErrUnstable for the first
// section whose digital pole has magnitude 1 or more.
func CheckStability(d Design) error {
	for i, s := range d.Sections {
		if r := cmplx.Abs(s.Pole); !(r < 1) {
			return fmt.Errorf("section %d: |pole| = %g: %w", i, r, ErrUnstable)
		}
	}

	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidParams)
}

func absSq(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
