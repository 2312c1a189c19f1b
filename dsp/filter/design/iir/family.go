package iir

import (
	"fmt"
	"strings"
)

// Family identifies an analog prototype family.
type Family int

const (
	// FamilyButterworth is maximally flat with no ripple.
	FamilyButterworth Family = iota

	// FamilyChebyshev1 has equiripple passband and monotonic stopband.
	FamilyChebyshev1

	// FamilyChebyshev2 (inverse Chebyshev) has flat passband and
	// equiripple stopband.
	FamilyChebyshev2

	// FamilyElliptic (Cauer) has ripple in both bands and the steepest
	// transition for a given order.
	FamilyElliptic

	familyCount
)

var familyNames = [familyCount]string{"butterworth", "chebyshev1", "chebyshev2", "elliptic"}

func (f Family) String() string {
	if f >= 0 && f < familyCount {
		return familyNames[f]
	}

	return fmt.Sprintf("Family(%d)", int(f))
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool { return f >= 0 && f < familyCount }

// ParseFamily accepts the String form and a few common aliases.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butterworth", "butter", "bw":
		return FamilyButterworth, nil
	case "chebyshev1", "cheby1", "cheb1", "chebyshev":
		return FamilyChebyshev1, nil
	case "chebyshev2", "cheby2", "cheb2", "inverse-chebyshev":
		return FamilyChebyshev2, nil
	case "elliptic", "ellip", "cauer":
		return FamilyElliptic, nil
	default:
		return 0, fmt.Errorf("unknown family %q: %w", s, ErrInvalidParams)
	}
}

// Shape is the response shape after frequency transformation.
type Shape int

const (
	ShapeLowpass Shape = iota
	ShapeHighpass
	ShapeBandpass
	ShapeBandstop

	shapeCount
)

var shapeNames = [shapeCount]string{"lowpass", "highpass", "bandpass", "bandstop"}

func (s Shape) String() string {
	if s >= 0 && s < shapeCount {
		return shapeNames[s]
	}

	return fmt.Sprintf("Shape(%d)", int(s))
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool { return s >= 0 && s < shapeCount }

// IsBand reports whether the shape doubles the section count.
func (s Shape) IsBand() bool { return s == ShapeBandpass || s == ShapeBandstop }

// ParseShape accepts the String form and the short forms lp, hp, bp, bs.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "lp":
		return ShapeLowpass, nil
	case "highpass", "hp":
		return ShapeHighpass, nil
	case "bandpass", "bp":
		return ShapeBandpass, nil
	case "bandstop", "bs", "notch":
		return ShapeBandstop, nil
	default:
		return 0, fmt.Errorf("unknown shape %q: %w", s, ErrInvalidParams)
	}
}
