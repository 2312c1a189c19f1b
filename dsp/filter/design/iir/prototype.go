package iir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-iir/dsp/core"
	"github.com/cwbudde/algo-iir/internal/ellipticmath"
)

// Prototype selects a normalized analog lowpass prototype.
type Prototype struct {
	Family Family

	// NumFilter is the number of conjugate pole pairs; the order is
	// 2*NumFilter.
	NumFilter int

	// PassbandRippleDB is the Chebyshev-I and elliptic passband ripple.
	PassbandRippleDB float64

	// StopbandDB is the Chebyshev-II and elliptic stopband attenuation,
	// a positive number.
	StopbandDB float64

	// EvenOrderModify applies the even-order pole correction to
	// Chebyshev-I and Chebyshev-II designs.
	EvenOrderModify bool
}

// Design builds the prototype.
func (p Prototype) Design() (Design, error) {
	switch p.Family {
	case FamilyButterworth:
		return Butterworth(p.NumFilter)
	case FamilyChebyshev1:
		return Chebyshev1(p.NumFilter, p.PassbandRippleDB, p.EvenOrderModify)
	case FamilyChebyshev2:
		return Chebyshev2(p.NumFilter, p.StopbandDB, p.EvenOrderModify)
	case FamilyElliptic:
		return Elliptic(p.NumFilter, p.PassbandRippleDB, p.StopbandDB)
	default:
		return Design{}, invalidf("family %v", p.Family)
	}
}

// chebyshevAngle returns φ_k = (2k-1)π/(2N) for k = 1..numFilter.
func chebyshevAngle(k, order int) float64 {
	return float64(2*k-1) * math.Pi / float64(2*order)
}

// evenModifyC is cos²(π(N-1)/(2N)), the squared position of the Chebyshev
// node nearest the origin.
func evenModifyC(order int) float64 {
	c := math.Cos(math.Pi * float64(order-1) / float64(2*order))
	return c * c
}

// evenModifyRoot maps a root through sqrt((r²+c)/(1-c)) and keeps the left
// half-plane branch.
func evenModifyRoot(r complex128, c float64) complex128 {
	m := cmplx.Sqrt((r*r + complex(c, 0)) / complex(1-c, 0))
	if real(m) > 0 {
		m = -m
	}

	return m
}

// rippleEpsilon converts a ripple or attenuation in dB to ε = sqrt(10^(dB/10)-1).
func rippleEpsilon(db float64) float64 {
	return math.Sqrt(core.DBPowerToLinear(db) - 1)
}

func checkNumFilter(numFilter int) error {
	if numFilter < 1 {
		return invalidf("numFilter %d", numFilter)
	}

	return nil
}

// Butterworth returns the maximally flat prototype with poles on the unit
// circle and unit gain.
func Butterworth(numFilter int) (Design, error) {
	return butterworthScaled(numFilter, 1)
}

// ButterworthAtten returns a Butterworth prototype whose magnitude at
// 1 rad/s is -attenDB instead of -3.01 dB.
func ButterworthAtten(numFilter int, attenDB float64) (Design, error) {
	if !(attenDB > 0) {
		return Design{}, invalidf("attenuation %g dB", attenDB)
	}

	eps := rippleEpsilon(attenDB)

	return butterworthScaled(numFilter, eps*eps)
}

// ButterworthAttenGain is ButterworthAtten with the magnitude at 1 rad/s
// given as a linear amplitude in (0, 1).
func ButterworthAttenGain(numFilter int, gain float64) (Design, error) {
	if !(gain > 0 && gain < 1) {
		return Design{}, invalidf("gain %g", gain)
	}

	return butterworthScaled(numFilter, (1-gain*gain)/(gain*gain))
}

func butterworthScaled(numFilter int, epsSq float64) (Design, error) {
	if err := checkNumFilter(numFilter); err != nil {
		return Design{}, err
	}

	order := 2 * numFilter
	g := math.Pow(epsSq, -1/float64(2*order))

	d := Design{Sections: make([]Section, numFilter), Gain: 1}
	for k := 1; k <= numFilter; k++ {
		phi := chebyshevAngle(k, order)
		p := complex(-g*math.Sin(phi), g*math.Cos(phi))
		d.Sections[k-1] = Section{Pole: p}
		d.Gain *= absSq(p)
	}

	return d, nil
}

// Chebyshev1 returns the type-I Chebyshev prototype with rippleDB of
// passband ripple. Unmodified designs peak at 0 dB with DC at -rippleDB;
// evenModify moves the lowest node to DC so the response starts at 0 dB.
func Chebyshev1(numFilter int, rippleDB float64, evenModify bool) (Design, error) {
	if err := checkNumFilter(numFilter); err != nil {
		return Design{}, err
	}

	if !(rippleDB > 0) {
		return Design{}, invalidf("ripple %g dB", rippleDB)
	}

	order := 2 * numFilter
	eps := rippleEpsilon(rippleDB)
	a := math.Asinh(1/eps) / float64(order)
	sh, ch := math.Sinh(a), math.Cosh(a)
	c := evenModifyC(order)

	d := Design{Sections: make([]Section, numFilter), Gain: 1}
	for k := 1; k <= numFilter; k++ {
		phi := chebyshevAngle(k, order)
		p := complex(-math.Sin(phi)*sh, math.Cos(phi)*ch)

		if evenModify {
			p = evenModifyRoot(p, c)
		}

		d.Sections[k-1] = Section{Pole: p}
		d.Gain *= absSq(p)
	}

	if !evenModify {
		d.Gain /= math.Sqrt(1 + eps*eps)
	}

	return d, nil
}

// Chebyshev2 returns the inverse Chebyshev prototype with attenDB of
// stopband attenuation (positive). The passband is flat with 0 dB at DC,
// unmodified designs cross -3.01 dB at 1 rad/s, and the equiripple stopband
// begins at cosh(acosh(δ)/N) rad/s. With evenModify the zero closest to the
// origin moves to infinity.
func Chebyshev2(numFilter int, attenDB float64, evenModify bool) (Design, error) {
	if err := checkNumFilter(numFilter); err != nil {
		return Design{}, err
	}

	if !(attenDB > 0) {
		return Design{}, invalidf("stopband attenuation %g dB", attenDB)
	}

	order := 2 * numFilter
	delta := rippleEpsilon(attenDB)
	a := math.Asinh(delta) / float64(order)
	sh, ch := math.Sinh(a), math.Cosh(a)
	scale := 1 / math.Cosh(math.Acosh(delta)/float64(order))
	c := evenModifyC(order)

	d := Design{Sections: make([]Section, numFilter), Gain: 1}
	for k := 1; k <= numFilter; k++ {
		phi := chebyshevAngle(k, order)
		r := complex(-math.Sin(phi)*sh, math.Cos(phi)*ch)
		x := math.Cos(phi)

		zero := true
		if evenModify {
			r = evenModifyRoot(r, c)
			if k == numFilter {
				zero = false
			} else {
				x = math.Sqrt(math.Max(0, (x*x-c)/(1-c)))
			}
		}

		sec := Section{Pole: 1 / (r * complex(scale, 0))}
		d.Gain *= absSq(sec.Pole)

		if zero {
			z := 1 / complex(0, x*scale)
			sec.Zero = FiniteZero(z)
			d.Gain /= absSq(z)
		}

		d.Sections[k-1] = sec
	}

	return d, nil
}

// Elliptic returns the Cauer prototype with rippleDB of passband ripple and
// attenDB of stopband attenuation. The passband edge is 1 rad/s and the
// stopband begins at 1/k, k being the selectivity modulus.
func Elliptic(numFilter int, rippleDB, attenDB float64) (Design, error) {
	if err := checkNumFilter(numFilter); err != nil {
		return Design{}, err
	}

	if !(rippleDB > 0) {
		return Design{}, invalidf("ripple %g dB", rippleDB)
	}

	if !(attenDB > rippleDB) {
		return Design{}, invalidf("stopband attenuation %g dB must exceed ripple %g dB", attenDB, rippleDB)
	}

	order := 2 * numFilter
	epsP := rippleEpsilon(rippleDB)
	epsS := rippleEpsilon(attenDB)
	k1 := epsP / epsS

	k := ellipticmath.DegreeModulus(numFilter, k1)
	if !(k > 0 && k < 1) {
		return Design{}, invalidf("selectivity modulus %g out of range", k)
	}

	lk := ellipticmath.NewLanden(k)
	lk1 := ellipticmath.NewLanden(k1)

	v0 := -1i * lk1.ArcSN(complex(0, 1/epsP)) / complex(float64(order), 0)

	d := Design{Sections: make([]Section, numFilter), Gain: 1}
	for i := 1; i <= numFilter; i++ {
		u := float64(2*i-1) / float64(order)
		z := 1i / complex(k*lk.CDReal(u), 0)
		p := 1i * lk.CD(complex(u, 0)-1i*v0)

		d.Sections[i-1] = Section{Pole: p, Zero: FiniteZero(z)}
		d.Gain *= absSq(p) / absSq(z)
	}

	d.Gain /= math.Sqrt(1 + epsP*epsP)

	return d, nil
}

// SelectivityModulus returns the elliptic selectivity modulus k for the
// given design parameters. The prototype stopband edge is 1/k rad/s.
func SelectivityModulus(numFilter int, rippleDB, attenDB float64) (float64, error) {
	if err := checkNumFilter(numFilter); err != nil {
		return 0, err
	}

	if !(rippleDB > 0 && attenDB > rippleDB) {
		return 0, invalidf("ripple %g dB, attenuation %g dB", rippleDB, attenDB)
	}

	return ellipticmath.DegreeModulus(numFilter, rippleEpsilon(rippleDB)/rippleEpsilon(attenDB)), nil
}
