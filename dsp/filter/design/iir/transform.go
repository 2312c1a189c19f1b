package iir

import (
	"math"
	"math/cmplx"
)

// ToLowpass scales a normalized prototype to cutoff omega (rad/s).
func ToLowpass(d Design, omega float64) (Design, error) {
	if !(omega > 0) {
		return Design{}, invalidf("lowpass cutoff %g rad/s", omega)
	}

	out := Design{Sections: make([]Section, len(d.Sections)), Gain: d.Gain}
	w := complex(omega, 0)

	for i, s := range d.Sections {
		sec := Section{Pole: s.Pole * w}
		if z, ok := s.Zero.Value(); ok {
			sec.Zero = FiniteZero(z * w)
		} else {
			out.Gain *= omega * omega
		}

		out.Sections[i] = sec
	}

	return out, nil
}

// ToHighpass maps a normalized prototype to a highpass at omega (rad/s)
// through s -> omega/s. Zeros at infinity become zeros at DC.
func ToHighpass(d Design, omega float64) (Design, error) {
	if !(omega > 0) {
		return Design{}, invalidf("highpass cutoff %g rad/s", omega)
	}

	out := Design{Sections: make([]Section, len(d.Sections)), Gain: d.Gain}
	for i, s := range d.Sections {
		out.Sections[i], out.Gain = highpassSection(s, omega, out.Gain)
	}

	return out, nil
}

func highpassSection(s Section, omega, gain float64) (Section, float64) {
	w := complex(omega, 0)
	sec := Section{Pole: w / s.Pole, Zero: FiniteZero(0)}
	gain /= absSq(s.Pole)

	if z, ok := s.Zero.Value(); ok {
		sec.Zero = FiniteZero(w / z)
		gain *= absSq(z)
	}

	return sec, gain
}

// ToBandpass maps a normalized prototype to a bandpass centered at omega0
// (rad/s) with quality factor q. The result has twice as many sections:
// section i of d becomes sections i and i+n.
func ToBandpass(d Design, omega0, q float64) (Design, error) {
	if !(omega0 > 0 && q > 0) {
		return Design{}, invalidf("bandpass center %g rad/s, Q %g", omega0, q)
	}

	return bandTransform(d, omega0/q, omega0*omega0, false), nil
}

// ToBandpassEdges is ToBandpass with the band given by its edges
// 0 < omega1 < omega2 (rad/s).
func ToBandpassEdges(d Design, omega1, omega2 float64) (Design, error) {
	if !(omega1 > 0 && omega2 > omega1) {
		return Design{}, invalidf("bandpass edges %g..%g rad/s", omega1, omega2)
	}

	return bandTransform(d, omega2-omega1, omega1*omega2, false), nil
}

// ToBandstop maps a normalized prototype to a bandstop centered at omega0
// (rad/s) with quality factor q. Section layout matches ToBandpass.
func ToBandstop(d Design, omega0, q float64) (Design, error) {
	if !(omega0 > 0 && q > 0) {
		return Design{}, invalidf("bandstop center %g rad/s, Q %g", omega0, q)
	}

	return bandTransform(d, omega0/q, omega0*omega0, true), nil
}

// ToBandstopEdges is ToBandstop with the stopband given by its edges
// 0 < omega1 < omega2 (rad/s).
func ToBandstopEdges(d Design, omega1, omega2 float64) (Design, error) {
	if !(omega1 > 0 && omega2 > omega1) {
		return Design{}, invalidf("bandstop edges %g..%g rad/s", omega1, omega2)
	}

	return bandTransform(d, omega2-omega1, omega1*omega2, true), nil
}

// bandTransform rescales each root to bw (reciprocally for bandstop) and
// splits it into the two roots of s² - S·s + w0sq.
func bandTransform(d Design, bw, w0sq float64, stop bool) Design {
	n := len(d.Sections)
	out := Design{Sections: make([]Section, 2*n), Gain: d.Gain}

	for i, s := range d.Sections {
		var scaled Section
		if stop {
			scaled, out.Gain = highpassSection(s, bw, out.Gain)
		} else {
			scaled.Pole = s.Pole * complex(bw, 0)
			if z, ok := s.Zero.Value(); ok {
				scaled.Zero = FiniteZero(z * complex(bw, 0))
			} else {
				out.Gain *= bw * bw
			}
		}

		up, down := bandSplit(scaled.Pole, w0sq)
		out.Sections[i].Pole = up
		out.Sections[i+n].Pole = down

		if z, ok := scaled.Zero.Value(); ok {
			zu, zd := bandSplit(z, w0sq)
			out.Sections[i].Zero = FiniteZero(zu)
			out.Sections[i+n].Zero = FiniteZero(zd)
		} else {
			// s² / (s² - S·s + w0sq)²: one double zero at DC, one pair at
			// infinity.
			out.Sections[i].Zero = FiniteZero(0)
		}
	}

	return out
}

// bandSplit returns the roots (s ± sqrt(s² - 4·w0sq)) / 2 on the principal
// branch.
func bandSplit(s complex128, w0sq float64) (complex128, complex128) {
	disc := cmplx.Sqrt(s*s - complex(4*w0sq, 0))
	return (s + disc) / 2, (s - disc) / 2
}

// BandEdges returns the analog band edges around omega0 for quality factor
// q, i.e. the geometric-symmetric pair with omega2-omega1 = omega0/q.
func BandEdges(omega0, q float64) (float64, float64) {
	bw := omega0 / q
	half := bw / 2
	lo := math.Sqrt(half*half+omega0*omega0) - half

	return lo, lo + bw
}
