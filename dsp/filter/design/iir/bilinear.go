package iir

import (
	"math"
	"math/cmplx"
)

// Bilinear discretizes an analog design at sampleRate (Hz) with
// s = 2fs·(z-1)/(z+1). Zeros at infinity map to z = -1.
func Bilinear(d Design, sampleRate float64) (Design, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Design{}, invalidf("sample rate %g", sampleRate)
	}

	kappa := complex(2*sampleRate, 0)
	out := Design{Sections: make([]Section, len(d.Sections)), Gain: d.Gain}

	for i, s := range d.Sections {
		p := s.Pole
		dp := (kappa - p) * (kappa - cmplx.Conj(p))
		sec := Section{Pole: (kappa + p) / (kappa - p)}

		if z, ok := s.Zero.Value(); ok {
			sec.Zero = FiniteZero((kappa + z) / (kappa - z))
			out.Gain *= real((kappa - z) * (kappa - cmplx.Conj(z)) / dp)
		} else {
			sec.Zero = FiniteZero(-1)
			out.Gain /= real(dp)
		}

		out.Sections[i] = sec
	}

	return out, nil
}

// Prewarp returns the analog frequency that lands on the digital angular
// frequency omega (rad/s) after Bilinear at sampleRate. omega must lie
// below π·sampleRate.
func Prewarp(omega, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(omega/(2*sampleRate))
}

// PrewarpHz is Prewarp for a frequency in Hz. The result is in rad/s.
func PrewarpHz(freqHz, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(math.Pi*freqHz/sampleRate)
}

// UnwarpHz inverts PrewarpHz: it returns the digital frequency in Hz that
// the analog frequency omega (rad/s) maps to under Bilinear.
func UnwarpHz(omega, sampleRate float64) float64 {
	return sampleRate / math.Pi * math.Atan(omega/(2*sampleRate))
}
