package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-iir/dsp/core"
)

// Response evaluates H(e^jw) at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zinv := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	num := complex(c.B0, 0) + zinv*(complex(c.B1, 0)+zinv*complex(c.B2, 0))
	den := 1 + zinv*(complex(c.A1, 0)+zinv*complex(c.A2, 0))

	return num / den
}

// MagnitudeSquared returns |H|² at freqHz without complex arithmetic.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	cw, c2w := math.Cos(w), math.Cos(2*w)

	// |b0 + b1 z^-1 + b2 z^-2|² on the unit circle.
	num := c.B0*c.B0 + c.B1*c.B1 + c.B2*c.B2 + 2*(c.B0*c.B1+c.B1*c.B2)*cw + 2*c.B0*c.B2*c2w
	den := 1 + c.A1*c.A1 + c.A2*c.A2 + 2*(c.A1+c.A1*c.A2)*cw + 2*c.A2*c2w

	return num / den
}

// MagnitudeDB returns the magnitude in dB.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearPowerToDB(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase in radians, in [-π, π].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// Response evaluates the cascade including the input gain.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascade magnitude in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns the first n samples of the section's impulse
// response. The running state is left untouched.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	probe := Section{Coefficients: s.Coefficients}
	out := make([]float64, n)
	out[0] = 1
	probe.ProcessBlock(out)

	return out
}

// ImpulseResponse returns the first n samples of the cascade impulse
// response. The running state is left untouched.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	probe := NewChain(c.Coefficients(), WithGain(c.gain))
	out := make([]float64, n)
	out[0] = 1
	probe.ProcessBlock(out)

	return out
}
