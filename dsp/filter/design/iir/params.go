package iir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
)

// Params describes a complete digital filter in Hz.
type Params struct {
	Prototype  Prototype
	Shape      Shape
	SampleRate float64

	// FreqHz is the cutoff for lowpass and highpass, and the center for
	// bandpass and bandstop when no band edges are given.
	FreqHz float64

	// Q sets the bandwidth FreqHz/Q of band shapes.
	Q float64

	// LowHz and HighHz give band edges instead of FreqHz and Q. Setting
	// only one of them is an error.
	LowHz, HighHz float64
}

// Result holds every stage output of Params.Design.
type Result struct {
	// Prototype is the normalized analog lowpass.
	Prototype Design

	// Analog is the prototype after the frequency transform.
	Analog Design

	// Digital is the bilinear-transformed design.
	Digital Design

	Coefficients []biquad.Coefficients
}

func (p Params) usesEdges() bool {
	return p.Shape.IsBand() && p.LowHz > 0 && p.HighHz > 0
}

// Validate reports the first invalid field.
func (p Params) Validate() error {
	if !p.Prototype.Family.Valid() {
		return invalidf("family %v", p.Prototype.Family)
	}

	if !p.Shape.Valid() {
		return invalidf("shape %v", p.Shape)
	}

	if !(p.SampleRate > 0) || math.IsInf(p.SampleRate, 0) {
		return invalidf("sample rate %g Hz", p.SampleRate)
	}

	nyquist := p.SampleRate / 2

	if p.Shape.IsBand() && (p.LowHz > 0) != (p.HighHz > 0) {
		return invalidf("band edges %g..%g Hz: set both or neither", p.LowHz, p.HighHz)
	}

	if p.usesEdges() {
		if !(p.LowHz < p.HighHz && p.HighHz < nyquist) {
			return invalidf("band edges %g..%g Hz at sample rate %g Hz", p.LowHz, p.HighHz, p.SampleRate)
		}

		return nil
	}

	if !(p.FreqHz > 0 && p.FreqHz < nyquist) {
		return invalidf("frequency %g Hz at sample rate %g Hz", p.FreqHz, p.SampleRate)
	}

	if p.Shape.IsBand() && !(p.Q > 0) {
		return invalidf("Q %g", p.Q)
	}

	return nil
}

// Design runs prototype, transform, bilinear and realization. Cutoffs are
// prewarped so they land exactly after discretization. The stability
// check is on unless disabled with WithStabilityCheck(false).
func (p Params) Design(opts ...Option) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	cfg := applyOptions(true, opts)

	proto, err := p.Prototype.Design()
	if err != nil {
		return Result{}, fmt.Errorf("prototype: %w", err)
	}

	analog, err := p.transform(proto)
	if err != nil {
		return Result{}, fmt.Errorf("%v transform: %w", p.Shape, err)
	}

	digital, err := Bilinear(analog, p.SampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("bilinear: %w", err)
	}

	coeffs, err := realize(digital, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("realize: %w", err)
	}

	return Result{
		Prototype:    proto,
		Analog:       analog,
		Digital:      digital,
		Coefficients: coeffs,
	}, nil
}

func (p Params) transform(proto Design) (Design, error) {
	fs := p.SampleRate

	if p.usesEdges() {
		w1 := PrewarpHz(p.LowHz, fs)
		w2 := PrewarpHz(p.HighHz, fs)

		if p.Shape == ShapeBandpass {
			return ToBandpassEdges(proto, w1, w2)
		}

		return ToBandstopEdges(proto, w1, w2)
	}

	w := PrewarpHz(p.FreqHz, fs)

	switch p.Shape {
	case ShapeLowpass:
		return ToLowpass(proto, w)
	case ShapeHighpass:
		return ToHighpass(proto, w)
	case ShapeBandpass:
		return ToBandpass(proto, w, p.Q)
	case ShapeBandstop:
		return ToBandstop(proto, w, p.Q)
	default:
		return Design{}, invalidf("shape %v", p.Shape)
	}
}

// Chain designs the filter and returns a ready-to-run cascade.
func (p Params) Chain(opts ...Option) (*biquad.Chain, error) {
	r, err := p.Design(opts...)
	if err != nil {
		return nil, err
	}

	return biquad.NewChain(r.Coefficients), nil
}
