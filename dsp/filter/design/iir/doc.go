// Package iir designs digital IIR filters from classical analog prototypes.
//
// A design runs through four stages, each a pure function returning a new
// [Design]:
//
//  1. A normalized analog lowpass prototype with cutoff 1 rad/s
//     ([Butterworth], [Chebyshev1], [Chebyshev2], [Elliptic]).
//  2. A frequency transform to the target shape ([ToLowpass], [ToHighpass],
//     [ToBandpass], [ToBandstop] and the band-edge variants).
//  3. The bilinear transform ([Bilinear]), with cutoffs prewarped by
//     [Prewarp] or [PrewarpHz].
//  4. Realization as a cascade of biquads ([Realize]).
//
// Each [Section] of a [Design] stands for a conjugate pole pair and an
// optional conjugate zero pair. A zero that is absent lies at infinity;
// [Bilinear] maps it to z = -1.
//
// [Params] wraps the whole pipeline for the common case of a design in Hz:
//
//	p := iir.Params{
//		Prototype:  iir.Prototype{Family: iir.FamilyElliptic, NumFilter: 3, PassbandRippleDB: 0.5, StopbandDB: 60},
//		Shape:      iir.ShapeLowpass,
//		SampleRate: 48000,
//		FreqHz:     1000,
//	}
//	chain, err := p.Chain()
//
// The resulting coefficients run on dsp/filter/biquad.
package iir
