// Package response measures the frequency response of a running filter
// from its impulse response.
//
// The analytic responses in dsp/filter/biquad evaluate the coefficients
// directly. This package instead captures what the filter actually
// produces: it records an impulse response, transforms it with a real FFT
// and reports magnitude per bin. The two agree for any stable design whose
// impulse response has decayed within the FFT length, which makes the
// measurement a cross-check for realized cascades.
package response
