// Package biquad runs cascades of second-order IIR sections.
//
// [Coefficients] describe one section, [Section] adds the two state
// registers of the transposed direct form II, and [Chain] runs sections in
// series. Coefficient design lives in dsp/filter/design/iir; this package
// only executes and analyzes the result.
package biquad
