package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/design/iir"
	"github.com/cwbudde/algo-iir/measure/response"
)

func printReport(w io.Writer, opts options, r iir.Result) error {
	p := opts.params

	fmt.Fprintf(w, "%v %v, order %d, fs %g Hz\n", p.Prototype.Family, p.Shape, r.Digital.Order(), p.SampleRate)

	if p.Shape.IsBand() {
		lo, hi := bandEdgesHz(p)
		fmt.Fprintf(w, "band edges: %.2f Hz .. %.2f Hz\n", lo, hi)
	} else {
		fmt.Fprintf(w, "cutoff: %.2f Hz\n", p.FreqHz)
	}

	fmt.Fprintf(w, "gain policy: %v\n\n", opts.policy)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tb0\tb1\tb2\ta1\ta2\t|pole|\t")

	for i, c := range r.Coefficients {
		fmt.Fprintf(tw, "%d\t%.10f\t%.10f\t%.10f\t%.10f\t%.10f\t%.6f\t\n",
			i, c.B0, c.B1, c.B2, c.A1, c.A2, c.PoleRadius())
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if !opts.response {
		return nil
	}

	return printResponse(w, opts, biquad.NewChain(r.Coefficients))
}

// bandEdgesHz returns the digital band edges of a band shape.
func bandEdgesHz(p iir.Params) (float64, float64) {
	if p.LowHz > 0 && p.HighHz > 0 {
		return p.LowHz, p.HighHz
	}

	lo, hi := iir.BandEdges(iir.PrewarpHz(p.FreqHz, p.SampleRate), p.Q)

	return iir.UnwarpHz(lo, p.SampleRate), iir.UnwarpHz(hi, p.SampleRate)
}

func printResponse(w io.Writer, opts options, chain *biquad.Chain) error {
	fs := opts.params.SampleRate

	a, err := response.Analyze(chain, response.Config{SampleRate: fs, FFTSize: opts.fftSize})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nmeasured response (%d-point FFT):\n", a.FFTSize)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Hz\tmeasured dB\tanalytic dB\t")

	for _, f := range probeFrequencies(fs) {
		fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t\n", a.Freqs[a.Bin(f)], a.At(f), chain.MagnitudeDB(a.Freqs[a.Bin(f)], fs))
	}

	return tw.Flush()
}

// probeFrequencies returns octave-spaced points from 31.25 Hz up to just
// below Nyquist.
func probeFrequencies(fs float64) []float64 {
	var out []float64
	for f := 31.25; f < fs/2; f *= 2 {
		out = append(out, f)
	}

	return append(out, math.Nextafter(fs/2, 0))
}
