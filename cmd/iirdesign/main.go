// Command iirdesign designs a digital IIR filter from an analog prototype
// and prints its biquad cascade.
//
// Usage:
//
//	iirdesign [flags]
//
// Examples:
//
//	iirdesign -family elliptic -sections 3 -freq 1000 -ripple 0.5 -atten 60
//	iirdesign -family butterworth -shape bandpass -freq 1000 -q 4
//	iirdesign -family chebyshev2 -shape bandstop -low 45 -high 55 -atten 40
//	iirdesign -freq 200 -shape highpass -in take.wav -out take-hp.wav -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-iir/dsp/filter/design/iir"
)

type options struct {
	params   iir.Params
	policy   iir.GainPolicy
	response bool
	fftSize  int
	verbose  bool
	in, out  string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "iirdesign: ", log.Ltime)
	}

	if opts.in != "" {
		return filterFile(opts, logger)
	}

	r, err := opts.params.Design(iir.WithGainPolicy(opts.policy))
	if err != nil {
		return err
	}

	logger.Printf("prototype: %d sections, gain %g", r.Prototype.NumSections(), r.Prototype.Gain)
	logger.Printf("digital: max |pole| %.6f", r.Digital.MaxPoleRadius())

	return printReport(stdout, opts, r)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("iirdesign", flag.ContinueOnError)
	fs.SetOutput(stderr)

	family := fs.String("family", "butterworth", "prototype family: butterworth, chebyshev1, chebyshev2, elliptic")
	shape := fs.String("shape", "lowpass", "response shape: lowpass, highpass, bandpass, bandstop")
	sections := fs.Int("sections", 2, "number of biquad sections (order = 2 x sections)")
	rate := fs.Float64("fs", 48000, "sample rate in Hz")
	freq := fs.Float64("freq", 1000, "cutoff, or center frequency of band shapes, in Hz")
	q := fs.Float64("q", 1, "quality factor of band shapes")
	low := fs.Float64("low", 0, "lower band edge in Hz (with -high, overrides -freq and -q)")
	high := fs.Float64("high", 0, "upper band edge in Hz")
	ripple := fs.Float64("ripple", 1, "passband ripple in dB (chebyshev1, elliptic)")
	atten := fs.Float64("atten", 60, "stopband attenuation in dB (chebyshev2, elliptic)")
	modify := fs.Bool("modify", false, "even-order modified Chebyshev nodes (chebyshev1, chebyshev2)")
	gain := fs.String("gain", "spread", "gain distribution: spread, first")
	response := fs.Bool("response", false, "measure the response of the realized cascade via FFT")
	fftSize := fs.Int("fft", 8192, "FFT size for -response")
	verbose := fs.Bool("v", false, "verbose logging to stderr")
	in := fs.String("in", "", "WAV file to filter")
	out := fs.String("out", "", "output WAV file (required with -in)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: iirdesign [flags]\n\n")
		fmt.Fprintf(stderr, "Designs an IIR filter and prints its biquad coefficients.\n")
		fmt.Fprintf(stderr, "With -in and -out, filters a WAV file instead.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fam, err := iir.ParseFamily(*family)
	if err != nil {
		return options{}, err
	}

	shp, err := iir.ParseShape(*shape)
	if err != nil {
		return options{}, err
	}

	policy, err := iir.ParseGainPolicy(*gain)
	if err != nil {
		return options{}, err
	}

	if *in != "" && *out == "" {
		return options{}, errors.New("-in requires -out")
	}

	return options{
		params: iir.Params{
			Prototype: iir.Prototype{
				Family:           fam,
				NumFilter:        *sections,
				PassbandRippleDB: *ripple,
				StopbandDB:       *atten,
				EvenOrderModify:  *modify,
			},
			Shape:      shp,
			SampleRate: *rate,
			FreqHz:     *freq,
			Q:          *q,
			LowHz:      *low,
			HighHz:     *high,
		},
		policy:   policy,
		response: *response,
		fftSize:  *fftSize,
		verbose:  *verbose,
		in:       *in,
		out:      *out,
	}, nil
}
