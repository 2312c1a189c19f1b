package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-iir/dsp/core"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

const (
	defaultSampleRate = 48000.0
	defaultFFTSize    = 8192

	// floorDB replaces -Inf for bins with exactly zero magnitude.
	floorDB = -400.0
)

// ErrInvalidConfig is returned for a non-power-of-two FFT size or a
// negative sample rate.
var ErrInvalidConfig = errors.New("response: invalid config")

// Filter is anything that can report its impulse response without losing
// its running state. *biquad.Chain and *biquad.Section qualify.
type Filter interface {
	ImpulseResponse(n int) []float64
}

// Config holds measurement parameters. Zero fields take defaults.
type Config struct {
	SampleRate float64
	FFTSize    int
}

// Analysis is the measured magnitude response on bins 0..FFTSize/2.
type Analysis struct {
	SampleRate  float64
	FFTSize     int
	Freqs       []float64
	MagnitudeDB []float64
}

// BandStats summarizes the response over a frequency range.
type BandStats struct {
	MinDB  float64
	MaxDB  float64
	PeakHz float64
	// RippleDB is MaxDB - MinDB.
	RippleDB float64
	Bins     int
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = defaultSampleRate
	}

	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}

	if cfg.SampleRate < 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return cfg, fmt.Errorf("%w: sample rate %g", ErrInvalidConfig, cfg.SampleRate)
	}

	if cfg.FFTSize < 2 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return cfg, fmt.Errorf("%w: fft size %d is not a power of two", ErrInvalidConfig, cfg.FFTSize)
	}

	return cfg, nil
}

// Analyze records cfg.FFTSize samples of f's impulse response and returns
// its magnitude spectrum.
func Analyze(f Filter, cfg Config) (*Analysis, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	ir := f.ImpulseResponse(cfg.FFTSize)
	if len(ir) != cfg.FFTSize {
		return nil, fmt.Errorf("response: impulse response has %d samples, want %d", len(ir), cfg.FFTSize)
	}

	in := make([]complex128, cfg.FFTSize)
	for i, x := range ir {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, cfg.FFTSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := cfg.FFTSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i], im[i] = real(out[i]), imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	a := &Analysis{
		SampleRate:  cfg.SampleRate,
		FFTSize:     cfg.FFTSize,
		Freqs:       make([]float64, bins),
		MagnitudeDB: mag,
	}

	binHz := cfg.SampleRate / float64(cfg.FFTSize)
	for i := range bins {
		a.Freqs[i] = float64(i) * binHz

		db := core.LinearToDB(mag[i])
		if math.IsInf(db, -1) {
			db = floorDB
		}

		a.MagnitudeDB[i] = db
	}

	return a, nil
}

// BinHz returns the bin spacing.
func (a *Analysis) BinHz() float64 {
	return a.SampleRate / float64(a.FFTSize)
}

// Bin returns the index of the bin nearest freqHz, clamped to [0, FFTSize/2].
func (a *Analysis) Bin(freqHz float64) int {
	i := int(math.Round(freqHz / a.BinHz()))

	return int(core.Clamp(float64(i), 0, float64(len(a.Freqs)-1)))
}

// At returns the magnitude in dB at the bin nearest freqHz.
func (a *Analysis) At(freqHz float64) float64 {
	return a.MagnitudeDB[a.Bin(freqHz)]
}

// BandStats summarizes the bins whose center lies in [loHz, hiHz].
func (a *Analysis) BandStats(loHz, hiHz float64) (BandStats, error) {
	if hiHz < loHz {
		loHz, hiHz = hiHz, loHz
	}

	lo := int(math.Ceil(loHz / a.BinHz()))
	hi := int(math.Floor(hiHz / a.BinHz()))

	lo = max(lo, 0)
	hi = min(hi, len(a.MagnitudeDB)-1)

	if hi < lo {
		return BandStats{}, fmt.Errorf("response: no bins in [%g, %g] Hz", loHz, hiHz)
	}

	band := a.MagnitudeDB[lo : hi+1]
	peak := floats.MaxIdx(band)

	s := BandStats{
		MinDB:  floats.Min(band),
		MaxDB:  band[peak],
		PeakHz: a.Freqs[lo+peak],
		Bins:   len(band),
	}
	s.RippleDB = s.MaxDB - s.MinDB

	return s, nil
}
