package testutil

import (
	"math"
	"math/rand/v2"
)

// Sine returns n samples of amp·sin(2π f t) starting at phase 0.
func Sine(freqHz, sampleRate, amp float64, n int) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amp * math.Sin(w*float64(i))
	}

	return out
}

// Noise returns n uniform samples in [-amp, amp) from a seeded PCG source.
func Noise(seed uint64, amp float64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)

	for i := range out {
		out[i] = amp * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns n samples with a single 1 at pos.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}

	return out
}

// Step returns n samples of 1.
func Step(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
