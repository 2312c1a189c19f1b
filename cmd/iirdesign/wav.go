package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-iir/dsp/core"
	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/design/iir"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const wavFormatPCM = 1

// filterFile runs opts.in through the designed cascade and writes opts.out
// with the same format. The design uses the file's sample rate.
func filterFile(opts options, logger *log.Logger) error {
	in, err := os.Open(opts.in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	dec := wav.NewDecoder(in)
	if !dec.IsValidFile() {
		return fmt.Errorf("invalid WAV file: %s", opts.in)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decode %s: %w", opts.in, err)
	}

	channels := buf.Format.NumChannels
	rate := buf.Format.SampleRate
	bitDepth := int(dec.BitDepth)

	if channels < 1 || bitDepth < 8 || bitDepth > 32 || bitDepth%8 != 0 {
		return fmt.Errorf("unsupported WAV layout: %d channels, %d-bit", channels, bitDepth)
	}

	logger.Printf("input: %s, %d Hz, %d channels, %d-bit", opts.in, rate, channels, bitDepth)

	p := opts.params
	if p.SampleRate != float64(rate) {
		logger.Printf("designing at the file rate %d Hz instead of %g Hz", rate, p.SampleRate)
		p.SampleRate = float64(rate)
	}

	r, err := p.Design(iir.WithGainPolicy(opts.policy))
	if err != nil {
		return err
	}

	data, peaks := filterInterleaved(r.Coefficients, buf.Data, channels, bitDepth)
	for ch, peak := range peaks {
		logger.Printf("channel %d: output peak %.2f dBFS", ch, core.LinearToDB(peak))
	}

	out, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	enc := wav.NewEncoder(out, rate, bitDepth, channels, wavFormatPCM)
	if err := enc.Write(&audio.IntBuffer{Format: buf.Format, Data: data, SourceBitDepth: bitDepth}); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", opts.out, err)
	}

	if err := enc.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("finalize %s: %w", opts.out, err)
	}

	logger.Printf("wrote %s", opts.out)

	return out.Close()
}

// filterInterleaved filters every channel of interleaved integer PCM with
// its own cascade and returns the result together with the per-channel
// peak of the unclipped float output. 8-bit samples are unsigned around 128.
func filterInterleaved(coeffs []biquad.Coefficients, data []int, channels, bitDepth int) ([]int, []float64) {
	frames := len(data) / channels
	full := float64(int64(1) << (bitDepth - 1))

	offset := 0.0
	if bitDepth == 8 {
		offset = full
	}

	planes := make([][]float64, channels)
	for ch := range planes {
		plane := make([]float64, frames)
		for i := range plane {
			plane[i] = (float64(data[i*channels+ch]) - offset) / full
		}

		planes[ch] = plane
	}

	peaks := make([]float64, channels)

	var wg sync.WaitGroup
	for ch := range planes {
		wg.Add(1)

		go func(ch int) {
			defer wg.Done()

			biquad.NewChain(coeffs).ProcessBlock(planes[ch])
			peaks[ch] = vecmath.MaxAbs(planes[ch])
		}(ch)
	}

	wg.Wait()

	out := make([]int, frames*channels)
	for ch, plane := range planes {
		for i, x := range plane {
			v := core.Clamp(math.Round(x*full), -full, full-1)
			out[i*channels+ch] = int(v + offset)
		}
	}

	return out, peaks
}
