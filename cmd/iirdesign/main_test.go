package main

import (
	"bytes"
	"flag"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
	"github.com/cwbudde/algo-iir/dsp/filter/design/iir"
	"github.com/cwbudde/algo-iir/internal/testutil"
)

func runArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestRun_EllipticLowpass(t *testing.T) {
	out, _, err := runArgs(t, "-family", "elliptic", "-sections", "3", "-ripple", "0.5", "-atten", "60", "-freq", "1000")
	require.NoError(t, err)

	assert.Contains(t, out, "elliptic lowpass, order 6, fs 48000 Hz\n")
	assert.Contains(t, out, "cutoff: 1000.00 Hz\n")
	assert.Contains(t, out, "gain policy: spread\n")
	assert.Contains(t, out, "|pole|")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}

func TestRun_BandpassReportsEdges(t *testing.T) {
	out, _, err := runArgs(t, "-shape", "bp", "-freq", "1000", "-q", "4", "-gain", "first")
	require.NoError(t, err)

	assert.Contains(t, out, "butterworth bandpass, order 8")
	assert.Contains(t, out, "band edges: ")
	assert.Contains(t, out, "gain policy: first\n")
}

func TestRun_Response(t *testing.T) {
	out, _, err := runArgs(t, "-family", "cheby1", "-shape", "highpass", "-response", "-fft", "4096")
	require.NoError(t, err)

	assert.Contains(t, out, "measured response (4096-point FFT):")
	assert.Contains(t, out, "measured dB")
}

func TestRun_Verbose(t *testing.T) {
	_, logs, err := runArgs(t, "-v")
	require.NoError(t, err)

	assert.Contains(t, logs, "iirdesign: ")
	assert.Contains(t, logs, "max |pole|")
}

func TestRun_Errors(t *testing.T) {
	for name, args := range map[string][]string{
		"family":   {"-family", "bessel"},
		"shape":    {"-shape", "allpass"},
		"gain":     {"-gain", "last"},
		"nyquist":  {"-freq", "30000"},
		"sections": {"-sections", "0"},
		"in":       {"-in", "x.wav"},
		"low only": {"-shape", "bandstop", "-low", "45"},
		"args":     {"extra"},
		"flag":     {"-bogus"},
	} {
		_, _, err := runArgs(t, args...)
		assert.Error(t, err, name)
	}

	_, _, err := runArgs(t, "-freq", "30000")
	require.ErrorIs(t, err, iir.ErrInvalidParams)

	_, _, err = runArgs(t, "-shape", "bandpass", "-high", "55")
	require.ErrorIs(t, err, iir.ErrInvalidParams)
}

func TestRun_Help(t *testing.T) {
	_, usage, err := runArgs(t, "-h")
	require.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, usage, "Usage: iirdesign")
	assert.Contains(t, usage, "even-order modified Chebyshev nodes")
	assert.NotContains(t, usage, "Nyquist")
}

func TestBandEdgesHz(t *testing.T) {
	p := iir.Params{Shape: iir.ShapeBandstop, SampleRate: 48000, FreqHz: 5000, Q: 2}
	lo, hi := bandEdgesHz(p)

	w0 := iir.PrewarpHz(5000, 48000)
	w1, w2 := iir.PrewarpHz(lo, 48000), iir.PrewarpHz(hi, 48000)

	assert.InDelta(t, w0*w0, w1*w2, 1e-6*w0*w0)
	assert.InDelta(t, w0/2, w2-w1, 1e-9*w0)

	p.LowHz, p.HighHz = 100, 200
	lo, hi = bandEdgesHz(p)
	assert.InDelta(t, 100, lo, 0)
	assert.InDelta(t, 200, hi, 0)
}

func TestProbeFrequencies(t *testing.T) {
	got := probeFrequencies(1000)
	assert.Equal(t, []float64{31.25, 62.5, 125, 250}, got[:4])
	assert.Len(t, got, 5)
	assert.Less(t, got[4], 500.0)
}

func TestFilterInterleaved(t *testing.T) {
	data := []int{16384, -100, -16384, 7}

	out, peaks := filterInterleaved([]biquad.Coefficients{{B0: 1}}, data, 2, 16)
	assert.Equal(t, data, out)
	assert.InDeltaSlice(t, []float64{0.5, 100.0 / 32768}, peaks, 1e-15)

	out, peaks = filterInterleaved([]biquad.Coefficients{{B0: 4}}, data, 2, 16)
	assert.Equal(t, []int{32767, -400, -32768, 28}, out)
	assert.InDelta(t, 2.0, peaks[0], 1e-15)
}

func TestFilterInterleaved_Unsigned8Bit(t *testing.T) {
	data := []int{128, 0, 255, 200}

	out, peaks := filterInterleaved([]biquad.Coefficients{{B0: 1}}, data, 1, 8)
	assert.Equal(t, data, out)
	assert.InDelta(t, 1.0, peaks[0], 1e-15)

	// Silence stays at the midpoint; overdriven samples clip to 0 and 255.
	out, _ = filterInterleaved([]biquad.Coefficients{{B0: 4}}, data, 1, 8)
	assert.Equal(t, []int{128, 0, 255, 255}, out)
}

func writeTestWAV(t *testing.T, path string, channels [][]float64) {
	t.Helper()

	frames := len(channels[0])
	data := make([]int, frames*len(channels))

	for ch, plane := range channels {
		for i, x := range plane {
			data[i*len(channels)+ch] = int(x * 32767)
		}
	}

	writePCM(t, path, data, len(channels), 16)
}

func writePCM(t *testing.T, path string, data []int, channels, bitDepth int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 48000, bitDepth, channels, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 48000},
		Data:           data,
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func readTestWAV(t *testing.T, path string) (*audio.IntBuffer, int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	return buf, int(dec.BitDepth)
}

func TestRun_FiltersWAV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	const frames = 4800

	writeTestWAV(t, in, [][]float64{
		testutil.Sine(100, 48000, 0.5, frames),
		testutil.Sine(10000, 48000, 0.5, frames),
	})

	_, logs, err := runArgs(t, "-sections", "4", "-freq", "1000", "-fs", "44100", "-in", in, "-out", out, "-v")
	require.NoError(t, err)

	assert.Contains(t, logs, "designing at the file rate 48000 Hz")
	assert.Contains(t, logs, "channel 1: output peak")

	buf, bitDepth := readTestWAV(t, out)
	assert.Equal(t, 16, bitDepth)
	assert.Equal(t, 2, buf.Format.NumChannels)
	assert.Equal(t, 48000, buf.Format.SampleRate)
	require.Len(t, buf.Data, 2*frames)

	planes := [2][]float64{}
	for i := 1000; i < frames; i++ {
		planes[0] = append(planes[0], float64(buf.Data[2*i])/32768)
		planes[1] = append(planes[1], float64(buf.Data[2*i+1])/32768)
	}

	assert.InDelta(t, 0.5/1.41421356, testutil.RMS(planes[0]), 0.01)
	assert.Less(t, testutil.RMS(planes[1]), 1e-3)
}

func TestRun_Filters8BitWAV(t *testing.T) {
	dir := t.TempDir()
	silent := filepath.Join(dir, "silent.wav")
	tone := filepath.Join(dir, "tone.wav")

	const frames = 4800

	zeros := make([]int, frames)
	for i := range zeros {
		zeros[i] = 128
	}

	writePCM(t, silent, zeros, 1, 8)

	_, _, err := runArgs(t, "-freq", "1000", "-in", silent, "-out", silent+".out")
	require.NoError(t, err)

	buf, bitDepth := readTestWAV(t, silent+".out")
	assert.Equal(t, 8, bitDepth)
	assert.Equal(t, zeros, buf.Data)

	sine := testutil.Sine(100, 48000, 0.4, frames)
	data := make([]int, frames)

	for i, x := range sine {
		data[i] = 128 + int(math.Round(x*127))
	}

	writePCM(t, tone, data, 1, 8)

	_, _, err = runArgs(t, "-freq", "1000", "-in", tone, "-out", tone+".out")
	require.NoError(t, err)

	buf, _ = readTestWAV(t, tone+".out")
	require.Len(t, buf.Data, frames)

	var centered []float64
	for _, v := range buf.Data[1000:] {
		centered = append(centered, float64(v-128)/128)
	}

	assert.InDelta(t, 0.4*127/128/math.Sqrt2, testutil.RMS(centered), 0.01)
}

func TestRun_RejectsNonWAV(t *testing.T) {
	in := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(in, []byte("not a riff file at all"), 0o600))

	_, _, err := runArgs(t, "-in", in, "-out", in+".out")
	require.Error(t, err)
}
