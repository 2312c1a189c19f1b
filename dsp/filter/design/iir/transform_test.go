package iir

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrototypes(t *testing.T) map[string]Design {
	t.Helper()

	out := map[string]Design{}
	for name, p := range map[string]Prototype{
		"butterworth":       {Family: FamilyButterworth, NumFilter: 3},
		"chebyshev1-modify": {Family: FamilyChebyshev1, NumFilter: 3, PassbandRippleDB: 1, EvenOrderModify: true},
		"chebyshev2-modify": {Family: FamilyChebyshev2, NumFilter: 3, StopbandDB: 40, EvenOrderModify: true},
		"chebyshev2":        {Family: FamilyChebyshev2, NumFilter: 2, StopbandDB: 40},
		"elliptic":          {Family: FamilyElliptic, NumFilter: 3, PassbandRippleDB: 0.5, StopbandDB: 60},
	} {
		d, err := p.Design()
		require.NoError(t, err, name)
		out[name] = d
	}

	return out
}

func relClose(t *testing.T, want, got float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, 0, (got-want)/want, 1e-10, msgAndArgs...)
}

var probeOmegas = []float64{0.1, 0.7, 1.3, 2.9, 5, 11}

func TestToLowpass_ScalesFrequencyAxis(t *testing.T) {
	const w = 2.5
	for name, d := range testPrototypes(t) {
		lp, err := ToLowpass(d, w)
		require.NoError(t, err)
		require.Equal(t, d.NumSections(), lp.NumSections())

		for _, om := range probeOmegas {
			relClose(t, cmplx.Abs(d.AnalogResponse(om)), cmplx.Abs(lp.AnalogResponse(om*w)), "%s ω=%v", name, om)
		}
	}
}

func TestToHighpass_InvertsFrequencyAxis(t *testing.T) {
	const w = 2.5
	for name, d := range testPrototypes(t) {
		hp, err := ToHighpass(d, w)
		require.NoError(t, err)
		require.Equal(t, d.NumSections(), hp.NumSections())

		for _, s := range hp.Sections {
			assert.True(t, s.Zero.IsFinite(), "%s: highpass zeros are finite", name)
		}

		for _, om := range probeOmegas {
			relClose(t, cmplx.Abs(d.AnalogResponse(om)), cmplx.Abs(hp.AnalogResponse(w/om)), "%s ω=%v", name, om)
		}
	}
}

func TestToBandpass_MapsPrototype(t *testing.T) {
	const w0, bw = 3.0, 1.2
	for name, d := range testPrototypes(t) {
		bp, err := ToBandpass(d, w0, w0/bw)
		require.NoError(t, err)
		require.Equal(t, 2*d.NumSections(), bp.NumSections())

		for _, om := range probeOmegas {
			// (w² - w0²) / (bw·w) = om
			w := (om*bw + math.Sqrt(om*om*bw*bw+4*w0*w0)) / 2
			relClose(t, cmplx.Abs(d.AnalogResponse(om)), cmplx.Abs(bp.AnalogResponse(w)), "%s ω=%v", name, om)
		}
	}
}

func TestToBandstop_MapsPrototype(t *testing.T) {
	const w0, bw = 3.0, 1.2
	for name, d := range testPrototypes(t) {
		bs, err := ToBandstop(d, w0, w0/bw)
		require.NoError(t, err)
		require.Equal(t, 2*d.NumSections(), bs.NumSections())

		for _, om := range probeOmegas {
			// bw·w / (w0² - w²) = om
			w := (-bw + math.Sqrt(bw*bw+4*om*om*w0*w0)) / (2 * om)
			relClose(t, cmplx.Abs(d.AnalogResponse(om)), cmplx.Abs(bs.AnalogResponse(w)), "%s ω=%v", name, om)
		}
	}
}

func TestBandTransform_ConjugateRootPairs(t *testing.T) {
	const w0, q = 3.0, 2.5
	bw := w0 / q

	for name, d := range testPrototypes(t) {
		n := d.NumSections()

		bp, err := ToBandpass(d, w0, q)
		require.NoError(t, err)
		bs, err := ToBandstop(d, w0, q)
		require.NoError(t, err)

		for i, s := range d.Sections {
			up, down := bp.Sections[i].Pole, bp.Sections[i+n].Pole
			assert.InDelta(t, 0, cmplx.Abs(up+down-s.Pole*complex(bw, 0)), 1e-12, "%s bp sum %d", name, i)
			assert.InDelta(t, 0, cmplx.Abs(up*down-complex(w0*w0, 0)), 1e-12, "%s bp product %d", name, i)

			up, down = bs.Sections[i].Pole, bs.Sections[i+n].Pole
			assert.InDelta(t, 0, cmplx.Abs(up+down-complex(bw, 0)/s.Pole), 1e-12, "%s bs sum %d", name, i)
			assert.InDelta(t, 0, cmplx.Abs(up*down-complex(w0*w0, 0)), 1e-12, "%s bs product %d", name, i)

			if !s.Zero.IsFinite() {
				// s² numerator: zero at DC in section i, infinity in i+n.
				z, ok := bp.Sections[i].Zero.Value()
				require.True(t, ok)
				assert.Equal(t, complex128(0), z)
				assert.False(t, bp.Sections[i+n].Zero.IsFinite())

				// Bandstop notch zeros sit at ±j·w0.
				zs, ok := bs.Sections[i].Zero.Value()
				require.True(t, ok)
				assert.InDelta(t, w0, math.Abs(imag(zs)), 1e-12)
			}
		}
	}
}

func TestBandEdges_MatchCenterAndQ(t *testing.T) {
	const w0, q = 3.0, 2.5
	w1, w2 := BandEdges(w0, q)

	assert.InDelta(t, w0/q, w2-w1, 1e-12)
	assert.InDelta(t, w0*w0, w1*w2, 1e-12)

	for name, d := range testPrototypes(t) {
		a, err := ToBandpass(d, w0, q)
		require.NoError(t, err)
		b, err := ToBandpassEdges(d, w1, w2)
		require.NoError(t, err)

		c, err := ToBandstop(d, w0, q)
		require.NoError(t, err)
		e, err := ToBandstopEdges(d, w1, w2)
		require.NoError(t, err)

		relClose(t, a.Gain, b.Gain, name)
		relClose(t, c.Gain, e.Gain, name)

		for i := range a.Sections {
			assert.InDelta(t, 0, cmplx.Abs(a.Sections[i].Pole-b.Sections[i].Pole), 1e-12, name)
			assert.InDelta(t, 0, cmplx.Abs(c.Sections[i].Pole-e.Sections[i].Pole), 1e-12, name)
		}
	}
}

func TestTransforms_RejectInvalid(t *testing.T) {
	d, err := Butterworth(2)
	require.NoError(t, err)

	_, err = ToLowpass(d, 0)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = ToHighpass(d, -1)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = ToBandpass(d, 1, 0)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = ToBandstop(d, math.NaN(), 1)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = ToBandpassEdges(d, 2, 1)
	require.ErrorIs(t, err, ErrInvalidParams)
	_, err = ToBandstopEdges(d, 0, 1)
	require.ErrorIs(t, err, ErrInvalidParams)
}

func TestTransforms_DoNotMutateInput(t *testing.T) {
	d, err := Elliptic(2, 0.5, 40)
	require.NoError(t, err)

	orig := d.Clone()

	_, err = ToHighpass(d, 3)
	require.NoError(t, err)
	_, err = ToBandstop(d, 3, 2)
	require.NoError(t, err)
	_, err = Bilinear(d, 10)
	require.NoError(t, err)

	assert.Equal(t, orig, d)
}
