// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireSliceNearlyEqual fails t unless got and want have equal length and
// every element pair differs by at most tol.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))

	for i := range got {
		require.InDelta(t, want[i], got[i], tol, "index %d", i)
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			require.FailNow(t, "non-finite sample", "index %d: %v", i, v)
		}
	}
}

// MaxAbsDiff returns max |a[i]-b[i]|.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	m := 0.0
	for i := range a {
		m = math.Max(m, math.Abs(a[i]-b[i]))
	}

	return m, nil
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}
