package iir

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-iir/dsp/filter/biquad"
)

// GainPolicy decides how Realize distributes the overall gain.
type GainPolicy int

const (
	// GainSpread gives every section |k|^(1/n), keeping intermediate
	// signal levels close to the final one.
	GainSpread GainPolicy = iota

	// GainFirstSection applies the whole gain in section 0.
	GainFirstSection
)

func (g GainPolicy) String() string {
	switch g {
	case GainSpread:
		return "spread"
	case GainFirstSection:
		return "first"
	default:
		return fmt.Sprintf("GainPolicy(%d)", int(g))
	}
}

// ParseGainPolicy accepts "spread" or "first".
func ParseGainPolicy(s string) (GainPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spread":
		return GainSpread, nil
	case "first", "first-section":
		return GainFirstSection, nil
	default:
		return 0, fmt.Errorf("unknown gain policy %q: %w", s, ErrInvalidParams)
	}
}

type realizeConfig struct {
	policy         GainPolicy
	checkStability bool
}

// Option configures Realize and Params.Design.
type Option func(*realizeConfig)

// WithGainPolicy selects the gain distribution. Default is GainSpread.
func WithGainPolicy(p GainPolicy) Option {
	return func(cfg *realizeConfig) { cfg.policy = p }
}

// WithStabilityCheck enables or disables the |pole| < 1 check. Realize
// skips it by default; Params.Design runs it by default.
func WithStabilityCheck(enabled bool) Option {
	return func(cfg *realizeConfig) { cfg.checkStability = enabled }
}

func applyOptions(checkStability bool, opts []Option) realizeConfig {
	cfg := realizeConfig{policy: GainSpread, checkStability: checkStability}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// Realize converts a digital design into a cascade of biquads, one per
// section, in section order. Every zero must be finite; Bilinear
// guarantees this.
func Realize(d Design, opts ...Option) ([]biquad.Coefficients, error) {
	return realize(d, applyOptions(false, opts))
}

func realize(d Design, cfg realizeConfig) ([]biquad.Coefficients, error) {
	n := len(d.Sections)
	if n == 0 {
		return nil, invalidf("empty design")
	}

	for i, s := range d.Sections {
		if !s.Zero.IsFinite() {
			return nil, fmt.Errorf("section %d: %w", i, ErrUnresolvedZero)
		}
	}

	if cfg.checkStability {
		if err := CheckStability(d); err != nil {
			return nil, err
		}
	}

	gains := sectionGains(d.Gain, n, cfg.policy)
	out := make([]biquad.Coefficients, n)

	for i, s := range d.Sections {
		z, _ := s.Zero.Value()
		g := gains(i)
		out[i] = biquad.Coefficients{
			B0: g,
			B1: -2 * g * real(z),
			B2: g * absSq(z),
			A1: -2 * real(s.Pole),
			A2: absSq(s.Pole),
		}
	}

	return out, nil
}

// sectionGains returns the per-section gain for index i. The sign of k
// goes to section 0.
func sectionGains(k float64, n int, policy GainPolicy) func(int) float64 {
	sign := 1.0
	if k < 0 {
		sign = -1
	}

	if policy == GainFirstSection {
		return func(i int) float64 {
			if i == 0 {
				return k
			}

			return 1
		}
	}

	g := math.Pow(math.Abs(k), 1/float64(n))

	return func(i int) float64 {
		if i == 0 {
			return sign * g
		}

		return g
	}
}
