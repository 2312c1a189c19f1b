package biquad

import vecmath "github.com/cwbudde/algo-vecmath"

// Chain runs biquad sections in series, in the order given. Designs whose
// gain was distributed across sections expect exactly this order.
type Chain struct {
	sections []Section
	gain     float64
}

type chainConfig struct {
	gain float64
}

// ChainOption configures NewChain.
type ChainOption func(*chainConfig)

// WithGain scales the input by g before the first section. Default 1.
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain builds a cascade with one section per coefficient set.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{gain: cfg.gain}
	c.setSections(coeffs)

	return c
}

func (c *Chain) setSections(coeffs []Coefficients) {
	c.sections = make([]Section, len(coeffs))
	for i, k := range coeffs {
		c.sections[i].Coefficients = k
	}
}

// ProcessSample filters one sample through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		vecmath.ScaleBlockInPlace(buf, c.gain)
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// ProcessBlockTo filters src into dst, which must be at least as long.
func (c *Chain) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	dst = dst[:len(src)]
	vecmath.ScaleBlock(dst, src, c.gain)

	for i := range c.sections {
		c.sections[i].ProcessBlock(dst)
	}
}

// Reset clears the state of every section.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns 2 per section.
func (c *Chain) Order() int { return 2 * len(c.sections) }

// NumSections returns the number of sections.
func (c *Chain) NumSections() int { return len(c.sections) }

// Gain returns the input gain.
func (c *Chain) Gain() float64 { return c.gain }

// SetGain changes the input gain.
func (c *Chain) SetGain(g float64) { c.gain = g }

// Section returns the i-th section.
func (c *Chain) Section(i int) *Section { return &c.sections[i] }

// Coefficients returns a copy of the section coefficients in cascade order.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}

	return out
}

// SetCoefficients swaps in a new design. With an unchanged section count the
// state registers carry over so a running signal sees no reset transient;
// otherwise the sections are rebuilt with cleared state.
func (c *Chain) SetCoefficients(coeffs []Coefficients) {
	if len(coeffs) != len(c.sections) {
		c.setSections(coeffs)
		return
	}

	for i, k := range coeffs {
		c.sections[i].Coefficients = k
	}
}

// IsStable reports whether every section is stable.
func (c *Chain) IsStable() bool {
	for i := range c.sections {
		if !c.sections[i].IsStable() {
			return false
		}
	}

	return true
}

// State returns the registers of every section.
func (c *Chain) State() [][2]float64 {
	out := make([][2]float64, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].State()
	}

	return out
}

// SetState restores registers saved by State. len(states) must equal
// NumSections.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
