package biquad

// Coefficients describes one second-order section
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// with the leading denominator coefficient fixed at 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// IsStable reports whether both poles lie strictly inside the unit circle
// (the stability triangle |A2| < 1, |A1| < 1 + A2).
func (c Coefficients) IsStable() bool {
	return c.A2 < 1 && c.A2 > -1 && c.A1 < 1+c.A2 && -c.A1 < 1+c.A2
}

// Section runs one biquad in transposed direct form II. The two state
// registers belong to the section; the coefficients may be swapped at any
// time without touching them.
type Section struct {
	Coefficients

	s1, s2 float64
}

// NewSection returns a section with cleared state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.s1
	s.s1 = s.B1*x - s.A1*y + s.s2
	s.s2 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place without allocating.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	s1, s2 := s.s1, s.s2

	n := len(buf)
	i := 0

	// Two samples per iteration keep the state in registers.
	for ; i+1 < n; i += 2 {
		x0, x1 := buf[i], buf[i+1]

		y0 := b0*x0 + s1
		t1 := b1*x0 - a1*y0 + s2
		t2 := b2*x0 - a2*y0

		y1 := b0*x1 + t1
		s1 = b1*x1 - a1*y1 + t2
		s2 = b2*x1 - a2*y1

		buf[i], buf[i+1] = y0, y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + s1
		s1 = b1*x - a1*y + s2
		s2 = b2*x - a2*y
		buf[i] = y
	}

	s.s1, s.s2 = s1, s2
}

// ProcessBlockTo filters src into dst, which must be at least as long.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1]

	copy(dst, src)
	s.ProcessBlock(dst[:len(src)])
}

// Reset clears the state registers.
func (s *Section) Reset() {
	s.s1, s.s2 = 0, 0
}

// State returns the two state registers.
func (s *Section) State() [2]float64 {
	return [2]float64{s.s1, s.s2}
}

// SetState restores registers saved by State.
func (s *Section) SetState(state [2]float64) {
	s.s1, s.s2 = state[0], state[1]
}
