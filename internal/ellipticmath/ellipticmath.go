package ellipticmath

import (
	"math"
	"math/cmplx"
)

const (
	// maxLanden bounds the descending sequence. Moduli up to 1-1e-12 need
	// about ten terms.
	maxLanden = 16

	// landenTol ends the descent once a modulus is negligible.
	landenTol = 1e-18

	// nomeThreshold selects the nome series in DegreeModulus. Below it the
	// complementary modulus rounds too close to 1 for the product form.
	nomeThreshold = 1e-6

	nomeTerms = 7
)

// kSingular is the modulus above which K(k) switches to the logarithmic
// asymptote (k'^2 < 1e-3).
var kSingular = math.Sqrt(1 - 1e-3)

// Landen holds the descending Landen sequence k0 > k1 > ... > kM for a
// single modulus. The sequence lives in a fixed-size array so a Landen value
// can be built per call without heap allocation or shared state.
type Landen struct {
	k [maxLanden]float64
	n int
}

// NewLanden computes the descending Landen sequence of k0, which must lie in
// [0, 1). The last stored modulus is below 1e-18.
func NewLanden(k0 float64) Landen {
	var l Landen

	k := k0
	for k > landenTol && l.n < maxLanden-1 {
		l.k[l.n] = k
		l.n++

		t := k / (1 + Complement(k))
		k = t * t
	}

	l.k[l.n] = k
	l.n++

	return l
}

// Modulus returns k0, the modulus the sequence was built from.
func (l Landen) Modulus() float64 { return l.k[0] }

// Len returns the number of stored moduli including k0.
func (l Landen) Len() int { return l.n }

// Moduli returns a copy of the sequence k0..kM.
func (l Landen) Moduli() []float64 {
	out := make([]float64, l.n)
	copy(out, l.k[:l.n])
	return out
}

// K returns the complete elliptic integral of the first kind K(k0).
func (l Landen) K() float64 {
	k0 := l.k[0]
	if k0 > kSingular {
		kp := Complement(k0)
		L := -math.Log(kp / 4)
		return L + (L-1)*kp*kp/4
	}

	prod := math.Pi / 2
	for i := 1; i < l.n; i++ {
		prod *= 1 + l.k[i]
	}

	return prod
}

// CD evaluates the Jacobi elliptic function cd(uK, k0) for a complex
// argument u normalized to the quarter period K.
func (l Landen) CD(u complex128) complex128 {
	return l.ascend(cmplx.Cos(u * math.Pi / 2))
}

// SN evaluates sn(uK, k0) for a complex normalized argument u.
func (l Landen) SN(u complex128) complex128 {
	return l.ascend(cmplx.Sin(u * math.Pi / 2))
}

// CDReal evaluates cd(uK, k0) for a real normalized argument.
func (l Landen) CDReal(u float64) float64 {
	return l.ascendReal(math.Cos(u * math.Pi / 2))
}

// SNReal evaluates sn(uK, k0) for a real normalized argument.
func (l Landen) SNReal(u float64) float64 {
	return l.ascendReal(math.Sin(u * math.Pi / 2))
}

// ArcSN inverts sn: it returns u such that sn(uK, k0) = w. The result is
// normalized to the quarter period K.
func (l Landen) ArcSN(w complex128) complex128 {
	for i := 1; i < l.n; i++ {
		prev := complex(l.k[i-1], 0)
		w = 2 * w / ((1 + complex(l.k[i], 0)) * (1 + cmplx.Sqrt(1-prev*prev*w*w)))
	}

	return cmplx.Asin(w) * (2 / math.Pi)
}

// ascend runs the Landen ascent w_{i-1} = (1+k_i) w_i / (1 + k_i w_i^2)
// from the smallest modulus back to k0.
func (l Landen) ascend(w complex128) complex128 {
	for i := l.n - 1; i >= 1; i-- {
		k := complex(l.k[i], 0)
		w = (1 + k) * w / (1 + k*w*w)
	}

	return w
}

func (l Landen) ascendReal(w float64) float64 {
	for i := l.n - 1; i >= 1; i-- {
		k := l.k[i]
		w = (1 + k) * w / (1 + k*w*w)
	}

	return w
}

// Complement returns the complementary modulus sqrt(1-k^2).
func Complement(k float64) float64 {
	return math.Sqrt((1 - k) * (1 + k))
}

// K returns the complete elliptic integral K(k) for 0 <= k < 1.
func K(k float64) float64 {
	return NewLanden(k).K()
}

// DegreeModulus solves the elliptic degree equation for a filter with n
// conjugate pole pairs (order N = 2n) and discrimination modulus k1. It
// returns the selectivity modulus k in (0, 1).
func DegreeModulus(n int, k1 float64) float64 {
	order := 2 * n
	if k1 < nomeThreshold {
		return degreeModulusNome(order, k1)
	}

	k1p := Complement(k1)
	l := NewLanden(k1p)

	prod := 1.0
	for i := 1; i <= n; i++ {
		u := float64(2*i-1) / float64(order)
		prod *= l.SNReal(u)
	}

	p2 := prod * prod
	kp := math.Pow(k1p, float64(order)) * p2 * p2

	return Complement(kp)
}

// degreeModulusNome solves the degree equation through the nome relation
// q = q1^(1/N). Used when k1 is tiny.
func degreeModulusNome(order int, k1 float64) float64 {
	capK := K(k1)

	// K'(k1) from the logarithmic asymptote, k1 being far below kSingular's
	// complement.
	L := -math.Log(k1 / 4)
	capKp := L + (L-1)*k1*k1/4

	q1 := math.Exp(-math.Pi * capKp / capK)
	q := math.Pow(q1, 1/float64(order))

	num := 0.0
	for m := range nomeTerms {
		num += math.Pow(q, float64(m*(m+1)))
	}

	den := 1.0
	for m := 1; m < nomeTerms; m++ {
		den += 2 * math.Pow(q, float64(m*m))
	}

	r := num / den

	return 4 * math.Sqrt(q) * r * r
}
