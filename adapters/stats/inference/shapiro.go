package inference

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ShapiroWilkResult is the W statistic and its p-value.
type ShapiroWilkResult struct {
	N      int     `json:"n"`
	W      float64 `json:"w"`
	PValue float64 `json:"p_value"`
}

// Royston (1995) AS R94 polynomial coefficients.
var (
	swG  = []float64{-2.273, 0.459}
	swC1 = []float64{0, 0.221157, -0.147981, -2.07119, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.544, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
)

const (
	swMinN = 3
	swMaxN = 5000
	// range below this is treated as constant input
	swSmall = 1e-19
)

// ShapiroWilk tests the null hypothesis that data was drawn from a normal
// distribution (Royston's AS R94 approximation, valid for 3 <= n <= 5000).
// Constant input returns W = 1, p = 1.
func ShapiroWilk(data []float64) (ShapiroWilkResult, error) {
	n := len(data)
	if n < swMinN {
		return ShapiroWilkResult{N: n}, fmt.Errorf("%w: Shapiro-Wilk needs at least %d values, got %d", ErrSampleTooSmall, swMinN, n)
	}
	if n > swMaxN {
		return ShapiroWilkResult{N: n}, fmt.Errorf("Shapiro-Wilk supports at most %d values, got %d", swMaxN, n)
	}

	x := make([]float64, n)
	copy(x, data)
	sort.Float64s(x)

	rng := x[n-1] - x[0]
	if rng < swSmall {
		return ShapiroWilkResult{N: n, W: 1, PValue: 1}, nil
	}

	half := swilkCoefficients(n)
	coef := make([]float64, n)
	for i, a := range half {
		coef[i] = -a
		coef[n-1-i] = a
	}

	// W is the squared correlation between the ordered sample and the coefficients.
	var sa, sx float64
	for i := range x {
		sa += coef[i]
		sx += x[i] / rng
	}
	sa /= float64(n)
	sx /= float64(n)

	var ssa, ssx, sax float64
	for i := range x {
		asa := coef[i] - sa
		xsx := x[i]/rng - sx
		ssa += asa * asa
		ssx += xsx * xsx
		sax += asa * xsx
	}
	ssassx := math.Sqrt(ssa * ssx)
	w1 := (ssassx - sax) * (ssassx + sax) / (ssa * ssx)
	if w1 < 0 {
		w1 = 0
	}
	w := 1 - w1

	return ShapiroWilkResult{N: n, W: w, PValue: swilkPValue(w, w1, n)}, nil
}

// swilkCoefficients returns the upper half of the antisymmetric coefficient vector, largest first.
func swilkCoefficients(n int) []float64 {
	nn2 := n / 2
	a := make([]float64, nn2)
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		return a
	}

	an := float64(n)
	an25 := an + 0.25
	m := make([]float64, nn2)
	summ2 := 0.0
	for i := 1; i <= nn2; i++ {
		m[i-1] = distuv.UnitNormal.Quantile((float64(i) - 0.375) / an25)
		summ2 += m[i-1] * m[i-1]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)
	a1 := poly(swC1, rsn) - m[0]/ssumm2

	var i1 int
	var fac float64
	if n > 5 {
		i1 = 3
		a2 := -m[1]/ssumm2 + poly(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
		a[1] = a2
	} else {
		i1 = 2
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	a[0] = a1
	for i := i1; i <= nn2; i++ {
		a[i-1] = -m[i-1] / fac
	}
	return a
}

func swilkPValue(w, w1 float64, n int) float64 {
	if n == 3 {
		// exact for n = 3
		const pi6 = 6 / math.Pi
		const stqr = math.Pi / 3
		p := pi6 * (math.Asin(math.Sqrt(math.Min(w, 1))) - stqr)
		return clampProbability(p)
	}

	an := float64(n)
	y := math.Log(w1)
	var m, s float64
	if n <= 11 {
		gamma := poly(swG, an)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		m = poly(swC3, an)
		s = math.Exp(poly(swC4, an))
	} else {
		xx := math.Log(an)
		m = poly(swC5, xx)
		s = math.Exp(poly(swC6, xx))
	}
	return distuv.UnitNormal.Survival((y - m) / s)
}

// poly evaluates c[0] + c[1]x + c[2]x^2 + ...
func poly(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}
	return result
}
