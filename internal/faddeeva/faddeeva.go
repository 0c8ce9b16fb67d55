// Package faddeeva evaluates the Faddeeva function w(z) = exp(-z²)·erfc(-iz)
// for the upper half plane, the kernel behind the Voigt line profile.
//
// The implementation follows Humlíček's w4 algorithm (JQSRT 27, 1982): four
// rational approximations selected by the magnitude s = |Re z| + Im z.
// Relative accuracy is on the order of 1e-4 over the upper half plane, which
// is well below spectroscopic noise floors and tighter than the profile
// quadrature it feeds.
package faddeeva

import (
	"math"
	"math/cmplx"
)

const invSqrtPi = 0.5641895835477563 // 1/sqrt(pi)

var invSqrtPiC = complex(invSqrtPi, 0)

// W returns w(z) for Im(z) >= 0. Behavior for Im(z) < 0 is undefined.
func W(z complex128) complex128 {
	x := real(z)
	y := imag(z)

	if y == 0 {
		// On the real axis Re w(x) = exp(-x²) exactly; keeping it exact makes
		// the zero-damping Voigt collapse to the pure Gaussian.
		return complex(math.Exp(-x*x), 2*invSqrtPi*dawson(x))
	}

	t := complex(y, -x)
	s := math.Abs(x) + y

	switch {
	case s >= 15:
		return t * invSqrtPiC / (0.5 + t*t)
	case s >= 5.5:
		u := t * t
		return t * (1.410474 + u*invSqrtPiC) / (0.75 + u*(3.0+u))
	case y >= 0.195*math.Abs(x)-0.176:
		return (16.4955 + t*(20.20933+t*(11.96482+t*(3.778987+t*0.5642236)))) /
			(16.4955 + t*(38.82363+t*(39.27121+t*(21.69274+t*(6.699398+t)))))
	default:
		u := t * t
		num := t * (36183.31 - u*(3321.9905-u*(1540.787-u*(219.0313-u*(35.76683-u*(1.320522-u*0.56419))))))
		den := 32066.6 - u*(24322.84-u*(9022.228-u*(2186.181-u*(364.2191-u*(61.57037-u*(1.841439-u))))))
		return cmplx.Exp(u) - num/den
	}
}

// Re returns the real part of w(x+iy), the unnormalized Voigt shape.
func Re(x, y float64) float64 {
	return real(W(complex(x, y)))
}

const (
	dawsonH    = 0.4
	dawsonNMax = 6
)

// dawsonC[i] = exp(-((2i+1)·h)²), precomputed for the Rybicki sum.
var dawsonC = func() [dawsonNMax]float64 {
	var c [dawsonNMax]float64
	for i := range c {
		d := float64(2*i+1) * dawsonH
		c[i] = math.Exp(-d * d)
	}

	return c
}()

// dawson computes Dawson's integral D(x) = exp(-x²)·∫₀ˣ exp(t²)dt by
// Rybicki's sampling method (as in Numerical Recipes), with a Maclaurin
// series for small arguments and the asymptotic tail for large ones.
func dawson(x float64) float64 {
	ax := math.Abs(x)

	if ax < 0.2 {
		x2 := x * x
		return x * (1 - 2*x2/3*(1-2*x2/5*(1-2*x2/7)))
	}

	if ax >= 15 {
		d := 0.5 / ax * (1 + 0.5/(ax*ax))
		if x < 0 {
			d = -d
		}

		return d
	}

	n0 := 2 * int(0.5*ax/dawsonH+0.5)
	xp := ax - float64(n0)*dawsonH
	e1 := math.Exp(2 * xp * dawsonH)
	e2 := e1 * e1
	d1 := float64(n0 + 1)
	d2 := d1 - 2
	sum := 0.0

	for i := 0; i < dawsonNMax; i++ {
		sum += dawsonC[i] * (e1/d1 + 1/(d2*e1))
		d1 += 2
		d2 -= 2
		e1 *= e2
	}

	res := invSqrtPi * math.Exp(-xp*xp) * sum
	if x < 0 {
		res = -res
	}

	return res
}
