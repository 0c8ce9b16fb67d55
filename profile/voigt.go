package profile

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/astrokit/specfit/internal/faddeeva"
)

const (
	voigtQuadTol      = 1e-6 // relative and absolute
	voigtQuadNodes    = 11
	voigtQuadMaxDepth = 24
)

func voigtShape(x, y float64) float64 {
	return faddeeva.Re(x, y)
}

// IntegrateVoigt integrates the unit-area Voigt kernel between a and b by
// adaptive Gauss-Legendre quadrature at relative and absolute tolerance
// 1e-6. Reversed bounds give the negated value. gamma = 0 is evaluated in
// closed form through the Gaussian error function.
func IntegrateVoigt(a, b, mu, fwhm, gamma float64) (float64, error) {
	if a == b {
		return 0, nil
	}

	if a > b {
		v, err := IntegrateVoigt(b, a, mu, fwhm, gamma)
		return -v, err
	}

	sigma := fwhm / GaussianWidthRatio
	norm := 1 / (sigma * math.Sqrt(2*math.Pi))

	if gamma == 0 {
		return norm * IntegrateGaussian(a, b, mu, fwhm), nil
	}

	inv := 1 / (sigma * math.Sqrt2)
	y := gamma * inv
	f := func(t float64) float64 {
		return norm * voigtShape((t-mu)*inv, y)
	}

	return adaptiveQuad(f, a, b)
}

// adaptiveQuad bisects the interval until two fixed Gauss-Legendre panels
// agree with their parent panel to voigtQuadTol.
func adaptiveQuad(f func(float64) float64, lo, hi float64) (float64, error) {
	whole := quad.Fixed(f, lo, hi, voigtQuadNodes, nil, 0)
	return refinePanel(f, lo, hi, whole, voigtQuadMaxDepth)
}

func refinePanel(f func(float64) float64, lo, hi, whole float64, depth int) (float64, error) {
	mid := 0.5 * (lo + hi)
	left := quad.Fixed(f, lo, mid, voigtQuadNodes, nil, 0)
	right := quad.Fixed(f, mid, hi, voigtQuadNodes, nil, 0)
	sum := left + right

	if math.Abs(sum-whole) <= math.Max(voigtQuadTol, voigtQuadTol*math.Abs(sum)) {
		return sum, nil
	}

	if depth == 0 {
		return 0, ErrQuadrature
	}

	l, err := refinePanel(f, lo, mid, left, depth-1)
	if err != nil {
		return 0, err
	}

	r, err := refinePanel(f, mid, hi, right, depth-1)
	if err != nil {
		return 0, err
	}

	return l + r, nil
}
