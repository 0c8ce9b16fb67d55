package profile

import (
	"errors"
	"math"
	"strings"
)

// GaussianWidthRatio converts a Gaussian full width at half maximum to the
// native sigma: sigma = fwhm / GaussianWidthRatio.
const GaussianWidthRatio = 2.355

// Kind selects a line-shape family.
type Kind int

const (
	KindGaussian Kind = iota + 1
	KindLorentzian
	KindVoigt
)

func (k Kind) String() string {
	switch k {
	case KindGaussian:
		return "gaussian"
	case KindLorentzian:
		return "lorentzian"
	case KindVoigt:
		return "voigt"
	default:
		return "unknown"
	}
}

// ParseKind maps a case-insensitive shape name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gaussian":
		return KindGaussian, nil
	case "lorentzian":
		return KindLorentzian, nil
	case "voigt":
		return KindVoigt, nil
	default:
		return 0, ErrUnknownKind
	}
}

var (
	ErrUnknownKind  = errors.New("profile: unknown line kind")
	ErrInvalidWidth = errors.New("profile: fwhm must be positive")
	ErrInvalidGamma = errors.New("profile: voigt gamma must not be negative")
	ErrShortGrid    = errors.New("profile: need at least two samples to infer pixel spacing")
	ErrQuadrature   = errors.New("profile: voigt quadrature did not converge")
)

// Gaussian evaluates the peak-normalized Gaussian kernel at x.
// fwhm must be positive.
func Gaussian(x, mu, fwhm float64) float64 {
	sigma := fwhm / GaussianWidthRatio
	d := (x - mu) / sigma

	return math.Exp(-0.5 * d * d)
}

// Lorentzian evaluates the unit-area Lorentzian kernel at x.
// fwhm must be positive.
func Lorentzian(x, mu, fwhm float64) float64 {
	g := fwhm / 2
	d := x - mu

	return g / math.Pi / (d*d + g*g)
}

// Voigt evaluates the unit-area Voigt kernel at x: the convolution of a
// Gaussian of width fwhm with a Lorentzian of half width gamma, computed
// through the Faddeeva function. fwhm must be positive and gamma
// non-negative; gamma = 0 collapses to the unit-area Gaussian.
func Voigt(x, mu, fwhm, gamma float64) float64 {
	sigma := fwhm / GaussianWidthRatio
	norm := 1 / (sigma * math.Sqrt(2*math.Pi))

	if gamma == 0 {
		return norm * Gaussian(x, mu, fwhm)
	}

	inv := 1 / (sigma * math.Sqrt2)

	return norm * voigtShape((x-mu)*inv, gamma*inv)
}

// IntegrateGaussian integrates the peak-normalized Gaussian kernel between a
// and b via the error function. Reversed bounds give the negated value.
func IntegrateGaussian(a, b, mu, fwhm float64) float64 {
	sigma := fwhm / GaussianWidthRatio
	s := math.Sqrt2 * sigma

	return sigma * math.Sqrt(math.Pi/2) * (math.Erf((b-mu)/s) - math.Erf((a-mu)/s))
}

// IntegrateLorentzian integrates the unit-area Lorentzian kernel between a
// and b via the arctangent; the value saturates to 1 over infinite bounds.
func IntegrateLorentzian(a, b, mu, fwhm float64) float64 {
	g := fwhm / 2

	return (math.Atan((b-mu)/g) - math.Atan((a-mu)/g)) / math.Pi
}

// Line describes one spectral line shape at a fixed wavelength.
type Line struct {
	Kind   Kind
	Center float64
	FWHM   float64
	Gamma  float64 // Lorentzian half width of the Voigt component; ignored otherwise
}

// Validate reports whether the line parameters are usable.
func (l Line) Validate() error {
	switch l.Kind {
	case KindGaussian, KindLorentzian, KindVoigt:
	default:
		return ErrUnknownKind
	}

	if l.FWHM <= 0 {
		return ErrInvalidWidth
	}

	if l.Kind == KindVoigt && l.Gamma < 0 {
		return ErrInvalidGamma
	}

	return nil
}

// Eval returns the kernel value at x. The receiver must satisfy Validate;
// a non-positive FWHM yields meaningless values.
func (l Line) Eval(x float64) float64 {
	switch l.Kind {
	case KindLorentzian:
		return Lorentzian(x, l.Center, l.FWHM)
	case KindVoigt:
		return Voigt(x, l.Center, l.FWHM, l.Gamma)
	default:
		return Gaussian(x, l.Center, l.FWHM)
	}
}

// Integrate returns the definite integral of the kernel between a and b.
func (l Line) Integrate(a, b float64) (float64, error) {
	if err := l.Validate(); err != nil {
		return 0, err
	}

	switch l.Kind {
	case KindLorentzian:
		return IntegrateLorentzian(a, b, l.Center, l.FWHM), nil
	case KindVoigt:
		return IntegrateVoigt(a, b, l.Center, l.FWHM, l.Gamma)
	default:
		return IntegrateGaussian(a, b, l.Center, l.FWHM), nil
	}
}

// PixelIntegrated returns the line model sampled on a uniform wavelength
// grid: the kernel averaged over each pixel's span [x-d/2, x+d/2] and scaled
// by amp, plus a constant offset and a linear trend about the grid mean.
// The grid needs at least two samples to define the pixel width d.
func (l Line) PixelIntegrated(x []float64, amp, contAmp, contSlope float64) ([]float64, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if len(x) < 2 {
		return nil, ErrShortGrid
	}

	d := x[1] - x[0]
	mean := 0.0

	for _, v := range x {
		mean += v
	}

	mean /= float64(len(x))

	out := make([]float64, len(x))

	for i, xi := range x {
		v, err := l.Integrate(xi-d/2, xi+d/2)
		if err != nil {
			return nil, err
		}

		out[i] = amp*v/d + contAmp + (xi-mean)*contSlope
	}

	return out, nil
}
