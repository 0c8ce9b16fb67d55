// Package model assembles the linear fitting basis for a spectral segment:
// one unit-amplitude pixel-integrated vector per catalog line, Doppler
// shifted by a common velocity, followed by a constant and a pixel-index
// ramp that absorb the local continuum.
package model

import (
	"errors"
	"fmt"

	"github.com/astrokit/specfit/profile"
)

// LightSpeed is the speed of light in km/s, matching the velocity units
// used throughout.
const LightSpeed = 299792.458

var (
	ErrNoLines   = errors.New("model: no rest wavelengths given")
	ErrFWHMCount = errors.New("model: per-line fwhm count does not match line count")
)

// Config describes the composite line model for one segment.
type Config struct {
	// Velocity is the common Doppler shift in km/s applied to every rest
	// wavelength: mu = rest * (1 + Velocity/LightSpeed).
	Velocity float64

	// RestWavelengths are the catalog line centers, in the same units as
	// the wavelength grid.
	RestWavelengths []float64

	// FWHM is a common width applied to every line. It is ignored when
	// FWHMs is non-nil.
	FWHM float64

	// FWHMs optionally gives one width per line.
	FWHMs []float64

	// Kind selects the line shape; the zero value means Gaussian.
	Kind profile.Kind

	// VoigtGamma is the Lorentzian half width used when Kind is KindVoigt.
	VoigtGamma float64
}

func (c Config) kind() profile.Kind {
	if c.Kind == 0 {
		return profile.KindGaussian
	}

	return c.Kind
}

// widths resolves the per-line widths, expanding a scalar FWHM.
func (c Config) widths() ([]float64, error) {
	if c.FWHMs == nil {
		w := make([]float64, len(c.RestWavelengths))
		for i := range w {
			w[i] = c.FWHM
		}

		return w, nil
	}

	if len(c.FWHMs) != len(c.RestWavelengths) {
		return nil, ErrFWHMCount
	}

	return c.FWHMs, nil
}

// Basis returns the model vectors for the given wavelength grid: one
// pixel-integrated unit-amplitude line vector per rest wavelength, then a
// constant-1 vector and a 0..n-1 pixel-index ramp. The vector count is
// len(cfg.RestWavelengths) + 2.
func Basis(wavelengths []float64, cfg Config) ([][]float64, error) {
	if len(cfg.RestWavelengths) == 0 {
		return nil, ErrNoLines
	}

	widths, err := cfg.widths()
	if err != nil {
		return nil, err
	}

	kind := cfg.kind()
	vectors := make([][]float64, 0, len(cfg.RestWavelengths)+2)

	for i, rest := range cfg.RestWavelengths {
		l := profile.Line{
			Kind:   kind,
			Center: rest * (1 + cfg.Velocity/LightSpeed),
			FWHM:   widths[i],
			Gamma:  cfg.VoigtGamma,
		}

		v, err := l.PixelIntegrated(wavelengths, 1, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("model: line %d at %g: %w", i, rest, err)
		}

		vectors = append(vectors, v)
	}

	constant := make([]float64, len(wavelengths))
	ramp := make([]float64, len(wavelengths))

	for i := range wavelengths {
		constant[i] = 1
		ramp[i] = float64(i)
	}

	return append(vectors, constant, ramp), nil
}
