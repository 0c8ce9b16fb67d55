package fit

import (
	"errors"
	"fmt"

	"github.com/astrokit/specfit/model"
	"github.com/astrokit/specfit/profile"
	"github.com/astrokit/specfit/segment"
)

// ErrNoLineFlux is returned by SolveCoupled when every line amplitude of
// the primary fit is zero, leaving no template to scale on the secondary.
var ErrNoLineFlux = errors.New("fit: primary fit assigns no flux to any line")

// CoupledConfig describes one line complex observed in two spectra.
// Velocity and width may differ per spectrum; the line list and shape are
// shared, and so are the fitted amplitude ratios.
type CoupledConfig struct {
	RestWavelengths []float64
	Kind            profile.Kind
	VoigtGamma      float64

	Velocity1 float64
	Velocity2 float64

	// FWHM1/FWHM2 are common widths; FWHMs1/FWHMs2 override them with
	// one width per line when non-nil.
	FWHM1  float64
	FWHM2  float64
	FWHMs1 []float64
	FWHMs2 []float64
}

func (c CoupledConfig) primary() model.Config {
	return model.Config{
		Velocity:        c.Velocity1,
		RestWavelengths: c.RestWavelengths,
		FWHM:            c.FWHM1,
		FWHMs:           c.FWHMs1,
		Kind:            c.Kind,
		VoigtGamma:      c.VoigtGamma,
	}
}

func (c CoupledConfig) secondary() model.Config {
	return model.Config{
		Velocity:        c.Velocity2,
		RestWavelengths: c.RestWavelengths,
		FWHM:            c.FWHM2,
		FWHMs:           c.FWHMs2,
		Kind:            c.Kind,
		VoigtGamma:      c.VoigtGamma,
	}
}

// CoupledResult holds the two reconstructed model curves and their
// coefficients.
type CoupledResult struct {
	// Primary is the full multi-line fit of the first spectrum. Its
	// Coeffs are one amplitude per line plus constant and ramp.
	Primary Result

	// Secondary is the template fit of the second spectrum. Its Coeffs
	// are exactly three: template scale, constant, ramp.
	Secondary Result
}

// SolveCoupled fits the primary spectrum with a non-negativity constraint
// on all coefficients, then freezes the fitted line-amplitude ratios into a
// single combined template evaluated at the secondary spectrum's velocity
// and width, and solves the secondary for template scale, constant and
// ramp — again non-negative. Line ratios are treated as intrinsic to the
// source; only the overall flux scale and the local continuum may differ
// between the two spectra, so the unconstrained solver is never used here.
func SolveCoupled(primary, secondary segment.Segment, cfg CoupledConfig) (CoupledResult, error) {
	basis1, err := model.Basis(primary.Wavelengths, cfg.primary())
	if err != nil {
		return CoupledResult{}, fmt.Errorf("fit: primary basis: %w", err)
	}

	res1, err := solveWeighted(basis1, primary.Flux, primary.Noise, true)
	if err != nil {
		return CoupledResult{}, fmt.Errorf("fit: primary solve: %w", err)
	}

	basis2, err := model.Basis(secondary.Wavelengths, cfg.secondary())
	if err != nil {
		return CoupledResult{}, fmt.Errorf("fit: secondary basis: %w", err)
	}

	// Combined template: secondary-grid line vectors scaled by the primary
	// line amplitudes, continuum coefficients excluded.
	nLines := len(basis1) - 2
	template := make([]float64, secondary.Len())
	anyFlux := false

	for j := 0; j < nLines; j++ {
		c := res1.Coeffs[j]
		if c == 0 {
			continue
		}

		anyFlux = true

		for i := range template {
			template[i] += c * basis2[j][i]
		}
	}

	if !anyFlux {
		return CoupledResult{}, ErrNoLineFlux
	}

	constant := make([]float64, secondary.Len())
	ramp := make([]float64, secondary.Len())

	for i := range constant {
		constant[i] = 1
		ramp[i] = float64(i)
	}

	res2, err := solveWeighted([][]float64{template, constant, ramp}, secondary.Flux, secondary.Noise, true)
	if err != nil {
		return CoupledResult{}, fmt.Errorf("fit: secondary solve: %w", err)
	}

	return CoupledResult{Primary: res1, Secondary: res2}, nil
}
