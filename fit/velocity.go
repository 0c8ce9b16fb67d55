package fit

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/astrokit/specfit/model"
	"github.com/astrokit/specfit/profile"
	"github.com/astrokit/specfit/segment"
)

var ErrShortSegment = errors.New("fit: segment too short for cross-correlation")

// VelocityConfig describes the template used by EstimateVelocity.
type VelocityConfig struct {
	RestWavelengths []float64
	Kind            profile.Kind
	VoigtGamma      float64

	// FWHM is the template line width; a rough instrumental value is
	// sufficient since only the correlation peak position matters.
	FWHM float64

	// MaxShift caps the velocity search in km/s. Zero means half the
	// segment span.
	MaxShift float64
}

// EstimateVelocity seeds the velocity search by cross-correlating the
// mean-subtracted segment flux with a rest-velocity line template on the
// same wavelength grid. The correlation is computed by FFT and the peak lag
// is refined to sub-pixel precision with a three-point parabola, then
// converted to km/s about the segment's central wavelength. The estimate is
// coarse by construction; feed it to GridSearch or Refine.
func EstimateVelocity(seg segment.Segment, cfg VelocityConfig) (float64, error) {
	n := seg.Len()
	if n < 4 {
		return 0, ErrShortSegment
	}

	basis, err := model.Basis(seg.Wavelengths, model.Config{
		Velocity:        0,
		RestWavelengths: cfg.RestWavelengths,
		FWHM:            cfg.FWHM,
		Kind:            cfg.Kind,
		VoigtGamma:      cfg.VoigtGamma,
	})
	if err != nil {
		return 0, fmt.Errorf("fit: template basis: %w", err)
	}

	template := make([]float64, n)
	for j := 0; j < len(basis)-2; j++ {
		for i := range template {
			template[i] += basis[j][i]
		}
	}

	flux := meanSubtracted(seg.Flux)
	tmpl := meanSubtracted(template)

	fftSize := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("fit: fft plan: %w", err)
	}

	fluxFreq := make([]complex128, fftSize)
	tmplFreq := make([]complex128, fftSize)
	in := make([]complex128, fftSize)

	for i, v := range flux {
		in[i] = complex(v, 0)
	}

	if err := plan.Forward(fluxFreq, in); err != nil {
		return 0, fmt.Errorf("fit: forward fft: %w", err)
	}

	for i := range in {
		in[i] = 0
	}

	for i, v := range tmpl {
		in[i] = complex(v, 0)
	}

	if err := plan.Forward(tmplFreq, in); err != nil {
		return 0, fmt.Errorf("fit: forward fft: %w", err)
	}

	// Correlation theorem: F(flux)·conj(F(template)) inverts to the
	// cross-correlation, positive lags meaning the data is redshifted
	// relative to the template.
	corrFreq := make([]complex128, fftSize)
	for i := range corrFreq {
		re := real(fluxFreq[i])*real(tmplFreq[i]) + imag(fluxFreq[i])*imag(tmplFreq[i])
		im := imag(fluxFreq[i])*real(tmplFreq[i]) - real(fluxFreq[i])*imag(tmplFreq[i])
		corrFreq[i] = complex(re, im)
	}

	corrTime := make([]complex128, fftSize)
	if err := plan.Inverse(corrTime, corrFreq); err != nil {
		return 0, fmt.Errorf("fit: inverse fft: %w", err)
	}

	d := (seg.Wavelengths[n-1] - seg.Wavelengths[0]) / float64(n-1)
	center := 0.5 * (seg.Wavelengths[0] + seg.Wavelengths[n-1])

	maxLag := n / 2
	if cfg.MaxShift > 0 {
		limit := int(cfg.MaxShift / model.LightSpeed * center / d)
		if limit < 1 {
			limit = 1
		}

		if limit < maxLag {
			maxLag = limit
		}
	}

	corrAt := func(lag int) float64 {
		if lag < 0 {
			lag += fftSize
		}

		return real(corrTime[lag])
	}

	bestLag := 0
	bestVal := corrAt(0)

	for lag := -maxLag; lag <= maxLag; lag++ {
		if v := corrAt(lag); v > bestVal {
			bestVal = v
			bestLag = lag
		}
	}

	// Sub-pixel refinement with a parabola through the peak and its two
	// neighbors.
	frac := 0.0

	if bestLag > -maxLag && bestLag < maxLag {
		ym := corrAt(bestLag - 1)
		yp := corrAt(bestLag + 1)
		den := ym - 2*bestVal + yp

		if den < 0 {
			frac = 0.5 * (ym - yp) / den
		}
	}

	lag := float64(bestLag) + frac

	return lag * d / center * model.LightSpeed, nil
}

func meanSubtracted(v []float64) []float64 {
	mean := 0.0
	for _, e := range v {
		mean += e
	}

	mean /= float64(len(v))

	out := make([]float64, len(v))
	for i, e := range v {
		out[i] = e - mean
	}

	return out
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
