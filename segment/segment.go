// Package segment represents windows of a 1-D spectrum as parallel
// wavelength, flux and noise slices and extracts them from full spectra.
package segment

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch = errors.New("segment: wavelength, flux and noise lengths differ")
	ErrNotIncreasing  = errors.New("segment: wavelengths must be strictly increasing")
	ErrNoisePositive  = errors.New("segment: noise must be strictly positive")
)

// Segment is a contiguous slice of a spectrum. The three slices are
// parallel; Wavelengths is expected to increase monotonically with uniform
// or near-uniform spacing.
type Segment struct {
	Wavelengths []float64
	Flux        []float64
	Noise       []float64
}

// Len returns the number of samples.
func (s Segment) Len() int {
	return len(s.Wavelengths)
}

// Validate checks the solver preconditions: parallel slices, strictly
// increasing wavelengths and strictly positive noise. Inverse-variance
// weighting divides by noise squared, so a zero noise sample would poison
// the whole fit.
func (s Segment) Validate() error {
	if len(s.Flux) != len(s.Wavelengths) || len(s.Noise) != len(s.Wavelengths) {
		return ErrLengthMismatch
	}

	for i := 1; i < len(s.Wavelengths); i++ {
		if s.Wavelengths[i] <= s.Wavelengths[i-1] {
			return fmt.Errorf("%w: sample %d", ErrNotIncreasing, i)
		}
	}

	for i, n := range s.Noise {
		if n <= 0 {
			return fmt.Errorf("%w: sample %d", ErrNoisePositive, i)
		}
	}

	return nil
}

// Extract returns the sub-segment with min < wavelength < max. Both bounds
// are exclusive. The result may be empty; callers fitting the window must
// guard against segments shorter than their model component count.
func Extract(wavelengths, flux, noise []float64, min, max float64) Segment {
	var out Segment

	for i, w := range wavelengths {
		if w <= min || w >= max {
			continue
		}

		out.Wavelengths = append(out.Wavelengths, w)
		out.Flux = append(out.Flux, flux[i])
		out.Noise = append(out.Noise, noise[i])
	}

	return out
}
