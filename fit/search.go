package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/maorshutman/lm"

	"github.com/astrokit/specfit/model"
	"github.com/astrokit/specfit/profile"
	"github.com/astrokit/specfit/segment"
)

var (
	ErrEmptyGrid    = errors.New("fit: search grid has no points")
	ErrNoGridResult = errors.New("fit: no grid point produced a solvable system")
)

// SearchConfig spans a rectangular (velocity, fwhm) grid for GridSearch.
type SearchConfig struct {
	RestWavelengths []float64
	Kind            profile.Kind
	VoigtGamma      float64

	VelocityMin   float64 // km/s
	VelocityMax   float64
	VelocitySteps int

	FWHMMin   float64
	FWHMMax   float64
	FWHMSteps int
}

// SearchResult is the best (velocity, fwhm) point found together with the
// linear fit evaluated there.
type SearchResult struct {
	Velocity float64
	FWHM     float64
	ChiSq    float64
	Fit      Result
}

// GridSearch brute-forces the nonlinear parameters: for every grid point it
// runs the weighted linear solve and keeps the point with the smallest
// chi-square. Grid points whose system cannot be solved are skipped; at
// least one point must succeed.
func GridSearch(seg segment.Segment, cfg SearchConfig) (SearchResult, error) {
	if cfg.VelocitySteps < 1 || cfg.FWHMSteps < 1 {
		return SearchResult{}, ErrEmptyGrid
	}

	best := SearchResult{ChiSq: math.Inf(1)}

	for iv := 0; iv < cfg.VelocitySteps; iv++ {
		vel := gridPoint(cfg.VelocityMin, cfg.VelocityMax, cfg.VelocitySteps, iv)

		for iw := 0; iw < cfg.FWHMSteps; iw++ {
			fwhm := gridPoint(cfg.FWHMMin, cfg.FWHMMax, cfg.FWHMSteps, iw)

			res, err := fitAt(seg, cfg, vel, fwhm)
			if err != nil {
				continue
			}

			chi := chiSquare(seg, res.Model)
			if chi < best.ChiSq {
				best = SearchResult{Velocity: vel, FWHM: fwhm, ChiSq: chi, Fit: res}
			}
		}
	}

	if math.IsInf(best.ChiSq, 1) {
		return SearchResult{}, ErrNoGridResult
	}

	return best, nil
}

// RefineConfig seeds the Levenberg-Marquardt polish of (velocity, fwhm).
type RefineConfig struct {
	RestWavelengths []float64
	Kind            profile.Kind
	VoigtGamma      float64

	Velocity float64 // initial guess, km/s
	FWHM     float64 // initial guess, must be positive

	// MaxIterations bounds the LM outer loop; 0 means 100.
	MaxIterations int
}

// Refine polishes a (velocity, fwhm) estimate by Levenberg-Marquardt on the
// noise-weighted residuals, with the line amplitudes re-solved linearly at
// every step. Typical use is seeding it with the GridSearch optimum.
func Refine(seg segment.Segment, cfg RefineConfig) (SearchResult, error) {
	if cfg.FWHM <= 0 {
		return SearchResult{}, fmt.Errorf("fit: refine seed: %w", profile.ErrInvalidWidth)
	}

	iters := cfg.MaxIterations
	if iters <= 0 {
		iters = 100
	}

	scfg := SearchConfig{
		RestWavelengths: cfg.RestWavelengths,
		Kind:            cfg.Kind,
		VoigtGamma:      cfg.VoigtGamma,
	}

	residuals := func(dst, p []float64) {
		res, err := fitAt(seg, scfg, p[0], math.Abs(p[1]))
		if err != nil {
			// An unsolvable point repels the optimizer instead of
			// aborting the whole minimization.
			for i := range dst {
				dst[i] = 1e6
			}

			return
		}

		for i := range dst {
			dst[i] = (res.Model[i] - seg.Flux[i]) / seg.Noise[i]
		}
	}

	jac := lm.NumJac{Func: residuals}

	prob := lm.LMProblem{
		Dim:        2,
		Size:       seg.Len(),
		Func:       residuals,
		Jac:        jac.Jac,
		InitParams: []float64{cfg.Velocity, cfg.FWHM},
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	out, err := lm.LM(prob, &lm.Settings{Iterations: iters, ObjectiveTol: 1e-16})
	if err != nil {
		return SearchResult{}, fmt.Errorf("fit: levenberg-marquardt: %w", err)
	}

	vel := out.X[0]
	fwhm := math.Abs(out.X[1])

	res, err := fitAt(seg, scfg, vel, fwhm)
	if err != nil {
		return SearchResult{}, fmt.Errorf("fit: refined point: %w", err)
	}

	return SearchResult{Velocity: vel, FWHM: fwhm, ChiSq: chiSquare(seg, res.Model), Fit: res}, nil
}

func fitAt(seg segment.Segment, cfg SearchConfig, vel, fwhm float64) (Result, error) {
	basis, err := model.Basis(seg.Wavelengths, model.Config{
		Velocity:        vel,
		RestWavelengths: cfg.RestWavelengths,
		FWHM:            fwhm,
		Kind:            cfg.Kind,
		VoigtGamma:      cfg.VoigtGamma,
	})
	if err != nil {
		return Result{}, err
	}

	return Solve(basis, seg.Flux, seg.Noise)
}

func chiSquare(seg segment.Segment, curve []float64) float64 {
	chi := 0.0

	for i, f := range seg.Flux {
		r := (f - curve[i]) / seg.Noise[i]
		chi += r * r
	}

	return chi
}

func gridPoint(lo, hi float64, steps, i int) float64 {
	if steps == 1 {
		return lo
	}

	return lo + (hi-lo)*float64(i)/float64(steps-1)
}
