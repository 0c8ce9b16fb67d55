package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/astrokit/specfit/model"
	"github.com/astrokit/specfit/profile"
	"github.com/astrokit/specfit/segment"
)

func grid(lo, hi float64, n int) []float64 {
	x := make([]float64, n)
	d := (hi - lo) / float64(n-1)

	for i := range x {
		x[i] = lo + float64(i)*d
	}

	return x
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}

// syntheticSegment builds a noiseless spectrum from known coefficients.
func syntheticSegment(t *testing.T, x []float64, cfg model.Config, coeffs []float64) (segment.Segment, [][]float64) {
	t.Helper()

	basis, err := model.Basis(x, cfg)
	if err != nil {
		t.Fatalf("Basis: %v", err)
	}

	if len(coeffs) != len(basis) {
		t.Fatalf("want %d coefficients, got %d", len(basis), len(coeffs))
	}

	flux := make([]float64, len(x))
	for j, v := range basis {
		for i := range flux {
			flux[i] += coeffs[j] * v[i]
		}
	}

	return segment.Segment{Wavelengths: x, Flux: flux, Noise: ones(len(x))}, basis
}

func TestSolveRecoversKnownCoefficients(t *testing.T) {
	x := grid(10020, 10100, 161)
	cfg := model.Config{
		Velocity:        120,
		FWHM:            3,
		RestWavelengths: []float64{10030.5, 10052.1, 10074.8},
	}
	want := []float64{4.5, 2.0, 1.25, 0.8, 0.01}

	seg, _ := syntheticSegment(t, x, cfg, want)

	basis, err := model.Basis(x, cfg)
	if err != nil {
		t.Fatalf("Basis: %v", err)
	}

	res, err := Solve(basis, seg.Flux, seg.Noise)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if res.Method != MethodLeastSquares {
		t.Fatalf("method = %v, want least-squares", res.Method)
	}

	for j := range want {
		if math.Abs(res.Coeffs[j]-want[j]) > 1e-8 {
			t.Fatalf("coefficient %d = %v, want %v", j, res.Coeffs[j], want[j])
		}
	}

	for i := range seg.Flux {
		if math.Abs(res.Model[i]-seg.Flux[i]) > 1e-8 {
			t.Fatalf("model curve deviates at %d: %v vs %v", i, res.Model[i], seg.Flux[i])
		}
	}
}

func TestSolveWeightingDownweightsNoisySamples(t *testing.T) {
	// A constant-only fit of corrupted data must follow the low-noise half.
	n := 40
	flux := make([]float64, n)
	noise := make([]float64, n)

	for i := 0; i < n; i++ {
		if i < n/2 {
			flux[i] = 5
			noise[i] = 0.01
		} else {
			flux[i] = 50
			noise[i] = 100
		}
	}

	res, err := Solve([][]float64{ones(n)}, flux, noise)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if math.Abs(res.Coeffs[0]-5) > 1e-3 {
		t.Fatalf("weighted constant = %v, want ~5", res.Coeffs[0])
	}
}

func TestSolveDegenerateColumnsFallsBackToNNLS(t *testing.T) {
	// Two numerically identical line vectors make the design matrix rank
	// deficient; the solve must not fail and must return non-negative
	// coefficients.
	x := grid(0, 100, 101)
	l := profile.Line{Kind: profile.KindGaussian, Center: 50, FWHM: 5}

	v, err := l.PixelIntegrated(x, 1, 0, 0)
	if err != nil {
		t.Fatalf("PixelIntegrated: %v", err)
	}

	dup := append([]float64(nil), v...)

	flux := make([]float64, len(x))
	for i := range flux {
		flux[i] = 3*v[i] + 2
	}

	res, err := Solve([][]float64{v, dup, ones(len(x))}, flux, ones(len(x)))
	if err != nil {
		t.Fatalf("Solve with degenerate columns: %v", err)
	}

	if res.Method != MethodNNLS {
		t.Fatalf("method = %v, want nnls", res.Method)
	}

	total := 0.0

	for j, c := range res.Coeffs {
		if c < 0 {
			t.Fatalf("coefficient %d = %v, want >= 0", j, c)
		}

		if j < 2 {
			total += c
		}
	}

	if math.Abs(total-3) > 1e-8 {
		t.Fatalf("degenerate pair total = %v, want 3", total)
	}
}

func TestSolveErrors(t *testing.T) {
	if _, err := Solve(nil, []float64{1}, []float64{1}); !errors.Is(err, ErrNoVectors) {
		t.Fatalf("expected ErrNoVectors, got %v", err)
	}

	_, err := Solve([][]float64{{1, 2}}, []float64{1}, []float64{1})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}

	// 2 samples cannot constrain 3 components.
	_, err = Solve([][]float64{{1, 2}, {2, 1}, {1, 1}}, []float64{1, 2}, []float64{1, 1})
	if !errors.Is(err, ErrUnderdetermined) {
		t.Fatalf("expected ErrUnderdetermined, got %v", err)
	}
}

func TestSolveCoupledIdenticalSpectra(t *testing.T) {
	x := grid(12760, 12885, 251)
	cfg := model.Config{
		Velocity:        0,
		FWHM:            3,
		RestWavelengths: []float64{12788.4, 12821.6, 12849.5},
	}
	coeffs := []float64{2.5, 6.0, 1.5, 4.0, 0.02}

	seg, _ := syntheticSegment(t, x, cfg, coeffs)

	res, err := SolveCoupled(seg, seg, CoupledConfig{
		RestWavelengths: cfg.RestWavelengths,
		Velocity1:       0,
		Velocity2:       0,
		FWHM1:           3,
		FWHM2:           3,
	})
	if err != nil {
		t.Fatalf("SolveCoupled: %v", err)
	}

	if len(res.Secondary.Coeffs) != 3 {
		t.Fatalf("secondary coefficient count = %d, want 3", len(res.Secondary.Coeffs))
	}

	if math.Abs(res.Secondary.Coeffs[0]-1) > 1e-6 {
		t.Fatalf("template scale = %v, want 1", res.Secondary.Coeffs[0])
	}

	if math.Abs(res.Secondary.Coeffs[1]-res.Primary.Coeffs[3]) > 1e-6 {
		t.Fatalf("secondary constant = %v, want %v", res.Secondary.Coeffs[1], res.Primary.Coeffs[3])
	}

	if math.Abs(res.Secondary.Coeffs[2]-res.Primary.Coeffs[4]) > 1e-6 {
		t.Fatalf("secondary ramp = %v, want %v", res.Secondary.Coeffs[2], res.Primary.Coeffs[4])
	}

	for i := range seg.Flux {
		if math.Abs(res.Secondary.Model[i]-seg.Flux[i]) > 1e-6 {
			t.Fatalf("secondary model deviates at %d", i)
		}
	}
}

func TestSolveCoupledScaledSecondary(t *testing.T) {
	x := grid(12760, 12885, 251)
	cfg := model.Config{
		FWHM:            3,
		RestWavelengths: []float64{12788.4, 12821.6},
	}

	seg1, _ := syntheticSegment(t, x, cfg, []float64{2, 5, 1, 0.01})

	// Secondary: same ratios, doubled line flux, different continuum.
	seg2, _ := syntheticSegment(t, x, cfg, []float64{4, 10, 7, 0.05})

	res, err := SolveCoupled(seg1, seg2, CoupledConfig{
		RestWavelengths: cfg.RestWavelengths,
		FWHM1:           3,
		FWHM2:           3,
	})
	if err != nil {
		t.Fatalf("SolveCoupled: %v", err)
	}

	if math.Abs(res.Secondary.Coeffs[0]-2) > 1e-6 {
		t.Fatalf("template scale = %v, want 2", res.Secondary.Coeffs[0])
	}

	if math.Abs(res.Secondary.Coeffs[1]-7) > 1e-6 {
		t.Fatalf("secondary constant = %v, want 7", res.Secondary.Coeffs[1])
	}
}

func TestGridSearchFindsInjectedParameters(t *testing.T) {
	const trueVel, trueFWHM = 150.0, 4.0

	x := grid(10020, 10100, 161)
	cfg := model.Config{
		Velocity:        trueVel,
		FWHM:            trueFWHM,
		RestWavelengths: []float64{10030.5, 10052.1},
	}

	seg, _ := syntheticSegment(t, x, cfg, []float64{3, 5, 1, 0})

	best, err := GridSearch(seg, SearchConfig{
		RestWavelengths: cfg.RestWavelengths,
		VelocityMin:     -300,
		VelocityMax:     300,
		VelocitySteps:   25,
		FWHMMin:         2,
		FWHMMax:         6,
		FWHMSteps:       9,
	})
	if err != nil {
		t.Fatalf("GridSearch: %v", err)
	}

	// The grid contains the exact point (-300 + 18*25 = 150, 2 + 4*0.5 = 4).
	if math.Abs(best.Velocity-trueVel) > 1e-9 || math.Abs(best.FWHM-trueFWHM) > 1e-9 {
		t.Fatalf("grid optimum (%v, %v), want (%v, %v)", best.Velocity, best.FWHM, trueVel, trueFWHM)
	}

	if best.ChiSq > 1e-10 {
		t.Fatalf("chi-square at exact point = %v, want ~0", best.ChiSq)
	}
}

func TestRefinePolishesOffsetSeed(t *testing.T) {
	const trueVel, trueFWHM = 80.0, 3.5

	x := grid(10020, 10100, 161)
	cfg := model.Config{
		Velocity:        trueVel,
		FWHM:            trueFWHM,
		RestWavelengths: []float64{10030.5, 10052.1},
	}

	seg, _ := syntheticSegment(t, x, cfg, []float64{3, 5, 1, 0})

	out, err := Refine(seg, RefineConfig{
		RestWavelengths: cfg.RestWavelengths,
		Velocity:        40,
		FWHM:            2.5,
	})
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}

	if math.Abs(out.Velocity-trueVel) > 1 {
		t.Fatalf("refined velocity = %v, want ~%v", out.Velocity, trueVel)
	}

	if math.Abs(out.FWHM-trueFWHM) > 0.05 {
		t.Fatalf("refined fwhm = %v, want ~%v", out.FWHM, trueFWHM)
	}
}

func TestRefineRejectsNonPositiveSeed(t *testing.T) {
	seg := segment.Segment{Wavelengths: grid(0, 10, 11), Flux: ones(11), Noise: ones(11)}

	_, err := Refine(seg, RefineConfig{RestWavelengths: []float64{5}, Velocity: 0, FWHM: 0})
	if !errors.Is(err, profile.ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
}

func TestEstimateVelocityRecoversShift(t *testing.T) {
	const trueVel = 400.0

	x := grid(12700, 12950, 1001) // 0.25 A pixels, ~5.9 km/s per pixel
	cfg := model.Config{
		Velocity:        trueVel,
		FWHM:            3,
		RestWavelengths: []float64{12788.4, 12821.6},
	}

	seg, _ := syntheticSegment(t, x, cfg, []float64{3, 6, 0.5, 0})

	got, err := EstimateVelocity(seg, VelocityConfig{
		RestWavelengths: cfg.RestWavelengths,
		FWHM:            3,
		MaxShift:        2000,
	})
	if err != nil {
		t.Fatalf("EstimateVelocity: %v", err)
	}

	if math.Abs(got-trueVel) > 10 {
		t.Fatalf("estimated velocity = %v, want ~%v", got, trueVel)
	}
}

func TestEstimateVelocityShortSegment(t *testing.T) {
	seg := segment.Segment{Wavelengths: []float64{1, 2}, Flux: []float64{1, 1}, Noise: []float64{1, 1}}

	_, err := EstimateVelocity(seg, VelocityConfig{RestWavelengths: []float64{1.5}, FWHM: 1})
	if !errors.Is(err, ErrShortSegment) {
		t.Fatalf("expected ErrShortSegment, got %v", err)
	}
}
