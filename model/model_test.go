package model

import (
	"errors"
	"math"
	"testing"

	"github.com/astrokit/specfit/profile"
)

func grid(lo, hi float64, n int) []float64 {
	x := make([]float64, n)
	d := (hi - lo) / float64(n-1)

	for i := range x {
		x[i] = lo + float64(i)*d
	}

	return x
}

func TestBasisShape(t *testing.T) {
	x := grid(10020, 10100, 81)

	vs, err := Basis(x, Config{
		Velocity:        0,
		FWHM:            3,
		RestWavelengths: []float64{10030.5, 10052.1, 10074.8},
	})
	if err != nil {
		t.Fatalf("Basis: %v", err)
	}

	if len(vs) != 5 {
		t.Fatalf("expected 3 lines + 2 trend vectors, got %d", len(vs))
	}

	for i, v := range vs {
		if len(v) != len(x) {
			t.Fatalf("vector %d has length %d, want %d", i, len(v), len(x))
		}
	}

	constant := vs[3]
	ramp := vs[4]

	for i := range x {
		if constant[i] != 1 {
			t.Fatalf("constant vector sample %d = %v", i, constant[i])
		}

		if ramp[i] != float64(i) {
			t.Fatalf("ramp vector sample %d = %v", i, ramp[i])
		}
	}
}

func TestBasisDopplerShift(t *testing.T) {
	const rest = 10052.128
	const vel = 500.0 // km/s

	x := grid(rest-20, rest+40, 601)

	vs, err := Basis(x, Config{
		Velocity:        vel,
		FWHM:            2,
		RestWavelengths: []float64{rest},
	})
	if err != nil {
		t.Fatalf("Basis: %v", err)
	}

	peakIdx := 0
	for i, v := range vs[0] {
		if v > vs[0][peakIdx] {
			peakIdx = i
		}
	}

	wantMu := rest * (1 + vel/LightSpeed)
	d := x[1] - x[0]

	if math.Abs(x[peakIdx]-wantMu) > d {
		t.Fatalf("line peak at %v, want near %v", x[peakIdx], wantMu)
	}
}

func TestBasisPerLineWidths(t *testing.T) {
	x := grid(0, 100, 201)
	cfg := Config{
		RestWavelengths: []float64{30, 70},
		FWHMs:           []float64{2, 10},
	}

	vs, err := Basis(x, cfg)
	if err != nil {
		t.Fatalf("Basis: %v", err)
	}

	// The broader line spreads the same peak-normalized kernel over more
	// pixels, so its vector sums larger.
	sum := func(v []float64) float64 {
		total := 0.0
		for _, e := range v {
			total += e
		}

		return total
	}

	if sum(vs[1]) <= sum(vs[0]) {
		t.Fatalf("broad line sum %v not larger than narrow line sum %v", sum(vs[1]), sum(vs[0]))
	}
}

func TestBasisErrors(t *testing.T) {
	x := grid(0, 10, 11)

	if _, err := Basis(x, Config{FWHM: 1}); !errors.Is(err, ErrNoLines) {
		t.Fatalf("expected ErrNoLines, got %v", err)
	}

	_, err := Basis(x, Config{
		RestWavelengths: []float64{1, 2},
		FWHMs:           []float64{1},
	})
	if !errors.Is(err, ErrFWHMCount) {
		t.Fatalf("expected ErrFWHMCount, got %v", err)
	}

	_, err = Basis(x, Config{
		RestWavelengths: []float64{5},
		FWHM:            -1,
	})
	if !errors.Is(err, profile.ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
}

func TestBasisDefaultsToGaussian(t *testing.T) {
	x := grid(0, 20, 101)

	vs, err := Basis(x, Config{RestWavelengths: []float64{10}, FWHM: 2})
	if err != nil {
		t.Fatalf("Basis: %v", err)
	}

	l := profile.Line{Kind: profile.KindGaussian, Center: 10, FWHM: 2}

	want, err := l.PixelIntegrated(x, 1, 0, 0)
	if err != nil {
		t.Fatalf("PixelIntegrated: %v", err)
	}

	for i := range want {
		if math.Abs(vs[0][i]-want[i]) > 1e-14 {
			t.Fatalf("default kind vector differs at %d: %v vs %v", i, vs[0][i], want[i])
		}
	}
}
