package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/astrokit/specfit/internal/nnls"
)

var (
	ErrNoVectors       = errors.New("fit: no model vectors given")
	ErrLengthMismatch  = errors.New("fit: model vector, flux and noise lengths differ")
	ErrUnderdetermined = errors.New("fit: fewer samples than model components")
	ErrSingular        = errors.New("fit: system unsolvable by least squares and nnls")
)

// Method identifies which solver produced a result.
type Method int

const (
	MethodLeastSquares Method = iota + 1
	MethodNNLS
)

func (m Method) String() string {
	switch m {
	case MethodLeastSquares:
		return "least-squares"
	case MethodNNLS:
		return "nnls"
	default:
		return "unknown"
	}
}

// Result holds one solved fit.
type Result struct {
	// Model is the composite model curve reconstructed without weighting,
	// same length as the fitted segment.
	Model []float64

	// Coeffs are the solved amplitudes, one per model vector in input
	// order (line amplitudes first, then constant and ramp).
	Coeffs []float64

	// Method reports which solver succeeded.
	Method Method
}

// Solve fits the model vectors to flux by inverse-variance weighted least
// squares: both sides are scaled by 1/noise per row, minimizing
// chi² = Σ (flux_i - Σ_j A_ij·c_j)² / noise_i².
//
// Rank deficiency is detected from the singular values and recovered by a
// non-negative least-squares solve of the same weighted system; this
// degrade is silent. Noise must be strictly positive (see
// segment.Validate); zero noise is a caller error with undefined results.
func Solve(vectors [][]float64, flux, noise []float64) (Result, error) {
	return solveWeighted(vectors, flux, noise, false)
}

func solveWeighted(vectors [][]float64, flux, noise []float64, forceNNLS bool) (Result, error) {
	m := len(vectors)
	if m == 0 {
		return Result{}, ErrNoVectors
	}

	n := len(flux)
	if len(noise) != n {
		return Result{}, ErrLengthMismatch
	}

	for _, v := range vectors {
		if len(v) != n {
			return Result{}, ErrLengthMismatch
		}
	}

	if n < m {
		return Result{}, fmt.Errorf("%w: %d samples for %d components", ErrUnderdetermined, n, m)
	}

	// sqrt of the inverse variance; multiplying rows by it turns the
	// chi-square problem into ordinary least squares.
	sqrtW := make([]float64, n)
	for i, s := range noise {
		sqrtW[i] = 1 / s
	}

	weighted := make([][]float64, m)
	buf := make([]float64, n)

	for j, v := range vectors {
		wv := make([]float64, n)
		vecmath.MulBlock(wv, v, sqrtW)
		weighted[j] = wv
	}

	vecmath.MulBlock(buf, flux, sqrtW)

	coeffs, method, err := solveColumns(weighted, buf, forceNNLS)
	if err != nil {
		return Result{}, err
	}

	curve := make([]float64, n)

	for j, v := range vectors {
		c := coeffs[j]
		if c == 0 {
			continue
		}

		for i := range curve {
			curve[i] += c * v[i]
		}
	}

	return Result{Model: curve, Coeffs: coeffs, Method: method}, nil
}

// solveColumns solves the already-weighted system, choosing between the SVD
// least-squares path and the non-negative fallback by inspecting the
// singular values instead of catching a failed factorization.
func solveColumns(cols [][]float64, rhs []float64, forceNNLS bool) ([]float64, Method, error) {
	if !forceNNLS {
		coeffs, ok := solveSVD(cols, rhs)
		if ok {
			return coeffs, MethodLeastSquares, nil
		}
	}

	coeffs, err := nnls.Solve(cols, rhs)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	return coeffs, MethodNNLS, nil
}

// solveSVD computes the least-squares solution through a thin SVD and
// reports false when the design matrix is rank deficient.
func solveSVD(cols [][]float64, rhs []float64) ([]float64, bool) {
	n := len(rhs)
	m := len(cols)

	a := mat.NewDense(n, m, nil)
	for j, c := range cols {
		a.SetCol(j, c)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, false
	}

	s := svd.Values(nil)
	if len(s) == 0 || s[0] == 0 {
		return nil, false
	}

	tol := float64(n) * 1e-14 * s[0]
	for _, v := range s {
		if v <= tol {
			return nil, false
		}
	}

	var u, v mat.Dense

	svd.UTo(&u)
	svd.VTo(&v)

	coeffs := make([]float64, m)

	for k := 0; k < m; k++ {
		proj := 0.0
		for i := 0; i < n; i++ {
			proj += u.At(i, k) * rhs[i]
		}

		proj /= s[k]

		for j := 0; j < m; j++ {
			coeffs[j] += v.At(j, k) * proj
		}
	}

	for _, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, false
		}
	}

	return coeffs, true
}
