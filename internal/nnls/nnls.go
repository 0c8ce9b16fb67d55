// Package nnls solves dense non-negative least-squares problems with the
// Lawson-Hanson active-set method: minimize ||A·x - b|| subject to x >= 0.
package nnls

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimensionMismatch = errors.New("nnls: column lengths and rhs length differ")
	ErrNoColumns         = errors.New("nnls: no columns given")
	ErrIterationLimit    = errors.New("nnls: iteration limit reached")
	ErrSingular          = errors.New("nnls: singular passive-set subproblem")
)

// Solve minimizes ||A·x - b|| over x >= 0, where A is given as its column
// vectors. Duplicate or linearly dependent columns are handled: at the
// optimum every coefficient is non-negative and the redundant column simply
// stays out of the passive set.
func Solve(cols [][]float64, b []float64) ([]float64, error) {
	m := len(cols)
	if m == 0 {
		return nil, ErrNoColumns
	}

	n := len(b)
	for _, c := range cols {
		if len(c) != n {
			return nil, ErrDimensionMismatch
		}
	}

	x := make([]float64, m)
	passive := make([]bool, m)
	resid := make([]float64, n)
	copy(resid, b)

	w := make([]float64, m)
	tol := gradientTolerance(cols, b)

	// Outer loop: move the most violated active constraint into the passive
	// set, then restore feasibility of the passive-set solution.
	maxOuter := 3 * m
	for outer := 0; outer < maxOuter; outer++ {
		// Gradient w = Aᵀ·resid over active columns.
		best := -1
		bestW := tol

		for j := 0; j < m; j++ {
			if passive[j] {
				continue
			}

			w[j] = dot(cols[j], resid)
			if w[j] > bestW {
				bestW = w[j]
				best = j
			}
		}

		if best < 0 {
			return x, nil // KKT satisfied
		}

		passive[best] = true

		// Inner loop: solve unconstrained on the passive set; step back along
		// the segment to the last feasible point if any coefficient went
		// negative, dropping the blocking columns.
		for inner := 0; inner < maxOuter; inner++ {
			z, idx, err := solvePassive(cols, b, passive)
			if err != nil {
				return nil, err
			}

			alpha := 1.0
			blocked := false

			for k, j := range idx {
				if z[k] > 0 {
					continue
				}

				blocked = true
				step := x[j] / (x[j] - z[k])

				if step < alpha {
					alpha = step
				}
			}

			if !blocked {
				for i := range x {
					x[i] = 0
				}

				for k, j := range idx {
					x[j] = z[k]
				}

				break
			}

			for k, j := range idx {
				x[j] += alpha * (z[k] - x[j])
				if x[j] <= 0 {
					x[j] = 0
					passive[j] = false
				}
			}
		}

		// Refresh the residual for the next gradient evaluation.
		copy(resid, b)

		for j := 0; j < m; j++ {
			if x[j] != 0 {
				axpy(resid, cols[j], -x[j])
			}
		}
	}

	return nil, ErrIterationLimit
}

// solvePassive solves the unconstrained least-squares subproblem restricted
// to the passive columns, returning the sub-solution and the column indices
// it refers to.
func solvePassive(cols [][]float64, b []float64, passive []bool) ([]float64, []int, error) {
	var idx []int

	for j, p := range passive {
		if p {
			idx = append(idx, j)
		}
	}

	n := len(b)
	sub := mat.NewDense(n, len(idx), nil)

	for k, j := range idx {
		sub.SetCol(k, cols[j])
	}

	var sol mat.VecDense

	err := sol.SolveVec(sub, mat.NewVecDense(n, b))
	if err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, nil, err
		}
	}

	z := make([]float64, len(idx))

	for k := range idx {
		z[k] = sol.AtVec(k)
		if math.IsNaN(z[k]) || math.IsInf(z[k], 0) {
			return nil, nil, ErrSingular
		}
	}

	return z, idx, nil
}

// gradientTolerance scales the KKT stopping threshold to the problem size.
func gradientTolerance(cols [][]float64, b []float64) float64 {
	norm := 0.0

	for _, c := range cols {
		for _, v := range c {
			norm = math.Max(norm, math.Abs(v))
		}
	}

	bmax := 0.0
	for _, v := range b {
		bmax = math.Max(bmax, math.Abs(v))
	}

	return 100 * float64(len(b)) * 1e-16 * math.Max(norm*bmax, 1)
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

func axpy(dst, v []float64, scale float64) {
	for i := range dst {
		dst[i] += scale * v[i]
	}
}
