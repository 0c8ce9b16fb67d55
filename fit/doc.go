// Package fit solves for emission-line amplitudes on spectral segments.
//
// The central operation is a noise-weighted linear least-squares fit: model
// vectors from package model are stacked as design-matrix columns, rows are
// scaled by the reciprocal noise (inverse-variance weighting), and the
// coefficient vector is solved by SVD. When singular-value inspection finds
// the system rank deficient — typically perfectly blended lines yielding
// near-identical columns — the solve silently degrades to non-negative
// least squares, which is the documented contract rather than an error.
//
// SolveCoupled chains two such fits: line-amplitude ratios are measured on a
// primary spectrum under a non-negativity constraint, then frozen into a
// single template that is rescaled, with an independent continuum, on a
// secondary spectrum.
//
// GridSearch, Refine and EstimateVelocity wrap the linear solve to recover
// the nonlinear parameters (Doppler velocity, line width) that the linear
// stage takes as given.
package fit
