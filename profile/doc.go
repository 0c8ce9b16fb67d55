// Package profile provides analytic emission-line shapes (Gaussian,
// Lorentzian, Voigt) in three forms: the point-sampled kernel, the definite
// integral between arbitrary bounds, and the pixel-averaged model used for
// fitting sampled spectra.
//
// Kernel conventions are fixed per shape and each Integrate* function is the
// exact antiderivative (or converged quadrature) of the matching kernel:
//
//   - Gaussian: peak-normalized, value 1 at the center, sigma = fwhm/2.355.
//     Its total area is sigma·sqrt(2π).
//   - Lorentzian: unit-area, gammaL = fwhm/2. The arctangent integral
//     saturates to exactly 1 over infinite bounds.
//   - Voigt: unit-area convolution of the two, evaluated through the
//     Faddeeva function; gamma = 0 collapses to the unit-area Gaussian.
//
// Pixel averaging matters physically: a line whose width is comparable to
// the pixel scale is systematically mis-estimated when the kernel is sampled
// at pixel centers instead of averaged over each pixel's finite span.
//
// # Usage
//
// Evaluate one line over a wavelength grid as fit-ready model values:
//
//	l := profile.Line{Kind: profile.KindGaussian, Center: 6562.8, FWHM: 3.2}
//	vals, _ := l.PixelIntegrated(wavelengths, 1, 0, 0)
package profile
