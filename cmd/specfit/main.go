// Command specfit fits emission-line groups in a 1-D spectrum.
//
// Usage:
//
//	specfit [flags] spectrum.csv
//
// The spectrum file is CSV with three columns per row: wavelength
// (Ångström), flux, and noise (1-sigma). A header row is skipped when its
// first field is not numeric.
//
// Examples:
//
//	specfit -disperser g140m spectrum.csv
//	specfit -disperser g235h -mode FS -velocity 250 -fwhm 4 spectrum.csv
//	specfit -disperser g140m -extend -refine -plot out/ spectrum.csv
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/astrokit/specfit/catalog"
	"github.com/astrokit/specfit/fit"
	"github.com/astrokit/specfit/model"
	"github.com/astrokit/specfit/profile"
	"github.com/astrokit/specfit/render"
	"github.com/astrokit/specfit/segment"
)

func main() {
	disperser := flag.String("disperser", "", "disperser name, e.g. g140m, g235h, g395m")
	mode := flag.String("mode", "MSA", "observing mode: FS or MSA")
	extend := flag.Bool("extend", false, "use the extended blue coverage (G140 with F070LP)")
	velocity := flag.Float64("velocity", 0, "radial velocity in km/s")
	fwhm := flag.Float64("fwhm", 3, "line FWHM in Angstrom")
	kind := flag.String("kind", "gaussian", "line shape: gaussian, lorentzian, or voigt")
	gamma := flag.Float64("gamma", 0, "Lorentzian half-width for voigt lines, Angstrom")
	refine := flag.Bool("refine", false, "refine velocity and FWHM per group before the final solve")
	plotDir := flag.String("plot", "", "directory for per-group overlay plots; empty disables plotting")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: specfit [flags] spectrum.csv\n\n")
		fmt.Fprintf(os.Stderr, "Fits known emission-line groups in a 1-D spectrum.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || *disperser == "" {
		flag.Usage()
		os.Exit(2)
	}

	shape, err := profile.ParseKind(*kind)
	if err != nil {
		fatal(err)
	}

	groups, err := catalog.Groups(*disperser, catalog.Mode(strings.ToUpper(*mode)), *extend)
	if err != nil {
		fatal(err)
	}

	wavelengths, flux, noise, err := readSpectrum(flag.Arg(0))
	if err != nil {
		fatal(err)
	}

	if *plotDir != "" {
		if err := os.MkdirAll(*plotDir, 0o755); err != nil {
			fatal(err)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "group\tlines\tvelocity\tfwhm\tmethod\tamplitudes")

	for _, g := range groups {
		if err := fitGroup(w, g, wavelengths, flux, noise, groupParams{
			velocity: *velocity,
			fwhm:     *fwhm,
			kind:     shape,
			gamma:    *gamma,
			refine:   *refine,
			plotDir:  *plotDir,
		}); err != nil {
			fmt.Fprintf(w, "%s\t%d\t-\t-\tskipped: %v\t\n", g.Label, len(g.Lines), err)
		}
	}

	w.Flush()
}

type groupParams struct {
	velocity float64
	fwhm     float64
	kind     profile.Kind
	gamma    float64
	refine   bool
	plotDir  string
}

func fitGroup(w io.Writer, g catalog.Group, wavelengths, flux, noise []float64, p groupParams) error {
	seg := segment.Extract(wavelengths, flux, noise, g.MinWavelength, g.MaxWavelength)
	if seg.Len() < len(g.Lines)+2 {
		return fmt.Errorf("window [%g, %g] holds %d samples, need at least %d",
			g.MinWavelength, g.MaxWavelength, seg.Len(), len(g.Lines)+2)
	}

	cfg := model.Config{
		Velocity:        p.velocity,
		RestWavelengths: g.RestWavelengths(),
		FWHM:            p.fwhm,
		Kind:            p.kind,
		VoigtGamma:      p.gamma,
	}

	if p.refine {
		ref, err := fit.Refine(seg, fit.RefineConfig{
			RestWavelengths: cfg.RestWavelengths,
			Kind:            cfg.Kind,
			VoigtGamma:      cfg.VoigtGamma,
			Velocity:        cfg.Velocity,
			FWHM:            cfg.FWHM,
		})
		if err != nil {
			return err
		}

		cfg.Velocity = ref.Velocity
		cfg.FWHM = ref.FWHM
	}

	basis, err := model.Basis(seg.Wavelengths, cfg)
	if err != nil {
		return err
	}

	res, err := fit.Solve(basis, seg.Flux, seg.Noise)
	if err != nil {
		return err
	}

	amps := make([]string, len(g.Lines))
	for i := range amps {
		amps[i] = strconv.FormatFloat(res.Coeffs[i], 'g', 6, 64)
	}

	fmt.Fprintf(w, "%s\t%d\t%.1f\t%.2f\t%s\t%s\n",
		g.Label, len(g.Lines), cfg.Velocity, cfg.FWHM, res.Method, strings.Join(amps, " "))

	if p.plotDir != "" {
		name := strings.ReplaceAll(strings.ToLower(g.Label), " ", "-") + ".png"
		path := filepath.Join(p.plotDir, name)

		if err := render.Overlay(seg, res.Model, render.Config{Title: g.Label}, path); err != nil {
			return err
		}
	}

	return nil
}

// readSpectrum loads a three-column CSV of wavelength, flux, and noise.
func readSpectrum(path string) (wavelengths, flux, noise []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comment = '#'

	line := 0

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, nil, nil, err
		}

		line++

		if len(rec) < 3 {
			return nil, nil, nil, fmt.Errorf("%s: row %d has %d columns, want 3", path, line, len(rec))
		}

		wl, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			if line == 1 {
				continue // header row
			}

			return nil, nil, nil, fmt.Errorf("%s: row %d: %w", path, line, err)
		}

		fl, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s: row %d: %w", path, line, err)
		}

		ns, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s: row %d: %w", path, line, err)
		}

		wavelengths = append(wavelengths, wl)
		flux = append(flux, fl)
		noise = append(noise, ns)
	}

	if len(wavelengths) == 0 {
		return nil, nil, nil, fmt.Errorf("%s: no samples", path)
	}

	return wavelengths, flux, noise, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "specfit: %v\n", err)
	os.Exit(1)
}
