// Package catalog supplies the known near-infrared emission-line complexes
// per instrument disperser and observing mode.
//
// Each Group names a fitting window, a principal transition, and the
// ordered blend of hydrogen and helium lines inside it. Which groups apply
// depends on the disperser's wavelength coverage and on the observing mode;
// the selection is an explicit include table per (disperser, mode) rather
// than arithmetic on list positions, so the coverage rules read directly
// from the source.
//
// Rest wavelengths are vacuum values in Ångström. Window overlap between
// groups is not checked here; callers slicing segments own that concern.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownDisperser = errors.New("catalog: unknown disperser")
	ErrUnknownMode      = errors.New("catalog: unknown mode")
)

// Mode selects the observing-mode specific group set.
type Mode string

const (
	// ModeFS selects the fixed-slit group set.
	ModeFS Mode = "FS"

	// ModeMSA selects the multi-shutter-array group set, the default.
	ModeMSA Mode = "MSA"
)

// Line is a single catalog transition.
type Line struct {
	Species    string  // e.g. "H I", "He I"
	Wavelength float64 // rest wavelength, Angstrom
}

// Group is one fitting window holding a blend of lines.
type Group struct {
	// Label names the principal transition, e.g. "Pa beta".
	Label string

	// MinWavelength and MaxWavelength bound the fitting window;
	// MinWavelength < MaxWavelength always holds for catalog data.
	MinWavelength float64
	MaxWavelength float64

	// Lines are the blended components in catalog order.
	Lines []Line
}

// RestWavelengths returns the group's line centers in catalog order.
func (g Group) RestWavelengths() []float64 {
	out := make([]float64, len(g.Lines))
	for i, l := range g.Lines {
		out[i] = l.Wavelength
	}

	return out
}

// Groups returns the ordered line groups for a disperser and mode. The
// disperser is matched case-insensitively by its family substring, so
// "G140M" and "g140h" both select the G140 tables. An empty mode defaults
// to ModeMSA.
//
// extend additionally includes the short-wavelength groups reachable only
// through the F070LP filter and drops the groups beyond its red cutoff; it
// only affects the G140 family.
func Groups(disperser string, mode Mode, extend bool) ([]Group, error) {
	if mode == "" {
		mode = ModeMSA
	}

	if mode != ModeFS && mode != ModeMSA {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	family, err := familyOf(disperser)
	if err != nil {
		return nil, err
	}

	labels := includes[family][mode]
	if extend && family == familyG140 {
		labels = extendIncludes[mode]
	}

	pool := groupPools[family]
	out := make([]Group, 0, len(labels))

	for _, label := range labels {
		g, ok := pool[label]
		if !ok {
			return nil, fmt.Errorf("catalog: include table names missing group %q for %s/%s", label, family, mode)
		}

		out = append(out, g)
	}

	return out, nil
}

const (
	familyG140 = "G140"
	familyG235 = "G235"
	familyG395 = "G395"
)

func familyOf(disperser string) (string, error) {
	d := strings.ToUpper(disperser)

	for _, f := range []string{familyG140, familyG235, familyG395} {
		if strings.Contains(d, f) {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDisperser, disperser)
}

// includes maps each disperser family and mode to its ordered group labels.
var includes = map[string]map[Mode][]string{
	familyG140: {
		ModeFS:  {"Pa delta", "He I 10830", "Pa gamma", "Pa beta", "Br zeta", "Br epsilon"},
		ModeMSA: {"Pa delta", "Pa gamma", "Pa beta", "Br zeta", "Br epsilon"},
	},
	familyG235: {
		ModeFS:  {"Br zeta", "Pa alpha", "He I 20580", "Br gamma", "Br beta"},
		ModeMSA: {"Br zeta", "Pa alpha", "Br gamma", "Br beta", "Pf eta"},
	},
	familyG395: {
		ModeFS:  {"Pf eta", "Br alpha", "He I 42950", "Hu zeta"},
		ModeMSA: {"Pf eta", "He I 42950", "Hu zeta"},
	},
}

// extendIncludes lists the G140 groups when the F070LP filter extends the
// blue coverage: the Paschen eta/zeta windows open up and everything beyond
// the filter's ~12700 A red cutoff drops out.
var extendIncludes = map[Mode][]string{
	ModeFS:  {"Pa eta", "Pa zeta", "Pa delta", "He I 10830", "Pa gamma"},
	ModeMSA: {"Pa eta", "Pa zeta", "Pa delta", "Pa gamma"},
}

var groupPools = map[string]map[string]Group{
	familyG140: byLabel(g140Groups),
	familyG235: byLabel(g235Groups),
	familyG395: byLabel(g395Groups),
}

func byLabel(groups []Group) map[string]Group {
	m := make(map[string]Group, len(groups))
	for _, g := range groups {
		m[g.Label] = g
	}

	return m
}
