package strategy

import (
	"slices"

	"go.trai.ch/zerr"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
)

// Override is one author-supplied phase replacement. Strategy is the
// build system it applies to; it may be left empty in the shorthand
// form and is filled in by ResolveUntagged.
type Override struct {
	Strategy string
	Phase    string
	Impl     buildsys.PhaseFunc
}

// Table collects a package's phase overrides. At most one override may
// exist per (build system, phase) pair.
type Table struct {
	entries []Override
}

// Add appends an override. A second override for the same (build
// system, phase) pair is a definition error.
func (t *Table) Add(o Override) error {
	if o.Strategy != "" {
		for _, e := range t.entries {
			if e.Strategy == o.Strategy && e.Phase == o.Phase {
				err := zerr.With(ErrConflictingOverride, "strategy", o.Strategy)
				return zerr.With(err, "phase", o.Phase)
			}
		}
	}
	t.entries = append(t.entries, o)
	return nil
}

// ResolveUntagged assigns a build system to every override that names
// none. The shorthand is only well defined when the package declares
// exactly one build system with no condition; anything else requires the
// author to tag the override.
func (t *Table) ResolveUntagged(reg *Registry) error {
	sole, ok := soleUnconditioned(reg)
	for i, e := range t.entries {
		if e.Strategy != "" {
			continue
		}
		if !ok {
			err := zerr.With(ErrAmbiguousOverrideTarget, "phase", e.Phase)
			return zerr.With(err, "declared", reg.Names())
		}
		t.entries[i].Strategy = sole
	}
	return t.verify()
}

func soleUnconditioned(reg *Registry) (string, bool) {
	if reg.Len() != 1 {
		return "", false
	}
	d := reg.Declarations()[0]
	if d.Condition != "" {
		return "", false
	}
	return d.Name, true
}

// verify re-checks pair uniqueness once every entry has a build system
// assigned. Two shorthand overrides for the same phase land here.
func (t *Table) verify() error {
	type key struct{ strategy, phase string }
	seen := make(map[key]bool, len(t.entries))
	for _, e := range t.entries {
		k := key{e.Strategy, e.Phase}
		if seen[k] {
			err := zerr.With(ErrConflictingOverride, "strategy", e.Strategy)
			return zerr.With(err, "phase", e.Phase)
		}
		seen[k] = true
	}
	return nil
}

// For returns the overrides that apply to one build system, keyed by
// phase name. Call only after ResolveUntagged.
func (t *Table) For(strategy string) map[string]buildsys.PhaseFunc {
	m := make(map[string]buildsys.PhaseFunc)
	for _, e := range t.entries {
		if e.Strategy == strategy {
			m[e.Phase] = e.Impl
		}
	}
	return m
}

// Entries returns all overrides in declaration order.
func (t *Table) Entries() []Override {
	return slices.Clone(t.entries)
}

// Len returns the number of overrides.
func (t *Table) Len() int {
	return len(t.entries)
}
