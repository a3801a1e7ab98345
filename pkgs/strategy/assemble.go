package strategy

import (
	"go.trai.ch/zerr"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
	"github.com/kilnpkg/kiln/pkgs/conf"
)

// Assemble materializes the builder for a chosen declaration: the
// kind's phases in canonical order, with the package's overrides for
// that build system substituted in. Phase order comes from the kind
// alone; overrides replace implementations, never reorder.
//
// Compile already rejects conflicting and misnamed overrides at
// definition time; Assemble repeats both checks so it stands alone.
func Assemble(pkg string, decl Declaration, kind *buildsys.Kind, tab *Table, c conf.Resolved) (*Builder, error) {
	if err := checkOverrides(decl.Name, kind, tab); err != nil {
		return nil, zerr.With(err, "package", pkg)
	}

	overrides := tab.For(decl.Name)
	phases := make([]Phase, 0, len(kind.Phases))
	for _, spec := range kind.Phases {
		impl, overridden := overrides[spec.Name]
		if !overridden {
			impl = spec.Default
		}
		phases = append(phases, Phase{
			Name:       spec.Name,
			Impl:       impl,
			Overridden: overridden,
		})
	}

	return &Builder{
		Package:  pkg,
		Strategy: decl.Name,
		Config:   c,
		Phases:   phases,
	}, nil
}

// checkOverrides rejects duplicate (build system, phase) pairs and
// overrides naming phases the kind does not have.
func checkOverrides(strategy string, kind *buildsys.Kind, tab *Table) error {
	seen := make(map[string]bool)
	for _, e := range tab.Entries() {
		if e.Strategy != strategy {
			continue
		}
		if seen[e.Phase] {
			err := zerr.With(ErrConflictingOverride, "strategy", strategy)
			return zerr.With(err, "phase", e.Phase)
		}
		seen[e.Phase] = true
		if _, ok := kind.Phase(e.Phase); !ok {
			err := zerr.With(ErrOverrideUnknownPhase, "strategy", strategy)
			err = zerr.With(err, "phase", e.Phase)
			return zerr.With(err, "phases", kind.PhaseNames())
		}
	}
	return nil
}
