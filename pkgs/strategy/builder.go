package strategy

import (
	"github.com/kilnpkg/kiln/pkgs/buildsys"
	"github.com/kilnpkg/kiln/pkgs/conf"
)

// Phase is one step of an assembled builder, in execution order.
type Phase struct {
	Name       string
	Impl       buildsys.PhaseFunc
	Overridden bool
}

// Builder is the assembled plan for building one package at one
// resolved configuration: the chosen build system's phases in canonical
// order, overrides already substituted. It is immutable once assembled
// and is not reused across configurations.
type Builder struct {
	Package  string
	Strategy string
	Config   conf.Resolved
	Phases   []Phase
}

// PhaseNames returns the phase names in execution order.
func (b *Builder) PhaseNames() []string {
	names := make([]string, len(b.Phases))
	for i, p := range b.Phases {
		names[i] = p.Name
	}
	return names
}
