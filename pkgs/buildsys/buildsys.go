// Package buildsys defines build-system kinds. A kind is a named build
// procedure (cmake, autotools, ...) with a fixed, ordered list of phases,
// each carrying a default implementation. Kind subpackages register
// themselves at init time; the kind table is read-only afterwards.
package buildsys

import (
	"context"
	"sort"
)

// PhaseFunc performs one build phase against a Build. Implementations
// either complete the step or fail with a step-specific error.
type PhaseFunc func(ctx context.Context, b *Build) error

// PhaseSpec is one named, ordered step of a kind's build procedure.
type PhaseSpec struct {
	Name    string
	Default PhaseFunc
}

// Kind describes a build-system kind. The phase order is intrinsic to the
// kind and never derived from package declarations.
type Kind struct {
	Name   string
	Phases []PhaseSpec
}

// PhaseNames returns the canonical phase names in order.
func (k *Kind) PhaseNames() []string {
	names := make([]string, len(k.Phases))
	for i, p := range k.Phases {
		names[i] = p.Name
	}
	return names
}

// Phase returns the named phase spec.
func (k *Kind) Phase(name string) (PhaseSpec, bool) {
	for _, p := range k.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseSpec{}, false
}

var kinds = map[string]*Kind{}

// Register records a build-system kind under its name. It must only be
// called during init; registering a nil kind, an unnamed kind, a kind
// without phases, or the same name twice panics.
func Register(k *Kind) {
	if k == nil || k.Name == "" {
		panic("buildsys: Register with nil or unnamed kind")
	}
	if len(k.Phases) == 0 {
		panic("buildsys: kind " + k.Name + " has no phases")
	}
	seen := make(map[string]bool, len(k.Phases))
	for _, p := range k.Phases {
		if p.Name == "" || p.Default == nil {
			panic("buildsys: kind " + k.Name + " has an incomplete phase")
		}
		if seen[p.Name] {
			panic("buildsys: kind " + k.Name + " declares phase " + p.Name + " twice")
		}
		seen[p.Name] = true
	}
	if _, dup := kinds[k.Name]; dup {
		panic("buildsys: Register called twice for kind " + k.Name)
	}
	kinds[k.Name] = k
}

// Lookup returns the kind registered under name.
func Lookup(name string) (*Kind, bool) {
	k, ok := kinds[name]
	return k, ok
}

// Names returns the names of all registered kinds, sorted.
func Names() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
