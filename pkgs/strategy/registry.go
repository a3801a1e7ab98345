// Package strategy decides how a package gets built: it validates the
// build systems a package declares, selects the one that applies to a
// resolved configuration, and assembles the ordered phase list with any
// author overrides spliced in.
package strategy

import (
	"slices"

	"go.trai.ch/zerr"
)

// Declaration is one entry of a package's build-system directive.
type Declaration struct {
	Name      string // build-system kind, e.g. "cmake"
	Condition string // applicability condition; empty means always applicable
	Index     int    // declaration position; lower index is preferred
}

// Registry holds the build systems one package declares, in declaration
// order. It is populated while the definition loads and must be treated
// as read-only afterwards.
type Registry struct {
	decls []Declaration
}

// Register appends a declaration. Declaring the same build system twice
// is a definition error.
func (r *Registry) Register(name, condition string) error {
	if _, ok := r.Lookup(name); ok {
		return zerr.With(ErrDuplicateStrategy, "strategy", name)
	}
	r.decls = append(r.decls, Declaration{
		Name:      name,
		Condition: condition,
		Index:     len(r.decls),
	})
	return nil
}

// Validate checks that the registry holds at least one declaration.
func (r *Registry) Validate() error {
	if len(r.decls) == 0 {
		return ErrNoStrategy
	}
	return nil
}

// Declarations returns the declarations in declaration order.
func (r *Registry) Declarations() []Declaration {
	return slices.Clone(r.decls)
}

// Lookup returns the declaration for a build-system name.
func (r *Registry) Lookup(name string) (Declaration, bool) {
	for _, d := range r.decls {
		if d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}

// Len returns the number of declarations.
func (r *Registry) Len() int {
	return len(r.decls)
}

// Names returns the declared build-system names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.decls))
	for i, d := range r.decls {
		names[i] = d.Name
	}
	return names
}
