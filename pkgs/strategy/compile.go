package strategy

import (
	"go.trai.ch/zerr"

	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/pkgs/buildsys"
	"github.com/kilnpkg/kiln/pkgs/conf"
	"github.com/kilnpkg/kiln/pkgs/constraint"
)

// Definition is a package definition compiled for planning: build
// systems validated, kinds resolved, overrides resolved and checked.
// Compile once, then plan any number of configurations against it.
type Definition struct {
	pkg   *formula.Package
	reg   Registry
	tab   Table
	kinds map[string]*buildsys.Kind
}

// Compile validates a package's declarations. Every error Compile can
// return is a definition error: it names an author mistake and aborts
// loading the package, before any configuration is planned.
func Compile(pkg *formula.Package) (*Definition, error) {
	d := &Definition{pkg: pkg, kinds: make(map[string]*buildsys.Kind)}

	for _, bs := range pkg.BuildSystems() {
		if err := d.reg.Register(bs.Name, bs.Condition); err != nil {
			return nil, withPackage(err, pkg)
		}
	}
	if err := d.reg.Validate(); err != nil {
		return nil, withPackage(err, pkg)
	}

	for _, decl := range d.reg.Declarations() {
		kind, ok := buildsys.Lookup(decl.Name)
		if !ok {
			err := zerr.With(ErrUnknownKind, "package", pkg.Path())
			err = zerr.With(err, "strategy", decl.Name)
			return nil, zerr.With(err, "kinds", buildsys.Names())
		}
		d.kinds[decl.Name] = kind
	}

	for _, o := range pkg.Overrides() {
		if o.Strategy != "" {
			if _, ok := d.reg.Lookup(o.Strategy); !ok {
				err := zerr.With(ErrUnknownStrategy, "package", pkg.Path())
				err = zerr.With(err, "strategy", o.Strategy)
				err = zerr.With(err, "phase", o.Phase)
				return nil, zerr.With(err, "declared", d.reg.Names())
			}
		}
		err := d.tab.Add(Override{Strategy: o.Strategy, Phase: o.Phase, Impl: o.Impl})
		if err != nil {
			return nil, withPackage(err, pkg)
		}
	}
	if err := d.tab.ResolveUntagged(&d.reg); err != nil {
		return nil, withPackage(err, pkg)
	}

	for _, e := range d.tab.Entries() {
		kind := d.kinds[e.Strategy]
		if _, ok := kind.Phase(e.Phase); !ok {
			err := zerr.With(ErrOverrideUnknownPhase, "package", pkg.Path())
			err = zerr.With(err, "strategy", e.Strategy)
			err = zerr.With(err, "phase", e.Phase)
			return nil, zerr.With(err, "phases", kind.PhaseNames())
		}
	}

	return d, nil
}

// Plan selects the build system for a resolved configuration and
// assembles its builder. explicit, when non-empty, forces a declared
// build system instead of scanning in declaration order.
func (d *Definition) Plan(eval constraint.Evaluator, c conf.Resolved, explicit string) (*Builder, error) {
	decl, err := Select(&d.reg, eval, c, explicit)
	if err != nil {
		return nil, withPackage(err, d.pkg)
	}
	return Assemble(d.pkg.Path(), decl, d.kinds[decl.Name], &d.tab, c)
}

// Package returns the package definition this was compiled from.
func (d *Definition) Package() *formula.Package {
	return d.pkg
}

// Strategies returns the declared build systems in declaration order.
func (d *Definition) Strategies() []Declaration {
	return d.reg.Declarations()
}

// Overrides returns the resolved override entries.
func (d *Definition) Overrides() []Override {
	return d.tab.Entries()
}

// Kind returns the registered kind for a declared build system.
func (d *Definition) Kind(name string) (*buildsys.Kind, bool) {
	k, ok := d.kinds[name]
	return k, ok
}

func withPackage(err error, pkg *formula.Package) error {
	return zerr.With(err, "package", pkg.Path())
}
