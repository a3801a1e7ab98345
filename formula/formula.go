package formula

import (
	"slices"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
)

// -----------------------------------------------------------------------------

// Package records the declarations of one source package: identity,
// versioning, configuration space, candidate build systems, and phase
// overrides. Declaration methods only record; validation happens when
// the strategy engine compiles the definition.
type Package struct {
	modPath    string
	modFromVer string
	verScheme  string
	sourceRepo string
	matrix     Matrix

	buildSystems []BuildSystemDecl
	overrides    []OverrideDecl
}

// BuildSystemDecl is one candidate build system of a package.
type BuildSystemDecl struct {
	Name      string
	Condition string // empty means always applicable
}

// OverrideDecl replaces one phase implementation of one build system.
type OverrideDecl struct {
	Strategy string // empty means untagged
	Phase    string
	Impl     buildsys.PhaseFunc
}

// Id sets the module path that this package serves.
// path should be in the form of "owner/repo".
func (p *Package) Id(path string) {
	p.modPath = path
}

// FromVer sets the minimum version of the module that this package serves.
func (p *Package) FromVer(ver string) {
	p.modFromVer = ver
}

// VersionScheme picks the version comparison scheme used for this
// package's versions ("gnu" or "semver"). Unset means gnu.
func (p *Package) VersionScheme(name string) {
	p.verScheme = name
}

// Source sets the source repository URL. Unset means
// "https://github.com/" + Id.
func (p *Package) Source(repo string) {
	p.sourceRepo = repo
}

// Matrix declares the package's configuration space.
func (p *Package) Matrix(m Matrix) {
	p.matrix = m
}

// -----------------------------------------------------------------------------

// BuildSystemOption configures a build-system declaration.
type BuildSystemOption func(*BuildSystemDecl)

// When gates a build-system declaration on a condition over the resolved
// configuration, e.g. "version>=2.0" or "os=linux,+shared".
func When(cond string) BuildSystemOption {
	return func(d *BuildSystemDecl) {
		d.Condition = cond
	}
}

// BuildSystem declares a candidate build system. Declaration order is
// preference order: at build time the first declaration whose condition
// holds for the resolved configuration wins.
func (p *Package) BuildSystem(name string, opts ...BuildSystemOption) {
	d := BuildSystemDecl{Name: name}
	for _, opt := range opts {
		opt(&d)
	}
	p.buildSystems = append(p.buildSystems, d)
}

// -----------------------------------------------------------------------------

// OverrideOption configures an override declaration.
type OverrideOption func(*OverrideDecl)

// For tags an override with the build system it applies to. Packages
// declaring a single unconditioned build system may leave overrides
// untagged.
func For(strategy string) OverrideOption {
	return func(d *OverrideDecl) {
		d.Strategy = strategy
	}
}

// Override replaces the implementation of one phase.
func (p *Package) Override(phase string, impl buildsys.PhaseFunc, opts ...OverrideOption) {
	d := OverrideDecl{Phase: phase, Impl: impl}
	for _, opt := range opts {
		opt(&d)
	}
	p.overrides = append(p.overrides, d)
}

// -----------------------------------------------------------------------------

// Path returns the declared module path.
func (p *Package) Path() string {
	return p.modPath
}

// MinVersion returns the minimum version this definition serves.
func (p *Package) MinVersion() string {
	return p.modFromVer
}

// Scheme returns the declared version scheme name, or "" for the default.
func (p *Package) Scheme() string {
	return p.verScheme
}

// SourceRepo returns the source repository URL.
func (p *Package) SourceRepo() string {
	if p.sourceRepo != "" {
		return p.sourceRepo
	}
	return "https://github.com/" + p.modPath
}

// MatrixSpec returns the declared configuration space.
func (p *Package) MatrixSpec() Matrix {
	return p.matrix
}

// BuildSystems returns the build-system declarations in declaration order.
func (p *Package) BuildSystems() []BuildSystemDecl {
	return slices.Clone(p.buildSystems)
}

// Overrides returns the override declarations in declaration order.
func (p *Package) Overrides() []OverrideDecl {
	return slices.Clone(p.overrides)
}
