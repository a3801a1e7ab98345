// Package conf defines the resolved build configuration consumed by the
// strategy engine: one concrete point in a package's configuration space
// (version, variant choices, platform). Values are built once and never
// mutated afterwards.
package conf

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/kilnpkg/kiln/pkgs/mod/module"
)

// Platform identifies a target operating system and architecture.
type Platform struct {
	OS   string
	Arch string
}

// Host returns the platform kiln itself is running on.
func Host() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Resolved is a fully determined configuration for one module: concrete
// version, platform, and a value for every chosen variant. The strategy
// engine treats it as opaque; only condition evaluation looks inside.
type Resolved struct {
	Module   module.Version
	Platform Platform
	variants map[string]string
}

// New builds a Resolved configuration. The variants map is copied, so the
// caller may keep mutating its own copy.
func New(mod module.Version, platform Platform, variants map[string]string) Resolved {
	var vs map[string]string
	if len(variants) > 0 {
		vs = make(map[string]string, len(variants))
		for k, v := range variants {
			vs[k] = v
		}
	}
	return Resolved{Module: mod, Platform: platform, variants: vs}
}

// Variant returns the value chosen for the named variant.
func (r Resolved) Variant(name string) (string, bool) {
	v, ok := r.variants[name]
	return v, ok
}

// VariantNames returns the names of all chosen variants, sorted.
func (r Resolved) VariantNames() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Key returns a canonical one-line form of the configuration. Two Resolved
// values describe the same configuration exactly when their keys are equal.
func (r Resolved) Key() string {
	parts := make([]string, 0, len(r.variants)+2)
	parts = append(parts, r.Module.String(), r.Platform.String())
	for _, name := range r.VariantNames() {
		parts = append(parts, name+"="+r.variants[name])
	}
	return strings.Join(parts, " ")
}

func (r Resolved) String() string {
	return r.Key()
}

// Fingerprint returns a short stable digest of Key, used to name
// per-configuration build directories.
func (r Resolved) Fingerprint() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(r.Key()))
}
