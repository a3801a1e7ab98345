// Copyright 2026 The kiln Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog holds the built-in package definitions. Each
// definition registers itself at init time; its compiled form is
// produced on first use and cached.
package catalog

import (
	"sort"
	"sync"

	"go.trai.ch/zerr"

	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/pkgs/constraint"
	"github.com/kilnpkg/kiln/pkgs/strategy"
	"github.com/kilnpkg/kiln/pkgs/vercmp"

	// Built-in build-system kinds. Definition compilation resolves
	// declarations against these.
	_ "github.com/kilnpkg/kiln/pkgs/buildsys/autotools"
	_ "github.com/kilnpkg/kiln/pkgs/buildsys/cmake"
	_ "github.com/kilnpkg/kiln/pkgs/buildsys/generic"
	_ "github.com/kilnpkg/kiln/pkgs/buildsys/makefile"
)

var (
	// ErrPackageNotFound is returned when a package path is not in the
	// catalog.
	ErrPackageNotFound = zerr.New("package not found in catalog")

	// ErrUnknownScheme is returned when a definition names a version
	// scheme that is not registered.
	ErrUnknownScheme = zerr.New("unknown version scheme")
)

type entry struct {
	pkg     *formula.Package
	compile func() (*strategy.Definition, error)
}

var (
	mu      sync.RWMutex
	entries = make(map[string]*entry)
)

// Register adds a package definition to the catalog. It is meant to be
// called from init functions; registering a nil package, a package
// without a path, or the same path twice panics.
func Register(p *formula.Package) {
	if p == nil {
		panic("catalog: Register called with nil package")
	}
	path := p.Path()
	if path == "" {
		panic("catalog: Register called with unnamed package")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := entries[path]; ok {
		panic("catalog: Register called twice for package " + path)
	}
	entries[path] = &entry{
		pkg: p,
		compile: sync.OnceValues(func() (*strategy.Definition, error) {
			return strategy.Compile(p)
		}),
	}
}

// Lookup returns the raw definition for a package path.
func Lookup(path string) (*formula.Package, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[path]
	if !ok {
		return nil, false
	}
	return e.pkg, true
}

// Definition returns the compiled definition for a package path,
// validating its declarations on first use.
func Definition(path string) (*strategy.Definition, error) {
	mu.RLock()
	e, ok := entries[path]
	mu.RUnlock()
	if !ok {
		return nil, zerr.With(ErrPackageNotFound, "package", path)
	}
	return e.compile()
}

// Paths returns the registered package paths, sorted.
func Paths() []string {
	mu.RLock()
	defer mu.RUnlock()
	paths := make([]string, 0, len(entries))
	for path := range entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// EvaluatorFor returns the constraint evaluator for a package, using
// the version scheme its definition declares.
func EvaluatorFor(p *formula.Package) (constraint.Evaluator, error) {
	name := p.Scheme()
	if name == "" {
		return constraint.Default{}, nil
	}
	s, ok := vercmp.Lookup(name)
	if !ok {
		err := zerr.With(ErrUnknownScheme, "package", p.Path())
		err = zerr.With(err, "scheme", name)
		err = zerr.With(err, "schemes", vercmp.Names())
		return nil, err
	}
	return constraint.Default{Scheme: s}, nil
}
