// Package autotools registers the autotools build-system kind:
// autoreconf, configure, build, install. Builds run out of tree, with
// configure invoked from the build directory.
package autotools

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
)

func init() {
	buildsys.Register(&buildsys.Kind{
		Name: "autotools",
		Phases: []buildsys.PhaseSpec{
			{Name: "autoreconf", Default: Autoreconf},
			{Name: "configure", Default: Configure},
			{Name: "build", Default: Build},
			{Name: "install", Default: Install},
		},
	})
}

// Autoreconf regenerates the configure script when the source ships
// without one. Release tarballs normally include it, so this is a no-op
// for most packages.
func Autoreconf(ctx context.Context, b *buildsys.Build) error {
	if _, err := os.Stat(filepath.Join(b.SourceDir, "configure")); err == nil {
		return nil
	}
	return b.ExecIn(ctx, b.SourceDir, b.Tool("autoreconf"), "-fiv")
}

// Configure runs the configure script from the build directory with the
// install prefix.
func Configure(ctx context.Context, b *buildsys.Build) error {
	return configure(ctx, b)
}

// ConfigureWith returns a configure phase that passes extra arguments to
// the configure script (e.g. --disable-shared). Intended for overrides.
func ConfigureWith(args ...string) buildsys.PhaseFunc {
	return func(ctx context.Context, b *buildsys.Build) error {
		return configure(ctx, b, args...)
	}
}

func configure(ctx context.Context, b *buildsys.Build, args ...string) error {
	script := filepath.Join(b.SourceDir, "configure")
	configArgs := []string{}
	if b.InstallDir != "" {
		configArgs = append(configArgs, "--prefix="+b.InstallDir)
	}
	configArgs = append(configArgs, args...)
	return b.Exec(ctx, script, configArgs...)
}

// Build runs make in the build directory.
func Build(ctx context.Context, b *buildsys.Build) error {
	return b.Exec(ctx, b.Tool("make"))
}

// Install runs make install in the build directory.
func Install(ctx context.Context, b *buildsys.Build) error {
	return b.Exec(ctx, b.Tool("make"), "install")
}
