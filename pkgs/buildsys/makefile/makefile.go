// Package makefile registers the makefile build-system kind: edit, build,
// install, for packages that ship a plain Makefile. Builds run in the
// source tree.
package makefile

import (
	"context"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
)

func init() {
	buildsys.Register(&buildsys.Kind{
		Name: "makefile",
		Phases: []buildsys.PhaseSpec{
			{Name: "edit", Default: Edit},
			{Name: "build", Default: Build},
			{Name: "install", Default: Install},
		},
	})
}

// Edit is a no-op by default. It exists as the slot where package authors
// patch the Makefile (install paths, compiler choice) before building.
func Edit(ctx context.Context, b *buildsys.Build) error {
	return nil
}

// Build runs make in the source tree.
func Build(ctx context.Context, b *buildsys.Build) error {
	return b.ExecIn(ctx, b.SourceDir, b.Tool("make"))
}

// Install runs make install in the source tree. Both prefix spellings are
// passed since Makefiles disagree on which one they honor.
func Install(ctx context.Context, b *buildsys.Build) error {
	args := []string{"install"}
	if b.InstallDir != "" {
		args = append(args, "prefix="+b.InstallDir, "PREFIX="+b.InstallDir)
	}
	return b.ExecIn(ctx, b.SourceDir, b.Tool("make"), args...)
}
