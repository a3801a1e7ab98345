// Package generic registers the generic build-system kind: a single
// install phase that stages the source tree into the install directory.
// It serves header-only and prebuilt packages that have nothing to
// compile.
package generic

import (
	"context"
	"fmt"
	"os"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
)

func init() {
	buildsys.Register(&buildsys.Kind{
		Name: "generic",
		Phases: []buildsys.PhaseSpec{
			{Name: "install", Default: Install},
		},
	})
}

// Install copies the source tree into the install directory.
func Install(ctx context.Context, b *buildsys.Build) error {
	if b.InstallDir == "" {
		return fmt.Errorf("failed to install %s: no install directory", b.Module)
	}
	if err := os.MkdirAll(b.InstallDir, 0755); err != nil {
		return err
	}
	return os.CopyFS(b.InstallDir, os.DirFS(b.SourceDir))
}
