package catalog

import (
	"context"
	"path/filepath"

	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/pkgs/buildsys"
	"github.com/kilnpkg/kiln/pkgs/buildsys/cmake"
)

func init() {
	p := new(formula.Package)
	p.Id("facebook/zstd")
	p.FromVer("1.5.0")
	p.Source("https://github.com/facebook/zstd")
	p.BuildSystem("cmake", formula.When("os=windows"))
	p.BuildSystem("makefile")
	p.Override("configure", zstdConfigure, formula.For("cmake"))
	Register(p)
}

// zstd keeps its cmake tree under build/cmake rather than the source
// root.
func zstdConfigure(ctx context.Context, b *buildsys.Build) error {
	return cmake.For(b).
		Source(filepath.Join(b.SourceDir, "build", "cmake")).
		BuildType("Release").
		DefineBool("ZSTD_BUILD_TESTS", false).
		Configure(ctx)
}
