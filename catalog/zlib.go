package catalog

import (
	"context"
	"path/filepath"

	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/pkgs/buildsys"
)

func init() {
	p := new(formula.Package)
	p.Id("madler/zlib")
	p.FromVer("1.2.11")
	p.Source("https://github.com/madler/zlib")
	p.Matrix(formula.Matrix{
		Options:        map[string][]string{"shared": {"on", "off"}},
		DefaultOptions: map[string][]string{"shared": {"on"}},
	})
	p.BuildSystem("cmake")
	p.BuildSystem("makefile", formula.When("os!=windows"))
	p.Override("edit", zlibConfigure, formula.For("makefile"))
	Register(p)
}

// zlib's configure is a hand-rolled script, not autotools, so the
// makefile path runs it before make touches the tree.
func zlibConfigure(ctx context.Context, b *buildsys.Build) error {
	args := []string{"--prefix=" + b.InstallDir}
	if v, ok := b.Config.Variant("shared"); ok && v == "off" {
		args = append(args, "--static")
	}
	return b.ExecIn(ctx, b.SourceDir, filepath.Join(b.SourceDir, "configure"), args...)
}
