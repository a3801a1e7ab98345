package catalog

import (
	"context"

	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/pkgs/buildsys"
	"github.com/kilnpkg/kiln/pkgs/buildsys/autotools"
)

func init() {
	p := new(formula.Package)
	p.Id("curl/curl")
	p.FromVer("7.61.0")
	// TODO: support per-package tag name mapping; curl tags releases
	// as curl-8_5_0, which plain version tag matching cannot find.
	p.Source("https://github.com/curl/curl")
	p.Matrix(formula.Matrix{
		Options:        map[string][]string{"ssl": {"on", "off"}},
		DefaultOptions: map[string][]string{"ssl": {"on"}},
	})
	// The cmake tree only became reliable for curl around 7.80.
	p.BuildSystem("cmake", formula.When("version>=7.80.0"))
	p.BuildSystem("autotools")
	p.Override("configure", curlConfigure, formula.For("autotools"))
	Register(p)
}

func curlConfigure(ctx context.Context, b *buildsys.Build) error {
	args := []string{"--without-libpsl"}
	if v, ok := b.Config.Variant("ssl"); ok && v == "on" {
		args = append(args, "--with-openssl")
	} else {
		args = append(args, "--without-ssl")
	}
	return autotools.ConfigureWith(args...)(ctx, b)
}
