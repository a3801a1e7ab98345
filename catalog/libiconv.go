package catalog

import (
	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/pkgs/buildsys/autotools"
)

func init() {
	p := new(formula.Package)
	p.Id("gnu/libiconv")
	p.FromVer("1.16")
	p.Source("https://github.com/roboticslibrary/libiconv")
	p.BuildSystem("autotools")
	p.Override("configure", autotools.ConfigureWith("--disable-nls", "--enable-extra-encodings"))
	Register(p)
}
