package catalog

import (
	"github.com/kilnpkg/kiln/formula"
)

func init() {
	p := new(formula.Package)
	p.Id("nlohmann/json")
	p.FromVer("3.11.0")
	p.VersionScheme("semver")
	p.Source("https://github.com/nlohmann/json")
	p.BuildSystem("generic")
	Register(p)
}
