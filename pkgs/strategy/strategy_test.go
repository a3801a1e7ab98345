package strategy

import (
	"context"
	"testing"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
	"github.com/kilnpkg/kiln/pkgs/conf"
	"github.com/kilnpkg/kiln/pkgs/mod/module"
)

// stone and brick are kinds registered for these tests only, so
// selection and assembly are not entangled with the real kinds.
var (
	stoneKind = &buildsys.Kind{
		Name: "stone",
		Phases: []buildsys.PhaseSpec{
			{Name: "configure", Default: logPhase("stone.configure")},
			{Name: "build", Default: logPhase("stone.build")},
			{Name: "install", Default: logPhase("stone.install")},
		},
	}
	brickKind = &buildsys.Kind{
		Name: "brick",
		Phases: []buildsys.PhaseSpec{
			{Name: "build", Default: logPhase("brick.build")},
			{Name: "install", Default: logPhase("brick.install")},
		},
	}
)

func init() {
	buildsys.Register(stoneKind)
	buildsys.Register(brickKind)
}

// phaseLog records which phase implementations ran. Reset by runPhases.
var phaseLog []string

func logPhase(name string) buildsys.PhaseFunc {
	return func(ctx context.Context, b *buildsys.Build) error {
		phaseLog = append(phaseLog, name)
		return nil
	}
}

func phaseNop(ctx context.Context, b *buildsys.Build) error {
	return nil
}

func runPhases(t *testing.T, phases []Phase) []string {
	t.Helper()
	phaseLog = nil
	b := new(buildsys.Build)
	for _, p := range phases {
		if err := p.Impl(context.Background(), b); err != nil {
			t.Fatalf("phase %s failed: %v", p.Name, err)
		}
	}
	return phaseLog
}

func testConf(version string, variants map[string]string) conf.Resolved {
	return conf.New(
		module.Version{Path: "owner/repo", Version: version},
		conf.Platform{OS: "linux", Arch: "arm64"},
		variants,
	)
}
