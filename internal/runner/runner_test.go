package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/pkgs/buildsys"
	"github.com/kilnpkg/kiln/pkgs/conf"
	"github.com/kilnpkg/kiln/pkgs/mod/module"
	"github.com/kilnpkg/kiln/pkgs/strategy"
)

// fakeVCS materializes checkouts from an in-memory file set and records
// the refs it was asked for.
type fakeVCS struct {
	tags     []string
	tagsErr  error
	syncErr  error
	syncRefs []string
	files    map[string]string
}

func (f *fakeVCS) Sync(ctx context.Context, remote, ref, dir string) error {
	if f.syncErr != nil {
		return f.syncErr
	}
	f.syncRefs = append(f.syncRefs, ref)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, content := range f.files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeVCS) Tags(ctx context.Context, remote string) ([]string, error) {
	return f.tags, f.tagsErr
}

func (f *fakeVCS) Latest(ctx context.Context, remote string) (string, error) {
	return strings.Repeat("0", 40), nil
}

func testPackage() *formula.Package {
	p := new(formula.Package)
	p.Id("owner/repo")
	return p
}

func testConf(version string, variants map[string]string) conf.Resolved {
	mod := module.Version{Path: "owner/repo", Version: version}
	return conf.New(mod, conf.Platform{OS: "linux", Arch: "arm64"}, variants)
}

func testRunner(t *testing.T, fv *fakeVCS) *Runner {
	t.Helper()
	return New(WithVCS(fv), WithWorkDir(t.TempDir()), WithOutput(io.Discard, io.Discard))
}

// stagePhase copies VERSION from the checkout into the install dir, so
// tests can verify that phases saw the fetched source.
func stagePhase(ctx context.Context, b *buildsys.Build) error {
	data, err := os.ReadFile(filepath.Join(b.SourceDir, "VERSION"))
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(b.InstallDir, "VERSION"), data, 0o644)
}

func TestRunBuildAndCache(t *testing.T) {
	fv := &fakeVCS{files: map[string]string{"VERSION": "1.2.0\n"}}
	r := testRunner(t, fv)
	pkg := testPackage()

	builds := 0
	b := &strategy.Builder{
		Package:  pkg.Path(),
		Strategy: "stone",
		Config:   testConf("1.2.0", nil),
		Phases: []strategy.Phase{
			{Name: "build", Impl: func(ctx context.Context, b *buildsys.Build) error {
				builds++
				return nil
			}},
			{Name: "install", Impl: stagePhase},
		},
	}

	res, err := r.Run(context.Background(), pkg, b)
	if err != nil {
		t.Fatal("Run:", err)
	}
	if res.Cached {
		t.Error("first run reported cached")
	}
	if res.Strategy != "stone" {
		t.Errorf("strategy %q, want %q", res.Strategy, "stone")
	}
	data, err := os.ReadFile(filepath.Join(res.InstallDir, "VERSION"))
	if err != nil {
		t.Fatal("missing install artifact:", err)
	}
	if string(data) != "1.2.0\n" {
		t.Errorf("artifact %q, want %q", data, "1.2.0\n")
	}
	if _, err := os.Stat(res.InstallDir + ".work"); !os.IsNotExist(err) {
		t.Error("work tree not removed after success")
	}

	again, err := r.Run(context.Background(), pkg, b)
	if err != nil {
		t.Fatal("second Run:", err)
	}
	if !again.Cached {
		t.Error("second run not served from cache")
	}
	if again.InstallDir != res.InstallDir {
		t.Errorf("install dir changed: %q vs %q", again.InstallDir, res.InstallDir)
	}
	if builds != 1 {
		t.Errorf("build phase ran %d times, want 1", builds)
	}
}

func TestRunDistinctConfigurations(t *testing.T) {
	fv := &fakeVCS{files: map[string]string{"VERSION": "1.2.0\n"}}
	r := testRunner(t, fv)
	pkg := testPackage()

	builder := func(variants map[string]string) *strategy.Builder {
		return &strategy.Builder{
			Package:  pkg.Path(),
			Strategy: "stone",
			Config:   testConf("1.2.0", variants),
			Phases:   []strategy.Phase{{Name: "install", Impl: stagePhase}},
		}
	}

	on, err := r.Run(context.Background(), pkg, builder(map[string]string{"shared": "on"}))
	if err != nil {
		t.Fatal("Run shared=on:", err)
	}
	off, err := r.Run(context.Background(), pkg, builder(map[string]string{"shared": "off"}))
	if err != nil {
		t.Fatal("Run shared=off:", err)
	}
	if on.InstallDir == off.InstallDir {
		t.Errorf("variants share install dir %q", on.InstallDir)
	}
	if on.Cached || off.Cached {
		t.Error("fresh configurations reported cached")
	}
}

func TestRunPhaseFailure(t *testing.T) {
	fv := &fakeVCS{files: map[string]string{"VERSION": "1.2.0\n"}}
	r := testRunner(t, fv)
	pkg := testPackage()

	boom := errors.New("compiler exploded")
	runs := 0
	b := &strategy.Builder{
		Package:  pkg.Path(),
		Strategy: "stone",
		Config:   testConf("1.2.0", nil),
		Phases: []strategy.Phase{
			{Name: "build", Impl: func(ctx context.Context, b *buildsys.Build) error {
				runs++
				if runs == 1 {
					return boom
				}
				return nil
			}},
		},
	}

	_, err := r.Run(context.Background(), pkg, b)
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want wrapped %v", err, boom)
	}
	if !strings.Contains(err.Error(), "phase build") {
		t.Errorf("error %q does not name the failing phase", err)
	}

	// The failure must not leave a receipt behind.
	res, err := r.Run(context.Background(), pkg, b)
	if err != nil {
		t.Fatal("retry Run:", err)
	}
	if res.Cached {
		t.Error("retry served from cache after a failed build")
	}
	if runs != 2 {
		t.Errorf("build phase ran %d times, want 2", runs)
	}
}

func TestRunKeepsWorkTreeOnFailure(t *testing.T) {
	fv := &fakeVCS{files: map[string]string{"VERSION": "1.2.0\n"}}
	r := testRunner(t, fv)
	pkg := testPackage()

	c := testConf("1.2.0", nil)
	b := &strategy.Builder{
		Package:  pkg.Path(),
		Strategy: "stone",
		Config:   c,
		Phases: []strategy.Phase{
			{Name: "build", Impl: func(ctx context.Context, b *buildsys.Build) error {
				return errors.New("no such tool")
			}},
		},
	}

	if _, err := r.Run(context.Background(), pkg, b); err == nil {
		t.Fatal("Run succeeded with failing phase")
	}

	builds, err := r.buildsDir()
	if err != nil {
		t.Fatal(err)
	}
	escaped, err := module.EscapePath(pkg.Path())
	if err != nil {
		t.Fatal(err)
	}
	workDir := filepath.Join(builds, escaped+"@1.2.0-"+c.Fingerprint()+".work")
	if _, err := os.Stat(filepath.Join(workDir, "src", "VERSION")); err != nil {
		t.Errorf("work tree missing after failure: %v", err)
	}
}

func TestRunRebuildAfterInstallRemoved(t *testing.T) {
	fv := &fakeVCS{files: map[string]string{"VERSION": "1.2.0\n"}}
	r := testRunner(t, fv)
	pkg := testPackage()

	b := &strategy.Builder{
		Package:  pkg.Path(),
		Strategy: "stone",
		Config:   testConf("1.2.0", nil),
		Phases:   []strategy.Phase{{Name: "install", Impl: stagePhase}},
	}

	res, err := r.Run(context.Background(), pkg, b)
	if err != nil {
		t.Fatal("Run:", err)
	}
	if err := os.RemoveAll(res.InstallDir); err != nil {
		t.Fatal(err)
	}

	again, err := r.Run(context.Background(), pkg, b)
	if err != nil {
		t.Fatal("second Run:", err)
	}
	if again.Cached {
		t.Error("served from cache with install dir gone")
	}
	if _, err := os.Stat(filepath.Join(again.InstallDir, "VERSION")); err != nil {
		t.Errorf("rebuild produced no artifact: %v", err)
	}
}

func TestSyncPrefersMatchingTag(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		tagsErr error
		want    string
	}{
		{name: "exact", tags: []string{"1.2.0", "v9.9.9"}, want: "1.2.0"},
		{name: "v-prefixed", tags: []string{"v1.2.0"}, want: "v1.2.0"},
		{name: "no match", tags: []string{"curl-1_2_0"}, want: "1.2.0"},
		{name: "tags unavailable", tagsErr: errors.New("offline"), want: "1.2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := &fakeVCS{tags: tt.tags, tagsErr: tt.tagsErr, files: map[string]string{"VERSION": "1.2.0\n"}}
			r := testRunner(t, fv)
			if err := r.sync(context.Background(), "https://example.com/repo", "1.2.0", filepath.Join(t.TempDir(), "src")); err != nil {
				t.Fatal("sync:", err)
			}
			if len(fv.syncRefs) != 1 || fv.syncRefs[0] != tt.want {
				t.Errorf("synced refs %v, want [%s]", fv.syncRefs, tt.want)
			}
		})
	}
}

func TestFetchSource(t *testing.T) {
	fv := &fakeVCS{tags: []string{"v1.2.0"}, files: map[string]string{"VERSION": "1.2.0\n"}}
	r := testRunner(t, fv)

	dir, err := r.FetchSource(context.Background(), testPackage(), "1.2.0")
	if err != nil {
		t.Fatal("FetchSource:", err)
	}
	want := filepath.Join("sources", "owner", "repo@1.2.0")
	if !strings.HasSuffix(dir, want) {
		t.Errorf("checkout at %q, want suffix %q", dir, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "VERSION")); err != nil {
		t.Errorf("checkout incomplete: %v", err)
	}
}

func TestRunSyncFailure(t *testing.T) {
	fv := &fakeVCS{syncErr: errors.New("remote hung up")}
	r := testRunner(t, fv)
	pkg := testPackage()

	b := &strategy.Builder{
		Package:  pkg.Path(),
		Strategy: "stone",
		Config:   testConf("1.2.0", nil),
		Phases:   []strategy.Phase{{Name: "install", Impl: stagePhase}},
	}
	_, err := r.Run(context.Background(), pkg, b)
	if err == nil || !strings.Contains(err.Error(), "failed to fetch") {
		t.Errorf("Run error = %v, want fetch failure", err)
	}
}
