// Package runner executes assembled builders: it checks out package
// sources, drives the build phases, and caches finished installs by
// configuration fingerprint so identical requests are served from disk.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/qiniu/x/log"

	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/internal/env"
	"github.com/kilnpkg/kiln/internal/lockedfile"
	"github.com/kilnpkg/kiln/internal/vcs"
	"github.com/kilnpkg/kiln/pkgs/buildsys"
	"github.com/kilnpkg/kiln/pkgs/mod/module"
	"github.com/kilnpkg/kiln/pkgs/strategy"
)

// Result reports one finished (or reused) build.
type Result struct {
	InstallDir string
	Strategy   string
	Phases     []string
	Cached     bool
}

// Runner checks out sources and runs builders. Concurrent runs for the
// same module are serialized through a file lock, so two kiln processes
// never build into the same directory at once.
type Runner struct {
	vcs     vcs.VCS
	workDir string
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithVCS overrides the version control client used to fetch sources.
func WithVCS(v vcs.VCS) Option {
	return func(r *Runner) {
		r.vcs = v
	}
}

// WithWorkDir places sources and builds under dir instead of the user
// cache directory.
func WithWorkDir(dir string) Option {
	return func(r *Runner) {
		r.workDir = dir
	}
}

// WithOutput redirects build tool output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a Runner. By default it fetches with the system git and
// writes tool output to os.Stdout/os.Stderr.
func New(opts ...Option) *Runner {
	r := &Runner{vcs: vcs.NewGitVCS(), stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) buildsDir() (string, error) {
	if r.workDir != "" {
		return subdir(r.workDir, "builds")
	}
	return env.BuildsDir()
}

func (r *Runner) sourcesDir() (string, error) {
	if r.workDir != "" {
		return subdir(r.workDir, "sources")
	}
	return env.SourcesDir()
}

func subdir(root, name string) (string, error) {
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// FetchSource checks out the package source for version into the shared
// sources directory and returns the checkout path.
func (r *Runner) FetchSource(ctx context.Context, pkg *formula.Package, version string) (string, error) {
	sources, err := r.sourcesDir()
	if err != nil {
		return "", err
	}
	escaped, err := module.EscapePath(pkg.Path())
	if err != nil {
		return "", err
	}
	dir := filepath.Join(sources, escaped+"@"+version)
	if err := r.sync(ctx, pkg.SourceRepo(), version, dir); err != nil {
		return "", err
	}
	return dir, nil
}

// sync fetches the ref for version into dir, preferring an exact or
// v-prefixed tag and falling back to the version string itself.
func (r *Runner) sync(ctx context.Context, repo, version, dir string) error {
	ref := version
	if tags, err := r.vcs.Tags(ctx, repo); err != nil {
		log.Warnf("listing tags for %s: %v", repo, err)
	} else if tag, ok := vcs.MatchTag(tags, version); ok {
		ref = tag
	}
	if err := r.vcs.Sync(ctx, repo, ref, dir); err != nil {
		return fmt.Errorf("failed to fetch %s@%s: %w", repo, ref, err)
	}
	return nil
}

// Run executes the builder's phases for its configuration, reusing a
// prior build with the same fingerprint when its install directory is
// still present. The work tree is private to the configuration and
// removed on success; on failure it is kept for inspection.
func (r *Runner) Run(ctx context.Context, pkg *formula.Package, b *strategy.Builder) (*Result, error) {
	mod := b.Config.Module

	builds, err := r.buildsDir()
	if err != nil {
		return nil, err
	}
	escaped, err := module.EscapePath(mod.Path)
	if err != nil {
		return nil, err
	}
	moduleDir := filepath.Join(builds, escaped)
	if err := os.MkdirAll(moduleDir, 0o755); err != nil {
		return nil, err
	}

	unlock, err := lockedfile.MutexAt(filepath.Join(moduleDir, ".lock")).Lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	fingerprint := b.Config.Fingerprint()
	installDir := filepath.Join(builds, escaped+"@"+mod.Version+"-"+fingerprint)
	receipts, err := loadReceipts(moduleDir)
	if err != nil {
		return nil, err
	}
	if rec, ok := receipts.get(mod.Version, fingerprint); ok {
		if _, err := os.Stat(rec.InstallDir); err == nil {
			log.Infof("using cached %s (%s)", mod, rec.Strategy)
			return &Result{InstallDir: rec.InstallDir, Strategy: rec.Strategy, Phases: rec.Phases, Cached: true}, nil
		}
	}

	workDir := installDir + ".work"
	for _, dir := range []string{workDir, installDir} {
		if err := os.RemoveAll(dir); err != nil {
			return nil, err
		}
	}
	srcDir := filepath.Join(workDir, "src")
	outDir := filepath.Join(workDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return nil, err
	}
	if err := r.sync(ctx, pkg.SourceRepo(), mod.Version, srcDir); err != nil {
		return nil, err
	}

	build := &buildsys.Build{
		Module:     mod,
		Config:     b.Config,
		SourceDir:  srcDir,
		BuildDir:   outDir,
		InstallDir: installDir,
		Stdout:     r.stdout,
		Stderr:     r.stderr,
	}

	phases := b.PhaseNames()
	start := time.Now()
	log.Infof("building %s with %s", b.Config, b.Strategy)
	for _, p := range b.Phases {
		log.Debugf("%s: phase %s", mod, p.Name)
		if err := p.Impl(ctx, build); err != nil {
			log.Warnf("build tree kept at %s", workDir)
			return nil, fmt.Errorf("phase %s: %w", p.Name, err)
		}
	}

	receipts.set(mod.Version, fingerprint, &receipt{
		Strategy:   b.Strategy,
		Phases:     phases,
		InstallDir: installDir,
		BuildTime:  time.Now(),
	})
	if err := saveReceipts(moduleDir, receipts); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(workDir); err != nil {
		return nil, err
	}

	log.Infof("built %s in %v", mod, time.Since(start).Round(time.Millisecond))
	return &Result{InstallDir: installDir, Strategy: b.Strategy, Phases: phases}, nil
}
