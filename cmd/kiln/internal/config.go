package internal

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/internal/vcs"
	"github.com/kilnpkg/kiln/pkgs/conf"
	"github.com/kilnpkg/kiln/pkgs/mod/module"
	"github.com/kilnpkg/kiln/pkgs/vercmp"
)

// configFlags are the configuration flags shared by plan and build:
// which platform to target, which variants to pick, and which build
// system to force.
type configFlags struct {
	os          string
	arch        string
	variants    []string
	buildSystem string
	request     string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.os, "os", runtime.GOOS, "Target operating system")
	cmd.Flags().StringVar(&f.arch, "arch", runtime.GOARCH, "Target architecture")
	cmd.Flags().StringArrayVar(&f.variants, "variant", nil, "Variant choice as name=value (repeatable)")
	cmd.Flags().StringVar(&f.buildSystem, "build-system", "", "Build with this declared build system")
	cmd.Flags().StringVar(&f.request, "request", "", "Read the configuration from a request file")
}

// resolve produces the configuration and the explicit build-system
// choice from the flags and the positional module argument. With
// --request the configuration comes from the request file instead.
func (f *configFlags) resolve(args []string) (conf.Resolved, string, error) {
	if f.request != "" {
		if len(args) > 0 {
			return conf.Resolved{}, "", fmt.Errorf("cannot combine a module argument with --request")
		}
		req, err := conf.ParseRequest(f.request, nil)
		if err != nil {
			return conf.Resolved{}, "", err
		}
		if f.buildSystem != "" {
			req.BuildSystem = f.buildSystem
		}
		return req.Resolve()
	}

	if len(args) != 1 {
		return conf.Resolved{}, "", fmt.Errorf("expected a module@version argument")
	}
	path, version := parseModuleArg(args[0])
	variants, err := parseVariants(f.variants)
	if err != nil {
		return conf.Resolved{}, "", err
	}
	mod := module.Version{Path: path, Version: version}
	platform := conf.Platform{OS: f.os, Arch: f.arch}
	return conf.New(mod, platform, variants), f.buildSystem, nil
}

// parseModuleArg parses a module argument in the form "owner/repo@version" or "owner/repo".
func parseModuleArg(arg string) (path, version string) {
	for i := len(arg) - 1; i >= 0; i-- {
		if arg[i] == '@' {
			return arg[:i], arg[i+1:]
		}
	}
	return arg, ""
}

func parseVariants(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	variants := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variant %q, want name=value", pair)
		}
		variants[name] = value
	}
	return variants, nil
}

// applyMatrix validates the chosen variants against the package's matrix
// and fills unset variants with their declared defaults.
func applyMatrix(c conf.Resolved, pkg *formula.Package) (conf.Resolved, error) {
	m := pkg.MatrixSpec()
	merged := m.Defaults()
	for _, name := range c.VariantNames() {
		if _, ok := m.Options[name]; !ok {
			return conf.Resolved{}, fmt.Errorf("unknown variant %s for %s (declares: %s)",
				name, pkg.Path(), strings.Join(optionNames(m), " "))
		}
		if merged == nil {
			merged = map[string]string{}
		}
		merged[name], _ = c.Variant(name)
	}
	return conf.New(c.Module, c.Platform, merged), nil
}

func optionNames(m formula.Matrix) []string {
	names := make([]string, 0, len(m.Options))
	for name := range m.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// schemeFor returns the version scheme the package declared, defaulting
// to gnu.
func schemeFor(pkg *formula.Package) (vercmp.Scheme, error) {
	name := pkg.Scheme()
	if name == "" {
		return vercmp.Default(), nil
	}
	s, ok := vercmp.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown version scheme %s for %s", name, pkg.Path())
	}
	return s, nil
}

// latestVersion resolves the newest released version of the package from
// its repository tags, honoring the definition's floor.
func latestVersion(pkg *formula.Package) (string, error) {
	scheme, err := schemeFor(pkg)
	if err != nil {
		return "", err
	}
	tags, err := vcs.NewGitVCS().Tags(context.Background(), pkg.SourceRepo())
	if err != nil {
		return "", fmt.Errorf("failed to list tags for %s: %w", pkg.SourceRepo(), err)
	}
	min := pkg.MinVersion()
	var latest string
	for _, v := range vcs.Versions(tags) {
		if min != "" && scheme.Compare(v, min) < 0 {
			continue
		}
		if latest == "" || scheme.Compare(v, latest) > 0 {
			latest = v
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no released versions for %s", pkg.Path())
	}
	return latest, nil
}

// withVersion rebinds the configuration to a concrete version.
func withVersion(c conf.Resolved, version string) conf.Resolved {
	variants := make(map[string]string)
	for _, name := range c.VariantNames() {
		variants[name], _ = c.Variant(name)
	}
	mod := module.Version{Path: c.Module.Path, Version: version}
	return conf.New(mod, c.Platform, variants)
}

// checkVersion rejects versions below the definition's floor.
func checkVersion(pkg *formula.Package, version string) error {
	min := pkg.MinVersion()
	if min == "" {
		return nil
	}
	scheme, err := schemeFor(pkg)
	if err != nil {
		return err
	}
	if scheme.Compare(version, min) < 0 {
		return fmt.Errorf("no definition for %s@%s: definitions start at %s", pkg.Path(), version, min)
	}
	return nil
}
