// Package cmake registers the cmake build-system kind: configure, build,
// install, driven by the cmake CLI.
package cmake

import (
	"context"
	"sort"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
)

func init() {
	buildsys.Register(&buildsys.Kind{
		Name: "cmake",
		Phases: []buildsys.PhaseSpec{
			{Name: "configure", Default: Configure},
			{Name: "build", Default: Build},
			{Name: "install", Default: Install},
		},
	})
}

// Configure is the default configure phase: cmake -S <source> -B <build>
// with the install prefix and a Release build type.
func Configure(ctx context.Context, b *buildsys.Build) error {
	return For(b).BuildType("Release").Configure(ctx)
}

// Build is the default build phase: cmake --build <build>.
func Build(ctx context.Context, b *buildsys.Build) error {
	return For(b).Build(ctx)
}

// Install is the default install phase: cmake --install <build>.
func Install(ctx context.Context, b *buildsys.Build) error {
	return For(b).Install(ctx)
}

type defineValue struct {
	value    string
	typeName string
}

// Tool wraps cmake invocations for one build with chainable configuration.
// Override implementations use it to add defines or switch generators
// before delegating to the standard steps.
type Tool struct {
	b         *buildsys.Build
	srcdir    string
	generator string
	buildType string
	toolchain string
	defines   map[string]defineValue
}

// For returns a cmake Tool bound to the given build.
func For(b *buildsys.Build) *Tool {
	return &Tool{b: b, defines: map[string]defineValue{}}
}

// Source points cmake at a CMakeLists.txt outside the source root, for
// projects that keep their cmake tree in a subdirectory.
func (t *Tool) Source(dir string) *Tool {
	t.srcdir = dir
	return t
}

func (t *Tool) Generator(name string) *Tool {
	t.generator = name
	return t
}

func (t *Tool) BuildType(name string) *Tool {
	t.buildType = name
	return t
}

func (t *Tool) Toolchain(path string) *Tool {
	t.toolchain = path
	return t
}

func (t *Tool) Define(key, value string) *Tool {
	t.defines[key] = defineValue{value: value, typeName: "STRING"}
	return t
}

func (t *Tool) DefineBool(key string, value bool) *Tool {
	if value {
		t.defines[key] = defineValue{value: "ON", typeName: "BOOL"}
		return t
	}
	t.defines[key] = defineValue{value: "OFF", typeName: "BOOL"}
	return t
}

func (t *Tool) Configure(ctx context.Context, args ...string) error {
	return t.b.ExecIn(ctx, "", t.b.Tool("cmake"), append(t.ConfigureArgs(), args...)...)
}

func (t *Tool) Build(ctx context.Context, args ...string) error {
	cmdArgs := []string{"--build", t.b.BuildDir}
	if t.buildType != "" {
		cmdArgs = append(cmdArgs, "--config", t.buildType)
	}
	cmdArgs = append(cmdArgs, args...)
	return t.b.ExecIn(ctx, "", t.b.Tool("cmake"), cmdArgs...)
}

func (t *Tool) Install(ctx context.Context, args ...string) error {
	cmdArgs := []string{"--install", t.b.BuildDir}
	if t.b.InstallDir != "" {
		cmdArgs = append(cmdArgs, "--prefix", t.b.InstallDir)
	}
	cmdArgs = append(cmdArgs, args...)
	return t.b.ExecIn(ctx, "", t.b.Tool("cmake"), cmdArgs...)
}

// ConfigureArgs assembles the cmake configure command line.
func (t *Tool) ConfigureArgs() []string {
	src := t.srcdir
	if src == "" {
		src = t.b.SourceDir
	}
	args := []string{"-S", src, "-B", t.b.BuildDir}
	if t.generator != "" {
		args = append(args, "-G", t.generator)
	}
	if t.b.InstallDir != "" {
		t.Define("CMAKE_INSTALL_PREFIX", t.b.InstallDir)
	}
	if t.toolchain != "" {
		t.Define("CMAKE_TOOLCHAIN_FILE", t.toolchain)
	}
	if t.buildType != "" {
		t.Define("CMAKE_BUILD_TYPE", t.buildType)
	}
	return append(args, t.definesArgs()...)
}

func (t *Tool) definesArgs() []string {
	if len(t.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(t.defines))
	for k := range t.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		def := t.defines[k]
		if def.typeName != "" {
			args = append(args, "-D"+k+":"+def.typeName+"="+def.value)
			continue
		}
		args = append(args, "-D"+k+"="+def.value)
	}
	return args
}
