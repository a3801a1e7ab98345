package buildsys

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/kilnpkg/kiln/pkgs/conf"
	"github.com/kilnpkg/kiln/pkgs/mod/module"
)

// Build bundles everything a phase implementation may touch: the module
// being built, its resolved configuration, the source/build/install
// directories, and an environment overlay applied to every command the
// phase runs. The overlay never leaks into the process environment.
type Build struct {
	Module     module.Version
	Config     conf.Resolved
	SourceDir  string
	BuildDir   string
	InstallDir string

	// Command output. Nil writers fall back to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	env   map[string]string
	tools map[string]string
}

// Setenv sets an environment variable for commands run by this build.
func (b *Build) Setenv(key, val string) {
	if b.env == nil {
		b.env = map[string]string{}
	}
	b.env[key] = val
}

// Getenv returns the build's value for key, falling back to the process
// environment.
func (b *Build) Getenv(key string) string {
	if v, ok := b.env[key]; ok {
		return v
	}
	return os.Getenv(key)
}

// PrependEnv prepends a path entry to a list-valued environment variable
// using the platform separator.
func (b *Build) PrependEnv(key, value string) {
	sep := ":"
	if runtime.GOOS == "windows" {
		sep = ";"
	}
	current := b.Getenv(key)
	if current == "" {
		b.Setenv(key, value)
	} else {
		b.Setenv(key, value+sep+current)
	}
}

// AppendFlag appends a flag to a space-separated environment variable
// such as CPPFLAGS or LDFLAGS.
func (b *Build) AppendFlag(key, flag string) {
	current := b.Getenv(key)
	if current == "" {
		b.Setenv(key, flag)
	} else {
		b.Setenv(key, strings.TrimSpace(current+" "+flag))
	}
}

// Environ returns the merged process + overlay environment, sorted.
func (b *Build) Environ() []string {
	return mergeEnv(os.Environ(), b.env)
}

// SetTool overrides the executable used for the named tool (for example
// "make" -> "gmake").
func (b *Build) SetTool(name, path string) {
	if b.tools == nil {
		b.tools = map[string]string{}
	}
	b.tools[name] = path
}

// Tool returns the executable for the named tool, defaulting to the name
// itself.
func (b *Build) Tool(name string) string {
	if p, ok := b.tools[name]; ok {
		return p
	}
	return name
}

// Exec runs a command in the build directory with the merged environment.
func (b *Build) Exec(ctx context.Context, bin string, args ...string) error {
	return b.ExecIn(ctx, b.BuildDir, bin, args...)
}

// ExecIn runs a command in dir with the merged environment.
func (b *Build) ExecIn(ctx context.Context, dir, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	cmd.Stdout = b.stdout()
	cmd.Stderr = b.stderr()
	cmd.Env = b.Environ()
	return cmd.Run()
}

func (b *Build) stdout() io.Writer {
	if b.Stdout != nil {
		return b.Stdout
	}
	return os.Stdout
}

func (b *Build) stderr() io.Writer {
	if b.Stderr != nil {
		return b.Stderr
	}
	return os.Stderr
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
