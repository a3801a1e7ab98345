package conf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilnpkg/kiln/pkgs/mod/module"
)

// Request is a build request file: the module to build plus the variant
// and platform choices the solver fixed for it. A request is the YAML
// counterpart of the flags accepted by kiln build.
type Request struct {
	Module      string            `yaml:"module"`                 // module path in the form "owner/repo"
	Version     string            `yaml:"version"`                // concrete version string
	Variants    map[string]string `yaml:"variants,omitempty"`     // variant name -> chosen value
	Platform    *PlatformSpec     `yaml:"platform,omitempty"`     // defaults to the host platform
	BuildSystem string            `yaml:"build_system,omitempty"` // explicit strategy choice
}

// PlatformSpec is the platform section of a request file.
type PlatformSpec struct {
	OS   string `yaml:"os"`
	Arch string `yaml:"arch"`
}

// ParseRequest reads and parses a request from either provided data or a
// file path. If data is non-nil, it is used directly and the file
// parameter is ignored. Otherwise, the file is read from the provided path.
func ParseRequest(file string, data []byte) (*Request, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewBuffer(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reader = f
	}

	var req Request

	if err := yaml.NewDecoder(reader).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}

	return &req, nil
}

// Resolve validates the request and produces the resolved configuration
// plus the explicit strategy choice ("" when the request leaves the
// choice to the package's declaration order).
func (req *Request) Resolve() (Resolved, string, error) {
	if req.Module == "" {
		return Resolved{}, "", fmt.Errorf("failed to resolve request: missing module path")
	}
	if req.Version == "" {
		return Resolved{}, "", fmt.Errorf("failed to resolve request: missing version for %s", req.Module)
	}

	platform := Host()
	if req.Platform != nil {
		if req.Platform.OS == "" || req.Platform.Arch == "" {
			return Resolved{}, "", fmt.Errorf("failed to resolve request: platform needs both os and arch")
		}
		platform = Platform{OS: req.Platform.OS, Arch: req.Platform.Arch}
	}

	mod := module.Version{Path: req.Module, Version: req.Version}
	return New(mod, platform, req.Variants), req.BuildSystem, nil
}
