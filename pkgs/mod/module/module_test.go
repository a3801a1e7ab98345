package module

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestEscapePath(t *testing.T) {
	tests := []struct {
		name        string
		modPath     string
		wantEscaped string
		wantErr     bool
	}{
		{
			name:        "simple path",
			modPath:     "owner/repo",
			wantEscaped: filepath.Join("owner", "repo"),
			wantErr:     false,
		},
		{
			name:        "empty string",
			modPath:     "",
			wantEscaped: "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			escaped, err := EscapePath(tt.modPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("EscapePath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if escaped != tt.wantEscaped {
				t.Errorf("EscapePath() = %v, want %v", escaped, tt.wantEscaped)
			}
		})
	}
}

func TestEscapePath_Invalid(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("absolute path test only applies to windows")
	}

	_, err := EscapePath("C:\\absolute\\path")
	if err == nil {
		t.Error("EscapePath() expected error for absolute path on windows")
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		name string
		v    Version
		want string
	}{
		{
			name: "path and version",
			v:    Version{Path: "owner/repo", Version: "1.0.0"},
			want: "owner/repo@1.0.0",
		},
		{
			name: "path only",
			v:    Version{Path: "owner/repo"},
			want: "owner/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("Version.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
