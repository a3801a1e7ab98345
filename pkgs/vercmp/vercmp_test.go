// Copyright 2026 The kiln Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vercmp

import (
	"testing"
)

func TestGNUCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		// Basic version comparisons
		{"1.0", "2.0", -1},
		{"2.0", "1.0", 1},
		{"1.0", "1.0", 0},

		// Multi-part versions
		{"1.0.0", "1.0.1", -1},
		{"1.0.1", "1.0.0", 1},
		{"1.2.3", "1.2.4", -1},
		{"1.2.10", "1.2.9", 1},

		// Numeric comparison (not lexicographic)
		{"1.10", "1.9", 1},
		{"1.2", "1.10", -1},
		{"10", "9", 1},
		{"2", "10", -1},

		// Leading zeros
		{"1.01", "1.1", 0},
		{"1.001", "1.1", 0},
		{"01", "1", 0},
		{"001", "01", 0},

		// Empty strings
		{"", "", 0},
		{"1", "", 1},
		{"", "1", -1},

		// Tilde sorts before everything, including end of string
		{"1.0~rc1", "1.0", -1},
		{"1.0~", "1.0", -1},
		{"1.0~alpha", "1.0~beta", -1},
		{"~", "", -1},

		// Letters vs numbers
		{"a", "1", 1},
		{"1a", "1b", -1},
		{"1.0a", "1.0b", -1},
		{"1.0a", "1.0", 1},

		// Pre-release suffixes
		{"1.0alpha", "1.0beta", -1},
		{"1.0alpha1", "1.0alpha2", -1},
		{"1.0.0-rc1", "1.0.0-rc2", -1},
		{"1.0.0-rc10", "1.0.0-rc9", 1},

		// Real-world examples
		{"2.6.32", "2.6.32.1", -1},
		{"3.0", "2.6.39", 1},
		{"0.9.9", "1.0.0", -1},

		// With prefixes
		{"v1.0.0", "v1.0.1", -1},
		{"v2.0", "v10.0", -1},
		{"release-1.0", "release-2.0", -1},

		// Separator characters rank above letters
		{"1.0.0", "1.0.0.0", -1},
		{"1-2", "1.2", -1},
		{"1_2", "1.2", 1},

		// Debian-style versions
		{"1.0+git20200101", "1.0+git20200102", -1},
		{"1.0~git20200101", "1.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestGNUCompareSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"1.0", "2.0"},
		{"1.10", "1.9"},
		{"1.0~rc1", "1.0"},
		{"a", "b"},
		{"1.0alpha", "1.0beta"},
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if ab, ba := Compare(a, b), Compare(b, a); ab != -ba {
			t.Errorf("symmetry violated: Compare(%q, %q)=%d, Compare(%q, %q)=%d", a, b, ab, b, a, ba)
		}
	}
}

func TestGNUCompareReflexive(t *testing.T) {
	versions := []string{
		"",
		"0",
		"1",
		"1.0",
		"1.0.0",
		"1.0~rc1",
		"1.0alpha",
		"v2.0.0",
	}

	for _, v := range versions {
		if got := Compare(v, v); got != 0 {
			t.Errorf("Compare(%q, %q) = %d, want 0", v, v, got)
		}
	}
}

func TestSemverCompare(t *testing.T) {
	s, ok := Lookup("semver")
	if !ok {
		t.Fatal("semver scheme not registered")
	}

	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "2.0.0", -1},
		{"v1.0.0", "1.0.0", 0},
		{"1.2.3", "v1.2.3", 0},
		{"1.0.0-rc.1", "1.0.0", -1},
		{"2.0.0", "10.0.0", -1},
		{"1.9.0", "1.10.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := s.Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"gnu", "semver"} {
		s, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		if s.Name() != name {
			t.Errorf("Lookup(%q).Name() = %q", name, s.Name())
		}
	}

	if _, ok := Lookup("calver"); ok {
		t.Error("Lookup(\"calver\") = ok, want not found")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"gnu", "semver"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDefault(t *testing.T) {
	if got := Default().Name(); got != "gnu" {
		t.Errorf("Default().Name() = %q, want %q", got, "gnu")
	}
}
