package vercmp

import "golang.org/x/mod/semver"

// semverScheme compares versions under Semantic Versioning 2.0.0. The
// leading "v" required by golang.org/x/mod/semver is added when missing,
// so "1.2.3" and "v1.2.3" compare equal.
type semverScheme struct{}

func (semverScheme) Name() string { return "semver" }

func (semverScheme) Compare(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

func canonical(v string) string {
	if v == "" || v[0] == 'v' {
		return v
	}
	return "v" + v
}
