// Package vercmp provides the version comparison schemes used to order
// module versions. Packages pick a scheme by name; the gnu scheme is the
// default since most upstream tarballs do not follow strict semver.
package vercmp

import "sort"

// Scheme compares two version strings of one versioning convention.
// Compare returns a negative value if a < b, zero if a == b, and a
// positive value if a > b.
type Scheme interface {
	Name() string
	Compare(a, b string) int
}

var schemes = map[string]Scheme{
	"gnu":    gnuScheme{},
	"semver": semverScheme{},
}

// Lookup returns the scheme registered under name.
func Lookup(name string) (Scheme, bool) {
	s, ok := schemes[name]
	return s, ok
}

// Default returns the scheme used when a package does not pick one.
func Default() Scheme {
	return gnuScheme{}
}

// Names returns the names of all known schemes, sorted.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compare compares a and b using the default scheme.
func Compare(a, b string) int {
	return Default().Compare(a, b)
}
