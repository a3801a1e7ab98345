package vcs

import "strings"

// MatchTag returns the repository tag that checks out the given
// version. Upstreams disagree on whether tags carry a "v" prefix, so
// both forms are tried, the bare version first.
func MatchTag(tags []string, version string) (string, bool) {
	for _, want := range []string{version, "v" + version} {
		for _, tag := range tags {
			if tag == want {
				return tag, true
			}
		}
	}
	return "", false
}

// Versions maps tags to bare version strings. A leading "v" is
// stripped; tags that still do not start with a digit are dropped.
func Versions(tags []string) []string {
	var versions []string
	for _, tag := range tags {
		v := strings.TrimPrefix(tag, "v")
		if v == "" || v[0] < '0' || v[0] > '9' {
			continue
		}
		versions = append(versions, v)
	}
	return versions
}
