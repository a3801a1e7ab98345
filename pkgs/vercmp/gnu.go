package vercmp

import "strings"

// gnuScheme orders versions the way GNU sort -V and dpkg do: the strings
// are split into alternating non-digit and digit segments, digit segments
// compare by numeric value, and '~' sorts before everything else,
// including the end of the string (so "1.0~rc1" < "1.0").
type gnuScheme struct{}

func (gnuScheme) Name() string { return "gnu" }

func (gnuScheme) Compare(a, b string) int {
	for a != "" || b != "" {
		var sa, sb string
		sa, a = span(a, false)
		sb, b = span(b, false)
		if c := compareAlpha(sa, sb); c != 0 {
			return c
		}
		sa, a = span(a, true)
		sb, b = span(b, true)
		if c := compareNumeric(sa, sb); c != 0 {
			return c
		}
	}
	return 0
}

// span splits off the leading run of digit (or non-digit) bytes.
func span(s string, digits bool) (seg, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

// compareAlpha compares two non-digit segments position by position.
// Per position: '~' sorts first, then end-of-segment, then letters by
// byte value, then every other byte after all letters.
func compareAlpha(a, b string) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		ra, rb := byteRank(a, i), byteRank(b, i)
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
	}
	return 0
}

func byteRank(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	switch c := s[i]; {
	case c == '~':
		return -1
	case isAlpha(c):
		return int(c)
	default:
		return int(c) + 256
	}
}

// compareNumeric compares two digit segments by value. Leading zeros are
// insignificant, so "002" == "2" and "1.01" == "1.1".
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
