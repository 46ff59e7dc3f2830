package types

import "golang.org/x/text/unicode/norm"

// NormalizeUnicode returns the NFC normalization of s. Album titles, keyword
// titles, and person names must pass through this exactly once, at load time;
// query input is normalized the same way so comparisons line up.
func NormalizeUnicode(s string) string {
	if s == "" {
		return s
	}
	return norm.NFC.String(s)
}
