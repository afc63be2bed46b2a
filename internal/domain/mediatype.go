package domain

import "strings"

// MediaType is a MIME content type, either advertised by a remote server
// or derived from a filename extension, e.g. "image/png" or
// "image/jpeg; charset=utf-8".
type MediaType string

// Suffix returns the subtype, the token after the slash with any
// parameters stripped and lower-cased: "image/JPEG; charset=utf-8"
// yields "jpeg". It returns "" when no slash is present.
func (m MediaType) Suffix() string {
	value, _, _ := strings.Cut(string(m), ";")
	_, subtype, ok := strings.Cut(value, "/")
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(subtype))
}

// HasAnyPrefix reports whether the media type starts with one of the
// given prefixes. The comparison is case-insensitive and tolerates
// trailing parameters such as "; charset=utf-8".
func (m MediaType) HasAnyPrefix(prefixes []string) bool {
	lower := strings.ToLower(strings.TrimSpace(string(m)))
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// String returns the raw media type.
func (m MediaType) String() string {
	return string(m)
}
