package domain

import (
	"path/filepath"
	"sort"
	"strings"
)

// ExtensionSet is the set of filename extensions that qualify candidates
// for splitting. Tokens are stored lower-cased without a leading dot and
// the set is immutable once built.
type ExtensionSet struct {
	tokens map[string]struct{}
}

// NewExtensionSet builds a set from raw directive tokens. Tokens are
// trimmed, lower-cased and stripped of a leading dot; blank tokens are
// ignored.
func NewExtensionSet(tokens []string) ExtensionSet {
	set := ExtensionSet{tokens: make(map[string]struct{}, len(tokens))}
	for _, t := range tokens {
		t = normalizeExt(t)
		if t == "" {
			continue
		}
		set.tokens[t] = struct{}{}
	}
	return set
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// Contains reports whether the extension token is in the set. The argument
// is normalized the same way as the stored tokens, so ".PNG" matches "png".
func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s.tokens[normalizeExt(ext)]
	return ok
}

// MatchesPath reports whether the path's extension is in the set. Files
// without an extension never match.
func (s ExtensionSet) MatchesPath(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	return s.Contains(ext)
}

// MIMEPrefixes returns the acceptable content-type prefixes for remote
// eligibility, one "image/<token>" entry per extension, sorted.
func (s ExtensionSet) MIMEPrefixes() []string {
	prefixes := make([]string, 0, len(s.tokens))
	for t := range s.tokens {
		prefixes = append(prefixes, "image/"+t)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Empty reports whether the set has no tokens.
func (s ExtensionSet) Empty() bool {
	return len(s.tokens) == 0
}

// Len returns the number of tokens in the set.
func (s ExtensionSet) Len() int {
	return len(s.tokens)
}

// List returns the tokens in sorted order.
func (s ExtensionSet) List() []string {
	list := make([]string, 0, len(s.tokens))
	for t := range s.tokens {
		list = append(list, t)
	}
	sort.Strings(list)
	return list
}
