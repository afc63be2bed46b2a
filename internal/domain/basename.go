package domain

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// BaseName derives the output file stem from an input specifier: the final
// path segment without its extension. Remote specifiers contribute only
// their URL path component, so query strings and fragments never leak into
// output file names.
func BaseName(spec string) string {
	var name string
	if u, err := url.Parse(spec); err == nil && RemoteSchemes[strings.ToLower(u.Scheme)] {
		name = path.Base(u.Path)
	} else {
		name = filepath.Base(spec)
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
