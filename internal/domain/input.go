// Package domain contains the core business entities and value objects.
package domain

import (
	"net/url"
	"os"
	"strings"
)

// InputKind classifies an input specifier. Classification happens once,
// up front, and every later processing decision branches on the kind
// instead of re-probing the specifier.
type InputKind int

// Input kinds in classification order: the filesystem is consulted first,
// URL parsing second.
const (
	KindUnrecognized InputKind = iota
	KindLocalFile
	KindLocalDir
	KindRemoteURL
)

// String returns a human-readable kind name.
func (k InputKind) String() string {
	switch k {
	case KindLocalFile:
		return "local-file"
	case KindLocalDir:
		return "local-dir"
	case KindRemoteURL:
		return "remote-url"
	default:
		return "unrecognized"
	}
}

// RemoteSchemes lists the URL schemes a remote candidate may use.
var RemoteSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"s3":    true,
	"az":    true,
}

// Classify determines the kind of an input specifier. A specifier that
// exists on the local filesystem is classified by its file mode; otherwise
// it must parse as an absolute URL with a recognized scheme and a non-empty
// host to count as remote. Everything else is unrecognized and will be
// silently excluded by the enumerator.
func Classify(spec string) InputKind {
	if info, err := os.Stat(spec); err == nil {
		if info.IsDir() {
			return KindLocalDir
		}
		if info.Mode().IsRegular() {
			return KindLocalFile
		}
		return KindUnrecognized
	}
	u, err := url.Parse(spec)
	if err != nil || u.Host == "" || !RemoteSchemes[strings.ToLower(u.Scheme)] {
		return KindUnrecognized
	}
	return KindRemoteURL
}

// Candidate is one qualified input specifier produced by enumeration.
type Candidate struct {
	Spec string    // Path or URL exactly as enumerated
	Kind InputKind // Classification at enumeration time
}
