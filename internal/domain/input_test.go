package domain

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "classify-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	filePath := filepath.Join(tmpDir, "grid.png")
	if err := os.WriteFile(filePath, []byte("not a real png"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name string
		spec string
		want InputKind
	}{
		{"existing file", filePath, KindLocalFile},
		{"existing directory", tmpDir, KindLocalDir},
		{"http url", "http://example.com/grid.png", KindRemoteURL},
		{"https url", "https://example.com/grid.png?size=large", KindRemoteURL},
		{"s3 url", "s3://bucket/grids/composite.png", KindRemoteURL},
		{"azure url", "az://container/grids/composite.png", KindRemoteURL},
		{"uppercase scheme", "HTTPS://example.com/grid.png", KindRemoteURL},
		{"missing local path", filepath.Join(tmpDir, "missing.png"), KindUnrecognized},
		{"unsupported scheme", "ftp://example.com/grid.png", KindUnrecognized},
		{"scheme without host", "https:///grid.png", KindUnrecognized},
		{"bare word", "grid.png", KindUnrecognized},
		{"empty string", "", KindUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.spec); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestClassifyPrefersFilesystem(t *testing.T) {
	// A specifier that both exists locally and parses as a URL is local.
	tmpDir, err := os.MkdirTemp("", "classify-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	ambiguous := filepath.Join(tmpDir, "https:")
	if err := os.MkdirAll(filepath.Join(ambiguous, "host"), 0755); err != nil {
		t.Fatalf("Failed to create ambiguous dir: %v", err)
	}

	if got := Classify(ambiguous); got != KindLocalDir {
		t.Errorf("Classify(%q) = %v, want %v", ambiguous, got, KindLocalDir)
	}
}

func TestInputKindString(t *testing.T) {
	tests := []struct {
		kind InputKind
		want string
	}{
		{KindLocalFile, "local-file"},
		{KindLocalDir, "local-dir"},
		{KindRemoteURL, "remote-url"},
		{KindUnrecognized, "unrecognized"},
		{InputKind(99), "unrecognized"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("InputKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
