package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/imagegrid/quadra/internal/domain"
)

func TestContentTypeResolverResolve(t *testing.T) {
	dir, err := os.MkdirTemp("", "quadra-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	pngPath := filepath.Join(dir, "grid.png")
	if err := os.WriteFile(pngPath, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	unknownPath := filepath.Join(dir, "grid.zzz")
	if err := os.WriteFile(unknownPath, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tests := []struct {
		name      string
		spec      string
		remote    *mockRemote
		wantMedia domain.MediaType
		wantOK    bool
	}{
		{
			name:      "local png file",
			spec:      pngPath,
			remote:    &mockRemote{},
			wantMedia: "image/png",
			wantOK:    true,
		},
		{
			name:      "local file with unknown extension",
			spec:      unknownPath,
			remote:    &mockRemote{},
			wantMedia: "",
			wantOK:    false,
		},
		{
			name:      "remote probe succeeds",
			spec:      "https://img.example.com/grid.webp",
			remote:    &mockRemote{media: "image/webp"},
			wantMedia: "image/webp",
			wantOK:    true,
		},
		{
			name:      "remote probe fails",
			spec:      "https://img.example.com/grid.png",
			remote:    &mockRemote{probeErr: errors.New("boom")},
			wantMedia: "",
			wantOK:    false,
		},
		{
			name:      "remote probe returns empty type",
			spec:      "https://img.example.com/grid.png",
			remote:    &mockRemote{},
			wantMedia: "",
			wantOK:    false,
		},
		{
			name:      "unrecognized input",
			spec:      filepath.Join(dir, "absent.png"),
			remote:    &mockRemote{media: "image/png"},
			wantMedia: "",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewContentTypeResolver(tt.remote, testLogger())

			media, ok := resolver.Resolve(context.Background(), tt.spec)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if media != tt.wantMedia {
				t.Errorf("Resolve() media = %q, want %q", media, tt.wantMedia)
			}
		})
	}
}

func TestContentTypeResolverProbesOriginalURL(t *testing.T) {
	remote := &mockRemote{media: "image/png"}
	resolver := NewContentTypeResolver(remote, testLogger())

	spec := "https://img.example.com/grid.png?size=large&v=2#frag"
	if _, ok := resolver.Resolve(context.Background(), spec); !ok {
		t.Fatal("Resolve() should succeed")
	}

	if len(remote.probed) != 1 {
		t.Fatalf("probe ran %d times, want 1", len(remote.probed))
	}
	if remote.probed[0] != spec {
		t.Errorf("probed %q, want the original specifier %q", remote.probed[0], spec)
	}
}

func TestStripQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"query removed", "https://example.com/a.png?x=1", "https://example.com/a.png"},
		{"fragment removed", "https://example.com/a.png#frag", "https://example.com/a.png"},
		{"query and fragment removed", "https://example.com/a.png?x=1#frag", "https://example.com/a.png"},
		{"unchanged without query", "https://example.com/a.png", "https://example.com/a.png"},
		{"unparseable left alone", "http://%zz", "http://%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripQuery(tt.url); got != tt.want {
				t.Errorf("stripQuery(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
