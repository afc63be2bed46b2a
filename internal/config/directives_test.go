package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/imagegrid/quadra/internal/domain"
)

func TestEnsureDirectivesCreatesDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "directives-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dir := filepath.Join(tmpDir, "config")
	if err := EnsureDirectives(dir); err != nil {
		t.Fatalf("EnsureDirectives() error = %v", err)
	}

	opts, err := LoadOptions(dir)
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}

	wantExts := []string{"jpeg", "jpg", "png", "webp"}
	if got := opts.Extensions.List(); !reflect.DeepEqual(got, wantExts) {
		t.Errorf("default extensions = %v, want %v", got, wantExts)
	}
	if !opts.Format.IsDefault() {
		t.Errorf("default format = %q, want the deferral sentinel", opts.Format)
	}
	if !opts.Recursive {
		t.Error("default recursive = false, want true")
	}
}

func TestEnsureDirectivesKeepsExisting(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "directives-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, ExtensionsFile)
	if err := os.WriteFile(path, []byte("gif\n"), 0644); err != nil {
		t.Fatalf("Failed to seed directive: %v", err)
	}

	if err := EnsureDirectives(tmpDir); err != nil {
		t.Fatalf("EnsureDirectives() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read directive: %v", err)
	}
	if string(data) != "gif\n" {
		t.Errorf("existing directive was overwritten: %q", data)
	}
}

func TestLoadOptionsMissingFileFatal(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "directives-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Only two of three directives present.
	writeDirective(t, tmpDir, ExtensionsFile, "png\n")
	writeDirective(t, tmpDir, OutputFormatFile, "default\n")

	if _, err := LoadOptions(tmpDir); err == nil {
		t.Error("LoadOptions() should fail when a directive file is missing")
	}
}

func TestLoadOptionsEmptyExtensions(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "directives-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeDirective(t, tmpDir, ExtensionsFile, "\n\n  \n")
	writeDirective(t, tmpDir, OutputFormatFile, "png\n")
	writeDirective(t, tmpDir, RecursiveFile, "true\n")

	if _, err := LoadOptions(tmpDir); err == nil {
		t.Error("LoadOptions() should reject an empty extension set")
	}
}

func TestLoadOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.FormatPreference
		wantErr bool
	}{
		{"literal token", "png\n", "png", false},
		{"sentinel", "default\n", "default", false},
		{"upper-cased", "PNG\n", "png", false},
		{"first non-blank line wins", "\n\njpg\npng\n", "jpg", false},
		{"surrounding whitespace", "  webp  \n", "webp", false},
		{"empty file", "", "", true},
		{"only blank lines", "\n  \n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir, err := os.MkdirTemp("", "directives-test-*")
			if err != nil {
				t.Fatalf("Failed to create temp dir: %v", err)
			}
			defer os.RemoveAll(tmpDir)

			path := filepath.Join(tmpDir, OutputFormatFile)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write directive: %v", err)
			}

			got, err := loadOutputFormat(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("loadOutputFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadRecursive(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"true", "true\n", true},
		{"yes", "yes\n", true},
		{"mixed case", "TrUe\n", true},
		{"yes with whitespace", "  YES  \n", true},
		{"false", "false\n", false},
		{"no", "no\n", false},
		{"arbitrary text", "recursive\n", false},
		{"numeric one", "1\n", false},
		{"empty file", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir, err := os.MkdirTemp("", "directives-test-*")
			if err != nil {
				t.Fatalf("Failed to create temp dir: %v", err)
			}
			defer os.RemoveAll(tmpDir)

			path := filepath.Join(tmpDir, RecursiveFile)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write directive: %v", err)
			}

			got, err := loadRecursive(path)
			if err != nil {
				t.Fatalf("loadRecursive() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("loadRecursive(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func writeDirective(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}
