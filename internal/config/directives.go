package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imagegrid/quadra/internal/domain"
)

// Directive file names inside the directives directory. Each file holds a
// single directive in plain text.
const (
	ExtensionsFile   = "extensions.txt"
	OutputFormatFile = "output_format.txt"
	RecursiveFile    = "recursive.txt"
)

// defaultDirectives is written on first start for any missing file.
var defaultDirectives = map[string]string{
	ExtensionsFile:   "png\njpg\njpeg\nwebp\n",
	OutputFormatFile: "default\n",
	RecursiveFile:    "true\n",
}

// EnsureDirectives creates the directives directory and writes default
// content for any missing directive file. Existing files are left alone.
func EnsureDirectives(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating directives directory: %w", err)
	}

	for name, content := range defaultDirectives {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("checking %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing default %s: %w", name, err)
		}
	}

	return nil
}

// LoadOptions reads the three directive files and assembles the immutable
// run options. It is called exactly once per process; a missing or
// malformed file is a fatal configuration error.
func LoadOptions(dir string) (domain.Options, error) {
	extensions, err := loadExtensions(filepath.Join(dir, ExtensionsFile))
	if err != nil {
		return domain.Options{}, err
	}

	format, err := loadOutputFormat(filepath.Join(dir, OutputFormatFile))
	if err != nil {
		return domain.Options{}, err
	}

	recursive, err := loadRecursive(filepath.Join(dir, RecursiveFile))
	if err != nil {
		return domain.Options{}, err
	}

	return domain.Options{
		Extensions: extensions,
		Format:     format,
		Recursive:  recursive,
	}, nil
}

// loadExtensions parses the newline-separated extension tokens. An empty
// result is malformed: a run with no qualifying extensions is never
// intended.
func loadExtensions(path string) (domain.ExtensionSet, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is under the configured directives dir
	if err != nil {
		return domain.ExtensionSet{}, fmt.Errorf("reading extensions directive: %w", err)
	}

	set := domain.NewExtensionSet(strings.Split(string(data), "\n"))
	if set.Empty() {
		return domain.ExtensionSet{}, fmt.Errorf("extensions directive %s: %w", path, domain.ErrEmptyExtensions)
	}

	return set, nil
}

// loadOutputFormat takes the first non-blank line, lower-cased. The value
// is either a literal format token or the "default" sentinel.
func loadOutputFormat(path string) (domain.FormatPreference, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is under the configured directives dir
	if err != nil {
		return "", fmt.Errorf("reading output format directive: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if token := strings.ToLower(strings.TrimSpace(line)); token != "" {
			return domain.FormatPreference(token), nil
		}
	}

	return "", fmt.Errorf("output format directive %s is empty: %w", path, domain.ErrInvalidInput)
}

// loadRecursive parses the recursion flag. Recognized truthy values are
// "yes" and "true", case-insensitive; anything else, including an empty
// file, is falsy.
func loadRecursive(path string) (bool, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is under the configured directives dir
	if err != nil {
		return false, fmt.Errorf("reading recursive directive: %w", err)
	}

	value := strings.ToLower(strings.TrimSpace(string(data)))
	return value == "yes" || value == "true", nil
}
