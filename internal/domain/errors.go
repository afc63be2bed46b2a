package domain

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnsupported  = errors.New("unsupported operation")
	ErrUnavailable  = errors.New("unavailable")
)

// Specific errors.
var (
	ErrEmptyExtensions   = fmt.Errorf("extension set is empty: %w", ErrInvalidInput)
	ErrOddDimensions     = fmt.Errorf("image dimensions not both even: %w", ErrInvalidInput)
	ErrFormatUnresolved  = fmt.Errorf("output format could not be resolved: %w", ErrUnsupported)
	ErrUnsupportedScheme = fmt.Errorf("url scheme: %w", ErrUnsupported)
	ErrNotEligible       = fmt.Errorf("content type not eligible: %w", ErrInvalidInput)
	ErrNotAcquired       = fmt.Errorf("image not acquired: %w", ErrUnavailable)
)

// ProbeError represents a failed metadata probe against a remote specifier.
type ProbeError struct {
	URL        string // Probed specifier
	StatusCode int    // Response status, 0 when the request never completed
	Err        error  // Underlying error
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("probe %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("probe %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// FetchError represents a failed content retrieval from a remote specifier.
type FetchError struct {
	URL        string // Fetched specifier
	StatusCode int    // Response status, 0 when the request never completed
	Err        error  // Underlying error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError represents a failed image decode.
type DecodeError struct {
	Source string // Path or URL the bytes came from
	Err    error  // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// WriteError represents a failed quadrant write. Quadrants written before
// the failure stay on disk; the in-flight file is removed by the caller.
type WriteError struct {
	Path     string   // Target file that failed
	Quadrant Quadrant // Quadrant being written
	Err      error    // Underlying error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write quadrant %s to %s: %v", e.Quadrant, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}
