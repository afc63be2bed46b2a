package application

import (
	"context"
	"errors"
	"testing"

	"github.com/imagegrid/quadra/internal/domain"
)

func TestEligibilityCheckerEligible(t *testing.T) {
	set := domain.NewExtensionSet([]string{"png", "jpg", "jpeg", "webp"})

	tests := []struct {
		name   string
		remote *mockRemote
		want   bool
	}{
		{"matching content type", &mockRemote{media: "image/png"}, true},
		{"content type with parameters", &mockRemote{media: "image/png; charset=utf-8"}, true},
		{"uppercase content type", &mockRemote{media: "IMAGE/PNG"}, true},
		{"unsupported image type", &mockRemote{media: "image/tiff"}, false},
		{"non-image content type", &mockRemote{media: "text/html"}, false},
		{"empty content type", &mockRemote{}, false},
		{"probe failure", &mockRemote{probeErr: errors.New("boom")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewEligibilityChecker(tt.remote, testLogger())

			got := checker.Eligible(context.Background(), "https://img.example.com/grid.png", set)
			if got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEligibilityCheckerEmptySetSkipsProbe(t *testing.T) {
	remote := &mockRemote{media: "image/png"}
	checker := NewEligibilityChecker(remote, testLogger())

	if checker.Eligible(context.Background(), "https://img.example.com/grid.png", domain.ExtensionSet{}) {
		t.Error("Eligible() should be false with an empty extension set")
	}
	if len(remote.probed) != 0 {
		t.Errorf("probe ran %d times, want 0", len(remote.probed))
	}
}
