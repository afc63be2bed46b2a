package application

import (
	"context"
	"os"

	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/input"
)

// HealthService provides health check functionality.
type HealthService struct {
	outputDir string
	options   domain.Options
}

// NewHealthService creates a new health service.
func NewHealthService(outputDir string, options domain.Options) *HealthService {
	return &HealthService{
		outputDir: outputDir,
		options:   options,
	}
}

// IsHealthy returns true if the service is healthy.
func (s *HealthService) IsHealthy(ctx context.Context) bool {
	return true // Basic health check
}

// IsReady returns true if the service is ready to accept requests.
func (s *HealthService) IsReady(ctx context.Context) bool {
	if s.options.Extensions.Empty() {
		return false
	}

	info, err := os.Stat(s.outputDir)
	return err == nil && info.IsDir()
}

// GetHealthDetails returns detailed health information.
func (s *HealthService) GetHealthDetails(ctx context.Context) input.HealthDetails {
	components := map[string]string{
		"output_dir": "ok",
		"directives": "ok",
	}
	if info, err := os.Stat(s.outputDir); err != nil || !info.IsDir() {
		components["output_dir"] = "missing"
	}
	if s.options.Extensions.Empty() {
		components["directives"] = "empty extension set"
	}

	return input.HealthDetails{
		Healthy:    s.IsHealthy(ctx),
		Ready:      s.IsReady(ctx),
		OutputDir:  s.outputDir,
		Extensions: s.options.Extensions.List(),
		Components: components,
	}
}
