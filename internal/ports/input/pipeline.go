// Package input defines the primary/driving ports of the application.
package input

import (
	"context"

	"github.com/imagegrid/quadra/internal/domain"
)

// Runner defines the primary port for executing split passes.
type Runner interface {
	// Run enumerates the given inputs and splits every candidate,
	// sequentially and to completion.
	Run(ctx context.Context, inputs []string) (domain.RunSummary, error)

	// SplitOne processes a single local file, applying the same
	// qualification rules as a full pass.
	SplitOne(ctx context.Context, path string) (domain.SplitResult, error)
}

// StatsProvider defines the primary port for cumulative run statistics.
type StatsProvider interface {
	// Stats returns a snapshot of the processing state accumulated over
	// the process lifetime.
	Stats(ctx context.Context) domain.RunStats
}
