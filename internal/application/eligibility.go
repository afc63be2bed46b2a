package application

import (
	"context"
	"log/slog"

	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/output"
)

// EligibilityChecker decides whether a remote specifier advertises a
// supported image content type.
type EligibilityChecker struct {
	remote output.RemoteSource
	logger *slog.Logger
}

// NewEligibilityChecker creates a new eligibility checker.
func NewEligibilityChecker(remote output.RemoteSource, logger *slog.Logger) *EligibilityChecker {
	return &EligibilityChecker{
		remote: remote,
		logger: logger,
	}
}

// Eligible probes the specifier and matches the advertised content type
// against "image/<token>" for every supported extension token. The match
// is a prefix match so parameters like "; charset=utf-8" do not disqualify
// a response. An empty extension set, a failed probe or a non-success
// status all yield false, never an error.
func (c *EligibilityChecker) Eligible(ctx context.Context, rawURL string, set domain.ExtensionSet) bool {
	if set.Empty() {
		return false
	}

	media, err := c.remote.Probe(ctx, rawURL)
	if err != nil {
		c.logger.Debug("eligibility probe failed", "url", rawURL, "error", err)
		return false
	}

	return media.HasAnyPrefix(set.MIMEPrefixes())
}
