package output

import "time"

// MetricsCollector defines the secondary port for metrics collection.
type MetricsCollector interface {
	// IncCandidates counts an enumerated candidate by input kind.
	IncCandidates(kind string)

	// IncSplits counts a finished candidate by outcome.
	IncSplits(outcome string)

	// AddQuadrants counts quadrant files by result (written or existed).
	AddQuadrants(result string, n int)

	// IncProbes counts a remote metadata probe.
	IncProbes(scheme string, success bool)

	// IncFetches counts a remote content fetch.
	IncFetches(scheme string, success bool)

	// ObserveSplitDuration records the wall time of one candidate split.
	ObserveSplitDuration(duration time.Duration)

	// ObserveAcquireDuration records acquisition time by origin.
	ObserveAcquireDuration(origin string, duration time.Duration)

	// SetWatchedDirs sets the number of directories under watch.
	SetWatchedDirs(count int)
}

// Quadrant result labels used with AddQuadrants.
const (
	QuadrantWritten = "written"
	QuadrantExisted = "existed"
)

// NoOpMetrics is a no-op implementation of MetricsCollector.
type NoOpMetrics struct{}

// IncCandidates implements MetricsCollector.
func (n *NoOpMetrics) IncCandidates(_ string) {}

// IncSplits implements MetricsCollector.
func (n *NoOpMetrics) IncSplits(_ string) {}

// AddQuadrants implements MetricsCollector.
func (n *NoOpMetrics) AddQuadrants(_ string, _ int) {}

// IncProbes implements MetricsCollector.
func (n *NoOpMetrics) IncProbes(_ string, _ bool) {}

// IncFetches implements MetricsCollector.
func (n *NoOpMetrics) IncFetches(_ string, _ bool) {}

// ObserveSplitDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveSplitDuration(_ time.Duration) {}

// ObserveAcquireDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveAcquireDuration(_ string, _ time.Duration) {}

// SetWatchedDirs implements MetricsCollector.
func (n *NoOpMetrics) SetWatchedDirs(_ int) {}
