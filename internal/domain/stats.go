package domain

import "time"

// RunSummary aggregates a single pipeline pass over a set of inputs.
type RunSummary struct {
	Inputs           int           // Raw input specifiers
	Qualified        int           // Candidates that survived enumeration
	Split            int           // Candidates split successfully
	Skipped          int           // Candidates skipped before writing
	Failed           int           // Candidates that failed mid-write
	QuadrantsWritten int           // Quadrant files newly created
	QuadrantsExisted int           // Quadrant files skipped as already present
	Duration         time.Duration // Wall time of the pass
}

// Add folds one split result into the summary.
func (s *RunSummary) Add(r SplitResult) {
	switch r.Outcome {
	case SplitOK:
		s.Split++
	case SplitSkipped:
		s.Skipped++
	case SplitFailed:
		s.Failed++
	}
	s.QuadrantsWritten += r.Written
	s.QuadrantsExisted += r.AlreadyExisted
}

// RunStats is the cumulative processing state across all passes of a
// process lifetime, served by the status endpoint.
type RunStats struct {
	Runs             int       `json:"runs"`
	Qualified        int       `json:"qualified"`
	Split            int       `json:"split"`
	Skipped          int       `json:"skipped"`
	Failed           int       `json:"failed"`
	QuadrantsWritten int       `json:"quadrants_written"`
	QuadrantsExisted int       `json:"quadrants_existed"`
	LastRun          time.Time `json:"last_run,omitempty"`
	LastRunDuration  string    `json:"last_run_duration,omitempty"`
}

// Record folds one out-of-pass result into the stats. Watch events are
// processed one file at a time and do not count as a full run.
func (s *RunStats) Record(r SplitResult) {
	s.Qualified++
	switch r.Outcome {
	case SplitOK:
		s.Split++
	case SplitSkipped:
		s.Skipped++
	case SplitFailed:
		s.Failed++
	}
	s.QuadrantsWritten += r.Written
	s.QuadrantsExisted += r.AlreadyExisted
}

// Merge folds a completed pass into the cumulative stats.
func (s *RunStats) Merge(sum RunSummary, at time.Time) {
	s.Runs++
	s.Qualified += sum.Qualified
	s.Split += sum.Split
	s.Skipped += sum.Skipped
	s.Failed += sum.Failed
	s.QuadrantsWritten += sum.QuadrantsWritten
	s.QuadrantsExisted += sum.QuadrantsExisted
	s.LastRun = at
	s.LastRunDuration = sum.Duration.String()
}
