package domain

// SplitOutcome classifies the terminal state of one candidate.
type SplitOutcome string

// Split outcomes. A candidate whose quadrants all existed already is still
// SplitOK: skipping existing outputs is the idempotence guarantee, not a
// failure.
const (
	SplitOK      SplitOutcome = "ok"
	SplitSkipped SplitOutcome = "skipped"
	SplitFailed  SplitOutcome = "failed"
)

// SkipReason names the pipeline stage that rejected a candidate.
type SkipReason string

// Skip reasons in pipeline order.
const (
	SkipNone        SkipReason = ""
	SkipAcquisition SkipReason = "acquisition"
	SkipGeometry    SkipReason = "geometry"
	SkipFormat      SkipReason = "format"
)

// SplitResult reports what happened to a single candidate. On a write
// failure, Written counts the quadrants that made it to disk before the
// failure; those files are kept.
type SplitResult struct {
	Spec           string       // Input specifier
	Outcome        SplitOutcome // Terminal state
	Reason         SkipReason   // Populated for skips
	Format         string       // Resolved output extension token
	Written        int          // Quadrants newly written
	AlreadyExisted int          // Quadrants skipped because the target existed
	Err            error        // Populated for failures
}
