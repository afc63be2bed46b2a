package application

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/imagegrid/quadra/internal/domain"
	"github.com/imagegrid/quadra/internal/ports/output"
)

// Enumerator walks the declared inputs and produces the qualified
// candidates for one pass. All candidate-level problems are silent
// exclusions; the only error it ever returns is context cancellation.
type Enumerator struct {
	eligibility *EligibilityChecker
	metrics     output.MetricsCollector
	logger      *slog.Logger
	outputDir   string
	options     domain.Options
}

// NewEnumerator creates a new candidate enumerator.
func NewEnumerator(
	eligibility *EligibilityChecker,
	metrics output.MetricsCollector,
	logger *slog.Logger,
	outputDir string,
	options domain.Options,
) *Enumerator {
	return &Enumerator{
		eligibility: eligibility,
		metrics:     metrics,
		logger:      logger,
		outputDir:   outputDir,
		options:     options,
	}
}

// Enumerate classifies each input specifier in order and collects the
// qualified candidates. Input order is preserved; order within a
// directory is traversal order.
func (e *Enumerator) Enumerate(ctx context.Context, inputs []string) ([]domain.Candidate, error) {
	var candidates []domain.Candidate

	for _, spec := range inputs {
		if err := ctx.Err(); err != nil {
			return candidates, err
		}

		switch kind := domain.Classify(spec); kind {
		case domain.KindLocalFile:
			if !e.QualifiesFile(spec) {
				e.logger.Debug("excluding file with unsupported extension", "path", spec)
				continue
			}
			candidates = e.append(candidates, spec, kind)

		case domain.KindLocalDir:
			dirCandidates, err := e.enumerateDir(ctx, spec)
			if err != nil {
				return candidates, err
			}
			candidates = append(candidates, dirCandidates...)

		case domain.KindRemoteURL:
			if !e.eligibility.Eligible(ctx, spec, e.options.Extensions) {
				e.logger.Debug("excluding remote specifier", "url", spec)
				continue
			}
			candidates = e.append(candidates, spec, kind)

		default:
			e.logger.Debug("excluding unrecognized input", "input", spec)
		}
	}

	return candidates, nil
}

// QualifiesFile applies the local-file qualification rule: the extension,
// lower-cased and dot-stripped, must be in the supported set.
func (e *Enumerator) QualifiesFile(path string) bool {
	return e.options.Extensions.MatchesPath(path)
}

// InOutputDir reports whether the path lies in or under the output
// directory.
func (e *Enumerator) InOutputDir(path string) bool {
	absPath, errPath := filepath.Abs(path)
	absOut, errOut := filepath.Abs(e.outputDir)
	if errPath != nil || errOut != nil {
		return samePath(path, e.outputDir)
	}

	rel, err := filepath.Rel(absOut, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// enumerateDir dispatches on the recursion policy. A directory identical
// to the output directory is skipped entirely.
func (e *Enumerator) enumerateDir(ctx context.Context, dir string) ([]domain.Candidate, error) {
	if samePath(dir, e.outputDir) {
		e.logger.Debug("skipping output directory", "dir", dir)
		return nil, nil
	}

	if e.options.Recursive {
		return e.walkDir(ctx, dir)
	}
	return e.listDir(dir), nil
}

// walkDir descends the full subtree. The extension filter applies to
// every regular file and the output directory subtree is pruned.
func (e *Enumerator) walkDir(ctx context.Context, dir string) ([]domain.Candidate, error) {
	var candidates []domain.Candidate

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			e.logger.Debug("walk error", "path", path, "error", err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if samePath(path, e.outputDir) {
				e.logger.Debug("pruning output directory", "dir", path)
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if e.QualifiesFile(path) {
			candidates = e.append(candidates, path, domain.KindLocalFile)
		}
		return nil
	})
	if err != nil {
		return candidates, err
	}

	return candidates, nil
}

// listDir returns every regular file among the directory's immediate
// entries. The extension filter is not applied on this shallow path; the
// looser non-recursive policy is intentional and preserved.
func (e *Enumerator) listDir(dir string) []domain.Candidate {
	entries, err := os.ReadDir(dir)
	if err != nil {
		e.logger.Debug("listing directory failed", "dir", dir, "error", err)
		return nil
	}

	var candidates []domain.Candidate
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		candidates = e.append(candidates, filepath.Join(dir, entry.Name()), domain.KindLocalFile)
	}

	return candidates
}

func (e *Enumerator) append(candidates []domain.Candidate, spec string, kind domain.InputKind) []domain.Candidate {
	e.metrics.IncCandidates(kind.String())
	return append(candidates, domain.Candidate{Spec: spec, Kind: kind})
}

// samePath reports whether two paths name the same filesystem entity,
// falling back to raw string comparison when either does not exist. A
// relative and an absolute spelling of a not-yet-created directory are
// therefore not detected as identical.
func samePath(a, b string) bool {
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(infoA, infoB)
	}
	return a == b
}
