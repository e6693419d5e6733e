package renamer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/meysamhadeli/renamai/logging"
	"github.com/meysamhadeli/renamai/naming"
	"github.com/meysamhadeli/renamai/suggestion"
)

// Eligibility decides whether a filename takes part in the batch.
type Eligibility interface {
	IsEligible(filename string) bool
}

// Suggester proposes a new name for a file.
type Suggester interface {
	Suggest(ctx context.Context, filename string) suggestion.Result
}

// ConfirmFunc is asked before a rename is applied; false skips the file.
type ConfirmFunc func(plan RenamePlan) (bool, error)

// Options configures a Renamer.
type Options struct {
	Filter             Eligibility
	Suggester          Suggester
	MaxDuplicateSuffix int
	DryRun             bool
	Confirm            ConfirmFunc
	Reporter           Reporter
	Logger             *logging.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Renamer renames the eligible files of a directory one at a time.
type Renamer struct {
	filter    Eligibility
	suggester Suggester
	maxSuffix int
	dryRun    bool
	confirm   ConfirmFunc
	reporter  Reporter
	logger    *logging.Logger
	now       func() time.Time
}

// New creates a Renamer from opts.
func New(opts Options) *Renamer {
	r := &Renamer{
		filter:    opts.Filter,
		suggester: opts.Suggester,
		maxSuffix: opts.MaxDuplicateSuffix,
		dryRun:    opts.DryRun,
		confirm:   opts.Confirm,
		reporter:  opts.Reporter,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if r.reporter == nil {
		r.reporter = NopReporter{}
	}
	if r.logger == nil {
		r.logger = logging.NewNopLogger()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.maxSuffix <= 0 {
		r.maxSuffix = 1000
	}
	return r
}

// Run processes dir once. A missing directory is reported and yields stats
// with DirMissing set and a nil error. The returned error is non-nil only when
// the batch could not run to the end: the directory could not be listed, the
// context was cancelled, or a duplicate name ran out of suffixes.
func (r *Renamer) Run(ctx context.Context, dir string) (*RunStats, error) {
	stats := &RunStats{Dir: dir}
	log := r.logger.With("dir", dir, "dry_run", r.dryRun)
	r.reporter.Directory(dir)

	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		stats.DirMissing = true
		log.Error("directory does not exist")
		r.reporter.DirMissing(dir)
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("%s is not a directory", dir)
	}

	files, err := listFiles(dir)
	if err != nil {
		return stats, err
	}

	var eligible []string
	for _, name := range files {
		if r.filter.IsEligible(name) {
			eligible = append(eligible, name)
		}
	}
	stats.TotalFiles = len(files)
	stats.Eligible = len(eligible)
	log.Info("directory listed", "total_files", stats.TotalFiles, "eligible_files", stats.Eligible)
	r.reporter.Listed(stats.TotalFiles, stats.Eligible)

	if len(eligible) == 0 {
		log.Info("no eligible files to process")
		return stats, nil
	}

	var state naming.DirState = naming.LiveDir{Dir: dir}
	var planned *naming.PlannedDir
	if r.dryRun {
		planned = naming.NewPlannedDir(state)
		state = planned
	}

	tracker := newProgressTracker(len(eligible), r.now)
	r.reporter.Progress(tracker.current())

	for _, name := range eligible {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = tracker.current().Elapsed
			log.Warn("run interrupted", "processed", stats.Processed, "remaining", stats.Eligible-stats.Processed)
			return stats, err
		}

		r.reporter.FileStarted(name)
		result := r.processFile(ctx, dir, name, state, planned)
		r.logResult(log, result)
		r.reporter.FileDone(result)

		if errors.Is(result.Err, naming.ErrTooManyDuplicates) {
			stats.Elapsed = tracker.current().Elapsed
			return stats, result.Err
		}

		stats.record(result)
		r.reporter.Progress(tracker.advance())
	}

	stats.Elapsed = tracker.current().Elapsed
	log.Info("directory processing complete",
		"renamed", stats.Renamed, "planned", stats.Planned, "noop", stats.NoOp,
		"skipped", stats.Skipped, "failed", stats.Failed, "suggestion_errors", stats.SuggestionErrors)
	return stats, nil
}

// processFile takes one eligible file from suggestion to rename.
func (r *Renamer) processFile(ctx context.Context, dir, name string, state naming.DirState, planned *naming.PlannedDir) FileResult {
	result := FileResult{Plan: RenamePlan{Original: name}}

	suggested := r.suggester.Suggest(ctx, name)
	result.Suggestion = suggested.Outcome
	if suggested.Outcome == suggestion.OutcomeEmpty {
		result.Status = StatusSkipped
		result.Reason = "could not get new filename"
		return result
	}
	result.Plan.Suggested = suggested.Name

	if err := naming.ValidateName(suggested.Name); err != nil {
		result.Status = StatusSkipped
		result.Reason = "suggestion is not a valid filename"
		result.Err = err
		return result
	}

	final, err := naming.ResolveDuplicate(state, name, suggested.Name, r.maxSuffix)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.Plan.Final = final

	if final == name {
		result.Status = StatusNoOp
		result.Reason = "filename already correct"
		if suggested.Outcome == suggestion.OutcomeFailed {
			result.Reason = "suggestion request failed"
			result.Err = suggested.Err
		}
		return result
	}

	if r.confirm != nil {
		ok, err := r.confirm(result.Plan)
		if err != nil {
			result.Status = StatusSkipped
			result.Reason = "confirmation failed"
			result.Err = err
			return result
		}
		if !ok {
			result.Status = StatusSkipped
			result.Reason = "rename declined"
			return result
		}
	}

	if r.dryRun {
		planned.Plan(name, final)
		result.Status = StatusPlanned
		return result
	}

	if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, final)); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.Status = StatusRenamed
	return result
}

func (r *Renamer) logResult(log *logging.Logger, result FileResult) {
	args := []any{
		"file", result.Plan.Original,
		"status", result.Status.String(),
		"suggestion", result.Suggestion.String(),
	}
	if result.Plan.Suggested != "" {
		args = append(args, "suggested", result.Plan.Suggested)
	}
	if result.Plan.Final != "" {
		args = append(args, "final", result.Plan.Final)
	}
	if result.Reason != "" {
		args = append(args, "reason", result.Reason)
	}
	if result.Err != nil {
		args = append(args, "error", result.Err.Error())
	}

	switch {
	case result.Status == StatusFailed:
		log.Error("file not renamed", args...)
	case result.Suggestion == suggestion.OutcomeFailed || result.Status == StatusSkipped:
		log.Warn("file skipped", args...)
	default:
		log.Info("file processed", args...)
	}
}

// listFiles returns the names of the regular files directly inside dir, in
// lexical order. Symlinks count when they point at a regular file.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		mode := entry.Type()
		if mode.IsRegular() {
			files = append(files, entry.Name())
			continue
		}
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err == nil && info.Mode().IsRegular() {
				files = append(files, entry.Name())
			}
		}
	}
	return files, nil
}
