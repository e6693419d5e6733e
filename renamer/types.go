package renamer

import (
	"fmt"
	"time"

	"github.com/meysamhadeli/renamai/suggestion"
)

// Status is the terminal state of one eligible file.
type Status int

const (
	StatusRenamed Status = iota
	StatusPlanned
	StatusNoOp
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRenamed:
		return "renamed"
	case StatusPlanned:
		return "planned"
	case StatusNoOp:
		return "noop"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// RenamePlan is the rename worked out for one file.
type RenamePlan struct {
	Original  string
	Suggested string
	Final     string
}

// FileResult describes how one eligible file was handled.
type FileResult struct {
	Plan       RenamePlan
	Status     Status
	Suggestion suggestion.Outcome
	Reason     string
	Err        error
}

// Progress is reported after every eligible file.
type Progress struct {
	Processed          int
	Total              int
	Remaining          int
	Elapsed            time.Duration
	EstimatedRemaining time.Duration
}

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Dir              string
	DirMissing       bool
	TotalFiles       int
	Eligible         int
	Processed        int
	Renamed          int
	Planned          int
	NoOp             int
	Skipped          int
	Failed           int
	SuggestionErrors int
	Plans            []RenamePlan
	Elapsed          time.Duration
}

func (s *RunStats) record(result FileResult) {
	s.Processed++
	switch result.Status {
	case StatusRenamed:
		s.Renamed++
		s.Plans = append(s.Plans, result.Plan)
	case StatusPlanned:
		s.Planned++
		s.Plans = append(s.Plans, result.Plan)
	case StatusNoOp:
		s.NoOp++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
	if result.Suggestion == suggestion.OutcomeFailed {
		s.SuggestionErrors++
	}
}
