package renamer

import "time"

// progressTracker estimates the remaining time linearly from the average
// time spent per processed file.
type progressTracker struct {
	total     int
	processed int
	start     time.Time
	now       func() time.Time
}

func newProgressTracker(total int, now func() time.Time) *progressTracker {
	return &progressTracker{total: total, start: now(), now: now}
}

func (p *progressTracker) current() Progress {
	elapsed := p.now().Sub(p.start)
	remaining := p.total - p.processed
	progress := Progress{
		Processed: p.processed,
		Total:     p.total,
		Remaining: remaining,
		Elapsed:   elapsed,
	}
	if p.processed > 0 {
		progress.EstimatedRemaining = elapsed / time.Duration(p.processed) * time.Duration(remaining)
	}
	return progress
}

func (p *progressTracker) advance() Progress {
	p.processed++
	return p.current()
}
