// Package progress defines the event stream emitted while a batch runs.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"grabbit/internal/model"
)

// Stage identifies a high-level step in a task's lifecycle.
type Stage string

const (
	StageQueued      Stage = "queued"
	StageDownloading Stage = "downloading"
	StageUploading   Stage = "uploading"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// Update conveys progress or stage changes for a task.
// Percent is 0..100 when known; negative means unknown.
type Update struct {
	JobID   string
	URL     string
	Stage   Stage
	Percent float64
	Speed   string         // e.g. "2.5MiB/s"; empty if unknown
	ETA     *time.Duration // optional
	Message string         // short human-friendly status line
}

// Log is a diagnostic line associated with a task.
type Log struct {
	JobID string
	Line  string
}

// Result is emitted exactly once per task when it reaches a terminal state.
type Result struct {
	JobID   string
	Outcome model.TaskOutcome
}

// Reporter is implemented by any observer of batch progress. Implementations
// must tolerate concurrent calls; the worker pool invokes them from every
// worker goroutine.
type Reporter interface {
	Update(u Update)
	Log(l Log)
	Result(r Result)
}

// CountReporter renders a monotonically advancing "[k/N]" counter on each
// completed task. It never buffers or reorders results; each Result produces
// exactly one line.
type CountReporter struct {
	mu      sync.Mutex
	w       io.Writer
	total   int
	done    int
	verbose bool
}

// NewCountReporter writes counter lines to w for a batch of total tasks.
func NewCountReporter(w io.Writer, total int, verbose bool) *CountReporter {
	return &CountReporter{w: w, total: total, verbose: verbose}
}

func (c *CountReporter) Update(Update) {}

func (c *CountReporter) Log(l Log) {
	if !c.verbose {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, l.Line)
}

func (c *CountReporter) Result(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done++
	status := "done"
	if !r.Outcome.OK {
		status = "failed"
	}
	fmt.Fprintf(c.w, "[%d/%d] %s: %s\n", c.done, c.total, status, r.Outcome.URL)
}
