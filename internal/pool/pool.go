// Package pool runs downloader commands with bounded parallelism and
// per-task failure isolation.
package pool

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/uuid"

	"grabbit/internal/download"
	"grabbit/internal/model"
	"grabbit/internal/progress"
	"grabbit/internal/upload"
	"grabbit/internal/util"
)

// missingToolMsg is the fixed diagnostic used when the downloader binary
// cannot be located. Tool absence is a per-task failure like any other;
// it never aborts the pool.
const missingToolMsg = "downloader not found: install yt-dlp (or youtube-dl) or pass --dl-binary"

// Task pairs a request with its resolved command spec and a job ID used to
// correlate progress events. Identity is the task's slot in the batch, so
// duplicate URLs stay unambiguous.
type Task struct {
	ID      string
	Request model.DownloadRequest
	Spec    model.CommandSpec
}

// NewTask assigns a fresh job ID to a built request.
func NewTask(req model.DownloadRequest, spec model.CommandSpec) Task {
	return Task{ID: uuid.NewString(), Request: req, Spec: spec}
}

// Executor runs tasks under a fixed concurrency ceiling.
type Executor struct {
	toolPath string
	workers  int
	runner   util.CmdRunner
	reporter progress.Reporter
	uploader *upload.Uploader
	verbose  bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithToolPath sets the downloader binary to invoke.
func WithToolPath(p string) Option {
	return func(e *Executor) { e.toolPath = p }
}

// WithWorkers sets the concurrency ceiling. Values below 1 are clamped to 1.
func WithWorkers(n int) Option {
	return func(e *Executor) { e.workers = n }
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(e *Executor) { e.runner = r }
}

// WithReporter attaches a progress reporter.
func WithReporter(rp progress.Reporter) Option {
	return func(e *Executor) { e.reporter = rp }
}

// WithUploader enables copying each finished file to a remote.
func WithUploader(u *upload.Uploader) Option {
	return func(e *Executor) { e.uploader = u }
}

// WithVerbose streams subprocess command lines and output to the terminal.
func WithVerbose(v bool) Option {
	return func(e *Executor) { e.verbose = v }
}

// New constructs an Executor with sensible defaults.
func New(opts ...Option) *Executor {
	e := &Executor{workers: 4}
	for _, o := range opts {
		o(e)
	}
	if e.runner == nil {
		e.runner = util.NewDefaultRunner()
	}
	if e.workers < 1 {
		e.workers = 1
	}
	return e
}

// Workers returns the configured concurrency ceiling.
func (e *Executor) Workers() int { return e.workers }

// Run executes every task and returns exactly one outcome per task, indexed
// by task slot. Completion order among workers is unspecified; the returned
// slice order always matches the input order.
func (e *Executor) Run(ctx context.Context, tasks []Task) []model.TaskOutcome {
	outcomes := make([]model.TaskOutcome, len(tasks))
	if len(tasks) == 0 {
		return outcomes
	}

	workers := e.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	queue := make(chan int)
	go func() {
		defer close(queue)
		for i := range tasks {
			queue <- i
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range queue {
				outcomes[i] = e.RunOne(ctx, tasks[i])
			}
		}()
	}
	wg.Wait()
	return outcomes
}

// RunOne executes a single task to a terminal state and emits its progress
// events and final Result. Every failure mode is absorbed into the outcome.
func (e *Executor) RunOne(ctx context.Context, t Task) model.TaskOutcome {
	out := e.runTask(ctx, t)
	if e.reporter != nil {
		e.reporter.Result(progress.Result{JobID: t.ID, Outcome: out})
	}
	return out
}

func (e *Executor) runTask(ctx context.Context, t Task) model.TaskOutcome {
	out := model.TaskOutcome{URL: t.Request.URL}

	if err := ctx.Err(); err != nil {
		out.Error = "canceled"
		return out
	}

	e.update(progress.Update{
		JobID:   t.ID,
		URL:     t.Request.URL,
		Stage:   progress.StageDownloading,
		Percent: -1,
		Message: "Downloading",
	})

	// Stdout carries yt-dlp progress lines plus the after_move filepath;
	// anything else stays suppressed. The last non-progress line is the
	// final file path.
	var mu sync.Mutex
	var finalPath string
	res, err := e.runner.Run(ctx, util.CmdSpec{
		Path:    e.toolPath,
		Args:    t.Spec.Args,
		Verbose: e.verbose,
		StdoutLine: func(line string) {
			if snap, ok := download.ParseProgress(line); ok {
				u := progress.Update{
					JobID:   t.ID,
					URL:     t.Request.URL,
					Stage:   progress.StageDownloading,
					Percent: snap.Percent,
					Speed:   snap.Speed,
					Message: "Downloading",
				}
				if snap.HasETA {
					eta := snap.ETA
					u.ETA = &eta
				}
				e.update(u)
				return
			}
			if l := strings.TrimSpace(line); l != "" {
				mu.Lock()
				finalPath = l
				mu.Unlock()
			}
		},
	})
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			out.Error = missingToolMsg
			return out
		}
		diag := strings.TrimSpace(string(res.Stderr))
		if diag == "" {
			diag = err.Error()
		}
		out.Error = diag
		return out
	}

	mu.Lock()
	out.OutputPath = finalPath
	mu.Unlock()
	out.OK = true
	out.Bytes = util.FileSize(out.OutputPath)

	if e.uploader != nil && out.OutputPath != "" {
		e.update(progress.Update{
			JobID:   t.ID,
			URL:     t.Request.URL,
			Stage:   progress.StageUploading,
			Percent: -1,
			Message: "Uploading",
		})
		if uerr := e.uploader.Upload(ctx, out.OutputPath); uerr != nil {
			// Upload is best-effort; the download itself succeeded.
			e.log(t.ID, "warning: "+uerr.Error())
		}
	}

	return out
}

func (e *Executor) update(u progress.Update) {
	if e.reporter != nil {
		e.reporter.Update(u)
	}
}

func (e *Executor) log(jobID, line string) {
	if e.reporter != nil {
		e.reporter.Log(progress.Log{JobID: jobID, Line: line})
	}
}
