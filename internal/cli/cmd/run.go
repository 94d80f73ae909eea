package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"grabbit/internal/dirs"
	"grabbit/internal/download"
	"grabbit/internal/model"
	"grabbit/internal/pool"
	"grabbit/internal/progress"
	"grabbit/internal/report"
	"grabbit/internal/request"
	"grabbit/internal/ui"
	"grabbit/internal/upload"
	"grabbit/internal/util"
	"grabbit/internal/util/deps"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run",
		Short:         "Download every URL in the batch",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd)
		},
	}
	bindRunFlags(cmd)
	return cmd
}

// assembleInputs reads flags into the request source and run options.
// The output directory is resolved to the run's dated subdirectory here.
func assembleInputs(cmd *cobra.Command) (request.Source, model.Options, error) {
	rawURL, _ := cmd.Flags().GetString("url")
	inputFile, _ := cmd.Flags().GetString("input-file")
	audio, _ := cmd.Flags().GetBool("audio")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	doUpload, _ := cmd.Flags().GetBool("upload")
	remote, _ := cmd.Flags().GetString("remote")
	noUI, _ := cmd.Flags().GetBool("no-ui")

	outRoot := getPersistentString(cmd, "out-dir", "")
	verbose := getPersistentBool(cmd, "verbose", false)
	dlBinary := getPersistentString(cmd, "dl-binary", "")
	parallel := getPersistentInt(cmd, "parallel", 4)
	if parallel <= 0 {
		parallel = 4
	}

	// cobra enforces the start/end pairing; keep a belt for direct callers.
	if (start == "") != (end == "") {
		return request.Source{}, model.Options{}, errors.New("--start and --end must be supplied together")
	}
	var clip *model.ClipWindow
	if start != "" {
		clip = &model.ClipWindow{Start: start, End: end}
	}

	if doUpload && remote == "" {
		return request.Source{}, model.Options{}, errors.New("--upload requires --remote")
	}

	if dlBinary == "" {
		dlBinary = os.Getenv("GRABBIT_DL_BINARY")
	}

	if outRoot == "" {
		root, err := dirs.DefaultDownloadRoot()
		if err != nil {
			return request.Source{}, model.Options{}, fmt.Errorf("resolve download root: %w", err)
		}
		outRoot = root
	}
	outRoot = filepath.Clean(outRoot)

	opts := model.Options{
		Audio:    audio,
		Clip:     clip,
		Parallel: parallel,
		Upload:   doUpload,
		Remote:   remote,
		DLBinary: dlBinary,
		Verbose:  verbose,
		NoUI:     noUI,
	}
	opts.OutDir = dirs.DatedOutputDir(outRoot, string(opts.Mode()), time.Now())

	return request.Source{URL: rawURL, File: inputFile}, opts, nil
}

func runExecute(cmd *cobra.Command) error {
	ctx := cmd.Context()

	src, opts, err := assembleInputs(cmd)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	reqs, warns, err := request.Collect(ctx, src, opts)
	for _, w := range warns {
		fmt.Fprintf(os.Stderr, "warning: line %d: no URL found in %q\n", w.Line, w.Text)
	}
	if err != nil {
		// An interrupt while reading stdin is a user-requested stop, not an
		// error; the partial batch is discarded.
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if errors.Is(err, request.ErrInputNotFound) {
			return &ExitError{Code: ExitInputError, Err: err}
		}
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	if len(reqs) == 0 {
		fmt.Fprintln(os.Stderr, "warning: no URLs to process")
		return nil
	}

	// Parallel machinery adds nothing for a single request.
	if len(reqs) == 1 {
		opts.Parallel = 1
	}

	if err := util.EnsureDir(opts.OutDir); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("create output dir: %w", err)}
	}

	tasks := make([]pool.Task, 0, len(reqs))
	for _, req := range reqs {
		tasks = append(tasks, pool.NewTask(req, download.BuildArgs(req, opts.OutDir)))
	}

	toolPath := deps.ResolveDownloader(opts.DLBinary)
	uploader := makeUploader(ctx, opts)

	var outcomes []model.TaskOutcome
	useTUI := !opts.NoUI && !opts.Verbose && isTerminal()
	if useTUI {
		outcomes, err = ui.Run(ctx, tasks, opts.Parallel, func(rep progress.Reporter) *pool.Executor {
			return pool.New(
				pool.WithToolPath(toolPath),
				pool.WithWorkers(opts.Parallel),
				pool.WithReporter(rep),
				pool.WithUploader(uploader),
			)
		})
		if err != nil {
			return &ExitError{Code: ExitCLIError, Err: err}
		}
	} else {
		ex := pool.New(
			pool.WithToolPath(toolPath),
			pool.WithWorkers(opts.Parallel),
			pool.WithReporter(progress.NewCountReporter(os.Stderr, len(tasks), opts.Verbose)),
			pool.WithUploader(uploader),
			pool.WithVerbose(opts.Verbose),
		)
		outcomes = ex.Run(ctx, tasks)
	}

	// Partial failures are reported, never escalated: exit stays 0.
	report.Render(cmd.OutOrStdout(), report.Build(outcomes))
	return nil
}

// makeUploader wires rclone when --upload is set. A missing rclone binary
// downgrades to a warning; downloads still proceed.
func makeUploader(_ context.Context, opts model.Options) *upload.Uploader {
	if !opts.Upload {
		return nil
	}
	rclonePath, err := deps.FindRclone()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: upload disabled: %v\n", err)
		return nil
	}
	folder := filepath.ToSlash(filepath.Join(dirs.AppName(), time.Now().Format("2006-01-02")))
	return upload.New(rclonePath, opts.Remote, folder, nil)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
