package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"grabbit/internal/download"
	"grabbit/internal/request"
	"grabbit/internal/util/deps"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plan",
		Short:         "Print the downloader invocations without executing them",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return planExecute(cmd)
		},
	}
	bindRunFlags(cmd)
	return cmd
}

func planExecute(cmd *cobra.Command) error {
	src, opts, err := assembleInputs(cmd)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}

	reqs, warns, err := request.Collect(cmd.Context(), src, opts)
	for _, w := range warns {
		fmt.Fprintf(os.Stderr, "warning: line %d: no URL found in %q\n", w.Line, w.Text)
	}
	if err != nil {
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

	tool := deps.ResolveDownloader(opts.DLBinary)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Output dir: %s\n", opts.OutDir)
	fmt.Fprintf(w, "Parallel:   %d\n\n", opts.Parallel)
	for i, req := range reqs {
		spec := download.BuildArgs(req, opts.OutDir)
		fmt.Fprintf(w, "%d. %s %s\n", i+1, tool, strings.Join(spec.Args, " "))
	}
	return nil
}
