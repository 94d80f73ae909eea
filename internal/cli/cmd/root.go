package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"grabbit/internal/config"
)

const (
	ExitOK         = 0
	ExitCLIError   = 1
	ExitInputError = 2
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "grabbit",
		Short:         "Batch media downloader built on yt-dlp",
		Long:          "Grabbit takes a URL, a URL file, or standard input, and downloads every referenced media item through yt-dlp under a fixed concurrency cap. One bad URL never sinks the batch: failures are collected and reported at the end.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd)
		},
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().StringP("out-dir", "o", "", "Download root (default: data dir); a dated subdirectory is created per run")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show full subprocess commands/output")
	root.PersistentFlags().String("dl-binary", "", "Path to yt-dlp or youtube-dl")
	root.PersistentFlags().IntP("parallel", "p", 4, "Max concurrent downloads")

	bindRunFlags(root)

	root.AddCommand(newRunCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// bindRunFlags attaches the per-run flags and their pairing rules.
func bindRunFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	addRunFlags(fs)
	cmd.MarkFlagsMutuallyExclusive("url", "input-file")
	cmd.MarkFlagsOneRequired("url", "input-file")
	cmd.MarkFlagsRequiredTogether("start", "end")
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringP("url", "u", "", "Single URL to download")
	fs.StringP("input-file", "i", "", "File with one URL per line; '-' reads standard input")
	fs.BoolP("audio", "a", false, "Extract audio only (MP3, best quality)")
	fs.String("start", "", "Clip start time (e.g. 00:01:30); requires --end")
	fs.String("end", "", "Clip end time (e.g. 00:02:00); requires --start")
	fs.Bool("upload", false, "Upload each finished file to the rclone remote")
	fs.String("remote", "", "rclone remote name used with --upload")
	fs.Bool("no-ui", false, "Disable TUI; use plain textual output")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	_ = config.Init(root)
	return root.ExecuteContext(ctx)
}

// Helpers
func getPersistentString(cmd *cobra.Command, name, def string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil || v == "" {
		if v2, err2 := cmd.InheritedFlags().GetString(name); err2 == nil && v2 != "" {
			return v2
		}
		return def
	}
	return v
}

func getPersistentBool(cmd *cobra.Command, name string, def bool) bool {
	if v, err := cmd.Flags().GetBool(name); err == nil {
		return v
	}
	if v, err := cmd.InheritedFlags().GetBool(name); err == nil {
		return v
	}
	return def
}

func getPersistentInt(cmd *cobra.Command, name string, def int) int {
	if v, err := cmd.Flags().GetInt(name); err == nil {
		return v
	}
	if v, err := cmd.InheritedFlags().GetInt(name); err == nil {
		return v
	}
	return def
}
