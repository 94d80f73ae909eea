package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"grabbit/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (yt-dlp/youtube-dl, rclone)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dl, derr := deps.FindDownloader(getPersistentString(cmd, "dl-binary", ""))
			if derr != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Downloader: MISSING (%v)\n", derr)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Downloader: %s\n", dl)
			}
			rc, rerr := deps.FindRclone()
			if rerr != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "rclone:     not found (uploads unavailable)\n")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "rclone:     %s\n", rc)
			}
			return nil
		},
	}
}
