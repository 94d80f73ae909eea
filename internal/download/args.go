// Package download builds yt-dlp invocations and parses their output.
package download

import (
	"path/filepath"

	"grabbit/internal/model"
)

const (
	// Container-preferring selection: take streams already packaged as
	// mp4/m4a at or below 1080p, so the merge step remuxes at most and
	// never transcodes.
	formatMP4Capped = "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[height<=1080][ext=mp4]/best"

	// Container-agnostic selection used when clipping. Precise section cuts
	// force a processing pass anyway, so the container preference is dropped
	// and a recode to mp4 is requested explicitly.
	formatBest = "bestvideo+bestaudio/best"
)

// BuildArgs maps a request plus the run's output directory to the downloader
// invocation. Pure: no I/O, no binary lookup, deterministic for equal inputs.
func BuildArgs(req model.DownloadRequest, outDir string) model.CommandSpec {
	tmpl := filepath.Join(outDir, "%(title)s.%(ext)s")

	// after_move:filepath makes yt-dlp print the final file path once the
	// download lands, which feeds the optional upload step. It also implies
	// quiet mode; --progress restores machine-readable progress lines.
	args := []string{
		"--no-playlist",
		"--newline",
		"--progress",
		"--print", "after_move:filepath",
	}

	switch req.Mode {
	case model.ModeAudio:
		args = append(args,
			"-f", "bestaudio",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "0",
		)
	default:
		if req.Clip != nil {
			args = append(args, "-f", formatBest, "--recode-video", "mp4")
		} else {
			args = append(args, "-f", formatMP4Capped, "--merge-output-format", "mp4")
		}
	}

	if req.Clip != nil {
		args = append(args, "--download-sections", req.Clip.SectionRange())
	}

	args = append(args, "-o", tmpl, req.URL)
	return model.CommandSpec{Args: args, OutputTemplate: tmpl}
}
