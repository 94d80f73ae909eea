package deps

import (
	"fmt"
	"os"
	"os/exec"
)

// FindDownloader returns the path to yt-dlp or youtube-dl.
// If customPath is non-empty, it tries that path or looks it up in PATH.
func FindDownloader(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		if p, err := exec.LookPath(customPath); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("could not find downloader at %q", customPath)
	}
	if p, err := exec.LookPath("yt-dlp"); err == nil {
		return p, nil
	}
	if p, err := exec.LookPath("youtube-dl"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find yt-dlp or youtube-dl in PATH. Please install yt-dlp.")
}

// ResolveDownloader returns the downloader binary to invoke. When nothing can
// be located it falls back to the requested name so that execution surfaces
// the absence as per-task failures instead of aborting the batch.
func ResolveDownloader(customPath string) string {
	if p, err := FindDownloader(customPath); err == nil {
		return p
	}
	if customPath != "" {
		return customPath
	}
	return "yt-dlp"
}

// FindRclone returns the path to the rclone binary in PATH.
func FindRclone() (string, error) {
	if p, err := exec.LookPath("rclone"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find rclone in PATH. Please install rclone.")
}
