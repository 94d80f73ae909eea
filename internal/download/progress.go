package download

import (
	"strconv"
	"strings"
	"time"
)

// Snapshot is one parsed progress line from the downloader.
type Snapshot struct {
	Percent float64 // 0..100, or <0 if unknown
	Speed   string  // e.g. "1.50MiB/s", empty if unknown
	ETA     time.Duration
	HasETA  bool
}

// ParseProgress parses yt-dlp progress output lines of the form
// "[download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04".
func ParseProgress(line string) (Snapshot, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[download]") {
		return Snapshot{}, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, "[download]"))

	snap := Snapshot{Percent: -1}
	if idx := strings.Index(rest, "%"); idx != -1 {
		if p, err := strconv.ParseFloat(strings.TrimSpace(rest[:idx]), 64); err == nil {
			snap.Percent = p
		}
	} else {
		// "[download] Destination: ..." and similar non-numeric lines.
		return Snapshot{}, false
	}

	if idx := strings.Index(rest, " at "); idx != -1 {
		speedPart := rest[idx+4:]
		if end := strings.Index(speedPart, " "); end != -1 {
			snap.Speed = strings.TrimSpace(speedPart[:end])
		} else {
			snap.Speed = strings.TrimSpace(speedPart)
		}
	}

	if idx := strings.Index(rest, "ETA "); idx != -1 {
		etaStr := strings.TrimSpace(rest[idx+4:])
		if end := strings.Index(etaStr, " "); end != -1 {
			etaStr = etaStr[:end]
		}
		if d, err := parseClock(etaStr); err == nil {
			snap.ETA = d
			snap.HasETA = true
		}
	}

	return snap, true
}

// parseClock parses duration strings like "00:04" or "01:23:45".
func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	var total time.Duration
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, err
		}
		total = total*60 + time.Duration(n)*time.Second
	}
	return total, nil
}
