package download

import (
	"testing"
	"time"
)

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		ok      bool
		percent float64
		speed   string
		eta     time.Duration
		hasETA  bool
	}{
		{
			name:    "typical line",
			line:    "[download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04",
			ok:      true,
			percent: 45.2,
			speed:   "1.50MiB/s",
			eta:     4 * time.Second,
			hasETA:  true,
		},
		{
			name:    "complete",
			line:    "[download] 100% of 10.00MiB in 00:06",
			ok:      true,
			percent: 100,
		},
		{
			name:    "long eta",
			line:    "[download]   0.1% of 1.20GiB at  512.00KiB/s ETA 01:23:45",
			ok:      true,
			percent: 0.1,
			speed:   "512.00KiB/s",
			eta:     1*time.Hour + 23*time.Minute + 45*time.Second,
			hasETA:  true,
		},
		{name: "destination line", line: "[download] Destination: /tmp/clip.mp4", ok: false},
		{name: "unrelated prefix", line: "[Merger] Merging formats into clip.mp4", ok: false},
		{name: "plain path", line: "/tmp/out/clip.mp4", ok: false},
		{name: "empty", line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, ok := ParseProgress(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseProgress(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if snap.Percent != tt.percent {
				t.Errorf("Percent = %v, want %v", snap.Percent, tt.percent)
			}
			if snap.Speed != tt.speed {
				t.Errorf("Speed = %q, want %q", snap.Speed, tt.speed)
			}
			if snap.HasETA != tt.hasETA {
				t.Errorf("HasETA = %v, want %v", snap.HasETA, tt.hasETA)
			}
			if tt.hasETA && snap.ETA != tt.eta {
				t.Errorf("ETA = %v, want %v", snap.ETA, tt.eta)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "00:04", want: 4 * time.Second},
		{in: "02:30", want: 2*time.Minute + 30*time.Second},
		{in: "01:23:45", want: 1*time.Hour + 23*time.Minute + 45*time.Second},
		{in: "7", want: 7 * time.Second},
		{in: "Unknown", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
