package dirs

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDatedOutputDir(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		root   string
		subdir string
		want   string
	}{
		{root: "/data/downloads", subdir: "video", want: filepath.Join("/data/downloads", "2026-08-31", "video")},
		{root: "/data/downloads", subdir: "audio", want: filepath.Join("/data/downloads", "2026-08-31", "audio")},
	}
	for _, tt := range tests {
		if got := DatedOutputDir(tt.root, tt.subdir, now); got != tt.want {
			t.Errorf("DatedOutputDir(%q, %q) = %q, want %q", tt.root, tt.subdir, got, tt.want)
		}
	}
}

func TestEnsureRejectsEmptyPath(t *testing.T) {
	if err := Ensure(""); err == nil {
		t.Error("Ensure(\"\") expected error")
	}
}

func TestEnsureCreatesNestedDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := Ensure(dir); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if err := Ensure(dir); err != nil {
		t.Errorf("Ensure() on existing dir error = %v", err)
	}
}
