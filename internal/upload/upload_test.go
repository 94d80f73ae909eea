package upload

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"grabbit/internal/util"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   []util.CmdSpec
	respond func(util.CmdSpec) (util.CmdResult, error)
}

func (f *fakeRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, spec)
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(spec)
	}
	return util.CmdResult{}, nil
}

func TestDest(t *testing.T) {
	u := New("rclone", "gdrive", "grabbit/2026-08-31", &fakeRunner{})

	tests := []struct {
		local string
		want  string
	}{
		{local: "/data/2026-08-31/video/clip.mp4", want: "gdrive:grabbit/2026-08-31/clip.mp4"},
		{local: "song.mp3", want: "gdrive:grabbit/2026-08-31/song.mp3"},
	}
	for _, tt := range tests {
		if got := u.Dest(tt.local); got != tt.want {
			t.Errorf("Dest(%q) = %q, want %q", tt.local, got, tt.want)
		}
	}
}

func TestUploadInvokesCopyto(t *testing.T) {
	r := &fakeRunner{}
	u := New("/usr/bin/rclone", "gdrive", "grabbit", r)

	if err := u.Upload(context.Background(), "/tmp/clip.mp4"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if len(r.calls) != 1 {
		t.Fatalf("rclone invoked %d times, want 1", len(r.calls))
	}
	call := r.calls[0]
	if call.Path != "/usr/bin/rclone" {
		t.Errorf("Path = %q", call.Path)
	}
	want := []string{"copyto", "/tmp/clip.mp4", "gdrive:grabbit/clip.mp4"}
	for i := range want {
		if i >= len(call.Args) || call.Args[i] != want[i] {
			t.Fatalf("Args = %v, want %v", call.Args, want)
		}
	}
}

func TestUploadFailureCarriesStderr(t *testing.T) {
	r := &fakeRunner{
		respond: func(util.CmdSpec) (util.CmdResult, error) {
			res := util.CmdResult{Stderr: []byte("Failed to create file system\n"), Code: 1}
			return res, errors.New("command failed (exit 1)")
		},
	}
	u := New("rclone", "nosuch", "grabbit", r)

	err := u.Upload(context.Background(), "/tmp/clip.mp4")
	if err == nil {
		t.Fatal("Upload() expected error")
	}
	if !strings.Contains(err.Error(), "Failed to create file system") {
		t.Errorf("err = %v, want rclone stderr in message", err)
	}
}
