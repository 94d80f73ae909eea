package request

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"grabbit/internal/model"
)

func TestCollectSingleURL(t *testing.T) {
	opts := model.Options{Audio: true, Clip: &model.ClipWindow{Start: "00:00:05", End: "00:00:10"}}
	reqs, warns, err := Collect(context.Background(), Source{URL: "https://example.com/watch?v=abc"}, opts)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %v, want none", warns)
	}
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	r := reqs[0]
	if r.URL != "https://example.com/watch?v=abc" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Mode != model.ModeAudio {
		t.Errorf("Mode = %q, want audio", r.Mode)
	}
	if r.Clip == nil || r.Clip.Start != "00:00:05" {
		t.Errorf("Clip = %+v, want the options' window", r.Clip)
	}
}

func TestCollectMissingFile(t *testing.T) {
	_, _, err := Collect(context.Background(), Source{File: "/nonexistent/urls.txt"}, model.Options{})
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("err = %v, want ErrInputNotFound", err)
	}
}

func TestFromReaderMixedLines(t *testing.T) {
	input := strings.Join([]string{
		"https://example.com/a",
		"this line has no link",
		"check this out: https://example.com/b trailing words",
	}, "\n")

	reqs, warns, err := FromReader(context.Background(), strings.NewReader(input), model.Options{})
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2 (%v)", len(reqs), reqs)
	}
	if reqs[0].URL != "https://example.com/a" {
		t.Errorf("reqs[0].URL = %q", reqs[0].URL)
	}
	if reqs[1].URL != "https://example.com/b" {
		t.Errorf("reqs[1].URL = %q", reqs[1].URL)
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1 (%v)", len(warns), warns)
	}
	if warns[0].Line != 2 || warns[0].Text != "this line has no link" {
		t.Errorf("warning = %+v, want line 2", warns[0])
	}
}

func TestFromReaderOrderPreserved(t *testing.T) {
	input := "https://example.com/1\nhttps://example.com/2\nhttps://example.com/3\nhttps://example.com/2\n"
	reqs, _, err := FromReader(context.Background(), strings.NewReader(input), model.Options{})
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	want := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3", "https://example.com/2"}
	if len(reqs) != len(want) {
		t.Fatalf("got %d requests, want %d", len(reqs), len(want))
	}
	for i, w := range want {
		if reqs[i].URL != w {
			t.Errorf("reqs[%d].URL = %q, want %q (duplicates are independent requests)", i, reqs[i].URL, w)
		}
	}
}

func TestFromReaderEmptyInput(t *testing.T) {
	reqs, warns, err := FromReader(context.Background(), strings.NewReader(""), model.Options{})
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	if len(reqs) != 0 || len(warns) != 0 {
		t.Errorf("got %d requests, %d warnings, want none", len(reqs), len(warns))
	}
}

// blockingReader yields one line then blocks until the context is done,
// mimicking an interactive stdin session.
type blockingReader struct {
	first io.Reader
	done  <-chan struct{}
}

func (b *blockingReader) Read(p []byte) (int, error) {
	if b.first != nil {
		n, err := b.first.Read(p)
		if err == io.EOF {
			b.first = nil
			if n > 0 {
				return n, nil
			}
		} else {
			return n, err
		}
	}
	<-b.done
	return 0, io.EOF
}

func TestFromReaderCancelDiscardsPartialBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &blockingReader{first: strings.NewReader("https://example.com/a\n"), done: ctx.Done()}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	reqs, _, err := FromReader(ctx, r, model.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if reqs != nil {
		t.Errorf("partial batch must be discarded on cancel, got %v", reqs)
	}
}
