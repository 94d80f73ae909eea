// Package request resolves raw user input into an ordered batch of
// download requests.
package request

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"grabbit/internal/model"
	"grabbit/internal/util"
)

// ErrInputNotFound reports a named input file that does not exist. It is the
// only fatal condition this package produces.
var ErrInputNotFound = errors.New("input file not found")

// Warning describes an input line that yielded no URL. Warnings never abort
// the batch; the CLI layer prints them.
type Warning struct {
	Line int
	Text string
}

// Source names where requests come from. Exactly one of URL or File is set;
// File == "-" means standard input.
type Source struct {
	URL  string
	File string
}

// Collect resolves src into an ordered request list. An empty list with a nil
// error means there is nothing to do; callers exit normally without running
// the executor. A canceled ctx while reading stdin surfaces as ctx.Err(), and
// any partially collected input is discarded.
func Collect(ctx context.Context, src Source, opts model.Options) ([]model.DownloadRequest, []Warning, error) {
	if src.URL != "" {
		return []model.DownloadRequest{newRequest(src.URL, opts)}, nil, nil
	}
	if src.File == "-" {
		return FromReader(ctx, os.Stdin, opts)
	}
	f, err := os.Open(src.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrInputNotFound, src.File)
		}
		return nil, nil, err
	}
	defer f.Close()
	return FromReader(ctx, f, opts)
}

// FromReader scans r line by line, extracting one request per line that
// contains a URL. Lines without a URL become warnings.
func FromReader(ctx context.Context, r io.Reader, opts model.Options) ([]model.DownloadRequest, []Warning, error) {
	type scanned struct {
		text string
		err  error
	}
	lines := make(chan scanned)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- scanned{text: sc.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case lines <- scanned{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	var reqs []model.DownloadRequest
	var warns []Warning
	lineNo := 0
	for {
		select {
		case <-ctx.Done():
			// Interrupt during collection: the partial batch is discarded.
			return nil, nil, ctx.Err()
		case ln, ok := <-lines:
			if !ok {
				return reqs, warns, nil
			}
			if ln.err != nil {
				return nil, warns, ln.err
			}
			lineNo++
			if u, found := util.ExtractURL(ln.text); found {
				reqs = append(reqs, newRequest(u, opts))
			} else {
				warns = append(warns, Warning{Line: lineNo, Text: ln.text})
			}
		}
	}
}

func newRequest(u string, opts model.Options) model.DownloadRequest {
	return model.DownloadRequest{URL: u, Mode: opts.Mode(), Clip: opts.Clip}
}
