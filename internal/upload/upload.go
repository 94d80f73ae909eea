// Package upload copies finished downloads to an rclone remote.
package upload

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"grabbit/internal/util"
)

// Uploader invokes rclone to copy local files to a remote folder.
type Uploader struct {
	rclonePath string
	remote     string // rclone remote name, e.g. "gdrive"
	folder     string // destination folder on the remote, slash-separated
	runner     util.CmdRunner
}

// New constructs an Uploader. A nil runner falls back to the default
// os/exec-backed runner.
func New(rclonePath, remote, folder string, runner util.CmdRunner) *Uploader {
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	return &Uploader{
		rclonePath: rclonePath,
		remote:     remote,
		folder:     folder,
		runner:     runner,
	}
}

// Dest returns the remote destination for a local file:
// "<remote>:<folder>/<filename>".
func (u *Uploader) Dest(local string) string {
	return u.remote + ":" + path.Join(u.folder, filepath.Base(local))
}

// Upload copies local to the remote destination. Output is suppressed; on
// failure the captured stderr becomes the error text.
func (u *Uploader) Upload(ctx context.Context, local string) error {
	res, err := u.runner.Run(ctx, util.CmdSpec{
		Path: u.rclonePath,
		Args: []string{"copyto", local, u.Dest(local)},
	})
	if err != nil {
		diag := strings.TrimSpace(string(res.Stderr))
		if diag == "" {
			diag = err.Error()
		}
		return fmt.Errorf("rclone copyto: %s", diag)
	}
	return nil
}
