// Package report aggregates task outcomes into the final batch summary.
package report

import (
	"fmt"
	"io"

	"grabbit/internal/model"
)

// Build partitions outcomes into the run report. Outcomes are never mutated;
// every outcome is attributed exactly once.
func Build(outcomes []model.TaskOutcome) model.RunReport {
	r := model.RunReport{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.OK {
			r.Succeeded = append(r.Succeeded, o.URL)
		} else {
			r.Failed = append(r.Failed, model.TaskFailure{URL: o.URL, Reason: o.Error})
		}
	}
	return r
}

// Render writes the human-readable summary. Partial failures are reported,
// not escalated: the caller keeps exit status 0 either way.
func Render(w io.Writer, r model.RunReport) {
	if r.Total == 0 {
		fmt.Fprintln(w, "Nothing to do.")
		return
	}
	if len(r.Failed) == 0 {
		fmt.Fprintf(w, "All %d download(s) completed successfully.\n", r.Total)
		return
	}
	fmt.Fprintf(w, "%d of %d download(s) succeeded.\n", len(r.Succeeded), r.Total)
	fmt.Fprintf(w, "\n%d failed:\n", len(r.Failed))
	for _, f := range r.Failed {
		reason := f.Reason
		if reason == "" {
			reason = "unknown error"
		}
		fmt.Fprintf(w, "  - %s\n    %s\n", f.URL, reason)
	}
}
