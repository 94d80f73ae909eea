package report

import (
	"strings"
	"testing"

	"grabbit/internal/model"
)

func TestBuildPartitionsOutcomes(t *testing.T) {
	outcomes := []model.TaskOutcome{
		{URL: "https://example.com/1", OK: true},
		{URL: "https://example.com/2", Error: "ERROR: unsupported URL"},
		{URL: "https://example.com/3", OK: true},
		{URL: "https://example.com/2", Error: "timeout"},
	}
	r := Build(outcomes)

	if r.Total != 4 {
		t.Errorf("Total = %d, want 4", r.Total)
	}
	if len(r.Succeeded) != 2 {
		t.Errorf("Succeeded = %v, want 2 entries", r.Succeeded)
	}
	if len(r.Failed) != 2 {
		t.Fatalf("Failed = %v, want 2 entries", r.Failed)
	}
	// Duplicate URLs are attributed once per outcome, not deduplicated.
	if r.Failed[0].Reason != "ERROR: unsupported URL" || r.Failed[1].Reason != "timeout" {
		t.Errorf("failure reasons = %+v", r.Failed)
	}
	if len(r.Succeeded)+len(r.Failed) != r.Total {
		t.Errorf("every outcome must be attributed exactly once")
	}
}

func TestRenderAllSucceeded(t *testing.T) {
	var sb strings.Builder
	Render(&sb, Build([]model.TaskOutcome{
		{URL: "https://example.com/1", OK: true},
		{URL: "https://example.com/2", OK: true},
	}))
	got := sb.String()
	if !strings.Contains(got, "All 2 download(s) completed successfully.") {
		t.Errorf("output = %q", got)
	}
	if strings.Contains(got, "failed") {
		t.Errorf("success summary must not mention failures: %q", got)
	}
}

func TestRenderPartialFailures(t *testing.T) {
	var sb strings.Builder
	Render(&sb, Build([]model.TaskOutcome{
		{URL: "https://example.com/1", OK: true},
		{URL: "https://example.com/2", Error: "ERROR: video unavailable"},
		{URL: "https://example.com/3", OK: true},
	}))
	got := sb.String()
	if !strings.Contains(got, "2 of 3 download(s) succeeded.") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "1 failed:") {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(got, "https://example.com/2") || !strings.Contains(got, "ERROR: video unavailable") {
		t.Errorf("failure detail missing from %q", got)
	}
}

func TestRenderEmptyReason(t *testing.T) {
	var sb strings.Builder
	Render(&sb, Build([]model.TaskOutcome{{URL: "https://example.com/1"}}))
	if got := sb.String(); !strings.Contains(got, "unknown error") {
		t.Errorf("empty reason should render a placeholder, got %q", got)
	}
}

func TestRenderEmptyBatch(t *testing.T) {
	var sb strings.Builder
	Render(&sb, Build(nil))
	if got := sb.String(); !strings.Contains(got, "Nothing to do.") {
		t.Errorf("output = %q", got)
	}
}
