package ui

import (
	"fmt"
	"strings"

	"grabbit/internal/model"
	"grabbit/internal/progress"
	"grabbit/internal/util/format"
)

func (m Model) viewHeader() string {
	done := 0
	for _, id := range m.jobOrder {
		if m.jobs[id].done {
			done++
		}
	}
	title := m.styles.Title.Render("grabbit · batch media downloader")
	sub := m.styles.Subtitle.Render(fmt.Sprintf("Tasks: %d/%d done • q: quit", done, len(m.jobOrder)))
	return title + "\n" + sub
}

func (m Model) viewJobs() string {
	var b strings.Builder
	for _, id := range m.jobOrder {
		b.WriteString(m.viewJob(m.jobs[id]))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewJob(js *jobState) string {
	stageStyle := m.styles.JobInfo
	switch js.stage {
	case progress.StageDownloading:
		stageStyle = m.styles.StageDL
	case progress.StageUploading:
		stageStyle = m.styles.StageUp
	case progress.StageCompleted:
		stageStyle = m.styles.Success
	case progress.StageError:
		stageStyle = m.styles.Error
	}

	left := m.styles.JobTitle.Render(truncate(js.url, 48))
	stage := stageStyle.Render(string(js.stage))

	var right string
	switch {
	case js.percent >= 0 && js.percent <= 100 && !js.done:
		right = fmt.Sprintf("%s %5.1f%%", js.bar.ViewAs(js.percent/100.0), js.percent)
		if js.speed != "" {
			right += "  " + m.styles.Faint.Render(js.speed)
		}
	case js.done && !js.err:
		right = m.styles.Success.Render("✓ done")
	case js.err:
		right = m.styles.Error.Render("✗ failed")
	case js.started:
		right = m.styles.Spinner.Render(js.spinner.View()) + " " + m.styles.Faint.Render("working")
	default:
		right = m.styles.Faint.Render("waiting")
	}

	line1 := fmt.Sprintf("%s  %s", left, stage)
	line2 := m.styles.JobInfo.Render(js.status)
	return m.styles.Box.Render(line1 + "\n" + right + "\n" + line2)
}

func (m Model) viewSummary() string {
	var saved []string
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		if js.done && !js.err && js.outputPath != "" {
			saved = append(saved, js.outputPath)
		}
	}
	if len(saved) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Saved:"))
	b.WriteString("\n")
	for _, p := range saved {
		b.WriteString(m.styles.Success.Render("  • " + p))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	if summary := m.viewSummary(); summary != "" {
		return m.viewHeader() + "\n\n" + m.viewJobs() + "\n" + summary
	}
	return m.viewHeader() + "\n\n" + m.viewJobs()
}

func savedStatus(o model.TaskOutcome) string {
	if o.OutputPath == "" {
		return "Completed"
	}
	if o.Bytes > 0 {
		return fmt.Sprintf("Saved: %s (%s)", o.OutputPath, format.HumanizeBytes(o.Bytes))
	}
	return "Saved: " + o.OutputPath
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
