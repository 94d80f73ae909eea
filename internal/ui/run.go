package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"grabbit/internal/model"
	"grabbit/internal/pool"
)

// Run drives the batch through the TUI and returns one outcome per task, in
// task order. Tasks still pending when the user quits are reported as
// canceled so the batch stays fully accounted for.
func Run(ctx context.Context, tasks []pool.Task, workers int, f Factory) ([]model.TaskOutcome, error) {
	m := NewModel(ctx, tasks, workers, f)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		// An outer interrupt kills the program; treat it like quitting from
		// inside the UI rather than a CLI failure.
		if errors.Is(err, tea.ErrProgramKilled) {
			return canceledOutcomes(tasks), nil
		}
		return nil, err
	}

	fm, ok := final.(Model)
	if !ok {
		return canceledOutcomes(tasks), nil
	}
	outcomes := fm.outcomes
	for i := range outcomes {
		if !fm.recorded[i] {
			outcomes[i] = model.TaskOutcome{URL: tasks[i].Request.URL, Error: "canceled"}
		}
	}
	return outcomes, nil
}

func canceledOutcomes(tasks []pool.Task) []model.TaskOutcome {
	outcomes := make([]model.TaskOutcome, len(tasks))
	for i, t := range tasks {
		outcomes[i] = model.TaskOutcome{URL: t.Request.URL, Error: "canceled"}
	}
	return outcomes
}
