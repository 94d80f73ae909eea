package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"grabbit/internal/model"
	"grabbit/internal/pool"
	"grabbit/internal/progress"
)

// Factory builds the executor once the UI's reporter exists, so progress
// events flow into the bubbletea event loop.
type Factory func(rep progress.Reporter) *pool.Executor

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	tasks []pool.Task
	ex    *pool.Executor

	jobs     map[string]*jobState
	jobOrder []string
	slot     map[string]int // job ID -> task index
	outcomes []model.TaskOutcome
	recorded []bool

	workers int
	running int
	next    int // next index in tasks to start

	width, height int
	styles        Styles

	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, tasks []pool.Task, workers int, f Factory) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	jobs := make(map[string]*jobState, len(tasks))
	order := make([]string, 0, len(tasks))
	slot := make(map[string]int, len(tasks))
	for i, t := range tasks {
		js := newJobState(t.ID, t.Request.URL, sty)
		jobs[t.ID] = &js
		order = append(order, t.ID)
		slot[t.ID] = i
	}

	if workers <= 0 {
		workers = 1
	}

	eventCh := make(chan tea.Msg, 256)
	m := Model{
		ctx:      c,
		cancel:   cancel,
		tasks:    tasks,
		jobs:     jobs,
		jobOrder: order,
		slot:     slot,
		outcomes: make([]model.TaskOutcome, len(tasks)),
		recorded: make([]bool, len(tasks)),
		workers:  workers,
		styles:   sty,
		eventCh:  eventCh,
	}
	m.ex = f(teaReporter{ch: eventCh})
	return m
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		cmds = append(cmds, m.jobs[id].spinner.Tick)
	}
	cmds = append(cmds, func() tea.Msg { return startMsg{} })
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case startMsg:
		return m, tea.Batch(m.startJobs(), m.listenEventsCmd())

	case jobUpdateMsg:
		u := msg.U
		if js, ok := m.jobs[u.JobID]; ok {
			js.stage = u.Stage
			js.percent = u.Percent
			js.speed = u.Speed
			js.status = u.Message
		}
		return m, m.listenEventsCmd()
	case jobLogMsg:
		l := msg.L
		if js, ok := m.jobs[l.JobID]; ok {
			js.status = l.Line
		}
		return m, m.listenEventsCmd()
	case jobResultMsg:
		r := msg.R
		if js, ok := m.jobs[r.JobID]; ok && !js.done {
			js.done = true
			if idx, ok := m.slot[r.JobID]; ok {
				m.outcomes[idx] = r.Outcome
				m.recorded[idx] = true
			}
			if r.Outcome.OK {
				js.stage = progress.StageCompleted
				js.percent = 100
				js.outputPath = r.Outcome.OutputPath
				js.bytes = r.Outcome.Bytes
				js.status = savedStatus(r.Outcome)
			} else {
				js.stage = progress.StageError
				js.err = true
				js.status = r.Outcome.Error
				js.percent = -1
			}
			m.running--
			return m, tea.Batch(m.startJobs(), m.listenEventsCmd())
		}
		return m, m.listenEventsCmd()
	case allDoneMsg:
		return m, tea.Quit
	}

	// Exactly one event listener stays armed; it is re-armed only by the
	// branches that consumed an event, so spinner ticks don't multiply it.
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	return m, tea.Batch(cmds...)
}

// startJobs launches tasks until the worker ceiling is reached. Counter
// bookkeeping happens here, synchronously, so the cap holds regardless of
// completion order.
func (m *Model) startJobs() tea.Cmd {
	var cmds []tea.Cmd
	for m.running < m.workers && m.next < len(m.tasks) {
		t := m.tasks[m.next]
		m.next++
		m.running++
		if js, ok := m.jobs[t.ID]; ok {
			js.started = true
			js.status = "Starting"
			js.stage = progress.StageDownloading
		}
		cmds = append(cmds, m.runJobCmd(t))
	}
	if len(cmds) == 0 && m.running == 0 && m.next >= len(m.tasks) {
		return func() tea.Msg { return allDoneMsg{} }
	}
	return tea.Batch(cmds...)
}

func (m Model) runJobCmd(t pool.Task) tea.Cmd {
	return func() tea.Msg {
		// The result reaches the UI through the reporter channel.
		m.ex.RunOne(m.ctx, t)
		return nil
	}
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

// teaReporter bridges pool progress events into the bubbletea loop.
type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	// Completion updates must land; transient ones may be dropped under load.
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.ch <- jobUpdateMsg{U: u}
		return
	}
	select {
	case r.ch <- jobUpdateMsg{U: u}:
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	select {
	case r.ch <- jobLogMsg{L: l}:
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	// Results are critical; always block.
	r.ch <- jobResultMsg{R: res}
}
