package tui

import (
	"bytes"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gpuprobe/internal/fsutil"
	"gpuprobe/internal/gpu"
	"gpuprobe/internal/logging"
	"gpuprobe/internal/probe"
)

// Model renders the most recent probe run and lets the user re-run or save it.
type Model struct {
	startTime time.Time
	quitting  bool

	logger     *logging.Logger
	query      gpu.DeviceQuery
	reportPath string

	running   bool
	hasResult bool
	result    probe.Result
	lines     string
	probeErr  error

	statusMessage string
	lastError     string
}

// probeDoneMsg carries the outcome of one probe run.
type probeDoneMsg struct {
	result probe.Result
	lines  string
	err    error
}

// reportSavedMsg reports the outcome of writing the result file.
type reportSavedMsg struct {
	path string
	err  error
}

// NewModel creates a TUI model; the first probe runs from Init.
func NewModel(logger *logging.Logger, query gpu.DeviceQuery, reportPath string) Model {
	return Model{
		startTime:  time.Now(),
		logger:     logger,
		query:      query,
		reportPath: reportPath,
		running:    true,
	}
}

// Init starts the first probe run
func (m Model) Init() tea.Cmd {
	return runProbe(m.query, m.logger)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case probeDoneMsg:
		m.running = false
		m.hasResult = true
		m.result = msg.result
		m.lines = msg.lines
		m.probeErr = msg.err
		m.statusMessage = ""
		m.lastError = ""
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.lastError = "Failed to save report: " + msg.err.Error()
			m.statusMessage = ""
		} else {
			m.statusMessage = "Report saved to " + msg.path
			m.lastError = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}

	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		m.quitting = true
		m.logger.Info("tui.exit", "TUI closed", map[string]interface{}{
			"duration_ms": time.Since(m.startTime).Milliseconds(),
		})
		return m, tea.Quit

	case "r":
		if m.running {
			return m, nil
		}
		m.running = true
		m.statusMessage = "Probing..."
		return m, runProbe(m.query, m.logger)

	case "s":
		if m.running {
			return m, nil
		}
		if !m.hasResult {
			m.lastError = "No probe result to save yet"
			return m, nil
		}
		return m, saveReport(m.result, m.reportPath, m.logger)
	}

	return m, nil
}

// Passed reports whether the last completed run found an accelerator.
func (m Model) Passed() bool {
	return m.hasResult && m.probeErr == nil
}

func runProbe(query gpu.DeviceQuery, logger *logging.Logger) tea.Cmd {
	return func() tea.Msg {
		var out bytes.Buffer
		result, err := probe.New(query, &out, logger).Run()
		return probeDoneMsg{result: result, lines: out.String(), err: err}
	}
}

func saveReport(result probe.Result, path string, logger *logging.Logger) tea.Cmd {
	return func() tea.Msg {
		return reportSavedMsg{path: path, err: fsutil.WriteJSON(path, result, logger)}
	}
}

func isPrecondition(err error) bool {
	return errors.Is(err, probe.ErrPreconditionNotMet)
}
