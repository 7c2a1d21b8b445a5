package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gpuprobe/internal/gpu"
	"gpuprobe/internal/logging"
	"gpuprobe/internal/probe"
)

type stubQuery struct {
	names []string
}

func (s stubQuery) Backend() string { return "stub" }
func (s stubQuery) IsAvailable() bool { return len(s.names) > 0 }
func (s stubQuery) DeviceCount() (int, error) { return len(s.names), nil }
func (s stubQuery) DeviceName(i int) (string, error) { return s.names[i], nil }

func newTestModel(t *testing.T, query gpu.DeviceQuery) Model {
	t.Helper()
	logger := logging.NewLogger(logging.LevelError)
	return NewModel(logger, query, filepath.Join(t.TempDir(), "gpu_probe.json"))
}

// runInit executes the Init command and feeds its message back into the model.
func runInit(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Expected Init to return the probe command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_InitialViewIsProbing(t *testing.T) {
	m := newTestModel(t, stubQuery{names: []string{"Device-X"}})

	if !strings.Contains(m.View(), "Probing...") {
		t.Errorf("Expected probing placeholder, got:\n%s", m.View())
	}
}

func TestModel_PassingProbe(t *testing.T) {
	m := runInit(t, newTestModel(t, stubQuery{names: []string{"Device-X"}}))

	if !m.Passed() {
		t.Fatalf("Expected passing probe, got err %v", m.probeErr)
	}

	view := m.View()
	for _, want := range []string{"GPU available: True", "Number of GPUs: 1", "GPU name: Device-X", "PASS"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestModel_FailingProbe(t *testing.T) {
	m := runInit(t, newTestModel(t, gpu.DisabledQuery{}))

	if m.Passed() {
		t.Fatal("Expected failing probe")
	}

	view := m.View()
	if !strings.Contains(view, "GPU available: False") {
		t.Errorf("Expected availability line, got:\n%s", view)
	}
	if !strings.Contains(view, probe.NoGPUMessage(gpu.BackendNVML)) {
		t.Errorf("Expected failure message, got:\n%s", view)
	}
}

func TestModel_Rerun(t *testing.T) {
	m := runInit(t, newTestModel(t, stubQuery{names: []string{"Device-X"}}))

	next, cmd := m.Update(keyMsg('r'))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected 'r' to start a probe")
	}
	if !m.running {
		t.Error("Expected model to be running after 'r'")
	}

	// A second 'r' while running is ignored.
	if _, again := m.Update(keyMsg('r')); again != nil {
		t.Error("Expected no command while a probe is running")
	}

	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.running || !m.Passed() {
		t.Errorf("Expected finished passing run, got running=%v err=%v", m.running, m.probeErr)
	}
}

func TestModel_SaveReport(t *testing.T) {
	m := runInit(t, newTestModel(t, stubQuery{names: []string{"Device-X", "Device-Y"}}))

	_, cmd := m.Update(keyMsg('s'))
	if cmd == nil {
		t.Fatal("Expected 's' to return a save command")
	}

	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.lastError != "" {
		t.Fatalf("Unexpected save error: %s", m.lastError)
	}
	if !strings.Contains(m.statusMessage, m.reportPath) {
		t.Errorf("Expected status to mention report path, got %q", m.statusMessage)
	}

	data, err := os.ReadFile(m.reportPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	var saved probe.Result
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if saved.DeviceCount != 2 || saved.DeviceName != "Device-X" {
		t.Errorf("Unexpected saved result: %+v", saved)
	}
}

func TestModel_SaveBeforeResult(t *testing.T) {
	m := newTestModel(t, stubQuery{})
	m.running = false

	next, cmd := m.Update(keyMsg('s'))
	if cmd != nil {
		t.Error("Expected no save command without a result")
	}
	if next.(Model).lastError == "" {
		t.Error("Expected an error message without a result")
	}
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", keyMsg('q')},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, stubQuery{})
			next, cmd := m.Update(tt.msg)

			if !next.(Model).quitting {
				t.Error("Expected quitting to be true")
			}
			if cmd == nil {
				t.Error("Expected quit command")
			}
			if next.(Model).View() != "" {
				t.Error("Expected empty view after quit")
			}
		})
	}
}
