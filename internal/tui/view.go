package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700"))
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("gpuprobe — Accelerator Check"))
	b.WriteString("\n\n")

	if m.hasResult {
		b.WriteString(m.renderResult())
	} else {
		b.WriteString(valueStyle.Render("Probing..."))
		b.WriteString("\n")
	}

	if m.statusMessage != "" {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(m.statusMessage))
		b.WriteString("\n")
	}

	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(failStyle.Render("⚠ " + m.lastError))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Re-run: r | Save report: s | Quit: q"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderResult() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Backend: "))
	b.WriteString(valueStyle.Render(m.result.Backend))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Checked: "))
	b.WriteString(valueStyle.Render(m.result.CheckedAt.Format("2006-01-02 15:04:05 MST")))
	b.WriteString("\n\n")

	for _, line := range strings.Split(strings.TrimRight(m.lines, "\n"), "\n") {
		if line == "" {
			continue
		}
		b.WriteString("  " + valueStyle.Render(line) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.probeErr == nil:
		b.WriteString(passStyle.Render(fmt.Sprintf("✓ PASS (%d device(s))", m.result.DeviceCount)))
	case isPrecondition(m.probeErr):
		b.WriteString(failStyle.Render("✗ FAIL: " + m.probeErr.Error()))
	default:
		b.WriteString(failStyle.Render("✗ ERROR: " + m.probeErr.Error()))
	}
	b.WriteString("\n")

	return b.String()
}
