package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
)

// Status is the state shown in the header.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusError
)

// HeaderModel renders the top bar: title, version, engine, status and the
// duration of the current or last evaluation.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	engine    string
	status    Status
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, engine string) HeaderModel {
	return HeaderModel{version: version, engine: engine}
}

// Start marks the beginning of an evaluation.
func (h *HeaderModel) Start() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.status = StatusRunning
}

// Finish freezes the timer and records the outcome.
func (h *HeaderModel) Finish(failed bool) {
	h.endTime = time.Now()
	h.status = StatusIdle
	if failed {
		h.status = StatusError
	}
}

// SetEngine updates the engine label.
func (h *HeaderModel) SetEngine(name string) {
	h.engine = name
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

func (h HeaderModel) elapsed() time.Duration {
	switch {
	case h.startTime.IsZero():
		return 0
	case h.endTime.IsZero():
		return time.Since(h.startTime)
	}
	return h.endTime.Sub(h.startTime)
}

func (h HeaderModel) statusLabel() string {
	switch h.status {
	case StatusRunning:
		return statusRunningStyle.Render("● running")
	case StatusError:
		return statusErrorStyle.Render("● error")
	}
	return statusIdleStyle.Render("● ready")
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "bigcalc"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")
	left := titleStyle.Render(titleText) + pipe +
		versionStyle.Render("engine: ") + engineStyle.Render(h.engine) + pipe +
		elapsedStyle.Render(fmt.Sprintf("Last: %s", format.FormatExecutionDuration(h.elapsed())))
	right := h.statusLabel()

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap) + right)
}
