package tui

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
)

// maxHistory bounds the number of kept evaluations.
const maxHistory = 200

// HistoryModel lists the submitted requests and their outcomes, newest at
// the bottom.
type HistoryModel struct {
	entries []EvalCompleteMsg
	// offset is the number of lines scrolled up from the bottom.
	offset int
	width  int
	height int
}

// NewHistoryModel creates an empty history.
func NewHistoryModel() HistoryModel {
	return HistoryModel{}
}

// SetSize updates dimensions.
func (h *HistoryModel) SetSize(w, height int) {
	h.width = w
	h.height = height
}

// Add appends an outcome and scrolls to the bottom.
func (h *HistoryModel) Add(e EvalCompleteMsg) {
	h.entries = append(h.entries, e)
	if len(h.entries) > maxHistory {
		h.entries = h.entries[len(h.entries)-maxHistory:]
	}
	h.offset = 0
}

// Len returns the number of entries.
func (h HistoryModel) Len() int { return len(h.entries) }

// Last returns the newest entry.
func (h HistoryModel) Last() (EvalCompleteMsg, bool) {
	if len(h.entries) == 0 {
		return EvalCompleteMsg{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Clear removes every entry.
func (h *HistoryModel) Clear() {
	h.entries = nil
	h.offset = 0
}

// Scroll moves the view by delta lines; positive values go back in time.
func (h *HistoryModel) Scroll(delta int) {
	maxOffset := max(len(h.lines())-h.visibleLines(), 0)
	h.offset = min(max(h.offset+delta, 0), maxOffset)
}

func (h HistoryModel) visibleLines() int {
	return max(h.height-2, 1)
}

// valueWidth is the room left for a result on one line.
func (h HistoryModel) valueWidth() int {
	return max(h.width-8, 20)
}

func (h HistoryModel) lines() []string {
	var lines []string
	for _, e := range h.entries {
		lines = append(lines, promptStyle.Render("> ")+requestStyle.Render(e.Request.String()))
		if len(e.Results) > 1 {
			var parts []string
			for _, r := range e.Results {
				mark := successStyle.Render("✓")
				if r.Err != nil {
					mark = errorStyle.Render("✗")
				}
				parts = append(parts, fmt.Sprintf("%s %s %s", engineStyle.Render(r.Name), format.FormatExecutionDuration(r.Duration), mark))
			}
			lines = append(lines, "  "+strings.Join(parts, "  "))
		}
		switch {
		case e.Final != nil:
			value, _ := format.TruncateDigits(e.Final.Result, h.valueWidth(), h.valueWidth()/2-2)
			line := "  = " + metricValueStyle.Render(value)
			if len(e.Results) <= 1 {
				line += "  " + engineStyle.Render(e.Final.Name+" "+format.FormatExecutionDuration(e.Final.Duration))
			}
			lines = append(lines, line)
		case e.ExitCode == apperrors.ExitErrorMismatch:
			lines = append(lines, "  "+errorStyle.Render("✗ engines disagree"))
		case e.Err != nil:
			lines = append(lines, "  "+errorStyle.Render("✗ "+e.Err.Error()))
		}
	}
	return lines
}

// View renders the history panel.
func (h HistoryModel) View() string {
	lines := h.lines()
	n := h.visibleLines()
	end := len(lines) - h.offset
	start := max(end-n, 0)
	body := ""
	if len(lines) == 0 {
		body = engineStyle.Render("Type an operation such as \"mul 12 -7\" and press enter.")
	} else {
		body = strings.Join(lines[start:end], "\n")
	}
	return panelStyle.Width(max(h.width-2, 0)).Height(n).Render(body)
}
