package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func okEntry(op string, result string, operands ...string) EvalCompleteMsg {
	res := orchestration.EvaluationResult{Name: "bigz", Result: result, Duration: time.Millisecond}
	return EvalCompleteMsg{
		Request: engine.Request{Op: op, Operands: operands},
		Results: []orchestration.EvaluationResult{res},
		Final:   &res,
	}
}

func TestHistoryModel_AddAndLast(t *testing.T) {
	h := NewHistoryModel()
	if _, ok := h.Last(); ok {
		t.Fatal("Last() on empty history should report false")
	}

	h.Add(okEntry("mul", "-84", "12", "-7"))
	h.Add(okEntry("add", "3", "1", "2"))

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	last, _ := h.Last()
	if last.Final.Result != "3" {
		t.Errorf("Last().Final.Result = %q, want 3", last.Final.Result)
	}

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len() after Clear = %d", h.Len())
	}
}

func TestHistoryModel_Bounded(t *testing.T) {
	h := NewHistoryModel()
	for i := 0; i < maxHistory+10; i++ {
		h.Add(okEntry("neg", "1", "-1"))
	}
	if h.Len() != maxHistory {
		t.Errorf("Len() = %d, want %d", h.Len(), maxHistory)
	}
}

func TestHistoryModel_Lines(t *testing.T) {
	h := NewHistoryModel()
	h.SetSize(80, 20)

	h.Add(okEntry("mul", "-84", "12", "-7"))
	h.Add(EvalCompleteMsg{
		Request:  engine.Request{Op: "div", Operands: []string{"1", "0"}},
		Err:      errors.New("division by zero"),
		ExitCode: apperrors.ExitErrorGeneric,
	})
	h.Add(EvalCompleteMsg{
		Request: engine.Request{Op: "add", Operands: []string{"1", "1"}},
		Results: []orchestration.EvaluationResult{
			{Name: "bigz", Result: "2"},
			{Name: "stdlib", Result: "3"},
		},
		ExitCode: apperrors.ExitErrorMismatch,
	})

	text := stripANSI(strings.Join(h.lines(), "\n"))
	for _, want := range []string{"-84", "bigz", "division by zero", "engines disagree", "stdlib"} {
		if !strings.Contains(text, want) {
			t.Errorf("history missing %q:\n%s", want, text)
		}
	}
}

func TestHistoryModel_TruncatesLongValues(t *testing.T) {
	h := NewHistoryModel()
	h.SetSize(40, 10)
	h.Add(okEntry("pow", strings.Repeat("9", 500), "10", "500"))

	text := stripANSI(strings.Join(h.lines(), "\n"))
	if !strings.Contains(text, "...") {
		t.Errorf("long value not truncated:\n%s", text)
	}
}

func TestHistoryModel_Scroll(t *testing.T) {
	h := NewHistoryModel()
	h.SetSize(80, 5) // 3 visible lines
	for i := 0; i < 5; i++ {
		h.Add(okEntry("add", "2", "1", "1"))
	}

	h.Scroll(100)
	maxOffset := len(h.lines()) - h.visibleLines()
	if h.offset != maxOffset {
		t.Errorf("offset = %d, want clamp at %d", h.offset, maxOffset)
	}
	h.Scroll(-1000)
	if h.offset != 0 {
		t.Errorf("offset = %d, want 0", h.offset)
	}

	h.Scroll(2)
	h.Add(okEntry("add", "2", "1", "1"))
	if h.offset != 0 {
		t.Error("Add should scroll back to the bottom")
	}
}

func TestHistoryModel_View_Empty(t *testing.T) {
	h := NewHistoryModel()
	h.SetSize(80, 10)
	if !strings.Contains(h.View(), "press enter") {
		t.Error("empty history should show a hint")
	}
}
