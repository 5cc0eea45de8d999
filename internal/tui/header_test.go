package tui

import (
	"strings"
	"testing"
)

func TestHeaderModel_Status(t *testing.T) {
	h := NewHeaderModel("v1.2.0", "bigz")
	h.SetWidth(100)

	if !strings.Contains(h.View(), "ready") {
		t.Error("new header should be ready")
	}

	h.Start()
	if h.status != StatusRunning {
		t.Errorf("status = %v, want running", h.status)
	}
	if !strings.Contains(h.View(), "running") {
		t.Error("running header should say so")
	}

	h.Finish(true)
	if h.status != StatusError {
		t.Errorf("status = %v, want error", h.status)
	}
	if h.elapsed() < 0 {
		t.Error("elapsed must not be negative")
	}

	h.Finish(false)
	if h.status != StatusIdle {
		t.Errorf("status = %v, want idle", h.status)
	}
}

func TestHeaderModel_View(t *testing.T) {
	h := NewHeaderModel("v1.2.0", "bigz")
	h.SetWidth(100)
	h.SetEngine("stdlib")

	view := h.View()
	for _, want := range []string{"bigcalc v1.2.0", "engine:", "stdlib", "Last:"} {
		if !strings.Contains(view, want) {
			t.Errorf("header missing %q: %s", want, view)
		}
	}

	dev := NewHeaderModel("dev", "bigz")
	dev.SetWidth(80)
	if strings.Contains(dev.View(), "dev") {
		t.Error("dev version should not be shown")
	}
}
