package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
)

// runREPL feeds input to a fresh REPL and returns everything it printed.
func runREPL(t *testing.T, input string) string {
	t.Helper()
	useNoColor(t)
	r := NewREPL(engine.NewDefaultFactory(), REPLConfig{Timeout: 10 * time.Second})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start()
	return out.String()
}

func TestREPL_Evaluate(t *testing.T) {
	out := runREPL(t, "add 2 3\nmul -12345 1000\nexit\n")
	for _, want := range []string{"= 5\n", "= -12,345,000", "bigz in", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_Errors(t *testing.T) {
	out := runREPL(t, "frobnicate 1\nadd 1\ndiv 1 0\nadd 1 x\nquit\n")
	for _, want := range []string{"Unknown command: frobnicate", "wrong number of operands", "Error:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_Bases(t *testing.T) {
	out := runREPL(t, "base 16\noutbase 2\nadd ff 1\nbase 99\nexit\n")
	for _, want := range []string{"Input base: 16", "Output base: 2", "= 100000000", "Invalid base: 99"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_Sign(t *testing.T) {
	out := runREPL(t, "sign\nadd 1 1\nexit\n")
	if !strings.Contains(out, "Force sign: true") || !strings.Contains(out, "= +2") {
		t.Errorf("force sign not applied:\n%s", out)
	}
}

func TestREPL_Engine(t *testing.T) {
	out := runREPL(t, "engine stdlib\nstatus\nengine nope\nengine\nexit\n")
	for _, want := range []string{"Engine changed to: stdlib", "Engine:       stdlib", "Unknown engine: nope", "Usage: engine <name>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPL_Compare(t *testing.T) {
	out := runREPL(t, "compare pow 3 40\ncompare\nexit\n")
	for _, want := range []string{"Comparison for pow 3 40", "bigz", "stdlib", "✓", "Usage: compare"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "INCONSISTENT") {
		t.Errorf("engines should agree:\n%s", out)
	}
}

func TestREPL_ListOpsHelp(t *testing.T) {
	out := runREPL(t, "list\nops\nhelp\n")
	for _, want := range []string{"Available engines:", "► bigz", "modexp", "a e m", "Available commands:", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewREPL_Defaults(t *testing.T) {
	t.Parallel()
	r := NewREPL(engine.NewDefaultFactory(), REPLConfig{DefaultEngine: "all"})
	if r.currentEngine != "bigz" {
		t.Errorf("currentEngine = %q, want bigz", r.currentEngine)
	}
	if r.config.InputBase != 10 || r.config.OutputBase != 10 {
		t.Errorf("bases = %d/%d, want 10/10", r.config.InputBase, r.config.OutputBase)
	}
	if r.config.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", r.config.Timeout)
	}
}
