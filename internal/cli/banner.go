package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// CPUFeatures lists the instruction set extensions that speed up the
// word-level arithmetic of the engines on this host.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasBMI2, "BMI2")
		add(cpu.X86.HasADX, "ADX")
		add(cpu.X86.HasAVX2, "AVX2")
		add(cpu.X86.HasAVX512F, "AVX512F")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "ASIMD")
		add(cpu.ARM64.HasSVE, "SVE")
	}
	return features
}

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the request, the timeout, the size limit and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	req := cfg.ToRequest().Normalize()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s%s (base %d in, base %d out) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), req, ui.ColorReset(), req.InputBase, req.OutputBase,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	features := "none"
	if f := CPUFeatures(); len(f) > 0 {
		features = strings.Join(f, " ")
	}
	fmt.Fprintf(out, "CPU features: %s%s%s.\n", ui.ColorCyan(), features, ui.ColorReset())
	if cfg.MaxWords > 0 {
		fmt.Fprintf(out, "Size limit: %s%s%s words (%s).\n",
			ui.ColorCyan(), format.FormatCount(cfg.MaxWords), ui.ColorReset(),
			format.FormatBytes(uint64(cfg.MaxWords)*8))
	}
}

// PrintExecutionMode displays the execution mode (single engine vs comparison).
//
// Parameters:
//   - evaluators: The evaluators that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(evaluators []engine.Evaluator, out io.Writer) {
	var modeDesc string
	if len(evaluators) > 1 {
		names := make([]string, len(evaluators))
		for i, ev := range evaluators {
			names[i] = ev.Name()
		}
		modeDesc = fmt.Sprintf("Parallel comparison of %d engines (%s)", len(evaluators), strings.Join(names, ", "))
	} else {
		modeDesc = fmt.Sprintf("Single evaluation with the %s%s%s engine",
			ui.ColorGreen(), evaluators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
