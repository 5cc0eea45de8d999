// Package cli provides the command-line presentation layer: the result
// presenter, the progress spinner, the REPL and shell completion.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultEngine is the engine used for plain evaluations.
	DefaultEngine string
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// InputBase is the radix of operands typed at the prompt.
	InputBase int
	// OutputBase is the radix of printed results.
	OutputBase int
	// ForceSign prints '+' before positive results.
	ForceSign bool
}

// REPL represents an interactive evaluation session.
type REPL struct {
	config        REPLConfig
	factory       engine.Factory
	currentEngine string
	in            io.Reader
	out           io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - factory: The source of evaluators.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(factory engine.Factory, config REPLConfig) *REPL {
	current := config.DefaultEngine
	if current == "" || current == "all" {
		current = "bigz"
		if names := factory.List(); len(names) > 0 && !contains(names, current) {
			current = names[0]
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	if config.InputBase == 0 {
		config.InputBase = 10
	}
	if config.OutputBase == 0 {
		config.OutputBase = 10
	}
	return &REPL{
		config:        config,
		factory:       factory,
		currentEngine: current,
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 16<<20)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"bigcalc> "+ui.ColorReset())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 bigcalc - Interactive Mode%s                         %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, line := range [][2]string{
		{"<op> <operands...>", "Evaluate with the current engine (e.g. mul 12 -7)"},
		{"compare <op> <operands...>", "Evaluate on every engine and cross-check"},
		{"engine <name>", "Change engine (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"base <n>", "Set the radix of operands (2-36)"},
		{"outbase <n>", "Set the radix of results (2-36)"},
		{"sign", "Toggle '+' before positive results"},
		{"list", "List available engines"},
		{"ops", "List operations"},
		{"status", "Display current configuration"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-27s%s - %s\n", ui.ColorYellow(), line[0], ui.ColorReset(), line[1])
	}
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "engine":
		r.cmdEngine(args)
	case "base", "outbase":
		r.cmdBase(cmd, args)
	case "sign":
		r.config.ForceSign = !r.config.ForceSign
		fmt.Fprintf(r.out, "Force sign: %s%v%s\n", ui.ColorGreen(), r.config.ForceSign, ui.ColorReset())
	case "compare":
		r.cmdCompare(args)
	case "list", "ls":
		r.cmdList()
	case "ops":
		r.cmdOps()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, ok := engine.LookupOp(cmd); !ok {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
			return true
		}
		r.evaluate(r.request(cmd, args))
	}
	return true
}

func (r *REPL) request(op string, operands []string) engine.Request {
	return engine.Request{
		Op:         op,
		Operands:   operands,
		InputBase:  r.config.InputBase,
		OutputBase: r.config.OutputBase,
		ForceSign:  r.config.ForceSign,
	}
}

// evaluate runs req on the current engine.
func (r *REPL) evaluate(req engine.Request) {
	if _, err := req.Validate(); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	ev, err := r.factory.Get(r.currentEngine)
	if err != nil {
		fmt.Fprintf(r.out, "%sEngine not found: %s%s\n", ui.ColorRed(), r.currentEngine, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteEvaluations(ctx, []engine.Evaluator{ev}, req, orchestration.NullProgressReporter{}, r.out)
	res := results[0]
	if res.Err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		return
	}

	value, truncated := FormatResultValue(res.Result, r.config.OutputBase, false)
	fmt.Fprintf(r.out, "  = %s%s%s\n", ui.ColorGreen(), value, ui.ColorReset())
	if truncated {
		fmt.Fprintf(r.out, "  %s(truncated, %s digits)%s\n", ui.ColorYellow(), format.FormatCount(len(strings.TrimLeft(res.Result, "+-"))), ui.ColorReset())
	}
	fmt.Fprintf(r.out, "  %s%s in %s%s\n\n", ui.ColorDim(), ev.Name(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
}

func (r *REPL) cmdEngine(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: engine <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if _, err := r.factory.Get(name); err != nil {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentEngine = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdBase(cmd string, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: %s <2-36>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		return
	}
	b, err := strconv.Atoi(args[0])
	if err != nil || b < 2 || b > 36 {
		fmt.Fprintf(r.out, "%sInvalid base: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	if cmd == "base" {
		r.config.InputBase = b
		fmt.Fprintf(r.out, "Input base: %s%d%s\n", ui.ColorGreen(), b, ui.ColorReset())
	} else {
		r.config.OutputBase = b
		fmt.Fprintf(r.out, "Output base: %s%d%s\n", ui.ColorGreen(), b, ui.ColorReset())
	}
}

// cmdCompare evaluates on every engine and reports agreement.
func (r *REPL) cmdCompare(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: compare <op> <operands...>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	req := r.request(args[0], args[1:])
	if _, err := req.Validate(); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	evaluators, err := orchestration.GetEvaluatorsToRun("all", r.factory)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteEvaluations(ctx, evaluators, req, orchestration.NullProgressReporter{}, r.out)

	fmt.Fprintf(r.out, "\n%sComparison for %s:%s\n", ui.ColorBold(), req, ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())
	consistent := orchestration.Consistent(results)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-10s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if !consistent {
			status = fmt.Sprintf("%s%016x%s", ui.ColorRed(), res.Digest, ui.ColorReset())
		}
		fmt.Fprintf(r.out, "  %s%-10s%s: %s%12s%s %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.Duration), ui.ColorReset(), status)
	}
	if !consistent {
		fmt.Fprintf(r.out, "  %s✗ INCONSISTENT results%s\n", ui.ColorRed(), ui.ColorReset())
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable engines:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentEngine {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdOps() {
	fmt.Fprintf(r.out, "\n%sOperations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, op := range engine.Ops {
		fmt.Fprintf(r.out, "  %s%-9s%s %-14s %s\n", ui.ColorYellow(), op.Name, ui.ColorReset(), op.Usage, op.Summary)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Engine:       %s%s%s\n", ui.ColorCyan(), r.currentEngine, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:      %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Input base:   %s%d%s\n", ui.ColorCyan(), r.config.InputBase, ui.ColorReset())
	fmt.Fprintf(r.out, "  Output base:  %s%d%s\n", ui.ColorCyan(), r.config.OutputBase, ui.ColorReset())
	fmt.Fprintf(r.out, "  Force sign:   %s%v%s\n", ui.ColorCyan(), r.config.ForceSign, ui.ColorReset())
	fmt.Fprintln(r.out)
}
