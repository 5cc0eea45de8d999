// Package config defines the application configuration and the parsing of
// command-line flags, environment variables and the optional TOML file.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const (
	// EnvPrefix prefixes every environment variable read by the configuration.
	EnvPrefix = "BIGCALC_"
	// DefaultTimeout bounds a single evaluation.
	DefaultTimeout = 1 * time.Minute
	// DefaultEngine selects every registered evaluator.
	DefaultEngine = "all"
	// DefaultPort is the listening port of the HTTP server.
	DefaultPort = "8080"
	// DefaultLogLevel is the zerolog level name used when none is given.
	DefaultLogLevel = "info"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Op is the operation to evaluate, as listed by engine.Ops.
	Op string
	// Operands are the operand texts, in InputBase.
	Operands []string
	// InputBase is the radix of the operands.
	InputBase int
	// OutputBase is the radix of the result.
	OutputBase int
	// ForceSign prints '+' before positive results.
	ForceSign bool
	// Engine is an evaluator name or "all".
	Engine string
	// Timeout bounds the evaluation.
	Timeout time.Duration
	// MaxWords limits bigz magnitudes; 0 selects a limit derived from the host.
	MaxWords int
	// MaxOperandDigits limits operand length in the HTTP API.
	MaxOperandDigits int

	Verbose    bool
	Details    bool
	Quiet      bool
	OutputFile string

	TUI   bool
	REPL  bool
	Serve bool
	Port  string

	ConfigFile string
	LogLevel   string
	NoColor    bool
	Completion string
}

// Interactive reports whether the configuration selects a mode that reads
// its operations at run time rather than from the command line.
func (c AppConfig) Interactive() bool {
	return c.TUI || c.REPL || c.Serve
}

// ToRequest builds the engine request described by the configuration.
func (c AppConfig) ToRequest() engine.Request {
	return engine.Request{
		Op:         c.Op,
		Operands:   slices.Clone(c.Operands),
		InputBase:  c.InputBase,
		OutputBase: c.OutputBase,
		ForceSign:  c.ForceSign,
	}
}

// operandFlags collects -a, -b and -m in order.
type operandFlags struct {
	a, b, m string
}

func (o operandFlags) values(fs *flag.FlagSet) []string {
	var out []string
	for _, f := range []struct{ name, val string }{{"a", o.a}, {"b", o.b}, {"m", o.m}} {
		if isFlagSet(fs, f.name) {
			out = append(out, f.val)
		}
	}
	return out
}

// ParseConfig parses the command-line arguments into an AppConfig, then
// fills unset values from the environment and the TOML file named by
// -config. The priority is flags, then environment, then file, then
// defaults.
//
// Operands come from -a, -b and -m followed by the positional arguments.
// When -op is not given, the first positional argument names the operation,
// so "bigcalc add 1 2" and "bigcalc -op add -a 1 -b 2" are equivalent.
//
// Parameters:
//   - programName: The program name used in usage messages.
//   - args: The arguments, without the program name.
//   - errorWriter: Where flag usage and parse errors are written.
//   - availableEngines: The registered evaluator names, for validation.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	var ops operandFlags

	fs.StringVar(&config.Op, "op", "", "Operation to evaluate ("+strings.Join(engine.OpNames(), ", ")+").")
	fs.StringVar(&ops.a, "a", "", "First operand.")
	fs.StringVar(&ops.b, "b", "", "Second operand.")
	fs.StringVar(&ops.m, "m", "", "Third operand (modulus for modexp).")
	fs.IntVar(&config.InputBase, "base", 10, "Radix of the operands (2-36).")
	fs.IntVar(&config.OutputBase, "out-base", 10, "Radix of the result (2-36).")
	fs.BoolVar(&config.ForceSign, "force-sign", false, "Print '+' before positive results.")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, "Evaluator to use ('all', "+strings.Join(availableEngines, ", ")+").")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time for one evaluation (e.g. 10s, 1m).")
	fs.IntVar(&config.MaxWords, "max-words", 0, "Size limit of bigz magnitudes in 64-bit words (0 = derived from the host).")
	fs.IntVar(&config.MaxOperandDigits, "max-operand-digits", 0, "Longest operand accepted by the HTTP API (0 = default).")
	fs.BoolVar(&config.Verbose, "v", false, "Print the full result, however long.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print the full result, however long (alias for -v).")
	fs.BoolVar(&config.Details, "d", false, "Show result details (digit and bit counts).")
	fs.BoolVar(&config.Details, "details", false, "Show result details (alias for -d).")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode: print only the result.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: print only the result (alias for -q).")
	fs.StringVar(&config.OutputFile, "o", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file (alias for -o).")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive dashboard.")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive prompt.")
	fs.BoolVar(&config.Serve, "serve", false, "Start the HTTP API server.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port of the HTTP API server.")
	fs.StringVar(&config.ConfigFile, "config", "", "TOML configuration file.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (NO_COLOR is also honored).")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	config.Operands = ops.values(fs)
	positional := fs.Args()
	if !isFlagSet(fs, "op") && len(positional) > 0 && !config.Interactive() {
		config.Op, positional = positional[0], positional[1:]
	}
	config.Operands = append(config.Operands, positional...)

	configFile := config.ConfigFile
	if !isFlagSet(fs, "config") {
		configFile = getEnvString("CONFIG", "")
	}
	if configFile != "" {
		file, err := LoadFile(configFile)
		if err != nil {
			return AppConfig{}, err
		}
		file.apply(&config, fs)
		config.ConfigFile = configFile
	}
	for _, w := range applyEnvOverrides(&config, fs) {
		fmt.Fprintln(errorWriter, "Warning:", w)
	}

	config.Op = strings.ToLower(strings.TrimSpace(config.Op))
	config = ApplyDefaultLimits(config)
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableEngines: The registered evaluator names.
//
// Returns:
//   - error: An apperrors.ConfigError describing the first problem found.
func (c AppConfig) Validate(availableEngines []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	for _, b := range []struct {
		name string
		val  int
	}{{"base", c.InputBase}, {"out-base", c.OutputBase}} {
		if b.val < 2 || b.val > 36 {
			return apperrors.NewConfigError("%s must be between 2 and 36, got %d", b.name, b.val)
		}
	}
	if c.MaxWords < 0 {
		return apperrors.NewConfigError("max-words must not be negative")
	}
	if c.MaxOperandDigits < 0 {
		return apperrors.NewConfigError("max-operand-digits must not be negative")
	}
	if c.Engine != DefaultEngine && !slices.Contains(availableEngines, c.Engine) {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: 'all' or one of [%s]",
			c.Engine, strings.Join(availableEngines, ", "))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	if c.Completion != "" {
		if !slices.Contains([]string{"bash", "zsh", "fish"}, c.Completion) {
			return apperrors.NewConfigError("unsupported completion shell: '%s'", c.Completion)
		}
		return nil
	}
	if c.Interactive() {
		return nil
	}
	if c.Op == "" {
		return apperrors.NewConfigError("no operation given; use -op or name it as the first argument")
	}
	if _, err := c.ToRequest().Validate(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}
