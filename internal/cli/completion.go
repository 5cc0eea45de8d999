package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bigcalc/internal/engine"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Name      string   // flag name without the dash (e.g., "out-base")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "radix", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsEngine  bool     // true if values come from the engine list (dynamic)
	IsOp      bool     // true if values come from the operation table
}

var radixValues = []string{"2", "8", "10", "16", "36"}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Name: "h", Help: "Show help message"},
	{Name: "version", Help: "Show version information"},
	{Name: "op", Help: "Operation to evaluate", IsOp: true, ValueName: "operation"},
	{Name: "a", Help: "First operand", ValueName: "integer"},
	{Name: "b", Help: "Second operand", ValueName: "integer"},
	{Name: "m", Help: "Third operand", ValueName: "integer"},
	{Name: "base", Help: "Radix of the operands", Values: radixValues, ValueName: "radix"},
	{Name: "out-base", Help: "Radix of the result", Values: radixValues, ValueName: "radix"},
	{Name: "force-sign", Help: "Print + before positive results"},
	{Name: "engine", Help: "Arithmetic engine", IsEngine: true, ValueName: "engine"},
	{Name: "timeout", Help: "Maximum evaluation time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Name: "max-words", Help: "Size limit in 64-bit words", ValueName: "words"},
	{Name: "max-operand-digits", Help: "Operand length limit for the HTTP API", ValueName: "digits"},
	{Name: "v", Help: "Display the full result"},
	{Name: "d", Help: "Show result details"},
	{Name: "q", Help: "Quiet mode for scripts"},
	{Name: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Name: "tui", Help: "Interactive dashboard"},
	{Name: "repl", Help: "Interactive prompt"},
	{Name: "serve", Help: "Start the HTTP API"},
	{Name: "port", Help: "HTTP API port", ValueName: "port"},
	{Name: "config", Help: "TOML configuration file", IsFile: true, ValueName: "file"},
	{Name: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - engines: List of available engine names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, engines []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(engines)
	case "zsh":
		script = zshCompletion(engines)
	case "fish":
		script = fishCompletion(engines)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagValues returns the static or dynamic completion words of f.
func flagValues(f FlagCompletion, engines []string) []string {
	switch {
	case f.IsEngine:
		return append(append([]string(nil), engines...), "all")
	case f.IsOp:
		return engine.OpNames()
	}
	return f.Values
}

func bashCompletion(engines []string) string {
	var opts, cases, files []string
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
		if f.IsFile {
			files = append(files, "-"+f.Name)
			continue
		}
		if vals := flagValues(f, engines); len(vals) > 0 {
			cases = append(cases, fmt.Sprintf("        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;",
				f.Name, strings.Join(vals, " ")))
		}
	}
	cases = append(cases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;",
		strings.Join(files, "|")))

	return fmt.Sprintf(`# Bash completion script for bigcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_bigcalc_completions() {
    local cur prev opts ops
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    ops="%s"

    case "${prev}" in
%s
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
    elif [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "${ops}" -- "${cur}") )
    fi
    return 0
}

complete -F _bigcalc_completions bigcalc
`, strings.Join(opts, " "), strings.Join(engine.OpNames(), " "), strings.Join(cases, "\n"))
}

func zshCompletion(engines []string) string {
	args := make([]string, 0, len(flagRegistry)+1)
	for _, f := range flagRegistry {
		suffix := ""
		switch vals := flagValues(f, engines); {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case len(vals) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(vals, " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}
		args = append(args, fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, suffix))
	}
	args = append(args, fmt.Sprintf("        '1:operation:(%s)'", strings.Join(engine.OpNames(), " ")))

	return fmt.Sprintf(`#compdef bigcalc

# Zsh completion script for bigcalc
# Add this to your ~/.zshrc or place in $fpath

_bigcalc() {
    _arguments -s \
%s
}

_bigcalc "$@"
`, strings.Join(args, " \\\n"))
}

func fishCompletion(engines []string) string {
	lines := []string{
		"# Fish completion script for bigcalc",
		"# Add this to ~/.config/fish/completions/bigcalc.fish",
		"",
		"complete -c bigcalc -f",
		fmt.Sprintf("complete -c bigcalc -n '__fish_use_subcommand' -a '%s'", strings.Join(engine.OpNames(), " ")),
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c bigcalc", "-o " + f.Name, fmt.Sprintf("-d '%s'", f.Help)}
		switch vals := flagValues(f, engines); {
		case f.IsFile:
			parts = append(parts, "-rF")
		case len(vals) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(vals, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
