// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatResultValue].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigz"
	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// ResultSummary describes a result value independently of its radix.
type ResultSummary struct {
	Sign          bigz.Sign
	Digits        int
	Bits          int
	Words         int
	TrailingZeros uint
}

// Summarize parses text in base and measures it. Non-numeric results, such
// as those of cmp, still parse as small integers.
func Summarize(text string, base int) (ResultSummary, error) {
	x, err := bigz.Default().FromString(text, base, bigz.Strict)
	if err != nil {
		return ResultSummary{}, err
	}
	digits := len(strings.TrimLeft(text, "+-"))
	return ResultSummary{
		Sign:          x.Sign(),
		Digits:        digits,
		Bits:          x.BitLen(),
		Words:         x.NumWords(),
		TrailingZeros: x.TrailingZeros(),
	}, nil
}

// FormatResultValue prepares a result for the terminal: decimal results are
// grouped by thousands, and long results are truncated unless verbose.
//
// Returns:
//   - string: The value to print.
//   - bool: Whether the value was truncated.
func FormatResultValue(text string, base int, verbose bool) (string, bool) {
	truncated := false
	if !verbose {
		text, truncated = format.TruncateDigits(text, TruncationLimit, DisplayEdges)
	}
	if base == 10 && !truncated {
		text = format.FormatNumberString(text)
	}
	return text, truncated
}

// DisplayResult prints the agreed result of req with optional details.
//
// Parameters:
//   - result: The result to display.
//   - req: The evaluated request.
//   - opts: Verbose disables truncation; Details adds the size analysis.
//   - out: The output writer.
func DisplayResult(result orchestration.EvaluationResult, req engine.Request, opts orchestration.PresentationOptions, out io.Writer) {
	req = req.Normalize()
	fmt.Fprintf(out, "\n--- Result ---\n")
	fmt.Fprintf(out, "Evaluated by %s%s%s in %s%s%s.\n",
		ui.ColorGreen(), result.Name, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())

	if opts.Details {
		if s, err := Summarize(result.Result, req.OutputBase); err == nil {
			fmt.Fprintf(out, "\n%sDetailed result analysis%s\n", ui.ColorBold(), ui.ColorReset())
			fmt.Fprintf(out, "  Sign:            %s\n", s.Sign)
			fmt.Fprintf(out, "  Number of digits: %s%s%s (base %d)\n", ui.ColorCyan(), format.FormatCount(s.Digits), ui.ColorReset(), req.OutputBase)
			fmt.Fprintf(out, "  Result binary size: %s%s%s bits, %s words (%s)\n",
				ui.ColorCyan(), format.FormatCount(s.Bits), ui.ColorReset(),
				format.FormatCount(s.Words), format.FormatBytes(uint64(s.Words)*8))
			fmt.Fprintf(out, "  Trailing zero bits: %d\n", s.TrailingZeros)
		}
	}

	value, truncated := FormatResultValue(result.Result, req.OutputBase, opts.Verbose)
	fmt.Fprintf(out, "\n%s%s%s =\n%s%s%s\n", ui.ColorMagenta(), req, ui.ColorReset(), ui.ColorBold(), value, ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "%s(truncated)%s Tip: use -v to print all %s digits.\n",
			ui.ColorYellow(), ui.ColorReset(), format.FormatCount(len(strings.TrimLeft(result.Result, "+-"))))
	}
}

// DisplayQuietResult outputs a result in quiet mode: the bare value on one
// line, suitable for scripting.
func DisplayQuietResult(out io.Writer, text string) {
	fmt.Fprintln(out, text)
}

// WriteResultToFile writes a result to path with a commented header.
// Parent directories are created as needed. An empty path writes nothing.
//
// Parameters:
//   - result: The result to save.
//   - req: The evaluated request.
//   - path: The destination file.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result orchestration.EvaluationResult, req engine.Request, path string) error {
	if path == "" {
		return nil
	}
	req = req.Normalize()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engine: %s\n", result.Name)
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "# Operation: %s\n", req)
	fmt.Fprintf(file, "# Base: %d\n", req.OutputBase)
	if s, err := Summarize(result.Result, req.OutputBase); err == nil {
		fmt.Fprintf(file, "# Bits: %d\n", s.Bits)
		fmt.Fprintf(file, "# Digits: %d\n", s.Digits)
		fmt.Fprintf(file, "# Size: %s\n", format.FormatBytes(uint64(s.Words)*8))
	}
	fmt.Fprintf(file, "# Digest: %016x\n\n", result.Digest)
	fmt.Fprintf(file, "%s\n", result.Result)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayFileSaved confirms that the result was written to path.
func DisplayFileSaved(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
