package config

import (
	"math"
	"runtime/debug"

	"fortio.org/safecast"

	"github.com/agbru/bigcalc/internal/bigz"
)

// Limit resolution chain (highest priority first):
//   1. CLI flags (--max-words, --max-operand-digits)
//   2. Environment variables (BIGCALC_MAX_WORDS, etc.)
//   3. The TOML configuration file
//   4. Host estimation (this file)

// DefaultMaxOperandDigits is the longest operand accepted by the HTTP API
// when nothing else is configured.
const DefaultMaxOperandDigits = 100_000

// operandFraction is the share of the Go memory limit one operand may use.
// Multiplication and division allocate several operand-sized temporaries.
const operandFraction = 8

// ApplyDefaultLimits fills the size limits that are still zero. User values
// are never modified.
func ApplyDefaultLimits(cfg AppConfig) AppConfig {
	if cfg.MaxWords == 0 {
		cfg.MaxWords = EstimateMaxWords()
	}
	if cfg.MaxOperandDigits == 0 {
		cfg.MaxOperandDigits = DefaultMaxOperandDigits
	}
	return cfg
}

// EstimateMaxWords derives the bigz magnitude limit from the Go memory
// limit (GOMEMLIMIT). Without a soft limit it returns bigz.DefaultMaxWords.
// The estimate never exceeds bigz.DefaultMaxWords.
func EstimateMaxWords() int {
	limit := debug.SetMemoryLimit(-1)
	if limit <= 0 || limit == math.MaxInt64 {
		return bigz.DefaultMaxWords
	}
	words, err := safecast.Conv[int](limit / 8 / operandFraction)
	if err != nil || words <= 0 {
		return bigz.DefaultMaxWords
	}
	return min(words, bigz.DefaultMaxWords)
}
