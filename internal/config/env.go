package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns $BIGCALC_<key>, or def when it is unset or empty.
func getEnvString(key, def string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return def
}

// isFlagSet reports whether the flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	return isFlagSetAny(fs, name)
}

// isFlagSetAny reports whether any of the aliases was given.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		for _, n := range names {
			set = set || f.Name == n
		}
	})
	return set
}

// envVar binds $BIGCALC_<key> to a configuration field. It is ignored when
// one of flags was given explicitly.
type envVar struct {
	key   string
	flags []string
	apply func(c *AppConfig, raw string) error
}

func bind[T any](key string, parse func(string) (T, error), set func(*AppConfig, T), flags ...string) envVar {
	return envVar{key: key, flags: flags, apply: func(c *AppConfig, raw string) error {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		set(c, v)
		return nil
	}}
}

func text(s string) (string, error) { return s, nil }

func boolean(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case and returns
// def for anything else.
func parseBoolEnv(s string, def bool) bool {
	if v, err := boolean(s); err == nil {
		return v
	}
	return def
}

var envVars = []envVar{
	bind("OP", text, func(c *AppConfig, v string) {
		if c.Op == "" {
			c.Op = v
		}
	}, "op"),
	bind("ENGINE", text, func(c *AppConfig, v string) { c.Engine = v }, "engine"),
	bind("BASE", strconv.Atoi, func(c *AppConfig, v int) { c.InputBase = v }, "base"),
	bind("OUT_BASE", strconv.Atoi, func(c *AppConfig, v int) { c.OutputBase = v }, "out-base"),
	bind("FORCE_SIGN", boolean, func(c *AppConfig, v bool) { c.ForceSign = v }, "force-sign"),
	bind("TIMEOUT", time.ParseDuration, func(c *AppConfig, v time.Duration) { c.Timeout = v }, "timeout"),
	bind("MAX_WORDS", strconv.Atoi, func(c *AppConfig, v int) { c.MaxWords = v }, "max-words"),
	bind("MAX_OPERAND_DIGITS", strconv.Atoi, func(c *AppConfig, v int) { c.MaxOperandDigits = v }, "max-operand-digits"),
	bind("VERBOSE", boolean, func(c *AppConfig, v bool) { c.Verbose = v }, "v", "verbose"),
	bind("DETAILS", boolean, func(c *AppConfig, v bool) { c.Details = v }, "d", "details"),
	bind("QUIET", boolean, func(c *AppConfig, v bool) { c.Quiet = v }, "q", "quiet"),
	bind("NO_COLOR", boolean, func(c *AppConfig, v bool) { c.NoColor = v }, "no-color"),
	bind("OUTPUT", text, func(c *AppConfig, v string) { c.OutputFile = v }, "o", "output"),
	bind("PORT", text, func(c *AppConfig, v string) { c.Port = v }, "port"),
	bind("LOG_LEVEL", text, func(c *AppConfig, v string) { c.LogLevel = strings.ToLower(v) }, "log-level"),
}

// applyEnvOverrides copies the BIGCALC_* variables into config for every
// setting not given as a flag. Values that do not parse are left out and
// returned as warnings. BIGCALC_CONFIG is read separately, before the file
// is loaded.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) []string {
	var warnings []string
	for _, v := range envVars {
		raw := os.Getenv(EnvPrefix + v.key)
		if raw == "" || isFlagSetAny(fs, v.flags...) {
			continue
		}
		if err := v.apply(config, raw); err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring %s%s: %v", EnvPrefix, v.key, err))
		}
	}
	return warnings
}
