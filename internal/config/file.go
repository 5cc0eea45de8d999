// This file loads the optional TOML configuration file.

package config

import (
	"flag"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// FileConfig mirrors the subset of AppConfig that may be set from a TOML
// file. Pointer fields distinguish an absent key from a zero value.
//
// Example:
//
//	engine = "bigz"
//	timeout = "30s"
//	max_words = 65536
//
//	[output]
//	base = 16
//	force_sign = true
//
//	[server]
//	port = "9090"
//	max_operand_digits = 20000
type FileConfig struct {
	Engine    *string   `toml:"engine"`
	Timeout   *Duration `toml:"timeout"`
	MaxWords  *int      `toml:"max_words"`
	InputBase *int      `toml:"base"`
	LogLevel  *string   `toml:"log_level"`
	NoColor   *bool     `toml:"no_color"`

	Output struct {
		Base      *int  `toml:"base"`
		ForceSign *bool `toml:"force_sign"`
		Verbose   *bool `toml:"verbose"`
		Details   *bool `toml:"details"`
	} `toml:"output"`

	Server struct {
		Port             *string `toml:"port"`
		MaxOperandDigits *int    `toml:"max_operand_digits"`
	} `toml:"server"`
}

// Duration is a time.Duration decoded from a TOML string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// LoadFile decodes the TOML file at path. Unknown keys are rejected so that
// typos do not go unnoticed.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("reading config file %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, apperrors.NewConfigError("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}
	return fc, nil
}

// apply copies the values present in the file into cfg, skipping every
// setting whose flag was given on the command line.
func (fc FileConfig) apply(cfg *AppConfig, fs *flag.FlagSet) {
	setValue(cfg, fs, fc.Engine, func(c *AppConfig) *string { return &c.Engine }, "engine")
	setValue(cfg, fs, fc.LogLevel, func(c *AppConfig) *string { return &c.LogLevel }, "log-level")
	setValue(cfg, fs, fc.Server.Port, func(c *AppConfig) *string { return &c.Port }, "port")
	setValue(cfg, fs, fc.MaxWords, func(c *AppConfig) *int { return &c.MaxWords }, "max-words")
	setValue(cfg, fs, fc.InputBase, func(c *AppConfig) *int { return &c.InputBase }, "base")
	setValue(cfg, fs, fc.Output.Base, func(c *AppConfig) *int { return &c.OutputBase }, "out-base")
	setValue(cfg, fs, fc.Server.MaxOperandDigits, func(c *AppConfig) *int { return &c.MaxOperandDigits }, "max-operand-digits")
	setValue(cfg, fs, fc.NoColor, func(c *AppConfig) *bool { return &c.NoColor }, "no-color")
	setValue(cfg, fs, fc.Output.ForceSign, func(c *AppConfig) *bool { return &c.ForceSign }, "force-sign")
	setValue(cfg, fs, fc.Output.Verbose, func(c *AppConfig) *bool { return &c.Verbose }, "v", "verbose")
	setValue(cfg, fs, fc.Output.Details, func(c *AppConfig) *bool { return &c.Details }, "d", "details")
	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		cfg.Timeout = fc.Timeout.Duration
	}
}

func setValue[T any](cfg *AppConfig, fs *flag.FlagSet, v *T, field func(*AppConfig) *T, flags ...string) {
	if v == nil || isFlagSetAny(fs, flags...) {
		return
	}
	*field(cfg) = *v
}
