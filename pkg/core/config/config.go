// ============================================================================
// Kaleido - Kaleidoscope language front end
// ============================================================================
//
// Package:     config
// Description: Configuration loading from TOML or YAML with defaults and
//              environment overrides
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
	mdwregistry "github.com/msto63/kaleido/foundation/kscope/registry"
)

// Environment variables
const (
	EnvConfig    = "KALEIDO_CONFIG"
	EnvLogLevel  = "KALEIDO_LOG_LEVEL"
	EnvLogFormat = "KALEIDO_LOG_FORMAT"
)

// Supported file formats
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ParserConfig holds front end settings
type ParserConfig struct {
	// Precedence adds binary operators or overrides the built-in table.
	// Keys are single characters.
	Precedence    map[string]int `toml:"precedence" yaml:"precedence"`
	MaxInputBytes int64          `toml:"max_input_bytes" yaml:"max_input_bytes"`
	Timeout       Duration       `toml:"timeout" yaml:"timeout"`
}

// REPLConfig holds interactive mode settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistorySize int    `toml:"history_size" yaml:"history_size"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.Newf("config file not found: %s", path).
				WithCode(mdwerror.CodeMissingConfig).
				WithOperation("config.Load").
				WithDetail("path", path)
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeIO).
			WithOperation("config.Load")
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config "+path)
	}
	return cfg, nil
}

// Parse decodes configuration data in the given format, then applies
// defaults and environment overrides and validates the result
func Parse(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "invalid TOML").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Parse")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "invalid YAML").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Parse")
		}
	default:
		return nil, unsupportedFormat(format)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from KALEIDO_CONFIG or the first default
// location that exists. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./kaleido.toml",
			"./kaleido.yaml",
			"./configs/kaleido.toml",
			filepath.Join(os.Getenv("HOME"), ".config/kaleido/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "kaleido"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Parser
	if c.Parser.Precedence == nil {
		c.Parser.Precedence = map[string]int{}
	}

	// REPL
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "ready> "
	}
	if c.REPL.HistorySize == 0 {
		c.REPL.HistorySize = 500
	}
}

// applyEnv lets environment variables override logging settings
func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.General.LogLevel = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		c.General.LogFormat = format
	}
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", err)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", err)
	}
	if _, err := c.PrecedenceTable(); err != nil {
		return err
	}
	if c.Parser.MaxInputBytes < 0 {
		return invalid("parser.max_input_bytes", mdwerror.New("must not be negative"))
	}
	if c.Parser.Timeout.Duration < 0 {
		return invalid("parser.timeout", mdwerror.New("must not be negative"))
	}
	if c.REPL.HistorySize < 0 {
		return invalid("repl.history_size", mdwerror.New("must not be negative"))
	}
	return nil
}

// PrecedenceTable converts the configured operator table for the registry
func (c *Config) PrecedenceTable() (map[rune]int, error) {
	table := make(map[rune]int, len(c.Parser.Precedence))

	for key, prec := range c.Parser.Precedence {
		if utf8.RuneCountInString(key) != 1 {
			return nil, mdwerror.Newf("operator %q must be a single character", key).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.PrecedenceTable").
				WithDetail("field", "parser.precedence")
		}

		op, _ := utf8.DecodeRuneInString(key)
		if err := mdwregistry.ValidateOperator(op, prec); err != nil {
			return nil, mdwerror.Wrap(err, "parser.precedence").WithOperation("config.PrecedenceTable")
		}
		table[op] = prec
	}

	return table, nil
}

// Write encodes the configuration in the given format
func (c *Config) Write(w io.Writer, format string) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return unsupportedFormat(format)
	}
}

func formatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", mdwerror.Newf("unsupported config file extension: %s", path).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
}

func unsupportedFormat(format string) error {
	return mdwerror.Newf("unsupported config format %q", format).
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("format", format)
}

func invalid(field string, cause error) error {
	return mdwerror.Newf("invalid %s", field).
		WithCode(mdwerror.CodeInvalidConfig).
		WithCause(cause).
		WithOperation("config.Validate").
		WithDetail("field", field)
}
