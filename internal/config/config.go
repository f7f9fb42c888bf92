package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"mdvalidate/pkg/serrors"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// DecodePolicyAbort stops the whole run on the first file that is not valid UTF-8.
	DecodePolicyAbort = "abort"
	// DecodePolicyRecord reports files that are not valid UTF-8 as issues and keeps going.
	DecodePolicyRecord = "record"

	// FormatText renders the report as plain text lines.
	FormatText = "text"
	// FormatJSON renders the report as a JSON document.
	FormatJSON = "json"
)

// Config represents the application configuration structure.
// It contains settings for the environment, logging, the validator itself,
// report output and metrics export.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"MDVALIDATE_ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel is the minimum level written to stderr
	LogLevel string `env:"MDVALIDATE_LOG_LEVEL" env-default:"warn" yaml:"logLevel"`

	// Validator contains settings for the directory walk and the document checks
	Validator struct {
		// Root is the directory scanned when no root argument is given
		Root string `env:"MDVALIDATE_VALIDATOR_ROOT" env-default:"." yaml:"root"`
		// ExcludeDirs lists directory names that are never descended into
		ExcludeDirs []string `env:"MDVALIDATE_VALIDATOR_EXCLUDE_DIRS" env-default:".git" yaml:"excludeDirs"`
		// Extensions lists the file name suffixes, matched case-insensitively, treated as markdown
		Extensions []string `env:"MDVALIDATE_VALIDATOR_EXTENSIONS" env-default:".md" yaml:"extensions"`
		// DecodePolicy decides what happens to files that are not valid UTF-8: abort or record
		DecodePolicy string `env:"MDVALIDATE_VALIDATOR_DECODE_POLICY" env-default:"abort" yaml:"decodePolicy"`
	} `yaml:"validator"`

	// Output contains report rendering settings
	Output struct {
		// Format is either text or json
		Format string `env:"MDVALIDATE_OUTPUT_FORMAT" env-default:"text" yaml:"format"`
	} `yaml:"output"`

	// Metrics contains metrics export settings
	Metrics struct {
		// File is the path of a Prometheus textfile written after each run; empty disables it
		File string `env:"MDVALIDATE_METRICS_FILE" env-default:"" yaml:"file"`
	} `yaml:"metrics"`
}

// Load receives the path for yaml config file and returns a filled Config struct.
// An empty path reads defaults and MDVALIDATE_ environment variables only; a
// named file must exist.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}
	} else {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return nil, serrors.Wrap(serrors.ErrNotFound, err, "config file %s not found", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	if !slices.Contains([]string{DecodePolicyAbort, DecodePolicyRecord}, c.Validator.DecodePolicy) {
		return serrors.With(serrors.ErrBadRequest, "unknown decode policy %q", c.Validator.DecodePolicy)
	}
	if !slices.Contains([]string{FormatText, FormatJSON}, c.Output.Format) {
		return serrors.With(serrors.ErrBadRequest, "unknown output format %q", c.Output.Format)
	}
	if len(c.Validator.Extensions) == 0 {
		return serrors.With(serrors.ErrBadRequest, "at least one markdown extension is required")
	}

	return nil
}
