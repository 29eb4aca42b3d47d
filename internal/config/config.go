// Package config loads the csvmanip defaults from environment variables.
// Command line flags override every value loaded here.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vegasq/csvmanip/output"
	"github.com/vegasq/csvmanip/query"
)

// Config holds the defaults of a run.
type Config struct {
	Logging LoggingConfig
	Parse   ParseConfig
	Output  OutputConfig
	Join    JoinConfig
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: warn)
	Level string `env:"CSVMANIP_LOG_LEVEL" default:"warn"`

	// Format is text or json (default: text)
	Format string `env:"CSVMANIP_LOG_FORMAT" default:"text"`
}

// ParseConfig holds the input conversion settings.
type ParseConfig struct {
	// Numeric is the value type of every cell, int or float (default: int)
	Numeric string `env:"CSVMANIP_NUMERIC" default:"int"`

	// Strict reports unparseable fields instead of reading them as zero
	Strict bool `env:"CSVMANIP_STRICT" default:"false"`

	// SkipErrors skips failing rows instead of stopping the run
	SkipErrors bool `env:"CSVMANIP_SKIP_ERRORS" default:"false"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format      output.Format      `env:"CSVMANIP_OUTPUT_FORMAT" default:"csv"`
	Compression output.Compression `env:"CSVMANIP_OUTPUT_COMPRESSION" default:"none"`

	// SQLiteTable is the table written by the sqlite format (default: result)
	SQLiteTable string `env:"CSVMANIP_SQLITE_TABLE" default:"result"`
}

// JoinConfig holds join settings.
type JoinConfig struct {
	Strategy query.JoinStrategy `env:"CSVMANIP_JOIN_STRATEGY" default:"rescan"`

	// Filler is the value of right columns in unmatched outer join rows
	Filler string `env:"CSVMANIP_JOIN_FILLER" default:"0"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("CSVMANIP_LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("CSVMANIP_LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	validNumeric := map[string]bool{"int": true, "float": true}
	if !validNumeric[strings.ToLower(c.Parse.Numeric)] {
		errs = append(errs, fmt.Sprintf("CSVMANIP_NUMERIC (%q) must be one of: int, float", c.Parse.Numeric))
	}

	format, codec := c.Output.Format, c.Output.Compression
	if _, err := output.ParseFormat(string(format)); err != nil {
		errs = append(errs, "CSVMANIP_OUTPUT_FORMAT: "+err.Error())
	}
	if _, err := output.ParseCompression(string(codec)); err != nil {
		errs = append(errs, "CSVMANIP_OUTPUT_COMPRESSION: "+err.Error())
	}
	if format == output.FormatSQLite && codec != output.CompressionNone && codec != "" {
		errs = append(errs, "CSVMANIP_OUTPUT_COMPRESSION must be none for the sqlite format")
	}
	if format == output.FormatSQLite && c.Output.SQLiteTable == "" {
		errs = append(errs, "CSVMANIP_SQLITE_TABLE must not be empty")
	}

	if _, err := query.ParseJoinStrategy(c.Join.Strategy.String()); err != nil {
		errs = append(errs, "CSVMANIP_JOIN_STRATEGY: "+err.Error())
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(c.Join.Filler), 64); err != nil {
		errs = append(errs, fmt.Sprintf("CSVMANIP_JOIN_FILLER (%q) must be a number", c.Join.Filler))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ErrorPolicy maps SkipErrors to a query.ErrorPolicy.
func (c *Config) ErrorPolicy() query.ErrorPolicy {
	if c.Parse.SkipErrors {
		return query.PolicySkipRow
	}
	return query.PolicyAbort
}
