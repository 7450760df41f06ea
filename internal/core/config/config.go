// Package config provides configuration management for the hxwire CLI.
package config

import (
	"fmt"
	"strings"
)

// Document formats accepted for bundle input and output.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Log formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds the CLI settings.
type Config struct {
	LogLevel     string
	LogFormat    string
	OutputFormat string
	InputFormat  string
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    LogFormatText,
		OutputFormat: FormatJSON,
		InputFormat:  FormatJSON,
	}
}

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Validate checks every setting against its allowed values.
func (c *Config) Validate() error {
	if !oneOf(c.LogLevel, logLevels...) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.LogLevel)
	}
	if !oneOf(c.LogFormat, LogFormatJSON, LogFormatText) {
		return fmt.Errorf("log.format must be json or text, got %q", c.LogFormat)
	}
	if !oneOf(c.OutputFormat, FormatJSON, FormatYAML) {
		return fmt.Errorf("output.format must be json or yaml, got %q", c.OutputFormat)
	}
	if !oneOf(c.InputFormat, FormatJSON, FormatYAML) {
		return fmt.Errorf("input.format must be json or yaml, got %q", c.InputFormat)
	}
	return nil
}

func oneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
