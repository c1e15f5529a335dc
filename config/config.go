// Package config holds translator options loadable from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the translator configuration.
type Config struct {
	// Header is the mandatory first significant line of a program.
	Header string `yaml:"header"`
	// Language is written to the language attribute of the root element.
	Language string `yaml:"language"`
	// Indent is the pretty-printing unit of the output document.
	Indent string `yaml:"indent"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the IPPcode24 settings.
func Default() *Config {
	return &Config{
		Header:   ".IPPcode24",
		Language: "IPPcode24",
		Indent:   "    ",
		LogLevel: "warn",
	}
}

// Load reads a YAML file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects settings the translator cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Header) == "" || strings.ContainsAny(c.Header, " \t#") {
		return fmt.Errorf("invalid header %q", c.Header)
	}
	if strings.TrimSpace(c.Language) == "" {
		return errors.New("language must not be empty")
	}
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("indent must be whitespace, got %q", c.Indent)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
