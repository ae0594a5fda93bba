package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds run options. Zero value runs silently with no step limit.
type Config struct {
	Verbose  bool `yaml:"verbose"`   // debug logging
	NoColor  bool `yaml:"no_color"`  // disable colored output
	Listing  bool `yaml:"listing"`   // print the resolved program before running
	Trace    bool `yaml:"trace"`     // log every executed instruction
	MaxSteps int  `yaml:"max_steps"` // 0 = unlimited
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	return "config validation failed: " + strings.Join(e.Issues, "; ")
}

// Load reads a YAML config file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a YAML document. Unknown keys are rejected and an empty
// document yields the zero Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	var issues []string
	if c.MaxSteps < 0 {
		issues = append(issues, fmt.Sprintf("max_steps must be >= 0, got %d", c.MaxSteps))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
