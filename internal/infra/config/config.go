package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TemplatesConfig holds the five required command template fields. The switch
// template takes two %s placeholders (tenant first, inner expression second);
// the others take exactly one (the feature identifier).
type TemplatesConfig struct {
	TenantModel  string `yaml:"tenant_model"`
	TenantSwitch string `yaml:"tenant_switch"`
	Enable       string `yaml:"enable"`
	Disable      string `yaml:"disable"`
	Check        string `yaml:"check"`
}

// RunnerConfig holds how the application's command runner is invoked.
type RunnerConfig struct {
	Executable        string `yaml:"executable"`
	EnvironmentPrefix string `yaml:"environment_prefix"`
	Shell             string `yaml:"shell"`
}

// LoggerConfig holds structured logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	Output string `yaml:"output"` // stdout, stderr, or a file path
}

// TracerConfig holds OpenTelemetry tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"` // stdout, noop
}

// Config is the top-level application configuration. It is created once at
// startup and read-only afterwards, so concurrent flows share it without
// locking.
type Config struct {
	Templates TemplatesConfig `yaml:"templates"`
	Runner    RunnerConfig    `yaml:"runner"`
	Logger    LoggerConfig    `yaml:"logger"`
	Tracer    TracerConfig    `yaml:"tracer"`
}

// Defaults returns a Config with every optional field populated. The template
// fields stay empty: they are required and have no sensible defaults.
func Defaults() *Config {
	return &Config{
		Runner: RunnerConfig{
			Executable:        "bin/rails",
			EnvironmentPrefix: "RAILS_ENV=development",
			Shell:             "/bin/bash",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
	}
}

// Load reads and validates the configuration at path. Defaults are applied
// first and overridden by whatever the file sets. A missing or invalid
// required field fails here, once, rather than on first use.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
