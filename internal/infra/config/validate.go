package config

import (
	"fmt"
	"strings"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateTemplates(cfg, ve)
	validateRunner(cfg, ve)
	validateLogger(cfg, ve)
	validateTracer(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateTemplates(cfg *Config, ve *ValidationError) {
	t := cfg.Templates
	if t.TenantModel == "" {
		ve.Add("templates.tenant_model must not be empty")
	}
	checkTemplate(ve, "templates.tenant_switch", t.TenantSwitch, 2)
	checkTemplate(ve, "templates.enable", t.Enable, 1)
	checkTemplate(ve, "templates.disable", t.Disable, 1)
	checkTemplate(ve, "templates.check", t.Check, 1)
}

// checkTemplate validates a format-pattern field: non-empty and holding
// exactly want %s placeholders. A wrong count would otherwise surface only as
// a silently malformed command at execution time.
func checkTemplate(ve *ValidationError, field, tmpl string, want int) {
	if tmpl == "" {
		ve.Add("%s must not be empty", field)
		return
	}
	n, err := countPlaceholders(tmpl)
	if err != nil {
		ve.Add("%s: %v", field, err)
		return
	}
	if n != want {
		ve.Add("%s must contain exactly %d %%s placeholder(s), found %d", field, want, n)
	}
}

// countPlaceholders counts %s verbs in tmpl. %% escapes a literal percent;
// any other verb is rejected.
func countPlaceholders(tmpl string) (int, error) {
	n := 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '%' {
			continue
		}
		if i+1 >= len(tmpl) {
			return 0, fmt.Errorf("trailing %% in template")
		}
		switch tmpl[i+1] {
		case 's':
			n++
		case '%':
			// literal percent
		default:
			return 0, fmt.Errorf("unsupported placeholder %%%c", tmpl[i+1])
		}
		i++
	}
	return n, nil
}

func validateRunner(cfg *Config, ve *ValidationError) {
	if cfg.Runner.Executable == "" {
		ve.Add("runner.executable must not be empty")
	}
	if cfg.Runner.Shell == "" {
		ve.Add("runner.shell must not be empty")
	}
	// environment_prefix may legitimately be empty
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

func validateLogger(cfg *Config, ve *ValidationError) {
	if cfg.Logger.Level != "" && !validLogLevels[strings.ToLower(cfg.Logger.Level)] {
		ve.Add("logger.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(cfg.Logger.Format) {
	case "", "text", "json":
	default:
		ve.Add("logger.format must be text or json")
	}
}

func validateTracer(cfg *Config, ve *ValidationError) {
	switch cfg.Tracer.Exporter {
	case "", "stdout", "noop":
	default:
		ve.Add("tracer.exporter must be stdout or noop")
	}
}
