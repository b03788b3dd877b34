package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := Defaults()
	cfg.Templates = TemplatesConfig{
		TenantModel:  "Account",
		TenantSwitch: "Apartment::Tenant.switch('%s') { %s }",
		Enable:       "Flipper.enable(:%s)",
		Disable:      "Flipper.disable(:%s)",
		Check:        "puts Flipper.enabled?(:%s)",
	}
	return cfg
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateNoOpSwitchWrapper(t *testing.T) {
	// "%s %s" is the minimal two-placeholder wrapper; single "%s" is not enough.
	cfg := validConfig()
	cfg.Templates.TenantSwitch = "%s { %s }"
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	fields := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tenant_model", func(c *Config) { c.Templates.TenantModel = "" }},
		{"tenant_switch", func(c *Config) { c.Templates.TenantSwitch = "" }},
		{"enable", func(c *Config) { c.Templates.Enable = "" }},
		{"disable", func(c *Config) { c.Templates.Disable = "" }},
		{"check", func(c *Config) { c.Templates.Check = "" }},
		{"runner.executable", func(c *Config) { c.Runner.Executable = "" }},
		{"runner.shell", func(c *Config) { c.Runner.Shell = "" }},
	}
	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			cfg := validConfig()
			f.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatalf("expected validation error for empty %s", f.name)
			}
			if !strings.Contains(err.Error(), f.name) {
				t.Errorf("error %q does not name field %s", err, f.name)
			}
		})
	}
}

func TestValidatePlaceholderCounts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"switch with one placeholder", func(c *Config) { c.Templates.TenantSwitch = "%s" }},
		{"switch with three placeholders", func(c *Config) { c.Templates.TenantSwitch = "%s %s %s" }},
		{"enable with none", func(c *Config) { c.Templates.Enable = "Flipper.enable(:dark_mode)" }},
		{"enable with two", func(c *Config) { c.Templates.Enable = "Flipper.enable(:%s, %s)" }},
		{"wrong verb", func(c *Config) { c.Templates.Check = "Flipper.enabled?(:%d)" }},
		{"trailing percent", func(c *Config) { c.Templates.Check = "puts 100%" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatal("expected placeholder validation failure")
			}
		})
	}
}

func TestValidateEscapedPercent(t *testing.T) {
	cfg := validConfig()
	cfg.Templates.Check = "puts Flipper.enabled?(:%s) # 100%% rollout"
	if err := Validate(cfg); err != nil {
		t.Fatalf("%%%% should be a literal percent, got: %v", err)
	}
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	cfg := &Config{}
	err := Validate(cfg)
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Errors) < 5 {
		t.Errorf("expected every missing field reported, got %d: %v", len(ve.Errors), ve.Errors)
	}
}
