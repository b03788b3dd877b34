package usecase

import (
	"fmt"
	"strings"

	"flipctl/internal/domain"
	"flipctl/internal/infra/config"
)

// Quote escapes s for interpolation inside a single-quoted string literal that
// itself sits inside the double-quoted -c argument handed to the shell. Only
// single quotes need escaping in that nesting; the surrounding template
// strings come from trusted configuration, not user input.
func Quote(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// Builder turns configured templates plus a tenant and feature identifier into
// one executable command line for the application's runner.
type Builder struct {
	cfg *config.Config
}

// NewBuilder creates a Builder over a validated configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg}
}

// ActionCommand builds the full command line for a feature-flag action:
// the quoted identifier fills the action template, the result and the quoted
// tenant fill the tenant-switch template (tenant first), and the expression is
// wrapped for the runner. The output is a single line suitable as an argument
// to `shell -lc`.
func (b *Builder) ActionCommand(action domain.Action, tenant string, id domain.Identifier) string {
	inner := fmt.Sprintf(b.actionTemplate(action), Quote(id.String()))
	expr := fmt.Sprintf(b.cfg.Templates.TenantSwitch, Quote(tenant), inner)
	return b.wrap(expr)
}

// TenantListCommand builds the command that prints the tenant names as a JSON
// array on its own stdout line.
func (b *Builder) TenantListCommand() string {
	expr := fmt.Sprintf("puts %s.pluck(:name).to_json", b.cfg.Templates.TenantModel)
	return b.wrap(expr)
}

func (b *Builder) actionTemplate(action domain.Action) string {
	switch action {
	case domain.ActionEnable:
		return b.cfg.Templates.Enable
	case domain.ActionDisable:
		return b.cfg.Templates.Disable
	default:
		return b.cfg.Templates.Check
	}
}

// wrap produces `[env_prefix ]<executable> runner "<expr>"`. The environment
// prefix contributes its trailing space only when non-empty.
func (b *Builder) wrap(expr string) string {
	prefix := b.cfg.Runner.EnvironmentPrefix
	if prefix != "" {
		prefix += " "
	}
	return fmt.Sprintf("%s%s runner \"%s\"", prefix, b.cfg.Runner.Executable, expr)
}
