package domain

import "context"

// TenantSelector prompts the user to pick one tenant from the fetched list.
// Implementations return ErrCancelled when the user abandons the prompt;
// that is a neutral outcome, not a failure.
type TenantSelector interface {
	Select(ctx context.Context, prompt string, tenants []string) (string, error)
}

// Notifier is the fire-and-forget sink for user-facing flow outcomes.
type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
	Error(title, message string)
}
