package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/trace"

	"flipctl/internal/domain"
	"flipctl/internal/infra/config"
	"flipctl/internal/infra/tracer"
)

// Title is the fixed notification title for every flow outcome.
const Title = "flipctl"

// State names the orchestration step a flow is in.
type State string

const (
	StateIdle           State = "idle"
	StateValidating     State = "validating"
	StateFetching       State = "fetching_tenants"
	StateAwaitingChoice State = "awaiting_tenant_choice"
	StateExecuting      State = "executing_action"
	StateReporting      State = "reporting"
	StateDone           State = "done"
	StateErrored        State = "errored"
)

// Outcome is the terminal result of a flow.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomeCancelled Outcome = "cancelled"
)

// Flow runs one feature-flag action end to end: validate the selection, fetch
// the tenant list, let the user pick a tenant, execute the action command, and
// report. A Flow is created fresh per invocation and shares no mutable state
// with other flows; the Config it reads is immutable after load, so
// overlapping flows need no coordination. No step retries on failure, and
// every failure surfaces as a single notification — nothing escapes Run as an
// unhandled fault.
type Flow struct {
	id       string
	cfg      *config.Config
	builder  *Builder
	runner   domain.Runner
	selector domain.TenantSelector
	notifier domain.Notifier
	bus      domain.EventBus
	logger   *slog.Logger
	cwd      string
	state    State
}

// NewFlow creates a flow for a single invocation. cwd is the directory the
// runner commands execute in, normally the caller's working directory.
func NewFlow(
	cfg *config.Config,
	runner domain.Runner,
	selector domain.TenantSelector,
	notifier domain.Notifier,
	bus domain.EventBus,
	logger *slog.Logger,
	cwd string,
) *Flow {
	id := newFlowID()
	return &Flow{
		id:       id,
		cfg:      cfg,
		builder:  NewBuilder(cfg),
		runner:   runner,
		selector: selector,
		notifier: notifier,
		bus:      bus,
		logger:   logger.With("flow_id", id),
		cwd:      cwd,
		state:    StateIdle,
	}
}

// ID returns the flow's ULID.
func (f *Flow) ID() string { return f.id }

// State returns the step the flow last entered. Flows run in a single
// goroutine; State is for inspection after Run returns.
func (f *Flow) State() State { return f.state }

// Run executes the action for the raw selection text and returns the terminal
// outcome.
func (f *Flow) Run(ctx context.Context, action domain.Action, selection string) Outcome {
	ctx, span := tracer.StartSpan(ctx, "flow."+string(action))
	defer span.End()
	span.SetAttributes(tracer.StringAttr("flow.id", f.id))

	f.publish(ctx, domain.EventFlowStarted, map[string]string{"action": string(action)})

	// Validating
	f.state = StateValidating
	if err := config.Validate(f.cfg); err != nil {
		return f.fail(ctx, span, domain.NewDomainError("Flow.Validate", domain.ErrUnconfigured, err.Error()))
	}
	identifier, err := domain.NormalizeIdentifier(selection)
	if err != nil {
		return f.fail(ctx, span, err)
	}
	span.SetAttributes(tracer.StringAttr("flow.feature", identifier.String()))

	// FetchingTenants
	f.state = StateFetching
	tenants, err := f.fetchTenants(ctx)
	if err != nil {
		return f.fail(ctx, span, err)
	}
	f.publish(ctx, domain.EventFlowTenantsFetched, map[string]int{"count": len(tenants)})

	// AwaitingTenantChoice
	f.state = StateAwaitingChoice
	prompt := fmt.Sprintf("Select tenant to %s %q", action, identifier)
	tenant, err := f.selector.Select(ctx, prompt, tenants)
	if errors.Is(err, domain.ErrCancelled) {
		f.state = StateDone
		f.publish(ctx, domain.EventFlowCancelled, nil)
		f.notifier.Warn(Title, "Cancelled")
		tracer.SetOK(span)
		return OutcomeCancelled
	}
	if err != nil {
		return f.fail(ctx, span, domain.WrapOp("Flow.SelectTenant", err))
	}
	span.SetAttributes(tracer.StringAttr("flow.tenant", tenant))

	// ExecutingAction
	f.state = StateExecuting
	command := f.builder.ActionCommand(action, tenant, identifier)
	f.logger.Debug("executing action command", "action", string(action), "tenant", tenant)
	res := <-f.runner.Run(ctx, f.cwd, command)
	f.publish(ctx, domain.EventFlowCommandRun, map[string]any{
		"action":    string(action),
		"tenant":    tenant,
		"exit_code": res.ExitCode,
	})
	if !res.Spawned() {
		return f.fail(ctx, span, domain.NewDomainError("Flow.Execute", domain.ErrSpawnFailed, res.Stderr))
	}

	// Reporting
	f.state = StateReporting
	return f.report(ctx, span, action, identifier, tenant, res)
}

// fetchTenants runs the tenant-list command and extracts the names.
func (f *Flow) fetchTenants(ctx context.Context) ([]string, error) {
	return ListTenants(ctx, f.cfg, f.runner, f.cwd)
}

// ListTenants runs the tenant-list command through the runner and returns the
// parsed tenant names. Exposed for callers that want the list itself rather
// than a full flow.
func ListTenants(ctx context.Context, cfg *config.Config, r domain.Runner, cwd string) ([]string, error) {
	res := <-r.Run(ctx, cwd, NewBuilder(cfg).TenantListCommand())
	if !res.Spawned() {
		return nil, domain.NewDomainError("Flow.FetchTenants", domain.ErrSpawnFailed, res.Stderr)
	}
	if res.ExitCode != 0 {
		return nil, domain.NewDomainError("Flow.FetchTenants", domain.ErrProcessFailed, res.Output())
	}
	return ExtractTenantList(res.Stdout)
}

// report interprets the action command's result. For enable/disable exit 0 is
// success; for check exit 0 triggers the boolean status extraction. Non-zero
// exits surface the captured stderr, falling back to stdout.
func (f *Flow) report(ctx context.Context, span trace.Span, action domain.Action, id domain.Identifier, tenant string, res domain.CommandResult) Outcome {
	if res.ExitCode != 0 {
		return f.fail(ctx, span, domain.NewDomainError("Flow.Report", domain.ErrProcessFailed, res.Output()))
	}

	var message string
	switch action {
	case domain.ActionCheck:
		status := "disabled"
		if ExtractBooleanStatus(res.Stdout) {
			status = "enabled"
		}
		message = fmt.Sprintf("Feature %q is %s for tenant %q", id, status, tenant)
	case domain.ActionDisable:
		message = fmt.Sprintf("Disabled %q for tenant %q", id, tenant)
	default:
		message = fmt.Sprintf("Enabled %q for tenant %q", id, tenant)
	}

	f.state = StateDone
	f.publish(ctx, domain.EventFlowCompleted, map[string]string{"message": message})
	f.notifier.Info(Title, message)
	f.logger.Info("flow completed", "action", string(action), "feature", id.String(), "tenant", tenant)
	tracer.SetOK(span)
	return OutcomeSuccess
}

func (f *Flow) fail(ctx context.Context, span trace.Span, err error) Outcome {
	f.state = StateErrored
	code := domain.ErrorCodeOf(err)
	tracer.RecordError(span, err)
	f.logger.Error("flow failed", "error", err, "code", string(code))
	f.publish(ctx, domain.EventFlowFailed, map[string]string{
		"error": err.Error(),
		"code":  string(code),
	})
	f.notifier.Error(Title, err.Error())
	return OutcomeFailure
}

func (f *Flow) publish(ctx context.Context, eventType domain.EventType, payload any) {
	if f.bus == nil {
		return
	}
	var raw json.RawMessage
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			raw = data
		}
	}
	f.bus.Publish(ctx, domain.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		FlowID:    f.id,
		Payload:   raw,
	})
}

func newFlowID() string {
	t := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
