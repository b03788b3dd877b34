package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os/exec"
	"time"

	"github.com/oklog/ulid/v2"

	"flipctl/internal/domain"
	"flipctl/internal/infra/tracer"
)

// ShellRunner implements domain.Runner by spawning the configured shell with
// `-lc "cd '<cwd>' && <command>"`. Each Run is independent: output is buffered
// per stream while the process lives and delivered once on termination.
// There is no timeout; a hung runner hangs its flow.
type ShellRunner struct {
	shell  string
	bus    domain.EventBus
	logger *slog.Logger
}

// New creates a ShellRunner using the given shell path (e.g. /bin/bash).
func New(shell string, bus domain.EventBus, logger *slog.Logger) *ShellRunner {
	return &ShellRunner{shell: shell, bus: bus, logger: logger}
}

// Run spawns the command and returns a one-shot channel that delivers exactly
// one CommandResult when the process terminates, then closes. A non-zero exit
// is data, not an error. When the process cannot start at all, the result
// carries domain.SpawnExitCode and the spawn error text in Stderr.
func (r *ShellRunner) Run(ctx context.Context, cwd, fullCommand string) <-chan domain.CommandResult {
	ch := make(chan domain.CommandResult, 1)
	runID := newRunID()

	_, span := tracer.StartSpan(ctx, "runner.run")
	span.SetAttributes(tracer.StringAttr("runner.id", runID))

	cmd := exec.Command(r.shell, "-lc", fmt.Sprintf("cd '%s' && %s", cwd, fullCommand))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		r.logger.Error("runner spawn failed", "run_id", runID, "error", err)
		tracer.RecordError(span, err)
		span.End()
		ch <- domain.CommandResult{ExitCode: domain.SpawnExitCode, Stderr: err.Error()}
		close(ch)
		return ch
	}

	r.publish(ctx, domain.EventRunnerStarted, map[string]any{"run_id": runID})
	r.logger.Debug("runner started", "run_id", runID, "shell", r.shell)

	go func() {
		err := cmd.Wait()

		code := 0
		captured := stderr.String()
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			} else {
				// Wait itself failed; treat like a spawn-level fault.
				code = domain.SpawnExitCode
				captured = err.Error()
			}
		}

		result := domain.CommandResult{
			ExitCode: code,
			Stdout:   stdout.String(),
			Stderr:   captured,
		}
		ch <- result
		close(ch)

		span.SetAttributes(tracer.IntAttr("runner.exit_code", code))
		tracer.SetOK(span)
		span.End()

		r.publish(context.Background(), domain.EventRunnerFinished,
			map[string]any{"run_id": runID, "exit_code": code})
		r.logger.Debug("runner finished", "run_id", runID, "exit_code", code)
	}()

	return ch
}

func (r *ShellRunner) publish(ctx context.Context, eventType domain.EventType, payload any) {
	if r.bus == nil {
		return
	}
	var raw json.RawMessage
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			raw = data
		}
	}
	r.bus.Publish(ctx, domain.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   raw,
	})
}

func newRunID() string {
	t := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
