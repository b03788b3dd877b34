package domain

import "context"

// Action is a user-triggered feature-flag operation.
type Action string

const (
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
	ActionCheck   Action = "check"
)

// SpawnExitCode is the sentinel exit code delivered when the runner process
// could not be started at all, as opposed to starting and exiting non-zero.
const SpawnExitCode = -1

// CommandResult is the captured outcome of one runner execution. It is
// produced once per process and consumed exactly once by the flow that
// requested it. A non-zero ExitCode is data at this layer, not an error.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Spawned reports whether the process actually started.
func (r CommandResult) Spawned() bool { return r.ExitCode != SpawnExitCode }

// Output returns the message to surface for a failed command: stderr when
// present, stdout otherwise.
func (r CommandResult) Output() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// Runner executes a fully built command string asynchronously. The returned
// channel delivers exactly one CommandResult when the process terminates and
// is then closed (one-shot, single-consumer). Spawn failure is delivered on
// the same channel with SpawnExitCode and the error text in Stderr.
type Runner interface {
	Run(ctx context.Context, cwd, fullCommand string) <-chan CommandResult
}
