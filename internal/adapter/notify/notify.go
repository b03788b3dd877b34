package notify

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// TerminalNotifier renders leveled outcome messages to a writer. This is the
// user-facing sink: one line per notification, fire and forget.
type TerminalNotifier struct {
	out io.Writer
}

// NewTerminal creates a TerminalNotifier writing to out.
func NewTerminal(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

func (n *TerminalNotifier) Info(title, message string) {
	fmt.Fprintf(n.out, "%s %s\n", infoStyle.Render(title+":"), message)
}

func (n *TerminalNotifier) Warn(title, message string) {
	fmt.Fprintf(n.out, "%s %s\n", warnStyle.Render(title+":"), message)
}

func (n *TerminalNotifier) Error(title, message string) {
	fmt.Fprintf(n.out, "%s %s\n", errorStyle.Render(title+":"), message)
}

// SlogNotifier routes notifications to the structured logger, for
// non-interactive callers that only want log output.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlog creates a SlogNotifier.
func NewSlog(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Info(title, message string)  { n.logger.Info(message, "title", title) }
func (n *SlogNotifier) Warn(title, message string)  { n.logger.Warn(message, "title", title) }
func (n *SlogNotifier) Error(title, message string) { n.logger.Error(message, "title", title) }
