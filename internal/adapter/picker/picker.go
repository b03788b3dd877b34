package picker

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flipctl/internal/domain"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))

// tenantItem adapts a tenant name to the bubbles list item interface.
type tenantItem string

func (i tenantItem) Title() string       { return string(i) }
func (i tenantItem) Description() string { return "" }
func (i tenantItem) FilterValue() string { return string(i) }

// model is the bubbletea state for the tenant picker.
type model struct {
	list      list.Model
	choice    string
	cancelled bool
}

func newModel(prompt string, tenants []string) model {
	items := make([]list.Item, len(tenants))
	for i, t := range tenants {
		items[i] = tenantItem(t)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, 48, len(tenants)+8)
	l.Title = prompt
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)

	return model{list: l}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys while the user is typing a filter.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(tenantItem); ok {
				m.choice = string(item)
			}
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.list.View() }

// TUISelector prompts for a tenant with an interactive terminal list.
type TUISelector struct{}

// Select runs the picker and returns the chosen tenant name, or
// domain.ErrCancelled when the user backs out.
func (TUISelector) Select(ctx context.Context, prompt string, tenants []string) (string, error) {
	p := tea.NewProgram(newModel(prompt, tenants), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("tenant picker: %w", err)
	}

	m := final.(model)
	if m.cancelled || m.choice == "" {
		return "", domain.ErrCancelled
	}
	return m.choice, nil
}

// StaticSelector bypasses the prompt with a predetermined tenant, for
// non-interactive invocations (-tenant flag). The tenant must still be one of
// the fetched names.
type StaticSelector struct {
	Tenant string
}

func (s StaticSelector) Select(_ context.Context, _ string, tenants []string) (string, error) {
	for _, t := range tenants {
		if t == s.Tenant {
			return t, nil
		}
	}
	return "", fmt.Errorf("tenant %q is not in the fetched list", s.Tenant)
}
