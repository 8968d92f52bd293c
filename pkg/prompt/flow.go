package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/flow"
)

type flowModel struct {
	prompt  string
	options []flow.Flow
	cursor  int

	keys listKeys
	help help.Model

	done     bool
	canceled bool
}

func newFlowModel(prompt string, options []flow.Flow) *flowModel {
	return &flowModel{
		prompt:  prompt,
		options: options,
		keys:    newListKeys(),
		help:    help.New(),
	}
}

func (m *flowModel) Init() tea.Cmd { return nil }

func (m *flowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Cancel):
		m.canceled = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Select):
		m.done = true
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case key.Matches(km, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	default:
		// Digits jump straight to the level with that code.
		if f, err := flow.Parse(km.String()); err == nil {
			for i, o := range m.options {
				if o == f {
					m.cursor = i
				}
			}
		}
	}
	return m, nil
}

func (m *flowModel) View() string {
	if m.done {
		return answered(m.prompt, m.options[m.cursor].String())
	}
	if m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render("? "+m.prompt) + "\n")
	for i, f := range m.options {
		marker := "  "
		if i == m.cursor {
			marker = answerStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %d %s\n", marker, calendar.Swatch(f), f.Code(), f)
	}
	b.WriteString(m.help.View(m.keys) + "\n")
	return b.String()
}
