package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	prompt   string
	def      bool
	answer   bool
	done     bool
	canceled bool
}

func newConfirmModel(prompt string, def bool) *confirmModel {
	return &confirmModel{prompt: prompt, def: def}
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(km.String()) {
	case "y":
		m.answer, m.done = true, true
	case "n":
		m.answer, m.done = false, true
	case "enter":
		m.answer, m.done = m.def, true
	case "esc", "ctrl+c":
		m.canceled = true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m *confirmModel) View() string {
	if m.done {
		if m.answer {
			return answered(m.prompt, "Yes")
		}
		return answered(m.prompt, "No")
	}
	if m.canceled {
		return ""
	}
	hint := "(y/N)"
	if m.def {
		hint = "(Y/n)"
	}
	return promptStyle.Render("? "+m.prompt) + " " + mutedStyle.Render(hint) + "\n"
}
