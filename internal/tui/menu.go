package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one selectable menu entry: a stable ID paired with a title, so
// dispatch never depends on display position.
type Item struct {
	ID    string
	Title string
}

// MenuModel is the Bubbletea state for the numbered step menu. The
// operator types an entry number into the textinput; invalid selections
// warn and re-prompt instead of failing.
type MenuModel struct {
	title   string
	items   []Item
	input   textinput.Model
	warning string
	choice  string
	done    bool
}

// NewMenu constructs the menu model for the given entries.
func NewMenu(title string, items []Item) MenuModel {
	input := textinput.New()
	input.Placeholder = fmt.Sprintf("1-%d", len(items))
	input.CharLimit = 3
	input.Width = 6
	input.Focus()

	return MenuModel{
		title: title,
		items: items,
		input: input,
	}
}

// Init starts the Bubbletea program.
func (m MenuModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key events and selection parsing.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.choice = ""
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			raw := strings.TrimSpace(m.input.Value())
			index, err := strconv.Atoi(raw)
			if err != nil || index < 1 || index > len(m.items) {
				m.warning = fmt.Sprintf("invalid selection %q: enter a number between 1 and %d", raw, len(m.items))
				m.input.SetValue("")
				return m, nil
			}
			m.choice = m.items[index-1].ID
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the numbered menu and the selection field.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var sections []string
	sections = append(sections, titleStyle.Render(m.title))

	var lines []string
	for i, item := range m.items {
		lines = append(lines, fmt.Sprintf(" %s %s", numberStyle.Render(fmt.Sprintf("%2d)", i+1)), item.Title))
	}
	sections = append(sections, strings.Join(lines, "\n"))

	sections = append(sections, "Select an option: "+m.input.View())
	if m.warning != "" {
		sections = append(sections, warnStyle.Render("! "+m.warning))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Choice returns the selected item ID, or "" when the menu was dismissed.
func (m MenuModel) Choice() string {
	return m.choice
}
