package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
)

// errSelectionCancelled is returned when the picker is quit without confirming
var errSelectionCancelled = errors.New("selection cancelled")

// networkItem is a selectable destination network
type networkItem struct {
	name   string
	detail string
}

// networkSelectModel is the bubbletea model of the destination picker
type networkSelectModel struct {
	items     []networkItem
	cursor    int
	selected  []bool
	title     string
	done      bool
	cancelled bool
}

// newNetworkSelectModel starts with every network selected, the usual case
// being a deploy to all deployment networks minus a few
func newNetworkSelectModel(items []networkItem, title string) networkSelectModel {
	selected := make([]bool, len(items))
	for i := range selected {
		selected[i] = true
	}
	return networkSelectModel{items: items, selected: selected, title: title}
}

// Init is the initial command for bubbletea
func (m networkSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses
func (m networkSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		m.selected = append([]bool(nil), m.selected...)
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := !m.allSelected()
		m.selected = make([]bool, len(m.items))
		for i := range m.selected {
			m.selected[i] = all
		}
	case "enter":
		if len(m.chosen()) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the list
func (m networkSelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))
	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}
		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor, checkbox, item.name, color.New(color.FgYellow).Sprint(item.detail)))
	}
	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))
	return b.String()
}

func (m networkSelectModel) allSelected() bool {
	for _, s := range m.selected {
		if !s {
			return false
		}
	}
	return true
}

// chosen returns the selected network names in list order
func (m networkSelectModel) chosen() []string {
	var out []string
	for i, s := range m.selected {
		if s {
			out = append(out, m.items[i].name)
		}
	}
	return out
}

// selectNetworks shows the picker and returns the chosen networks
var selectNetworks = func(items []networkItem, title string) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no networks to select")
	}
	final, err := tea.NewProgram(newNetworkSelectModel(items, title)).Run()
	if err != nil {
		return nil, fmt.Errorf("network selection failed: %w", err)
	}
	m := final.(networkSelectModel)
	if m.cancelled || !m.done {
		return nil, errSelectionCancelled
	}
	return m.chosen(), nil
}
