// Package browse is a read-only table view of recorded expenses.
package browse

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rshep3087/spendlog/ledger"
)

// Colors are the theme colors the view uses.
type Colors struct {
	Primary string
	Muted   string
	Warning string
}

// FormatFunc renders an amount for display.
type FormatFunc func(amount float64) string

// KnownFunc reports whether a category/subcategory pair is configured.
type KnownFunc func(category, subcategory string) bool

// unknownMarker is appended to the category of rows outside the configured list.
const unknownMarker = " *"

type keyMap struct {
	up   key.Binding
	down key.Binding
	quit key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.up, km.down, km.quit}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.up, km.down, km.quit}}
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is a bubbletea model listing ledger rows.
type Model struct {
	expenses table.Model
	help     help.Model
	keys     keyMap
	format   FormatFunc
	footer   lipgloss.Style
	warning  lipgloss.Style
	total    float64
	unknown  int
}

// New creates the view with the given help model.
func New(colors Colors, format FormatFunc, helpModel help.Model) Model {
	expenses := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Category", Width: 16},
			{Title: "Subcategory", Width: 18},
			{Title: "Amount", Width: 14},
		}),
		table.WithFocused(true),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color(colors.Primary))

	expenses.SetStyles(tableStyle)

	return Model{
		expenses: expenses,
		help:     helpModel,
		keys:     newKeyMap(),
		format:   format,
		footer:   lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Muted)).MarginTop(1),
		warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Warning)),
	}
}

// SetSize sets the size of the expenses table.
func (m *Model) SetSize(width, height int) {
	m.expenses.SetHeight(height)
	m.expenses.SetWidth(width)
	m.help.Width = width
}

// SetExpenses replaces the rows shown. Rows for which known returns false are
// marked; a nil known marks nothing.
func (m *Model) SetExpenses(entries []ledger.Entry, known KnownFunc) {
	rows := make([]table.Row, 0, len(entries))
	m.total = 0
	m.unknown = 0
	for _, e := range entries {
		category := e.Category
		if known != nil && !known(e.Category, e.Subcategory) {
			category += unknownMarker
			m.unknown++
		}
		rows = append(rows, table.Row{
			ledger.FormatDate(e.Date),
			category,
			e.Subcategory,
			m.format(e.Amount),
		})
		m.total += e.Amount
	}

	m.expenses.SetRows(rows)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		const chrome = 4
		m.SetSize(msg.Width, max(msg.Height-chrome, 1))
		return m, nil
	}

	var cmd tea.Cmd
	m.expenses, cmd = m.expenses.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	parts := []string{
		m.expenses.View(),
		m.footer.Render("Total: " + m.format(m.total)),
	}
	if m.unknown > 0 {
		parts = append(parts, m.warning.Render(
			fmt.Sprintf("%d row(s) marked%s use a category not in the configured list", m.unknown, unknownMarker)))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
