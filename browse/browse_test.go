package browse

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rshep3087/spendlog/ledger"
)

func dollars(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func newTestModel() Model {
	return New(Colors{Primary: "#ff0000", Muted: "245", Warning: "214"}, dollars, help.New())
}

func TestNew(t *testing.T) {
	model := newTestModel()

	columns := model.expenses.Columns()
	be.Equal(t, 4, len(columns))
	be.Equal(t, "Date", columns[0].Title)
	be.Equal(t, "Category", columns[1].Title)
	be.Equal(t, "Subcategory", columns[2].Title)
	be.Equal(t, "Amount", columns[3].Title)
	be.Equal(t, 0, len(model.expenses.Rows()))
}

func TestSetExpenses(t *testing.T) {
	model := newTestModel()
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	model.SetExpenses([]ledger.Entry{
		{Date: d, Category: "Food", Subcategory: "Groceries", Amount: 35.5},
		{Date: d, Category: "Housing", Subcategory: "Rent", Amount: 900},
	}, nil)

	rows := model.expenses.Rows()
	be.Equal(t, 2, len(rows))
	be.AllEqual(t, []string{"05-03-2024", "Food", "Groceries", "$35.50"}, rows[0])
	be.Equal(t, 935.5, model.total)
	be.In(t, "Total: $935.50", model.View())
	be.False(t, strings.Contains(model.View(), "not in the configured list"))
}

func TestSetExpensesMarksUnknown(t *testing.T) {
	model := newTestModel()
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	known := func(category, subcategory string) bool {
		return category == "Food" && subcategory == "Groceries"
	}

	model.SetExpenses([]ledger.Entry{
		{Date: d, Category: "Food", Subcategory: "Groceries", Amount: 10},
		{Date: d, Category: "Pets", Subcategory: "Vet", Amount: 80},
		{Date: d, Category: "Food", Subcategory: "Snacks", Amount: 4},
	}, known)

	rows := model.expenses.Rows()
	be.Equal(t, "Food", rows[0][1])
	be.Equal(t, "Pets *", rows[1][1])
	be.Equal(t, "Food *", rows[2][1])
	be.Equal(t, 2, model.unknown)
	be.Equal(t, 94.0, model.total)

	model.SetSize(80, 10)
	be.In(t, "2 row(s) marked * use a category not in the configured list", model.View())

	// replacing the rows resets the count
	model.SetExpenses(nil, known)
	be.Equal(t, 0, model.unknown)
}

func TestUpdateQuit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := newTestModel().Update(tt.msg)
			be.Nonzero(t, cmd)
			_, ok := cmd().(tea.QuitMsg)
			be.True(t, ok)
		})
	}
}

func TestUpdateWindowSize(t *testing.T) {
	updated, cmd := newTestModel().Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	be.True(t, cmd == nil)

	m, ok := updated.(Model)
	be.True(t, ok)
	be.Equal(t, 80, m.help.Width)
	be.Equal(t, 80, m.expenses.Width())
}
