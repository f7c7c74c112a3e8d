package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Rshep3087/spendlog/ledger"
	"github.com/Rshep3087/spendlog/taxonomy"
)

// errCanceled is returned by a prompter when the user backs out of a form.
var errCanceled = errors.New("canceled")

// expenseInput is what the record expense form collects.
type expenseInput struct {
	Category    string
	Subcategory string
	Amount      float64
}

// prompter asks the user for input. The interactive menu only talks to the
// console through it.
type prompter interface {
	chooseAction() (menuAction, error)
	expense(tax taxonomy.Taxonomy) (expenseInput, error)
	budget(current float64) (float64, error)
	month(defaultMonth string) (string, error)
}

// menu is one interactive session.
type menu struct {
	app    *app
	prompt prompter
	out    io.Writer
}

// menuHandler runs one menu action and reports whether the session is over.
type menuHandler func(ctx context.Context, m *menu) (bool, error)

var menuHandlers = map[menuAction]menuHandler{
	recordExpenseAction:    handleRecordExpense,
	setBudgetAction:        handleSetBudget,
	showBudgetAction:       handleShowBudget,
	showExpensesAction:     handleShowExpenses,
	calculateSavingsAction: handleCalculateSavings,
	exitAction:             handleExit,
}

// runInteractive loads the tracker and runs the menu until the user exits.
func runInteractive(ctx context.Context, a *app, p prompter, out io.Writer) error {
	closeLog, err := redirectDebugLog(a.cfg.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := a.load(ctx); err != nil {
		return err
	}

	m := &menu{app: a, prompt: p, out: out}
	return m.run(ctx)
}

func (m *menu) run(ctx context.Context) error {
	for {
		action, err := m.prompt.chooseAction()
		if errors.Is(err, errCanceled) {
			action = exitAction
		} else if err != nil {
			return err
		}

		handler, ok := menuHandlers[action]
		if !ok {
			fmt.Fprintln(m.out, "Invalid choice. Please enter a valid option.")
			continue
		}

		log.Debug("running menu action", "action", action)
		done, err := handler(ctx, m)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func handleRecordExpense(ctx context.Context, m *menu) (bool, error) {
	t := m.app.tracker

	input, err := m.prompt.expense(t.Taxonomy())
	if errors.Is(err, errCanceled) {
		fmt.Fprintln(m.out, m.app.styles.mutedStyle.Render("Canceled."))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, _, err := t.RecordToday(input.Category, input.Subcategory, input.Amount); err != nil {
		fmt.Fprintln(m.out, m.app.styles.errorStyle.Render(err.Error()))
		return false, nil
	}

	if err := t.SaveLedger(ctx); err != nil {
		return false, err
	}

	fmt.Fprintln(m.out, m.app.styles.successStyle.Render("Expense recorded successfully."))
	return false, nil
}

func handleSetBudget(_ context.Context, m *menu) (bool, error) {
	t := m.app.tracker

	amount, err := m.prompt.budget(t.Budget())
	if errors.Is(err, errCanceled) {
		fmt.Fprintln(m.out, m.app.styles.mutedStyle.Render("Canceled."))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	t.SetBudget(amount)
	fmt.Fprintln(m.out, m.app.styles.successStyle.Render("Monthly budget set successfully."))
	return false, nil
}

func handleShowBudget(_ context.Context, m *menu) (bool, error) {
	fmt.Fprintln(m.out, m.app.tracker.ShowBudget())
	return false, nil
}

func handleShowExpenses(_ context.Context, m *menu) (bool, error) {
	t := m.app.tracker
	fmt.Fprintln(m.out, renderExpenseTree(t.Groups(), t.FormatAmount, m.app.styles))
	return false, nil
}

func handleCalculateSavings(_ context.Context, m *menu) (bool, error) {
	t := m.app.tracker

	month, err := m.prompt.month(t.CurrentMonth())
	if errors.Is(err, errCanceled) {
		fmt.Fprintln(m.out, m.app.styles.mutedStyle.Render("Canceled."))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !ledger.IsMonthKey(month) {
		log.Debug("month does not look like MM-YYYY, nothing will match", "month", month)
	}

	fmt.Fprintf(m.out, "Savings for %s: %s\n", month, t.FormatAmount(t.SavingsFor(month)))
	return false, nil
}

func handleExit(ctx context.Context, m *menu) (bool, error) {
	if err := m.app.tracker.Save(ctx); err != nil {
		return true, err
	}

	fmt.Fprintln(m.out, "Exiting...")
	return true, nil
}
