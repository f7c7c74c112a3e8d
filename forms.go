package main

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/Rshep3087/spendlog/taxonomy"
)

// huhPrompter asks for input with huh forms.
type huhPrompter struct {
	theme *huh.Theme
}

func newHuhPrompter(theme Theme) *huhPrompter {
	t := huh.ThemeCharm()
	t.Focused.Title = t.Focused.Title.Foreground(theme.Primary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(theme.Primary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(theme.Error)
	return &huhPrompter{theme: t}
}

func (p *huhPrompter) run(form *huh.Form) error {
	err := form.WithTheme(p.theme).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errCanceled
	}
	return err
}

func (p *huhPrompter) chooseAction() (menuAction, error) {
	var action menuAction
	if err := p.run(newMenuForm(&action)); err != nil {
		return 0, err
	}
	return action, nil
}

func (p *huhPrompter) expense(tax taxonomy.Taxonomy) (expenseInput, error) {
	var (
		category    string
		subcategory string
		amount      string
	)

	// The subcategory options depend on the category, so ask in two steps.
	if err := p.run(newCategoryForm(tax, &category)); err != nil {
		return expenseInput{}, err
	}
	if err := p.run(newSubcategoryForm(tax, category, &subcategory, &amount)); err != nil {
		return expenseInput{}, err
	}

	value, err := parseAmount(amount)
	if err != nil {
		return expenseInput{}, err
	}
	return expenseInput{Category: category, Subcategory: subcategory, Amount: value}, nil
}

func (p *huhPrompter) budget(current float64) (float64, error) {
	amount := strconv.FormatFloat(current, 'f', -1, 64)
	if err := p.run(newBudgetForm(&amount)); err != nil {
		return 0, err
	}
	return parseAmount(amount)
}

func (p *huhPrompter) month(defaultMonth string) (string, error) {
	month := defaultMonth
	if err := p.run(newMonthForm(&month)); err != nil {
		return "", err
	}
	return month, nil
}

func newMenuForm(action *menuAction) *huh.Form {
	opts := make([]huh.Option[menuAction], len(menuActions))
	for i, a := range menuActions {
		opts[i] = huh.NewOption(a.String(), a)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[menuAction]().
				Title("Expense Tracker Menu").
				Options(opts...).
				Value(action),
		),
	)
}

func newCategoryForm(tax taxonomy.Taxonomy, category *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Description("Select a category for the expense").
				Options(huh.NewOptions(tax.Names()...)...).
				Value(category),
		),
	)
}

func newSubcategoryForm(tax taxonomy.Taxonomy, category string, subcategory, amount *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subcategory").
				Description("Subcategories for " + category).
				Options(huh.NewOptions(tax.Subcategories(category)...)...).
				Value(subcategory),

			huh.NewInput().
				Title("Amount").
				Description("Amount spent").
				Placeholder("e.g. 25.50").
				Value(amount).
				Validate(validateAmount),
		),
	)
}

func newBudgetForm(amount *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly Budget").
				Description("Enter monthly budget amount").
				Value(amount).
				Validate(validateAmount),
		),
	)
}

func newMonthForm(month *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Month").
				Description("Enter month and year (MM-YYYY)").
				Placeholder("MM-YYYY").
				Value(month),
		),
	)
}

func validateAmount(s string) error {
	if s == "" {
		return errors.New("amount is required")
	}
	if _, err := parseAmount(s); err != nil {
		return errors.New("amount must be a valid number")
	}
	return nil
}
