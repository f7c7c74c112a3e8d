package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/Rshep3087/spendlog/ledger"
)

const noExpensesMessage = "No expenses recorded."

// renderExpenseTree nests expenses under their date and category.
func renderExpenseTree(groups []ledger.DateGroup, format func(float64) string, s styles) string {
	if len(groups) == 0 {
		return noExpensesMessage
	}

	root := tree.Root(s.titleStyle.Render("Expenses")).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.branchStyle)

	for _, dg := range groups {
		dateNode := tree.Root(ledger.FormatDate(dg.Date))
		for _, cg := range dg.Categories {
			categoryNode := tree.Root(cg.Name)
			for _, sub := range cg.Subcategories {
				categoryNode.Child(fmt.Sprintf("%s: %s", sub.Name, s.amountStyle.Render(format(sub.Amount))))
			}
			dateNode.Child(categoryNode)
		}
		root.Child(dateNode)
	}

	return root.String()
}

// renderExpenseTable lists one row per recorded key.
func renderExpenseTable(entries []ledger.Entry, format func(float64) string) string {
	if len(entries) == 0 {
		return noExpensesMessage
	}

	t := createStyledTable("DATE", "CATEGORY", "SUBCATEGORY", "AMOUNT")
	for _, e := range entries {
		t.Row(ledger.FormatDate(e.Date), e.Category, e.Subcategory, format(e.Amount))
	}
	return t.String()
}
