package main

import "time"

// Output formats
const (
	jsonOutputFormat  = "json"
	tableOutputFormat = "table"
	treeOutputFormat  = "tree"
	tomlOutputFormat  = "toml"
)

// AI suggestion settings
const (
	aiRecommendationTimeout = 30 * time.Second
	anthropicMaxTokens      = 256
	maxConfidenceScore      = 100
)

const debugLogFile = "spendlog.log"

// Interactive menu actions, in the order they are offered.
type menuAction int

const (
	recordExpenseAction menuAction = iota + 1
	setBudgetAction
	showBudgetAction
	showExpensesAction
	calculateSavingsAction
	exitAction
)

var menuActions = []menuAction{
	recordExpenseAction,
	setBudgetAction,
	showBudgetAction,
	showExpensesAction,
	calculateSavingsAction,
	exitAction,
}

func (a menuAction) String() string {
	switch a {
	case recordExpenseAction:
		return "Record Expense"
	case setBudgetAction:
		return "Set Monthly Budget"
	case showBudgetAction:
		return "Show Monthly Budget"
	case showExpensesAction:
		return "Show Expenses"
	case calculateSavingsAction:
		return "Calculate Savings"
	case exitAction:
		return "Exit"
	}

	return "unknown"
}
