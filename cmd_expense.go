package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rshep3087/spendlog/ledger"
)

// expenseRow is the JSON shape of one recorded expense.
type expenseRow struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Amount      float64 `json:"amount"`
}

// newExpenseCmd creates the expense command group.
func newExpenseCmd(a *app, newProvider providerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense management commands",
		Long:  `Commands for recording and listing expenses.`,
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long: `Record an expense under a category and subcategory. Amounts recorded
on the same date under the same subcategory are added together.`,
		Example: `  spendlog expense add --category Food --subcategory Groceries --amount 25.50`,
		Args:    cobra.NoArgs,
		RunE:    expenseAddCommand{app: a}.run,
	}
	addCmd.Flags().String("category", "", "Expense category (required)")
	addCmd.Flags().String("subcategory", "", "Expense subcategory (required)")
	addCmd.Flags().String("amount", "", "Amount spent (required)")
	addCmd.Flags().String("date", "", "Expense date (DD-MM-YYYY, defaults to today)")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("subcategory")
	_ = addCmd.MarkFlagRequired("amount")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all recorded expenses",
		Long:  `List every recorded expense grouped by date, category and subcategory.`,
		Args:  cobra.NoArgs,
		RunE:  expenseListCommand{app: a}.run,
	}
	listCmd.Flags().StringP("output", "o", treeOutputFormat, "Output format: tree, table or json")

	suggestCmd := &cobra.Command{
		Use:   "suggest <description>",
		Short: "Suggest a category for an expense",
		Long: `Ask Anthropic's Claude for the category and subcategory that best fit an
expense description. With --record the expense is recorded under the suggestion.`,
		Example: `  spendlog expense suggest "Shell gas station" --amount 40 --record`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    expenseSuggestCommand{app: a, newProvider: newProvider}.run,
	}
	suggestCmd.Flags().String("amount", "", "Amount spent, passed to the model and used by --record")
	suggestCmd.Flags().Bool("record", false, "Record the expense under the suggested category")
	suggestCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	cmd.AddCommand(addCmd, listCmd, suggestCmd)
	return cmd
}

// parseAmount converts user input to an amount.
func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("invalid amount: %q", s)
	}
	return amount, nil
}

type expenseAddCommand struct {
	app *app
}

func (c expenseAddCommand) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	category, _ := cmd.Flags().GetString("category")
	subcategory, _ := cmd.Flags().GetString("subcategory")
	amountStr, _ := cmd.Flags().GetString("amount")
	dateStr, _ := cmd.Flags().GetString("date")

	amount, err := parseAmount(amountStr)
	if err != nil {
		return err
	}

	if err := c.app.load(ctx); err != nil {
		return err
	}

	t := c.app.tracker
	date := t.Today()
	if dateStr != "" {
		if date, err = ledger.ParseDate(dateStr); err != nil {
			return err
		}
	}

	category, subcategory, err = t.Record(date, category, subcategory, amount)
	if err != nil {
		return err
	}

	if err := t.SaveLedger(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s under %s / %s on %s\n",
		t.FormatAmount(amount), category, subcategory, ledger.FormatDate(date))
	return nil
}

type expenseListCommand struct {
	app *app
}

func (c expenseListCommand) run(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd, treeOutputFormat, tableOutputFormat, jsonOutputFormat)
	if err != nil {
		return err
	}

	if err := c.app.load(cmd.Context()); err != nil {
		return err
	}

	t := c.app.tracker
	switch outputFormat {
	case jsonOutputFormat:
		entries := t.Rows()
		rows := make([]expenseRow, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, expenseRow{
				Date:        ledger.FormatDate(e.Date),
				Category:    e.Category,
				Subcategory: e.Subcategory,
				Amount:      e.Amount,
			})
		}
		return outputJSON(cmd, rows)
	case tableOutputFormat:
		fmt.Fprintln(cmd.OutOrStdout(), renderExpenseTable(t.Rows(), t.FormatAmount))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), renderExpenseTree(t.Groups(), t.FormatAmount, c.app.styles))
	}
	return nil
}

type expenseSuggestCommand struct {
	app         *app
	newProvider providerFactory
}

func (c expenseSuggestCommand) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	outputFormat, err := validateOutputFormat(cmd, tableOutputFormat, jsonOutputFormat)
	if err != nil {
		return err
	}

	amountStr, _ := cmd.Flags().GetString("amount")
	record, _ := cmd.Flags().GetBool("record")

	var amount float64
	if record || amountStr != "" {
		if amountStr == "" {
			return errors.New("--record needs --amount")
		}
		if amount, err = parseAmount(amountStr); err != nil {
			return err
		}
	}

	provider, err := c.newProvider(c.app.cfg)
	if err != nil {
		return err
	}

	t := c.app.tracker
	expense := ExpenseDescription{
		Description: strings.Join(args, " "),
		Amount:      amountStr,
		Date:        ledger.FormatDate(t.Today()),
	}

	recommendation, err := recommendCategory(ctx, provider, expense, t.Taxonomy())
	if err != nil {
		return err
	}

	if record {
		if err := c.app.load(ctx); err != nil {
			return err
		}
		if _, _, err := t.RecordToday(recommendation.Category, recommendation.Subcategory, amount); err != nil {
			return err
		}
		if err := t.SaveLedger(ctx); err != nil {
			return err
		}
	}

	if outputFormat == jsonOutputFormat {
		return outputJSON(cmd, recommendation)
	}

	tbl := createStyledTable("CATEGORY", "SUBCATEGORY", "CONFIDENCE", "REASONING")
	tbl.Row(
		recommendation.Category,
		recommendation.Subcategory,
		strconv.FormatFloat(recommendation.Confidence, 'f', 0, 64)+"%",
		recommendation.Reasoning,
	)
	fmt.Fprintln(cmd.OutOrStdout(), tbl)

	if record {
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s under %s / %s\n",
			t.FormatAmount(amount), recommendation.Category, recommendation.Subcategory)
	}
	return nil
}
