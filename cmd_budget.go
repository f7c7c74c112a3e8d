package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// budgetJSON is the JSON shape of the monthly budget.
type budgetJSON struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// newBudgetCmd creates the budget command group.
func newBudgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Monthly budget commands",
		Long:  `Commands for showing and setting the monthly budget.`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the monthly budget",
		Args:  cobra.NoArgs,
		RunE:  budgetShowCommand{app: a}.run,
	}
	showCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	setCmd := &cobra.Command{
		Use:     "set <amount>",
		Short:   "Set the monthly budget",
		Long:    `Overwrite the monthly budget and save it.`,
		Example: `  spendlog budget set 1500`,
		Args:    cobra.ExactArgs(1),
		RunE:    budgetSetCommand{app: a}.run,
	}

	cmd.AddCommand(showCmd, setCmd)
	return cmd
}

type budgetShowCommand struct {
	app *app
}

func (c budgetShowCommand) run(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd, tableOutputFormat, jsonOutputFormat)
	if err != nil {
		return err
	}

	if err := c.app.load(cmd.Context()); err != nil {
		return err
	}

	t := c.app.tracker
	if outputFormat == jsonOutputFormat {
		return outputJSON(cmd, budgetJSON{Amount: t.Budget(), Currency: t.Currency()})
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.ShowBudget())
	return nil
}

type budgetSetCommand struct {
	app *app
}

func (c budgetSetCommand) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	if err := c.app.load(ctx); err != nil {
		return err
	}

	t := c.app.tracker
	t.SetBudget(amount)
	if err := t.Save(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Monthly budget set successfully.")
	fmt.Fprintln(cmd.OutOrStdout(), t.ShowBudget())
	return nil
}
