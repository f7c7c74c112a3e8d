package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/spendlog/ledger"
)

// newSavingsCmd creates the savings command.
func newSavingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savings [MM-YYYY]",
		Short: "Calculate savings for a month",
		Long: `Subtract everything spent in a month from the monthly budget.
The month defaults to the current one.`,
		Example: `  spendlog savings 03-2024`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    savingsCommand{app: a}.run,
	}
	cmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	return cmd
}

type savingsCommand struct {
	app *app
}

func (c savingsCommand) run(cmd *cobra.Command, args []string) error {
	outputFormat, err := validateOutputFormat(cmd, tableOutputFormat, jsonOutputFormat)
	if err != nil {
		return err
	}

	if err := c.app.load(cmd.Context()); err != nil {
		return err
	}

	t := c.app.tracker
	month := t.CurrentMonth()
	if len(args) == 1 {
		month = args[0]
	}
	if !ledger.IsMonthKey(month) {
		log.Debug("month does not look like MM-YYYY, nothing will match", "month", month)
	}

	summary := t.Summarize(month)
	if outputFormat == jsonOutputFormat {
		return outputJSON(cmd, summary)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, c.app.styles.titleStyle.Render("Savings for "+month))
	if p, ok := monthPeriod(month); ok {
		fmt.Fprintln(out, c.app.styles.mutedStyle.Render(p.String()))
	}

	tbl := createStyledTable("BUDGET", "SPENT", "SAVINGS")
	tbl.Row(t.FormatAmount(summary.Budget), t.FormatAmount(summary.Spent), t.FormatAmount(summary.Savings))
	fmt.Fprintln(out, tbl)

	if len(summary.Categories) > 0 {
		breakdown := createStyledTable("CATEGORY", "SPENT")
		for _, ct := range summary.Categories {
			breakdown.Row(ct.Category, t.FormatAmount(ct.Amount))
		}
		fmt.Fprintln(out, breakdown)
	}

	return nil
}
