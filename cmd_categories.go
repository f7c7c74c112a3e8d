package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rshep3087/spendlog/taxonomy"
)

// categoriesListCommand encapsulates the dependencies for the categories list command.
type categoriesListCommand struct {
	app *app
}

// newCategoriesCmd creates a new categories command.
func newCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Category commands",
		Long:  `Commands for inspecting the expense categories.`,
	}

	listCmd := categoriesListCommand{app: a}
	categoriesListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `List all categories with their subcategories, in the order they are offered.`,
		Args:  cobra.NoArgs,
		RunE:  listCmd.run,
	}
	categoriesListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	cmd.AddCommand(categoriesListCmd)
	return cmd
}

// run executes the categories list command.
func (c *categoriesListCommand) run(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd, tableOutputFormat, jsonOutputFormat)
	if err != nil {
		return err
	}

	categories := c.app.tracker.Taxonomy().Categories()

	// Output based on format
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd, categories)
	case tableOutputFormat:
		return outputCategoriesTable(cmd, categories)
	default:
		return errors.New("unsupported output format")
	}
}

func outputCategoriesTable(cmd *cobra.Command, categories []taxonomy.Category) error {
	t := createStyledTable("CATEGORY", "SUBCATEGORIES")

	for _, category := range categories {
		t.Row(category.Name, strings.Join(category.Subcategories, ", "))
	}

	fmt.Fprintln(cmd.OutOrStdout(), t)
	return nil
}
