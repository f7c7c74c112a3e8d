package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command group.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Print the configuration after merging the config file, environment
and flags. The Anthropic API key is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat, err := validateOutputFormat(cmd, tomlOutputFormat, tableOutputFormat)
			if err != nil {
				return err
			}

			if outputFormat == tableOutputFormat {
				t := createStyledTable("SETTING", "VALUE", "DESCRIPTION")
				t.Rows(a.cfg.Rows()...)
				fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			}

			doc, err := a.cfg.TOML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		},
	}
	showCmd.Flags().StringP("output", "o", tomlOutputFormat, "Output format: toml or table")

	cmd.AddCommand(showCmd)
	return cmd
}
