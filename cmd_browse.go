package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/spendlog/browse"
)

// newBrowseCmd creates the browse command.
func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse recorded expenses",
		Long:  `Open a read-only, scrollable table of every recorded expense.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closeLog, err := redirectDebugLog(a.cfg.Debug)
			if err != nil {
				return err
			}
			defer closeLog()

			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			m := newBrowseModel(a)
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("failed to run browser: %w", err)
			}
			return nil
		},
	}
}

func newBrowseModel(a *app) browse.Model {
	m := browse.New(
		browse.Colors{
			Primary: string(a.theme.Primary),
			Muted:   string(a.theme.Muted),
			Warning: string(a.theme.Warning),
		},
		a.tracker.FormatAmount,
		createHelpModel(a.theme),
	)
	m.SetExpenses(a.tracker.Rows(), a.tracker.Taxonomy().Contains)
	return m
}

// redirectDebugLog sends debug logs to a file so they do not draw over a
// full-screen UI. It is a no-op unless debug is set.
func redirectDebugLog(debug bool) (func(), error) {
	if !debug {
		return func() {}, nil
	}

	f, err := tea.LogToFile(debugLogFile, "spendlog")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	log.SetOutput(f)
	log.Debug("logging to file", "file", debugLogFile)

	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
