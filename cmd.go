package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rshep3087/spendlog/config"
	"github.com/Rshep3087/spendlog/storage"
	"github.com/Rshep3087/spendlog/storage/csvfile"
	"github.com/Rshep3087/spendlog/storage/sqlite"
	"github.com/Rshep3087/spendlog/tracker"
)

// app holds what every command needs once configuration has been read.
type app struct {
	cfg     config.Config
	theme   Theme
	styles  styles
	fs      afero.Fs
	backend storage.Backend
	tracker *tracker.Tracker
	opts    []tracker.Option
	loaded  bool
}

func newApp(fsys afero.Fs) *app {
	theme := newTheme(config.Colors{})
	return &app{
		cfg:    config.Default(),
		theme:  theme,
		styles: createStyles(theme),
		fs:     fsys,
	}
}

// setup builds the tracker from cfg. Nothing is read until load is called.
func (a *app) setup(cfg config.Config) error {
	tax, err := cfg.Taxonomy()
	if err != nil {
		return fmt.Errorf("invalid categories: %w", err)
	}

	backend, err := newBackend(cfg, a.fs)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.theme = newTheme(cfg.Colors)
	a.styles = createStyles(a.theme)
	a.backend = backend
	a.tracker = tracker.New(tax, backend, append([]tracker.Option{tracker.WithCurrency(cfg.Currency)}, a.opts...)...)
	a.loaded = false
	return nil
}

// load reads the budget and the ledger once.
func (a *app) load(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	if err := a.tracker.Load(ctx); err != nil {
		return err
	}
	a.loaded = true
	return nil
}

func (a *app) close() error {
	if a.backend == nil {
		return nil
	}
	return a.backend.Close()
}

// newBackend returns the storage backend selected by cfg.
func newBackend(cfg config.Config, fsys afero.Fs) (storage.Backend, error) {
	switch cfg.Backend {
	case config.BackendCSV:
		return csvfile.New(fsys, cfg.BudgetPath(), cfg.ExpensesPath()), nil
	case config.BackendSQLite:
		return sqlite.New(cfg.DatabasePath()), nil
	default:
		return nil, fmt.Errorf("invalid backend: %s", cfg.Backend)
	}
}

var (
	cfgFile     string
	application = newApp(afero.NewOsFs())
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "spendlog",
	Short: "Track expenses against a monthly budget",
	Long: `spendlog records categorized expenses, tracks a monthly budget and
computes how much of it is left. Run without a subcommand for the interactive menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		// Setup logging
		log.SetLevel(log.InfoLevel)
		if cfg.Debug {
			log.SetLevel(log.DebugLevel)
		}

		return application.setup(cfg)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return application.close()
	},
	RunE: func(c *cobra.Command, _ []string) error {
		return runInteractive(c.Context(), application, newHuhPrompter(application.theme), c.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults(viper.GetViper())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./spendlog.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("data-dir", ".", "directory holding the budget and expenses files")
	rootCmd.PersistentFlags().String("backend", config.BackendCSV, "storage backend: csv or sqlite")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))

	// Bind environment variables
	viper.SetEnvPrefix("spendlog")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = viper.BindEnv("anthropic_api_key", "SPENDLOG_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	// Add subcommands
	rootCmd.AddCommand(newExpenseCmd(application, newAnthropicSuggester))
	rootCmd.AddCommand(newBudgetCmd(application))
	rootCmd.AddCommand(newSavingsCmd(application))
	rootCmd.AddCommand(newCategoriesCmd(application))
	rootCmd.AddCommand(newBrowseCmd(application))
	rootCmd.AddCommand(newConfigCmd(application))
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Error loading .env file", "error", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in multiple locations (in order of precedence)
		// Current directory (highest precedence)
		viper.AddConfigPath(".")
		viper.SetConfigName("spendlog")
		viper.SetConfigType("toml")

		// User config directory
		if configDir, configErr := os.UserConfigDir(); configErr == nil {
			viper.AddConfigPath(filepath.Join(configDir, "spendlog"))
		}

		// User home directory
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(filepath.Join(home, ".config", "spendlog"))
		}

		// System-wide config directory (lowest precedence)
		viper.AddConfigPath("/etc/spendlog")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		log.Debug("Config file not found or error reading", "error", err)
		return
	}

	log.Debug("Using config file", "file", viper.ConfigFileUsed())
}

// Utility functions for output formatting.
func validateOutputFormat(cmd *cobra.Command, valid ...string) (string, error) {
	outputFormat, _ := cmd.Flags().GetString("output")
	if !slices.Contains(valid, outputFormat) {
		return "", fmt.Errorf("invalid output format: %s (must be one of %v)", outputFormat, valid)
	}
	return outputFormat, nil
}

func outputJSON(cmd *cobra.Command, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func createStyledTable(headers ...string) *table.Table {
	var (
		purple    = lipgloss.Color("99")
		gray      = lipgloss.Color("245")
		lightGray = lipgloss.Color("241")

		headerStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}
