package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/Rshep3087/spendlog/taxonomy"
)

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration structure.
type Config struct {
	// Debug enables debug logging
	Debug bool `mapstructure:"debug" toml:"debug"`
	// DataDir is the directory relative file names are resolved against
	DataDir string `mapstructure:"data_dir" toml:"data_dir"`
	// Backend selects where the budget and expenses are stored
	Backend string `mapstructure:"backend" toml:"backend"`
	// BudgetFile is the CSV file holding the monthly budget
	BudgetFile string `mapstructure:"budget_file" toml:"budget_file"`
	// ExpensesFile is the CSV file holding the expense ledger
	ExpensesFile string `mapstructure:"expenses_file" toml:"expenses_file"`
	// Database is the SQLite file used by the sqlite backend
	Database string `mapstructure:"database" toml:"database"`
	// Currency is the ISO code amounts are displayed in
	Currency string `mapstructure:"currency" toml:"currency"`
	// AnthropicAPIKey enables AI category suggestions
	AnthropicAPIKey string `mapstructure:"anthropic_api_key" toml:"anthropic_api_key"`
	// AnthropicModel is the model used for suggestions
	AnthropicModel string `mapstructure:"anthropic_model" toml:"anthropic_model"`
	// Colors overrides the terminal theme
	Colors Colors `mapstructure:"colors" toml:"colors"`
	// Categories replaces the default category taxonomy
	Categories []taxonomy.Category `mapstructure:"categories" toml:"categories"`
}

// Colors holds user-configurable theme colors as hex or ANSI strings.
type Colors struct {
	Primary       string `mapstructure:"primary" toml:"primary,omitempty"`
	Error         string `mapstructure:"error" toml:"error,omitempty"`
	Success       string `mapstructure:"success" toml:"success,omitempty"`
	Warning       string `mapstructure:"warning" toml:"warning,omitempty"`
	Muted         string `mapstructure:"muted" toml:"muted,omitempty"`
	Border        string `mapstructure:"border" toml:"border,omitempty"`
	Text          string `mapstructure:"text" toml:"text,omitempty"`
	SecondaryText string `mapstructure:"secondary_text" toml:"secondary_text,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DataDir:        ".",
		Backend:        BackendCSV,
		BudgetFile:     "budget.csv",
		ExpensesFile:   "expenses.csv",
		Database:       "spendlog.db",
		Currency:       "USD",
		AnthropicModel: "claude-3-haiku-20240307",
	}
}

// SetDefaults registers the defaults with v so that unset keys unmarshal to them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("budget_file", d.BudgetFile)
	v.SetDefault("expenses_file", d.ExpensesFile)
	v.SetDefault("database", d.Database)
	v.SetDefault("currency", d.Currency)
	v.SetDefault("anthropic_model", d.AnthropicModel)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	backends := []string{BackendCSV, BackendSQLite}
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("invalid backend: %s (must be one of %v)", c.Backend, backends)
	}

	if c.BudgetFile == "" || c.ExpensesFile == "" {
		return errors.New("budget_file and expenses_file must not be empty")
	}

	if _, err := c.Taxonomy(); err != nil {
		return fmt.Errorf("invalid categories: %w", err)
	}

	return nil
}

// Taxonomy builds the category taxonomy, falling back to the default one.
func (c Config) Taxonomy() (taxonomy.Taxonomy, error) {
	return taxonomy.New(c.Categories)
}

// BudgetPath returns the budget file resolved against DataDir.
func (c Config) BudgetPath() string {
	return c.resolve(c.BudgetFile)
}

// ExpensesPath returns the expenses file resolved against DataDir.
func (c Config) ExpensesPath() string {
	return c.resolve(c.ExpensesFile)
}

// DatabasePath returns the SQLite file resolved against DataDir.
func (c Config) DatabasePath() string {
	return c.resolve(c.Database)
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func maskSensitiveValue(value string) string {
	if value == "" {
		return "(not set)"
	}

	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}

	return value[:4] + strings.Repeat("*", len(value)-4)
}

// Masked returns a copy of c that is safe to print.
func (c Config) Masked() Config {
	c.AnthropicAPIKey = maskSensitiveValue(c.AnthropicAPIKey)
	return c
}

// TOML renders the masked configuration as a TOML document.
func (c Config) TOML() (string, error) {
	m := c.Masked()
	m.Categories = c.categoriesOrDefault()

	data, err := toml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(data), nil
}

// Rows returns setting, value and description triples for table output.
func (c Config) Rows() [][]string {
	return [][]string{
		{"Debug", strconv.FormatBool(c.Debug), "Enable debug logging"},
		{"Data Dir", c.DataDir, "Directory relative file names are resolved against"},
		{"Backend", c.Backend, "Storage backend (csv or sqlite)"},
		{"Budget File", c.BudgetPath(), "CSV file holding the monthly budget"},
		{"Expenses File", c.ExpensesPath(), "CSV file holding the expense ledger"},
		{"Database", c.DatabasePath(), "SQLite database used by the sqlite backend"},
		{"Currency", c.Currency, "Currency amounts are displayed in"},
		{"Anthropic API Key", maskSensitiveValue(c.AnthropicAPIKey), "Anthropic API key for category suggestions"},
		{"Anthropic Model", c.AnthropicModel, "Model used for category suggestions"},
		{"Categories", strconv.Itoa(len(c.categoriesOrDefault())), "Number of expense categories"},
	}
}

func (c Config) categoriesOrDefault() []taxonomy.Category {
	if len(c.Categories) == 0 {
		return taxonomy.Default().Categories()
	}
	return c.Categories
}
