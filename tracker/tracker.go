// Package tracker ties the budget, the expense ledger and their storage together.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Rshep3087/spendlog/budget"
	"github.com/Rshep3087/spendlog/ledger"
	"github.com/Rshep3087/spendlog/storage"
	"github.com/Rshep3087/spendlog/taxonomy"
)

// Tracker is the state of one session: taxonomy, budget and ledger, plus the
// backend they are loaded from and saved to.
type Tracker struct {
	taxonomy taxonomy.Taxonomy
	budget   *budget.Store
	ledger   *ledger.Ledger
	backend  storage.Backend
	now      func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithCurrency sets the display currency of the budget.
func WithCurrency(code string) Option {
	return func(t *Tracker) {
		t.budget = budget.New(code)
	}
}

// New returns a tracker with an empty ledger and a zero budget.
func New(tax taxonomy.Taxonomy, backend storage.Backend, opts ...Option) *Tracker {
	t := &Tracker{
		taxonomy: tax,
		budget:   budget.New(""),
		ledger:   ledger.New(),
		backend:  backend,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the budget and the ledger from the backend, replacing what the
// tracker held. A missing or empty budget and a missing ledger are logged and
// start out empty; any other error is returned.
func (t *Tracker) Load(ctx context.Context) error {
	amount, err := t.backend.LoadBudget(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Warn("budget file not found, starting with a zero budget", "error", err)
		t.budget.Load(0)
	case errors.Is(err, storage.ErrNoRows):
		log.Warn("budget file has no rows, starting with a zero budget", "error", err)
		t.budget.Load(0)
	case err != nil:
		return fmt.Errorf("failed to load budget: %w", err)
	default:
		t.budget.Load(amount)
	}

	loaded := ledger.New()
	err = t.backend.LoadLedger(ctx, loaded)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Warn("expenses file not found, starting with an empty ledger", "error", err)
	case err != nil:
		return fmt.Errorf("failed to load expenses: %w", err)
	}
	t.ledger.Replace(loaded)

	log.Debug("loaded tracker", "budget", t.budget.Amount(), "entries", t.ledger.Len())
	return nil
}

// Save writes the ledger, and the budget if it was set during this session.
func (t *Tracker) Save(ctx context.Context) error {
	if err := t.SaveLedger(ctx); err != nil {
		return err
	}

	if t.budget.Changed() {
		if err := t.backend.SaveBudget(ctx, t.budget.Amount()); err != nil {
			return fmt.Errorf("failed to save budget: %w", err)
		}
	}

	return nil
}

// SaveLedger writes only the ledger.
func (t *Tracker) SaveLedger(ctx context.Context) error {
	if err := t.backend.SaveLedger(ctx, t.ledger); err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}
	return nil
}

// Record adds an expense after resolving category and subcategory against the
// taxonomy. It returns the canonical names that were recorded.
func (t *Tracker) Record(date time.Time, category, subcategory string, amount float64) (string, string, error) {
	cat, sub, err := t.taxonomy.Resolve(category, subcategory)
	if err != nil {
		return "", "", err
	}

	t.ledger.Record(date, cat, sub, amount)
	total, _ := t.ledger.Amount(date, cat, sub)
	log.Debug("recorded expense", "date", ledger.FormatDate(date), "category", cat, "subcategory", sub, "amount", amount, "total", total)
	return cat, sub, nil
}

// RecordToday records an expense dated today.
func (t *Tracker) RecordToday(category, subcategory string, amount float64) (string, string, error) {
	return t.Record(t.Today(), category, subcategory, amount)
}

// Today returns the current calendar date.
func (t *Tracker) Today() time.Time {
	return ledger.Day(t.now())
}

// CurrentMonth returns the current month as MM-YYYY.
func (t *Tracker) CurrentMonth() string {
	return ledger.MonthKey(t.Today())
}

// SetBudget overwrites the monthly budget.
func (t *Tracker) SetBudget(amount float64) {
	t.budget.Set(amount)
}

// Budget returns the monthly budget.
func (t *Tracker) Budget() float64 {
	return t.budget.Amount()
}

// ShowBudget formats the monthly budget for display.
func (t *Tracker) ShowBudget() string {
	return t.budget.Show()
}

// FormatAmount renders amount in the configured currency.
func (t *Tracker) FormatAmount(amount float64) string {
	return t.budget.Format(amount)
}

// Currency returns the display currency code.
func (t *Tracker) Currency() string {
	return t.budget.Currency()
}

// Groups returns the ledger grouped by date, category and subcategory.
func (t *Tracker) Groups() []ledger.DateGroup {
	return t.ledger.Groups()
}

// Rows returns one entry per ledger key in grouped order.
func (t *Tracker) Rows() []ledger.Entry {
	return t.ledger.Rows()
}

// Taxonomy returns the category taxonomy.
func (t *Tracker) Taxonomy() taxonomy.Taxonomy {
	return t.taxonomy
}

// SavingsFor returns the budget minus everything spent in monthYear (MM-YYYY).
// When nothing matches, including when monthYear is malformed, the budget is
// returned unchanged.
func (t *Tracker) SavingsFor(monthYear string) float64 {
	return t.budget.Amount() - t.ledger.TotalFor(monthYear)
}

// Summary describes spending against the budget for one month.
type Summary struct {
	Month      string                 `json:"month"`
	Currency   string                 `json:"currency"`
	Budget     float64                `json:"budget"`
	Spent      float64                `json:"spent"`
	Savings    float64                `json:"savings"`
	Categories []ledger.CategoryTotal `json:"categories"`
}

// Summarize returns the savings for monthYear along with per-category totals.
func (t *Tracker) Summarize(monthYear string) Summary {
	spent := t.ledger.TotalFor(monthYear)
	return Summary{
		Month:      monthYear,
		Currency:   t.budget.Currency(),
		Budget:     t.budget.Amount(),
		Spent:      spent,
		Savings:    t.budget.Amount() - spent,
		Categories: t.ledger.CategoryTotalsFor(monthYear),
	}
}
