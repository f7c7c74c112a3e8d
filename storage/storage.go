// Package storage defines how the budget and the expense ledger are persisted.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rshep3087/spendlog/ledger"
)

// ErrNotFound is returned when the persisted budget or ledger does not exist
// yet. Callers treat it as "start empty".
var ErrNotFound = errors.New("not found")

// ErrNoRows is returned when the persisted budget exists but holds no value.
var ErrNoRows = errors.New("no rows")

// Backend reads and writes the budget and the ledger.
type Backend interface {
	// LoadBudget returns the persisted budget.
	LoadBudget(ctx context.Context) (float64, error)
	// SaveBudget persists the budget as a single value.
	SaveBudget(ctx context.Context, amount float64) error
	// LoadLedger accumulates every persisted row into l. On error l is left
	// untouched.
	LoadLedger(ctx context.Context, l *ledger.Ledger) error
	// SaveLedger replaces the persisted ledger with one row per entry of l.
	SaveLedger(ctx context.Context, l *ledger.Ledger) error
	Close() error
}

// ParseError reports a persisted row that could not be parsed.
type ParseError struct {
	Source string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: row %d: column %q: invalid value %q: %v", e.Source, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
