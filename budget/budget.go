// Package budget holds the single monthly budget value.
package budget

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = "USD"

// Store holds the monthly budget. There is no per-month history: setting the
// budget overwrites the previous value.
type Store struct {
	amount   float64
	currency string
	changed  bool
}

// New returns a store with a zero budget displayed in the given currency.
func New(currency string) *Store {
	if currency == "" || money.GetCurrency(currency) == nil {
		currency = DefaultCurrency
	}
	return &Store{currency: currency}
}

// Amount returns the current budget.
func (s *Store) Amount() float64 {
	return s.amount
}

// Currency returns the display currency code.
func (s *Store) Currency() string {
	return s.currency
}

// Load replaces the budget with a persisted value without marking it changed.
func (s *Store) Load(amount float64) {
	s.amount = amount
}

// Set overwrites the budget. Negative amounts are accepted; rejecting them is
// up to the caller.
func (s *Store) Set(amount float64) {
	s.amount = amount
	s.changed = true
}

// Changed reports whether Set was called since the store was created.
func (s *Store) Changed() bool {
	return s.changed
}

// Show formats the budget for display.
func (s *Store) Show() string {
	return fmt.Sprintf("Monthly Budget: %s", s.Format(s.amount))
}

// Format renders amount in the store's currency, e.g. $1,250.50. go-money
// truncates to the currency's minor unit.
func (s *Store) Format(amount float64) string {
	c := money.GetCurrency(s.currency)
	if math.Abs(amount)*math.Pow10(c.Fraction) >= math.MaxInt64 || math.IsNaN(amount) {
		return formatLarge(amount, c)
	}
	return money.NewFromFloat(amount, s.currency).Display()
}

// formatLarge renders amounts whose minor units do not fit in an int64.
func formatLarge(amount float64, c *money.Currency) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + c.Grapheme + strconv.FormatFloat(math.Abs(amount), 'f', c.Fraction, 64)
}
