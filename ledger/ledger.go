// Package ledger holds recorded expenses, accumulated per date, category and
// subcategory.
package ledger

import (
	"time"
)

// Key identifies a single ledger entry.
type Key struct {
	Date        time.Time
	Category    string
	Subcategory string
}

// Entry is the accumulated amount for one key.
type Entry struct {
	Date        time.Time
	Category    string
	Subcategory string
	Amount      float64
}

// Key returns the entry's key.
func (e Entry) Key() Key {
	return Key{Date: e.Date, Category: e.Category, Subcategory: e.Subcategory}
}

// Ledger is an insertion-ordered set of entries with at most one entry per key.
// The zero value is ready to use.
type Ledger struct {
	entries []Entry
	index   map[Key]int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Record adds amount to the entry for date/category/subcategory, creating it on
// first use. Category membership and the sign of amount are not checked here.
func (l *Ledger) Record(date time.Time, category, subcategory string, amount float64) {
	k := Key{Date: Day(date), Category: category, Subcategory: subcategory}

	if i, ok := l.index[k]; ok {
		l.entries[i].Amount += amount
		return
	}

	if l.index == nil {
		l.index = make(map[Key]int)
	}
	l.index[k] = len(l.entries)
	l.entries = append(l.entries, Entry{
		Date:        k.Date,
		Category:    category,
		Subcategory: subcategory,
		Amount:      amount,
	})
}

// Amount returns the accumulated amount for the key and whether it exists.
func (l *Ledger) Amount(date time.Time, category, subcategory string) (float64, bool) {
	i, ok := l.index[Key{Date: Day(date), Category: category, Subcategory: subcategory}]
	if !ok {
		return 0, false
	}
	return l.entries[i].Amount, true
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns the entries in first-insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Replace swaps the ledger contents for other's.
func (l *Ledger) Replace(other *Ledger) {
	l.entries = other.entries
	l.index = other.index
}

// Rows returns the entries in grouped order: by date, then category, then
// subcategory, each in order of first appearance. This is the order entries
// are written out in.
func (l *Ledger) Rows() []Entry {
	var out []Entry
	for _, dg := range l.Groups() {
		for _, cg := range dg.Categories {
			for _, sub := range cg.Subcategories {
				out = append(out, Entry{
					Date:        dg.Date,
					Category:    cg.Name,
					Subcategory: sub.Name,
					Amount:      sub.Amount,
				})
			}
		}
	}
	return out
}

// TotalFor sums every entry whose date formats to monthYear (MM-YYYY). A
// malformed monthYear simply matches nothing.
func (l *Ledger) TotalFor(monthYear string) float64 {
	var total float64
	for _, e := range l.entries {
		if MonthKey(e.Date) == monthYear {
			total += e.Amount
		}
	}
	return total
}

// CategoryTotalsFor sums entries for monthYear per category, in order of
// first appearance.
func (l *Ledger) CategoryTotalsFor(monthYear string) []CategoryTotal {
	var out []CategoryTotal
	pos := make(map[string]int)
	for _, e := range l.entries {
		if MonthKey(e.Date) != monthYear {
			continue
		}
		i, ok := pos[e.Category]
		if !ok {
			i = len(out)
			pos[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category})
		}
		out[i].Amount += e.Amount
	}
	return out
}

// CategoryTotal is the amount spent on one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}
