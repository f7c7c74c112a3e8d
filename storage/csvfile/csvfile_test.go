package csvfile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	"github.com/spf13/afero"

	"github.com/Rshep3087/spendlog/ledger"
	"github.com/Rshep3087/spendlog/storage"
)

const (
	budgetPath   = "/data/budget.csv"
	expensesPath = "/data/expenses.csv"
)

func newTestStore(t *testing.T, files map[string]string) (*Store, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		be.NilErr(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return New(fsys, budgetPath, expensesPath), fsys
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ledger.ParseDate(s)
	be.NilErr(t, err)
	return d
}

func TestLoadBudget(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expected    float64
		notFound    bool
		noRows      bool
		expectedErr string
	}{
		{
			name:     "single row",
			content:  "Monthly Budget\n500\n",
			expected: 500,
		},
		{
			name:     "last row wins",
			content:  "Monthly Budget\n500\n750.25\n300\n",
			expected: 300,
		},
		{
			name:     "extra columns",
			content:  "Note,Monthly Budget\nrent month,1200.5\n",
			expected: 1200.5,
		},
		{
			name:    "header only",
			content: "Monthly Budget\n",
			noRows:  true,
		},
		{
			name:    "empty file",
			content: "",
			noRows:  true,
		},
		{
			name:        "non numeric",
			content:     "Monthly Budget\nlots\n",
			expectedErr: `/data/budget.csv: row 2: column "Monthly Budget": invalid value "lots"`,
		},
		{
			name:        "missing column",
			content:     "Budget\n500\n",
			expectedErr: `/data/budget.csv: row 1: missing column "Monthly Budget"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, map[string]string{budgetPath: tt.content})

			amount, err := s.LoadBudget(context.Background())
			switch {
			case tt.notFound:
				be.True(t, errors.Is(err, storage.ErrNotFound))
			case tt.noRows:
				be.True(t, errors.Is(err, storage.ErrNoRows))
				be.False(t, errors.Is(err, storage.ErrNotFound))
			case tt.expectedErr != "":
				be.Nonzero(t, err)
				be.In(t, tt.expectedErr, err.Error())
			default:
				be.NilErr(t, err)
				be.Equal(t, tt.expected, amount)
			}
		})
	}
}

func TestLoadBudgetMissingFile(t *testing.T) {
	s, _ := newTestStore(t, nil)

	amount, err := s.LoadBudget(context.Background())
	be.True(t, errors.Is(err, storage.ErrNotFound))
	be.Equal(t, 0.0, amount)
}

func TestSaveBudget(t *testing.T) {
	s, fsys := newTestStore(t, map[string]string{budgetPath: "Monthly Budget\n1\n2\n"})

	be.NilErr(t, s.SaveBudget(context.Background(), 650.5))

	data, err := afero.ReadFile(fsys, budgetPath)
	be.NilErr(t, err)
	be.Equal(t, "Monthly Budget\n650.5\n", string(data))

	amount, err := s.LoadBudget(context.Background())
	be.NilErr(t, err)
	be.Equal(t, 650.5, amount)
}

func TestLoadLedger(t *testing.T) {
	content := strings.Join([]string{
		"Date,Category,Subcategory,Amount",
		"05-03-2024,Food,Groceries,25.5",
		"05-03-2024,Food,Groceries,10",
		"05-03-2024,Housing,Rent,700",
		"06-03-2024,Food,Dining Out,42.75",
		"6-3-2024,Food,Dining Out,7.25",
		"1-12-2024,Utilities,Internet,60",
		"",
	}, "\n")
	s, _ := newTestStore(t, map[string]string{expensesPath: content})

	l := ledger.New()
	be.NilErr(t, s.LoadLedger(context.Background(), l))

	be.Equal(t, 4, l.Len())
	amount, ok := l.Amount(mustDate(t, "05-03-2024"), "Food", "Groceries")
	be.True(t, ok)
	be.Equal(t, 35.5, amount)
	// unpadded dates land on the same key as their padded form
	amount, _ = l.Amount(mustDate(t, "06-03-2024"), "Food", "Dining Out")
	be.Equal(t, 50.0, amount)
	amount, ok = l.Amount(mustDate(t, "01-12-2024"), "Utilities", "Internet")
	be.True(t, ok)
	be.Equal(t, 60.0, amount)
}

func TestLoadLedgerAccumulatesIntoExisting(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{
		expensesPath: "Date,Category,Subcategory,Amount\n05-03-2024,Food,Groceries,25\n",
	})

	l := ledger.New()
	l.Record(mustDate(t, "05-03-2024"), "Food", "Groceries", 5)
	be.NilErr(t, s.LoadLedger(context.Background(), l))

	amount, _ := l.Amount(mustDate(t, "05-03-2024"), "Food", "Groceries")
	be.Equal(t, 30.0, amount)
}

func TestLoadLedgerColumnOrder(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{
		expensesPath: "Amount,Subcategory,Category,Date\n12.5,Fuel,Transportation,01-02-2024\n",
	})

	l := ledger.New()
	be.NilErr(t, s.LoadLedger(context.Background(), l))

	amount, ok := l.Amount(mustDate(t, "01-02-2024"), "Transportation", "Fuel")
	be.True(t, ok)
	be.Equal(t, 12.5, amount)
}

func TestLoadLedgerMissingFile(t *testing.T) {
	s, _ := newTestStore(t, nil)

	l := ledger.New()
	err := s.LoadLedger(context.Background(), l)

	be.True(t, errors.Is(err, storage.ErrNotFound))
	be.Equal(t, 0, l.Len())
}

func TestLoadLedgerEmptyFile(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{expensesPath: ""})

	l := ledger.New()
	be.NilErr(t, s.LoadLedger(context.Background(), l))
	be.Equal(t, 0, l.Len())
}

func TestLoadLedgerMalformed(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedRow int
		expectedCol string
	}{
		{
			name:        "non numeric amount",
			content:     "Date,Category,Subcategory,Amount\n05-03-2024,Food,Groceries,10\n06-03-2024,Food,Groceries,ten\n",
			expectedRow: 3,
			expectedCol: AmountColumn,
		},
		{
			name:        "iso date",
			content:     "Date,Category,Subcategory,Amount\n2024-03-05,Food,Groceries,10\n",
			expectedRow: 2,
			expectedCol: DateColumn,
		},
		{
			name:        "short row",
			content:     "Date,Category,Subcategory,Amount\n05-03-2024,Food,Groceries\n",
			expectedRow: 2,
			expectedCol: AmountColumn,
		},
		{
			name:        "missing column",
			content:     "Date,Category,Amount\n05-03-2024,Food,10\n",
			expectedRow: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, map[string]string{expensesPath: tt.content})

			l := ledger.New()
			err := s.LoadLedger(context.Background(), l)

			var pe *storage.ParseError
			be.True(t, errors.As(err, &pe))
			be.Equal(t, tt.expectedRow, pe.Row)
			be.Equal(t, tt.expectedCol, pe.Column)
			// a failed load leaves the ledger untouched
			be.Equal(t, 0, l.Len())
		})
	}
}

func TestSaveLedger(t *testing.T) {
	s, fsys := newTestStore(t, nil)

	l := ledger.New()
	l.Record(mustDate(t, "05-03-2024"), "Food", "Groceries", 25.5)
	l.Record(mustDate(t, "06-03-2024"), "Housing", "Rent", 700)
	l.Record(mustDate(t, "05-03-2024"), "Food", "Groceries", 10)
	l.Record(mustDate(t, "05-03-2024"), "Entertainment", "Movies", 12.25)

	be.NilErr(t, s.SaveLedger(context.Background(), l))

	data, err := afero.ReadFile(fsys, expensesPath)
	be.NilErr(t, err)
	be.Equal(t, strings.Join([]string{
		"Date,Category,Subcategory,Amount",
		"05-03-2024,Food,Groceries,35.5",
		"05-03-2024,Entertainment,Movies,12.25",
		"06-03-2024,Housing,Rent,700",
		"",
	}, "\n"), string(data))
}

func TestSaveLedgerLeavesNoTempFiles(t *testing.T) {
	s, fsys := newTestStore(t, nil)

	l := ledger.New()
	l.Record(mustDate(t, "05-03-2024"), "Food", "Groceries", 1)
	be.NilErr(t, s.SaveLedger(context.Background(), l))
	be.NilErr(t, s.SaveLedger(context.Background(), l))

	entries, err := afero.ReadDir(fsys, "/data")
	be.NilErr(t, err)
	be.Equal(t, 1, len(entries))
	be.Equal(t, "expenses.csv", entries[0].Name())
}

func TestSaveLedgerIdempotent(t *testing.T) {
	s, fsys := newTestStore(t, nil)

	l := ledger.New()
	l.Record(mustDate(t, "05-03-2024"), "Food", "Groceries", 0.1)
	l.Record(mustDate(t, "05-03-2024"), "Food", "Groceries", 0.2)
	l.Record(mustDate(t, "07-03-2024"), "Others", "Shopping", 19.99)

	be.NilErr(t, s.SaveLedger(context.Background(), l))
	first, err := afero.ReadFile(fsys, expensesPath)
	be.NilErr(t, err)

	be.NilErr(t, s.SaveLedger(context.Background(), l))
	second, err := afero.ReadFile(fsys, expensesPath)
	be.NilErr(t, err)

	be.Equal(t, string(first), string(second))
}

func TestRoundTrip(t *testing.T) {
	s, _ := newTestStore(t, nil)

	original := ledger.New()
	original.Record(mustDate(t, "15-03-2024"), "Food", "Groceries", 50)
	original.Record(mustDate(t, "20-03-2024"), "Transportation", "Public Transport", 2.4)
	original.Record(mustDate(t, "15-03-2024"), "Food", "Dining Out", 1.0/3.0)
	original.Record(mustDate(t, "15-03-2024"), "Food", "Groceries", 0.1)

	be.NilErr(t, s.SaveLedger(context.Background(), original))

	loaded := ledger.New()
	be.NilErr(t, s.LoadLedger(context.Background(), loaded))

	be.Equal(t, original.Len(), loaded.Len())
	for _, e := range original.Entries() {
		amount, ok := loaded.Amount(e.Date, e.Category, e.Subcategory)
		be.True(t, ok)
		be.Equal(t, e.Amount, amount)
	}
}
