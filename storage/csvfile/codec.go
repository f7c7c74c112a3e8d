package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rshep3087/spendlog/ledger"
	"github.com/Rshep3087/spendlog/storage"
)

// Column names of the budget and expense files.
const (
	BudgetColumn      = "Monthly Budget"
	DateColumn        = "Date"
	CategoryColumn    = "Category"
	SubcategoryColumn = "Subcategory"
	AmountColumn      = "Amount"
)

var expenseHeader = []string{DateColumn, CategoryColumn, SubcategoryColumn, AmountColumn}

// ReadBudget parses a budget table and returns the value of its last row along
// with the number of data rows. An empty file or a table without data rows
// yields zero rows and no error.
func ReadBudget(r io.Reader, source string) (float64, int, error) {
	cr := newReader(r)

	cols, err := readHeader(cr, source, BudgetColumn)
	if errors.Is(err, errEmpty) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}

	var amount float64
	rows := 0
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, 0, &storage.ParseError{Source: source, Row: row, Err: err}
		}

		// each row overwrites the previous value
		amount, err = parseAmount(record, cols[BudgetColumn], source, row, BudgetColumn)
		if err != nil {
			return 0, 0, err
		}
		rows++
	}

	return amount, rows, nil
}

// WriteBudget writes a one-row budget table.
func WriteBudget(w io.Writer, amount float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{BudgetColumn}); err != nil {
		return err
	}
	if err := cw.Write([]string{formatAmount(amount)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// ReadLedger parses an expense table and accumulates its rows into l. Rows
// sharing a date, category and subcategory are summed. An empty file adds
// nothing. If any row fails to parse, l is not modified.
func ReadLedger(r io.Reader, source string, l *ledger.Ledger) error {
	cr := newReader(r)

	cols, err := readHeader(cr, source, expenseHeader...)
	if errors.Is(err, errEmpty) {
		return nil
	}
	if err != nil {
		return err
	}

	parsed := ledger.New()
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &storage.ParseError{Source: source, Row: row, Err: err}
		}

		dateValue, err := field(record, cols[DateColumn], source, row, DateColumn)
		if err != nil {
			return err
		}
		date, err := ledger.ParseDate(dateValue)
		if err != nil {
			return &storage.ParseError{Source: source, Row: row, Column: DateColumn, Value: dateValue, Err: err}
		}

		category, err := field(record, cols[CategoryColumn], source, row, CategoryColumn)
		if err != nil {
			return err
		}
		subcategory, err := field(record, cols[SubcategoryColumn], source, row, SubcategoryColumn)
		if err != nil {
			return err
		}

		amount, err := parseAmount(record, cols[AmountColumn], source, row, AmountColumn)
		if err != nil {
			return err
		}

		parsed.Record(date, category, subcategory, amount)
	}

	for _, e := range parsed.Entries() {
		l.Record(e.Date, e.Category, e.Subcategory, e.Amount)
	}

	return nil
}

// WriteLedger writes the header followed by one row per ledger entry, grouped
// by date, then category, then subcategory.
func WriteLedger(w io.Writer, l *ledger.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(expenseHeader); err != nil {
		return err
	}

	for _, e := range l.Rows() {
		if err := cw.Write([]string{
			ledger.FormatDate(e.Date),
			e.Category,
			e.Subcategory,
			formatAmount(e.Amount),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr
}

// errEmpty is returned by readHeader for a file with no content at all.
var errEmpty = errors.New("empty file")

// readHeader reads the header row and returns the index of each required column.
func readHeader(cr *csv.Reader, source string, required ...string) (map[string]int, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errEmpty
	}
	if err != nil {
		return nil, &storage.ParseError{Source: source, Row: 1, Err: err}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		cols[strings.TrimSpace(name)] = i
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, &storage.ParseError{Source: source, Row: 1, Err: fmt.Errorf("missing column %q", name)}
		}
	}

	return cols, nil
}

func field(record []string, idx int, source string, row int, column string) (string, error) {
	if idx >= len(record) {
		return "", &storage.ParseError{Source: source, Row: row, Column: column, Err: errors.New("missing value")}
	}
	return record[idx], nil
}

func parseAmount(record []string, idx int, source string, row int, column string) (float64, error) {
	value, err := field(record, idx, source, row, column)
	if err != nil {
		return 0, err
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &storage.ParseError{Source: source, Row: row, Column: column, Value: value, Err: err}
	}
	return amount, nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
