package ledger

import (
	"testing"
	"time"

	"github.com/carlmjohnson/be"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	be.NilErr(t, err)
	return d
}

func TestRecordAccumulates(t *testing.T) {
	l := New()
	d := date(t, "05-03-2024")

	l.Record(d, "Food", "Groceries", 25.50)
	l.Record(d, "Food", "Groceries", 10.00)

	be.Equal(t, 1, l.Len())
	amount, ok := l.Amount(d, "Food", "Groceries")
	be.True(t, ok)
	be.Equal(t, 35.50, amount)
}

func TestRecordIgnoresTimeOfDay(t *testing.T) {
	var l Ledger

	morning := time.Date(2024, 3, 5, 8, 0, 0, 0, time.Local)
	evening := time.Date(2024, 3, 5, 21, 30, 0, 0, time.Local)
	l.Record(morning, "Housing", "Rent", 100)
	l.Record(evening, "Housing", "Rent", 50)

	be.Equal(t, 1, l.Len())
	amount, _ := l.Amount(date(t, "05-03-2024"), "Housing", "Rent")
	be.Equal(t, 150.0, amount)
}

func TestRecordDistinctKeys(t *testing.T) {
	l := New()
	d1 := date(t, "05-03-2024")
	d2 := date(t, "06-03-2024")

	l.Record(d1, "Food", "Groceries", 10)
	l.Record(d1, "Food", "Dining Out", 20)
	l.Record(d2, "Food", "Groceries", 30)
	l.Record(d1, "Housing", "Rent", 40)

	be.Equal(t, 4, l.Len())

	entries := l.Entries()
	be.Equal(t, "Groceries", entries[0].Subcategory)
	be.Equal(t, "Dining Out", entries[1].Subcategory)
	be.Equal(t, d2, entries[2].Date)
	be.Equal(t, "Housing", entries[3].Category)
}

func TestRecordAcceptsZeroAndNegative(t *testing.T) {
	l := New()
	d := date(t, "01-01-2024")

	l.Record(d, "Others", "Shopping", 0)
	l.Record(d, "Others", "Shopping", -5)

	amount, ok := l.Amount(d, "Others", "Shopping")
	be.True(t, ok)
	be.Equal(t, -5.0, amount)
}

func TestGroups(t *testing.T) {
	l := New()
	d1 := date(t, "05-03-2024")
	d2 := date(t, "01-03-2024")

	l.Record(d1, "Food", "Groceries", 10)
	l.Record(d2, "Transportation", "Fuel", 40)
	l.Record(d1, "Housing", "Rent", 500)
	l.Record(d1, "Food", "Dining Out", 20)

	groups := l.Groups()
	be.Equal(t, 2, len(groups))

	// dates stay in insertion order, not sorted
	be.Equal(t, d1, groups[0].Date)
	be.Equal(t, d2, groups[1].Date)

	be.Equal(t, 2, len(groups[0].Categories))
	be.Equal(t, "Food", groups[0].Categories[0].Name)
	be.Equal(t, "Housing", groups[0].Categories[1].Name)
	be.AllEqual(t, []SubcategoryAmount{
		{Name: "Groceries", Amount: 10},
		{Name: "Dining Out", Amount: 20},
	}, groups[0].Categories[0].Subcategories)

	be.Equal(t, "Transportation", groups[1].Categories[0].Name)
}

func TestRowsGroupedOrder(t *testing.T) {
	l := New()
	d1 := date(t, "05-03-2024")
	d2 := date(t, "06-03-2024")

	l.Record(d1, "Food", "Groceries", 1)
	l.Record(d2, "Food", "Groceries", 2)
	l.Record(d1, "Housing", "Rent", 3)

	rows := l.Rows()
	be.Equal(t, 3, len(rows))
	be.Equal(t, Entry{Date: d1, Category: "Food", Subcategory: "Groceries", Amount: 1}, rows[0])
	be.Equal(t, Entry{Date: d1, Category: "Housing", Subcategory: "Rent", Amount: 3}, rows[1])
	be.Equal(t, Entry{Date: d2, Category: "Food", Subcategory: "Groceries", Amount: 2}, rows[2])
}

func TestTotalFor(t *testing.T) {
	l := New()
	l.Record(date(t, "15-03-2024"), "Food", "Groceries", 50)
	l.Record(date(t, "20-03-2024"), "Entertainment", "Movies", 30)
	l.Record(date(t, "01-04-2024"), "Housing", "Rent", 700)
	l.Record(date(t, "15-03-2023"), "Food", "Groceries", 99)

	tests := []struct {
		name      string
		monthYear string
		expected  float64
	}{
		{name: "matching month", monthYear: "03-2024", expected: 80},
		{name: "other month", monthYear: "04-2024", expected: 700},
		{name: "no entries", monthYear: "05-2024", expected: 0},
		{name: "same month other year", monthYear: "03-2023", expected: 99},
		{name: "unpadded month", monthYear: "3-2024", expected: 0},
		{name: "garbage", monthYear: "march", expected: 0},
		{name: "empty", monthYear: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.expected, l.TotalFor(tt.monthYear))
		})
	}
}

func TestCategoryTotalsFor(t *testing.T) {
	l := New()
	l.Record(date(t, "15-03-2024"), "Food", "Groceries", 50)
	l.Record(date(t, "16-03-2024"), "Housing", "Rent", 500)
	l.Record(date(t, "20-03-2024"), "Food", "Dining Out", 30)
	l.Record(date(t, "01-04-2024"), "Food", "Groceries", 700)

	be.AllEqual(t, []CategoryTotal{
		{Category: "Food", Amount: 80},
		{Category: "Housing", Amount: 500},
	}, l.CategoryTotalsFor("03-2024"))
	be.Equal(t, 0, len(l.CategoryTotalsFor("05-2024")))
}

func TestReplace(t *testing.T) {
	l := New()
	l.Record(date(t, "15-03-2024"), "Food", "Groceries", 50)

	other := New()
	other.Record(date(t, "16-03-2024"), "Housing", "Rent", 500)
	l.Replace(other)

	be.Equal(t, 1, l.Len())
	_, ok := l.Amount(date(t, "15-03-2024"), "Food", "Groceries")
	be.False(t, ok)
}

func TestMonthKey(t *testing.T) {
	be.Equal(t, "03-2024", MonthKey(date(t, "15-03-2024")))
	be.True(t, IsMonthKey("12-2024"))
	be.False(t, IsMonthKey("13-2024"))
	be.False(t, IsMonthKey("2024-03"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "padded", input: "05-03-2024", expected: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{name: "unpadded", input: "5-3-2024", expected: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{name: "unpadded day only", input: "7-11-2024", expected: time.Date(2024, time.November, 7, 0, 0, 0, 0, time.UTC)},
		{name: "iso", input: "2024-03-05", wantErr: true},
		{name: "day out of range", input: "32-01-2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				be.Nonzero(t, err)
				return
			}
			be.NilErr(t, err)
			be.Equal(t, tt.expected, d)
		})
	}
}

func TestFormatDatePads(t *testing.T) {
	d, err := ParseDate("5-3-2024")
	be.NilErr(t, err)
	be.Equal(t, "05-03-2024", FormatDate(d))
}
