package main

import (
	"fmt"
	"time"

	"github.com/Rshep3087/spendlog/ledger"
)

// Period is the span of days a savings figure covers.
type Period struct {
	start time.Time
	end   time.Time
}

func (p *Period) String() string {
	return fmt.Sprintf("%s - %s", p.startDate(), p.endDate())
}

func (p *Period) startDate() string {
	return ledger.FormatDate(p.start)
}

func (p *Period) endDate() string {
	return ledger.FormatDate(p.end)
}

// setMonth sets the period to the calendar month containing current.
func (p *Period) setMonth(current time.Time) {
	p.start = time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, current.Location())
	p.end = time.Date(current.Year(), current.Month()+1, 1, 0, 0, 0, 0, current.Location()).Add(-time.Second)
}

// monthPeriod returns the period for an MM-YYYY month key. It reports false
// when monthYear is not a valid key.
func monthPeriod(monthYear string) (Period, bool) {
	month, err := time.Parse(ledger.MonthLayout, monthYear)
	if err != nil {
		return Period{}, false
	}

	var p Period
	p.setMonth(month)
	return p, true
}
