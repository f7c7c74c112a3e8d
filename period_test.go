package main

import (
	"testing"
	"time"

	"github.com/carlmjohnson/be"
)

func TestPeriodString(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected string
	}{
		{
			name:     "basic period",
			start:    time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
			expected: "01-12-2023 - 31-12-2023",
		},
		{
			name:     "cross year period",
			start:    time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			expected: "15-12-2023 - 15-01-2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Period{
				start: tt.start,
				end:   tt.end,
			}
			be.Equal(t, tt.expected, p.String())
		})
	}
}

func TestPeriodSetMonth(t *testing.T) {
	tests := []struct {
		name        string
		current     time.Time
		expectStart time.Time
		expectEnd   time.Time
	}{
		{
			name:        "mid month",
			current:     time.Date(2023, 12, 15, 10, 30, 0, 0, time.UTC),
			expectStart: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:        "start of month",
			current:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expectStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:        "leap february",
			current:     time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			expectStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Period{}
			p.setMonth(tt.current)

			be.Equal(t, tt.expectStart, p.start)
			be.Equal(t, tt.expectEnd, p.end)
		})
	}
}

func TestMonthPeriod(t *testing.T) {
	p, ok := monthPeriod("03-2024")
	be.True(t, ok)
	be.Equal(t, "01-03-2024", p.startDate())
	be.Equal(t, "31-03-2024", p.endDate())

	for _, bad := range []string{"", "2024-03", "13-2024", "3-2024x"} {
		_, ok := monthPeriod(bad)
		be.False(t, ok)
	}
}
