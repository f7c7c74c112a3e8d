package ledger

import "time"

// DateGroup is every category recorded on one date.
type DateGroup struct {
	Date       time.Time
	Categories []CategoryGroup
}

// CategoryGroup is every subcategory recorded for one category on one date.
type CategoryGroup struct {
	Name          string
	Subcategories []SubcategoryAmount
}

// SubcategoryAmount is a single leaf of the grouping.
type SubcategoryAmount struct {
	Name   string
	Amount float64
}

// Groups nests the entries by date, then category, then subcategory. Each level
// keeps the order in which its members were first recorded.
func (l *Ledger) Groups() []DateGroup {
	var groups []DateGroup
	datePos := make(map[time.Time]int)
	catPos := make(map[Key]int) // Subcategory left empty

	for _, e := range l.entries {
		di, ok := datePos[e.Date]
		if !ok {
			di = len(groups)
			datePos[e.Date] = di
			groups = append(groups, DateGroup{Date: e.Date})
		}
		dg := &groups[di]

		ck := Key{Date: e.Date, Category: e.Category}
		ci, ok := catPos[ck]
		if !ok {
			ci = len(dg.Categories)
			catPos[ck] = ci
			dg.Categories = append(dg.Categories, CategoryGroup{Name: e.Category})
		}

		cg := &dg.Categories[ci]
		cg.Subcategories = append(cg.Subcategories, SubcategoryAmount{Name: e.Subcategory, Amount: e.Amount})
	}

	return groups
}
