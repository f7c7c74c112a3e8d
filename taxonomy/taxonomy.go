// Package taxonomy holds the fixed set of expense categories and their subcategories.
package taxonomy

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a named category with an ordered list of subcategories.
type Category struct {
	Name          string   `json:"name" mapstructure:"name" toml:"name"`
	Subcategories []string `json:"subcategories" mapstructure:"subcategories" toml:"subcategories"`
}

// Taxonomy is an ordered, immutable category to subcategory mapping.
type Taxonomy struct {
	categories []Category
}

// Default returns the reference taxonomy.
func Default() Taxonomy {
	t, _ := New([]Category{
		{Name: "Food", Subcategories: []string{"Groceries", "Dining Out"}},
		{Name: "Transportation", Subcategories: []string{"Fuel", "Public Transport"}},
		{Name: "Housing", Subcategories: []string{"Rent", "Utilities"}},
		{Name: "Entertainment", Subcategories: []string{"Movies", "Concerts"}},
		{Name: "Others", Subcategories: []string{"Shopping", "Miscellaneous"}},
	})
	return t
}

// New builds a taxonomy from the given categories. An empty list yields the
// reference taxonomy.
func New(categories []Category) (Taxonomy, error) {
	if len(categories) == 0 {
		return Default(), nil
	}

	seen := make(map[string]bool, len(categories))
	cs := make([]Category, 0, len(categories))
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return Taxonomy{}, errors.New("category name must not be empty")
		}
		if seen[strings.ToLower(name)] {
			return Taxonomy{}, fmt.Errorf("duplicate category: %s", name)
		}
		seen[strings.ToLower(name)] = true

		if len(c.Subcategories) == 0 {
			return Taxonomy{}, fmt.Errorf("category %s has no subcategories", name)
		}
		subs := make([]string, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			s = strings.TrimSpace(s)
			if s == "" {
				return Taxonomy{}, fmt.Errorf("category %s has an empty subcategory", name)
			}
			if slices.ContainsFunc(subs, func(o string) bool { return strings.EqualFold(o, s) }) {
				return Taxonomy{}, fmt.Errorf("duplicate subcategory %s in category %s", s, name)
			}
			subs = append(subs, s)
		}
		cs = append(cs, Category{Name: name, Subcategories: subs})
	}

	return Taxonomy{categories: cs}, nil
}

// Categories returns a copy of the categories in their configured order.
func (t Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Subcategories: slices.Clone(c.Subcategories)}
	}
	return out
}

// Names returns the category names in order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Subcategories returns the subcategories of the named category, or nil if the
// category is unknown.
func (t Taxonomy) Subcategories(category string) []string {
	for _, c := range t.categories {
		if c.Name == category {
			return slices.Clone(c.Subcategories)
		}
	}
	return nil
}

// Contains reports whether category/subcategory is an exact member.
func (t Taxonomy) Contains(category, subcategory string) bool {
	return slices.Contains(t.Subcategories(category), subcategory)
}

// Resolve maps user input to the canonical category and subcategory names.
// Matching ignores case and surrounding whitespace, so "dining out" resolves to
// "Dining Out".
func (t Taxonomy) Resolve(category, subcategory string) (string, string, error) {
	cat, ok := t.lookupCategory(category)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	want := normalize(subcategory)
	for _, s := range cat.Subcategories {
		if normalize(s) == want {
			return cat.Name, s, nil
		}
	}

	return "", "", fmt.Errorf("%w: %s (valid for %s: %s)",
		ErrUnknownSubcategory, subcategory, cat.Name, strings.Join(cat.Subcategories, ", "))
}

func (t Taxonomy) lookupCategory(name string) (Category, bool) {
	want := normalize(name)
	for _, c := range t.categories {
		if normalize(c.Name) == want {
			return c, true
		}
	}
	return Category{}, false
}

var (
	// ErrUnknownCategory is returned when a category is not part of the taxonomy.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownSubcategory is returned when a subcategory does not belong to its category.
	ErrUnknownSubcategory = errors.New("unknown subcategory")
)

var titleCaser = cases.Title(language.English)

// normalize folds user input to title case so "public TRANSPORT" and
// "Public Transport" compare equal.
func normalize(s string) string {
	return titleCaser.String(strings.Join(strings.Fields(s), " "))
}
