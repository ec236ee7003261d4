package core

import "strings"

// Category labels an expense for aggregation and display. The nine known
// categories form a closed set; anything else is carried through as a
// custom category rather than silently rewritten.
type Category string

const (
	CategoryRent           Category = "Rent"
	CategoryGroceries      Category = "Groceries"
	CategoryUtilities      Category = "Utilities"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryDining         Category = "Dining"
	CategoryShopping       Category = "Shopping"
	CategoryHealth         Category = "Health"
	CategoryOther          Category = "Other"
)

var knownCategories = []Category{
	CategoryRent,
	CategoryGroceries,
	CategoryUtilities,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryDining,
	CategoryShopping,
	CategoryHealth,
	CategoryOther,
}

// Categories returns the known category set in display order.
func Categories() []Category {
	out := make([]Category, len(knownCategories))
	copy(out, knownCategories)
	return out
}

func (c Category) String() string {
	return string(c)
}

// Known reports whether the category is one of the fixed set.
func (c Category) Known() bool {
	for _, k := range knownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory canonicalizes a label to its known category when it matches
// one case-insensitively, and otherwise returns the trimmed literal as a
// custom category.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, k := range knownCategories {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return Category(s)
}
