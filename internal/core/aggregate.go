package core

import (
	"sort"
	"time"
)

type (
	// DayGroup is the slice of expenses sharing one calendar date.
	DayGroup struct {
		Date     Date      `json:"date"`
		Expenses []Expense `json:"expenses"`
	}

	// CategoryAmount is the summed amount for one category.
	CategoryAmount struct {
		Category Category `json:"category"`
		Amount   Money    `json:"amount"`
	}

	// MonthSummary is the derived view of one month's expenses.
	MonthSummary struct {
		Year       int              `json:"year"`
		Month      time.Month       `json:"month"`
		Total      Money            `json:"total"`
		ByCategory []CategoryAmount `json:"by_category"`
		ByDate     []DayGroup       `json:"by_date"`
	}
)

// Total sums the amounts of all expenses. Empty input yields zero.
func Total(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// GroupByDate partitions expenses by exact date, newest group first. Within
// a group the input's relative order is preserved; no record is lost or
// duplicated.
func GroupByDate(expenses []Expense) []DayGroup {
	byDate := make(map[string]int)
	var groups []DayGroup
	for _, e := range expenses {
		key := e.Date.String()
		idx, ok := byDate[key]
		if !ok {
			idx = len(groups)
			byDate[key] = idx
			groups = append(groups, DayGroup{Date: e.Date})
		}
		groups[idx].Expenses = append(groups[idx].Expenses, e)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups
}

// GroupByCategory sums amounts per distinct category in first-occurrence
// order. Categories outside the known set are summed under their literal
// value; membership is a form-layer concern, not this function's.
func GroupByCategory(expenses []Expense) []CategoryAmount {
	byCat := make(map[Category]int)
	var sums []CategoryAmount
	for _, e := range expenses {
		idx, ok := byCat[e.Category]
		if !ok {
			idx = len(sums)
			byCat[e.Category] = idx
			sums = append(sums, CategoryAmount{Category: e.Category})
		}
		sums[idx].Amount = sums[idx].Amount.Add(e.Amount)
	}
	return sums
}

// Summarize derives the full month view in one pass over the list.
func Summarize(year int, month time.Month, expenses []Expense) MonthSummary {
	return MonthSummary{
		Year:       year,
		Month:      month,
		Total:      Total(expenses),
		ByCategory: GroupByCategory(expenses),
		ByDate:     GroupByDate(expenses),
	}
}
