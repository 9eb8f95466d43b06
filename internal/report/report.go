// Package report contains pure transforms over expense lists: filtering,
// sorting, summary totals, and display formatting. Nothing here touches
// storage.
package report

import (
	"sort"
	"strings"
	"time"

	"spendwise/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Sort keys accepted by SortBy.
const (
	SortDateAsc    = "date_asc"
	SortDateDesc   = "date_desc"
	SortAmountAsc  = "amount_asc"
	SortAmountDesc = "amount_desc"
)

// Summary holds the aggregate figures shown on the dashboard.
type Summary struct {
	Total     float64 `json:"total"`
	ThisMonth float64 `json:"thisMonth"`
	Count     int     `json:"count"`
}

// Filter returns the expenses matching the text query (case-insensitive
// substring on title or description) and the category (exact match).
// Empty arguments match everything.
func Filter(expenses []models.Expense, query, category string) []models.Expense {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Title), query) &&
			!strings.Contains(strings.ToLower(e.Description), query) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SortBy returns a sorted copy of the expenses. An unknown key leaves
// the input order intact.
func SortBy(expenses []models.Expense, key string) []models.Expense {
	out := make([]models.Expense, len(expenses))
	copy(out, expenses)

	switch key {
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	case SortAmountAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount < out[j].Amount })
	case SortAmountDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	}
	return out
}

// Summarize computes the all-time total, the total for the calendar
// month containing now, and the record count. Expenses with unparseable
// dates count toward the all-time total only.
func Summarize(expenses []models.Expense, now time.Time) Summary {
	s := Summary{Count: len(expenses)}
	for _, e := range expenses {
		s.Total += e.Amount
		d, err := ParseDate(e.Date)
		if err != nil {
			continue
		}
		if d.Year() == now.Year() && d.Month() == now.Month() {
			s.ThisMonth += e.Amount
		}
	}
	return s
}

// ParseDate parses a yyyy-mm-dd calendar date, rejecting anything that
// does not round-trip (e.g. 2024-02-30).
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount as an Indian-rupee currency string with
// en-IN digit grouping, e.g. ₹1,23,456.50.
func FormatINR(amount float64) string {
	return inr.Sprintf("₹%.2f", amount)
}
