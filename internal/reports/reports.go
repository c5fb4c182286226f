// Package reports implements the read-time rollups over a fetched set of
// transactions: dashboard totals, budget spending, monthly trends and the
// category distribution.
//
// All functions are pure folds over slices that have already been read
// from the database, they do not query anything themselves.
package reports

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Totals are the dashboard sums over a set of transactions.
type Totals struct {
	Income   decimal.Decimal `json:"income" example:"2500"`
	Expenses decimal.Decimal `json:"expenses" example:"1811.35"`
	Balance  decimal.Decimal `json:"balance" example:"688.65"`
}

// Sum folds the transactions into income, expense and balance sums.
func Sum(transactions []models.Transaction) Totals {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, t := range transactions {
		if t.Type == models.TransactionIncome {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount)
		}
	}

	return Totals{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// BudgetSpent returns the sum of all expense amounts with a date inside the
// budget period. When the budget is scoped to a category, only transactions
// of that category count; an unscoped budget matches all of them.
//
// The period is inclusive on both ends and compared at day granularity.
func BudgetSpent(budget models.Budget, transactions []models.Transaction) decimal.Decimal {
	spent := decimal.Zero
	start := dateOf(budget.StartDate)
	end := dateOf(budget.EndDate)

	for _, t := range transactions {
		if t.Type != models.TransactionExpense {
			continue
		}

		date := dateOf(t.Date)
		if date.Before(start) || date.After(end) {
			continue
		}

		if budget.CategoryID != nil && !categoryMatches(t.CategoryID, *budget.CategoryID) {
			continue
		}

		spent = spent.Add(t.Amount)
	}

	return spent
}

// TrendEntry is the income and expense sum of one calendar month.
type TrendEntry struct {
	Month    types.Month     `json:"month" example:"2024-03-01T00:00:00Z"`
	Income   decimal.Decimal `json:"income" example:"2500"`
	Expenses decimal.Decimal `json:"expenses" example:"1811.35"`
}

// MonthlyTrend returns one entry for every calendar month from from to to,
// in order. Months without transactions are zero-filled, so the length of
// the result only depends on the range.
func MonthlyTrend(from, to types.Month, transactions []models.Transaction) []TrendEntry {
	entries := make([]TrendEntry, 0)
	index := make(map[types.Month]int)

	for month := from; !month.After(to); month = month.AddDate(0, 1) {
		index[month] = len(entries)
		entries = append(entries, TrendEntry{
			Month:    month,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		})
	}

	for _, t := range transactions {
		i, ok := index[types.MonthOf(t.Date.In(time.UTC))]
		if !ok {
			continue
		}

		if t.Type == models.TransactionIncome {
			entries[i].Income = entries[i].Income.Add(t.Amount)
		} else {
			entries[i].Expenses = entries[i].Expenses.Add(t.Amount)
		}
	}

	return entries
}

// CategorySum is one bucket of the category distribution.
type CategorySum struct {
	Name  string          `json:"name" example:"Groceries"`
	Color string          `json:"color" example:"#22c55e"`
	Sum   decimal.Decimal `json:"sum" example:"421.12"`
}

// UncategorizedBucket collects transactions without a category.
const UncategorizedBucket = "Uncategorized"

// CategoryDistribution groups the transactions by category name, summing
// the amount per bucket. Transactions without a category (or whose category
// is not in the list) fall into the UncategorizedBucket. The result is
// sorted descending by sum, ties broken by name.
func CategoryDistribution(transactions []models.Transaction, categories []models.Category) []CategorySum {
	byID := make(map[uuid.UUID]models.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	sums := make(map[string]*CategorySum)
	for _, t := range transactions {
		name := UncategorizedBucket
		color := ""

		if t.CategoryID != nil {
			if category, ok := byID[*t.CategoryID]; ok {
				name = category.Name
				color = category.Color
			}
		}

		bucket, ok := sums[name]
		if !ok {
			bucket = &CategorySum{Name: name, Color: color, Sum: decimal.Zero}
			sums[name] = bucket
		}
		bucket.Sum = bucket.Sum.Add(t.Amount)
	}

	distribution := make([]CategorySum, 0, len(sums))
	for _, bucket := range sums {
		distribution = append(distribution, *bucket)
	}

	sort.Slice(distribution, func(i, j int) bool {
		if !distribution[i].Sum.Equal(distribution[j].Sum) {
			return distribution[i].Sum.GreaterThan(distribution[j].Sum)
		}
		return distribution[i].Name < distribution[j].Name
	})

	return distribution
}

// Recent returns the first n transactions of the date-descending set.
func Recent(transactions []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

func categoryMatches(id *uuid.UUID, scope uuid.UUID) bool {
	return id != nil && *id == scope
}

// dateOf truncates a timestamp to its day in UTC.
func dateOf(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
