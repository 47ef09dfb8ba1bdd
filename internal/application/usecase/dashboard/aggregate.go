// Package dashboard contains the emission aggregation use cases.
package dashboard

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
)

// countable reports whether a row takes part in aggregation. Rows with an
// unknown scope or a non-finite amount are skipped by every aggregate.
func countable(row entity.ScopedEmission) bool {
	return row.Scope.IsValid() && !math.IsNaN(row.EmissionsKg) && !math.IsInf(row.EmissionsKg, 0)
}

// SumByScope groups rows by scope in a single pass. Every scope is present in
// the result and Total is the sum of the three scope totals.
func SumByScope(rows []entity.ScopedEmission) entity.ScopeSummary {
	sums := make(map[entity.Scope]decimal.Decimal, len(entity.Scopes))
	for _, row := range rows {
		if !countable(row) {
			continue
		}
		sums[row.Scope] = sums[row.Scope].Add(decimal.NewFromFloat(row.EmissionsKg))
	}

	summary := entity.ScopeSummary{
		Scope1: sums[entity.Scope1].InexactFloat64(),
		Scope2: sums[entity.Scope2].InexactFloat64(),
		Scope3: sums[entity.Scope3].InexactFloat64(),
	}
	summary.Total = summary.Scope1 + summary.Scope2 + summary.Scope3
	return summary
}

// SumByMonth groups rows by calendar month. Months without rows are omitted
// and the result is ordered by month ascending.
func SumByMonth(rows []entity.ScopedEmission) []entity.MonthlyEmission {
	sums := make(map[string]decimal.Decimal)
	for _, row := range rows {
		if !countable(row) {
			continue
		}
		key := valueobject.MonthKey(row.DatePeriodStart)
		sums[key] = sums[key].Add(decimal.NewFromFloat(row.EmissionsKg))
	}

	series := make([]entity.MonthlyEmission, 0, len(sums))
	for month, total := range sums {
		series = append(series, entity.MonthlyEmission{
			Month:            month,
			TotalEmissionsKg: total.InexactFloat64(),
		})
	}
	// "YYYY-MM" sorts chronologically as a string.
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})
	return series
}
