// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// ScopedEmission is one row of the calculation records joined to their factor's scope.
type ScopedEmission struct {
	EmissionsKg     float64
	Scope           Scope
	DatePeriodStart time.Time
}

// ScopeSummary holds per-scope emission totals in kilograms CO2e.
// Every scope is always present; Total is Scope1 + Scope2 + Scope3.
type ScopeSummary struct {
	Scope1 float64
	Scope2 float64
	Scope3 float64
	Total  float64
}

// MonthlyEmission is the emissions total for a calendar month keyed "YYYY-MM".
type MonthlyEmission struct {
	Month            string
	TotalEmissionsKg float64
}
