// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Report is a named snapshot of a user's scope totals over an inclusive date range.
type Report struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	ReportName       string
	StartDate        time.Time
	EndDate          time.Time
	TotalScope1Kg    float64
	TotalScope2Kg    float64
	TotalScope3Kg    float64
	TotalAllScopesKg float64
	GeneratedAt      time.Time
}

// NewReport creates a new Report from a scope summary. The all-scopes total is
// always the sum of the three scope totals.
func NewReport(userID uuid.UUID, name string, startDate, endDate time.Time, summary ScopeSummary) *Report {
	return &Report{
		ID:               uuid.New(),
		UserID:           userID,
		ReportName:       name,
		StartDate:        CalendarDate(startDate),
		EndDate:          CalendarDate(endDate),
		TotalScope1Kg:    summary.Scope1,
		TotalScope2Kg:    summary.Scope2,
		TotalScope3Kg:    summary.Scope3,
		TotalAllScopesKg: summary.Scope1 + summary.Scope2 + summary.Scope3,
		GeneratedAt:      time.Now().UTC(),
	}
}
