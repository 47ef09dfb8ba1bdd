// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserInput is an immutable calculation record: one activity quantity submitted
// by a user together with the emissions derived from it at creation time.
type UserInput struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	FactorID              uuid.UUID
	ActivityValue         float64
	ActivityUnit          string
	DatePeriodStart       time.Time
	CalculatedEmissionsKg float64
	CreatedAt             time.Time
}

// NewUserInput creates a new calculation record. The period start is truncated to a UTC calendar date.
func NewUserInput(userID, factorID uuid.UUID, activityValue float64, activityUnit string, datePeriodStart time.Time, emissionsKg float64) *UserInput {
	return &UserInput{
		ID:                    uuid.New(),
		UserID:                userID,
		FactorID:              factorID,
		ActivityValue:         activityValue,
		ActivityUnit:          activityUnit,
		DatePeriodStart:       CalendarDate(datePeriodStart),
		CalculatedEmissionsKg: emissionsKg,
		CreatedAt:             time.Now().UTC(),
	}
}

// CalendarDate drops the time of day, keeping the date as seen in t's location, at UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
