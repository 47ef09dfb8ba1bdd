// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
)

// UserInputListResult holds one page of calculation records.
type UserInputListResult struct {
	Inputs     []*entity.UserInput
	TotalItems int64
}

// UserInputRepository defines the interface for calculation record persistence.
type UserInputRepository interface {
	// Create persists a calculation record in a single transaction.
	Create(ctx context.Context, input *entity.UserInput) error

	// ListByUser returns a page of a user's records, newest period first.
	ListByUser(ctx context.Context, userID uuid.UUID, page, perPage int) (*UserInputListResult, error)

	// FindScopedEmissions returns the user's records joined to their factor's scope.
	// A nil date range means all time.
	FindScopedEmissions(ctx context.Context, userID uuid.UUID, dateRange *valueobject.DateRange) ([]entity.ScopedEmission, error)
}
