// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// EmissionFactorRepository defines the interface for emission factor persistence operations.
type EmissionFactorRepository interface {
	// FindByID retrieves a factor by its ID. Returns ErrFactorNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EmissionFactor, error)

	// List retrieves every factor ordered by category, then name.
	List(ctx context.Context) ([]*entity.EmissionFactor, error)

	// Create inserts a new factor.
	Create(ctx context.Context, factor *entity.EmissionFactor) error

	// ReplaceAll swaps the whole catalogue for factors in one transaction.
	ReplaceAll(ctx context.Context, factors []*entity.EmissionFactor) error
}
