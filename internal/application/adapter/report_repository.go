// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ReportRepository defines the interface for report persistence operations.
type ReportRepository interface {
	// Create persists a report in a single transaction.
	Create(ctx context.Context, report *entity.Report) error

	// ListByUser returns a user's reports, most recently generated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error)

	// FindByIDForUser returns a report only when it belongs to userID.
	// Returns ErrReportNotFound otherwise.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Report, error)
}
