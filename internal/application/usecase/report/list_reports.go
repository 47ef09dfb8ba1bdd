package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// ListReportsUseCase lists a user's reports.
type ListReportsUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewListReportsUseCase creates a new ListReportsUseCase instance.
func NewListReportsUseCase(reportRepo adapter.ReportRepository) *ListReportsUseCase {
	return &ListReportsUseCase{reportRepo: reportRepo}
}

// Execute returns the user's reports, newest first.
func (uc *ListReportsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	reports, err := uc.reportRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domainerror.NewPersistenceError("failed to list reports", err)
	}
	if reports == nil {
		reports = []*entity.Report{}
	}
	return reports, nil
}
