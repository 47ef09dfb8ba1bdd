package report

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// GetReportUseCase retrieves one report owned by the caller.
type GetReportUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewGetReportUseCase creates a new GetReportUseCase instance.
func NewGetReportUseCase(reportRepo adapter.ReportRepository) *GetReportUseCase {
	return &GetReportUseCase{reportRepo: reportRepo}
}

// Execute returns the report. A report owned by someone else is reported as not found.
func (uc *GetReportUseCase) Execute(ctx context.Context, userID, reportID uuid.UUID) (*entity.Report, error) {
	report, err := uc.reportRepo.FindByIDForUser(ctx, reportID, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReportNotFound) {
			return nil, domainerror.NewEmissionError(
				domainerror.ErrCodeReportNotFound,
				"report not found",
				domainerror.ErrReportNotFound,
			)
		}
		return nil, domainerror.NewPersistenceError("failed to load report", err)
	}
	return report, nil
}
