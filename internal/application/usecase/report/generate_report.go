// Package report contains report generation and retrieval use cases.
package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
)

// GenerateReportInput represents the input for generating a report.
type GenerateReportInput struct {
	UserID     uuid.UUID
	ReportName string
	StartDate  time.Time
	EndDate    time.Time
}

// GenerateReportUseCase snapshots a user's scope totals over a date range.
type GenerateReportUseCase struct {
	summarizer *dashboard.SummarizeScopesUseCase
	reportRepo adapter.ReportRepository
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(summarizer *dashboard.SummarizeScopesUseCase, reportRepo adapter.ReportRepository) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		summarizer: summarizer,
		reportRepo: reportRepo,
	}
}

// Execute aggregates the inclusive range and persists a new report.
// Every call creates a new report, even for identical arguments.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (*entity.Report, error) {
	name := strings.TrimSpace(input.ReportName)
	if name == "" {
		return nil, domainerror.NewInvalidInputError("report_name", "is required")
	}
	if input.StartDate.IsZero() {
		return nil, domainerror.NewInvalidInputError("start_date", "is required")
	}
	if input.EndDate.IsZero() {
		return nil, domainerror.NewInvalidInputError("end_date", "is required")
	}

	dateRange, err := valueobject.NewDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	summary, err := uc.summarizer.Execute(ctx, dashboard.SummarizeScopesInput{
		UserID:    input.UserID,
		DateRange: dateRange,
	})
	if err != nil {
		return nil, err
	}

	report := entity.NewReport(input.UserID, name, dateRange.Start, dateRange.End, *summary)

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		if errors.Is(err, domainerror.ErrPersistenceFailed) {
			return nil, err
		}
		return nil, domainerror.NewPersistenceError("failed to save report", err)
	}

	return report, nil
}
