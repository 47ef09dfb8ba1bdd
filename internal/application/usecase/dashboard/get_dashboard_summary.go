package dashboard

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// GetDashboardSummaryOutput combines the all-time scope summary with the monthly series.
type GetDashboardSummaryOutput struct {
	ScopeSummary entity.ScopeSummary
	TimeSeries   []entity.MonthlyEmission
}

// GetDashboardSummaryUseCase serves the dashboard landing view.
type GetDashboardSummaryUseCase struct {
	scopes  *SummarizeScopesUseCase
	monthly *MonthlySeriesUseCase
}

// NewGetDashboardSummaryUseCase creates a new GetDashboardSummaryUseCase instance.
func NewGetDashboardSummaryUseCase(scopes *SummarizeScopesUseCase, monthly *MonthlySeriesUseCase) *GetDashboardSummaryUseCase {
	return &GetDashboardSummaryUseCase{
		scopes:  scopes,
		monthly: monthly,
	}
}

// Execute runs both aggregations concurrently and fails if either fails.
func (uc *GetDashboardSummaryUseCase) Execute(ctx context.Context, userID uuid.UUID) (*GetDashboardSummaryOutput, error) {
	var (
		summary *entity.ScopeSummary
		series  []entity.MonthlyEmission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = uc.scopes.Execute(gctx, SummarizeScopesInput{UserID: userID})
		return err
	})
	g.Go(func() error {
		var err error
		series, err = uc.monthly.Execute(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GetDashboardSummaryOutput{
		ScopeSummary: *summary,
		TimeSeries:   series,
	}, nil
}
