package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// DashboardController serves the aggregated emission views.
type DashboardController struct {
	summaryUseCase *dashboard.GetDashboardSummaryUseCase
	scopesUseCase  *dashboard.SummarizeScopesUseCase
	monthlyUseCase *dashboard.MonthlySeriesUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	summaryUseCase *dashboard.GetDashboardSummaryUseCase,
	scopesUseCase *dashboard.SummarizeScopesUseCase,
	monthlyUseCase *dashboard.MonthlySeriesUseCase,
) *DashboardController {
	return &DashboardController{
		summaryUseCase: summaryUseCase,
		scopesUseCase:  scopesUseCase,
		monthlyUseCase: monthlyUseCase,
	}
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	out, err := c.summaryUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(out))
}

// Scopes handles GET /dashboard/scopes requests. Without dates the summary is all-time.
func (c *DashboardController) Scopes(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.ScopeRangeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidInput))
		return
	}

	input := dashboard.SummarizeScopesInput{UserID: userID}
	if query.StartDate != "" || query.EndDate != "" {
		dateRange, err := valueobject.ParseDateRange(query.StartDate, query.EndDate)
		if err != nil {
			respondError(ctx, err)
			return
		}
		input.DateRange = dateRange
	}

	summary, err := c.scopesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToScopeSummaryResponse(summary))
}

// Monthly handles GET /dashboard/monthly requests.
func (c *DashboardController) Monthly(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	series, err := c.monthlyUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MonthlySeriesResponse{Series: dto.ToMonthlySeries(series)})
}
