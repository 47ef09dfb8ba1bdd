package dto

import (
	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ScopeRangeQuery is the optional date range of GET /dashboard/scopes.
// Both bounds must be given together.
type ScopeRangeQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,isodate"`
	EndDate   string `form:"end_date" binding:"omitempty,isodate"`
}

// ScopeSummaryResponse holds per-scope totals in kilograms CO2e.
type ScopeSummaryResponse struct {
	Scope1 float64 `json:"scope1"`
	Scope2 float64 `json:"scope2"`
	Scope3 float64 `json:"scope3"`
	Total  float64 `json:"total"`
}

// MonthlyEmissionResponse is one point of the monthly series.
type MonthlyEmissionResponse struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// MonthlySeriesResponse wraps the monthly series.
type MonthlySeriesResponse struct {
	Series []MonthlyEmissionResponse `json:"series"`
}

// DashboardSummaryResponse combines the all-time scope summary and monthly series.
type DashboardSummaryResponse struct {
	ScopeSummary ScopeSummaryResponse      `json:"scope_summary"`
	TimeSeries   []MonthlyEmissionResponse `json:"time_series"`
}

// ToScopeSummaryResponse converts a domain ScopeSummary to its DTO.
func ToScopeSummaryResponse(s *entity.ScopeSummary) ScopeSummaryResponse {
	return ScopeSummaryResponse{
		Scope1: s.Scope1,
		Scope2: s.Scope2,
		Scope3: s.Scope3,
		Total:  s.Total,
	}
}

// ToMonthlySeries converts a monthly series to its DTO. The result is never nil.
func ToMonthlySeries(series []entity.MonthlyEmission) []MonthlyEmissionResponse {
	out := make([]MonthlyEmissionResponse, len(series))
	for i, m := range series {
		out[i] = MonthlyEmissionResponse{Month: m.Month, Total: m.TotalEmissionsKg}
	}
	return out
}

// ToDashboardSummaryResponse converts a GetDashboardSummaryOutput to its DTO.
func ToDashboardSummaryResponse(out *dashboard.GetDashboardSummaryOutput) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		ScopeSummary: ToScopeSummaryResponse(&out.ScopeSummary),
		TimeSeries:   ToMonthlySeries(out.TimeSeries),
	}
}
