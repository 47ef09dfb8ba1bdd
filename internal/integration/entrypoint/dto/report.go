package dto

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
)

// CreateReportRequest represents the request body for generating a report.
type CreateReportRequest struct {
	ReportName string `json:"report_name" binding:"required,max=200"`
	StartDate  string `json:"start_date" binding:"required,isodate"`
	EndDate    string `json:"end_date" binding:"required,isodate"`
}

// ReportResponse represents a stored report.
type ReportResponse struct {
	ID               string    `json:"id"`
	ReportName       string    `json:"report_name"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	TotalScope1Kg    float64   `json:"total_scope1_kg"`
	TotalScope2Kg    float64   `json:"total_scope2_kg"`
	TotalScope3Kg    float64   `json:"total_scope3_kg"`
	TotalAllScopesKg float64   `json:"total_all_scopes_kg"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// ReportListResponse wraps a user's reports, newest first.
type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
}

// ToReportResponse converts a domain Report to its DTO.
func ToReportResponse(r *entity.Report) ReportResponse {
	return ReportResponse{
		ID:               r.ID.String(),
		ReportName:       r.ReportName,
		StartDate:        r.StartDate.Format(valueobject.DateLayout),
		EndDate:          r.EndDate.Format(valueobject.DateLayout),
		TotalScope1Kg:    r.TotalScope1Kg,
		TotalScope2Kg:    r.TotalScope2Kg,
		TotalScope3Kg:    r.TotalScope3Kg,
		TotalAllScopesKg: r.TotalAllScopesKg,
		GeneratedAt:      r.GeneratedAt,
	}
}

// ToReportListResponse converts a report slice to its DTO.
func ToReportListResponse(reports []*entity.Report) ReportListResponse {
	out := make([]ReportResponse, len(reports))
	for i, r := range reports {
		out[i] = ToReportResponse(r)
	}
	return ReportListResponse{Reports: out}
}
