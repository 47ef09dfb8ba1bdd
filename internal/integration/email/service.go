// Package email queues and delivers notification emails via Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// Service queues notification emails for the worker to deliver.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// QueueReportReadyEmail queues the notification sent after a report is generated.
func (s *Service) QueueReportReadyEmail(ctx context.Context, input adapter.QueueReportReadyInput) error {
	dashboardURL := input.DashboardURL
	if dashboardURL == "" {
		dashboardURL = fmt.Sprintf("%s/reports/%s", s.appBaseURL, input.ReportID)
	}

	job := entity.NewEmailJob(
		entity.TemplateReportReady,
		input.UserEmail,
		input.UserName,
		fmt.Sprintf("Your emissions report %q is ready", input.ReportName),
		map[string]any{
			"user_name":     input.UserName,
			"report_id":     input.ReportID,
			"report_name":   input.ReportName,
			"start_date":    input.StartDate,
			"end_date":      input.EndDate,
			"total_kg":      input.TotalKg,
			"scope1_kg":     input.Scope1Kg,
			"scope2_kg":     input.Scope2Kg,
			"scope3_kg":     input.Scope3Kg,
			"dashboard_url": dashboardURL,
		},
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue report ready email",
			err,
		)
	}

	return nil
}

var _ adapter.EmailService = (*Service)(nil)
