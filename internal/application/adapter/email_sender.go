// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueReportReadyEmail queues a notification that a report has been generated.
	QueueReportReadyEmail(ctx context.Context, input QueueReportReadyInput) error
}

// QueueReportReadyInput represents the input for queueing a report-ready email.
type QueueReportReadyInput struct {
	UserEmail    string
	UserName     string
	ReportID     string
	ReportName   string
	StartDate    string
	EndDate      string
	TotalKg      float64
	Scope1Kg     float64
	Scope2Kg     float64
	Scope3Kg     float64
	DashboardURL string
}
