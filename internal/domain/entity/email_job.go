package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued notification.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template a job renders with.
type EmailTemplateType string

const (
	TemplateReportReady EmailTemplateType = "report_ready"
)

// DefaultEmailMaxAttempts bounds delivery attempts per job.
const DefaultEmailMaxAttempts = 3

// retryDelays is indexed by the number of attempts already made.
var retryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is a notification waiting in the outbound queue.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]any
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a pending job scheduled for immediate delivery.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]any) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing records that a worker has claimed the job.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful hand-off to the provider.
func (e *EmailJob) MarkSent(resendID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ResendID = resendID
	e.ProcessedAt = &now
}

// MarkFailed counts a failed attempt. The job is rescheduled unless the failure
// is permanent or the attempt budget is spent.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	now := time.Now().UTC()
	e.Attempts++
	e.LastError = err.Error()

	if permanent || !e.CanRetry() {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	delay := retryDelays[len(retryDelays)-1]
	if e.Attempts < len(retryDelays) {
		delay = retryDelays[e.Attempts]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(delay)
}

// CanRetry reports whether another attempt is allowed.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// IsReadyToProcess reports whether the job is pending and due.
func (e *EmailJob) IsReadyToProcess(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.ScheduledAt)
}
