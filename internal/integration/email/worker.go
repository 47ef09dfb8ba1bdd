package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/email/templates"
)

// Worker drains the email queue.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
	retention    int
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// RetentionDays is how long sent jobs are kept. Zero disables cleanup.
	RetentionDays int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:  5 * time.Second,
		BatchSize:     10,
		RetentionDays: 30,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		retention:    config.RetentionDays,
	}
}

// Start runs the poll loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	cleanup := time.NewTicker(time.Hour)
	defer cleanup.Stop()

	w.ProcessNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.ProcessNow(ctx)
		case <-cleanup.C:
			w.purgeSent(ctx)
		}
	}
}

// ProcessNow claims and delivers one batch. It returns the number of jobs handled.
func (w *Worker) ProcessNow(ctx context.Context) int {
	jobs, err := w.queue.ClaimPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to claim pending email jobs", "error", err)
		return 0
	}

	for i, job := range jobs {
		if ctx.Err() != nil {
			return i
		}
		w.processJob(ctx, job)
	}
	return len(jobs)
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	html, text, err := w.render(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		w.handleFailure(ctx, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.IsPermanent()
		logger.Error("Failed to send email", "error", err, "permanent", permanent)
		w.handleFailure(ctx, job, err, permanent)
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Email sent", "resend_id", result.ResendID)
}

func (w *Worker) render(job *entity.EmailJob) (string, string, error) {
	switch job.TemplateType {
	case entity.TemplateReportReady:
		d := job.TemplateData
		return w.renderer.Render(string(job.TemplateType), templates.ReportReadyData{
			UserName:     getString(d, "user_name"),
			ReportName:   getString(d, "report_name"),
			StartDate:    getString(d, "start_date"),
			EndDate:      getString(d, "end_date"),
			TotalKg:      getFloat(d, "total_kg"),
			Scope1Kg:     getFloat(d, "scope1_kg"),
			Scope2Kg:     getFloat(d, "scope2_kg"),
			Scope3Kg:     getFloat(d, "scope3_kg"),
			DashboardURL: getString(d, "dashboard_url"),
		})
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			fmt.Sprintf("unknown template type %q", job.TemplateType),
			domainerror.ErrInvalidTemplate,
		)
	}
}

func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure", "job_id", job.ID, "error", updateErr)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("Email job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	slog.Info("Email job scheduled for retry",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
	)
}

func (w *Worker) purgeSent(ctx context.Context) {
	if w.retention <= 0 {
		return
	}
	n, err := w.queue.DeleteOldSentJobs(ctx, w.retention)
	if err != nil {
		slog.Error("Failed to purge sent email jobs", "error", err)
		return
	}
	if n > 0 {
		slog.Info("Purged sent email jobs", "count", n)
	}
}

func getString(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// getFloat accepts the numeric shapes a JSON round trip can produce.
func getFloat(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
