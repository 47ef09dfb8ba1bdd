// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// EmailQueueRepository defines the interface for email queue persistence operations.
type EmailQueueRepository interface {
	// Create adds a new email job to the queue.
	Create(ctx context.Context, job *entity.EmailJob) error

	// ClaimPendingJobs moves due jobs to processing and returns them, oldest schedule first.
	ClaimPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update saves changes to an email job.
	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByRecipient retrieves jobs for a specific email address.
	GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// DeleteOldSentJobs removes sent jobs older than the given number of days.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
