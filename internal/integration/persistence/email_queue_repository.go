package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

// Create adds a new email job to the queue.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to create email job",
			err,
		)
	}
	return nil
}

// ClaimPendingJobs marks up to limit due jobs as processing and returns them.
// Rows locked by another worker are skipped on databases that support it.
func (r *emailQueueRepository) ClaimPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.
			Where("status = ?", entity.EmailStatusPending).
			Where("scheduled_at <= ?", time.Now().UTC()).
			Order("scheduled_at ASC").
			Limit(limit)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}
		if err := query.Find(&models).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}

		ids := make([]any, len(models))
		for i := range models {
			ids[i] = models[i].ID
			models[i].Status = string(entity.EmailStatusProcessing)
		}
		return tx.Model(&model.EmailQueueModel{}).
			Where("id IN ?", ids).
			Update("status", entity.EmailStatusProcessing).Error
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}
	return jobs, nil
}

// Update saves changes to an email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

// GetByRecipient retrieves jobs for an email address, newest first.
func (r *emailQueueRepository) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}
	return jobs, nil
}

// DeleteOldSentJobs removes sent jobs processed more than olderThanDays ago.
func (r *emailQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, cutoff).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}
