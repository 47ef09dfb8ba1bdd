package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// reportRepository implements the adapter.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) adapter.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// Create persists a report in its own transaction.
func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(model.ReportFromEntity(report)).Error
	})
}

// ListByUser returns the user's reports, most recently generated first.
func (r *reportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Report, error) {
	var models []model.ReportModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	reports := make([]*entity.Report, len(models))
	for i := range models {
		reports[i] = models[i].ToEntity()
	}
	return reports, nil
}

// FindByIDForUser returns the report only when userID owns it.
func (r *reportRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Report, error) {
	var m model.ReportModel
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReportNotFound
		}
		return nil, result.Error
	}
	return m.ToEntity(), nil
}
