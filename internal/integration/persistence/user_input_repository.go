package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// userInputRepository implements the adapter.UserInputRepository interface.
type userInputRepository struct {
	db *gorm.DB
}

// NewUserInputRepository creates a new calculation record repository instance.
func NewUserInputRepository(db *gorm.DB) adapter.UserInputRepository {
	return &userInputRepository{
		db: db,
	}
}

// Create persists a calculation record in its own transaction.
func (r *userInputRepository) Create(ctx context.Context, input *entity.UserInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(model.UserInputFromEntity(input)).Error
	})
}

// ListByUser returns a page of a user's records, newest period first.
func (r *userInputRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, perPage int) (*adapter.UserInputListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&model.UserInputModel{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var models []model.UserInputModel
	err := query.
		Order("date_period_start DESC, created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	inputs := make([]*entity.UserInput, len(models))
	for i := range models {
		inputs[i] = models[i].ToEntity()
	}

	return &adapter.UserInputListResult{
		Inputs:     inputs,
		TotalItems: total,
	}, nil
}

// FindScopedEmissions joins the user's records to their factor's scope.
func (r *userInputRepository) FindScopedEmissions(ctx context.Context, userID uuid.UUID, dateRange *valueobject.DateRange) ([]entity.ScopedEmission, error) {
	query := r.db.WithContext(ctx).
		Table("user_inputs AS ui").
		Select("ui.calculated_emissions_kg AS emissions_kg, ef.scope AS scope, ui.date_period_start AS date_period_start").
		Joins("JOIN emission_factors AS ef ON ef.id = ui.factor_id").
		Where("ui.user_id = ?", userID)

	if dateRange != nil {
		query = query.Where("ui.date_period_start BETWEEN ? AND ?", dateRange.Start, dateRange.End)
	}

	var rows []model.ScopedEmissionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	emissions := make([]entity.ScopedEmission, len(rows))
	for i, row := range rows {
		emissions[i] = row.ToEntity()
	}
	return emissions, nil
}
