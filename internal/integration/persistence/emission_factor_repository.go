package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// emissionFactorRepository implements the adapter.EmissionFactorRepository interface.
type emissionFactorRepository struct {
	db *gorm.DB
}

// NewEmissionFactorRepository creates a new emission factor repository instance.
func NewEmissionFactorRepository(db *gorm.DB) adapter.EmissionFactorRepository {
	return &emissionFactorRepository{
		db: db,
	}
}

// FindByID retrieves a factor by its ID.
func (r *emissionFactorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EmissionFactor, error) {
	var m model.EmissionFactorModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFactorNotFound
		}
		return nil, result.Error
	}
	return m.ToEntity(), nil
}

// List retrieves every factor ordered by category, then name.
func (r *emissionFactorRepository) List(ctx context.Context) ([]*entity.EmissionFactor, error) {
	var models []model.EmissionFactorModel
	if err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	factors := make([]*entity.EmissionFactor, len(models))
	for i := range models {
		factors[i] = models[i].ToEntity()
	}
	return factors, nil
}

// Create inserts a new factor.
func (r *emissionFactorRepository) Create(ctx context.Context, factor *entity.EmissionFactor) error {
	return r.db.WithContext(ctx).Create(model.EmissionFactorFromEntity(factor)).Error
}

// ReplaceAll deletes the current catalogue and inserts factors in one transaction.
// Deleting a factor that calculation records still reference fails and rolls back.
func (r *emissionFactorRepository) ReplaceAll(ctx context.Context, factors []*entity.EmissionFactor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.EmissionFactorModel{}).Error; err != nil {
			return err
		}
		if len(factors) == 0 {
			return nil
		}

		models := make([]*model.EmissionFactorModel, len(factors))
		for i, f := range factors {
			models[i] = model.EmissionFactorFromEntity(f)
		}
		return tx.CreateInBatches(models, 100).Error
	})
}
