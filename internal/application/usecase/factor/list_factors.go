package factor

import (
	"context"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// ListFactorsUseCase returns the whole factor catalogue.
type ListFactorsUseCase struct {
	factorRepo adapter.EmissionFactorRepository
}

// NewListFactorsUseCase creates a new ListFactorsUseCase instance.
func NewListFactorsUseCase(factorRepo adapter.EmissionFactorRepository) *ListFactorsUseCase {
	return &ListFactorsUseCase{factorRepo: factorRepo}
}

// Execute lists factors ordered by category, then name.
func (uc *ListFactorsUseCase) Execute(ctx context.Context) ([]*entity.EmissionFactor, error) {
	factors, err := uc.factorRepo.List(ctx)
	if err != nil {
		return nil, domainerror.NewPersistenceError("failed to list emission factors", err)
	}
	return factors, nil
}
