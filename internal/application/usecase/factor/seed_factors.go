package factor

import (
	"context"
	"fmt"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// SeedFactorsUseCase replaces the factor catalogue with a validated set.
type SeedFactorsUseCase struct {
	factorRepo adapter.EmissionFactorRepository
	converter  adapter.UnitConverter
}

// NewSeedFactorsUseCase creates a new SeedFactorsUseCase instance.
func NewSeedFactorsUseCase(factorRepo adapter.EmissionFactorRepository, converter adapter.UnitConverter) *SeedFactorsUseCase {
	return &SeedFactorsUseCase{
		factorRepo: factorRepo,
		converter:  converter,
	}
}

// Execute validates every factor first; the store is untouched if any is invalid.
func (uc *SeedFactorsUseCase) Execute(ctx context.Context, inputs []CreateFactorInput) ([]*entity.EmissionFactor, error) {
	factors := make([]*entity.EmissionFactor, 0, len(inputs))
	for i, in := range inputs {
		f, err := buildFactor(in, uc.converter)
		if err != nil {
			return nil, fmt.Errorf("factor %d (%s): %w", i+1, in.Name, err)
		}
		factors = append(factors, f)
	}

	if err := uc.factorRepo.ReplaceAll(ctx, factors); err != nil {
		return nil, domainerror.NewPersistenceError("failed to seed emission factors", err)
	}

	return factors, nil
}
