// Package factor contains emission factor catalogue use cases.
package factor

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// CreateFactorInput represents the input for creating an emission factor.
type CreateFactorInput struct {
	Name        string
	Category    string
	Scope       int
	FactorValue float64
	Unit        string
	CO2eUnit    string
	Source      string
}

// CreateFactorUseCase handles creation of a single emission factor.
type CreateFactorUseCase struct {
	factorRepo adapter.EmissionFactorRepository
	converter  adapter.UnitConverter
}

// NewCreateFactorUseCase creates a new CreateFactorUseCase instance.
func NewCreateFactorUseCase(factorRepo adapter.EmissionFactorRepository, converter adapter.UnitConverter) *CreateFactorUseCase {
	return &CreateFactorUseCase{
		factorRepo: factorRepo,
		converter:  converter,
	}
}

// Execute validates and stores the factor.
func (uc *CreateFactorUseCase) Execute(ctx context.Context, input CreateFactorInput) (*entity.EmissionFactor, error) {
	factor, err := buildFactor(input, uc.converter)
	if err != nil {
		return nil, err
	}

	if err := uc.factorRepo.Create(ctx, factor); err != nil {
		return nil, domainerror.NewPersistenceError("failed to create emission factor", err)
	}

	return factor, nil
}

// buildFactor checks the factor invariants and returns a new entity.
func buildFactor(input CreateFactorInput, converter adapter.UnitConverter) (*entity.EmissionFactor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidFactor("name", "is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, invalidFactor("category", "is required")
	}

	scope := entity.Scope(input.Scope)
	if !scope.IsValid() {
		return nil, invalidFactor("scope", fmt.Sprintf("must be 1, 2 or 3, got %d", input.Scope))
	}

	if math.IsNaN(input.FactorValue) || math.IsInf(input.FactorValue, 0) || input.FactorValue <= 0 {
		return nil, invalidFactor("factor_value", "must be a positive number")
	}

	if !converter.IsRecognized(input.Unit) {
		return nil, invalidFactor("unit", fmt.Sprintf("%q is not a recognised unit", input.Unit))
	}

	if input.CO2eUnit != "" && input.CO2eUnit != entity.CO2eUnitKg {
		return nil, invalidFactor("co2e_unit", fmt.Sprintf("only %q is supported", entity.CO2eUnitKg))
	}

	return entity.NewEmissionFactor(name, category, scope, input.FactorValue, input.Unit, strings.TrimSpace(input.Source)), nil
}

func invalidFactor(field, reason string) error {
	return &domainerror.EmissionError{
		Code:    domainerror.ErrCodeInvalidFactor,
		Message: field + ": " + reason,
		Field:   field,
	}
}
