// Package emission contains the activity calculation use cases.
package emission

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// CalculateSingleInputInput represents one activity submission.
// ActivityValue is the raw text received at the boundary.
type CalculateSingleInputInput struct {
	UserID          uuid.UUID
	FactorID        uuid.UUID
	ActivityValue   string
	ActivityUnit    string
	DatePeriodStart time.Time
}

// CalculateSingleInputUseCase converts an activity quantity into kilograms of CO2e
// and records the result.
type CalculateSingleInputUseCase struct {
	factorRepo adapter.EmissionFactorRepository
	inputRepo  adapter.UserInputRepository
	converter  adapter.UnitConverter
}

// NewCalculateSingleInputUseCase creates a new CalculateSingleInputUseCase instance.
func NewCalculateSingleInputUseCase(
	factorRepo adapter.EmissionFactorRepository,
	inputRepo adapter.UserInputRepository,
	converter adapter.UnitConverter,
) *CalculateSingleInputUseCase {
	return &CalculateSingleInputUseCase{
		factorRepo: factorRepo,
		inputRepo:  inputRepo,
		converter:  converter,
	}
}

// Execute validates the submission, looks up the factor, converts the activity
// into the factor's unit and persists the calculation record.
func (uc *CalculateSingleInputUseCase) Execute(ctx context.Context, input CalculateSingleInputInput) (*entity.UserInput, error) {
	value, err := validate(input)
	if err != nil {
		return nil, err
	}

	factor, err := uc.factorRepo.FindByID(ctx, input.FactorID)
	if err != nil {
		if errors.Is(err, domainerror.ErrFactorNotFound) {
			return nil, domainerror.NewEmissionError(
				domainerror.ErrCodeFactorNotFound,
				fmt.Sprintf("emission factor %s not found", input.FactorID),
				domainerror.ErrFactorNotFound,
			)
		}
		return nil, persistenceError("failed to load emission factor", err)
	}

	converted, err := uc.converter.Convert(value, input.ActivityUnit, factor.Unit)
	if err != nil {
		return nil, domainerror.NewEmissionError(
			domainerror.ErrCodeCalculationFailed,
			fmt.Sprintf("cannot express %s in %s", input.ActivityUnit, factor.Unit),
			err,
		)
	}

	emissions := converted * factor.FactorValue
	if !isFinite(converted) || !isFinite(emissions) {
		return nil, domainerror.NewEmissionError(
			domainerror.ErrCodeCalculationFailed,
			fmt.Sprintf("%s %s is out of range for factor %s", input.ActivityValue, input.ActivityUnit, factor.Name),
			nil,
		)
	}

	record := entity.NewUserInput(
		input.UserID,
		factor.ID,
		value,
		input.ActivityUnit,
		input.DatePeriodStart,
		emissions,
	)

	if err := uc.inputRepo.Create(ctx, record); err != nil {
		return nil, persistenceError("failed to save calculation record", err)
	}

	return record, nil
}

// validate parses and checks every field before any lookup happens.
func validate(input CalculateSingleInputInput) (float64, error) {
	if input.UserID == uuid.Nil {
		return 0, domainerror.NewInvalidInputError("user_id", "is required")
	}
	if input.FactorID == uuid.Nil {
		return 0, domainerror.NewInvalidInputError("factor_id", "is required")
	}

	raw := strings.TrimSpace(input.ActivityValue)
	if raw == "" {
		return 0, domainerror.NewInvalidInputError("activity_value", "is required")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domainerror.NewInvalidInputError("activity_value", fmt.Sprintf("%q is not a number", raw))
	}
	if !isFinite(value) {
		return 0, domainerror.NewInvalidInputError("activity_value", "must be a finite number")
	}

	if strings.TrimSpace(input.ActivityUnit) == "" {
		return 0, domainerror.NewInvalidInputError("activity_unit", "is required")
	}
	if input.DatePeriodStart.IsZero() {
		return 0, domainerror.NewInvalidInputError("date_period_start", "is required")
	}

	return value, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func persistenceError(message string, err error) error {
	if errors.Is(err, domainerror.ErrPersistenceFailed) {
		return err
	}
	return domainerror.NewPersistenceError(message, err)
}
