package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// MonthlySeriesUseCase builds a user's all-time monthly emissions series.
type MonthlySeriesUseCase struct {
	inputRepo adapter.UserInputRepository
}

// NewMonthlySeriesUseCase creates a new MonthlySeriesUseCase instance.
func NewMonthlySeriesUseCase(inputRepo adapter.UserInputRepository) *MonthlySeriesUseCase {
	return &MonthlySeriesUseCase{inputRepo: inputRepo}
}

// Execute returns one entry per month that has records, oldest first.
func (uc *MonthlySeriesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]entity.MonthlyEmission, error) {
	rows, err := uc.inputRepo.FindScopedEmissions(ctx, userID, nil)
	if err != nil {
		return nil, domainerror.NewPersistenceError("failed to query emissions", err)
	}
	return SumByMonth(rows), nil
}
