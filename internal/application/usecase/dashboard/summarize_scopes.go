package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
)

// SummarizeScopesInput represents the input for a scope summary.
// A nil DateRange covers all time.
type SummarizeScopesInput struct {
	UserID    uuid.UUID
	DateRange *valueobject.DateRange
}

// SummarizeScopesUseCase totals a user's emissions per scope.
type SummarizeScopesUseCase struct {
	inputRepo adapter.UserInputRepository
}

// NewSummarizeScopesUseCase creates a new SummarizeScopesUseCase instance.
func NewSummarizeScopesUseCase(inputRepo adapter.UserInputRepository) *SummarizeScopesUseCase {
	return &SummarizeScopesUseCase{inputRepo: inputRepo}
}

// Execute returns per-scope totals. No matching records yields all zeros.
func (uc *SummarizeScopesUseCase) Execute(ctx context.Context, input SummarizeScopesInput) (*entity.ScopeSummary, error) {
	rows, err := uc.inputRepo.FindScopedEmissions(ctx, input.UserID, input.DateRange)
	if err != nil {
		return nil, domainerror.NewPersistenceError("failed to query emissions", err)
	}

	summary := SumByScope(rows)
	return &summary, nil
}
