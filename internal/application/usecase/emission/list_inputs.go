package emission

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

const (
	// DefaultPerPage is used when no page size is requested.
	DefaultPerPage = 20
	// MaxPerPage caps the page size.
	MaxPerPage = 100
)

// ListInputsInput represents the input for listing calculation records.
type ListInputsInput struct {
	UserID  uuid.UUID
	Page    int
	PerPage int
}

// ListInputsOutput represents one page of calculation records.
type ListInputsOutput struct {
	Inputs      []*entity.UserInput
	TotalItems  int64
	TotalPages  int
	CurrentPage int
	PerPage     int
}

// ListInputsUseCase handles paginated listing of a user's calculation history.
type ListInputsUseCase struct {
	inputRepo adapter.UserInputRepository
}

// NewListInputsUseCase creates a new ListInputsUseCase instance.
func NewListInputsUseCase(inputRepo adapter.UserInputRepository) *ListInputsUseCase {
	return &ListInputsUseCase{inputRepo: inputRepo}
}

// Execute returns the requested page, newest activity period first.
func (uc *ListInputsUseCase) Execute(ctx context.Context, input ListInputsInput) (*ListInputsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	result, err := uc.inputRepo.ListByUser(ctx, input.UserID, page, perPage)
	if err != nil {
		return nil, persistenceError("failed to list calculation records", err)
	}

	totalPages := int((result.TotalItems + int64(perPage) - 1) / int64(perPage))

	return &ListInputsOutput{
		Inputs:      result.Inputs,
		TotalItems:  result.TotalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		PerPage:     perPage,
	}, nil
}
