package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carbon-tracker/backend/internal/application/usecase/emission"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
)

// NumericText keeps an activity value as submitted. It accepts a JSON number or
// a JSON string so that "abc" reaches the calculator and is rejected there
// with a field error instead of failing JSON decoding.
type NumericText string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("activity_value must be a number or numeric string: %w", err)
		}
		*n = NumericText(num)
	}
	return nil
}

// CreateInputRequest represents the request body for a single-input calculation.
type CreateInputRequest struct {
	FactorID        string      `json:"factor_id" binding:"required,uuid"`
	ActivityValue   NumericText `json:"activity_value"`
	ActivityUnit    string      `json:"activity_unit" binding:"required,max=50"`
	DatePeriodStart string      `json:"date_period_start" binding:"required,isodate"`
}

// ListInputsQuery holds the pagination query of GET /inputs.
type ListInputsQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// InputResponse represents a calculation record in API responses.
type InputResponse struct {
	ID                    string    `json:"id"`
	FactorID              string    `json:"factor_id"`
	ActivityValue         float64   `json:"activity_value"`
	ActivityUnit          string    `json:"activity_unit"`
	DatePeriodStart       string    `json:"date_period_start"`
	CalculatedEmissionsKg float64   `json:"calculated_emissions_kg"`
	CreatedAt             time.Time `json:"created_at"`
}

// InputListResponse is one page of calculation records.
type InputListResponse struct {
	Inputs     []InputResponse    `json:"inputs"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToInputResponse converts a domain UserInput to its DTO.
func ToInputResponse(in *entity.UserInput) InputResponse {
	return InputResponse{
		ID:                    in.ID.String(),
		FactorID:              in.FactorID.String(),
		ActivityValue:         in.ActivityValue,
		ActivityUnit:          in.ActivityUnit,
		DatePeriodStart:       in.DatePeriodStart.Format(valueobject.DateLayout),
		CalculatedEmissionsKg: in.CalculatedEmissionsKg,
		CreatedAt:             in.CreatedAt,
	}
}

// ToInputListResponse converts a ListInputsOutput to its DTO.
func ToInputListResponse(out *emission.ListInputsOutput) InputListResponse {
	inputs := make([]InputResponse, len(out.Inputs))
	for i, in := range out.Inputs {
		inputs[i] = ToInputResponse(in)
	}
	return InputListResponse{
		Inputs: inputs,
		Pagination: PaginationResponse{
			CurrentPage: out.CurrentPage,
			PerPage:     out.PerPage,
			TotalItems:  out.TotalItems,
			TotalPages:  out.TotalPages,
		},
	}
}
