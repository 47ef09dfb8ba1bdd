package dto

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// CreateFactorRequest represents the request body for registering an emission factor.
type CreateFactorRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Category    string  `json:"category" binding:"required,max=100"`
	Scope       int     `json:"scope" binding:"required,scope"`
	FactorValue float64 `json:"factor_value" binding:"required,gt=0"`
	Unit        string  `json:"unit" binding:"required,max=50"`
	CO2eUnit    string  `json:"co2e_unit"`
	Source      string  `json:"source" binding:"max=500"`
}

// FactorResponse represents an emission factor in API responses.
type FactorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Scope       int       `json:"scope"`
	FactorValue float64   `json:"factor_value"`
	Unit        string    `json:"unit"`
	CO2eUnit    string    `json:"co2e_unit"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FactorListResponse wraps the factor catalogue.
type FactorListResponse struct {
	Factors []FactorResponse `json:"factors"`
}

// ToFactorResponse converts a domain EmissionFactor to its DTO.
func ToFactorResponse(f *entity.EmissionFactor) FactorResponse {
	return FactorResponse{
		ID:          f.ID.String(),
		Name:        f.Name,
		Category:    f.Category,
		Scope:       int(f.Scope),
		FactorValue: f.FactorValue,
		Unit:        f.Unit,
		CO2eUnit:    f.CO2eUnit,
		Source:      f.Source,
		CreatedAt:   f.CreatedAt,
	}
}

// ToFactorListResponse converts a factor slice to its DTO.
func ToFactorListResponse(factors []*entity.EmissionFactor) FactorListResponse {
	out := make([]FactorResponse, len(factors))
	for i, f := range factors {
		out[i] = ToFactorResponse(f)
	}
	return FactorListResponse{Factors: out}
}
