// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Scope is a GHG Protocol emission scope.
type Scope int

const (
	// Scope1 covers direct emissions from owned or controlled sources.
	Scope1 Scope = 1
	// Scope2 covers indirect emissions from purchased energy.
	Scope2 Scope = 2
	// Scope3 covers all other value-chain emissions.
	Scope3 Scope = 3
)

// Scopes lists every valid scope in ascending order.
var Scopes = []Scope{Scope1, Scope2, Scope3}

// IsValid reports whether s is one of the three GHG Protocol scopes.
func (s Scope) IsValid() bool {
	return s >= Scope1 && s <= Scope3
}

// CO2eUnitKg is the only emission basis factors may be denominated in.
const CO2eUnitKg = "kg CO2e"

// EmissionFactor converts one unit of activity into kilograms of CO2e.
type EmissionFactor struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Scope       Scope
	FactorValue float64
	Unit        string
	CO2eUnit    string
	Source      string
	CreatedAt   time.Time
}

// NewEmissionFactor creates a new EmissionFactor denominated in kilograms CO2e.
func NewEmissionFactor(name, category string, scope Scope, factorValue float64, unit, source string) *EmissionFactor {
	return &EmissionFactor{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Scope:       scope,
		FactorValue: factorValue,
		Unit:        unit,
		CO2eUnit:    CO2eUnitKg,
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}
}
