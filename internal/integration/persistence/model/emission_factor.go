package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// EmissionFactorModel represents the emission_factors table in the database.
type EmissionFactorModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Category    string    `gorm:"type:varchar(100);not null;index"`
	Scope       int       `gorm:"not null;check:scope IN (1,2,3)"`
	FactorValue float64   `gorm:"not null;check:factor_value > 0"`
	Unit        string    `gorm:"type:varchar(50);not null"`
	CO2eUnit    string    `gorm:"column:co2e_unit;type:varchar(50);not null;default:'kg CO2e'"`
	Source      string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the EmissionFactorModel.
func (EmissionFactorModel) TableName() string {
	return "emission_factors"
}

// ToEntity converts an EmissionFactorModel to a domain EmissionFactor entity.
func (m *EmissionFactorModel) ToEntity() *entity.EmissionFactor {
	return &entity.EmissionFactor{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Scope:       entity.Scope(m.Scope),
		FactorValue: m.FactorValue,
		Unit:        m.Unit,
		CO2eUnit:    m.CO2eUnit,
		Source:      m.Source,
		CreatedAt:   m.CreatedAt,
	}
}

// EmissionFactorFromEntity creates an EmissionFactorModel from a domain EmissionFactor entity.
func EmissionFactorFromEntity(f *entity.EmissionFactor) *EmissionFactorModel {
	return &EmissionFactorModel{
		ID:          f.ID,
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
