package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// UserInputModel represents the user_inputs table in the database.
type UserInputModel struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID           `gorm:"type:uuid;not null;index:idx_user_inputs_user_period,priority:1"`
	FactorID              uuid.UUID           `gorm:"type:uuid;not null;index"`
	Factor                EmissionFactorModel `gorm:"foreignKey:FactorID;constraint:OnDelete:RESTRICT"`
	User                  UserModel           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ActivityValue         float64             `gorm:"not null"`
	ActivityUnit          string              `gorm:"type:varchar(50);not null"`
	DatePeriodStart       time.Time           `gorm:"type:date;not null;index:idx_user_inputs_user_period,priority:2"`
	CalculatedEmissionsKg float64             `gorm:"not null"`
	CreatedAt             time.Time           `gorm:"not null"`
}

// TableName returns the table name for the UserInputModel.
func (UserInputModel) TableName() string {
	return "user_inputs"
}

// ToEntity converts a UserInputModel to a domain UserInput entity.
func (m *UserInputModel) ToEntity() *entity.UserInput {
	return &entity.UserInput{
		ID:                    m.ID,
		UserID:                m.UserID,
		FactorID:              m.FactorID,
		ActivityValue:         m.ActivityValue,
		ActivityUnit:          m.ActivityUnit,
		DatePeriodStart:       entity.CalendarDate(m.DatePeriodStart),
		CalculatedEmissionsKg: m.CalculatedEmissionsKg,
		CreatedAt:             m.CreatedAt,
	}
}

// UserInputFromEntity creates a UserInputModel from a domain UserInput entity.
func UserInputFromEntity(in *entity.UserInput) *UserInputModel {
	return &UserInputModel{
		ID:                    in.ID,
		UserID:                in.UserID,
		FactorID:              in.FactorID,
		ActivityValue:         in.ActivityValue,
		ActivityUnit:          in.ActivityUnit,
		DatePeriodStart:       in.DatePeriodStart,
		CalculatedEmissionsKg: in.CalculatedEmissionsKg,
		CreatedAt:             in.CreatedAt,
	}
}

// ScopedEmissionRow is the projection of a user input joined to its factor's scope.
type ScopedEmissionRow struct {
	EmissionsKg     float64
	Scope           int
	DatePeriodStart time.Time
}

// ToEntity converts the row into a domain ScopedEmission.
func (r ScopedEmissionRow) ToEntity() entity.ScopedEmission {
	return entity.ScopedEmission{
		EmissionsKg:     r.EmissionsKg,
		Scope:           entity.Scope(r.Scope),
		DatePeriodStart: entity.CalendarDate(r.DatePeriodStart),
	}
}
