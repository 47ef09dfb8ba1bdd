package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ReportModel represents the reports table in the database.
type ReportModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	User             UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ReportName       string    `gorm:"type:varchar(150);not null"`
	StartDate        time.Time `gorm:"type:date;not null"`
	EndDate          time.Time `gorm:"type:date;not null"`
	TotalScope1Kg    float64   `gorm:"column:total_scope1_kg;not null;default:0"`
	TotalScope2Kg    float64   `gorm:"column:total_scope2_kg;not null;default:0"`
	TotalScope3Kg    float64   `gorm:"column:total_scope3_kg;not null;default:0"`
	TotalAllScopesKg float64   `gorm:"column:total_all_scopes_kg;not null;default:0"`
	GeneratedAt      time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the ReportModel.
func (ReportModel) TableName() string {
	return "reports"
}

// ToEntity converts a ReportModel to a domain Report entity.
func (m *ReportModel) ToEntity() *entity.Report {
	return &entity.Report{
		ID:               m.ID,
		UserID:           m.UserID,
		ReportName:       m.ReportName,
		StartDate:        entity.CalendarDate(m.StartDate),
		EndDate:          entity.CalendarDate(m.EndDate),
		TotalScope1Kg:    m.TotalScope1Kg,
		TotalScope2Kg:    m.TotalScope2Kg,
		TotalScope3Kg:    m.TotalScope3Kg,
		TotalAllScopesKg: m.TotalAllScopesKg,
		GeneratedAt:      m.GeneratedAt,
	}
}

// ReportFromEntity creates a ReportModel from a domain Report entity.
func ReportFromEntity(r *entity.Report) *ReportModel {
	return &ReportModel{
		ID:               r.ID,
		UserID:           r.UserID,
		ReportName:       r.ReportName,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		TotalScope1Kg:    r.TotalScope1Kg,
		TotalScope2Kg:    r.TotalScope2Kg,
		TotalScope3Kg:    r.TotalScope3Kg,
		TotalAllScopesKg: r.TotalAllScopesKg,
		GeneratedAt:      r.GeneratedAt,
	}
}
