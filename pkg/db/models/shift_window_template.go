package models

import (
	"time"

	"github.com/google/uuid"
)

// ShiftWindowTemplate bounds when a shift may start and how long it runs.
// Owned by configuration; the scheduler treats it as read-only.
type ShiftWindowTemplate struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name             string    `gorm:"column:name;not null"`
	EarliestStartMin int       `gorm:"column:earliest_start_min;not null"`
	LatestStartMin   int       `gorm:"column:latest_start_min;not null"`
	DurationHours    float64   `gorm:"column:duration_hours;not null"`
	PaidHours        float64   `gorm:"column:paid_hours;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`

	Activities []TemplateActivity `gorm:"foreignKey:TemplateID"`
}
