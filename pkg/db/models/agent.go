package models

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a schedulable member of the roster. TemplateID is optional; the
// scheduler substitutes the system default window when it is nil.
type Agent struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	TenantID   uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name       string     `gorm:"column:name;not null"`
	EmployeeID string     `gorm:"column:employee_id"`
	Active     bool       `gorm:"column:active;not null;default:true"`
	TemplateID *uuid.UUID `gorm:"column:template_id;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}
