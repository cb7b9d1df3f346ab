package models

import (
	"time"

	"github.com/google/uuid"
)

// AssignedShift is one agent-day assignment produced by a schedule
// generation run. Times of day are minutes from midnight; a shift whose
// window would cross midnight is clipped at 23:59 (see the scheduler's
// clipping policy). The scheduler guarantees at most one shift per
// (agent, date) by construction.
type AssignedShift struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index:idx_assigned_shifts_tenant_date"`
	AgentID          uuid.UUID `gorm:"column:agent_id;type:uuid;not null;index"`
	Date             time.Time `gorm:"column:date;type:date;not null;index:idx_assigned_shifts_tenant_date"`
	StartMin         int       `gorm:"column:start_min;not null"`
	EndMin           int       `gorm:"column:end_min;not null"`
	BreakStartMin    int       `gorm:"column:break_start_min;not null"`
	BreakDurationMin int       `gorm:"column:break_duration_min;not null;default:60"`
	Published        bool      `gorm:"column:published;not null;default:false"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`

	Blocks []ShiftActivityBlock `gorm:"foreignKey:ShiftID"`
}
