package models

import (
	"time"

	"github.com/google/uuid"
)

// Queue is a routable contact queue. The per-queue SLA columns exist for
// configuration surfaces; the scheduler applies its fixed 20s/0.8 target.
type Queue struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name             string    `gorm:"column:name;not null"`
	SLATargetSeconds int       `gorm:"column:sla_target_seconds;not null;default:20"`
	SLATargetPercent float64   `gorm:"column:sla_target_percent;not null;default:0.8"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}
