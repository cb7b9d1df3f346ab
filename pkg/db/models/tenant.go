package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is one workforce-management customer. Provisioning lives outside
// the core; the planning pipeline only needs the identifier and active flag.
type Tenant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
