package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactRecord is one handled contact as delivered by the telephony
// integration. The core only reads these rows; ingestion is external.
type ContactRecord struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	TenantID        uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index:idx_contact_records_tenant_ts"`
	ContactID       string     `gorm:"column:contact_id;not null"`
	Timestamp       time.Time  `gorm:"column:timestamp;not null;index:idx_contact_records_tenant_ts"`
	DurationSeconds int        `gorm:"column:duration_seconds;not null;default:0"`
	QueueID         uuid.UUID  `gorm:"column:queue_id;type:uuid;not null"`
	AgentID         *uuid.UUID `gorm:"column:agent_id;type:uuid"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
}
