package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/enums"
)

// LiveAgentState is the latest reported state per agent, maintained by the
// external event pipeline and read-only to the adherence comparator.
type LiveAgentState struct {
	ID       uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	TenantID uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null"`
	AgentID  uuid.UUID       `gorm:"column:agent_id;type:uuid;not null;uniqueIndex"`
	State    enums.LiveState `gorm:"column:state;not null"`
	Since    time.Time       `gorm:"column:since;not null"`
}
