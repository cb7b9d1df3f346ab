package models

import (
	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/enums"
)

// ShiftActivityBlock is one contiguous work/break/lunch span inside an
// assigned shift. Blocks are owned by their shift and regenerated wholesale
// whenever the shift is decomposed.
type ShiftActivityBlock struct {
	ID       uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	TenantID uuid.UUID          `gorm:"column:tenant_id;type:uuid;not null"`
	ShiftID  uuid.UUID          `gorm:"column:shift_id;type:uuid;not null;index"`
	Kind     enums.ActivityKind `gorm:"column:kind;not null"`
	StartMin int                `gorm:"column:start_min;not null"`
	EndMin   int                `gorm:"column:end_min;not null"`
}
