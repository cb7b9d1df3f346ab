package models

import (
	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/enums"
)

// TemplateActivity is one planned break or lunch inside a shift window
// template, offset in minutes from shift start. Rows are read in offset
// order; configuration is responsible for keeping them non-overlapping and
// inside the template duration.
type TemplateActivity struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	TenantID       uuid.UUID          `gorm:"column:tenant_id;type:uuid;not null"`
	TemplateID     uuid.UUID          `gorm:"column:template_id;type:uuid;not null;index"`
	Kind           enums.ActivityKind `gorm:"column:kind;not null"`
	StartOffsetMin int                `gorm:"column:start_offset_min;not null"`
	DurationMin    int                `gorm:"column:duration_min;not null"`
}
