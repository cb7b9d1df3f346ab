package adherence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
)

// Repository reads the live agent states maintained by the external event
// pipeline.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an adherence repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListStates returns the latest reported state per agent for a tenant.
func (r *Repository) ListStates(ctx context.Context, tenantID uuid.UUID) ([]models.LiveAgentState, error) {
	var rows []models.LiveAgentState
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
