package roster

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
)

// Repository exposes read access to the provisioning-owned roster tables:
// tenants, agents, and shift window templates. The planning pipeline never
// writes these.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a roster repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveTenants returns all tenants eligible for planning runs.
func (r *Repository) ListActiveTenants(ctx context.Context) ([]models.Tenant, error) {
	var rows []models.Tenant
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActiveAgents returns the schedulable agents of a tenant in a stable
// order (oldest first). The scheduler's fairness rotation depends on this
// ordering being deterministic.
func (r *Repository) ListActiveAgents(ctx context.Context, tenantID uuid.UUID) ([]models.Agent, error) {
	var rows []models.Agent
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindTemplate returns a shift window template with its planned activities
// in offset order.
func (r *Repository) FindTemplate(ctx context.Context, id uuid.UUID) (*models.ShiftWindowTemplate, error) {
	var row models.ShiftWindowTemplate
	err := r.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_offset_min ASC")
		}).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListTemplates returns all shift window templates of a tenant with their
// planned activities.
func (r *Repository) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]models.ShiftWindowTemplate, error) {
	var rows []models.ShiftWindowTemplate
	err := r.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_offset_min ASC")
		}).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListQueues returns the tenant's queues.
func (r *Repository) ListQueues(ctx context.Context, tenantID uuid.UUID) ([]models.Queue, error) {
	var rows []models.Queue
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
