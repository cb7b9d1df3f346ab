package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbclient "github.com/argunvaran/wfm-pro/pkg/db"
	"github.com/argunvaran/wfm-pro/pkg/db/models"
)

const insertBatchSize = 200

// Repository exposes assigned shift persistence.
type Repository struct {
	db     *gorm.DB
	client *dbclient.Client
}

// NewRepository constructs a scheduling repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, client: dbclient.NewFromConn(db)}
}

// ReplaceShifts deletes every shift of the tenant dated within [from, to]
// together with its activity blocks, then inserts the new set (blocks
// included) in one transaction.
func (r *Repository) ReplaceShifts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, shifts []models.AssignedShift) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		doomed := tx.Model(&models.AssignedShift{}).
			Select("id").
			Where("tenant_id = ? AND date >= ? AND date <= ?", tenantID, from, to)

		err := tx.Where("shift_id IN (?)", doomed).
			Delete(&models.ShiftActivityBlock{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("tenant_id = ? AND date >= ? AND date <= ?", tenantID, from, to).
			Delete(&models.AssignedShift{}).Error
		if err != nil {
			return err
		}

		if len(shifts) == 0 {
			return nil
		}
		return tx.CreateInBatches(shifts, insertBatchSize).Error
	})
}

// ListForDate returns the tenant's shifts for one date with their blocks.
func (r *Repository) ListForDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]models.AssignedShift, error) {
	var rows []models.AssignedShift
	err := r.db.WithContext(ctx).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_min ASC")
		}).
		Where("tenant_id = ? AND date = ?", tenantID, date).
		Order("agent_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Publish marks every shift dated within [from, to] as visible to its agent
// and returns the number of rows flipped.
func (r *Repository) Publish(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.AssignedShift{}).
		Where("tenant_id = ? AND date >= ? AND date <= ? AND published = ?", tenantID, from, to, false).
		Update("published", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// List returns shifts using cursor pagination with optional filters.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.AssignedShift, error) {
	query := r.db.WithContext(ctx).Model(&models.AssignedShift{}).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_min ASC")
		}).
		Where("tenant_id = ?", opts.tenantID)

	if opts.agentID != nil {
		query = query.Where("agent_id = ?", *opts.agentID)
	}
	if opts.from != nil {
		query = query.Where("date >= ?", *opts.from)
	}
	if opts.to != nil {
		query = query.Where("date <= ?", *opts.to)
	}
	if opts.published != nil {
		query = query.Where("published = ?", *opts.published)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.AssignedShift
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
