package intervals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbclient "github.com/argunvaran/wfm-pro/pkg/db"
	"github.com/argunvaran/wfm-pro/pkg/db/models"
)

const insertBatchSize = 500

// Repository exposes volume interval and contact record persistence.
type Repository struct {
	db     *gorm.DB
	client *dbclient.Client
}

// NewRepository constructs an intervals repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, client: dbclient.NewFromConn(db)}
}

// ListContactRecords returns the tenant's full contact history in timestamp
// order. The aggregator consumes the whole history on every run.
func (r *Repository) ListContactRecords(ctx context.Context, tenantID uuid.UUID) ([]models.ContactRecord, error) {
	var rows []models.ContactRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("timestamp ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceActuals deletes every actual volume row of the tenant and inserts
// the freshly computed set in one transaction. A failure partway leaves the
// prior rows intact.
func (r *Repository) ReplaceActuals(ctx context.Context, tenantID uuid.UUID, rows []models.VolumeInterval) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		err := tx.Where("tenant_id = ? AND is_forecast = ?", tenantID, false).
			Delete(&models.VolumeInterval{}).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
}

// ReplaceForecast deletes the tenant's forecast rows dated within
// [from, to] and inserts the new set in one transaction.
func (r *Repository) ReplaceForecast(ctx context.Context, tenantID uuid.UUID, from, to time.Time, rows []models.VolumeInterval) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		err := tx.Where("tenant_id = ? AND is_forecast = ? AND date >= ? AND date <= ?", tenantID, true, from, to).
			Delete(&models.VolumeInterval{}).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
}

// ListActuals returns every actual volume row of the tenant ordered by
// queue, date, and bucket.
func (r *Repository) ListActuals(ctx context.Context, tenantID uuid.UUID) ([]models.VolumeInterval, error) {
	var rows []models.VolumeInterval
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_forecast = ?", tenantID, false).
		Order("queue_id ASC").Order("date ASC").Order("interval_start_min ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByDateRange returns all volume rows (actual and forecast) dated within
// [from, to] ordered by date and bucket. The scheduler builds hourly
// requirements from this set.
func (r *Repository) ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.VolumeInterval, error) {
	var rows []models.VolumeInterval
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ? AND date <= ?", tenantID, from, to).
		Order("date ASC").Order("interval_start_min ASC").Order("queue_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns volume rows using cursor pagination with optional filters.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.VolumeInterval, error) {
	query := r.db.WithContext(ctx).Model(&models.VolumeInterval{}).Where("tenant_id = ?", opts.tenantID)

	if opts.queueID != nil {
		query = query.Where("queue_id = ?", *opts.queueID)
	}
	if opts.from != nil {
		query = query.Where("date >= ?", *opts.from)
	}
	if opts.to != nil {
		query = query.Where("date <= ?", *opts.to)
	}
	if opts.isForecast != nil {
		query = query.Where("is_forecast = ?", *opts.isForecast)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.VolumeInterval
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
