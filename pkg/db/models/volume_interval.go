package models

import (
	"time"

	"github.com/google/uuid"
)

// IntervalMinutes is the fixed bucket width for volume rows.
const IntervalMinutes = 15

// BucketsPerDay is the number of fixed-width buckets in one day.
const BucketsPerDay = 24 * 60 / IntervalMinutes

// VolumeInterval is one 15-minute bucket of offered volume for a queue.
// Actual rows are written only by the aggregator, forecast rows only by the
// forecast generator; both overwrite their scope wholesale.
type VolumeInterval struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:idx_volume_intervals_key"`
	QueueID          uuid.UUID `gorm:"column:queue_id;type:uuid;not null;uniqueIndex:idx_volume_intervals_key"`
	Date             time.Time `gorm:"column:date;type:date;not null;uniqueIndex:idx_volume_intervals_key"`
	IntervalStartMin int       `gorm:"column:interval_start_min;not null;uniqueIndex:idx_volume_intervals_key"`
	CallsOffered     int       `gorm:"column:calls_offered;not null;default:0"`
	AHTSeconds       int       `gorm:"column:aht_seconds;not null;default:0"`
	IsForecast       bool      `gorm:"column:is_forecast;not null;default:false;uniqueIndex:idx_volume_intervals_key"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

// Bucket returns the 0-based bucket index of the row within its day.
func (v VolumeInterval) Bucket() int {
	return v.IntervalStartMin / IntervalMinutes
}

// Hour returns the hour of day the row's bucket falls in.
func (v VolumeInterval) Hour() int {
	return v.IntervalStartMin / 60
}
