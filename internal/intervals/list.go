package intervals

import (
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	pkgpagination "github.com/argunvaran/wfm-pro/pkg/pagination"
)

type ListParams struct {
	TenantID   uuid.UUID
	QueueID    *uuid.UUID
	From       *time.Time
	To         *time.Time
	IsForecast *bool
	pkgpagination.Params
}

type ListResult struct {
	Items  []ListItem `json:"items"`
	Cursor string     `json:"cursor"`
}

type ListItem struct {
	ID               uuid.UUID `json:"id"`
	QueueID          uuid.UUID `json:"queue_id"`
	Date             string    `json:"date"`
	IntervalStartMin int       `json:"interval_start_min"`
	CallsOffered     int       `json:"calls_offered"`
	AHTSeconds       int       `json:"aht_seconds"`
	IsForecast       bool      `json:"is_forecast"`
	CreatedAt        time.Time `json:"created_at"`
}

type listQuery struct {
	tenantID   uuid.UUID
	queueID    *uuid.UUID
	from       *time.Time
	to         *time.Time
	isForecast *bool
	limit      int
	cursor     *pkgpagination.Cursor
}

func toListItem(m models.VolumeInterval) ListItem {
	return ListItem{
		ID:               m.ID,
		QueueID:          m.QueueID,
		Date:             m.Date.Format("2006-01-02"),
		IntervalStartMin: m.IntervalStartMin,
		CallsOffered:     m.CallsOffered,
		AHTSeconds:       m.AHTSeconds,
		IsForecast:       m.IsForecast,
		CreatedAt:        m.CreatedAt,
	}
}
