package intervals

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
	pkgpagination "github.com/argunvaran/wfm-pro/pkg/pagination"
)

type intervalsRepository interface {
	ListContactRecords(ctx context.Context, tenantID uuid.UUID) ([]models.ContactRecord, error)
	ReplaceActuals(ctx context.Context, tenantID uuid.UUID, rows []models.VolumeInterval) error
	List(ctx context.Context, opts listQuery) ([]models.VolumeInterval, error)
}

// Service aggregates raw contact history into fixed 15-minute volume rows
// and exposes volume listing.
type Service interface {
	AggregateActuals(ctx context.Context, tenantID uuid.UUID) (int, error)
	ListIntervals(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo intervalsRepository
}

// NewService builds an intervals service backed by the provided repository.
func NewService(repo intervalsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("intervals repository required")
	}
	return &service{repo: repo}, nil
}

type bucketKey struct {
	queueID  uuid.UUID
	date     string // 2006-01-02
	startMin int
}

type bucketAccum struct {
	calls       int
	durationSum int
}

// AggregateActuals rebuilds the tenant's actual volume rows from its full
// contact history. Every prior actual row is replaced wholesale, so a rerun
// over unchanged history produces the same state. Buckets with no records
// produce no row.
func (s *service) AggregateActuals(ctx context.Context, tenantID uuid.UUID) (int, error) {
	if tenantID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}

	records, err := s.repo.ListContactRecords(ctx, tenantID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contact records")
	}

	accum := map[bucketKey]*bucketAccum{}
	for _, rec := range records {
		ts := rec.Timestamp.UTC()
		key := bucketKey{
			queueID:  rec.QueueID,
			date:     ts.Format("2006-01-02"),
			startMin: bucketStart(ts),
		}
		b := accum[key]
		if b == nil {
			b = &bucketAccum{}
			accum[key] = b
		}
		b.calls++
		b.durationSum += rec.DurationSeconds
	}

	rows := make([]models.VolumeInterval, 0, len(accum))
	for key, b := range accum {
		date, err := time.ParseInLocation("2006-01-02", key.date, time.UTC)
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse bucket date")
		}
		rows = append(rows, models.VolumeInterval{
			ID:               uuid.New(),
			TenantID:         tenantID,
			QueueID:          key.queueID,
			Date:             date,
			IntervalStartMin: key.startMin,
			CallsOffered:     b.calls,
			AHTSeconds:       b.durationSum / b.calls, // truncated mean
			IsForecast:       false,
		})
	}

	// Map iteration order is random; keep the insert deterministic.
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.QueueID != b.QueueID {
			return a.QueueID.String() < b.QueueID.String()
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.IntervalStartMin < b.IntervalStartMin
	})

	if err := s.repo.ReplaceActuals(ctx, tenantID, rows); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace actual intervals")
	}
	return len(rows), nil
}

func (s *service) ListIntervals(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		tenantID:   params.TenantID,
		queueID:    params.QueueID,
		from:       params.From,
		to:         params.To,
		isForecast: params.IsForecast,
		limit:      pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list volume intervals")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	items := make([]ListItem, len(rows))
	for i, row := range rows {
		items[i] = toListItem(row)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

// bucketStart floors a timestamp to its 15-minute bucket, in minutes from
// midnight.
func bucketStart(ts time.Time) int {
	minuteOfDay := ts.Hour()*60 + ts.Minute()
	return minuteOfDay / models.IntervalMinutes * models.IntervalMinutes
}
