package forecast

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
)

// recencyWeights blend the most recent same-key samples, newest first. The
// slice is truncated to the available sample count and renormalized.
var recencyWeights = []float64{0.4, 0.3, 0.2, 0.1}

type volumeRepository interface {
	ListActuals(ctx context.Context, tenantID uuid.UUID) ([]models.VolumeInterval, error)
	ReplaceForecast(ctx context.Context, tenantID uuid.UUID, from, to time.Time, rows []models.VolumeInterval) error
}

// Service projects historical volume into forecast rows for a date range.
type Service interface {
	GenerateForecast(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time, model enums.ForecastModel) (int, error)
}

type service struct {
	repo volumeRepository
}

// NewService builds a forecast service backed by the provided volume repository.
func NewService(repo volumeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("volume repository required")
	}
	return &service{repo: repo}, nil
}

type histKey struct {
	queueID uuid.UUID
	weekday time.Weekday
	bucket  int
}

type dayKey struct {
	queueID uuid.UUID
	bucket  int
}

type sample struct {
	date  time.Time
	calls int
	aht   int
}

// GenerateForecast rebuilds forecast rows for [startDate, endDate]. History
// is keyed by (queue, weekday, time bucket); a key with no exact match falls
// back to the same bucket across all weekdays, which keeps thin histories
// usable. Prior forecast rows in the range are replaced wholesale.
func (s *service) GenerateForecast(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time, model enums.ForecastModel) (int, error) {
	if tenantID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	if !model.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid forecast model")
	}
	if endDate.Before(startDate) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "end date before start date")
	}

	actuals, err := s.repo.ListActuals(ctx, tenantID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list actual intervals")
	}

	exact := map[histKey][]sample{}
	anyWeekday := map[dayKey][]sample{}
	queueSet := map[uuid.UUID]struct{}{}
	for _, row := range actuals {
		sm := sample{date: row.Date, calls: row.CallsOffered, aht: row.AHTSeconds}
		ek := histKey{queueID: row.QueueID, weekday: row.Date.Weekday(), bucket: row.Bucket()}
		exact[ek] = append(exact[ek], sm)
		fk := dayKey{queueID: row.QueueID, bucket: row.Bucket()}
		anyWeekday[fk] = append(anyWeekday[fk], sm)
		queueSet[row.QueueID] = struct{}{}
	}
	for _, samples := range exact {
		sortSamplesNewestFirst(samples)
	}
	for _, samples := range anyWeekday {
		sortSamplesNewestFirst(samples)
	}

	// Deterministic queue ordering keeps reruns byte-stable.
	queues := make([]uuid.UUID, 0, len(queueSet))
	for q := range queueSet {
		queues = append(queues, q)
	}
	sort.Slice(queues, func(i, j int) bool { return queues[i].String() < queues[j].String() })

	var rows []models.VolumeInterval
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		for bucket := 0; bucket < models.BucketsPerDay; bucket++ {
			for _, queueID := range queues {
				samples := exact[histKey{queueID: queueID, weekday: day.Weekday(), bucket: bucket}]
				if len(samples) == 0 {
					samples = anyWeekday[dayKey{queueID: queueID, bucket: bucket}]
				}
				if len(samples) == 0 {
					continue
				}

				calls, aht := blend(samples, model)
				if calls == 0 {
					continue
				}
				rows = append(rows, models.VolumeInterval{
					ID:               uuid.New(),
					TenantID:         tenantID,
					QueueID:          queueID,
					Date:             day,
					IntervalStartMin: bucket * models.IntervalMinutes,
					CallsOffered:     calls,
					AHTSeconds:       aht,
					IsForecast:       true,
				})
			}
		}
	}

	if err := s.repo.ReplaceForecast(ctx, tenantID, startDate, endDate, rows); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace forecast intervals")
	}
	return len(rows), nil
}

func sortSamplesNewestFirst(samples []sample) {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].date.After(samples[j].date)
	})
}

func blend(samples []sample, model enums.ForecastModel) (calls int, aht int) {
	switch model {
	case enums.ForecastWeightedAverage:
		n := len(samples)
		if n > len(recencyWeights) {
			n = len(recencyWeights)
		}
		total := 0.0
		for _, w := range recencyWeights[:n] {
			total += w
		}
		var callSum, ahtSum float64
		for i := 0; i < n; i++ {
			w := recencyWeights[i] / total
			callSum += w * float64(samples[i].calls)
			ahtSum += w * float64(samples[i].aht)
		}
		return int(math.Round(callSum)), int(math.Round(ahtSum))

	default: // simple average
		var callSum, ahtSum int
		for _, sm := range samples {
			callSum += sm.calls
			ahtSum += sm.aht
		}
		n := float64(len(samples))
		return int(math.Round(float64(callSum) / n)), int(math.Round(float64(ahtSum) / n))
	}
}
