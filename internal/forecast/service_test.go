package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
)

type stubVolumeRepo struct {
	actuals    []models.VolumeInterval
	actualsErr error

	replaced    []models.VolumeInterval
	replaceFrom time.Time
	replaceTo   time.Time
	replaceErr  error
}

func (s *stubVolumeRepo) ListActuals(ctx context.Context, tenantID uuid.UUID) ([]models.VolumeInterval, error) {
	if s.actualsErr != nil {
		return nil, s.actualsErr
	}
	return s.actuals, nil
}

func (s *stubVolumeRepo) ReplaceForecast(ctx context.Context, tenantID uuid.UUID, from, to time.Time, rows []models.VolumeInterval) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = rows
	s.replaceFrom = from
	s.replaceTo = to
	return nil
}

func actualRow(tenantID, queueID uuid.UUID, date time.Time, startMin, calls, aht int) models.VolumeInterval {
	return models.VolumeInterval{
		ID:               uuid.New(),
		TenantID:         tenantID,
		QueueID:          queueID,
		Date:             date,
		IntervalStartMin: startMin,
		CallsOffered:     calls,
		AHTSeconds:       aht,
	}
}

// mondayHistory builds four consecutive same-weekday samples for one bucket,
// newest first in the returned value ordering.
func mondayHistory(tenantID, queueID uuid.UUID, startMin int) []models.VolumeInterval {
	// Mondays leading up to 2026-03-09.
	dates := []time.Time{
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
	}
	calls := []int{10, 20, 30, 40}
	ahts := []int{100, 200, 300, 400}

	rows := make([]models.VolumeInterval, len(dates))
	for i := range dates {
		rows[i] = actualRow(tenantID, queueID, dates[i], startMin, calls[i], ahts[i])
	}
	return rows
}

func TestGenerateForecast_WeightedAverage(t *testing.T) {
	tenantID := uuid.New()
	queueID := uuid.New()
	target := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // Monday

	repo := &stubVolumeRepo{actuals: mondayHistory(tenantID, queueID, 9*60)}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	count, err := svc.GenerateForecast(context.Background(), tenantID, target, target, enums.ForecastWeightedAverage)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	row := repo.replaced[0]
	// 10*0.4 + 20*0.3 + 30*0.2 + 40*0.1 = 20
	if row.CallsOffered != 20 {
		t.Errorf("calls = %d, want 20", row.CallsOffered)
	}
	if row.AHTSeconds != 200 {
		t.Errorf("aht = %d, want 200", row.AHTSeconds)
	}
	if !row.IsForecast {
		t.Error("forecast row not flagged")
	}
	if row.IntervalStartMin != 9*60 {
		t.Errorf("interval start = %d, want %d", row.IntervalStartMin, 9*60)
	}
	if !row.Date.Equal(target) {
		t.Errorf("date = %v, want %v", row.Date, target)
	}
}

func TestGenerateForecast_SimpleAverage(t *testing.T) {
	tenantID := uuid.New()
	queueID := uuid.New()
	target := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	repo := &stubVolumeRepo{actuals: mondayHistory(tenantID, queueID, 9*60)}
	svc, _ := NewService(repo)

	_, err := svc.GenerateForecast(context.Background(), tenantID, target, target, enums.ForecastSimpleAverage)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	row := repo.replaced[0]
	if row.CallsOffered != 25 {
		t.Errorf("calls = %d, want 25", row.CallsOffered)
	}
	if row.AHTSeconds != 250 {
		t.Errorf("aht = %d, want 250", row.AHTSeconds)
	}
}

func TestGenerateForecast_TruncatesAndRenormalizesWeights(t *testing.T) {
	tenantID := uuid.New()
	queueID := uuid.New()
	target := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	repo := &stubVolumeRepo{actuals: []models.VolumeInterval{
		actualRow(tenantID, queueID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 600, 10, 100),
		actualRow(tenantID, queueID, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), 600, 20, 100),
	}}
	svc, _ := NewService(repo)

	_, err := svc.GenerateForecast(context.Background(), tenantID, target, target, enums.ForecastWeightedAverage)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Weights [0.4, 0.3] renormalized: (10*0.4 + 20*0.3) / 0.7 = 14.29 -> 14.
	if got := repo.replaced[0].CallsOffered; got != 14 {
		t.Fatalf("calls = %d, want 14", got)
	}
}

func TestGenerateForecast_CrossWeekdayFallback(t *testing.T) {
	tenantID := uuid.New()
	queueID := uuid.New()
	// History exists only on a Monday; forecast a Tuesday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	repo := &stubVolumeRepo{actuals: []models.VolumeInterval{
		actualRow(tenantID, queueID, monday, 540, 12, 180),
	}}
	svc, _ := NewService(repo)

	count, err := svc.GenerateForecast(context.Background(), tenantID, tuesday, tuesday, enums.ForecastSimpleAverage)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 (fallback row)", count)
	}
	if got := repo.replaced[0].CallsOffered; got != 12 {
		t.Fatalf("calls = %d, want 12", got)
	}
}

func TestGenerateForecast_SkipsZeroVolumeRows(t *testing.T) {
	tenantID := uuid.New()
	queueID := uuid.New()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	target := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	repo := &stubVolumeRepo{actuals: []models.VolumeInterval{
		actualRow(tenantID, queueID, monday, 540, 0, 180),
	}}
	svc, _ := NewService(repo)

	count, err := svc.GenerateForecast(context.Background(), tenantID, target, target, enums.ForecastSimpleAverage)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0 (zero-volume forecast rows are dropped)", count)
	}
}

func TestGenerateForecast_CoversEveryDayInRange(t *testing.T) {
	tenantID := uuid.New()
	queueID := uuid.New()
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	repo := &stubVolumeRepo{actuals: []models.VolumeInterval{
		actualRow(tenantID, queueID, monday, 540, 8, 150),
	}}
	svc, _ := NewService(repo)

	count, err := svc.GenerateForecast(context.Background(), tenantID, start, end, enums.ForecastSimpleAverage)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// One bucket of history fans out to each of the 7 days via fallback.
	if count != 7 {
		t.Fatalf("count = %d, want 7", count)
	}
	if !repo.replaceFrom.Equal(start) || !repo.replaceTo.Equal(end) {
		t.Fatalf("replace range [%v, %v], want [%v, %v]", repo.replaceFrom, repo.replaceTo, start, end)
	}
}

func TestGenerateForecast_Idempotent(t *testing.T) {
	tenantID := uuid.New()
	queueID := uuid.New()
	target := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	repo := &stubVolumeRepo{actuals: mondayHistory(tenantID, queueID, 9*60)}
	svc, _ := NewService(repo)

	if _, err := svc.GenerateForecast(context.Background(), tenantID, target, target, enums.ForecastWeightedAverage); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := repo.replaced

	if _, err := svc.GenerateForecast(context.Background(), tenantID, target, target, enums.ForecastWeightedAverage); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := repo.replaced

	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.QueueID != b.QueueID || !a.Date.Equal(b.Date) || a.IntervalStartMin != b.IntervalStartMin ||
			a.CallsOffered != b.CallsOffered || a.AHTSeconds != b.AHTSeconds {
			t.Fatalf("row %d differs between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestGenerateForecast_ValidatesInput(t *testing.T) {
	svc, _ := NewService(&stubVolumeRepo{})
	ctx := context.Background()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := svc.GenerateForecast(ctx, uuid.Nil, day, day, enums.ForecastSimpleAverage)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing tenant: expected validation error, got %v", err)
	}

	_, err = svc.GenerateForecast(ctx, uuid.New(), day, day, enums.ForecastModel("linear-regression"))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("bad model: expected validation error, got %v", err)
	}

	_, err = svc.GenerateForecast(ctx, uuid.New(), day, day.AddDate(0, 0, -1), enums.ForecastSimpleAverage)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("inverted range: expected validation error, got %v", err)
	}
}
