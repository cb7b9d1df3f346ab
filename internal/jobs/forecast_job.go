package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/argunvaran/wfm-pro/pkg/enums"
	"github.com/argunvaran/wfm-pro/pkg/logger"
)

type forecastGenerator interface {
	GenerateForecast(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time, model enums.ForecastModel) (int, error)
}

// ForecastJobParams configure the nightly forecast regeneration.
type ForecastJobParams struct {
	Logger      *logger.Logger
	Tenants     tenantLister
	Forecast    forecastGenerator
	Model       enums.ForecastModel
	HorizonDays int
	Now         func() time.Time
}

// NewForecastJob constructs the job that projects volume over the coming
// horizon for every active tenant.
func NewForecastJob(params ForecastJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Tenants == nil {
		return nil, fmt.Errorf("tenant lister required")
	}
	if params.Forecast == nil {
		return nil, fmt.Errorf("forecast service required")
	}
	if !params.Model.IsValid() {
		return nil, fmt.Errorf("invalid forecast model %q", params.Model)
	}
	if params.HorizonDays <= 0 {
		return nil, fmt.Errorf("horizon days must be positive")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &forecastJob{
		logg:        params.Logger,
		tenants:     params.Tenants,
		forecast:    params.Forecast,
		model:       params.Model,
		horizonDays: params.HorizonDays,
		now:         now,
	}, nil
}

type forecastJob struct {
	logg        *logger.Logger
	tenants     tenantLister
	forecast    forecastGenerator
	model       enums.ForecastModel
	horizonDays int
	now         func() time.Time
}

func (j *forecastJob) Name() string { return "generate-forecast" }

func (j *forecastJob) Run(ctx context.Context) error {
	tenants, err := j.tenants.ListActiveTenants(ctx)
	if err != nil {
		return fmt.Errorf("list active tenants: %w", err)
	}

	start := midnightUTC(j.now())
	end := start.AddDate(0, 0, j.horizonDays-1)

	var errs error
	for _, tenant := range tenants {
		tenantCtx := j.logg.WithTenantID(ctx, tenant.ID.String())
		count, err := j.forecast.GenerateForecast(tenantCtx, tenant.ID, start, end, j.model)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tenant %s: %w", tenant.ID, err))
			continue
		}
		tenantCtx = j.logg.WithField(tenantCtx, "rows", count)
		j.logg.Info(tenantCtx, "forecast generated")
	}
	return errs
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
