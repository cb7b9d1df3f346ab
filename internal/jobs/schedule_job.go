package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/argunvaran/wfm-pro/pkg/logger"
)

type scheduleGenerator interface {
	GenerateSchedule(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (int, error)
}

// ScheduleJobParams configure the nightly schedule regeneration.
type ScheduleJobParams struct {
	Logger      *logger.Logger
	Tenants     tenantLister
	Scheduler   scheduleGenerator
	HorizonDays int
	Now         func() time.Time
}

// NewScheduleJob constructs the job that rebuilds shifts over the coming
// horizon for every active tenant. It runs after the forecast job so fresh
// forecast rows drive the requirements.
func NewScheduleJob(params ScheduleJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Tenants == nil {
		return nil, fmt.Errorf("tenant lister required")
	}
	if params.Scheduler == nil {
		return nil, fmt.Errorf("scheduling service required")
	}
	if params.HorizonDays <= 0 {
		return nil, fmt.Errorf("horizon days must be positive")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &scheduleJob{
		logg:        params.Logger,
		tenants:     params.Tenants,
		scheduler:   params.Scheduler,
		horizonDays: params.HorizonDays,
		now:         now,
	}, nil
}

type scheduleJob struct {
	logg        *logger.Logger
	tenants     tenantLister
	scheduler   scheduleGenerator
	horizonDays int
	now         func() time.Time
}

func (j *scheduleJob) Name() string { return "generate-schedule" }

func (j *scheduleJob) Run(ctx context.Context) error {
	tenants, err := j.tenants.ListActiveTenants(ctx)
	if err != nil {
		return fmt.Errorf("list active tenants: %w", err)
	}

	start := midnightUTC(j.now())
	end := start.AddDate(0, 0, j.horizonDays-1)

	var errs error
	for _, tenant := range tenants {
		tenantCtx := j.logg.WithTenantID(ctx, tenant.ID.String())
		count, err := j.scheduler.GenerateSchedule(tenantCtx, tenant.ID, start, end)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tenant %s: %w", tenant.ID, err))
			continue
		}
		tenantCtx = j.logg.WithField(tenantCtx, "shifts", count)
		j.logg.Info(tenantCtx, "schedule generated")
	}
	return errs
}
