package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	"github.com/argunvaran/wfm-pro/pkg/logger"
)

type tenantLister interface {
	ListActiveTenants(ctx context.Context) ([]models.Tenant, error)
}

type actualsAggregator interface {
	AggregateActuals(ctx context.Context, tenantID uuid.UUID) (int, error)
}

// AggregateJobParams configure the nightly volume aggregation.
type AggregateJobParams struct {
	Logger    *logger.Logger
	Tenants   tenantLister
	Intervals actualsAggregator
}

// NewAggregateJob constructs the job that rebuilds actual volume rows from
// contact history for every active tenant.
func NewAggregateJob(params AggregateJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Tenants == nil {
		return nil, fmt.Errorf("tenant lister required")
	}
	if params.Intervals == nil {
		return nil, fmt.Errorf("intervals service required")
	}
	return &aggregateJob{
		logg:      params.Logger,
		tenants:   params.Tenants,
		intervals: params.Intervals,
	}, nil
}

type aggregateJob struct {
	logg      *logger.Logger
	tenants   tenantLister
	intervals actualsAggregator
}

func (j *aggregateJob) Name() string { return "aggregate-actuals" }

// Run aggregates every active tenant. One tenant's failure does not stop the
// others; failures are combined and surfaced together.
func (j *aggregateJob) Run(ctx context.Context) error {
	tenants, err := j.tenants.ListActiveTenants(ctx)
	if err != nil {
		return fmt.Errorf("list active tenants: %w", err)
	}

	var errs error
	for _, tenant := range tenants {
		tenantCtx := j.logg.WithTenantID(ctx, tenant.ID.String())
		count, err := j.intervals.AggregateActuals(tenantCtx, tenant.ID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tenant %s: %w", tenant.ID, err))
			continue
		}
		tenantCtx = j.logg.WithField(tenantCtx, "rows", count)
		j.logg.Info(tenantCtx, "actuals aggregated")
	}
	return errs
}
