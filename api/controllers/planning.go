package controllers

import (
	"net/http"
	"time"

	"github.com/argunvaran/wfm-pro/api/middleware"
	"github.com/argunvaran/wfm-pro/api/responses"
	"github.com/argunvaran/wfm-pro/api/validators"
	"github.com/argunvaran/wfm-pro/internal/forecast"
	"github.com/argunvaran/wfm-pro/internal/intervals"
	"github.com/argunvaran/wfm-pro/internal/scheduling"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
	"github.com/argunvaran/wfm-pro/pkg/logger"
)

const dateLayout = "2006-01-02"

// AggregateActuals rebuilds the tenant's actual volume rows from contact history.
func AggregateActuals(svc intervals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "intervals service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		rows, err := svc.AggregateActuals(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"rows": rows})
	}
}

type generateForecastRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Model     string `json:"model,omitempty"`
}

// GenerateForecast projects volume over the requested date range.
func GenerateForecast(svc forecast.Service, defaultModel enums.ForecastModel, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "forecast service unavailable"))
			return
		}

		var payload generateForecastRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		startDate, endDate, err := parseDateRange(payload.StartDate, payload.EndDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		model := defaultModel
		if payload.Model != "" {
			model, err = enums.ParseForecastModel(payload.Model)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error()))
				return
			}
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		rows, err := svc.GenerateForecast(r.Context(), tenantID, startDate, endDate, model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"rows": rows})
	}
}

type generateScheduleRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// GenerateSchedule rebuilds shifts for the requested date range.
func GenerateSchedule(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		var payload generateScheduleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		startDate, endDate, err := parseDateRange(payload.StartDate, payload.EndDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		shifts, err := svc.GenerateSchedule(r.Context(), tenantID, startDate, endDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"shifts": shifts})
	}
}

type publishShiftsRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// PublishShifts marks draft shifts in the range visible to agents.
func PublishShifts(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		var payload publishShiftsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		startDate, endDate, err := parseDateRange(payload.StartDate, payload.EndDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		published, err := svc.PublishShifts(r.Context(), tenantID, startDate, endDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"published": published})
	}
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.ParseInLocation(dateLayout, start, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "start_date must be a date (YYYY-MM-DD)")
	}
	endDate, err := time.ParseInLocation(dateLayout, end, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "end_date must be a date (YYYY-MM-DD)")
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "end_date must not precede start_date")
	}
	return startDate, endDate, nil
}
