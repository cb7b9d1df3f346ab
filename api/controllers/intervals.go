package controllers

import (
	"net/http"

	"github.com/argunvaran/wfm-pro/api/middleware"
	"github.com/argunvaran/wfm-pro/api/responses"
	"github.com/argunvaran/wfm-pro/api/validators"
	"github.com/argunvaran/wfm-pro/internal/intervals"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
	"github.com/argunvaran/wfm-pro/pkg/logger"
	"github.com/argunvaran/wfm-pro/pkg/pagination"
)

// ListIntervals returns volume intervals (actuals and forecasts) for the tenant.
func ListIntervals(svc intervals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "intervals service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		queueID, err := validators.ParseQueryUUID(r, "queue_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		isForecast, err := validators.ParseQueryBool(r, "forecast")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := intervals.ListParams{
			TenantID:   middleware.TenantIDFromContext(r.Context()),
			QueueID:    queueID,
			From:       from,
			To:         to,
			IsForecast: isForecast,
			Params: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		}

		result, err := svc.ListIntervals(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
