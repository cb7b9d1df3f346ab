package controllers

import (
	"net/http"

	"github.com/argunvaran/wfm-pro/api/middleware"
	"github.com/argunvaran/wfm-pro/api/responses"
	"github.com/argunvaran/wfm-pro/api/validators"
	"github.com/argunvaran/wfm-pro/internal/scheduling"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
	"github.com/argunvaran/wfm-pro/pkg/logger"
	"github.com/argunvaran/wfm-pro/pkg/pagination"
)

// ListShifts returns assigned shifts with their activity blocks.
func ListShifts(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		agentID, err := validators.ParseQueryUUID(r, "agent_id")
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
		published, err := validators.ParseQueryBool(r, "published")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := scheduling.ListParams{
			TenantID:  middleware.TenantIDFromContext(r.Context()),
			AgentID:   agentID,
			From:      from,
			To:        to,
			Published: published,
			Params: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		}

		result, err := svc.ListShifts(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
