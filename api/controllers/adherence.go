package controllers

import (
	"net/http"
	"time"

	"github.com/argunvaran/wfm-pro/api/middleware"
	"github.com/argunvaran/wfm-pro/api/responses"
	"github.com/argunvaran/wfm-pro/internal/adherence"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
	"github.com/argunvaran/wfm-pro/pkg/logger"
)

// LiveAdherence compares every agent's live state against their schedule.
func LiveAdherence(svc adherence.Service, logg *logger.Logger, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "adherence service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		rows, err := svc.LiveAdherence(r.Context(), tenantID, now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"agents": rows, "as_of": now().UTC()})
	}
}
