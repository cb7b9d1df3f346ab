package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/argunvaran/wfm-pro/api/middleware"
	"github.com/argunvaran/wfm-pro/api/responses"
	"github.com/argunvaran/wfm-pro/pkg/db/models"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
	"github.com/argunvaran/wfm-pro/pkg/logger"
)

// RosterDirectory is the read surface the roster endpoints need.
type RosterDirectory interface {
	ListQueues(ctx context.Context, tenantID uuid.UUID) ([]models.Queue, error)
	ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]models.ShiftWindowTemplate, error)
	FindTemplate(ctx context.Context, id uuid.UUID) (*models.ShiftWindowTemplate, error)
}

type queueItem struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	SLATargetSeconds int       `json:"sla_target_seconds"`
	SLATargetPercent float64   `json:"sla_target_percent"`
}

type templateActivityItem struct {
	Kind           enums.ActivityKind `json:"kind"`
	StartOffsetMin int                `json:"start_offset_min"`
	DurationMin    int                `json:"duration_min"`
}

type templateItem struct {
	ID               uuid.UUID              `json:"id"`
	Name             string                 `json:"name"`
	EarliestStartMin int                    `json:"earliest_start_min"`
	LatestStartMin   int                    `json:"latest_start_min"`
	DurationHours    float64                `json:"duration_hours"`
	PaidHours        float64                `json:"paid_hours"`
	Activities       []templateActivityItem `json:"activities"`
}

func toTemplateItem(tmpl models.ShiftWindowTemplate) templateItem {
	item := templateItem{
		ID:               tmpl.ID,
		Name:             tmpl.Name,
		EarliestStartMin: tmpl.EarliestStartMin,
		LatestStartMin:   tmpl.LatestStartMin,
		DurationHours:    tmpl.DurationHours,
		PaidHours:        tmpl.PaidHours,
		Activities:       []templateActivityItem{},
	}
	for _, activity := range tmpl.Activities {
		item.Activities = append(item.Activities, templateActivityItem{
			Kind:           activity.Kind,
			StartOffsetMin: activity.StartOffsetMin,
			DurationMin:    activity.DurationMin,
		})
	}
	return item
}

// ListQueues returns the tenant's contact queues.
func ListQueues(directory RosterDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if directory == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "roster repository unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		queues, err := directory.ListQueues(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing queues"))
			return
		}

		items := make([]queueItem, 0, len(queues))
		for _, queue := range queues {
			items = append(items, queueItem{
				ID:               queue.ID,
				Name:             queue.Name,
				SLATargetSeconds: queue.SLATargetSeconds,
				SLATargetPercent: queue.SLATargetPercent,
			})
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// ListTemplates returns the tenant's shift window templates with activities.
func ListTemplates(directory RosterDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if directory == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "roster repository unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		templates, err := directory.ListTemplates(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing templates"))
			return
		}

		items := make([]templateItem, 0, len(templates))
		for _, tmpl := range templates {
			items = append(items, toTemplateItem(tmpl))
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// GetTemplate returns one shift window template, tenant-checked.
func GetTemplate(directory RosterDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if directory == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "roster repository unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "templateID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "template id must be a UUID"))
			return
		}

		tmpl, err := directory.FindTemplate(r.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "template not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading template"))
			return
		}
		if tmpl.TenantID != middleware.TenantIDFromContext(r.Context()) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "template not found"))
			return
		}

		responses.WriteSuccess(w, toTemplateItem(*tmpl))
	}
}
