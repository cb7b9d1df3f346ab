package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/argunvaran/wfm-pro/api/controllers"
	"github.com/argunvaran/wfm-pro/api/middleware"
	"github.com/argunvaran/wfm-pro/internal/adherence"
	"github.com/argunvaran/wfm-pro/internal/forecast"
	"github.com/argunvaran/wfm-pro/internal/intervals"
	"github.com/argunvaran/wfm-pro/internal/scheduling"
	"github.com/argunvaran/wfm-pro/internal/staffing"
	"github.com/argunvaran/wfm-pro/pkg/config"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	"github.com/argunvaran/wfm-pro/pkg/logger"
)

// RouterParams carry everything the API routes depend on.
type RouterParams struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger
	LockStore   middleware.LockStore

	Intervals  intervals.Service
	Forecast   forecast.Service
	Scheduling scheduling.Service
	Adherence  adherence.Service
	Roster     controllers.RosterDirectory
	Calculator staffing.Calculator

	Now func() time.Time
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	defaultModel := enums.ForecastModel(cfg.Planning.ForecastModel)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.DBPinger, params.RedisPinger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.TenantContext(logg))

		r.Post("/staffing/requirements", controllers.StaffingRequirements(params.Calculator, logg))

		r.Route("/planning", func(r chi.Router) {
			r.Use(middleware.PlanningLock(params.LockStore, logg))
			r.Post("/aggregate", controllers.AggregateActuals(params.Intervals, logg))
			r.Post("/forecast", controllers.GenerateForecast(params.Forecast, defaultModel, logg))
			r.Post("/schedule", controllers.GenerateSchedule(params.Scheduling, logg))
		})

		r.Get("/intervals", controllers.ListIntervals(params.Intervals, logg))
		r.Get("/shifts", controllers.ListShifts(params.Scheduling, logg))
		r.Post("/shifts/publish", controllers.PublishShifts(params.Scheduling, logg))
		r.Get("/adherence/live", controllers.LiveAdherence(params.Adherence, logg, params.Now))

		r.Get("/queues", controllers.ListQueues(params.Roster, logg))
		r.Get("/templates", controllers.ListTemplates(params.Roster, logg))
		r.Get("/templates/{templateID}", controllers.GetTemplate(params.Roster, logg))
	})

	return r
}
