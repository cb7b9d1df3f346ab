package controllers

import (
	"net/http"

	"github.com/argunvaran/wfm-pro/api/responses"
	"github.com/argunvaran/wfm-pro/api/validators"
	"github.com/argunvaran/wfm-pro/internal/staffing"
	"github.com/argunvaran/wfm-pro/pkg/logger"
)

type staffingRequest struct {
	Volume             int      `json:"volume" validate:"required,min=1"`
	PeriodSeconds      int      `json:"period_seconds" validate:"required,min=60"`
	AvgHandleSeconds   int      `json:"avg_handle_seconds" validate:"required,min=1"`
	AnswerTargetSec    *int     `json:"answer_target_sec,omitempty" validate:"omitempty,min=1"`
	ServiceLevelTarget *float64 `json:"service_level_target,omitempty" validate:"omitempty,gt=0,lt=1"`
}

type staffingResponse struct {
	RequiredAgents int     `json:"required_agents"`
	Intensity      float64 `json:"intensity"`
	ServiceLevel   float64 `json:"service_level"`
}

// StaffingRequirements answers "how many agents do I need" for an arbitrary
// load, without touching stored volumes.
func StaffingRequirements(calc staffing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload staffingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		targetSec := staffing.DefaultAnswerTargetSeconds
		if payload.AnswerTargetSec != nil {
			targetSec = *payload.AnswerTargetSec
		}
		slaTarget := staffing.DefaultServiceLevelTarget
		if payload.ServiceLevelTarget != nil {
			slaTarget = *payload.ServiceLevelTarget
		}

		agents := calc.RequiredAgents(payload.Volume, payload.PeriodSeconds, payload.AvgHandleSeconds, targetSec, slaTarget)
		intensity := calc.Intensity(payload.Volume, payload.PeriodSeconds, payload.AvgHandleSeconds)

		responses.WriteSuccess(w, staffingResponse{
			RequiredAgents: agents,
			Intensity:      intensity,
			ServiceLevel:   calc.ServiceLevel(agents, intensity, payload.AvgHandleSeconds, targetSec),
		})
	}
}
