package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/internal/activities"
	"github.com/argunvaran/wfm-pro/internal/staffing"
	"github.com/argunvaran/wfm-pro/pkg/db/models"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
	pkgpagination "github.com/argunvaran/wfm-pro/pkg/pagination"
)

// Labor rules applied by the greedy assignment pass.
const (
	maxWeeklyPaidHours = 45.0
	minRestHours       = 11

	shiftBreakDurationMin = 60

	// lastMinuteOfDay caps shift spans that would cross midnight. Overnight
	// shifts are not modeled; a late window is clipped here, which leaves
	// post-midnight demand uncovered. This is a deliberate, tested policy.
	lastMinuteOfDay = 23*60 + 59
)

// The system default shift window for agents without a template: starts at
// 09:00 exactly, runs 9 hours, 8 of them paid.
const (
	defaultWindowStartMin      = 9 * 60
	defaultWindowDurationHours = 9
	defaultWindowPaidHours     = 8.0
)

type shiftsRepository interface {
	ReplaceShifts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, shifts []models.AssignedShift) error
	Publish(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error)
	List(ctx context.Context, opts listQuery) ([]models.AssignedShift, error)
}

type volumesRepository interface {
	ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.VolumeInterval, error)
}

type rosterRepository interface {
	ListActiveAgents(ctx context.Context, tenantID uuid.UUID) ([]models.Agent, error)
	ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]models.ShiftWindowTemplate, error)
}

// Service generates, publishes, and lists assigned shifts.
type Service interface {
	GenerateSchedule(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (int, error)
	PublishShifts(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error)
	ListShifts(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	shifts  shiftsRepository
	volumes volumesRepository
	roster  rosterRepository
	calc    staffing.Calculator
}

// NewService builds a scheduling service backed by the provided repositories.
func NewService(shifts shiftsRepository, volumes volumesRepository, roster rosterRepository) (Service, error) {
	if shifts == nil {
		return nil, fmt.Errorf("shifts repository required")
	}
	if volumes == nil {
		return nil, fmt.Errorf("volumes repository required")
	}
	if roster == nil {
		return nil, fmt.Errorf("roster repository required")
	}
	return &service{
		shifts:  shifts,
		volumes: volumes,
		roster:  roster,
		calc:    staffing.NewCalculator(),
	}, nil
}

// window is the resolved start range and duration an agent may be scheduled
// into on a given day.
type window struct {
	earliestStartMin int
	latestStartMin   int
	durationHours    int
	paidHours        float64
	template         *models.ShiftWindowTemplate
}

type agentState struct {
	agent         models.Agent
	window        window
	hoursThisWeek float64
	lastShiftEnd  *time.Time
}

// GenerateSchedule rebuilds the tenant's shifts for [startDate, endDate]
// with a greedy impact-maximizing pass. Agents are considered in ascending
// order of accumulated paid hours (stable, so equally-loaded agents keep
// roster order); a shift is only assigned when it covers at least one
// hour still under its requirement.
func (s *service) GenerateSchedule(ctx context.Context, tenantID uuid.UUID, startDate, endDate time.Time) (int, error) {
	if tenantID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	if endDate.Before(startDate) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "end date before start date")
	}

	volumes, err := s.volumes.ListByDateRange(ctx, tenantID, startDate, endDate)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list volume intervals")
	}
	agents, err := s.roster.ListActiveAgents(ctx, tenantID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active agents")
	}
	templates, err := s.roster.ListTemplates(ctx, tenantID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shift templates")
	}

	templateByID := make(map[uuid.UUID]*models.ShiftWindowTemplate, len(templates))
	for i := range templates {
		templateByID[templates[i].ID] = &templates[i]
	}

	requirements := s.hourlyRequirements(volumes)

	states := make([]*agentState, len(agents))
	for i, agent := range agents {
		states[i] = &agentState{agent: agent, window: resolveWindow(agent, templateByID)}
	}

	var shifts []models.AssignedShift
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		req := requirements[day.Format("2006-01-02")]
		var coverage [24]int

		// Fairness: least-loaded agents first; stable keeps roster order on ties.
		sort.SliceStable(states, func(i, j int) bool {
			return states[i].hoursThisWeek < states[j].hoursThisWeek
		})

		for _, st := range states {
			if st.hoursThisWeek+st.window.paidHours > maxWeeklyPaidHours {
				continue
			}

			bestStart, bestImpact := -1, 0
			for hour := 0; hour < 24; hour++ {
				startMin := hour * 60
				if startMin < st.window.earliestStartMin || startMin > st.window.latestStartMin {
					continue
				}
				if st.lastShiftEnd != nil {
					candidate := day.Add(time.Duration(startMin) * time.Minute)
					if candidate.Sub(*st.lastShiftEnd) < minRestHours*time.Hour {
						continue
					}
				}

				// Later candidates replace only on strict improvement, so
				// equal-impact ties keep the earliest start.
				if impact := shiftImpact(hour, st.window.durationHours, coverage, req); impact > bestImpact {
					bestStart, bestImpact = hour, impact
				}
			}
			if bestImpact == 0 {
				continue
			}

			shift := buildShift(tenantID, st, day, bestStart)
			shift.Blocks = activities.Decompose(shift, st.window.template)
			shifts = append(shifts, shift)

			st.hoursThisWeek += st.window.paidHours
			end := day.Add(time.Duration(shift.EndMin) * time.Minute)
			st.lastShiftEnd = &end

			breakHour := bestStart + st.window.durationHours/2
			for _, hr := range spanHours(bestStart, st.window.durationHours) {
				if hr != breakHour {
					coverage[hr]++
				}
			}
		}
	}

	if err := s.shifts.ReplaceShifts(ctx, tenantID, startDate, endDate, shifts); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace shifts")
	}
	return len(shifts), nil
}

// hourlyRequirements folds volume rows into per-date, per-hour agent
// requirements: calls summed and handle time volume-weighted within the
// hour, then run through the Erlang-C search at the fixed 20s/80% target.
func (s *service) hourlyRequirements(volumes []models.VolumeInterval) map[string][24]int {
	type hourAccum struct {
		calls   int
		ahtCall int // sum of calls*aht
	}

	accum := map[string]*[24]hourAccum{}
	for _, row := range volumes {
		key := row.Date.Format("2006-01-02")
		hours := accum[key]
		if hours == nil {
			hours = &[24]hourAccum{}
			accum[key] = hours
		}
		h := row.Hour()
		hours[h].calls += row.CallsOffered
		hours[h].ahtCall += row.CallsOffered * row.AHTSeconds
	}

	requirements := make(map[string][24]int, len(accum))
	for key, hours := range accum {
		var req [24]int
		for h, acc := range hours {
			if acc.calls == 0 {
				continue
			}
			weightedAHT := acc.ahtCall / acc.calls
			req[h] = s.calc.RequiredAgents(acc.calls, 3600, weightedAHT, staffing.DefaultAnswerTargetSeconds, staffing.DefaultServiceLevelTarget)
		}
		requirements[key] = req
	}
	return requirements
}

// shiftImpact counts the span hours, break hour excluded, whose coverage is
// still below requirement.
func shiftImpact(startHour, durationHours int, coverage [24]int, req [24]int) int {
	breakHour := startHour + durationHours/2
	impact := 0
	for _, hr := range spanHours(startHour, durationHours) {
		if hr == breakHour {
			continue
		}
		if coverage[hr] < req[hr] {
			impact++
		}
	}
	return impact
}

// spanHours returns the hours a shift occupies, clipped at the end of day.
func spanHours(startHour, durationHours int) []int {
	endHour := startHour + durationHours
	if endHour > 24 {
		endHour = 24
	}
	hours := make([]int, 0, endHour-startHour)
	for hr := startHour; hr < endHour; hr++ {
		hours = append(hours, hr)
	}
	return hours
}

func buildShift(tenantID uuid.UUID, st *agentState, day time.Time, startHour int) models.AssignedShift {
	startMin := startHour * 60
	endMin := (startHour + st.window.durationHours) * 60
	if endMin > lastMinuteOfDay {
		endMin = lastMinuteOfDay
	}
	breakStartMin := (startHour + st.window.durationHours/2) * 60
	if breakStartMin > endMin {
		breakStartMin = endMin
	}
	return models.AssignedShift{
		ID:               uuid.New(),
		TenantID:         tenantID,
		AgentID:          st.agent.ID,
		Date:             day,
		StartMin:         startMin,
		EndMin:           endMin,
		BreakStartMin:    breakStartMin,
		BreakDurationMin: shiftBreakDurationMin,
	}
}

func resolveWindow(agent models.Agent, templates map[uuid.UUID]*models.ShiftWindowTemplate) window {
	if agent.TemplateID != nil {
		if tmpl, ok := templates[*agent.TemplateID]; ok {
			return window{
				earliestStartMin: tmpl.EarliestStartMin,
				latestStartMin:   tmpl.LatestStartMin,
				durationHours:    int(tmpl.DurationHours),
				paidHours:        tmpl.PaidHours,
				template:         tmpl,
			}
		}
	}
	return window{
		earliestStartMin: defaultWindowStartMin,
		latestStartMin:   defaultWindowStartMin,
		durationHours:    defaultWindowDurationHours,
		paidHours:        defaultWindowPaidHours,
	}
}

func (s *service) PublishShifts(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	if tenantID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	if to.Before(from) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "end date before start date")
	}

	count, err := s.shifts.Publish(ctx, tenantID, from, to)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish shifts")
	}
	return count, nil
}

func (s *service) ListShifts(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		tenantID:  params.TenantID,
		agentID:   params.AgentID,
		from:      params.From,
		to:        params.To,
		published: params.Published,
		limit:     pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.shifts.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shifts")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	items := make([]ListItem, len(rows))
	for i, row := range rows {
		items[i] = toListItem(row)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}
