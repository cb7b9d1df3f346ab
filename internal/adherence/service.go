package adherence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
)

// Live states that contradict a scheduled state. Labels are compared after
// upper-casing, so feed spelling variants ("On Call", "ON CALL") collapse.
var (
	notWorkingStates = map[string]struct{}{
		"OFFLINE": {}, "BREAK": {}, "AUX": {}, "PAUSE": {},
	}
	workingStates = map[string]struct{}{
		"READY": {}, "TALKING": {}, "ON CALL": {},
	}
)

type liveStateRepository interface {
	ListStates(ctx context.Context, tenantID uuid.UUID) ([]models.LiveAgentState, error)
}

type scheduleRepository interface {
	ListForDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]models.AssignedShift, error)
}

type agentsRepository interface {
	ListActiveAgents(ctx context.Context, tenantID uuid.UUID) ([]models.Agent, error)
}

// AgentAdherence is one row of the live adherence snapshot.
type AgentAdherence struct {
	AgentID        uuid.UUID            `json:"agent_id"`
	AgentName      string               `json:"agent_name"`
	LiveState      enums.LiveState      `json:"live_state"`
	InStateSeconds int64                `json:"in_state_seconds"`
	ScheduledState enums.ScheduledState `json:"scheduled_state"`
	IsAdherent     bool                 `json:"is_adherent"`
}

// Service compares live agent states against the schedule.
type Service interface {
	LiveAdherence(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]AgentAdherence, error)
}

type service struct {
	states   liveStateRepository
	schedule scheduleRepository
	agents   agentsRepository
}

// NewService builds an adherence service backed by the provided repositories.
func NewService(states liveStateRepository, schedule scheduleRepository, agents agentsRepository) (Service, error) {
	if states == nil {
		return nil, fmt.Errorf("live state repository required")
	}
	if schedule == nil {
		return nil, fmt.Errorf("schedule repository required")
	}
	if agents == nil {
		return nil, fmt.Errorf("agents repository required")
	}
	return &service{states: states, schedule: schedule, agents: agents}, nil
}

// LiveAdherence snapshots every active agent at the given instant: what the
// schedule says they should be doing versus what the telephony feed reports.
// Agents with no reported state count as Offline since the epoch of the
// snapshot.
func (s *service) LiveAdherence(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]AgentAdherence, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}

	agents, err := s.agents.ListActiveAgents(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active agents")
	}

	instant := now.UTC()
	today := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, time.UTC)
	shifts, err := s.schedule.ListForDate(ctx, tenantID, today)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shifts for today")
	}
	shiftByAgent := make(map[uuid.UUID]models.AssignedShift, len(shifts))
	for _, shift := range shifts {
		shiftByAgent[shift.AgentID] = shift
	}

	liveStates, err := s.states.ListStates(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list live states")
	}
	stateByAgent := make(map[uuid.UUID]models.LiveAgentState, len(liveStates))
	for _, st := range liveStates {
		stateByAgent[st.AgentID] = st
	}

	minuteOfDay := instant.Hour()*60 + instant.Minute()

	snapshot := make([]AgentAdherence, 0, len(agents))
	for _, agent := range agents {
		scheduled := scheduledStateAt(shiftByAgent, agent.ID, minuteOfDay)

		live := enums.LiveOffline
		var inState int64
		if st, ok := stateByAgent[agent.ID]; ok {
			live = st.State
			if d := instant.Sub(st.Since); d > 0 {
				inState = int64(d.Seconds())
			}
		}

		snapshot = append(snapshot, AgentAdherence{
			AgentID:        agent.ID,
			AgentName:      agent.Name,
			LiveState:      live,
			InStateSeconds: inState,
			ScheduledState: scheduled,
			IsAdherent:     isAdherent(scheduled, live),
		})
	}
	return snapshot, nil
}

// scheduledStateAt resolves Working/Break/Off from the agent's shift for the
// day. Shift and break windows are half-open: [start, end).
func scheduledStateAt(shifts map[uuid.UUID]models.AssignedShift, agentID uuid.UUID, minuteOfDay int) enums.ScheduledState {
	shift, ok := shifts[agentID]
	if !ok {
		return enums.ScheduledOff
	}
	if minuteOfDay < shift.StartMin || minuteOfDay >= shift.EndMin {
		return enums.ScheduledOff
	}
	if minuteOfDay >= shift.BreakStartMin && minuteOfDay < shift.BreakStartMin+shift.BreakDurationMin {
		return enums.ScheduledBreak
	}
	return enums.ScheduledWorking
}

// isAdherent applies the incompatibility tables: scheduled work contradicted
// by idle states, scheduled break or off contradicted by active states.
// Unscheduled work is flagged, not tolerated.
func isAdherent(scheduled enums.ScheduledState, live enums.LiveState) bool {
	label := live.Normalized()
	switch scheduled {
	case enums.ScheduledWorking:
		_, bad := notWorkingStates[label]
		return !bad
	case enums.ScheduledBreak, enums.ScheduledOff:
		_, bad := workingStates[label]
		return !bad
	default:
		return true
	}
}
