package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
)

type stubShiftsRepo struct {
	replaced    []models.AssignedShift
	replaceFrom time.Time
	replaceTo   time.Time
	replaceErr  error
	replaceRuns int

	publishCount int64
	publishErr   error

	listRows  []models.AssignedShift
	listErr   error
	lastQuery listQuery
}

func (s *stubShiftsRepo) ReplaceShifts(ctx context.Context, tenantID uuid.UUID, from, to time.Time, shifts []models.AssignedShift) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = shifts
	s.replaceFrom = from
	s.replaceTo = to
	s.replaceRuns++
	return nil
}

func (s *stubShiftsRepo) Publish(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	if s.publishErr != nil {
		return 0, s.publishErr
	}
	return s.publishCount, nil
}

func (s *stubShiftsRepo) List(ctx context.Context, opts listQuery) ([]models.AssignedShift, error) {
	s.lastQuery = opts
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listRows, nil
}

type stubVolumesRepo struct {
	rows []models.VolumeInterval
	err  error
}

func (s *stubVolumesRepo) ListByDateRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.VolumeInterval, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

type stubRosterRepo struct {
	agents    []models.Agent
	templates []models.ShiftWindowTemplate
	err       error
}

func (s *stubRosterRepo) ListActiveAgents(ctx context.Context, tenantID uuid.UUID) ([]models.Agent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.agents, nil
}

func (s *stubRosterRepo) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]models.ShiftWindowTemplate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.templates, nil
}

func demandRow(tenantID uuid.UUID, date time.Time, startMin, calls, aht int) models.VolumeInterval {
	return models.VolumeInterval{
		ID:               uuid.New(),
		TenantID:         tenantID,
		QueueID:          uuid.New(),
		Date:             date,
		IntervalStartMin: startMin,
		CallsOffered:     calls,
		AHTSeconds:       aht,
	}
}

func rosterAgent(tenantID uuid.UUID, name string, templateID *uuid.UUID, createdAt time.Time) models.Agent {
	return models.Agent{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Name:       name,
		Active:     true,
		TemplateID: templateID,
		CreatedAt:  createdAt,
	}
}

func newTestService(shifts *stubShiftsRepo, volumes *stubVolumesRepo, roster *stubRosterRepo) Service {
	svc, err := NewService(shifts, volumes, roster)
	if err != nil {
		panic(err)
	}
	return svc
}

func TestGenerateSchedule_AssignsDefaultWindowAgainstDemand(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	shiftsRepo := &stubShiftsRepo{}
	volumes := &stubVolumesRepo{rows: []models.VolumeInterval{
		demandRow(tenantID, day, 10*60, 100, 180),
	}}
	roster := &stubRosterRepo{agents: []models.Agent{
		rosterAgent(tenantID, "solo", nil, day.Add(-time.Hour)),
	}}
	svc := newTestService(shiftsRepo, volumes, roster)

	count, err := svc.GenerateSchedule(context.Background(), tenantID, day, day)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	shift := shiftsRepo.replaced[0]
	if shift.StartMin != 9*60 || shift.EndMin != 18*60 {
		t.Errorf("shift span [%d, %d), want [540, 1080)", shift.StartMin, shift.EndMin)
	}
	if shift.BreakStartMin != 13*60 {
		t.Errorf("break start = %d, want %d", shift.BreakStartMin, 13*60)
	}
	if shift.BreakDurationMin != 60 {
		t.Errorf("break duration = %d, want 60", shift.BreakDurationMin)
	}
	if shift.Published {
		t.Error("fresh shift must start unpublished")
	}
	if len(shift.Blocks) == 0 {
		t.Fatal("shift missing activity blocks")
	}
	cursor := shift.StartMin
	for _, b := range shift.Blocks {
		if b.StartMin != cursor {
			t.Fatalf("blocks leave a gap at %d", cursor)
		}
		cursor = b.EndMin
	}
	if cursor != shift.EndMin {
		t.Fatalf("blocks end at %d, want %d", cursor, shift.EndMin)
	}
}

func TestGenerateSchedule_NoDemandAssignsNothing(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	shiftsRepo := &stubShiftsRepo{}
	roster := &stubRosterRepo{agents: []models.Agent{
		rosterAgent(tenantID, "idle", nil, day.Add(-time.Hour)),
	}}
	svc := newTestService(shiftsRepo, &stubVolumesRepo{}, roster)

	count, err := svc.GenerateSchedule(context.Background(), tenantID, day, day)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
	if shiftsRepo.replaceRuns != 1 {
		t.Fatal("replace should still run to clear the range")
	}
}

func TestGenerateSchedule_LateWindowClipsAtMidnight(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tmpl := models.ShiftWindowTemplate{
		ID:               uuid.New(),
		TenantID:         tenantID,
		Name:             "Evening",
		EarliestStartMin: 20 * 60,
		LatestStartMin:   20 * 60,
		DurationHours:    9,
		PaidHours:        8,
	}
	shiftsRepo := &stubShiftsRepo{}
	volumes := &stubVolumesRepo{rows: []models.VolumeInterval{
		demandRow(tenantID, day, 21*60, 50, 200),
	}}
	roster := &stubRosterRepo{
		agents:    []models.Agent{rosterAgent(tenantID, "night", &tmpl.ID, day.Add(-time.Hour))},
		templates: []models.ShiftWindowTemplate{tmpl},
	}
	svc := newTestService(shiftsRepo, volumes, roster)

	count, err := svc.GenerateSchedule(context.Background(), tenantID, day, day)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	shift := shiftsRepo.replaced[0]
	if shift.StartMin != 20*60 {
		t.Errorf("start = %d, want %d", shift.StartMin, 20*60)
	}
	if shift.EndMin != 23*60+59 {
		t.Errorf("end = %d, want %d (clipped at end of day)", shift.EndMin, 23*60+59)
	}
	for _, b := range shift.Blocks {
		if b.EndMin > 23*60+59 {
			t.Fatalf("block crosses midnight: [%d, %d)", b.StartMin, b.EndMin)
		}
	}
}

func TestGenerateSchedule_TieBreakPrefersEarliestStart(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tmpl := models.ShiftWindowTemplate{
		ID:               uuid.New(),
		TenantID:         tenantID,
		Name:             "Flexible",
		EarliestStartMin: 8 * 60,
		LatestStartMin:   12 * 60,
		DurationHours:    4,
		PaidHours:        4,
	}
	// Uniform demand across the whole window: every feasible start has equal
	// impact, so the earliest-enumerated one must win.
	var rows []models.VolumeInterval
	for hour := 8; hour <= 16; hour++ {
		rows = append(rows, demandRow(tenantID, day, hour*60, 10, 180))
	}
	shiftsRepo := &stubShiftsRepo{}
	roster := &stubRosterRepo{
		agents:    []models.Agent{rosterAgent(tenantID, "flex", &tmpl.ID, day.Add(-time.Hour))},
		templates: []models.ShiftWindowTemplate{tmpl},
	}
	svc := newTestService(shiftsRepo, &stubVolumesRepo{rows: rows}, roster)

	if _, err := svc.GenerateSchedule(context.Background(), tenantID, day, day); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := shiftsRepo.replaced[0].StartMin; got != 8*60 {
		t.Fatalf("start = %d, want %d (earliest equal-impact candidate)", got, 8*60)
	}
}

func TestGenerateSchedule_RestPeriodEnforced(t *testing.T) {
	tenantID := uuid.New()
	day1 := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	tmpl := models.ShiftWindowTemplate{
		ID:               uuid.New(),
		TenantID:         tenantID,
		Name:             "Any hour",
		EarliestStartMin: 0,
		LatestStartMin:   23 * 60,
		DurationHours:    9,
		PaidHours:        8,
	}
	// Day 1 demand at hour 20 pulls the shift late (12:00-21:00); day 2
	// demand at hour 8 is only reachable at the 08:00 start, exactly 11
	// hours after the previous end.
	rows := []models.VolumeInterval{
		demandRow(tenantID, day1, 20*60, 50, 200),
		demandRow(tenantID, day2, 8*60, 50, 200),
	}
	shiftsRepo := &stubShiftsRepo{}
	roster := &stubRosterRepo{
		agents:    []models.Agent{rosterAgent(tenantID, "late", &tmpl.ID, day1.Add(-time.Hour))},
		templates: []models.ShiftWindowTemplate{tmpl},
	}
	svc := newTestService(shiftsRepo, &stubVolumesRepo{rows: rows}, roster)

	count, err := svc.GenerateSchedule(context.Background(), tenantID, day1, day2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	first, second := shiftsRepo.replaced[0], shiftsRepo.replaced[1]
	if first.StartMin != 12*60 {
		t.Errorf("day 1 start = %d, want %d", first.StartMin, 12*60)
	}
	if second.StartMin != 8*60 {
		t.Errorf("day 2 start = %d, want %d (first start 11h after previous end)", second.StartMin, 8*60)
	}

	gap := day2.Add(time.Duration(second.StartMin)*time.Minute).
		Sub(day1.Add(time.Duration(first.EndMin) * time.Minute))
	if gap < 11*time.Hour {
		t.Fatalf("rest gap %v is under 11h", gap)
	}
}

func TestGenerateSchedule_WeeklyHoursCapped(t *testing.T) {
	tenantID := uuid.New()
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	var rows []models.VolumeInterval
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		rows = append(rows, demandRow(tenantID, day, 10*60, 100, 180))
	}
	shiftsRepo := &stubShiftsRepo{}
	roster := &stubRosterRepo{agents: []models.Agent{
		rosterAgent(tenantID, "workhorse", nil, start.Add(-time.Hour)),
	}}
	svc := newTestService(shiftsRepo, &stubVolumesRepo{rows: rows}, roster)

	if _, err := svc.GenerateSchedule(context.Background(), tenantID, start, end); err != nil {
		t.Fatalf("generate: %v", err)
	}

	// 8 paid hours per default-window shift: a 6th day would hit 48h.
	if len(shiftsRepo.replaced) != 5 {
		t.Fatalf("shifts = %d, want 5", len(shiftsRepo.replaced))
	}
	totalPaid := float64(len(shiftsRepo.replaced)) * 8
	if totalPaid > 45 {
		t.Fatalf("weekly paid hours %v exceed 45", totalPaid)
	}
}

func TestGenerateSchedule_OneShiftPerAgentPerDay(t *testing.T) {
	tenantID := uuid.New()
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	var rows []models.VolumeInterval
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		rows = append(rows, demandRow(tenantID, day, 10*60, 200, 240))
	}
	shiftsRepo := &stubShiftsRepo{}
	roster := &stubRosterRepo{agents: []models.Agent{
		rosterAgent(tenantID, "a", nil, start.Add(-2*time.Hour)),
		rosterAgent(tenantID, "b", nil, start.Add(-time.Hour)),
	}}
	svc := newTestService(shiftsRepo, &stubVolumesRepo{rows: rows}, roster)

	if _, err := svc.GenerateSchedule(context.Background(), tenantID, start, end); err != nil {
		t.Fatalf("generate: %v", err)
	}

	seen := map[string]bool{}
	for _, shift := range shiftsRepo.replaced {
		key := shift.AgentID.String() + shift.Date.Format("2006-01-02")
		if seen[key] {
			t.Fatalf("agent %s has two shifts on %s", shift.AgentID, shift.Date)
		}
		seen[key] = true
	}
}

func TestGenerateSchedule_NoAssignmentWithoutDeficit(t *testing.T) {
	tenantID := uuid.New()
	day1 := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	// Light demand needs two agents per day; with three on the roster one
	// always idles, and the fairness rotation moves the idle slot around.
	rows := []models.VolumeInterval{
		demandRow(tenantID, day1, 10*60, 2, 180),
		demandRow(tenantID, day2, 10*60, 2, 180),
	}
	a := rosterAgent(tenantID, "a", nil, day1.Add(-3*time.Hour))
	b := rosterAgent(tenantID, "b", nil, day1.Add(-2*time.Hour))
	c := rosterAgent(tenantID, "c", nil, day1.Add(-time.Hour))
	shiftsRepo := &stubShiftsRepo{}
	roster := &stubRosterRepo{agents: []models.Agent{a, b, c}}
	svc := newTestService(shiftsRepo, &stubVolumesRepo{rows: rows}, roster)

	count, err := svc.GenerateSchedule(context.Background(), tenantID, day1, day2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 4 {
		t.Fatalf("count = %d, want 4 (two per day)", count)
	}

	assigned := map[string][]uuid.UUID{}
	for _, shift := range shiftsRepo.replaced {
		key := shift.Date.Format("2006-01-02")
		assigned[key] = append(assigned[key], shift.AgentID)
	}
	day1Agents := assigned[day1.Format("2006-01-02")]
	if len(day1Agents) != 2 || day1Agents[0] != a.ID || day1Agents[1] != b.ID {
		t.Fatalf("day 1 should go to the two roster-first agents, got %v", day1Agents)
	}
	day2Agents := assigned[day2.Format("2006-01-02")]
	if len(day2Agents) != 2 || day2Agents[0] != c.ID {
		t.Fatalf("day 2 should start with the rested agent, got %v", day2Agents)
	}
}

func TestGenerateSchedule_ValidatesInput(t *testing.T) {
	svc := newTestService(&stubShiftsRepo{}, &stubVolumesRepo{}, &stubRosterRepo{})
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := svc.GenerateSchedule(context.Background(), uuid.Nil, day, day)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing tenant: expected validation error, got %v", err)
	}

	_, err = svc.GenerateSchedule(context.Background(), uuid.New(), day, day.AddDate(0, 0, -1))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("inverted range: expected validation error, got %v", err)
	}
}

func TestGenerateSchedule_UsesTemplateActivitiesForBlocks(t *testing.T) {
	tenantID := uuid.New()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tmpl := models.ShiftWindowTemplate{
		ID:               uuid.New(),
		TenantID:         tenantID,
		Name:             "Standard 09-18",
		EarliestStartMin: 9 * 60,
		LatestStartMin:   9 * 60,
		DurationHours:    9,
		PaidHours:        8,
		Activities: []models.TemplateActivity{
			{ID: uuid.New(), TenantID: tenantID, Kind: enums.ActivityLunch, StartOffsetMin: 180, DurationMin: 60},
		},
	}
	shiftsRepo := &stubShiftsRepo{}
	volumes := &stubVolumesRepo{rows: []models.VolumeInterval{
		demandRow(tenantID, day, 10*60, 50, 200),
	}}
	roster := &stubRosterRepo{
		agents:    []models.Agent{rosterAgent(tenantID, "standard", &tmpl.ID, day.Add(-time.Hour))},
		templates: []models.ShiftWindowTemplate{tmpl},
	}
	svc := newTestService(shiftsRepo, volumes, roster)

	if _, err := svc.GenerateSchedule(context.Background(), tenantID, day, day); err != nil {
		t.Fatalf("generate: %v", err)
	}

	blocks := shiftsRepo.replaced[0].Blocks
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3 (work, lunch, work)", len(blocks))
	}
	if blocks[1].Kind != enums.ActivityLunch || blocks[1].StartMin != 12*60 || blocks[1].EndMin != 13*60 {
		t.Fatalf("lunch block = %s[%d, %d), want LUNCH[720, 780)", blocks[1].Kind, blocks[1].StartMin, blocks[1].EndMin)
	}
}

func TestPublishShifts(t *testing.T) {
	shiftsRepo := &stubShiftsRepo{publishCount: 7}
	svc := newTestService(shiftsRepo, &stubVolumesRepo{}, &stubRosterRepo{})
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	count, err := svc.PublishShifts(context.Background(), uuid.New(), day, day.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if count != 7 {
		t.Fatalf("count = %d, want 7", count)
	}

	_, err = svc.PublishShifts(context.Background(), uuid.Nil, day, day)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing tenant: expected validation error, got %v", err)
	}
}

func TestListShifts_ForwardsFilters(t *testing.T) {
	tenantID := uuid.New()
	agentID := uuid.New()
	published := true
	now := time.Now()

	shiftsRepo := &stubShiftsRepo{listRows: []models.AssignedShift{
		{ID: uuid.New(), TenantID: tenantID, AgentID: agentID, Date: now, CreatedAt: now},
	}}
	svc := newTestService(shiftsRepo, &stubVolumesRepo{}, &stubRosterRepo{})

	result, err := svc.ListShifts(context.Background(), ListParams{
		TenantID:  tenantID,
		AgentID:   &agentID,
		Published: &published,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}
	if shiftsRepo.lastQuery.agentID == nil || *shiftsRepo.lastQuery.agentID != agentID {
		t.Fatal("agent filter not forwarded")
	}
	if shiftsRepo.lastQuery.published == nil || !*shiftsRepo.lastQuery.published {
		t.Fatal("published filter not forwarded")
	}
}
