package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	"github.com/argunvaran/wfm-pro/pkg/enums"
	pkgpagination "github.com/argunvaran/wfm-pro/pkg/pagination"
)

type ListParams struct {
	TenantID  uuid.UUID
	AgentID   *uuid.UUID
	From      *time.Time
	To        *time.Time
	Published *bool
	pkgpagination.Params
}

type ListResult struct {
	Items  []ListItem `json:"items"`
	Cursor string     `json:"cursor"`
}

type ListItem struct {
	ID               uuid.UUID   `json:"id"`
	AgentID          uuid.UUID   `json:"agent_id"`
	Date             string      `json:"date"`
	StartMin         int         `json:"start_min"`
	EndMin           int         `json:"end_min"`
	BreakStartMin    int         `json:"break_start_min"`
	BreakDurationMin int         `json:"break_duration_min"`
	Published        bool        `json:"published"`
	Blocks           []BlockItem `json:"blocks"`
	CreatedAt        time.Time   `json:"created_at"`
}

type BlockItem struct {
	Kind     enums.ActivityKind `json:"kind"`
	StartMin int                `json:"start_min"`
	EndMin   int                `json:"end_min"`
}

type listQuery struct {
	tenantID  uuid.UUID
	agentID   *uuid.UUID
	from      *time.Time
	to        *time.Time
	published *bool
	limit     int
	cursor    *pkgpagination.Cursor
}

func toListItem(m models.AssignedShift) ListItem {
	blocks := make([]BlockItem, len(m.Blocks))
	for i, b := range m.Blocks {
		blocks[i] = BlockItem{Kind: b.Kind, StartMin: b.StartMin, EndMin: b.EndMin}
	}
	return ListItem{
		ID:               m.ID,
		AgentID:          m.AgentID,
		Date:             m.Date.Format("2006-01-02"),
		StartMin:         m.StartMin,
		EndMin:           m.EndMin,
		BreakStartMin:    m.BreakStartMin,
		BreakDurationMin: m.BreakDurationMin,
		Published:        m.Published,
		Blocks:           blocks,
		CreatedAt:        m.CreatedAt,
	}
}
