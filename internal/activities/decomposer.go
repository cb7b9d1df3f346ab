package activities

import (
	"github.com/google/uuid"

	"github.com/argunvaran/wfm-pro/pkg/db/models"
	"github.com/argunvaran/wfm-pro/pkg/enums"
)

// Fallback pattern offsets (minutes from shift start) used when an agent has
// no template: 3h work, 1h lunch, work to the 6h mark, a 15-minute break,
// then work to shift end.
const (
	fallbackLunchOffsetMin = 3 * 60
	fallbackLunchMin       = 60
	fallbackBreakOffsetMin = 6 * 60
	fallbackBreakMin       = 15
)

// Decompose splits a shift into contiguous activity blocks covering exactly
// [shift.StartMin, shift.EndMin). Template activities are walked in offset
// order with WORK filling every gap; without a template the fixed fallback
// pattern applies. Segments are clipped to the shift span, so the coverage
// invariant holds even for shifts shorter than their pattern.
func Decompose(shift models.AssignedShift, template *models.ShiftWindowTemplate) []models.ShiftActivityBlock {
	if shift.EndMin <= shift.StartMin {
		return nil
	}

	var segments []segment
	if template != nil && len(template.Activities) > 0 {
		for _, act := range template.Activities {
			segments = append(segments, segment{
				kind:     act.Kind,
				startMin: shift.StartMin + act.StartOffsetMin,
				endMin:   shift.StartMin + act.StartOffsetMin + act.DurationMin,
			})
		}
	} else {
		segments = []segment{
			{kind: enums.ActivityLunch, startMin: shift.StartMin + fallbackLunchOffsetMin, endMin: shift.StartMin + fallbackLunchOffsetMin + fallbackLunchMin},
			{kind: enums.ActivityBreak, startMin: shift.StartMin + fallbackBreakOffsetMin, endMin: shift.StartMin + fallbackBreakOffsetMin + fallbackBreakMin},
		}
	}

	var blocks []models.ShiftActivityBlock
	emit := func(kind enums.ActivityKind, startMin, endMin int) {
		if endMin <= startMin {
			return
		}
		blocks = append(blocks, models.ShiftActivityBlock{
			ID:       uuid.New(),
			TenantID: shift.TenantID,
			ShiftID:  shift.ID,
			Kind:     kind,
			StartMin: startMin,
			EndMin:   endMin,
		})
	}

	cursor := shift.StartMin
	for _, seg := range segments {
		startMin := clamp(seg.startMin, cursor, shift.EndMin)
		endMin := clamp(seg.endMin, startMin, shift.EndMin)

		emit(enums.ActivityWork, cursor, startMin)
		emit(seg.kind, startMin, endMin)
		if endMin > cursor {
			cursor = endMin
		}
	}
	emit(enums.ActivityWork, cursor, shift.EndMin)

	return blocks
}

type segment struct {
	kind     enums.ActivityKind
	startMin int
	endMin   int
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
