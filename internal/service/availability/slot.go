package availability

import (
	"github.com/openclinic/agenda-api/internal/model"
)

// Policy carries the clinic rules applied when flagging a slot available.
type Policy struct {
	// MaxSharedTreatment caps how many ongoing-treatment sessions may share
	// one slot.
	MaxSharedTreatment int
}

// ClassifySlot evaluates one fixed-width slot against the day's booked
// intervals. Overlap is boundary-exclusive: a visit ending exactly when the
// slot starts, or starting exactly when it ends, does not occupy it.
func ClassifySlot(slotStart, slotEnd model.TimeOfDay, intervals []*model.AppointmentInterval, schedCtx model.SchedulingContext, policy Policy) model.Slot {
	count := 0
	hasFirstVisit := false

	for _, iv := range intervals {
		if iv.Start < slotEnd && iv.End > slotStart {
			count++
			if iv.Category.IsFirstVisitClass() {
				hasFirstVisit = true
			}
		}
	}

	var classification model.SlotClassification
	switch {
	case count == 0:
		classification = model.SlotFree
	case hasFirstVisit:
		classification = model.SlotFirstVisit
	default:
		classification = model.SlotOccupied
	}

	var available bool
	switch schedCtx {
	case model.ContextFirstVisit:
		available = count == 0
	case model.ContextOngoingTreatment:
		available = !hasFirstVisit && count < policy.MaxSharedTreatment
	default:
		available = true
	}

	return model.Slot{
		Start:          slotStart,
		End:            slotEnd,
		Available:      available,
		OccupancyCount: count,
		Classification: classification,
	}
}

// BuildAgenda walks the working window from its start in fixed steps and
// classifies each slot. A trailing remainder shorter than a full slot is
// dropped, never emitted truncated.
func BuildAgenda(windowStart, windowEnd model.TimeOfDay, intervals []*model.AppointmentInterval, schedCtx model.SchedulingContext, policy Policy) []model.Slot {
	slots := []model.Slot{}

	for start := windowStart; start.Add(model.SlotDuration) <= windowEnd; start = start.Add(model.SlotDuration) {
		end := start.Add(model.SlotDuration)
		slots = append(slots, ClassifySlot(start, end, intervals, schedCtx, policy))
	}

	return slots
}
