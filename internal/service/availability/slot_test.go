package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclinic/agenda-api/internal/model"
)

func tod(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	v, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func interval(t *testing.T, start, end string, category model.AppointmentCategory) *model.AppointmentInterval {
	t.Helper()
	return &model.AppointmentInterval{
		Start:    tod(t, start),
		End:      tod(t, end),
		Category: category,
	}
}

func TestBuildAgendaSlotAlignment(t *testing.T) {
	slots := BuildAgenda(tod(t, "08:00"), tod(t, "15:00"), nil, model.ContextNone, Policy{MaxSharedTreatment: 3})

	require.Len(t, slots, 14)
	for i, slot := range slots {
		assert.Equal(t, 30, slot.End.Minutes()-slot.Start.Minutes())
		if i > 0 {
			assert.Equal(t, slots[i-1].End, slot.Start)
		}
	}
	assert.Equal(t, tod(t, "08:00"), slots[0].Start)
	assert.Equal(t, tod(t, "15:00"), slots[len(slots)-1].End)
}

func TestBuildAgendaDropsTrailingPartialSlot(t *testing.T) {
	slots := BuildAgenda(tod(t, "08:00"), tod(t, "08:45"), nil, model.ContextNone, Policy{MaxSharedTreatment: 3})

	require.Len(t, slots, 1)
	assert.Equal(t, tod(t, "08:00"), slots[0].Start)
	assert.Equal(t, tod(t, "08:30"), slots[0].End)
}

func TestBuildAgendaEmptyAndInvertedWindows(t *testing.T) {
	assert.Empty(t, BuildAgenda(tod(t, "08:00"), tod(t, "08:00"), nil, model.ContextNone, Policy{MaxSharedTreatment: 3}))
	assert.Empty(t, BuildAgenda(tod(t, "09:00"), tod(t, "08:00"), nil, model.ContextNone, Policy{MaxSharedTreatment: 3}))
	assert.Empty(t, BuildAgenda(tod(t, "08:00"), tod(t, "08:29"), nil, model.ContextNone, Policy{MaxSharedTreatment: 3}))
}

func TestClassifySlotBoundariesAreExclusive(t *testing.T) {
	intervals := []*model.AppointmentInterval{
		interval(t, "08:00", "08:30", model.CategoryTreatment),
	}
	policy := Policy{MaxSharedTreatment: 3}

	before := ClassifySlot(tod(t, "07:30"), tod(t, "08:00"), intervals, model.ContextNone, policy)
	assert.Equal(t, 0, before.OccupancyCount)
	assert.Equal(t, model.SlotFree, before.Classification)

	after := ClassifySlot(tod(t, "08:30"), tod(t, "09:00"), intervals, model.ContextNone, policy)
	assert.Equal(t, 0, after.OccupancyCount)
	assert.Equal(t, model.SlotFree, after.Classification)

	hit := ClassifySlot(tod(t, "08:00"), tod(t, "08:30"), intervals, model.ContextNone, policy)
	assert.Equal(t, 1, hit.OccupancyCount)
	assert.Equal(t, model.SlotOccupied, hit.Classification)
}

func TestClassifySlotSpanningAppointmentOccupiesEverySlot(t *testing.T) {
	intervals := []*model.AppointmentInterval{
		interval(t, "08:00", "09:30", model.CategoryTreatment),
	}
	slots := BuildAgenda(tod(t, "08:00"), tod(t, "10:00"), intervals, model.ContextNone, Policy{MaxSharedTreatment: 3})

	require.Len(t, slots, 4)
	assert.Equal(t, 1, slots[0].OccupancyCount)
	assert.Equal(t, 1, slots[1].OccupancyCount)
	assert.Equal(t, 1, slots[2].OccupancyCount)
	assert.Equal(t, 0, slots[3].OccupancyCount)
}

func TestClassifySlotFirstVisitDominatesClassification(t *testing.T) {
	intervals := []*model.AppointmentInterval{
		interval(t, "08:00", "08:30", model.CategoryTreatment),
		interval(t, "08:00", "08:30", model.CategoryLinkedFirstVisit),
	}
	slot := ClassifySlot(tod(t, "08:00"), tod(t, "08:30"), intervals, model.ContextNone, Policy{MaxSharedTreatment: 3})

	assert.Equal(t, model.SlotFirstVisit, slot.Classification)
	assert.Equal(t, 2, slot.OccupancyCount)
}

func TestFirstVisitContextRequiresEmptySlot(t *testing.T) {
	policy := Policy{MaxSharedTreatment: 3}
	occupied := []*model.AppointmentInterval{
		interval(t, "08:00", "08:30", model.CategoryTreatment),
	}

	slot := ClassifySlot(tod(t, "08:00"), tod(t, "08:30"), occupied, model.ContextFirstVisit, policy)
	assert.False(t, slot.Available)

	empty := ClassifySlot(tod(t, "08:30"), tod(t, "09:00"), occupied, model.ContextFirstVisit, policy)
	assert.True(t, empty.Available)
}

func TestOngoingTreatmentContextSharesUpToCap(t *testing.T) {
	policy := Policy{MaxSharedTreatment: 3}

	two := []*model.AppointmentInterval{
		interval(t, "08:00", "08:30", model.CategoryTreatment),
		interval(t, "08:00", "08:30", model.CategoryTreatment),
	}
	slot := ClassifySlot(tod(t, "08:00"), tod(t, "08:30"), two, model.ContextOngoingTreatment, policy)
	assert.True(t, slot.Available)
	assert.Equal(t, 2, slot.OccupancyCount)

	three := append(two, interval(t, "08:00", "08:30", model.CategoryTreatment))
	full := ClassifySlot(tod(t, "08:00"), tod(t, "08:30"), three, model.ContextOngoingTreatment, policy)
	assert.False(t, full.Available)
	assert.Equal(t, 3, full.OccupancyCount)
	assert.Equal(t, model.SlotOccupied, full.Classification)
}

func TestOngoingTreatmentContextVetoedByFirstVisit(t *testing.T) {
	policy := Policy{MaxSharedTreatment: 3}
	intervals := []*model.AppointmentInterval{
		interval(t, "08:00", "08:30", model.CategoryFirstVisit),
	}

	slot := ClassifySlot(tod(t, "08:00"), tod(t, "08:30"), intervals, model.ContextOngoingTreatment, policy)
	assert.False(t, slot.Available, "one first visit blocks sharing regardless of the cap")
	assert.Equal(t, model.SlotFirstVisit, slot.Classification)
}

func TestNoContextFlagsEverySlotAvailable(t *testing.T) {
	intervals := []*model.AppointmentInterval{
		interval(t, "08:00", "08:30", model.CategoryFirstVisit),
		interval(t, "08:30", "09:00", model.CategoryTreatment),
		interval(t, "08:30", "09:00", model.CategoryTreatment),
		interval(t, "08:30", "09:00", model.CategoryTreatment),
	}
	slots := BuildAgenda(tod(t, "08:00"), tod(t, "09:30"), intervals, model.ContextNone, Policy{MaxSharedTreatment: 3})

	require.Len(t, slots, 3)
	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
	assert.Equal(t, model.SlotFirstVisit, slots[0].Classification)
	assert.Equal(t, model.SlotOccupied, slots[1].Classification)
	assert.Equal(t, model.SlotFree, slots[2].Classification)
}

func TestBuildAgendaIsPure(t *testing.T) {
	intervals := []*model.AppointmentInterval{
		interval(t, "09:00", "10:00", model.CategoryTreatment),
	}
	policy := Policy{MaxSharedTreatment: 3}

	first := BuildAgenda(tod(t, "08:00"), tod(t, "12:00"), intervals, model.ContextOngoingTreatment, policy)
	second := BuildAgenda(tod(t, "08:00"), tod(t, "12:00"), intervals, model.ContextOngoingTreatment, policy)

	assert.Equal(t, first, second)
}
