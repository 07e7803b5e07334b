package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingdesk/internal/model"
)

func guest(id int64, name1, att1, name2, att2 string) model.Guest {
	return model.Guest{
		ID:          id,
		Person1Name: name1,
		Attendance1: att1,
		Person2Name: name2,
		Attendance2: att2,
	}
}

func TestReconcileCoupleGroupedAsOneEntry(t *testing.T) {
	guests := []model.Guest{
		guest(1, "Anna", model.AttendanceConfirmed, "Boris", model.AttendanceConfirmed),
	}

	out := Reconcile(guests, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "Anna & Boris", out[0].DisplayName)
	assert.Equal(t, []int{1, 2}, out[0].PersonIndexes)
	assert.True(t, out[0].Couple)
	assert.Equal(t, model.AttendanceConfirmed, out[0].Attendance)
}

func TestReconcileCoupleAttendancePendingUnlessBothConfirmed(t *testing.T) {
	guests := []model.Guest{
		guest(1, "Anna", model.AttendanceConfirmed, "Boris", model.AttendancePending),
	}

	out := Reconcile(guests, nil)
	require.Len(t, out, 1)
	assert.Equal(t, model.AttendancePending, out[0].Attendance)
}

func TestReconcileDeclinedExcluded(t *testing.T) {
	guests := []model.Guest{
		guest(1, "Anna", model.AttendanceDeclined, "", ""),
		guest(2, "Clara", model.AttendanceConfirmed, "Dmitry", model.AttendanceDeclined),
	}

	out := Reconcile(guests, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "Clara", out[0].DisplayName)
	assert.Equal(t, []int{1}, out[0].PersonIndexes)
	assert.False(t, out[0].Couple)
	assert.True(t, out[0].HasCompanion, "the guest record still names a second attendee")
}

func TestReconcilePartiallySeatedCouple(t *testing.T) {
	guests := []model.Guest{
		guest(1, "Anna", model.AttendanceConfirmed, "Boris", model.AttendanceConfirmed),
	}
	seated := []model.SeatAssignment{
		{ID: 10, GuestID: 1, PersonIndex: 1, TableNumber: 3, SeatPosition: 2},
	}

	out := Reconcile(guests, seated)
	require.Len(t, out, 1)
	assert.Equal(t, "Boris", out[0].DisplayName)
	assert.Equal(t, []int{2}, out[0].PersonIndexes)
	assert.False(t, out[0].Couple)
}

func TestReconcileFullySeatedGuestAbsent(t *testing.T) {
	guests := []model.Guest{
		guest(1, "Anna", model.AttendanceConfirmed, "Boris", model.AttendanceConfirmed),
	}
	seated := []model.SeatAssignment{
		{ID: 10, GuestID: 1, PersonIndex: 1, TableNumber: 3, SeatPosition: 2},
		{ID: 11, GuestID: 1, PersonIndex: 2, TableNumber: 3, SeatPosition: 3},
	}

	assert.Empty(t, Reconcile(guests, seated))
}

func TestReconcileFollowsRosterOrder(t *testing.T) {
	guests := []model.Guest{
		guest(2, "Clara", model.AttendancePending, "", ""),
		guest(1, "Anna", model.AttendanceConfirmed, "Boris", model.AttendanceConfirmed),
	}

	out := Reconcile(guests, nil)
	require.Len(t, out, 2)
	assert.Equal(t, "Clara", out[0].DisplayName)
	assert.Equal(t, "Anna & Boris", out[1].DisplayName)
}

func TestReconcileJoinsDietaryRestrictions(t *testing.T) {
	g := guest(1, "Anna", model.AttendanceConfirmed, "Boris", model.AttendanceConfirmed)
	g.DietaryRestriction1 = "vegan"
	g.DietaryRestriction2 = "nut allergy"

	out := Reconcile([]model.Guest{g}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "vegan / nut allergy", out[0].DietaryRestriction)

	g.DietaryRestriction1 = ""
	out = Reconcile([]model.Guest{g}, nil)
	assert.Equal(t, "nut allergy", out[0].DietaryRestriction)
}

func TestReconcileIdempotent(t *testing.T) {
	guests := []model.Guest{
		guest(1, "Anna", model.AttendanceConfirmed, "Boris", model.AttendancePending),
		guest(2, "Clara", model.AttendancePending, "", ""),
	}
	seated := []model.SeatAssignment{
		{ID: 10, GuestID: 2, PersonIndex: 1, TableNumber: 1, SeatPosition: 1},
	}

	first := Reconcile(guests, seated)
	second := Reconcile(guests, seated)
	assert.Equal(t, first, second)
}
