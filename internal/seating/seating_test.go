package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingdesk/internal/model"
)

// single builds an occupied seat without a companion.
func single(id int64, table, seat int) model.SeatAssignment {
	return model.SeatAssignment{
		ID:           id,
		GuestID:      id,
		TableNumber:  table,
		SeatPosition: seat,
		PersonIndex:  1,
		PersonName:   "Guest",
	}
}

// couple builds two linked rows at adjacent seats sharing a color.
func couple(id1, id2 int64, table, seat1, seat2 int, color string) []model.SeatAssignment {
	a := model.SeatAssignment{
		ID: id1, GuestID: id1, TableNumber: table, SeatPosition: seat1,
		PersonIndex: 1, PersonName: "Half A", CompanionAssignmentID: &id2, CoupleColorTag: color,
	}
	b := model.SeatAssignment{
		ID: id2, GuestID: id1, TableNumber: table, SeatPosition: seat2,
		PersonIndex: 2, PersonName: "Half B", CompanionAssignmentID: &id1, CoupleColorTag: color,
	}
	return []model.SeatAssignment{a, b}
}

func fillSingles(table int, seats ...int) []model.SeatAssignment {
	rows := make([]model.SeatAssignment, 0, len(seats))
	for i, s := range seats {
		rows = append(rows, single(int64(100+i), table, s))
	}
	return rows
}

func TestAdjacent(t *testing.T) {
	assert.True(t, Adjacent(1, 2, 8))
	assert.True(t, Adjacent(2, 1, 8))
	assert.True(t, Adjacent(8, 1, 8), "wraps around the table")
	assert.True(t, Adjacent(1, 8, 8))
	assert.False(t, Adjacent(1, 3, 8))
	assert.False(t, Adjacent(4, 8, 8))

	assert.True(t, Adjacent(9, 1, 9), "adjacency follows the current capacity")
	assert.False(t, Adjacent(8, 1, 9))
}

func TestValidateCapacity(t *testing.T) {
	require.NoError(t, ValidateCapacity(8, 8))
	require.NoError(t, ValidateCapacity(10, 3))

	// Scenario D: 9 occupants, requested capacity 8.
	err := ValidateCapacity(8, 9)
	require.ErrorIs(t, err, ErrCapacityBelowOccupancy)
}

func TestPickColor(t *testing.T) {
	assert.Equal(t, "blue", PickColor(map[string]bool{}))
	assert.Equal(t, "green", PickColor(map[string]bool{"blue": true}))
	assert.Equal(t, "pink", PickColor(map[string]bool{"blue": true, "green": true, "purple": true}))

	// Exhausted palette falls back to the first color.
	all := map[string]bool{"blue": true, "green": true, "purple": true, "pink": true}
	assert.Equal(t, "blue", PickColor(all))
}

func TestUsedColorsExcludesDeparting(t *testing.T) {
	rows := append(couple(1, 2, 1, 1, 2, "blue"), couple(3, 4, 1, 4, 5, "green")...)
	used := usedColors(rows, map[int64]bool{3: true, 4: true})
	assert.True(t, used["blue"])
	assert.False(t, used["green"], "a departing couple's color is reusable")
}
