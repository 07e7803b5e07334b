package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingdesk/internal/model"
)

func TestPlanMoveRejectsInvalidParty(t *testing.T) {
	dest := Table{Number: 2, Capacity: 8}

	_, err := PlanMove(dest, nil, nil, 0)
	require.ErrorIs(t, err, ErrInvalidParty)
}

func TestPlanMoveSingleToOtherTable(t *testing.T) {
	dest := Table{Number: 2, Capacity: 8}
	destRows := fillSingles(2, 1, 2)
	mover := single(50, 1, 4)

	plan, err := PlanMove(dest, destRows, []model.SeatAssignment{mover}, 0)
	require.NoError(t, err)
	require.Len(t, plan.Relocations, 1)
	assert.False(t, plan.Staged)
	assert.Equal(t, int64(50), plan.Relocations[0].AssignmentID)
	assert.Equal(t, 2, plan.Relocations[0].TableNumber)
	assert.Equal(t, 3, plan.Relocations[0].SeatPosition)
	assert.Empty(t, plan.Relocations[0].ColorTag)
}

func TestPlanMoveSingleTargetOccupied(t *testing.T) {
	dest := Table{Number: 2, Capacity: 8}
	destRows := fillSingles(2, 5)
	mover := single(50, 1, 4)

	_, err := PlanMove(dest, destRows, []model.SeatAssignment{mover}, 5)
	require.ErrorIs(t, err, ErrSeatOccupied)
}

func TestPlanMoveSingleWithinTableExcludesSelf(t *testing.T) {
	dest := Table{Number: 1, Capacity: 8}
	mover := single(50, 1, 4)
	destRows := append(fillSingles(1, 1, 2, 3, 5, 6, 7, 8), mover)

	// Every other seat is taken; the mover's own seat does not block the
	// only remaining free computation.
	_, err := PlanMove(dest, destRows, []model.SeatAssignment{mover}, 0)
	require.NoError(t, err)
}

func TestPlanMoveSingleFullDestination(t *testing.T) {
	dest := Table{Number: 2, Capacity: 8}
	destRows := fillSingles(2, 1, 2, 3, 4, 5, 6, 7, 8)
	mover := single(50, 1, 4)

	_, err := PlanMove(dest, destRows, []model.SeatAssignment{mover}, 0)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestPlanMoveCoupleToOtherTable(t *testing.T) {
	dest := Table{Number: 2, Capacity: 8}
	destRows := append(fillSingles(2, 1, 2), couple(10, 11, 2, 4, 5, "blue")...)
	party := couple(50, 51, 1, 1, 2, "blue")

	plan, err := PlanMove(dest, destRows, party, 0)
	require.NoError(t, err)
	require.Len(t, plan.Relocations, 2)
	assert.False(t, plan.Staged)
	assert.Equal(t, 6, plan.Relocations[0].SeatPosition)
	assert.Equal(t, 7, plan.Relocations[1].SeatPosition)
	assert.True(t, Adjacent(plan.Relocations[0].SeatPosition, plan.Relocations[1].SeatPosition, dest.Capacity))

	// Color is recomputed at the destination: blue is taken there.
	assert.Equal(t, "green", plan.Relocations[0].ColorTag)
	assert.Equal(t, plan.Relocations[0].ColorTag, plan.Relocations[1].ColorTag)
}

func TestPlanMoveCoupleNeedsTwoSeats(t *testing.T) {
	dest := Table{Number: 2, Capacity: 8}
	destRows := fillSingles(2, 1, 2, 3, 4, 5, 6, 7)
	party := couple(50, 51, 1, 1, 2, "blue")

	_, err := PlanMove(dest, destRows, party, 0)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestPlanMoveCoupleNoPartialMoveOnFailure(t *testing.T) {
	dest := Table{Number: 2, Capacity: 8}
	// Free seats 2, 4, 6, 8: room for two, but no adjacent pair.
	destRows := fillSingles(2, 1, 3, 5, 7)
	party := couple(50, 51, 1, 1, 2, "blue")

	plan, err := PlanMove(dest, destRows, party, 0)
	require.ErrorIs(t, err, ErrNoAdjacentSeat)
	assert.Nil(t, plan, "failed validation must not plan any relocation")
}

func TestPlanMoveCoupleShiftAlongOwnTableStages(t *testing.T) {
	dest := Table{Number: 1, Capacity: 8}
	party := couple(50, 51, 1, 3, 4, "blue")
	destRows := append(fillSingles(1, 1, 2), party...)

	// Target 4 is the couple's own second seat; excluding themselves it is
	// free, and the plan must be staged to avoid a transient collision.
	plan, err := PlanMove(dest, destRows, party, 4)
	require.NoError(t, err)
	assert.True(t, plan.Staged)
	assert.Equal(t, 4, plan.Relocations[0].SeatPosition)
	assert.Equal(t, 5, plan.Relocations[1].SeatPosition)
}

func TestPlanMoveCoupleKeepsColorWhenFreeAtDestination(t *testing.T) {
	dest := Table{Number: 2, Capacity: 8}
	party := couple(50, 51, 1, 1, 2, "blue")

	plan, err := PlanMove(dest, nil, party, 0)
	require.NoError(t, err)
	assert.Equal(t, "blue", plan.Relocations[0].ColorTag, "empty destination starts the palette over")
}
