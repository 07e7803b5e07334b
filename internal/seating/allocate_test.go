package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanAllocationRejectsInvalidPartySize(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}

	_, err := PlanAllocation(tbl, nil, 0, 0)
	require.ErrorIs(t, err, ErrInvalidParty)

	_, err = PlanAllocation(tbl, nil, 3, 0)
	require.ErrorIs(t, err, ErrInvalidParty)
}

func TestPlanAllocationSingleAuto(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}
	existing := fillSingles(1, 1, 2, 4)

	plan, err := PlanAllocation(tbl, existing, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, plan.Seats, "lowest free seat wins")
	assert.Empty(t, plan.ColorTag)
}

func TestPlanAllocationSingleTarget(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}
	existing := fillSingles(1, 1, 2)

	plan, err := PlanAllocation(tbl, existing, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, plan.Seats)

	_, err = PlanAllocation(tbl, existing, 1, 2)
	require.ErrorIs(t, err, ErrSeatOccupied)

	_, err = PlanAllocation(tbl, existing, 1, 9)
	require.ErrorIs(t, err, ErrSeatOutOfRange)
}

func TestPlanAllocationSingleFullTable(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}
	existing := fillSingles(1, 1, 2, 3, 4, 5, 6, 7, 8)

	_, err := PlanAllocation(tbl, existing, 1, 0)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestPlanAllocationCoupleScenarioA(t *testing.T) {
	// Capacity 8, seats 1-7 occupied by singles, only seat 8 free: the
	// capacity check fires before adjacency.
	tbl := Table{Number: 1, Capacity: 8}
	existing := fillSingles(1, 1, 2, 3, 4, 5, 6, 7)

	_, err := PlanAllocation(tbl, existing, 2, 0)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestPlanAllocationCoupleScenarioB(t *testing.T) {
	// Capacity 8, only seats 3 and 4 free, target seat 3: couple lands on
	// 3 and 4, sharing a color unused at the table.
	tbl := Table{Number: 1, Capacity: 8}
	existing := fillSingles(1, 1, 2, 5, 6, 7, 8)

	plan, err := PlanAllocation(tbl, existing, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, plan.Seats)
	assert.Equal(t, "blue", plan.ColorTag)
	assert.True(t, Adjacent(plan.Seats[0], plan.Seats[1], tbl.Capacity))
}

func TestPlanAllocationCoupleTargetPrefersClockwise(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}

	plan, err := PlanAllocation(tbl, nil, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, plan.Seats, "clockwise neighbour tried first")

	// Clockwise neighbour taken: the companion falls back counter-clockwise.
	existing := fillSingles(1, 4)
	plan, err = PlanAllocation(tbl, existing, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, plan.Seats)
}

func TestPlanAllocationCoupleTargetWrapsAroundTable(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}

	plan, err := PlanAllocation(tbl, nil, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 1}, plan.Seats, "seat 8's clockwise neighbour is seat 1")

	existing := fillSingles(1, 1)
	plan, err = PlanAllocation(tbl, existing, 2, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 7}, plan.Seats)
}

func TestPlanAllocationCoupleTargetNoAdjacent(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}
	// Seats 2 and 4 taken: target 3 has no free neighbour, but the table
	// still has plenty of room, so the adjacency error fires.
	existing := fillSingles(1, 2, 4)

	_, err := PlanAllocation(tbl, existing, 2, 3)
	require.ErrorIs(t, err, ErrNoAdjacentSeat)
}

func TestPlanAllocationCoupleTargetOccupied(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}
	existing := fillSingles(1, 3)

	_, err := PlanAllocation(tbl, existing, 2, 3)
	require.ErrorIs(t, err, ErrSeatOccupied)
}

func TestPlanAllocationCoupleAutoScansAscending(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}
	// Free seats: 2, 5, 6, 8. First adjacent pair scanning from 1 is (5,6).
	existing := fillSingles(1, 1, 3, 4, 7)

	plan, err := PlanAllocation(tbl, existing, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, plan.Seats)
}

func TestPlanAllocationCoupleAutoWrapPairFound(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}
	// Free seats 1, 4, 8: no ascending pair until the wrap pair (8,1).
	existing := fillSingles(1, 2, 3, 5, 6, 7)

	plan, err := PlanAllocation(tbl, existing, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 1}, plan.Seats)
}

func TestPlanAllocationCoupleNoAdjacentPair(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 8}
	// Free seats 2, 4, 6, 8: four seats free, none adjacent.
	existing := fillSingles(1, 1, 3, 5, 7)

	_, err := PlanAllocation(tbl, existing, 2, 0)
	require.ErrorIs(t, err, ErrNoAdjacentSeat)
}

func TestPlanAllocationCoupleColorAvoidsCollision(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 10}
	existing := append(couple(1, 2, 1, 1, 2, "blue"), couple(3, 4, 1, 3, 4, "green")...)

	plan, err := PlanAllocation(tbl, existing, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, plan.Seats)
	assert.Equal(t, "purple", plan.ColorTag)
}

func TestPlanAllocationCoupleColorPaletteExhausted(t *testing.T) {
	tbl := Table{Number: 1, Capacity: 10}
	existing := append(couple(1, 2, 1, 1, 2, "blue"), couple(3, 4, 1, 3, 4, "green")...)
	existing = append(existing, couple(5, 6, 1, 5, 6, "purple")...)
	existing = append(existing, couple(7, 8, 1, 7, 8, "pink")...)

	plan, err := PlanAllocation(tbl, existing, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10}, plan.Seats)
	assert.Equal(t, "blue", plan.ColorTag, "fifth couple reuses the first color")
}

func TestPlanAllocationLegacySeatBeyondCapacity(t *testing.T) {
	// A row left at seat 10 after a capacity reduction to 9 keeps its chair,
	// but new allocations only see positions 1..9.
	tbl := Table{Number: 1, Capacity: 9}
	existing := fillSingles(1, 10)

	plan, err := PlanAllocation(tbl, existing, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, plan.Seats)

	_, err = PlanAllocation(tbl, existing, 1, 10)
	require.ErrorIs(t, err, ErrSeatOutOfRange, "new allocations stay within the current capacity")
}
