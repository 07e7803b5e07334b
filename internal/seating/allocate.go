package seating

import "weddingdesk/internal/model"

// PlanAllocation places a party of one or two people at a table. existing is
// the table's current assignment set; targetSeat 0 means auto-select (lowest
// free seat for a single, first free adjacent pair for a couple).
//
// Precedence: the capacity check fires first, so a table with a single free
// seat rejects a couple with ErrCapacityExceeded; ErrNoAdjacentSeat is
// reserved for tables that have room but no free pair.
func PlanAllocation(tbl Table, existing []model.SeatAssignment, partySize, targetSeat int) (*AllocationPlan, error) {
	if partySize < 1 || partySize > 2 {
		return nil, ErrInvalidParty
	}
	occ := occupiedSeats(existing, nil)
	if len(freeSeats(tbl.Capacity, occ)) < partySize {
		return nil, ErrCapacityExceeded
	}

	if partySize == 1 {
		seat, err := findSingleSeat(tbl, occ, targetSeat)
		if err != nil {
			return nil, err
		}
		return &AllocationPlan{TableNumber: tbl.Number, Seats: []int{seat}}, nil
	}

	first, second, err := findCouplePair(tbl, occ, targetSeat)
	if err != nil {
		return nil, err
	}
	return &AllocationPlan{
		TableNumber: tbl.Number,
		Seats:       []int{first, second},
		ColorTag:    PickColor(usedColors(existing, nil)),
	}, nil
}
