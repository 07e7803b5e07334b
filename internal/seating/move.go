package seating

import "weddingdesk/internal/model"

// PlanMove relocates a party (one row, or a couple's two rows with the
// primary first) to dest. destAssignments is the destination table's current
// set; rows belonging to the moving party are excluded from occupancy, so a
// couple shifting along its own table sees its own seats as free.
//
// Couples get their color recomputed against whichever couples remain at the
// destination. A plan is marked Staged when the party already sits at the
// destination table, because a chosen seat may be one of its own current
// positions and a direct update would transiently double-book it.
func PlanMove(dest Table, destAssignments []model.SeatAssignment, party []model.SeatAssignment, targetSeat int) (*MovePlan, error) {
	if len(party) < 1 || len(party) > 2 {
		return nil, ErrInvalidParty
	}
	exclude := idSet(party)
	occ := occupiedSeats(destAssignments, exclude)
	if len(freeSeats(dest.Capacity, occ)) < len(party) {
		return nil, ErrCapacityExceeded
	}

	if len(party) == 1 {
		seat, err := findSingleSeat(dest, occ, targetSeat)
		if err != nil {
			return nil, err
		}
		return &MovePlan{
			Relocations: []Relocation{{
				AssignmentID: party[0].ID,
				TableNumber:  dest.Number,
				SeatPosition: seat,
			}},
		}, nil
	}

	first, second, err := findCouplePair(dest, occ, targetSeat)
	if err != nil {
		return nil, err
	}
	color := PickColor(usedColors(destAssignments, exclude))
	return &MovePlan{
		Staged: party[0].TableNumber == dest.Number,
		Relocations: []Relocation{
			{AssignmentID: party[0].ID, TableNumber: dest.Number, SeatPosition: first, ColorTag: color},
			{AssignmentID: party[1].ID, TableNumber: dest.Number, SeatPosition: second, ColorTag: color},
		},
	}, nil
}
