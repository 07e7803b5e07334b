package seating

import "weddingdesk/internal/model"

// PlanSwap exchanges partyA and partyB (each one row, or a couple with the
// primary first). tableA/assignA describe partyA's current table, which
// receives partyB, and symmetrically for tableB. The two tables may be the
// same.
//
// A couple can only swap with another couple and a single with a single.
// For couple swaps, both destinations are validated before anything is
// planned, with the departing occupants excluded from occupancy; either
// failure rejects the whole swap. On a same-table swap the first arrival
// pair is reserved before the second is chosen, so the two pairs never
// overlap. The executor stages every relocation through StagingTable so no
// intermediate state double-books a seat.
func PlanSwap(
	tableA Table, assignA []model.SeatAssignment, partyA []model.SeatAssignment,
	tableB Table, assignB []model.SeatAssignment, partyB []model.SeatAssignment,
) (*SwapPlan, error) {
	if len(partyA) < 1 || len(partyA) > 2 || len(partyB) < 1 || len(partyB) > 2 {
		return nil, ErrInvalidParty
	}
	idsA := idSet(partyA)
	for _, b := range partyB {
		if idsA[b.ID] {
			return nil, ErrSelfSwap
		}
	}
	if (len(partyA) == 2) != (len(partyB) == 2) {
		return nil, ErrAsymmetricSwap
	}

	if len(partyA) == 1 {
		return &SwapPlan{Relocations: []Relocation{
			{AssignmentID: partyA[0].ID, TableNumber: tableB.Number, SeatPosition: partyB[0].SeatPosition},
			{AssignmentID: partyB[0].ID, TableNumber: tableA.Number, SeatPosition: partyA[0].SeatPosition},
		}}, nil
	}

	// Both departing couples vacate their seats, so exclude all four rows
	// from occupancy on either side. Same-table swaps fall out naturally.
	exclude := idSet(append(append([]model.SeatAssignment{}, partyA...), partyB...))

	occA := occupiedSeats(assignA, exclude)
	intoA1, intoA2, err := findCouplePair(tableA, occA, partyA[0].SeatPosition)
	if err != nil {
		return nil, ErrNoAdjacentSeat
	}
	occB := occupiedSeats(assignB, exclude)
	if tableA.Number == tableB.Number {
		occB[intoA1] = true
		occB[intoA2] = true
	}
	intoB1, intoB2, err := findCouplePair(tableB, occB, partyB[0].SeatPosition)
	if err != nil {
		return nil, ErrNoAdjacentSeat
	}

	usedA := usedColors(assignA, exclude)
	colorB := PickColor(usedA)
	usedB := usedColors(assignB, exclude)
	if tableA.Number == tableB.Number {
		usedB[colorB] = true
	}
	colorA := PickColor(usedB)

	return &SwapPlan{Relocations: []Relocation{
		{AssignmentID: partyB[0].ID, TableNumber: tableA.Number, SeatPosition: intoA1, ColorTag: colorB},
		{AssignmentID: partyB[1].ID, TableNumber: tableA.Number, SeatPosition: intoA2, ColorTag: colorB},
		{AssignmentID: partyA[0].ID, TableNumber: tableB.Number, SeatPosition: intoB1, ColorTag: colorA},
		{AssignmentID: partyA[1].ID, TableNumber: tableB.Number, SeatPosition: intoB2, ColorTag: colorA},
	}}, nil
}
