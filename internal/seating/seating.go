// Package seating implements the seat-allocation rules for the wedding
// seating chart: capacity limits, couple adjacency, color tagging and the
// move/swap relocation plans. Everything here is pure computation over
// snapshots; the repo layer loads state, calls a planner and applies the
// resulting plan inside one transaction.
package seating

import (
	"weddingdesk/internal/model"
)

// StagingTable is the sentinel table number used while rows trade seats.
// Real tables are numbered from 1, so no final state may reference it; the
// repo logs loudly if a row is ever found parked here.
const StagingTable = 0

type Table struct {
	Number   int
	Capacity int
}

// Person describes one attendee about to be seated.
type Person struct {
	GuestID            int64
	PersonIndex        int
	Name               string
	DietaryRestriction string
}

// AllocationPlan places a new party at a table. Seats is parallel to the
// party (primary first). ColorTag is empty for singles.
type AllocationPlan struct {
	TableNumber int
	Seats       []int
	ColorTag    string
}

// Relocation is the final placement of an existing assignment row.
type Relocation struct {
	AssignmentID int64
	TableNumber  int
	SeatPosition int
	ColorTag     string
}

// MovePlan relocates one party. Staged means the rows must pass through
// StagingTable first because a destination seat is one of their own.
type MovePlan struct {
	Staged      bool
	Relocations []Relocation
}

// SwapPlan exchanges two parties. The executor always stages swaps, since
// the final positions are each other's starting positions.
type SwapPlan struct {
	Relocations []Relocation
}

func nextSeat(pos, capacity int) int {
	if pos >= capacity {
		return 1
	}
	return pos + 1
}

func prevSeat(pos, capacity int) int {
	if pos <= 1 {
		return capacity
	}
	return pos - 1
}

// Adjacent reports whether two seat positions touch, wrapping modulo the
// table's current capacity.
func Adjacent(a, b, capacity int) bool {
	return nextSeat(a, capacity) == b || prevSeat(a, capacity) == b
}

func idSet(rows []model.SeatAssignment) map[int64]bool {
	s := make(map[int64]bool, len(rows))
	for _, r := range rows {
		s[r.ID] = true
	}
	return s
}

// occupiedSeats maps taken positions at a table, skipping the excluded rows
// (a party that is leaving or being relocated).
func occupiedSeats(rows []model.SeatAssignment, exclude map[int64]bool) map[int]bool {
	occ := make(map[int]bool, len(rows))
	for _, r := range rows {
		if exclude[r.ID] {
			continue
		}
		occ[r.SeatPosition] = true
	}
	return occ
}

// freeSeats lists the unoccupied positions within 1..capacity in ascending
// order. Legacy rows parked beyond a reduced capacity still occupy their
// position but never show up as free.
func freeSeats(capacity int, occ map[int]bool) []int {
	var free []int
	for pos := 1; pos <= capacity; pos++ {
		if !occ[pos] {
			free = append(free, pos)
		}
	}
	return free
}

// findSingleSeat picks a seat for one person: the requested position when
// given, otherwise the lowest free one. The caller has already checked that
// at least one seat is free.
func findSingleSeat(tbl Table, occ map[int]bool, targetSeat int) (int, error) {
	if targetSeat > 0 {
		if targetSeat > tbl.Capacity {
			return 0, ErrSeatOutOfRange
		}
		if occ[targetSeat] {
			return 0, ErrSeatOccupied
		}
		return targetSeat, nil
	}
	free := freeSeats(tbl.Capacity, occ)
	if len(free) == 0 {
		return 0, ErrCapacityExceeded
	}
	return free[0], nil
}

// findCouplePair picks adjacent seats for a couple, primary first. With a
// target seat it tries the clockwise neighbour, then the counter-clockwise
// one; without, it scans pairs (i, i+1 mod capacity) ascending. The
// companion is never placed on a non-adjacent seat.
func findCouplePair(tbl Table, occ map[int]bool, targetSeat int) (int, int, error) {
	if targetSeat > 0 {
		if targetSeat > tbl.Capacity {
			return 0, 0, ErrSeatOutOfRange
		}
		if occ[targetSeat] {
			return 0, 0, ErrSeatOccupied
		}
		if cw := nextSeat(targetSeat, tbl.Capacity); cw != targetSeat && !occ[cw] {
			return targetSeat, cw, nil
		}
		if ccw := prevSeat(targetSeat, tbl.Capacity); ccw != targetSeat && !occ[ccw] {
			return targetSeat, ccw, nil
		}
		return 0, 0, ErrNoAdjacentSeat
	}
	for i := 1; i <= tbl.Capacity; i++ {
		j := nextSeat(i, tbl.Capacity)
		if i != j && !occ[i] && !occ[j] {
			return i, j, nil
		}
	}
	return 0, 0, ErrNoAdjacentSeat
}

// ValidateCapacity guards a capacity change: shrinking below the current
// occupant count would evict seated people and is rejected.
func ValidateCapacity(newCapacity, occupantCount int) error {
	if occupantCount > newCapacity {
		return ErrCapacityBelowOccupancy
	}
	return nil
}
