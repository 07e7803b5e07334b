package seating

import "errors"

// Expected, user-facing rule violations. The service layer maps these to
// response codes; none of them leaves the store changed.
var (
	ErrCapacityExceeded       = errors.New("not enough free seats at table")
	ErrSeatOccupied           = errors.New("seat is already occupied")
	ErrSeatOutOfRange         = errors.New("seat position is outside table capacity")
	ErrNoAdjacentSeat         = errors.New("no adjacent free seats for couple")
	ErrAsymmetricSwap         = errors.New("a couple can only swap with another couple")
	ErrSelfSwap               = errors.New("cannot swap an assignment with its own companion")
	ErrInvalidParty           = errors.New("party must be one or two people")
	ErrCapacityBelowOccupancy = errors.New("capacity is below current occupancy")
	ErrTableNotFound          = errors.New("table not found")
	ErrAssignmentNotFound     = errors.New("assignment not found")
)
