package model

import "time"

const (
	AttendanceConfirmed = "confirmed"
	AttendancePending   = "pending"
	AttendanceDeclined  = "declined"
)

type Guest struct {
	ID                  int64     `db:"id" json:"id"`
	Person1Name         string    `db:"person1_name" json:"person1_name"`
	Person2Name         string    `db:"person2_name,omitempty" json:"person2_name,omitempty"`
	Attendance1         string    `db:"attendance1" json:"attendance1"`
	Attendance2         string    `db:"attendance2,omitempty" json:"attendance2,omitempty"`
	DietaryRestriction1 string    `db:"dietary_restriction1,omitempty" json:"dietary_restriction1,omitempty"`
	DietaryRestriction2 string    `db:"dietary_restriction2,omitempty" json:"dietary_restriction2,omitempty"`
	HostTag             string    `db:"host_tag,omitempty" json:"host_tag,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// AttendeeName returns the display name of attendee 1 or 2.
func (g *Guest) AttendeeName(personIndex int) string {
	if personIndex == 2 {
		return g.Person2Name
	}
	return g.Person1Name
}

// Attendance returns the attendance status of attendee 1 or 2.
func (g *Guest) Attendance(personIndex int) string {
	if personIndex == 2 {
		return g.Attendance2
	}
	return g.Attendance1
}

// DietaryRestriction returns the dietary text of attendee 1 or 2.
func (g *Guest) DietaryRestriction(personIndex int) string {
	if personIndex == 2 {
		return g.DietaryRestriction2
	}
	return g.DietaryRestriction1
}

type TableConfig struct {
	TableNumber  int       `db:"table_number" json:"table_number"`
	Capacity     int       `db:"capacity" json:"capacity"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SeatAssignment is one occupied seat. A couple is two rows linked
// symmetrically through CompanionAssignmentID, always at the same table on
// adjacent seats and sharing a non-empty CoupleColorTag. Singles carry
// neither. PersonName and DietaryRestriction are denormalized copies of the
// guest record taken at seating time.
type SeatAssignment struct {
	ID                    int64     `db:"id" json:"id"`
	GuestID               int64     `db:"guest_id" json:"guest_id"`
	TableNumber           int       `db:"table_number" json:"table_number"`
	SeatPosition          int       `db:"seat_position" json:"seat_position"`
	PersonIndex           int       `db:"person_index" json:"person_index"`
	PersonName            string    `db:"person_name" json:"person_name"`
	DietaryRestriction    string    `db:"dietary_restriction,omitempty" json:"dietary_restriction,omitempty"`
	CompanionAssignmentID *int64    `db:"companion_assignment_id" json:"companion_assignment_id,omitempty"`
	CoupleColorTag        string    `db:"couple_color_tag" json:"couple_color_tag,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// HasCompanion reports whether this row is half of a couple.
func (a *SeatAssignment) HasCompanion() bool {
	return a.CompanionAssignmentID != nil
}

// UnassignedCandidate is the derived sidebar entry for an attendee (or a
// couple-grouped pair) that is eligible to be seated but not yet assigned.
// Never persisted.
type UnassignedCandidate struct {
	GuestID            int64  `json:"guest_id"`
	PersonIndexes      []int  `json:"person_indexes"`
	DisplayName        string `json:"display_name"`
	Attendance         string `json:"attendance"`
	DietaryRestriction string `json:"dietary_restriction,omitempty"`
	HostTag            string `json:"host_tag,omitempty"`
	Couple             bool   `json:"couple"`
	HasCompanion       bool   `json:"has_companion"`
}

type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description,omitempty" json:"description,omitempty"`
	PriceCents  int64     `db:"price_cents" json:"price_cents"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Contribution struct {
	ID              int64     `db:"id" json:"id"`
	ProductID       int64     `db:"product_id" json:"product_id"`
	ContributorName string    `db:"contributor_name" json:"contributor_name"`
	Email           string    `db:"email" json:"email"`
	AmountCents     int64     `db:"amount_cents" json:"amount_cents"`
	Status          string    `db:"status" json:"status"`
	Reference       string    `db:"reference" json:"reference"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
