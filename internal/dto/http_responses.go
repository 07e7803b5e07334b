package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"weddingdesk/internal/model"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	CapacityExceeded       = "CAPACITY_EXCEEDED"
	SeatOccupied           = "SEAT_OCCUPIED"
	SeatOutOfRange         = "SEAT_OUT_OF_RANGE"
	NoAdjacentSeat         = "NO_ADJACENT_SEAT"
	AsymmetricSwap         = "ASYMMETRIC_SWAP"
	SelfSwap               = "SELF_SWAP"
	CapacityBelowOccupancy = "CAPACITY_BELOW_OCCUPANCY"
	TableNotFound          = "TABLE_NOT_FOUND"
	AssignmentNotFound     = "ASSIGNMENT_NOT_FOUND"
	AlreadySeated          = "ALREADY_SEATED"
	GuestNotFound          = "GUEST_NOT_FOUND"
	ProductNotFound        = "PRODUCT_NOT_FOUND"
	ContributionNotFound   = "CONTRIBUTION_NOT_FOUND"
)

type CreateGuestRequest struct {
	Person1Name         string `json:"person1_name" validate:"required,min=1,max=255"`
	Person2Name         string `json:"person2_name" validate:"max=255"`
	Attendance1         string `json:"attendance1" validate:"required,oneof=confirmed pending declined"`
	Attendance2         string `json:"attendance2" validate:"omitempty,oneof=confirmed pending declined"`
	DietaryRestriction1 string `json:"dietary_restriction1" validate:"max=500"`
	DietaryRestriction2 string `json:"dietary_restriction2" validate:"max=500"`
	HostTag             string `json:"host_tag" validate:"max=64"`
}

type UpdateRSVPRequest struct {
	PersonIndex int    `json:"person_index" validate:"required,min=1,max=2"`
	Attendance  string `json:"attendance" validate:"required,oneof=confirmed pending declined"`
}

type AssignSeatRequest struct {
	GuestID       int64 `json:"guest_id" validate:"required,gt=0"`
	PersonIndexes []int `json:"person_indexes" validate:"required,min=1,max=2,dive,min=1,max=2"`
	TableNumber   int   `json:"table_number" validate:"required,gt=0"`
	SeatPosition  int   `json:"seat_position" validate:"gte=0,lte=10"`
}

type MoveAssignmentRequest struct {
	AssignmentID int64 `json:"assignment_id" validate:"required,gt=0"`
	TableNumber  int   `json:"table_number" validate:"required,gt=0"`
	SeatPosition int   `json:"seat_position" validate:"gte=0,lte=10"`
}

type SwapAssignmentsRequest struct {
	FirstAssignmentID  int64 `json:"first_assignment_id" validate:"required,gt=0"`
	SecondAssignmentID int64 `json:"second_assignment_id" validate:"required,gt=0"`
}

type UpdateCapacityRequest struct {
	Capacity int `json:"capacity" validate:"required,gte=1,lte=10"`
}

type ReorderTablesRequest struct {
	TableNumber       int  `json:"table_number" validate:"required,gt=0"`
	TargetTableNumber int  `json:"target_table_number" validate:"required,gt=0"`
	Before            bool `json:"before"`
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=2000"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
}

type CreateContributionRequest struct {
	ContributorName string `json:"contributor_name" validate:"required,min=1,max=255"`
	Email           string `json:"email" validate:"required,email"`
	AmountCents     int64  `json:"amount_cents" validate:"required,gt=0"`
}

type ConfirmContributionRequest struct {
	Reference string `json:"reference" validate:"required,uuid"`
}

// ContributionOperateMessage is the delayed expiry message published for
// every pending contribution.
type ContributionOperateMessage struct {
	ContributionID int64     `json:"contribution_id"`
	ProductID      int64     `json:"product_id"`
	ExpireAt       time.Time `json:"expire_at"`
}

type SeatResponse struct {
	Position   int                   `json:"position"`
	Assignment *model.SeatAssignment `json:"assignment,omitempty"`
}

type TableResponse struct {
	TableNumber  int            `json:"table_number"`
	Capacity     int            `json:"capacity"`
	DisplayOrder int            `json:"display_order"`
	Seats        []SeatResponse `json:"seats"`
}

type SeatingChartResponse struct {
	Tables     []TableResponse             `json:"tables"`
	Unassigned []model.UnassignedCandidate `json:"unassigned"`
}

type ContributionResponse struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	ContributorName string    `json:"contributor_name"`
	Email           string    `json:"email"`
	AmountCents     int64     `json:"amount_cents"`
	Status          string    `json:"status"`
	Reference       string    `json:"reference"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func ConflictResponseError(c *ginext.Context, code, desc string) {
	c.JSON(409, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func NotFoundResponseError(c *ginext.Context, code, desc string) {
	c.JSON(404, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
