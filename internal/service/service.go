package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"weddingdesk/internal/dto"
	"weddingdesk/internal/export"
	"weddingdesk/internal/mailer"
	"weddingdesk/internal/rabbit"
	"weddingdesk/internal/repo"
	"weddingdesk/internal/seating"
	"weddingdesk/pkg/validator"
)

type Service interface {
	GetSeatingChart(ctx *ginext.Context)
	AssignSeat(ctx *ginext.Context)
	MoveAssignment(ctx *ginext.Context)
	SwapAssignments(ctx *ginext.Context)
	DeleteAssignment(ctx *ginext.Context)
	UpdateCapacity(ctx *ginext.Context)
	ReorderTables(ctx *ginext.Context)
	ExportAlphabetical(ctx *ginext.Context)
	ExportByTable(ctx *ginext.Context)

	ListGuests(ctx *ginext.Context)
	CreateGuest(ctx *ginext.Context)
	UpdateGuest(ctx *ginext.Context)
	UpdateRSVP(ctx *ginext.Context)
	DeleteGuest(ctx *ginext.Context)

	ListProducts(ctx *ginext.Context)
	CreateProduct(ctx *ginext.Context)
	CreateContribution(ctx *ginext.Context)
	ConfirmContribution(ctx *ginext.Context)
}

// Config carries the pieces of app configuration the handlers need.
type Config struct {
	PaymentTimeoutMinutes int
	Mail                  mailer.Config
}

type service struct {
	repo repo.Repository
	log  *zerolog.Logger
	rbt  *rabbit.Client
	cfg  Config
}

func NewService(repo repo.Repository, logger *zerolog.Logger, rbt *rabbit.Client, cfg Config) Service {
	return &service{
		repo: repo,
		log:  logger,
		rbt:  rbt,
		cfg:  cfg,
	}
}

// seatingError maps the seating rule sentinels onto response codes. Every
// one of them means the store was left untouched.
func (s *service) seatingError(ctx *ginext.Context, err error) {
	switch {
	case errors.Is(err, seating.ErrCapacityExceeded):
		dto.ConflictResponseError(ctx, dto.CapacityExceeded, "Not enough free seats at this table")
	case errors.Is(err, seating.ErrSeatOccupied):
		dto.ConflictResponseError(ctx, dto.SeatOccupied, "That seat is already occupied")
	case errors.Is(err, seating.ErrSeatOutOfRange):
		dto.BadResponseError(ctx, dto.SeatOutOfRange, "Seat position is outside the table's capacity")
	case errors.Is(err, seating.ErrNoAdjacentSeat):
		dto.ConflictResponseError(ctx, dto.NoAdjacentSeat, "No adjacent free seats for the couple at this table")
	case errors.Is(err, seating.ErrAsymmetricSwap):
		dto.BadResponseError(ctx, dto.AsymmetricSwap, "A couple can only swap with another couple, a single only with a single")
	case errors.Is(err, seating.ErrSelfSwap):
		dto.BadResponseError(ctx, dto.SelfSwap, "Cannot swap the two halves of one couple")
	case errors.Is(err, seating.ErrInvalidParty):
		dto.BadResponseError(ctx, dto.FieldIncorrect, "A party is one or two people")
	case errors.Is(err, seating.ErrCapacityBelowOccupancy):
		dto.ConflictResponseError(ctx, dto.CapacityBelowOccupancy, "Capacity cannot drop below the number of seated people")
	case errors.Is(err, seating.ErrTableNotFound):
		dto.NotFoundResponseError(ctx, dto.TableNotFound, "Table not found")
	case errors.Is(err, seating.ErrAssignmentNotFound):
		dto.NotFoundResponseError(ctx, dto.AssignmentNotFound, "Assignment not found")
	case errors.Is(err, repo.ErrAlreadySeated):
		dto.ConflictResponseError(ctx, dto.AlreadySeated, "This attendee already has a seat")
	case errors.Is(err, repo.ErrGuestNotFound):
		dto.NotFoundResponseError(ctx, dto.GuestNotFound, "Guest not found")
	default:
		s.log.Error().Err(err).Msg("seating operation failed")
		dto.InternalServerError(ctx)
	}
}

func (s *service) GetSeatingChart(ctx *ginext.Context) {
	configs, err := s.repo.ListTableConfigs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list table configs")
		dto.InternalServerError(ctx)
		return
	}
	assignments, err := s.repo.ListAssignments(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list assignments")
		dto.InternalServerError(ctx)
		return
	}
	guests, err := s.repo.ListGuests(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list guests")
		dto.InternalServerError(ctx)
		return
	}

	resp := dto.SeatingChartResponse{
		Tables:     make([]dto.TableResponse, 0, len(configs)),
		Unassigned: seating.Reconcile(guests, assignments),
	}
	for _, c := range configs {
		table := dto.TableResponse{
			TableNumber:  c.TableNumber,
			Capacity:     c.Capacity,
			DisplayOrder: c.DisplayOrder,
			Seats:        make([]dto.SeatResponse, 0, c.Capacity),
		}
		for pos := 1; pos <= c.Capacity; pos++ {
			seat := dto.SeatResponse{Position: pos}
			for i := range assignments {
				if assignments[i].TableNumber == c.TableNumber && assignments[i].SeatPosition == pos {
					seat.Assignment = &assignments[i]
					break
				}
			}
			table.Seats = append(table.Seats, seat)
		}
		// Legacy rows above a reduced capacity stay visible until moved.
		for i := range assignments {
			if assignments[i].TableNumber == c.TableNumber && assignments[i].SeatPosition > c.Capacity {
				table.Seats = append(table.Seats, dto.SeatResponse{
					Position:   assignments[i].SeatPosition,
					Assignment: &assignments[i],
				})
			}
		}
		sort.Slice(table.Seats, func(i, j int) bool { return table.Seats[i].Position < table.Seats[j].Position })
		resp.Tables = append(resp.Tables, table)
	}

	dto.SuccessResponse(ctx, resp)
}

func (s *service) AssignSeat(ctx *ginext.Context) {
	var req dto.AssignSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	if len(req.PersonIndexes) == 2 && req.PersonIndexes[0] == req.PersonIndexes[1] {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Person indexes must differ for a couple")
		return
	}

	created, err := s.repo.AllocateSeatsTx(ctx.Request.Context(), req.GuestID, req.PersonIndexes, req.TableNumber, req.SeatPosition)
	if err != nil {
		s.seatingError(ctx, err)
		return
	}

	s.log.Info().
		Int64("guest_id", req.GuestID).
		Int("table", req.TableNumber).
		Int("party", len(created)).
		Msg("seats allocated")
	dto.SuccessCreatedResponse(ctx, created)
}

func (s *service) MoveAssignment(ctx *ginext.Context) {
	var req dto.MoveAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if err := s.repo.MoveAssignmentTx(ctx.Request.Context(), req.AssignmentID, req.TableNumber, req.SeatPosition); err != nil {
		s.seatingError(ctx, err)
		return
	}

	s.log.Info().
		Int64("assignment_id", req.AssignmentID).
		Int("table", req.TableNumber).
		Msg("assignment moved")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) SwapAssignments(ctx *ginext.Context) {
	var req dto.SwapAssignmentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	if req.FirstAssignmentID == req.SecondAssignmentID {
		dto.BadResponseError(ctx, dto.SelfSwap, "Cannot swap an assignment with itself")
		return
	}

	if err := s.repo.SwapAssignmentsTx(ctx.Request.Context(), req.FirstAssignmentID, req.SecondAssignmentID); err != nil {
		s.seatingError(ctx, err)
		return
	}

	s.log.Info().
		Int64("first", req.FirstAssignmentID).
		Int64("second", req.SecondAssignmentID).
		Msg("assignments swapped")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) DeleteAssignment(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid assignment ID")
		return
	}

	if err := s.repo.DeleteAssignmentTx(ctx.Request.Context(), id); err != nil {
		s.seatingError(ctx, err)
		return
	}

	s.log.Info().Int64("assignment_id", id).Msg("assignment removed")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) UpdateCapacity(ctx *ginext.Context) {
	tableNumber, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid table number")
		return
	}

	var req dto.UpdateCapacityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if err := s.repo.UpdateTableCapacityTx(ctx.Request.Context(), tableNumber, req.Capacity); err != nil {
		s.seatingError(ctx, err)
		return
	}

	s.log.Info().Int("table", tableNumber).Int("capacity", req.Capacity).Msg("table capacity updated")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) ReorderTables(ctx *ginext.Context) {
	var req dto.ReorderTablesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if err := s.repo.ReorderTablesTx(ctx.Request.Context(), req.TableNumber, req.TargetTableNumber, req.Before); err != nil {
		s.seatingError(ctx, err)
		return
	}

	configs, err := s.repo.ListTableConfigs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list table configs after reorder")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int("table", req.TableNumber).Int("target", req.TargetTableNumber).Msg("tables reordered")
	dto.SuccessResponse(ctx, configs)
}

func (s *service) ExportAlphabetical(ctx *ginext.Context) {
	assignments, err := s.repo.ListAssignments(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list assignments for export")
		dto.InternalServerError(ctx)
		return
	}

	s.writeCSV(ctx, "seating-alphabetical.csv", export.Alphabetical(assignments))
}

func (s *service) ExportByTable(ctx *ginext.Context) {
	configs, err := s.repo.ListTableConfigs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list table configs for export")
		dto.InternalServerError(ctx)
		return
	}
	assignments, err := s.repo.ListAssignments(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list assignments for export")
		dto.InternalServerError(ctx)
		return
	}

	s.writeCSV(ctx, "seating-by-table.csv", export.ByTable(configs, assignments))
}

func (s *service) writeCSV(ctx *ginext.Context, filename string, rows [][]string) {
	data, err := export.CSV(rows)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to render export")
		dto.InternalServerError(ctx)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(200, "text/csv", data)
}
