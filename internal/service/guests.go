package service

import (
	"errors"
	"fmt"
	"strconv"

	"weddingdesk/internal/dto"
	"weddingdesk/internal/model"
	"weddingdesk/internal/repo"
	"weddingdesk/pkg/validator"

	"github.com/wb-go/wbf/ginext"
)

func (s *service) ListGuests(ctx *ginext.Context) {
	guests, err := s.repo.ListGuests(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list guests")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, guests)
}

func (s *service) CreateGuest(ctx *ginext.Context) {
	var req dto.CreateGuestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	if req.Person2Name != "" && req.Attendance2 == "" {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Second attendee needs an attendance status")
		return
	}

	guest := &model.Guest{
		Person1Name:         req.Person1Name,
		Person2Name:         req.Person2Name,
		Attendance1:         req.Attendance1,
		Attendance2:         req.Attendance2,
		DietaryRestriction1: req.DietaryRestriction1,
		DietaryRestriction2: req.DietaryRestriction2,
		HostTag:             req.HostTag,
	}

	id, err := s.repo.CreateGuest(ctx.Request.Context(), guest)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create guest")
		dto.InternalServerError(ctx)
		return
	}
	guest.ID = id

	s.log.Info().Int64("guest_id", id).Msg("guest created")
	dto.SuccessCreatedResponse(ctx, guest)
}

func (s *service) UpdateGuest(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid guest ID")
		return
	}

	var req dto.CreateGuestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	guest := &model.Guest{
		ID:                  id,
		Person1Name:         req.Person1Name,
		Person2Name:         req.Person2Name,
		Attendance1:         req.Attendance1,
		Attendance2:         req.Attendance2,
		DietaryRestriction1: req.DietaryRestriction1,
		DietaryRestriction2: req.DietaryRestriction2,
		HostTag:             req.HostTag,
	}

	if err := s.repo.UpdateGuest(ctx.Request.Context(), guest); err != nil {
		if errors.Is(err, repo.ErrGuestNotFound) {
			dto.NotFoundResponseError(ctx, dto.GuestNotFound, "Guest not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to update guest")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, guest)
}

// UpdateRSVP records an attendee's answer. Declining also removes the
// attendee's seat, so the chart and sidebar stay consistent.
func (s *service) UpdateRSVP(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid guest ID")
		return
	}

	var req dto.UpdateRSVPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if err := s.repo.UpdateAttendanceTx(ctx.Request.Context(), id, req.PersonIndex, req.Attendance); err != nil {
		if errors.Is(err, repo.ErrGuestNotFound) {
			dto.NotFoundResponseError(ctx, dto.GuestNotFound, "Guest not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to update RSVP")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Int64("guest_id", id).
		Int("person_index", req.PersonIndex).
		Str("attendance", req.Attendance).
		Msg("RSVP updated")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) DeleteGuest(ctx *ginext.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid guest ID")
		return
	}

	if err := s.repo.DeleteGuestTx(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repo.ErrGuestNotFound) {
			dto.NotFoundResponseError(ctx, dto.GuestNotFound, "Guest not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to delete guest")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("guest_id", id).Msg("guest deleted")
	dto.SuccessResponse(ctx, nil)
}
