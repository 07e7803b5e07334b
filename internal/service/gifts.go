package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"

	"weddingdesk/internal/dto"
	"weddingdesk/internal/mailer"
	"weddingdesk/internal/model"
	"weddingdesk/internal/repo"
	"weddingdesk/pkg/validator"
)

func (s *service) ListProducts(ctx *ginext.Context) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list products")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, products)
}

func (s *service) CreateProduct(ctx *ginext.Context) {
	var req dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Active:      true,
	}

	id, err := s.repo.CreateProduct(ctx.Request.Context(), product)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		dto.InternalServerError(ctx)
		return
	}
	product.ID = id

	s.log.Info().Int64("product_id", id).Msg("product created")
	dto.SuccessCreatedResponse(ctx, product)
}

// CreateContribution books a pending gift contribution and schedules its
// expiry through the delayed queue, mirroring a payment hold: pay within
// the timeout or the hold lapses.
func (s *service) CreateContribution(ctx *ginext.Context) {
	productID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid product ID")
		return
	}

	var req dto.CreateContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	contribution := &model.Contribution{
		ProductID:       productID,
		ContributorName: req.ContributorName,
		Email:           req.Email,
		AmountCents:     req.AmountCents,
		Status:          "pending",
		Reference:       uuid.NewString(),
	}

	id, err := s.repo.CreateContribution(ctx.Request.Context(), contribution)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			dto.NotFoundResponseError(ctx, dto.ProductNotFound, "Product not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to create contribution")
		dto.InternalServerError(ctx)
		return
	}
	contribution.ID = id

	timeout := s.cfg.PaymentTimeoutMinutes
	msg := dto.ContributionOperateMessage{
		ContributionID: id,
		ProductID:      productID,
		ExpireAt:       time.Now().Add(time.Duration(timeout) * time.Minute),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal expiry message")
		dto.InternalServerError(ctx)
		return
	}
	if err := s.rbt.Publish(payload, timeout*60); err != nil {
		s.log.Error().Err(err).Msg("failed to publish expiry message")
	}

	if err := mailer.SendContributionEmail(s.log, s.cfg.Mail, "pending", req.Email, req.ContributorName, timeout); err != nil {
		s.log.Warn().Err(err).Msg("failed to send contribution email")
	}

	s.log.Info().Int64("contribution_id", id).Str("reference", contribution.Reference).Msg("contribution created")
	dto.SuccessCreatedResponse(ctx, dto.ContributionResponse{
		ID:              id,
		ProductID:       productID,
		ContributorName: contribution.ContributorName,
		Email:           contribution.Email,
		AmountCents:     contribution.AmountCents,
		Status:          contribution.Status,
		Reference:       contribution.Reference,
		CreatedAt:       time.Now(),
	})
}

// ConfirmContribution is called by the payment collaborator once the money
// arrived. Confirming an expired or already-paid contribution is rejected.
func (s *service) ConfirmContribution(ctx *ginext.Context) {
	var req dto.ConfirmContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	contribution, err := s.repo.GetContributionByReference(ctx, req.Reference)
	if err != nil {
		dto.NotFoundResponseError(ctx, dto.ContributionNotFound, "Contribution not found")
		return
	}

	if contribution.Status == "paid" {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Already paid")
		return
	}
	if contribution.Status == "expired" {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Contribution hold expired")
		return
	}

	if err := s.repo.UpdateContributionStatusTx(ctx, contribution.ID, "paid"); err != nil {
		s.log.Error().Err(err).Msg("failed to mark contribution paid")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Int64("contribution_id", contribution.ID).
		Str("email", contribution.Email).
		Msg("contribution paid")

	if err := mailer.SendContributionEmail(s.log, s.cfg.Mail, "paid", contribution.Email, contribution.ContributorName, 0); err != nil {
		s.log.Warn().Err(err).Msg("failed to send receipt email")
	}

	contribution.Status = "paid"
	dto.SuccessResponse(ctx, contribution)
}
