package handler

import (
	"shutterbid/internal/delivery/http/dto"
	"shutterbid/internal/delivery/http/middleware"
	"shutterbid/internal/domain/market"
	"shutterbid/internal/pkg/response"
	"shutterbid/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BidHandler struct {
	bids       usecase.BidUsecase
	resolution usecase.ResolutionUsecase
	views      usecase.ViewsUsecase
}

func NewBidHandler(bids usecase.BidUsecase, resolution usecase.ResolutionUsecase, views usecase.ViewsUsecase) *BidHandler {
	return &BidHandler{bids: bids, resolution: resolution, views: views}
}

func (h *BidHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/bids", h.Create)
	r.Get("/bids", h.ListForCustomer)
	r.Get("/my-bids", h.ListForPhotographer)
	r.Patch("/bids/:bidId", h.Resolve)
}

type createBidRequest struct {
	JobID    string  `json:"jobId"`
	Price    float64 `json:"price"`
	Proposal string  `json:"proposal"`
}

type resolveBidRequest struct {
	Status string `json:"status"`
}

func (h *BidHandler) Create(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	var req createBidRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	bid, err := h.bids.Create(c.Context(), ident, usecase.CreateBidInput{
		JobID:    req.JobID,
		Price:    req.Price,
		Proposal: req.Proposal,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Bid submitted successfully", fiber.Map{"bid": bid})
}

func (h *BidHandler) ListForCustomer(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	enriched, err := h.views.BidsForCustomer(c.Context(), ident)
	if err != nil {
		return mapUsecaseError(err)
	}

	items := make([]dto.CustomerBidItem, 0, len(enriched))
	for _, e := range enriched {
		items = append(items, dto.CustomerBidItem{
			ID:             e.Bid.ID,
			JobID:          e.Bid.JobID,
			VideographerID: e.Bid.VideographerID,
			Price:          e.Bid.Price,
			Proposal:       e.Bid.Proposal,
			Status:         e.Bid.Status,
			CreatedAt:      e.Bid.CreatedAt,
			Job:            dto.NewCustomerJobRef(e.Job),
			Photographer:   dto.NewPhotographerRef(e.Photographer),
		})
	}

	return response.Success(c, fiber.StatusOK, "", fiber.Map{"bids": items})
}

func (h *BidHandler) ListForPhotographer(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	enriched, err := h.views.BidsForPhotographer(c.Context(), ident)
	if err != nil {
		return mapUsecaseError(err)
	}

	items := make([]dto.PhotographerBidItem, 0, len(enriched))
	for _, e := range enriched {
		items = append(items, dto.PhotographerBidItem{
			ID:        e.Bid.ID,
			JobID:     e.Bid.JobID,
			Price:     e.Bid.Price,
			Proposal:  e.Bid.Proposal,
			Status:    e.Bid.Status,
			CreatedAt: e.Bid.CreatedAt,
			Job:       dto.NewPhotographerJobRef(e.Job),
		})
	}

	return response.Success(c, fiber.StatusOK, "", fiber.Map{"bids": items})
}

func (h *BidHandler) Resolve(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	var req resolveBidRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	target := market.BidStatus(req.Status)
	if target != market.BidAccepted && target != market.BidRejected {
		return middleware.NewAppError(fiber.StatusBadRequest, "status must be either accepted or rejected", nil)
	}

	if err := h.resolution.Resolve(c.Context(), ident, c.Params("bidId"), target); err != nil {
		return mapUsecaseError(err)
	}

	msg := "Bid rejected"
	if target == market.BidAccepted {
		msg = "Bid accepted"
	}
	return response.Success(c, fiber.StatusOK, msg, nil)
}
