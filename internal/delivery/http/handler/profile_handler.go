package handler

import (
	"shutterbid/internal/delivery/http/middleware"
	"shutterbid/internal/domain/market"
	"shutterbid/internal/pkg/response"
	"shutterbid/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
	r.Get("/portfolio", h.GetPortfolio)
	r.Put("/portfolio", h.UpdatePortfolio)
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	p, err := h.uc.GetProfile(c.Context(), ident)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", fiber.Map{"profile": p})
}

func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	var req market.Profile
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), ident, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", fiber.Map{"profile": p})
}

func (h *ProfileHandler) GetPortfolio(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	p, err := h.uc.GetPortfolio(c.Context(), ident)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "", fiber.Map{"portfolio": p})
}

func (h *ProfileHandler) UpdatePortfolio(c fiber.Ctx) error {
	ident, appErr := requireIdentity(c)
	if appErr != nil {
		return appErr
	}

	var req market.Portfolio
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}

	p, err := h.uc.UpdatePortfolio(c.Context(), ident, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Portfolio updated", fiber.Map{"portfolio": p})
}
