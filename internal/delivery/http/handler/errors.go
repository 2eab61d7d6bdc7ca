package handler

import (
	"errors"

	"shutterbid/internal/delivery/http/middleware"
	"shutterbid/internal/domain/market"
	"shutterbid/internal/pkg/response"
	"shutterbid/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError translates the usecase error taxonomy into HTTP
// statuses. Validation messages pass through verbatim; authorization
// failures stay generic so callers cannot probe for resource existence.
func mapUsecaseError(err error) *middleware.AppError {
	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return middleware.NewAppError(fiber.StatusBadRequest, ve.Message, err)
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, err)
	case errors.Is(err, usecase.ErrNotAllowed):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "job already has an accepted bid", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}

// requireIdentity pulls the resolved identity off the request or fails
// with 401. Routes behind the auth middleware always have one; this is
// the guard for misconfigured route groups.
func requireIdentity(c fiber.Ctx) (market.Identity, *middleware.AppError) {
	ident, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return market.Identity{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	return ident, nil
}
