package v1

import (
	"shutterbid/internal/delivery/http/handler"
	"shutterbid/internal/delivery/http/middleware"
	"shutterbid/internal/pkg/jwt"
	"shutterbid/internal/usecase"
	ucauth "shutterbid/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the composed services the v1 routes are built on. The
// composition root is internal/app; nothing is constructed here.
type Deps struct {
	JWT        jwt.Service
	Auth       ucauth.AuthUsecase
	Jobs       usecase.JobUsecase
	Bids       usecase.BidUsecase
	Resolution usecase.ResolutionUsecase
	Views      usecase.ViewsUsecase
	Profiles   usecase.ProfileUsecase
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(d.JWT)

	authHandler := handler.NewAuthHandler(d.Auth)
	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())

	jobHandler := handler.NewJobHandler(d.Jobs)
	jobHandler.RegisterRoutes(protected.Group("/jobs"))

	bidHandler := handler.NewBidHandler(d.Bids, d.Resolution, d.Views)
	bidHandler.RegisterRoutes(protected)

	profileHandler := handler.NewProfileHandler(d.Profiles)
	profileHandler.RegisterRoutes(protected)
}
