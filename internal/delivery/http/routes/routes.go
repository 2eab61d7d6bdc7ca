package routes

import (
	"shutterbid/internal/database"
	"shutterbid/internal/delivery/http/handler"
	v1 "shutterbid/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, db database.DB, deps v1.Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(db).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), deps)
}
