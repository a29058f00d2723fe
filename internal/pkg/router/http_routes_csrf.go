package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/ManuelReschke/juntagrico-contribution/app/controllers"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	group := app.Group("", csrf.New(csrfConfig()))
	group.Get("/", controllers.HandleStart)
	group.Get("/login", controllers.HandleLogin)
	group.Post("/login", controllers.HandleLogin)

	// member contribution pages
	group.Get("/contribution/select", middleware.RequireAuth, controllers.HandleContributionSelect)
	group.Post("/contribution/select", middleware.RequireAuth, controllers.HandleContributionSelect)
	group.Get("/contribution/view", middleware.RequireAuth, controllers.HandleContributionView)
}
