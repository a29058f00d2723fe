package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/juntagrico-contribution/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/docs/api", func(c *fiber.Ctx) error {
		return c.Redirect("/docs/api/v1", fiber.StatusMovedPermanently)
	})
	app.Post("/logout", controllers.HandleLogout)
}
