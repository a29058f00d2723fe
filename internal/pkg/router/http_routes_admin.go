package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/ManuelReschke/juntagrico-contribution/app/controllers"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin, csrf.New(csrfConfig()))
	adminGroup.Get("/", controllers.HandleAdminDashboard)
	adminGroup.Get("/settings", controllers.HandleAdminSettings)
	adminGroup.Post("/settings", controllers.HandleAdminSettingsUpdate)

	// Round overview, statistics and status
	contribution := adminGroup.Group("/contribution")
	contribution.Get("/list", controllers.HandleAdminContributionList)
	contribution.Get("/details", controllers.HandleAdminContributionDetails)
	contribution.Get("/:id/summary", controllers.HandleAdminContributionSummary)
	contribution.Post("/:id/status", controllers.HandleAdminContributionStatus)
	contribution.Post("/:id/transfer", controllers.HandleAdminContributionTransfer)

	// Round management
	contribution.Get("/rounds/create", controllers.HandleAdminRoundCreate)
	contribution.Post("/rounds/create", controllers.HandleAdminRoundCreate)
	contribution.Get("/rounds/edit/:id", controllers.HandleAdminRoundEdit)
	contribution.Post("/rounds/edit/:id", controllers.HandleAdminRoundEdit)
	contribution.Post("/rounds/delete/:id", controllers.HandleAdminRoundDelete)

	// Option and condition management
	contribution.Get("/rounds/:id/options/create", controllers.HandleAdminOptionCreate)
	contribution.Post("/rounds/:id/options/create", controllers.HandleAdminOptionCreate)
	contribution.Get("/options/edit/:id", controllers.HandleAdminOptionEdit)
	contribution.Post("/options/edit/:id", controllers.HandleAdminOptionEdit)
	contribution.Post("/options/delete/:id", controllers.HandleAdminOptionDelete)
	contribution.Post("/options/:id/conditions", controllers.HandleAdminConditionSave)
	contribution.Post("/conditions/delete/:id", controllers.HandleAdminConditionDelete)
}
