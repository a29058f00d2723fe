package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/juntagrico-contribution/app/controllers"
	apiv1 "github.com/ManuelReschke/juntagrico-contribution/internal/api/v1"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer(controllers.GetContributionService())
	apiv1.RegisterHandlersWithOptions(v1, apiServer, apiv1.FiberServerOptions{
		Middlewares: map[string][]fiber.Handler{
			"GetActiveRound":  {middleware.RequireAPISessionAuth},
			"GetRoundSummary": {middleware.RequireAPISessionAuth, middleware.RequireAPIAdmin},
		},
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
