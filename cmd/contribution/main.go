package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/ManuelReschke/juntagrico-contribution/app/controllers"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/billing"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/cache"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/database"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/env"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/logger"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/router"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/viewmodel"
)

func main() {
	app := NewApplication()
	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	if err := app.Listen(addr); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()

	log, err := logger.New(env.GetEnv("LOG_LEVEL", "info"), env.GetEnv("LOG_FORMAT", "json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	var sink billing.Sink = billing.NoopSink{}
	if env.GetBool("BILLING_ENABLED", false) {
		sink = billing.NewServiceFromDB(repository.GetGlobalFactory().DB())
		log.Info("billing integration enabled")
	}
	controllers.InitializeControllers(sink, cache.NewLocker(cache.GetClient()))

	basePath := findBasePath()

	engine := html.New(basePath+"views", ".html")
	engine.AddFuncMap(viewmodel.Funcs())
	engine.Reload(env.IsDev())

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: errorHandler,
	})

	// recovery and logging
	app.Use(recover.New(), logger.RequestLogger())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// static files
	app.Static("/", basePath+"public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}))

	// ROUTER
	router.InstallRouter(app)
	app.Use(controllers.HandleNotFound)

	return app
}

// findBasePath locates the project root from the working directory
func findBasePath() string {
	for _, path := range []string{"./", "../../", "../../../"} {
		if _, err := os.Stat(path + "views"); err == nil {
			return path
		}
	}
	zap.L().Fatal("could not find project root directory")
	return ""
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := fiber.ErrInternalServerError.Message
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		logger.FromContext(c.UserContext()).Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).SendString(message)
}
