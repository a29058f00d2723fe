package apiv1

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /ping)
	GetPing(c *fiber.Ctx) error
	// (GET /rounds/active)
	GetActiveRound(c *fiber.Ctx) error
	// (GET /rounds/{id}/summary)
	GetRoundSummary(c *fiber.Ctx, id uint) error
}

// ServerInterfaceWrapper converts fiber contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
	// Middlewares run per operation, keyed by operation id
	Middlewares map[string][]fiber.Handler
}

func (siw *ServerInterfaceWrapper) chain(operationID string, h fiber.Handler) []fiber.Handler {
	handlers := append([]fiber.Handler{}, siw.Middlewares[operationID]...)
	return append(handlers, h)
}

// GetPing operation middleware
func (siw *ServerInterfaceWrapper) GetPing(c *fiber.Ctx) error {
	return siw.Handler.GetPing(c)
}

// GetActiveRound operation middleware
func (siw *ServerInterfaceWrapper) GetActiveRound(c *fiber.Ctx) error {
	return siw.Handler.GetActiveRound(c)
}

// GetRoundSummary operation middleware
func (siw *ServerInterfaceWrapper) GetRoundSummary(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(Error{
			Error:   "bad_request",
			Message: fmt.Sprintf("Invalid format for parameter id: %q", c.Params("id")),
		})
	}
	return siw.Handler.GetRoundSummary(c, uint(id))
}

// FiberServerOptions provides options for the Fiber server.
type FiberServerOptions struct {
	BaseURL     string
	Middlewares map[string][]fiber.Handler
}

// RegisterHandlers creates http.Handler with routing matching OpenAPI spec.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, FiberServerOptions{})
}

// RegisterHandlersWithOptions creates http.Handler with additional options
func RegisterHandlersWithOptions(router fiber.Router, si ServerInterface, options FiberServerOptions) {
	wrapper := ServerInterfaceWrapper{
		Handler:     si,
		Middlewares: options.Middlewares,
	}

	router.Get(options.BaseURL+"/ping", wrapper.chain("GetPing", wrapper.GetPing)...)
	router.Get(options.BaseURL+"/rounds/active", wrapper.chain("GetActiveRound", wrapper.GetActiveRound)...)
	router.Get(options.BaseURL+"/rounds/:id/summary", wrapper.chain("GetRoundSummary", wrapper.GetRoundSummary)...)
}
