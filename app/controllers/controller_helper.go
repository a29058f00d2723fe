package controllers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sujit-baniya/flash"
	"go.uber.org/zap"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/logger"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/usercontext"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/viewmodel"
)

const layoutMain = "layouts/main"

// menuFunc decides whether the contribution menu entry is shown for a member
type menuFunc func(ctx context.Context, memberID uint) (bool, error)

var showMenu menuFunc

// render executes a page template inside the main layout
func render(c *fiber.Ctx, template, page string, data fiber.Map) error {
	uc := usercontext.GetUserContext(c)
	csrf, _ := c.Locals("csrf").(string)

	layout := viewmodel.Layout{
		Page:          page,
		SiteTitle:     models.GetAppSettings().SiteTitle,
		FromProtected: uc.IsLoggedIn,
		Msg:           flash.Get(c),
		Username:      uc.Name,
		IsAdmin:       uc.IsAdmin,
		CSRF:          csrf,
	}
	if msgType, ok := layout.Msg["type"].(string); ok && msgType == "error" {
		layout.IsError = true
	}
	if uc.IsLoggedIn && showMenu != nil {
		show, err := showMenu(c.UserContext(), uc.MemberID)
		if err != nil {
			logger.FromContext(c.UserContext()).Warn("failed to resolve contribution menu", zap.Error(err))
		}
		layout.ShowContribution = show
	}
	if data == nil {
		data = fiber.Map{}
	}
	return c.Render(template, viewmodel.Page{Layout: layout, Data: data}, layoutMain)
}

func flashError(c *fiber.Ctx, message, redirect string) error {
	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	return flash.WithError(c, fm).Redirect(redirect)
}

func flashSuccess(c *fiber.Ctx, message, redirect string) error {
	fm := fiber.Map{
		"type":    "success",
		"message": message,
	}
	return flash.WithSuccess(c, fm).Redirect(redirect)
}

// internalError logs err and answers with the error page
func internalError(c *fiber.Ctx, message string, err error) error {
	logger.FromContext(c.UserContext()).Error(message,
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	c.Status(fiber.StatusInternalServerError)
	return render(c, "errors/500", "Fehler", fiber.Map{"Message": message})
}

// notFound renders the 404 page
func notFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return render(c, "errors/404", "Nicht gefunden", nil)
}

// HandleNotFound is the fallback for unknown routes
func HandleNotFound(c *fiber.Ctx) error {
	return notFound(c)
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseUintPtr(value string) *uint {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

func parseFloatPtr(value string) (*float64, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// parseAmount accepts both "12.50" and "12,50"
func parseAmount(value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDatePtr(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func isChecked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}

// safeRedirect only allows local paths. Browsers read "//" and "/\" as
// protocol relative.
func safeRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
