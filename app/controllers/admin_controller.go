package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/contribution"
)

// AdminController handles the admin dashboard and the application settings
type AdminController struct {
	repos *repository.Repositories
	svc   *contribution.Service
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories, svc *contribution.Service) *AdminController {
	return &AdminController{
		repos: repos,
		svc:   svc,
	}
}

// HandleDashboard shows the active round at a glance
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	data := fiber.Map{"Currency": ac.svc.Config().Currency}

	round, err := ac.repos.Round.GetDefault()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return internalError(c, "Beitragsrunde konnte nicht geladen werden", err)
	default:
		summary, err := ac.svc.Aggregator.Summary(c.UserContext(), round.ID)
		if err != nil {
			return internalError(c, "Zusammenfassung konnte nicht berechnet werden", err)
		}
		data["Summary"] = summary
	}

	rounds, err := ac.repos.Round.GetAll()
	if err != nil {
		return internalError(c, "Beitragsrunden konnten nicht geladen werden", err)
	}
	data["RoundCount"] = len(rounds)

	return render(c, "admin/dashboard", "Admin", data)
}

// HandleSettings renders the settings form with the values currently stored
func (ac *AdminController) HandleSettings(c *fiber.Ctx) error {
	settings, err := ac.repos.Setting.Reload()
	if err != nil {
		return internalError(c, "Einstellungen konnten nicht geladen werden", err)
	}
	return render(c, "admin/settings", "Einstellungen", fiber.Map{"Settings": settings})
}

// HandleSettingsUpdate stores the submitted settings
func (ac *AdminController) HandleSettingsUpdate(c *fiber.Ctx) error {
	settings := &models.AppSettings{
		SiteTitle:                 strings.TrimSpace(c.FormValue("site_title")),
		Currency:                  strings.ToUpper(strings.TrimSpace(c.FormValue("currency"))),
		MultiplierPricingEnabled:  isChecked(c.FormValue("multiplier_pricing_enabled")),
		EligibilityCutoffsEnabled: isChecked(c.FormValue("eligibility_cutoffs_enabled")),
	}

	if err := settings.Validate(); err != nil {
		return flashError(c, "Ungültige Einstellungen: Titel ist erforderlich und die Währung braucht drei Buchstaben.", "/admin/settings")
	}
	if err := ac.repos.Setting.Save(settings); err != nil {
		return internalError(c, "Einstellungen konnten nicht gespeichert werden", err)
	}
	return flashSuccess(c, "Einstellungen gespeichert.", "/admin/settings")
}
