package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/billing"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/contribution"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/logger"
)

const adminContributionPath = "/admin/contribution"

// AdminContributionController serves the round overview, details and summary pages
type AdminContributionController struct {
	svc   *contribution.Service
	repos *repository.Repositories
}

func NewAdminContributionController(svc *contribution.Service, repos *repository.Repositories) *AdminContributionController {
	return &AdminContributionController{svc: svc, repos: repos}
}

func summaryPath(id uint) string {
	return fmt.Sprintf("%s/%d/summary", adminContributionPath, id)
}

// HandleList shows all rounds grouped by status
func (ac *AdminContributionController) HandleList(c *fiber.Ctx) error {
	groups := make([]fiber.Map, 0, 3)
	for _, status := range []string{models.ROUND_STATUS_ACTIVE, models.ROUND_STATUS_DRAFT, models.ROUND_STATUS_CLOSED} {
		rounds, err := ac.repos.Round.GetByStatus(status)
		if err != nil {
			return internalError(c, "Beitragsrunden konnten nicht geladen werden", err)
		}
		groups = append(groups, fiber.Map{
			"Label":  models.RoundStatusLabels[status],
			"Status": status,
			"Rounds": rounds,
		})
	}
	return render(c, "admin/contribution/list", "Beitragsrunden", fiber.Map{"Groups": groups})
}

// HandleDetails lists the subject subscriptions of one round with their selection
func (ac *AdminContributionController) HandleDetails(c *fiber.Ctx) error {
	rounds, err := ac.repos.Round.GetAll()
	if err != nil {
		return internalError(c, "Beitragsrunden konnten nicht geladen werden", err)
	}

	var roundID uint
	if id := parseUintPtr(c.Query("round")); id != nil {
		roundID = *id
	} else {
		def, err := ac.repos.Round.GetDefault()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return render(c, "admin/contribution/details", "Details", fiber.Map{"Rounds": rounds})
		}
		if err != nil {
			return internalError(c, "Beitragsrunde konnte nicht geladen werden", err)
		}
		roundID = def.ID
	}

	round, rows, err := ac.svc.Aggregator.Details(c.UserContext(), roundID)
	if errors.Is(err, contribution.ErrRoundNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, "Details konnten nicht geladen werden", err)
	}

	return render(c, "admin/contribution/details", "Details "+round.Name, fiber.Map{
		"Rounds":   rounds,
		"Round":    round,
		"Rows":     rows,
		"Currency": ac.svc.Config().Currency,
	})
}

// HandleSummary shows the aggregated statistics of a round
func (ac *AdminContributionController) HandleSummary(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	ctx := c.UserContext()

	summary, err := ac.svc.Aggregator.Summary(ctx, id)
	if errors.Is(err, contribution.ErrRoundNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, "Zusammenfassung konnte nicht berechnet werden", err)
	}

	var transitions []fiber.Map
	for _, status := range []string{models.ROUND_STATUS_DRAFT, models.ROUND_STATUS_ACTIVE, models.ROUND_STATUS_CLOSED} {
		if contribution.CanTransition(summary.Round.Status, status) {
			transitions = append(transitions, fiber.Map{"Status": status, "Label": models.RoundStatusLabels[status]})
		}
	}

	data := fiber.Map{
		"Summary":        summary,
		"Transitions":    transitions,
		"Currency":       ac.svc.Config().Currency,
		"BillingEnabled": ac.svc.Billing.Enabled(),
	}
	if ac.svc.Billing.Enabled() {
		years, err := ac.svc.Billing.BusinessYears(ctx)
		if err != nil {
			return internalError(c, "Geschäftsjahre konnten nicht geladen werden", err)
		}
		itemTypes, err := ac.svc.Billing.ItemTypes(ctx)
		if err != nil {
			return internalError(c, "Rechnungspositionstypen konnten nicht geladen werden", err)
		}
		data["BusinessYears"] = years
		data["ItemTypes"] = itemTypes
	}
	return render(c, "admin/contribution/summary", "Zusammenfassung "+summary.Round.Name, data)
}

// HandleStatus changes the status of a round
func (ac *AdminContributionController) HandleStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	next := safeRedirect(c.FormValue("next"), summaryPath(id))

	round, err := ac.svc.Lifecycle.SetStatus(c.UserContext(), id, c.FormValue("status"))
	var blocked *contribution.ActivationBlockedError
	switch {
	case err == nil:
		return flashSuccess(c, fmt.Sprintf("Status von %s ist jetzt %s.", round.Name, round.StatusLabel()), next)
	case errors.As(err, &blocked):
		return flashError(c, blocked.Error(), next)
	case errors.Is(err, contribution.ErrInvalidStatus):
		return flashError(c, "Ungültige Operation", next)
	case errors.Is(err, contribution.ErrInvalidTransition):
		return flashError(c, "Dieser Statuswechsel ist nicht möglich.", next)
	case errors.Is(err, contribution.ErrLocked):
		return flashError(c, "Eine andere Statusänderung läuft gerade. Bitte versuche es erneut.", next)
	case errors.Is(err, contribution.ErrRoundNotFound):
		return flashError(c, "Beitragsrunde nicht gefunden.", adminContributionPath+"/list")
	default:
		return internalError(c, "Status konnte nicht geändert werden", err)
	}
}

// HandleTransfer books the round into billing or removes it again
func (ac *AdminContributionController) HandleTransfer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	back := summaryPath(id)
	ctx := c.UserContext()

	yearID := parseUintPtr(c.FormValue("business_year"))
	if yearID == nil {
		return flashError(c, "Bitte wähle ein Geschäftsjahr.", back)
	}

	if isChecked(c.FormValue("undo")) {
		n, err := ac.svc.UndoTransfer(ctx, id, *yearID)
		if err != nil {
			return ac.transferError(c, err, back)
		}
		return flashSuccess(c, fmt.Sprintf("%d Einträge wurden entfernt.", n), back)
	}

	res, err := ac.svc.Transfer(ctx, id, *yearID, parseUintPtr(c.FormValue("item_type")))
	if err != nil {
		return ac.transferError(c, err, back)
	}
	if res.Failed() > 0 {
		return flashError(c, strconv.Itoa(res.Failed())+
			" Einträge konnten nicht erstellt werden. Wurden die Rechnungen schon generiert?", back)
	}
	return flashSuccess(c, fmt.Sprintf("%d Einträge erstellt, %d aktualisiert.", res.Created, res.Updated), back)
}

func (ac *AdminContributionController) transferError(c *fiber.Ctx, err error, back string) error {
	switch {
	case errors.Is(err, billing.ErrDisabled):
		return flashError(c, "Übertragung fehlgeschlagen: Billing ist nicht aktiv.", back)
	case errors.Is(err, contribution.ErrRoundNotFound):
		return flashError(c, "Beitragsrunde nicht gefunden.", adminContributionPath+"/list")
	default:
		logger.FromContext(c.UserContext()).Error("billing transfer failed", zap.Error(err))
		return flashError(c, "Übertragung fehlgeschlagen.", back)
	}
}
