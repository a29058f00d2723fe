package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/contribution"
)

// AdminRoundController manages rounds, their options and option conditions
type AdminRoundController struct {
	repos  *repository.Repositories
	config contribution.ConfigProvider
}

func NewAdminRoundController(repos *repository.Repositories, config contribution.ConfigProvider) *AdminRoundController {
	return &AdminRoundController{repos: repos, config: config}
}

func roundEditPath(id uint) string {
	return fmt.Sprintf("%s/rounds/edit/%d", adminContributionPath, id)
}

func optionEditPath(id uint) string {
	return fmt.Sprintf("%s/options/edit/%d", adminContributionPath, id)
}

// bindRound copies the form values onto round. Form errors are keyed by field.
func bindRound(c *fiber.Ctx, round *models.ContributionRound) map[string]string {
	errs := map[string]string{}

	round.Name = strings.TrimSpace(c.FormValue("name"))
	round.Description = strings.TrimSpace(c.FormValue("description"))
	round.OtherAmount = isChecked(c.FormValue("other_amount"))

	if amount, err := parseAmount(c.FormValue("target_amount")); err != nil || (amount != nil && amount.GreaterThan(models.MaxMoney)) {
		errs["target_amount"] = "Ungültiger Betrag"
	} else if amount != nil {
		round.TargetAmount = *amount
	}
	if m, err := parseFloatPtr(c.FormValue("target_multiplier")); err != nil {
		errs["target_multiplier"] = "Ungültiger Faktor"
	} else {
		round.TargetMultiplier = m
	}
	if d, err := parseDatePtr(c.FormValue("creation_cutoff")); err != nil {
		errs["creation_cutoff"] = "Ungültiges Datum"
	} else {
		round.CreationCutoff = d
	}
	if d, err := parseDatePtr(c.FormValue("cancellation_cutoff")); err != nil {
		errs["cancellation_cutoff"] = "Ungültiges Datum"
	} else {
		round.CancellationCutoff = d
	}

	round.MinimumAmountID = parseUintPtr(c.FormValue("minimum_amount"))
	round.DefaultAmountID = parseUintPtr(c.FormValue("default_amount"))
	// both must reference an option of this round
	if round.MinimumAmountID != nil && round.OptionByID(*round.MinimumAmountID) == nil {
		errs["minimum_amount"] = "Option gehört nicht zu dieser Beitragsrunde"
	}
	if round.DefaultAmountID != nil && round.OptionByID(*round.DefaultAmountID) == nil {
		errs["default_amount"] = "Option gehört nicht zu dieser Beitragsrunde"
	}

	if err := round.Validate(); err != nil && errs["name"] == "" {
		if round.Name == "" {
			errs["name"] = "Name ist erforderlich"
		} else if len(round.Name) > 100 {
			errs["name"] = "Name ist zu lang"
		} else {
			errs["target_multiplier"] = "Faktor muss grösser als 0 sein"
		}
	}
	return errs
}

func (ac *AdminRoundController) renderRoundForm(c *fiber.Ctx, round *models.ContributionRound, errs map[string]string) error {
	title := "Neue Beitragsrunde"
	if round.ID != 0 {
		title = "Beitragsrunde " + round.Name
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return render(c, "admin/contribution/round_form", title, fiber.Map{
		"Round":  round,
		"Errors": errs,
	})
}

func (ac *AdminRoundController) HandleCreate(c *fiber.Ctx) error {
	round := &models.ContributionRound{Status: models.ROUND_STATUS_DRAFT}
	if c.Method() != fiber.MethodPost {
		return ac.renderRoundForm(c, round, nil)
	}

	if errs := bindRound(c, round); len(errs) > 0 {
		return ac.renderRoundForm(c, round, errs)
	}
	if err := ac.repos.Round.Create(round); err != nil {
		return ac.renderRoundForm(c, round, map[string]string{"name": "Eine Beitragsrunde mit diesem Namen existiert bereits"})
	}
	return flashSuccess(c, "Beitragsrunde erstellt.", roundEditPath(round.ID))
}

func (ac *AdminRoundController) HandleEdit(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	round, err := ac.repos.Round.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, "Beitragsrunde konnte nicht geladen werden", err)
	}
	if c.Method() != fiber.MethodPost {
		return ac.renderRoundForm(c, round, nil)
	}

	if errs := bindRound(c, round); len(errs) > 0 {
		return ac.renderRoundForm(c, round, errs)
	}
	if err := ac.repos.Round.Update(round); err != nil {
		return ac.renderRoundForm(c, round, map[string]string{"name": "Eine Beitragsrunde mit diesem Namen existiert bereits"})
	}
	return flashSuccess(c, "Beitragsrunde gespeichert.", roundEditPath(round.ID))
}

func (ac *AdminRoundController) HandleDelete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	if err := ac.repos.Round.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return flashError(c, "Beitragsrunde nicht gefunden.", adminContributionPath+"/list")
		}
		return internalError(c, "Beitragsrunde konnte nicht gelöscht werden", err)
	}
	return flashSuccess(c, "Beitragsrunde gelöscht.", adminContributionPath+"/list")
}

func bindOption(c *fiber.Ctx, option *models.ContributionOption) map[string]string {
	errs := map[string]string{}
	option.Name = strings.TrimSpace(c.FormValue("name"))
	option.Visible = isChecked(c.FormValue("visible"))

	if m, err := parseFloatPtr(c.FormValue("multiplier")); err != nil {
		errs["multiplier"] = "Ungültiger Faktor"
	} else {
		option.Multiplier = m
	}
	if v := strings.TrimSpace(c.FormValue("sort_order")); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			errs["sort_order"] = "Ungültige Reihenfolge"
		} else {
			option.SortOrder = uint(n)
		}
	}
	if err := option.Validate(); err != nil {
		if option.Name == "" {
			errs["name"] = "Name ist erforderlich"
		} else if len(option.Name) > 100 {
			errs["name"] = "Name ist zu lang"
		} else {
			errs["multiplier"] = "Faktor darf nicht negativ sein"
		}
	}
	return errs
}

func (ac *AdminRoundController) renderOptionForm(c *fiber.Ctx, round *models.ContributionRound, option *models.ContributionOption, errs map[string]string) error {
	types, err := ac.repos.Subscription.GetTypes()
	if err != nil {
		return internalError(c, "Abotypen konnten nicht geladen werden", err)
	}
	if errs == nil {
		errs = map[string]string{}
	}
	title := "Neue Option"
	if option.ID != 0 {
		title = "Option " + option.Name
	}
	return render(c, "admin/contribution/option_form", title, fiber.Map{
		"Round":    round,
		"Option":   option,
		"Prices":   contribution.PricesByType(option, types, ac.config()),
		"Types":    types,
		"Errors":   errs,
		"Currency": ac.config().Currency,
	})
}

func (ac *AdminRoundController) HandleOptionCreate(c *fiber.Ctx) error {
	roundID, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	round, err := ac.repos.Round.GetByID(roundID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, "Beitragsrunde konnte nicht geladen werden", err)
	}

	option := &models.ContributionOption{RoundID: round.ID, Visible: true, SortOrder: uint(len(round.Options) + 1)}
	if c.Method() != fiber.MethodPost {
		return ac.renderOptionForm(c, round, option, nil)
	}
	if errs := bindOption(c, option); len(errs) > 0 {
		return ac.renderOptionForm(c, round, option, errs)
	}
	if err := ac.repos.Option.Create(option); err != nil {
		return ac.renderOptionForm(c, round, option, map[string]string{"name": "Eine Option mit diesem Namen existiert bereits"})
	}
	return flashSuccess(c, "Option erstellt.", optionEditPath(option.ID))
}

func (ac *AdminRoundController) loadOption(c *fiber.Ctx) (*models.ContributionRound, *models.ContributionOption, error) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	option, err := ac.repos.Option.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	round, err := ac.repos.Round.GetByID(option.RoundID)
	if err != nil {
		return nil, nil, err
	}
	return round, option, nil
}

func (ac *AdminRoundController) HandleOptionEdit(c *fiber.Ctx) error {
	round, option, err := ac.loadOption(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, "Option konnte nicht geladen werden", err)
	}
	if c.Method() != fiber.MethodPost {
		return ac.renderOptionForm(c, round, option, nil)
	}
	if errs := bindOption(c, option); len(errs) > 0 {
		return ac.renderOptionForm(c, round, option, errs)
	}
	if err := ac.repos.Option.Update(option); err != nil {
		return ac.renderOptionForm(c, round, option, map[string]string{"name": "Eine Option mit diesem Namen existiert bereits"})
	}
	return flashSuccess(c, "Option gespeichert.", optionEditPath(option.ID))
}

func (ac *AdminRoundController) HandleOptionDelete(c *fiber.Ctx) error {
	round, option, err := ac.loadOption(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, "Option konnte nicht geladen werden", err)
	}
	if err := ac.repos.Option.Delete(option.ID); err != nil {
		if errors.Is(err, repository.ErrOptionIsMinimum) {
			return flashError(c, "Die Option ist der Mindestbetrag der Beitragsrunde und kann nicht gelöscht werden.", optionEditPath(option.ID))
		}
		return internalError(c, "Option konnte nicht gelöscht werden", err)
	}
	return flashSuccess(c, "Option gelöscht.", roundEditPath(round.ID))
}

// HandleConditionSave sets the price of an option for one subscription type
func (ac *AdminRoundController) HandleConditionSave(c *fiber.Ctx) error {
	_, option, err := ac.loadOption(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, "Option konnte nicht geladen werden", err)
	}
	back := optionEditPath(option.ID)

	typeID := parseUintPtr(c.FormValue("subscription_type"))
	price, perr := parseAmount(c.FormValue("price"))
	if typeID == nil || perr != nil || price == nil || price.IsNegative() || price.GreaterThan(models.MaxMoney) {
		return flashError(c, "Bitte wähle einen Abotyp und gib einen gültigen Preis ein.", back)
	}

	condition := &models.ContributionCondition{OptionID: option.ID, SubscriptionTypeID: *typeID, Price: *price}
	if err := ac.repos.Option.SaveCondition(condition); err != nil {
		return internalError(c, "Preis konnte nicht gespeichert werden", err)
	}
	return flashSuccess(c, "Preis gespeichert.", back)
}

func (ac *AdminRoundController) HandleConditionDelete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return notFound(c)
	}
	condition, err := ac.repos.Option.GetConditionByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, "Preis konnte nicht geladen werden", err)
	}
	if err := ac.repos.Option.DeleteCondition(condition.ID); err != nil {
		return internalError(c, "Preis konnte nicht gelöscht werden", err)
	}
	return flashSuccess(c, "Preis gelöscht.", optionEditPath(condition.OptionID))
}
