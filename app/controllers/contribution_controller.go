package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/contribution"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/usercontext"
)

const selectionOther = "other"

// ContributionController serves the member pages of the active round
type ContributionController struct {
	svc *contribution.Service
}

func NewContributionController(svc *contribution.Service) *ContributionController {
	return &ContributionController{svc: svc}
}

// selectionForm holds the submitted values for re-rendering
type selectionForm struct {
	Selection   string
	OtherAmount string
	ContactMe   bool
}

func (cc *ContributionController) HandleSelect(c *fiber.Ctx) error {
	ctx := c.UserContext()
	memberID := usercontext.GetMemberID(c)

	sub, err := cc.svc.SubscriptionOf(ctx, memberID)
	if err != nil {
		return internalError(c, "Abo konnte nicht geladen werden", err)
	}
	if sub == nil {
		return flashError(c, "Du hast kein Abo, für das du einen Beitrag wählen kannst.", "/")
	}

	view, err := cc.svc.SelectionForm(ctx, sub)
	if errors.Is(err, contribution.ErrNoActiveRound) {
		return render(c, "contribution/no_round", "Beitragsrunde", nil)
	}
	if err != nil {
		return internalError(c, "Beitragsrunde konnte nicht geladen werden", err)
	}

	form := selectionForm{}
	if view.Prior != nil {
		form.ContactMe = view.Prior.ContactMe
		if view.Prior.SelectedOptionID != nil {
			form.Selection = strconv.FormatUint(uint64(*view.Prior.SelectedOptionID), 10)
		}
	}

	if c.Method() != fiber.MethodPost {
		return cc.renderSelect(c, view, form, nil)
	}

	form = selectionForm{
		Selection:   strings.TrimSpace(c.FormValue("selection")),
		OtherAmount: strings.TrimSpace(c.FormValue("other_amount")),
		ContactMe:   isChecked(c.FormValue("contact_me")),
	}
	in := contribution.SubmitInput{
		Round:        view.Round,
		Subscription: sub,
		ContactMe:    form.ContactMe,
	}
	switch form.Selection {
	case "":
	case selectionOther:
		in.Other = true
		amount, perr := parseAmount(form.OtherAmount)
		if perr != nil {
			return cc.renderSelect(c, view, form, map[string]string{
				contribution.FieldOtherAmount: "Ungültiger Betrag",
			})
		}
		in.FreeAmount = amount
	default:
		in.OptionID = parseUintPtr(form.Selection)
		if in.OptionID == nil {
			in.OptionID = new(uint)
		}
	}

	_, err = cc.svc.Submit(ctx, in)
	var verr *contribution.ValidationError
	switch {
	case err == nil:
		return flashSuccess(c, "Deine Auswahl wurde gespeichert. Vielen Dank!", "/contribution/view")
	case errors.As(err, &verr):
		return cc.renderSelect(c, view, form, verr.Map())
	case errors.Is(err, contribution.ErrNotSubject):
		return flashError(c, "Dein Abo nimmt an dieser Beitragsrunde nicht teil.", "/")
	case errors.Is(err, contribution.ErrRoundNotActive):
		return flashError(c, "Die Beitragsrunde ist nicht mehr aktiv.", "/contribution/select")
	default:
		return internalError(c, "Auswahl konnte nicht gespeichert werden", err)
	}
}

func (cc *ContributionController) renderSelect(c *fiber.Ctx, view *contribution.SelectionView, form selectionForm, errs map[string]string) error {
	if errs == nil {
		errs = map[string]string{}
	}
	return render(c, "contribution/select", "Beitragsrunde", fiber.Map{
		"View":   view,
		"Form":   form,
		"Errors": errs,
	})
}

func (cc *ContributionController) HandleView(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sub, err := cc.svc.SubscriptionOf(ctx, usercontext.GetMemberID(c))
	if err != nil {
		return internalError(c, "Abo konnte nicht geladen werden", err)
	}
	if sub == nil {
		return flashError(c, "Du hast kein Abo, für das du einen Beitrag wählen kannst.", "/")
	}

	selections, err := cc.svc.SelectionsOf(ctx, sub.ID)
	if err != nil {
		return internalError(c, "Auswahl konnte nicht geladen werden", err)
	}
	if len(selections) == 0 {
		return c.Redirect("/contribution/select", fiber.StatusSeeOther)
	}

	_, activeErr := cc.svc.ActiveRound(ctx)
	return render(c, "contribution/view", "Meine Beiträge", fiber.Map{
		"Selections":   selections,
		"Subscription": sub,
		"Currency":     cc.svc.Config().Currency,
		"HasActive":    activeErr == nil,
	})
}
