package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/usercontext"
)

// HandleStart renders the landing page. Logged in members with a running
// round are sent straight to their selection.
func HandleStart(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return render(c, "home", "Start", nil)
	}

	svc := GetContributionService()
	sub, err := svc.SubscriptionOf(c.UserContext(), uc.MemberID)
	if err != nil {
		return internalError(c, "Abo konnte nicht geladen werden", err)
	}
	data := fiber.Map{"HasSubscription": sub != nil}
	if sub != nil {
		round, err := svc.ActiveRound(c.UserContext())
		if err == nil {
			data["Round"] = round
			prior, err := svc.Ledger.Prior(round, sub)
			if err != nil {
				return internalError(c, "Auswahl konnte nicht geladen werden", err)
			}
			data["Prior"] = prior
		}
	}
	return render(c, "home", "Start", data)
}
