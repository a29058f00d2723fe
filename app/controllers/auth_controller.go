package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ManuelReschke/juntagrico-contribution/app/models"
	"github.com/ManuelReschke/juntagrico-contribution/app/repository"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/logger"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/session"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/usercontext"
)

// AuthController handles login and logout of members
type AuthController struct {
	members repository.MemberRepository
}

func NewAuthController(members repository.MemberRepository) *AuthController {
	return &AuthController{members: members}
}

func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	if usercontext.IsLoggedIn(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	if c.Method() != fiber.MethodPost {
		return render(c, "auth/login", "Anmelden", nil)
	}

	// notice: never tell the user which part of the login failed
	const failed = "Anmeldung fehlgeschlagen. Bitte prüfe E-Mail und Passwort."
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	member, err := ac.members.GetByEmail(email)
	if err != nil || member == nil {
		return flashError(c, failed, "/login")
	}
	if !models.CheckPasswordHash(c.FormValue("password"), member.Password) {
		return flashError(c, failed, "/login")
	}

	if err := session.Login(c, member.ID, member.FullName(), member.IsAdmin()); err != nil {
		logger.FromContext(c.UserContext()).Error("failed to store session", zap.Error(err))
		return flashError(c, "Anmeldung fehlgeschlagen. Bitte versuche es später erneut.", "/login")
	}
	if err := ac.members.UpdateLastLogin(member.ID, time.Now()); err != nil {
		logger.FromContext(c.UserContext()).Warn("failed to update last login", zap.Uint("member_id", member.ID), zap.Error(err))
	}

	return flashSuccess(c, "Willkommen zurück!", "/")
}

func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	if err := session.Logout(c); err != nil {
		return flashError(c, "Abmelden fehlgeschlagen.", "/")
	}
	usercontext.Set(c, usercontext.UserContext{})
	return flashSuccess(c, "Du wurdest abgemeldet.", "/login")
}
