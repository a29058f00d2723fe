package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/session"
	"github.com/ManuelReschke/juntagrico-contribution/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the user context for every request
func UserContextMiddleware(c *fiber.Ctx) error {
	store := session.GetSessionStore()
	if store == nil {
		usercontext.Set(c, usercontext.UserContext{})
		return c.Next()
	}

	sess, err := store.Get(c)
	if err != nil {
		usercontext.Set(c, usercontext.UserContext{})
		return c.Next()
	}

	memberID, ok := sess.Get(session.KeyMemberID).(uint)
	if !ok || memberID == 0 {
		usercontext.Set(c, usercontext.UserContext{})
		return c.Next()
	}

	name, _ := sess.Get(session.KeyName).(string)
	isAdmin, _ := sess.Get(session.KeyIsAdmin).(bool)
	usercontext.Set(c, usercontext.UserContext{
		MemberID:   memberID,
		Name:       name,
		IsLoggedIn: true,
		IsAdmin:    isAdmin,
	})
	return c.Next()
}
