package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	SessionCookie = "dashboard_session"
	SessionHeader = "X-Session-Id"
	SessionLocal  = "session_id"
)

// SessionMiddleware resolves the dashboard session id from the cookie, the
// X-Session-Id header or the session_id query parameter (websocket clients).
// Requests without a valid id get a fresh one and the cookie is set.
func SessionMiddleware(ttl time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Cookies(SessionCookie)
		if id == "" {
			id = ctx.Get(SessionHeader)
		}
		if id == "" {
			id = ctx.Query(SessionLocal)
		}

		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		} else {
			// the id outlives the request; fasthttp reuses the header buffer
			id = utils.CopyString(id)
		}

		ctx.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(ttl),
		})
		ctx.Set(SessionHeader, id)
		ctx.Locals(SessionLocal, id)
		return ctx.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(SessionLocal).(string)
	return id
}
