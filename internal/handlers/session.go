package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-checker/internal/workspace"
)

const workspaceLocalsKey = "workspace"

// SessionMiddleware attaches the caller's workspace, creating one and
// setting the cookie when the request carries no known session. It guards
// routes that change state.
func SessionMiddleware(registry *workspace.Registry, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws, created, err := registry.GetOrCreate(c.Cookies(cookieName))
		if err != nil {
			if errors.Is(err, workspace.ErrRegistryFull) {
				return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
			}
			return err
		}
		if created {
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    ws.ID(),
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}
		c.Locals(workspaceLocalsKey, ws)
		return c.Next()
	}
}

// ReadSessionMiddleware attaches the caller's workspace for read-only
// routes. Without a known session it attaches a blank workspace that is
// never registered, so a plain page view allocates nothing.
func ReadSessionMiddleware(registry *workspace.Registry, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws, ok := registry.Get(c.Cookies(cookieName))
		if !ok {
			ws = workspace.New("")
		}
		c.Locals(workspaceLocalsKey, ws)
		return c.Next()
	}
}

func workspaceFrom(c *fiber.Ctx) *workspace.Workspace {
	ws, _ := c.Locals(workspaceLocalsKey).(*workspace.Workspace)
	return ws
}

// hasSession reports whether the attached workspace belongs to a real session.
func hasSession(c *fiber.Ctx) bool {
	ws := workspaceFrom(c)
	return ws != nil && ws.ID() != ""
}
