package middleware

import (
	"fmt"
	"strings"
	"time"

	"seaboo-server/internal/module/user/repositories"
	"seaboo-server/internal/pkg/errors"
	"seaboo-server/internal/pkg/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Middleware struct {
	Log        *otelzap.Logger
	Repo       repositories.Repositories
	CookieName string
}

// SessionToken extracts the session token from the cookie, falling back to a
// bearer Authorization header for the mobile clients.
func SessionToken(ctx *fiber.Ctx, cookieName string) string {
	if token := ctx.Cookies(cookieName); token != "" {
		return token
	}
	auth := ctx.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func (m *Middleware) RequireAuth(ctx *fiber.Ctx) error {
	if err := m.resolveSession(ctx); err != nil {
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("Non autenticato"))
	}
	return ctx.Next()
}

// OptionalAuth loads the session when a token is present but lets the request
// through either way. Handlers that require identity for a subset of their
// behavior check Locals themselves.
func (m *Middleware) OptionalAuth(ctx *fiber.Ctx) error {
	if token := SessionToken(ctx, m.CookieName); token != "" {
		if err := m.resolveSession(ctx); err != nil {
			m.Log.Ctx(ctx.UserContext()).Warn(fmt.Sprintf("stale session token ignored: %v", err))
		}
	}
	return ctx.Next()
}

func (m *Middleware) RequireOwner(ctx *fiber.Ctx) error {
	role, _ := ctx.Locals("role").(string)
	if role != "owner" {
		return helpers.RespError(ctx, m.Log, errors.ForbiddenError("Accesso negato: solo per noleggiatori"))
	}
	return ctx.Next()
}

func (m *Middleware) resolveSession(ctx *fiber.Ctx) error {
	token := SessionToken(ctx, m.CookieName)
	if token == "" {
		return errors.UnauthorizedError("Non autenticato")
	}

	session, err := m.Repo.FindSessionByToken(ctx.UserContext(), token)
	if err != nil {
		return err
	}
	if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(time.Now()) {
		return errors.UnauthorizedError("Non autenticato")
	}

	ctx.Locals("user_id", session.UserID)
	ctx.Locals("email_user", session.Email)
	ctx.Locals("role", session.Role)

	return nil
}
