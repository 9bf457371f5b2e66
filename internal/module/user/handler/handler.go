package handler

import (
	"fmt"
	"time"

	"seaboo-server/config"
	"seaboo-server/internal/module/user/models/request"
	"seaboo-server/internal/module/user/usecases"
	"seaboo-server/internal/pkg/errors"
	"seaboo-server/internal/pkg/helpers"
	"seaboo-server/internal/pkg/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type UserHandler struct {
	Log        *otelzap.Logger
	Validator  *validator.Validate
	Usecase    usecases.Usecase
	CfgSession *config.SessionConfig
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var req request.Register
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.Register(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error register: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	h.setSessionCookie(ctx, resp.Token)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"user":       resp.User,
		"redirectTo": resp.RedirectTo,
	})
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var req request.Login
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.Login(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error login: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	h.setSessionCookie(ctx, resp.Token)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    resp.User,
	})
}

func (h *UserHandler) Logout(ctx *fiber.Ctx) error {
	token := middleware.SessionToken(ctx, h.CfgSession.CookieName)
	if token != "" {
		if err := h.Usecase.Logout(ctx.UserContext(), token); err != nil {
			h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error logout: %v", err))
			return helpers.RespError(ctx, h.Log, errors.InternalServerError("Errore durante il logout"))
		}
	}

	ctx.ClearCookie(h.CfgSession.CookieName)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// CurrentUser reports the session identity. Unlike Profile it never touches
// the database.
func (h *UserHandler) CurrentUser(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("user_id").(int64)
	if !ok || userID == 0 {
		return helpers.RespError(ctx, h.Log, errors.UnauthorizedError("Non autenticato"))
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":    userID,
			"email": ctx.Locals("email_user"),
			"role":  ctx.Locals("role"),
		},
	})
}

func (h *UserHandler) Profile(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.Profile(ctx.UserContext(), userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error get profile: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"user": resp})
}

func (h *UserHandler) AppleSignIn(ctx *fiber.Ctx) error {
	var req request.AppleSignIn
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if req.IdentityToken == "" {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("Token Apple mancante"))
	}

	resp, err := h.Usecase.AppleSignIn(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error apple sign in: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	h.setSessionCookie(ctx, resp.Token)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    resp.User,
	})
}

func (h *UserHandler) CreateDemoAccount(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.CreateDemoAccount(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create demo account: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"message":     resp.Message,
		"credentials": resp.Credentials,
	})
}

func (h *UserHandler) setSessionCookie(ctx *fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     h.CfgSession.CookieName,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(h.CfgSession.TTLHours) * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
