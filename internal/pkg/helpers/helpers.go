package helpers

import (
	goerrors "errors"
	"fmt"

	"seaboo-server/internal/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// Response is the error envelope. Success payloads keep the wire shapes the
// mobile clients already parse, so handlers emit those directly.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	var appErr *errors.AppError
	if goerrors.As(err, &appErr) {
		return ctx.Status(appErr.Code).JSON(Response{
			Success: false,
			Error:   appErr.Message,
		})
	}

	log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("unhandled error: %v", err))
	return ctx.Status(fiber.StatusInternalServerError).JSON(Response{
		Success: false,
		Error:   "Errore interno del server",
	})
}
