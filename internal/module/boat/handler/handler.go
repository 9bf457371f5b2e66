package handler

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"seaboo-server/config"
	"seaboo-server/internal/module/boat/models/request"
	"seaboo-server/internal/module/boat/usecases"
	"seaboo-server/internal/pkg/errors"
	"seaboo-server/internal/pkg/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type BoatHandler struct {
	Log       *otelzap.Logger
	Validator *validator.Validate
	Usecase   usecases.Usecase
	CfgUpload *config.UploadConfig
}

func (h *BoatHandler) ListBoats(ctx *fiber.Ctx) error {
	resp, err := h.Usecase.ListBoats(ctx.UserContext())
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error list boats: %v", err))
		return helpers.RespError(ctx, h.Log, errors.InternalServerError("Errore nel recupero delle barche"))
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"boats": resp})
}

func (h *BoatHandler) ListOwnerBoats(ctx *fiber.Ctx) error {
	ownerID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ListOwnerBoats(ctx.UserContext(), ownerID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error list owner boats: %v", err))
		return helpers.RespError(ctx, h.Log, errors.InternalServerError("Errore nel recupero delle barche"))
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"boats": resp})
}

func (h *BoatHandler) CreateBoat(ctx *fiber.Ctx) error {
	var req request.CreateBoat
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	ownerID := ctx.Locals("user_id").(int64)

	imagePaths, err := h.saveImages(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := h.Usecase.CreateBoat(ctx.UserContext(), &req, ownerID, imagePaths)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create boat: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "boat": resp})
}

func (h *BoatHandler) UpdateBoat(ctx *fiber.Ctx) error {
	boatID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse boat id"))
	}

	var req request.UpdateBoat
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	ownerID := ctx.Locals("user_id").(int64)

	imagePaths, err := h.saveImages(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := h.Usecase.UpdateBoat(ctx.UserContext(), boatID, &req, ownerID, imagePaths)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error update boat: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "boat": resp})
}

func (h *BoatHandler) DeleteBoat(ctx *fiber.Ctx) error {
	boatID, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse boat id"))
	}

	ownerID := ctx.Locals("user_id").(int64)

	if err := h.Usecase.DeleteBoat(ctx.UserContext(), boatID, ownerID); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error delete boat: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// saveImages stores the uploaded image files and returns their public paths.
// Requests without a multipart form are fine; boats can be created without
// images.
func (h *BoatHandler) saveImages(ctx *fiber.Ctx) ([]string, error) {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) > h.CfgUpload.MaxImages {
		return nil, errors.BadRequest(fmt.Sprintf("massimo %d immagini", h.CfgUpload.MaxImages))
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		if err := h.validateImage(file); err != nil {
			return nil, err
		}
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := ctx.SaveFile(file, filepath.Join(h.CfgUpload.Dir, name)); err != nil {
			h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error save image: %v", err))
			return nil, errors.InternalServerError("error save image")
		}
		paths = append(paths, "/uploads/"+name)
	}
	return paths, nil
}

func (h *BoatHandler) validateImage(file *multipart.FileHeader) error {
	if file.Size > h.CfgUpload.MaxFileSize {
		return errors.BadRequest("Immagine troppo grande")
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return errors.BadRequest("Solo immagini sono permesse")
	}
	return nil
}
