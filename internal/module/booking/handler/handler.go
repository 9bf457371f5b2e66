package handler

import (
	"context"
	"fmt"
	"strconv"

	"seaboo-server/internal/module/booking/models/request"
	"seaboo-server/internal/module/booking/usecases"
	"seaboo-server/internal/pkg/errors"
	"seaboo-server/internal/pkg/helpers"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type BookingHandler struct {
	Log                 *otelzap.Logger
	Validator           *validator.Validate
	Usecase             usecases.Usecase
	StripeWebhookSecret string
}

// VerifyPurchase accepts an App Store receipt. It runs behind OptionalAuth:
// a receipt-only validation needs no session, confirming a booking does.
func (h *BookingHandler) VerifyPurchase(ctx *fiber.Ctx) error {
	var req request.VerifyPurchase
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	userID, _ := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.VerifyPurchase(ctx.UserContext(), &req, userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error verify purchase: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func (h *BookingHandler) BookBoat(ctx *fiber.Ctx) error {
	var req request.CreateBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	userID := ctx.Locals("user_id").(int64)
	emailUser, _ := ctx.Locals("email_user").(string)

	resp, err := h.Usecase.BookBoat(ctx.UserContext(), &req, userID, emailUser)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error book boat: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "booking": resp})
}

func (h *BookingHandler) ShowBookings(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ShowBookings(ctx.UserContext(), userID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"bookings": resp})
}

func (h *BookingHandler) OwnerBookings(ctx *fiber.Ctx) error {
	ownerID := ctx.Locals("user_id").(int64)

	resp, err := h.Usecase.ShowOwnerBookings(ctx.UserContext(), ownerID)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show owner bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"bookings": resp})
}

func (h *BookingHandler) CreatePaymentIntent(ctx *fiber.Ctx) error {
	var req request.CreatePaymentIntent
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("Invalid amount"))
	}

	resp, err := h.Usecase.CreatePaymentIntent(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create payment intent: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// StripeWebhook verifies the event signature against the raw body before
// trusting anything in it.
func (h *BookingHandler) StripeWebhook(ctx *fiber.Ctx) error {
	event, err := webhook.ConstructEvent(ctx.Body(), ctx.Get("Stripe-Signature"), h.StripeWebhookSecret)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("webhook signature verification failed: %v", err))
		return ctx.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("Webhook Error: %v", err))
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error unmarshal payment intent: %v", err))
			return ctx.Status(fiber.StatusBadRequest).SendString("Webhook Error: bad payload")
		}

		bookingID, err := strconv.ParseInt(intent.Metadata["bookingId"], 10, 64)
		if err != nil || bookingID == 0 {
			h.Log.Ctx(ctx.UserContext()).Warn(fmt.Sprintf("payment intent %s without booking metadata", intent.ID))
			break
		}

		if err := h.Usecase.ConfirmStripePayment(ctx.UserContext(), bookingID, intent.ID); err != nil {
			h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error confirm stripe payment: %v", err))
			return helpers.RespError(ctx, h.Log, err)
		}
	default:
		h.Log.Ctx(ctx.UserContext()).Info(fmt.Sprintf("unhandled stripe event type %s", event.Type))
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
}

func (h *BookingHandler) ConsumeBookingQueue(msg *message.Message) error {
	msg.Ack()

	var req request.BookingCreated
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error validate message: %v", err))
		return err
	}

	ctx := context.Background()
	if err := h.Usecase.ConsumeBookingCreatedQueue(ctx, &req); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error consume booking created queue: %v", err))
		return err
	}

	return nil
}

func (h *BookingHandler) SetBookingExpired(ctx context.Context, t *asynq.Task) error {
	var req request.BookingExpiration
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return err
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return err
	}

	if err := h.Usecase.ExpireBooking(ctx, &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error set booking expired: %v", err))
		return err
	}

	return nil
}
