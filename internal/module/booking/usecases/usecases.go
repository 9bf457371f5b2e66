package usecases

import (
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"seaboo-server/config"
	"seaboo-server/internal/module/booking/models/entity"
	"seaboo-server/internal/module/booking/models/request"
	"seaboo-server/internal/module/booking/models/response"
	"seaboo-server/internal/module/booking/repositories"
	"seaboo-server/internal/pkg/errors"
	"seaboo-server/internal/pkg/scheduler"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type usecase struct {
	repo       repositories.Repositories
	log        *otelzap.Logger
	publish    message.Publisher
	taskClient *asynq.Client
	cfgBooking *config.BookingConfig
}

type Usecase interface {
	// http
	VerifyPurchase(ctx context.Context, payload *request.VerifyPurchase, userID int64) (response.VerifyPurchase, error)
	BookBoat(ctx context.Context, payload *request.CreateBooking, userID int64, emailUser string) (response.Booking, error)
	ShowBookings(ctx context.Context, userID int64) ([]response.Booking, error)
	ShowOwnerBookings(ctx context.Context, ownerID int64) ([]response.Booking, error)
	CreatePaymentIntent(ctx context.Context, payload *request.CreatePaymentIntent) (response.PaymentIntent, error)
	// webhook
	ConfirmStripePayment(ctx context.Context, bookingID int64, paymentIntentID string) error
	// scheduler
	ExpireBooking(ctx context.Context, payload *request.BookingExpiration) error
	// queue
	ConsumeBookingCreatedQueue(ctx context.Context, payload *request.BookingCreated) error
}

func New(repo repositories.Repositories, log *otelzap.Logger, publish message.Publisher, taskClient *asynq.Client, cfgBooking *config.BookingConfig) Usecase {
	return &usecase{
		repo:       repo,
		log:        log,
		publish:    publish,
		taskClient: taskClient,
		cfgBooking: cfgBooking,
	}
}

// VerifyPurchase validates an App Store receipt and, when a booking id is
// supplied, confirms that booking exactly once per durable transaction id.
// The durable id is the original_transaction_id of the matched purchase, so
// renewals and restores of the same purchase cannot confirm a second booking.
func (u *usecase) VerifyPurchase(ctx context.Context, payload *request.VerifyPurchase, userID int64) (response.VerifyPurchase, error) {
	if payload.ReceiptData == "" {
		return response.VerifyPurchase{}, errors.BadRequest("Receipt mancante")
	}
	if payload.ProductID == "" || payload.TransactionID == "" {
		return response.VerifyPurchase{}, errors.BadRequest("productId e transactionId sono obbligatori")
	}

	result, err := u.repo.VerifyReceipt(ctx, payload.ReceiptData, false)
	if err != nil {
		return response.VerifyPurchase{}, err
	}

	// A sandbox receipt submitted to production is the one retriable status;
	// the retry happens once, against the sandbox endpoint.
	if entity.AppleStatus(result.Status) == entity.AppleStatusSandboxOnProduction {
		result, err = u.repo.VerifyReceipt(ctx, payload.ReceiptData, true)
		if err != nil {
			return response.VerifyPurchase{}, err
		}
	}

	if status := entity.AppleStatus(result.Status); status != entity.AppleStatusValid {
		return response.VerifyPurchase{}, errors.BadRequest(status.Message())
	}

	purchase := matchPurchase(result.Receipt.InApp, payload.TransactionID, payload.ProductID)
	if purchase == nil {
		return response.VerifyPurchase{}, errors.BadRequest("Transaction non corrispondente nel receipt")
	}

	if payload.BookingID == "" {
		// Receipt-only validation, e.g. a pre-purchase product lookup.
		return buildVerifyResponse(result, purchase, purchase.TransactionID), nil
	}

	if userID == 0 {
		return response.VerifyPurchase{}, errors.UnauthorizedError("Non autenticato")
	}

	bookingID, err := strconv.ParseInt(payload.BookingID, 10, 64)
	if err != nil {
		return response.VerifyPurchase{}, errors.BadRequest("bookingId non valido")
	}

	durableID := purchase.OriginalTransactionID
	if durableID == "" {
		durableID = purchase.TransactionID
	}

	// Global idempotency pre-check: the transaction must not already be
	// attached to any booking, regardless of owner. This gives a clean
	// conflict in the common replay case; the uniqueness constraint at
	// commit time covers the race the pre-check cannot.
	existing, err := u.repo.FindBookingByTransactionID(ctx, durableID)
	if err != nil {
		return response.VerifyPurchase{}, err
	}
	if existing.ID != 0 {
		u.log.Ctx(ctx).Warn("receipt replay attempt blocked",
			zap.String("transaction_id", durableID),
			zap.Int64("prior_booking_id", existing.ID),
		)
		return response.VerifyPurchase{}, errors.ErrDuplicateTransaction
	}

	// Ownership: the booking must belong to the caller. Scanning the
	// caller's own bookings leaks nothing about anyone else's.
	bookings, err := u.repo.FindBookingsByUserID(ctx, userID)
	if err != nil {
		return response.VerifyPurchase{}, err
	}
	var booking *entity.Booking
	for i := range bookings {
		if bookings[i].ID == bookingID {
			booking = &bookings[i]
			break
		}
	}
	if booking == nil {
		return response.VerifyPurchase{}, errors.NotFound("Booking non trovato o non autorizzato")
	}

	if booking.Status == entity.StatusConfirmed {
		return response.VerifyPurchase{}, errors.ErrBookingAlreadyConfirmed
	}

	if err := u.repo.ConfirmBooking(ctx, bookingID, durableID, entity.ProviderApple); err != nil {
		if goerrors.Is(err, errors.ErrDuplicateTransaction) || goerrors.Is(err, errors.ErrBookingAlreadyConfirmed) {
			u.log.Ctx(ctx).Warn("concurrent confirmation blocked by constraint",
				zap.String("transaction_id", durableID),
				zap.Int64("booking_id", bookingID),
			)
			return response.VerifyPurchase{}, err
		}
		u.log.Ctx(ctx).Error(fmt.Sprintf("error confirm booking %d: %v", bookingID, err))
		return response.VerifyPurchase{}, errors.InternalServerError("Errore durante l'aggiornamento booking")
	}

	u.log.Ctx(ctx).Info("booking confirmed via IAP",
		zap.Int64("booking_id", bookingID),
		zap.Int64("user_id", userID),
		zap.String("transaction_id", payload.TransactionID),
		zap.String("original_transaction_id", durableID),
		zap.String("product_id", payload.ProductID),
		zap.String("environment", result.Environment),
	)

	return buildVerifyResponse(result, purchase, durableID), nil
}

func (u *usecase) BookBoat(ctx context.Context, payload *request.CreateBooking, userID int64, emailUser string) (response.Booking, error) {
	startDate, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return response.Booking{}, errors.BadRequest("error parse start date")
	}
	endDate, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		return response.Booking{}, errors.BadRequest("error parse end date")
	}
	if !endDate.After(startDate) {
		return response.Booking{}, errors.BadRequest("La data di fine deve essere successiva alla data di inizio")
	}

	boat, err := u.repo.FindBoatForBooking(ctx, payload.BoatID)
	if err != nil {
		return response.Booking{}, err
	}
	if boat.ID == 0 || !boat.IsAvailable {
		return response.Booking{}, errors.NotFound("Barca non trovata")
	}
	if boat.OwnerID == userID {
		return response.Booking{}, errors.BadRequest("Non puoi prenotare la tua barca")
	}

	// The lock serializes the overlap check and the insert across instances.
	unlock, err := u.repo.LockBoat(ctx, payload.BoatID)
	if err != nil {
		return response.Booking{}, err
	}
	defer unlock()

	overlapping, err := u.repo.CountOverlappingBookings(ctx, payload.BoatID, startDate, endDate)
	if err != nil {
		return response.Booking{}, err
	}
	if overlapping > 0 {
		return response.Booking{}, errors.Conflict("Barca non disponibile per le date selezionate")
	}

	days := int(math.Ceil(endDate.Sub(startDate).Hours() / 24))
	booking := entity.Booking{
		UserID:          userID,
		BoatID:          payload.BoatID,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalPrice:      boat.PricePerDay * float64(days),
		GuestCount:      payload.GuestCount,
		SpecialRequests: sql.NullString{String: payload.SpecialRequests, Valid: payload.SpecialRequests != ""},
		Status:          entity.StatusPending,
	}

	booking, err = u.repo.InsertBooking(ctx, booking)
	if err != nil {
		return response.Booking{}, err
	}

	u.scheduleExpiration(ctx, booking.ID)
	u.publishBookingCreated(ctx, booking, emailUser)

	return toBookingResponse(booking), nil
}

func (u *usecase) ShowBookings(ctx context.Context, userID int64) ([]response.Booking, error) {
	bookings, err := u.repo.FindBookingsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func (u *usecase) ShowOwnerBookings(ctx context.Context, ownerID int64) ([]response.Booking, error) {
	bookings, err := u.repo.FindBookingsByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func (u *usecase) CreatePaymentIntent(ctx context.Context, payload *request.CreatePaymentIntent) (response.PaymentIntent, error) {
	currency := payload.Currency
	if currency == "" {
		currency = "eur"
	}

	amountCents := int64(math.Round(payload.Amount * 100))
	clientSecret, err := u.repo.CreatePaymentIntent(ctx, amountCents, currency, payload.BookingID)
	if err != nil {
		return response.PaymentIntent{}, err
	}
	return response.PaymentIntent{ClientSecret: clientSecret}, nil
}

// ConfirmStripePayment runs the same conditional commit as the Apple flow,
// keyed on the payment intent id. Stripe retries webhooks, so a duplicate or
// an already-confirmed booking is an expected outcome, not a failure; the
// commit never overwrites a row another provider already paid.
func (u *usecase) ConfirmStripePayment(ctx context.Context, bookingID int64, paymentIntentID string) error {
	err := u.repo.ConfirmBooking(ctx, bookingID, paymentIntentID, entity.ProviderStripe)
	if goerrors.Is(err, errors.ErrDuplicateTransaction) || goerrors.Is(err, errors.ErrBookingAlreadyConfirmed) {
		u.log.Ctx(ctx).Warn("stripe webhook replay ignored",
			zap.Int64("booking_id", bookingID),
			zap.String("payment_intent_id", paymentIntentID),
		)
		return nil
	}
	if err != nil {
		return err
	}

	u.log.Ctx(ctx).Info("booking confirmed via stripe",
		zap.Int64("booking_id", bookingID),
		zap.String("payment_intent_id", paymentIntentID),
	)
	return nil
}

func (u *usecase) ExpireBooking(ctx context.Context, payload *request.BookingExpiration) error {
	cancelled, err := u.repo.CancelIfPending(ctx, payload.BookingID)
	if err != nil {
		return err
	}
	if cancelled {
		u.log.Ctx(ctx).Info("pending booking expired", zap.Int64("booking_id", payload.BookingID))
	}
	return nil
}

func (u *usecase) ConsumeBookingCreatedQueue(ctx context.Context, payload *request.BookingCreated) error {
	if payload.EmailRecipient == "" {
		return nil
	}

	notification := request.NotificationMessage{
		Message:        fmt.Sprintf("Prenotazione %d creata, completa il pagamento per confermarla", payload.BookingID),
		EmailRecipient: payload.EmailRecipient,
	}
	jsonPayload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	return u.publish.Publish("notification", message.NewMessage(watermill.NewUUID(), jsonPayload))
}

func (u *usecase) scheduleExpiration(ctx context.Context, bookingID int64) {
	payload, err := json.Marshal(request.BookingExpiration{BookingID: bookingID})
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error marshal expiration task: %v", err))
		return
	}

	window := time.Duration(u.cfgBooking.PaymentWindowMinutes) * time.Minute
	task := asynq.NewTask(scheduler.TypeBookingExpired, payload)
	if _, err := u.taskClient.EnqueueContext(ctx, task, asynq.ProcessIn(window)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error enqueue expiration task for booking %d: %v", bookingID, err))
	}
}

func (u *usecase) publishBookingCreated(ctx context.Context, booking entity.Booking, emailUser string) {
	event := request.BookingCreated{
		BookingID:      booking.ID,
		BoatID:         booking.BoatID,
		UserID:         booking.UserID,
		TotalPrice:     booking.TotalPrice,
		EmailRecipient: emailUser,
	}
	jsonPayload, err := json.Marshal(event)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error marshal booking created event: %v", err))
		return
	}

	if err := u.publish.Publish("booking_created", message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error publish booking created event: %v", err))
	}
}

func matchPurchase(purchases []response.ApplePurchase, transactionID, productID string) *response.ApplePurchase {
	for i := range purchases {
		if purchases[i].TransactionID == transactionID && purchases[i].ProductID == productID {
			return &purchases[i]
		}
	}
	return nil
}

func buildVerifyResponse(result response.AppleVerify, purchase *response.ApplePurchase, transactionID string) response.VerifyPurchase {
	environment := result.Environment
	if environment == "" {
		environment = "Production"
	}
	return response.VerifyPurchase{
		Success:     true,
		Environment: environment,
		Receipt: &response.ReceiptSummary{
			BundleID:             result.Receipt.BundleID,
			ApplicationVersion:   result.Receipt.ApplicationVersion,
			OriginalPurchaseDate: result.Receipt.OriginalPurchaseDate,
		},
		Purchase:      purchase,
		TransactionID: transactionID,
	}
}

func toBookingResponses(bookings []entity.Booking) []response.Booking {
	resp := make([]response.Booking, 0, len(bookings))
	for _, booking := range bookings {
		resp = append(resp, toBookingResponse(booking))
	}
	return resp
}

func toBookingResponse(booking entity.Booking) response.Booking {
	return response.Booking{
		ID:              booking.ID,
		BoatID:          booking.BoatID,
		StartDate:       booking.StartDate.Format("2006-01-02"),
		EndDate:         booking.EndDate.Format("2006-01-02"),
		TotalPrice:      booking.TotalPrice,
		GuestCount:      booking.GuestCount,
		SpecialRequests: booking.SpecialRequests.String,
		Status:          booking.Status,
		PaymentProvider: booking.PaymentProvider.String,
	}
}
