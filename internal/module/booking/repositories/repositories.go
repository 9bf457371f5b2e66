package repositories

import (
	"bytes"
	"context"
	"database/sql"
	goerrors "errors"
	"fmt"
	"time"

	"seaboo-server/config"
	"seaboo-server/internal/module/booking/models/entity"
	"seaboo-server/internal/module/booking/models/response"
	"seaboo-server/internal/pkg/errors"

	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const boatLockExpiry = 8 * time.Second

type repositories struct {
	db           *sqlx.DB
	log          *otelzap.Logger
	httpClient   *circuit.HTTPClient
	redsync      *redsync.Redsync
	stripeClient *stripeclient.API
	cfgApple     *config.AppleConfig
}

type Repositories interface {
	// http
	VerifyReceipt(ctx context.Context, receiptData string, sandbox bool) (response.AppleVerify, error)
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, bookingID int64) (string, error)
	// redis
	LockBoat(ctx context.Context, boatID int64) (func(), error)
	// db
	FindBookingByTransactionID(ctx context.Context, transactionID string) (entity.Booking, error)
	FindBookingsByUserID(ctx context.Context, userID int64) ([]entity.Booking, error)
	FindBookingsByOwnerID(ctx context.Context, ownerID int64) ([]entity.Booking, error)
	FindBoatForBooking(ctx context.Context, boatID int64) (entity.BoatSummary, error)
	CountOverlappingBookings(ctx context.Context, boatID int64, startDate, endDate time.Time) (int64, error)
	InsertBooking(ctx context.Context, booking entity.Booking) (entity.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID int64, transactionID, provider string) error
	CancelIfPending(ctx context.Context, bookingID int64) (bool, error)
}

func New(db *sqlx.DB, log *otelzap.Logger, httpClient *circuit.HTTPClient, rs *redsync.Redsync, stripeClient *stripeclient.API, cfgApple *config.AppleConfig) Repositories {
	return &repositories{
		db:           db,
		log:          log,
		httpClient:   httpClient,
		redsync:      rs,
		stripeClient: stripeClient,
		cfgApple:     cfgApple,
	}
}

// VerifyReceipt implements Repositories. It performs a single call against
// one environment; the production-to-sandbox retry decision belongs to the
// usecase.
func (r *repositories) VerifyReceipt(ctx context.Context, receiptData string, sandbox bool) (response.AppleVerify, error) {
	url := r.cfgApple.VerifyURL
	if sandbox {
		url = r.cfgApple.SandboxVerifyURL
	}

	body, err := json.Marshal(map[string]string{
		"receipt-data": receiptData,
		"password":     r.cfgApple.SharedSecret,
	})
	if err != nil {
		return response.AppleVerify{}, errors.InternalServerError("error marshal verify request")
	}

	resp, err := r.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		r.log.Ctx(ctx).Error(fmt.Sprintf("apple verify endpoint unreachable: %v", err))
		return response.AppleVerify{}, errors.InternalServerError("Errore durante la verifica acquisto")
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		r.log.Ctx(ctx).Error(fmt.Sprintf("apple verify endpoint returned status %d", resp.StatusCode))
		return response.AppleVerify{}, errors.InternalServerError("Errore durante la verifica acquisto")
	}

	var result response.AppleVerify
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&result); err != nil {
		return response.AppleVerify{}, errors.InternalServerError("error decode verify response")
	}
	return result, nil
}

// CreatePaymentIntent implements Repositories.
func (r *repositories) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, bookingID int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("platform", "seaboo")
	if bookingID != 0 {
		params.AddMetadata("bookingId", fmt.Sprintf("%d", bookingID))
	}

	intent, err := r.stripeClient.PaymentIntents.New(params)
	if err != nil {
		r.log.Ctx(ctx).Error(fmt.Sprintf("error create payment intent: %v", err))
		return "", errors.InternalServerError("error create payment intent")
	}
	return intent.ClientSecret, nil
}

// LockBoat implements Repositories. The lock only narrows the window of the
// availability check during creation; it is not a correctness guarantee for
// payment confirmation, which relies on the transaction id constraint.
func (r *repositories) LockBoat(ctx context.Context, boatID int64) (func(), error) {
	mutex := r.redsync.NewMutex(fmt.Sprintf("lock:boat:%d", boatID), redsync.WithExpiry(boatLockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.InternalServerError("error lock boat")
	}
	return func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			r.log.Ctx(ctx).Warn(fmt.Sprintf("error unlock boat %d: %v", boatID, err))
		}
	}, nil
}

// FindBookingByTransactionID implements Repositories. A missing booking is
// returned as the zero value.
func (r *repositories) FindBookingByTransactionID(ctx context.Context, transactionID string) (entity.Booking, error) {
	query := `SELECT * FROM bookings WHERE payment_transaction_id = $1`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, transactionID)
	if err == sql.ErrNoRows {
		return entity.Booking{}, nil
	}
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error find booking by transaction id")
	}
	return booking, nil
}

// FindBookingsByUserID implements Repositories.
func (r *repositories) FindBookingsByUserID(ctx context.Context, userID int64) ([]entity.Booking, error) {
	query := `SELECT * FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	bookings := []entity.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, errors.InternalServerError("error find bookings by user id")
	}
	return bookings, nil
}

// FindBookingsByOwnerID implements Repositories.
func (r *repositories) FindBookingsByOwnerID(ctx context.Context, ownerID int64) ([]entity.Booking, error) {
	query := `
		SELECT b.* FROM bookings b
		JOIN boats bt ON bt.id = b.boat_id
		WHERE bt.owner_id = $1
		ORDER BY b.created_at DESC`
	bookings := []entity.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, ownerID); err != nil {
		return nil, errors.InternalServerError("error find bookings by owner id")
	}
	return bookings, nil
}

// FindBoatForBooking implements Repositories.
func (r *repositories) FindBoatForBooking(ctx context.Context, boatID int64) (entity.BoatSummary, error) {
	query := `SELECT id, owner_id, price_per_day, is_available FROM boats WHERE id = $1`
	var boat entity.BoatSummary
	err := r.db.GetContext(ctx, &boat, query, boatID)
	if err == sql.ErrNoRows {
		return entity.BoatSummary{}, nil
	}
	if err != nil {
		return entity.BoatSummary{}, errors.InternalServerError("error find boat for booking")
	}
	return boat, nil
}

// CountOverlappingBookings implements Repositories. Cancelled bookings do not
// block the dates.
func (r *repositories) CountOverlappingBookings(ctx context.Context, boatID int64, startDate, endDate time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE boat_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_date < $3
		  AND end_date > $2`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, boatID, startDate, endDate); err != nil {
		return 0, errors.InternalServerError("error count overlapping bookings")
	}
	return count, nil
}

// InsertBooking implements Repositories.
func (r *repositories) InsertBooking(ctx context.Context, booking entity.Booking) (entity.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, boat_id, start_date, end_date, total_price, guest_count, special_requests, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query,
		booking.UserID, booking.BoatID, booking.StartDate, booking.EndDate,
		booking.TotalPrice, booking.GuestCount, booking.SpecialRequests, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return entity.Booking{}, errors.InternalServerError("error insert booking")
	}
	return booking, nil
}

// ConfirmBooking implements Repositories. The uniqueness constraint on
// payment_transaction_id is the serialization point for concurrent
// confirmations: a violation here surfaces as ErrDuplicateTransaction, the
// same outcome the pre-check produces. The IS NULL guard makes the write
// one-shot per row: a booking that already carries a transaction id is never
// overwritten, whichever provider paid first.
func (r *repositories) ConfirmBooking(ctx context.Context, bookingID int64, transactionID, provider string) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_transaction_id = $3, payment_provider = $4, updated_at = NOW()
		WHERE id = $1 AND payment_transaction_id IS NULL`
	result, err := r.db.ExecContext(ctx, query, bookingID, entity.StatusConfirmed, transactionID, provider)
	if err != nil {
		var pqErr *pq.Error
		if goerrors.As(err, &pqErr) && pqErr.Code == "23505" {
			return errors.ErrDuplicateTransaction
		}
		return errors.InternalServerError("error confirm booking")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.ErrBookingAlreadyConfirmed
	}
	return nil
}

// CancelIfPending implements Repositories. Reports whether a row was
// actually cancelled; a booking already confirmed or cancelled is left alone.
func (r *repositories) CancelIfPending(ctx context.Context, bookingID int64) (bool, error) {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, bookingID, entity.StatusCancelled, entity.StatusPending)
	if err != nil {
		return false, errors.InternalServerError("error cancel booking")
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
