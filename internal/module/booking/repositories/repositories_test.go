package repositories_test

import (
	"context"
	goerrors "errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	log_internal "seaboo-server/internal/pkg/log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"

	"seaboo-server/config"
	"seaboo-server/internal/module/booking/models/entity"
	"seaboo-server/internal/module/booking/repositories"
	"seaboo-server/internal/pkg/errors"
)

var (
	mock    sqlxmock.Sqlmock
	dbx     *sqlx.DB
	logMock *otelzap.Logger
)

func setup() {
	dbx, mock, _ = sqlxmock.Newx()
	logMock = log_internal.Setup()
}

func bookingColumns() []string {
	return []string{
		"id", "user_id", "boat_id", "start_date", "end_date", "total_price",
		"guest_count", "special_requests", "status", "payment_transaction_id",
		"payment_provider", "created_at", "updated_at",
	}
}

func TestFindBookingByTransactionID(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil)

	query := regexp.QuoteMeta(`SELECT * FROM bookings WHERE payment_transaction_id = $1`)

	t.Run("booking found", func(t *testing.T) {
		rows := sqlxmock.NewRows(bookingColumns()).
			AddRow(int64(99), int64(3), int64(5), time.Time{}, time.Time{}, 450.0,
				4, nil, entity.StatusConfirmed, "1000", entity.ProviderApple, time.Time{}, nil)
		mock.ExpectQuery(query).WithArgs("1000").WillReturnRows(rows)

		booking, err := repo.FindBookingByTransactionID(context.Background(), "1000")

		assert.NoError(t, err)
		assert.Equal(t, int64(99), booking.ID)
		assert.Equal(t, "1000", booking.PaymentTransactionID.String)
	})

	t.Run("no booking holds the transaction", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("2000").WillReturnRows(sqlxmock.NewRows(bookingColumns()))

		booking, err := repo.FindBookingByTransactionID(context.Background(), "2000")

		assert.NoError(t, err)
		assert.Equal(t, entity.Booking{}, booking)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("3000").WillReturnError(goerrors.New("connection reset"))

		_, err := repo.FindBookingByTransactionID(context.Background(), "3000")

		assert.EqualError(t, err, "error find booking by transaction id")
	})
}

func TestConfirmBooking(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil)

	query := regexp.QuoteMeta(`
		UPDATE bookings
		SET status = $2, payment_transaction_id = $3, payment_provider = $4, updated_at = NOW()
		WHERE id = $1 AND payment_transaction_id IS NULL`)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(42), entity.StatusConfirmed, "1000", entity.ProviderApple).
			WillReturnResult(sqlxmock.NewResult(0, 1))

		err := repo.ConfirmBooking(context.Background(), 42, "1000", entity.ProviderApple)

		assert.NoError(t, err)
	})

	t.Run("unique constraint violation", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(43), entity.StatusConfirmed, "1000", entity.ProviderApple).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_payment_transaction_id_key"})

		err := repo.ConfirmBooking(context.Background(), 43, "1000", entity.ProviderApple)

		assert.True(t, goerrors.Is(err, errors.ErrDuplicateTransaction))
	})

	t.Run("row already carries a transaction id", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(44), entity.StatusConfirmed, "pi_456", entity.ProviderStripe).
			WillReturnResult(sqlxmock.NewResult(0, 0))

		err := repo.ConfirmBooking(context.Background(), 44, "pi_456", entity.ProviderStripe)

		assert.True(t, goerrors.Is(err, errors.ErrBookingAlreadyConfirmed))
	})

	t.Run("other database error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(45), entity.StatusConfirmed, "1000", entity.ProviderApple).
			WillReturnError(goerrors.New("connection reset"))

		err := repo.ConfirmBooking(context.Background(), 45, "1000", entity.ProviderApple)

		assert.EqualError(t, err, "error confirm booking")
		assert.False(t, goerrors.Is(err, errors.ErrDuplicateTransaction))
	})
}

func TestCancelIfPending(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil)

	query := regexp.QuoteMeta(`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`)

	t.Run("pending booking cancelled", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(42), entity.StatusCancelled, entity.StatusPending).
			WillReturnResult(sqlxmock.NewResult(0, 1))

		cancelled, err := repo.CancelIfPending(context.Background(), 42)

		assert.NoError(t, err)
		assert.True(t, cancelled)
	})

	t.Run("confirmed booking untouched", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(int64(42), entity.StatusCancelled, entity.StatusPending).
			WillReturnResult(sqlxmock.NewResult(0, 0))

		cancelled, err := repo.CancelIfPending(context.Background(), 42)

		assert.NoError(t, err)
		assert.False(t, cancelled)
	})
}

func TestCountOverlappingBookings(t *testing.T) {
	setup()
	repo := repositories.New(dbx, logMock, nil, nil, nil, nil)

	startDate, _ := time.Parse("2006-01-02", "2026-07-01")
	endDate, _ := time.Parse("2006-01-02", "2026-07-04")

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(int64(5), startDate, endDate).
		WillReturnRows(sqlxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	count, err := repo.CountOverlappingBookings(context.Background(), 5, startDate, endDate)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestVerifyReceipt(t *testing.T) {
	setup()

	t.Run("decodes the verify response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"status": 0,
				"environment": "Production",
				"receipt": {
					"bundle_id": "it.seaboo.app",
					"in_app": [{"transaction_id": "1000", "original_transaction_id": "1000", "product_id": "it.seaboo.rental.basic"}]
				}
			}`))
		}))
		defer server.Close()

		cfgApple := &config.AppleConfig{VerifyURL: server.URL, SandboxVerifyURL: server.URL}
		httpClient := circuit.NewHTTPClient(5*time.Second, 10, nil)
		repo := repositories.New(nil, logMock, httpClient, nil, nil, cfgApple)

		result, err := repo.VerifyReceipt(context.Background(), "base64receipt", false)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Status)
		assert.Len(t, result.Receipt.InApp, 1)
		assert.Equal(t, "it.seaboo.rental.basic", result.Receipt.InApp[0].ProductID)
	})

	t.Run("sandbox flag targets the sandbox endpoint", func(t *testing.T) {
		var sandboxHit bool
		sandbox := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sandboxHit = true
			w.Write([]byte(`{"status": 0, "environment": "Sandbox", "receipt": {"in_app": []}}`))
		}))
		defer sandbox.Close()
		production := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("production endpoint should not be called")
		}))
		defer production.Close()

		cfgApple := &config.AppleConfig{VerifyURL: production.URL, SandboxVerifyURL: sandbox.URL}
		httpClient := circuit.NewHTTPClient(5*time.Second, 10, nil)
		repo := repositories.New(nil, logMock, httpClient, nil, nil, cfgApple)

		result, err := repo.VerifyReceipt(context.Background(), "base64receipt", true)

		assert.NoError(t, err)
		assert.True(t, sandboxHit)
		assert.Equal(t, "Sandbox", result.Environment)
	})

	t.Run("upstream http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cfgApple := &config.AppleConfig{VerifyURL: server.URL, SandboxVerifyURL: server.URL}
		httpClient := circuit.NewHTTPClient(5*time.Second, 10, nil)
		repo := repositories.New(nil, logMock, httpClient, nil, nil, cfgApple)

		_, err := repo.VerifyReceipt(context.Background(), "base64receipt", false)

		assert.EqualError(t, err, "Errore durante la verifica acquisto")
	})
}
