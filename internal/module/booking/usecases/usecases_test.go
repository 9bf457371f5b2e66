package usecases_test

import (
	"context"
	goerrors "errors"
	"sync"
	"testing"
	"time"

	"seaboo-server/config"
	"seaboo-server/internal/module/booking/mocks"
	"seaboo-server/internal/module/booking/models/entity"
	"seaboo-server/internal/module/booking/models/request"
	"seaboo-server/internal/module/booking/models/response"
	"seaboo-server/internal/module/booking/usecases"
	"seaboo-server/internal/pkg/errors"
	log_internal "seaboo-server/internal/pkg/log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	uc       usecases.Usecase
	repoMock *mocks.Repositories
	p        message.Publisher
)

type mockPublisher struct{}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	return nil
}

func NewMockPublisher() message.Publisher {
	return &mockPublisher{}
}

func setup() {
	repoMock = new(mocks.Repositories)
	p = NewMockPublisher()
	logMock := log_internal.Setup()
	taskClient := asynq.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:6379"})
	cfgBooking := &config.BookingConfig{PaymentWindowMinutes: 30}
	uc = usecases.New(repoMock, logMock, p, taskClient, cfgBooking)
}

func teardown() {
	repoMock = nil
	uc = nil
}

func validReceipt() response.AppleVerify {
	return response.AppleVerify{
		Status:      0,
		Environment: "Production",
		Receipt: response.AppleReceipt{
			BundleID:           "it.seaboo.app",
			ApplicationVersion: "1",
			InApp: []response.ApplePurchase{
				{
					TransactionID:         "1000",
					OriginalTransactionID: "1000",
					ProductID:             "it.seaboo.rental.basic",
				},
			},
		},
	}
}

func TestVerifyPurchase(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()

	t.Run("missing receipt data", func(t *testing.T) {
		payload := request.VerifyPurchase{ProductID: "it.seaboo.rental.basic", TransactionID: "1000"}

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.EqualError(t, err, "Receipt mancante")
		repoMock.AssertNotCalled(t, "VerifyReceipt")
	})

	t.Run("missing product or transaction id", func(t *testing.T) {
		payload := request.VerifyPurchase{ReceiptData: "base64receipt", ProductID: "it.seaboo.rental.basic"}

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.EqualError(t, err, "productId e transactionId sono obbligatori")
		repoMock.AssertNotCalled(t, "VerifyReceipt")
	})

	t.Run("validation only without booking id", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)

		resp, err := uc.VerifyPurchase(ctx, &payload, 0)

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Production", resp.Environment)
		assert.Equal(t, "1000", resp.TransactionID)
		repoMock.AssertNotCalled(t, "FindBookingByTransactionID")
		repoMock.AssertNotCalled(t, "ConfirmBooking")
	})

	t.Run("sandbox receipt retried once against sandbox", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
		}
		sandboxReceipt := validReceipt()
		sandboxReceipt.Environment = "Sandbox"
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).
			Return(response.AppleVerify{Status: 21007}, nil).Once()
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, true).
			Return(sandboxReceipt, nil).Once()

		resp, err := uc.VerifyPurchase(ctx, &payload, 0)

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Sandbox", resp.Environment)
		repoMock.AssertNumberOfCalls(t, "VerifyReceipt", 2)
	})

	t.Run("non zero status maps to its message", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).
			Return(response.AppleVerify{Status: 21003}, nil)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.EqualError(t, err, "Receipt non autenticato")
	})

	t.Run("unknown status maps to generic message", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).
			Return(response.AppleVerify{Status: 21099}, nil)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.EqualError(t, err, "Verifica fallita: codice 21099")
	})

	t.Run("transaction not in receipt", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "2000",
			BookingID:     "42",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.EqualError(t, err, "Transaction non corrispondente nel receipt")
		repoMock.AssertNotCalled(t, "FindBookingByTransactionID")
		repoMock.AssertNotCalled(t, "ConfirmBooking")
	})

	t.Run("booking id without session", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
			BookingID:     "42",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)

		_, err := uc.VerifyPurchase(ctx, &payload, 0)

		assert.EqualError(t, err, "Non autenticato")
	})

	t.Run("malformed booking id", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
			BookingID:     "not-a-number",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.EqualError(t, err, "bookingId non valido")
	})

	t.Run("replayed transaction blocked before ownership check", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
			BookingID:     "42",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)
		repoMock.On("FindBookingByTransactionID", ctx, "1000").
			Return(entity.Booking{ID: 99, UserID: 3, Status: entity.StatusConfirmed}, nil)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.True(t, goerrors.Is(err, errors.ErrDuplicateTransaction))
		repoMock.AssertNotCalled(t, "FindBookingsByUserID")
		repoMock.AssertNotCalled(t, "ConfirmBooking")
	})

	t.Run("booking owned by someone else", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
			BookingID:     "42",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)
		repoMock.On("FindBookingByTransactionID", ctx, "1000").Return(entity.Booking{}, nil)
		repoMock.On("FindBookingsByUserID", ctx, int64(7)).
			Return([]entity.Booking{{ID: 13, UserID: 7, Status: entity.StatusPending}}, nil)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.EqualError(t, err, "Booking non trovato o non autorizzato")
		repoMock.AssertNotCalled(t, "ConfirmBooking")
	})

	t.Run("booking already confirmed", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
			BookingID:     "42",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)
		repoMock.On("FindBookingByTransactionID", ctx, "1000").Return(entity.Booking{}, nil)
		repoMock.On("FindBookingsByUserID", ctx, int64(7)).
			Return([]entity.Booking{{ID: 42, UserID: 7, Status: entity.StatusConfirmed}}, nil)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.EqualError(t, err, "Booking già confermato")
		repoMock.AssertNotCalled(t, "ConfirmBooking")
	})

	t.Run("constraint violation at commit surfaces as conflict", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
			BookingID:     "42",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)
		repoMock.On("FindBookingByTransactionID", ctx, "1000").Return(entity.Booking{}, nil)
		repoMock.On("FindBookingsByUserID", ctx, int64(7)).
			Return([]entity.Booking{{ID: 42, UserID: 7, Status: entity.StatusPending}}, nil)
		repoMock.On("ConfirmBooking", ctx, int64(42), "1000", entity.ProviderApple).
			Return(errors.ErrDuplicateTransaction)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.True(t, goerrors.Is(err, errors.ErrDuplicateTransaction))
	})

	t.Run("row paid concurrently surfaces as already confirmed", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
			BookingID:     "42",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)
		repoMock.On("FindBookingByTransactionID", ctx, "1000").Return(entity.Booking{}, nil)
		repoMock.On("FindBookingsByUserID", ctx, int64(7)).
			Return([]entity.Booking{{ID: 42, UserID: 7, Status: entity.StatusPending}}, nil)
		repoMock.On("ConfirmBooking", ctx, int64(42), "1000", entity.ProviderApple).
			Return(errors.ErrBookingAlreadyConfirmed)

		_, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.True(t, goerrors.Is(err, errors.ErrBookingAlreadyConfirmed))
	})

	t.Run("success confirms booking with durable id", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1000",
			BookingID:     "42",
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(validReceipt(), nil)
		repoMock.On("FindBookingByTransactionID", ctx, "1000").Return(entity.Booking{}, nil)
		repoMock.On("FindBookingsByUserID", ctx, int64(7)).
			Return([]entity.Booking{{ID: 42, UserID: 7, Status: entity.StatusPending}}, nil)
		repoMock.On("ConfirmBooking", ctx, int64(42), "1000", entity.ProviderApple).Return(nil)

		resp, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Production", resp.Environment)
		assert.Equal(t, "1000", resp.TransactionID)
		repoMock.AssertCalled(t, "ConfirmBooking", ctx, int64(42), "1000", entity.ProviderApple)
	})

	t.Run("durable id prefers original transaction id", func(t *testing.T) {
		setup()
		payload := request.VerifyPurchase{
			ReceiptData:   "base64receipt",
			ProductID:     "it.seaboo.rental.basic",
			TransactionID: "1001",
			BookingID:     "42",
		}
		receipt := validReceipt()
		receipt.Receipt.InApp = []response.ApplePurchase{
			{
				TransactionID:         "1001",
				OriginalTransactionID: "1000",
				ProductID:             "it.seaboo.rental.basic",
			},
		}
		repoMock.On("VerifyReceipt", ctx, payload.ReceiptData, false).Return(receipt, nil)
		repoMock.On("FindBookingByTransactionID", ctx, "1000").Return(entity.Booking{}, nil)
		repoMock.On("FindBookingsByUserID", ctx, int64(7)).
			Return([]entity.Booking{{ID: 42, UserID: 7, Status: entity.StatusPending}}, nil)
		repoMock.On("ConfirmBooking", ctx, int64(42), "1000", entity.ProviderApple).Return(nil)

		resp, err := uc.VerifyPurchase(ctx, &payload, 7)

		assert.NoError(t, err)
		assert.Equal(t, "1000", resp.TransactionID)
	})
}

// Two customers race the same receipt for their own pending bookings. The
// pre-check sees nothing for either, so the unique constraint has to decide:
// exactly one confirmation wins, the loser gets the duplicate conflict.
func TestVerifyPurchaseConcurrent(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	receiptData := "base64receipt"

	repoMock.On("VerifyReceipt", ctx, receiptData, false).Return(validReceipt(), nil)
	repoMock.On("FindBookingByTransactionID", ctx, "1000").Return(entity.Booking{}, nil)
	repoMock.On("FindBookingsByUserID", ctx, int64(7)).
		Return([]entity.Booking{{ID: 42, UserID: 7, Status: entity.StatusPending}}, nil)
	repoMock.On("FindBookingsByUserID", ctx, int64(8)).
		Return([]entity.Booking{{ID: 43, UserID: 8, Status: entity.StatusPending}}, nil)
	repoMock.On("ConfirmBooking", ctx, mock.AnythingOfType("int64"), "1000", entity.ProviderApple).
		Return(nil).Once()
	repoMock.On("ConfirmBooking", ctx, mock.AnythingOfType("int64"), "1000", entity.ProviderApple).
		Return(errors.ErrDuplicateTransaction).Once()

	type result struct {
		err error
	}
	results := make([]result, 2)

	var wg sync.WaitGroup
	for i, attempt := range []struct {
		userID    int64
		bookingID string
	}{
		{userID: 7, bookingID: "42"},
		{userID: 8, bookingID: "43"},
	} {
		wg.Add(1)
		go func(idx int, userID int64, bookingID string) {
			defer wg.Done()
			payload := request.VerifyPurchase{
				ReceiptData:   receiptData,
				ProductID:     "it.seaboo.rental.basic",
				TransactionID: "1000",
				BookingID:     bookingID,
			}
			_, err := uc.VerifyPurchase(ctx, &payload, userID)
			results[idx] = result{err: err}
		}(i, attempt.userID, attempt.bookingID)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, r := range results {
		switch {
		case r.err == nil:
			succeeded++
		case goerrors.Is(r.err, errors.ErrDuplicateTransaction):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", r.err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
}

func TestBookBoat(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	unlock := func() {}

	t.Run("success", func(t *testing.T) {
		payload := request.CreateBooking{
			BoatID:     5,
			StartDate:  "2026-07-01",
			EndDate:    "2026-07-04",
			GuestCount: 4,
		}
		startDate, _ := time.Parse("2006-01-02", payload.StartDate)
		endDate, _ := time.Parse("2006-01-02", payload.EndDate)

		repoMock.On("FindBoatForBooking", ctx, int64(5)).
			Return(entity.BoatSummary{ID: 5, OwnerID: 2, PricePerDay: 150, IsAvailable: true}, nil)
		repoMock.On("LockBoat", ctx, int64(5)).Return(unlock, nil)
		repoMock.On("CountOverlappingBookings", ctx, int64(5), startDate, endDate).Return(int64(0), nil)
		repoMock.On("InsertBooking", ctx, mock.AnythingOfType("entity.Booking")).
			Return(entity.Booking{
				ID:         11,
				UserID:     7,
				BoatID:     5,
				StartDate:  startDate,
				EndDate:    endDate,
				TotalPrice: 450,
				GuestCount: 4,
				Status:     entity.StatusPending,
			}, nil)

		resp, err := uc.BookBoat(ctx, &payload, 7, "test@seaboo.it")

		assert.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
		assert.Equal(t, float64(450), resp.TotalPrice)
		assert.Equal(t, entity.StatusPending, resp.Status)
	})

	t.Run("dates overlap an existing booking", func(t *testing.T) {
		setup()
		payload := request.CreateBooking{
			BoatID:     5,
			StartDate:  "2026-07-01",
			EndDate:    "2026-07-04",
			GuestCount: 4,
		}
		startDate, _ := time.Parse("2006-01-02", payload.StartDate)
		endDate, _ := time.Parse("2006-01-02", payload.EndDate)

		repoMock.On("FindBoatForBooking", ctx, int64(5)).
			Return(entity.BoatSummary{ID: 5, OwnerID: 2, PricePerDay: 150, IsAvailable: true}, nil)
		repoMock.On("LockBoat", ctx, int64(5)).Return(unlock, nil)
		repoMock.On("CountOverlappingBookings", ctx, int64(5), startDate, endDate).Return(int64(1), nil)

		_, err := uc.BookBoat(ctx, &payload, 7, "test@seaboo.it")

		assert.EqualError(t, err, "Barca non disponibile per le date selezionate")
		repoMock.AssertNotCalled(t, "InsertBooking")
	})

	t.Run("cannot book own boat", func(t *testing.T) {
		setup()
		payload := request.CreateBooking{
			BoatID:     5,
			StartDate:  "2026-07-01",
			EndDate:    "2026-07-04",
			GuestCount: 4,
		}
		repoMock.On("FindBoatForBooking", ctx, int64(5)).
			Return(entity.BoatSummary{ID: 5, OwnerID: 7, PricePerDay: 150, IsAvailable: true}, nil)

		_, err := uc.BookBoat(ctx, &payload, 7, "test@seaboo.it")

		assert.EqualError(t, err, "Non puoi prenotare la tua barca")
	})

	t.Run("end date before start date", func(t *testing.T) {
		setup()
		payload := request.CreateBooking{
			BoatID:     5,
			StartDate:  "2026-07-04",
			EndDate:    "2026-07-01",
			GuestCount: 4,
		}

		_, err := uc.BookBoat(ctx, &payload, 7, "test@seaboo.it")

		assert.EqualError(t, err, "La data di fine deve essere successiva alla data di inizio")
		repoMock.AssertNotCalled(t, "FindBoatForBooking")
	})
}

func TestConfirmStripePayment(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repoMock.On("ConfirmBooking", ctx, int64(42), "pi_123", entity.ProviderStripe).Return(nil)

		err := uc.ConfirmStripePayment(ctx, 42, "pi_123")

		assert.NoError(t, err)
	})

	t.Run("webhook replay is not an error", func(t *testing.T) {
		setup()
		repoMock.On("ConfirmBooking", ctx, int64(42), "pi_123", entity.ProviderStripe).
			Return(errors.ErrDuplicateTransaction)

		err := uc.ConfirmStripePayment(ctx, 42, "pi_123")

		assert.NoError(t, err)
	})

	t.Run("booking already paid through apple is left untouched", func(t *testing.T) {
		setup()
		repoMock.On("ConfirmBooking", ctx, int64(42), "pi_123", entity.ProviderStripe).
			Return(errors.ErrBookingAlreadyConfirmed)

		err := uc.ConfirmStripePayment(ctx, 42, "pi_123")

		assert.NoError(t, err)
		repoMock.AssertCalled(t, "ConfirmBooking", ctx, int64(42), "pi_123", entity.ProviderStripe)
	})

	t.Run("other store failure propagates", func(t *testing.T) {
		setup()
		repoMock.On("ConfirmBooking", ctx, int64(42), "pi_123", entity.ProviderStripe).
			Return(errors.InternalServerError("error confirm booking"))

		err := uc.ConfirmStripePayment(ctx, 42, "pi_123")

		assert.EqualError(t, err, "error confirm booking")
	})
}

func TestExpireBooking(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()

	t.Run("cancels a pending booking", func(t *testing.T) {
		repoMock.On("CancelIfPending", ctx, int64(42)).Return(true, nil)

		err := uc.ExpireBooking(ctx, &request.BookingExpiration{BookingID: 42})

		assert.NoError(t, err)
	})

	t.Run("already confirmed booking is left alone", func(t *testing.T) {
		setup()
		repoMock.On("CancelIfPending", ctx, int64(42)).Return(false, nil)

		err := uc.ExpireBooking(ctx, &request.BookingExpiration{BookingID: 42})

		assert.NoError(t, err)
	})
}

func TestConsumeBookingCreatedQueue(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()

	t.Run("publishes a notification", func(t *testing.T) {
		payload := request.BookingCreated{
			BookingID:      11,
			BoatID:         5,
			UserID:         7,
			TotalPrice:     450,
			EmailRecipient: "test@seaboo.it",
		}

		err := uc.ConsumeBookingCreatedQueue(ctx, &payload)

		assert.NoError(t, err)
	})

	t.Run("skips events without a recipient", func(t *testing.T) {
		err := uc.ConsumeBookingCreatedQueue(ctx, &request.BookingCreated{BookingID: 11})

		assert.NoError(t, err)
	})
}
