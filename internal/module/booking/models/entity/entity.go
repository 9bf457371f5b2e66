package entity

import (
	"database/sql"
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	ProviderApple  = "apple"
	ProviderStripe = "stripe"
)

// BoatSummary is the slice of a boat the booking flow needs for pricing and
// availability.
type BoatSummary struct {
	ID          int64   `db:"id"`
	OwnerID     int64   `db:"owner_id"`
	PricePerDay float64 `db:"price_per_day"`
	IsAvailable bool    `db:"is_available"`
}

type Booking struct {
	ID                   int64          `db:"id"`
	UserID               int64          `db:"user_id"`
	BoatID               int64          `db:"boat_id"`
	StartDate            time.Time      `db:"start_date"`
	EndDate              time.Time      `db:"end_date"`
	TotalPrice           float64        `db:"total_price"`
	GuestCount           int            `db:"guest_count"`
	SpecialRequests      sql.NullString `db:"special_requests"`
	Status               string         `db:"status"`
	PaymentTransactionID sql.NullString `db:"payment_transaction_id"`
	PaymentProvider      sql.NullString `db:"payment_provider"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            sql.NullTime   `db:"updated_at"`
}
