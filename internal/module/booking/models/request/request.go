package request

type CreateBooking struct {
	BoatID          int64  `json:"boat_id" validate:"required"`
	StartDate       string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date" validate:"required,datetime=2006-01-02"`
	GuestCount      int    `json:"guest_count" validate:"required,min=1"`
	SpecialRequests string `json:"special_requests"`
}

// VerifyPurchase carries a client-submitted App Store receipt. BookingID is
// optional: without it the receipt is only validated, nothing is written.
type VerifyPurchase struct {
	ReceiptData   string `json:"receiptData"`
	ProductID     string `json:"productId"`
	TransactionID string `json:"transactionId"`
	BookingID     string `json:"bookingId"`
}

type CreatePaymentIntent struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	BookingID int64   `json:"bookingId"`
	Currency  string  `json:"currency"`
}

type BookingCreated struct {
	BookingID      int64   `json:"booking_id" validate:"required"`
	BoatID         int64   `json:"boat_id" validate:"required"`
	UserID         int64   `json:"user_id" validate:"required"`
	TotalPrice     float64 `json:"total_price" validate:"required"`
	EmailRecipient string  `json:"email_recipient"`
}

type BookingExpiration struct {
	BookingID int64 `json:"booking_id" validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}

type NotificationMessage struct {
	Message        string `json:"message" validate:"required"`
	EmailRecipient string `json:"email_recipient" validate:"required"`
}
