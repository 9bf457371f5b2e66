package errors

import "net/http"

// AppError is the error type surfaced to API clients. Code is the HTTP status
// the transport layer responds with; Message is safe to show to the user.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

func UnauthorizedError(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

func ForbiddenError(message string) *AppError {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

func InternalServerError(message string) *AppError {
	return New(http.StatusInternalServerError, message)
}

// ErrDuplicateTransaction is returned when a payment transaction id is
// already recorded on some booking, either by the pre-check or by the
// uniqueness constraint at commit time. Both paths must report the same
// outcome to the caller.
var ErrDuplicateTransaction = Conflict("Questa transazione Apple è già stata utilizzata")

// ErrBookingAlreadyConfirmed is returned when the conditional commit finds
// the booking row already carrying a transaction id, so the update touches
// zero rows. Webhook retries treat it as a no-op; the purchase flow surfaces
// it to the client.
var ErrBookingAlreadyConfirmed = BadRequest("Booking già confermato")
