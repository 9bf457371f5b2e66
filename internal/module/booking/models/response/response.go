package response

// AppleVerify is the wire response of the App Store verifyReceipt endpoints.
type AppleVerify struct {
	Status      int          `json:"status"`
	Environment string       `json:"environment"`
	Receipt     AppleReceipt `json:"receipt"`
}

type AppleReceipt struct {
	BundleID             string          `json:"bundle_id"`
	ApplicationVersion   string          `json:"application_version"`
	OriginalPurchaseDate string          `json:"original_purchase_date"`
	InApp                []ApplePurchase `json:"in_app"`
}

type ApplePurchase struct {
	TransactionID         string `json:"transaction_id"`
	OriginalTransactionID string `json:"original_transaction_id"`
	ProductID             string `json:"product_id"`
	PurchaseDate          string `json:"purchase_date,omitempty"`
	Quantity              string `json:"quantity,omitempty"`
}

// ReceiptSummary is the subset of receipt metadata surfaced to clients.
type ReceiptSummary struct {
	BundleID             string `json:"bundle_id"`
	ApplicationVersion   string `json:"application_version"`
	OriginalPurchaseDate string `json:"original_purchase_date"`
}

type VerifyPurchase struct {
	Success       bool            `json:"success"`
	Environment   string          `json:"environment,omitempty"`
	Receipt       *ReceiptSummary `json:"receipt,omitempty"`
	Purchase      *ApplePurchase  `json:"purchase,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
}

type Booking struct {
	ID              int64   `json:"id"`
	BoatID          int64   `json:"boatId"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	TotalPrice      float64 `json:"totalPrice"`
	GuestCount      int     `json:"guestCount"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	Status          string  `json:"status"`
	PaymentProvider string  `json:"paymentProvider,omitempty"`
}

type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}
