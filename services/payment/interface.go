package payment

import (
	"handyhub/models"
	"handyhub/services/booking"
)

// PaymentIntentResult carries what the client needs to complete checkout.
type PaymentIntentResult struct {
	IntentID     string  `json:"intentId"`
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// RefundResult reports a processed refund.
type RefundResult struct {
	RefundID string  `json:"refundId"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

// PaymentService handles booking payments. A confirmed payment is the only
// path from accepted to in_progress.
type PaymentService interface {
	// CreatePaymentIntent opens a payment for an accepted booking.
	CreatePaymentIntent(actor booking.Actor, bookingID string) (*PaymentIntentResult, error)
	// ConfirmPayment verifies the intent succeeded, marks the booking paid
	// and moves it to in_progress.
	ConfirmPayment(actor booking.Actor, bookingID, intentID string) (*models.Booking, error)
	// IssueRefund refunds the amount recorded at cancellation time.
	IssueRefund(actor booking.Actor, bookingID string) (*RefundResult, error)
}
