package handlers

// HandlerBundle groups the HTTP handlers for route registration.
type HandlerBundle struct {
	Booking  *BookingHandler
	Provider *ProviderHandler
	Payment  *PaymentHandler
}
