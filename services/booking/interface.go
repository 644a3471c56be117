package booking

import (
	"time"

	"handyhub/models"
)

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	ID   string
	Role string // user | provider | admin
}

const (
	RoleUser     = "user"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// CreateBookingRequest carries the customer's booking request.
type CreateBookingRequest struct {
	ProviderID        string                `json:"providerId"`
	Service           models.BookedService  `json:"service"`
	ScheduledDateTime time.Time             `json:"scheduledDateTime"`
	Address           models.BookingAddress `json:"address"`
	Pricing           models.Pricing        `json:"pricing"`
	Images            []models.Image        `json:"images,omitempty"`
	Notes             string                `json:"notes,omitempty"`
}

// CompleteBookingRequest carries the provider's completion attempt.
type CompleteBookingRequest struct {
	OTP        string         `json:"otp"`
	WorkImages []models.Image `json:"workImages,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

// OTPDelivery reports where the completion code was sent.
type OTPDelivery struct {
	SentTo    string    `json:"otpSentTo"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Pagination describes a page of a listing.
type Pagination struct {
	CurrentPage   int64 `json:"currentPage"`
	TotalPages    int64 `json:"totalPages"`
	TotalBookings int64 `json:"totalBookings"`
	HasNextPage   bool  `json:"hasNextPage"`
	HasPrevPage   bool  `json:"hasPrevPage"`
}

// ReminderScheduler enqueues an upcoming-booking reminder for later
// delivery. Scheduling failures are logged, never surfaced.
type ReminderScheduler interface {
	ScheduleReminder(b *models.Booking) error
}

// BookingService owns the booking lifecycle. All transitions go through it;
// no other component writes status, timeline or completionOTP.
type BookingService interface {
	CreateBooking(actor Actor, req CreateBookingRequest) (*models.Booking, error)
	AcceptBooking(actor Actor, bookingID string) (*models.Booking, error)
	RejectBooking(actor Actor, bookingID, reason string) (*models.Booking, error)
	CancelBooking(actor Actor, bookingID, reason string) (*models.Booking, float64, error)
	RescheduleBooking(actor Actor, bookingID string, newTime time.Time) (*models.Booking, error)
	GenerateCompletionOTP(actor Actor, bookingID string) (*OTPDelivery, error)
	VerifyCompletionOTP(actor Actor, bookingID string, req CompleteBookingRequest) (*models.Booking, error)
	GetBooking(actor Actor, bookingID string) (*models.Booking, error)
	ListBookings(actor Actor, status models.BookingStatus) ([]models.Booking, error)
	ProviderHistory(actor Actor, status models.BookingStatus, page, limit int64) ([]models.Booking, *Pagination, error)
	CheckProviderAvailability(providerID string, date time.Time, duration time.Duration) (*DayAvailability, error)
}
