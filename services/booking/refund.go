package booking

import (
	"time"

	"handyhub/models"
)

// CalculateRefundAmount returns the refund owed when a booking is
// cancelled at the given instant: the full total more than 24 hours
// before the scheduled time, half between 2 and 24 hours, and nothing
// under 2 hours or when the booking was never paid.
func CalculateRefundAmount(b *models.Booking, at time.Time) float64 {
	if b.PaymentStatus != models.PaymentPaid {
		return 0
	}

	untilScheduled := b.ScheduledDateTime.Sub(at)
	switch {
	case untilScheduled > 24*time.Hour:
		return b.Pricing.TotalAmount
	case untilScheduled > 2*time.Hour:
		return b.Pricing.TotalAmount * 0.5
	default:
		return 0
	}
}
