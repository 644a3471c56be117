package models

// ReminderPayload is the queued task body for an upcoming-booking reminder.
type ReminderPayload struct {
	BookingID         string `json:"bookingId"`
	UserID            string `json:"userId"`
	ProviderID        string `json:"providerId"`
	Service           string `json:"service"`
	ScheduledDateTime string `json:"scheduledDateTime"`
}
