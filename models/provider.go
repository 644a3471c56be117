package models

import "time"

// DayHours is one weekday's declared working window in 24-hour local time
// ("HH:MM"). Both boundaries are inclusive.
type DayHours struct {
	Start     string `bson:"start" json:"start"`
	End       string `bson:"end" json:"end"`
	Available bool   `bson:"available" json:"available"`
}

// WorkingHours maps lowercase weekday names ("monday" .. "sunday") to the
// provider's declared window for that day. A missing entry means the
// provider does not work that day.
type WorkingHours map[string]DayHours

// ProviderRatings is the aggregated review score, maintained elsewhere.
type ProviderRatings struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Provider is the service provider entity. The booking engine consumes it
// for eligibility, working hours and the live availability flag; identity
// and KYC fields are managed by other services.
type Provider struct {
	ID           string          `bson:"id" json:"id"`
	Name         string          `bson:"name" json:"name"`
	BusinessName string          `bson:"businessName,omitempty" json:"businessName,omitempty"`
	Email        string          `bson:"email" json:"email"`
	Phone        string          `bson:"phone" json:"phone"`
	Location     GeoPoint        `bson:"location" json:"location"`
	Services     []BookedService `bson:"services,omitempty" json:"services,omitempty"`
	WorkingHours WorkingHours    `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	Ratings      ProviderRatings `bson:"ratings" json:"ratings"`

	// IsAvailable is the live flag. It is mutated both by the provider's
	// manual toggle and by the availability reconciler, so readers must
	// treat it as eventually consistent and re-validate at booking time.
	IsAvailable   bool `bson:"isAvailable" json:"isAvailable"`
	IsActive      bool `bson:"isActive" json:"isActive"`
	IsBanned      bool `bson:"isBanned" json:"isBanned"`
	CompletedJobs int  `bson:"completedJobs" json:"completedJobs"`

	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Eligible reports whether the provider may receive new bookings at all.
func (p *Provider) Eligible() bool {
	return p.IsActive && !p.IsBanned
}
