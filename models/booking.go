package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingAccepted   BookingStatus = "accepted"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingExpired    BookingStatus = "expired"
)

// IsTerminal reports whether the status is an end-of-life marker.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingExpired
}

// PaymentStatus tracks the payment side of a booking, advanced by the
// payment service and read by cancellation/refund logic.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// BookedService identifies what is being booked, drawn from the closed
// service taxonomy.
type BookedService struct {
	Category    string `bson:"category" json:"category"`
	Subcategory string `bson:"subcategory" json:"subcategory"`
}

// AdditionalCharge is a line item added on top of the base price.
type AdditionalCharge struct {
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// Pricing carries the agreed amounts for a booking.
// TotalAmount = BasePrice + sum(AdditionalCharges) - Discount,
// and TotalAmount = PlatformFee + ProviderAmount.
type Pricing struct {
	BasePrice         float64            `bson:"basePrice" json:"basePrice"`
	AdditionalCharges []AdditionalCharge `bson:"additionalCharges,omitempty" json:"additionalCharges,omitempty"`
	Discount          float64            `bson:"discount" json:"discount"`
	TotalAmount       float64            `bson:"totalAmount" json:"totalAmount"`
	PlatformFee       float64            `bson:"platformFee" json:"platformFee"`
	ProviderAmount    float64            `bson:"providerAmount" json:"providerAmount"`
}

// BookingAddress is where the service takes place.
type BookingAddress struct {
	Street      string       `bson:"street" json:"street"`
	City        string       `bson:"city" json:"city"`
	State       string       `bson:"state" json:"state"`
	Pincode     string       `bson:"pincode" json:"pincode"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Landmark    string       `bson:"landmark,omitempty" json:"landmark,omitempty"`
}

// TimelineEntry is one step in a booking's append-only audit trail.
type TimelineEntry struct {
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
}

// CompletionOTP is the in-flight completion code exchange. The code is
// stored only as a sha256 hex digest; plaintext is relayed by SMS and
// never persisted.
type CompletionOTP struct {
	OTPHash     string    `bson:"otp" json:"-"`
	GeneratedAt time.Time `bson:"generatedAt" json:"generatedAt"`
	ExpiresAt   time.Time `bson:"expiresAt" json:"expiresAt"`
	Attempts    int       `bson:"attempts" json:"attempts"`
	MaxAttempts int       `bson:"maxAttempts" json:"maxAttempts"`
	IsUsed      bool      `bson:"isUsed" json:"isUsed"`
}

// Cancellation is populated exactly once, when a booking is cancelled.
type Cancellation struct {
	CancelledBy  string    `bson:"cancelledBy" json:"cancelledBy"` // user | provider | admin
	Reason       string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CancelledAt  time.Time `bson:"cancelledAt" json:"cancelledAt"`
	RefundAmount float64   `bson:"refundAmount" json:"refundAmount"`
}

// Completion is populated exactly once, when the OTP exchange succeeds.
type Completion struct {
	CompletedAt time.Time `bson:"completedAt" json:"completedAt"`
	WorkImages  []Image   `bson:"workImages,omitempty" json:"workImages,omitempty"`
}

// BookingNotes holds free-text notes from each party.
type BookingNotes struct {
	User     string `bson:"user,omitempty" json:"user,omitempty"`
	Provider string `bson:"provider,omitempty" json:"provider,omitempty"`
	Admin    string `bson:"admin,omitempty" json:"admin,omitempty"`
}

// PaymentRef links a booking to its external payment.
type PaymentRef struct {
	IntentID string    `bson:"intentId" json:"intentId"`
	PaidAt   time.Time `bson:"paidAt,omitzero" json:"paidAt,omitzero"`
	RefundID string    `bson:"refundId,omitempty" json:"refundId,omitempty"`
}

// Booking is the central entity of the marketplace. Its status only moves
// along the lifecycle transition table, and every transition appends
// exactly one timeline entry.
type Booking struct {
	ID                string          `bson:"id" json:"id"`
	UserID            string          `bson:"userId" json:"userId"`
	ProviderID        string          `bson:"providerId" json:"providerId"`
	Service           BookedService   `bson:"service" json:"service"`
	ScheduledDateTime time.Time       `bson:"scheduledDateTime" json:"scheduledDateTime"`
	Address           BookingAddress  `bson:"address" json:"address"`
	Pricing           Pricing         `bson:"pricing" json:"pricing"`
	Status            BookingStatus   `bson:"status" json:"status"`
	PaymentStatus     PaymentStatus   `bson:"paymentStatus" json:"paymentStatus"`
	Payment           *PaymentRef     `bson:"payment,omitempty" json:"payment,omitempty"`
	Images            []Image         `bson:"images,omitempty" json:"images,omitempty"`
	Notes             BookingNotes    `bson:"notes,omitzero" json:"notes,omitzero"`
	Timeline          []TimelineEntry `bson:"timeline" json:"timeline"`
	CompletionOTP     *CompletionOTP  `bson:"completionOTP,omitempty" json:"completionOTP,omitempty"`
	Cancellation      *Cancellation   `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	Completion        *Completion     `bson:"completion,omitempty" json:"completion,omitempty"`
	// ExpiresAt is set only while the booking is pending; it is cleared
	// once the booking leaves pending.
	ExpiresAt *time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}
