package models

import "time"

// UserAddress is the customer's stored address. Coordinates are required
// for booking eligibility checks.
type UserAddress struct {
	Street      string       `bson:"street,omitempty" json:"street,omitempty"`
	City        string       `bson:"city,omitempty" json:"city,omitempty"`
	State       string       `bson:"state,omitempty" json:"state,omitempty"`
	Pincode     string       `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// User is the customer entity, consumed by the booking engine for
// coordinates and the SMS phone number. Credentials live elsewhere.
type User struct {
	ID        string      `bson:"id" json:"id"`
	Name      string      `bson:"name" json:"name"`
	Email     string      `bson:"email" json:"email"`
	Phone     string      `bson:"phone" json:"phone"`
	Role      string      `bson:"role" json:"role"`
	Address   UserAddress `bson:"address,omitzero" json:"address,omitzero"`
	IsActive  bool        `bson:"isActive" json:"isActive"`
	FCMToken  string      `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// HasCoordinates reports whether the user has a resolvable location.
func (u *User) HasCoordinates() bool {
	return u.Address.Coordinates != nil &&
		u.Address.Coordinates.Latitude != 0 &&
		u.Address.Coordinates.Longitude != 0
}
