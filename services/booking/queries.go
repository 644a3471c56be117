package booking

import (
	bookingRepo "handyhub/database/repository/booking"
	"handyhub/models"
)

// GetBooking returns a single booking to one of its parties, enforcing the
// pending expiry deadline on read.
func (s *DefaultBookingService) GetBooking(actor Actor, bookingID string) (*models.Booking, error) {
	b, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeParty(actor, b, true); err != nil {
		return nil, err
	}
	if _, err := s.expireIfDue(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings returns the caller's bookings, newest first, optionally
// filtered by status.
func (s *DefaultBookingService) ListBookings(actor Actor, status models.BookingStatus) ([]models.Booking, error) {
	q := bookingRepo.BookingQuery{Status: status}
	switch actor.Role {
	case RoleUser:
		q.UserID = actor.ID
	case RoleProvider:
		q.ProviderID = actor.ID
	default:
		return nil, ErrUnauthorized("unauthorized to view bookings")
	}

	bookings, err := s.Repo.Find(q)
	if err != nil {
		return nil, errInternal(err)
	}
	return bookings, nil
}

// ProviderHistory returns a page of the provider's own bookings.
func (s *DefaultBookingService) ProviderHistory(actor Actor, status models.BookingStatus, page, limit int64) ([]models.Booking, *Pagination, error) {
	if actor.Role != RoleProvider {
		return nil, nil, ErrUnauthorized("access denied")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := bookingRepo.BookingQuery{
		ProviderID: actor.ID,
		Status:     status,
		Limit:      limit,
		Skip:       (page - 1) * limit,
	}

	total, err := s.Repo.Count(bookingRepo.BookingQuery{ProviderID: actor.ID, Status: status})
	if err != nil {
		return nil, nil, errInternal(err)
	}
	bookings, err := s.Repo.Find(q)
	if err != nil {
		return nil, nil, errInternal(err)
	}

	totalPages := (total + limit - 1) / limit
	return bookings, &Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalBookings: total,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
	}, nil
}
