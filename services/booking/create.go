package booking

import (
	"math"

	"handyhub/models"
	"handyhub/services/availability"
	"handyhub/services/notification"
	"handyhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validatePricing enforces the pricing invariants. When the split is
// omitted, the platform fee is derived from the commission rate.
func validatePricing(p *models.Pricing) error {
	if p.BasePrice < 0 || p.Discount < 0 {
		return ErrValidation("pricing amounts cannot be negative")
	}
	charges := 0.0
	for _, c := range p.AdditionalCharges {
		if c.Amount < 0 {
			return ErrValidation("additional charges cannot be negative")
		}
		charges += c.Amount
	}
	total := p.BasePrice + charges - p.Discount
	if math.Abs(total-p.TotalAmount) > 0.01 {
		return ErrValidation("totalAmount must equal basePrice plus charges minus discount")
	}
	if p.PlatformFee == 0 && p.ProviderAmount == 0 {
		p.PlatformFee = math.Round(p.TotalAmount*models.CommissionRate*100) / 100
		p.ProviderAmount = p.TotalAmount - p.PlatformFee
		return nil
	}
	if math.Abs(p.PlatformFee+p.ProviderAmount-p.TotalAmount) > 0.01 {
		return ErrValidation("totalAmount must equal platformFee plus providerAmount")
	}
	return nil
}

// CreateBooking validates the request against the taxonomy, provider
// eligibility, the service radius, working hours and the conflict window,
// then persists a pending booking with a 24-hour acceptance deadline.
func (s *DefaultBookingService) CreateBooking(actor Actor, req CreateBookingRequest) (*models.Booking, error) {
	if actor.Role != RoleUser {
		return nil, ErrUnauthorized("only customers can create bookings")
	}
	if req.Service.Category == "" || req.Service.Subcategory == "" {
		return nil, ErrValidation("category and subcategory are required in service")
	}
	if !models.ValidService(req.Service.Category, req.Service.Subcategory) {
		return nil, ErrValidation("%s is not a valid subcategory for category %s", req.Service.Subcategory, req.Service.Category)
	}
	if err := validatePricing(&req.Pricing); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.GetByID(actor.ID)
	if err != nil {
		s.logger().Error("failed to load user", zap.String("userId", actor.ID), zap.Error(err))
		return nil, errInternal(err)
	}
	if user == nil {
		return nil, ErrNotFound("user not found")
	}
	if !user.HasCoordinates() {
		return nil, ErrValidation("user location not found, please update your profile with location")
	}

	provider, err := s.ProviderRepo.GetByID(req.ProviderID)
	if err != nil {
		s.logger().Error("failed to load provider", zap.String("providerId", req.ProviderID), zap.Error(err))
		return nil, errInternal(err)
	}
	if provider == nil {
		return nil, ErrNotFound("provider not found")
	}
	if !provider.Eligible() || !provider.IsAvailable {
		return nil, ErrValidation("provider is currently unavailable")
	}

	distance := utils.Haversine(
		user.Address.Coordinates.Latitude, user.Address.Coordinates.Longitude,
		provider.Location.Lat(), provider.Location.Lng(),
	)
	if distance > maxServiceRadiusMeters {
		return nil, ErrOutOfServiceArea("provider is outside the 10km service radius")
	}

	now := s.now()
	scheduled := req.ScheduledDateTime
	if !scheduled.After(now) {
		return nil, ErrValidation("scheduled time must be in the future")
	}

	window, works, err := availability.WindowFor(provider.WorkingHours, scheduled)
	if err != nil {
		return nil, ErrValidation("provider has malformed working hours: %v", err)
	}
	if !works {
		return nil, ErrSchedulingConflict("provider is not available on %s", window.Day)
	}
	if !window.Contains(scheduled) {
		dh := provider.WorkingHours[window.Day]
		return nil, ErrSchedulingConflict("provider is only available between %s and %s on %s", dh.Start, dh.End, window.Day)
	}

	conflict, err := s.Repo.FindConflicting(req.ProviderID, scheduled, conflictBuffer, "")
	if err != nil {
		s.logger().Error("conflict query failed", zap.String("providerId", req.ProviderID), zap.Error(err))
		return nil, errInternal(err)
	}
	if conflict != nil {
		return nil, ErrSchedulingConflict("provider is not available at this time")
	}

	expiresAt := now.Add(pendingTTL)
	b := &models.Booking{
		ID:                uuid.New().String(),
		UserID:            actor.ID,
		ProviderID:        req.ProviderID,
		Service:           req.Service,
		ScheduledDateTime: scheduled,
		Address:           req.Address,
		Pricing:           req.Pricing,
		Status:            models.BookingPending,
		PaymentStatus:     models.PaymentPending,
		Images:            req.Images,
		Notes:             models.BookingNotes{User: req.Notes},
		Timeline: []models.TimelineEntry{
			{Status: string(models.BookingPending), Timestamp: now, Note: "Booking created"},
		},
		ExpiresAt: &expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(b); err != nil {
		s.logger().Error("failed to persist booking", zap.Error(err))
		return nil, errInternal(err)
	}

	s.notify(notification.EventBookingCreated, b)
	return b, nil
}
