package booking

import (
	"testing"
	"time"

	"handyhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ProviderID:        "prov-1",
		Service:           models.BookedService{Category: "Home Repair & Maintenance", Subcategory: "Plumbing"},
		ScheduledDateTime: testNow.Add(2 * time.Hour), // Tuesday 10:00
		Pricing:           models.Pricing{BasePrice: 1000, TotalAmount: 1000},
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := new(MockBookingRepo)
	providers := new(MockProviderRepo)
	users := new(MockUserRepo)

	users.On("GetByID", "user-1").Return(testUser(), nil)
	providers.On("GetByID", "prov-1").Return(testProvider(), nil)
	req := validCreateRequest()
	repo.On("FindConflicting", "prov-1", req.ScheduledDateTime, conflictBuffer, "").Return(nil, nil)
	repo.On("Create", mock.AnythingOfType("*models.Booking")).Return(nil)

	svc := newTestService(repo, providers, users, nil)
	b, err := svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, req)

	assert.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	if assert.NotNil(t, b.ExpiresAt) {
		assert.Equal(t, testNow.Add(24*time.Hour), *b.ExpiresAt)
	}
	assert.Len(t, b.Timeline, 1)
	assert.Equal(t, string(models.BookingPending), b.Timeline[0].Status)

	// Fee split derived from the commission rate when omitted.
	assert.InDelta(t, 100, b.Pricing.PlatformFee, 0.001)
	assert.InDelta(t, 900, b.Pricing.ProviderAmount, 0.001)

	repo.AssertExpectations(t)
}

func TestCreateBookingOnlyUsersCanBook(t *testing.T) {
	svc := newTestService(new(MockBookingRepo), new(MockProviderRepo), new(MockUserRepo), nil)

	_, err := svc.CreateBooking(Actor{ID: "prov-1", Role: RoleProvider}, validCreateRequest())

	assert.Equal(t, CodeUnauthorized, CodeOf(err))
}

func TestCreateBookingRejectsUnknownService(t *testing.T) {
	svc := newTestService(new(MockBookingRepo), new(MockProviderRepo), new(MockUserRepo), nil)

	req := validCreateRequest()
	req.Service.Subcategory = "Quantum Plumbing"
	_, err := svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, req)

	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestCreateBookingPricingInvariants(t *testing.T) {
	tests := []struct {
		name    string
		pricing models.Pricing
		wantErr bool
	}{
		{"total mismatch", models.Pricing{BasePrice: 1000, TotalAmount: 900}, true},
		{"split mismatch", models.Pricing{BasePrice: 1000, TotalAmount: 1000, PlatformFee: 50, ProviderAmount: 900}, true},
		{"negative discount", models.Pricing{BasePrice: 1000, Discount: -5, TotalAmount: 1005}, true},
		{
			"charges and discount balance",
			models.Pricing{
				BasePrice:         1000,
				AdditionalCharges: []models.AdditionalCharge{{Description: "materials", Amount: 200}},
				Discount:          100,
				TotalAmount:       1100,
				PlatformFee:       110,
				ProviderAmount:    990,
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.pricing
			err := validatePricing(&p)
			if tt.wantErr {
				assert.Equal(t, CodeValidation, CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingRequiresUserCoordinates(t *testing.T) {
	repo := new(MockBookingRepo)
	providers := new(MockProviderRepo)
	users := new(MockUserRepo)

	u := testUser()
	u.Address.Coordinates = nil
	users.On("GetByID", "user-1").Return(u, nil)

	svc := newTestService(repo, providers, users, nil)
	_, err := svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, validCreateRequest())

	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestCreateBookingProviderUnavailable(t *testing.T) {
	repo := new(MockBookingRepo)
	providers := new(MockProviderRepo)
	users := new(MockUserRepo)

	users.On("GetByID", "user-1").Return(testUser(), nil)
	p := testProvider()
	p.IsAvailable = false
	providers.On("GetByID", "prov-1").Return(p, nil)

	svc := newTestService(repo, providers, users, nil)
	_, err := svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, validCreateRequest())

	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestCreateBookingOutsideServiceRadius(t *testing.T) {
	repo := new(MockBookingRepo)
	providers := new(MockProviderRepo)
	users := new(MockUserRepo)

	users.On("GetByID", "user-1").Return(testUser(), nil)
	p := testProvider()
	// Roughly 17km east of the fixture user.
	p.Location.Coordinates = []float64{77.75, 12.9716}
	providers.On("GetByID", "prov-1").Return(p, nil)

	svc := newTestService(repo, providers, users, nil)
	_, err := svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, validCreateRequest())

	assert.Equal(t, CodeOutOfServiceArea, CodeOf(err))
}

func TestCreateBookingRejectsPastTime(t *testing.T) {
	repo := new(MockBookingRepo)
	providers := new(MockProviderRepo)
	users := new(MockUserRepo)

	users.On("GetByID", "user-1").Return(testUser(), nil)
	providers.On("GetByID", "prov-1").Return(testProvider(), nil)

	svc := newTestService(repo, providers, users, nil)

	req := validCreateRequest()
	req.ScheduledDateTime = testNow.Add(-time.Hour)
	_, err := svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, req)
	assert.Equal(t, CodeValidation, CodeOf(err))

	req.ScheduledDateTime = testNow
	_, err = svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, req)
	assert.Equal(t, CodeValidation, CodeOf(err), "the exact current instant is not in the future")
}

func TestCreateBookingOutsideWorkingHours(t *testing.T) {
	repo := new(MockBookingRepo)
	providers := new(MockProviderRepo)
	users := new(MockUserRepo)

	users.On("GetByID", "user-1").Return(testUser(), nil)
	providers.On("GetByID", "prov-1").Return(testProvider(), nil)

	svc := newTestService(repo, providers, users, nil)

	// Tuesday 18:00, past the 17:00 end.
	req := validCreateRequest()
	req.ScheduledDateTime = testNow.Add(10 * time.Hour)
	_, err := svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, req)
	assert.Equal(t, CodeSchedulingConflict, CodeOf(err))

	// Wednesday is not in the provider's declared week.
	req.ScheduledDateTime = testNow.Add(26 * time.Hour)
	_, err = svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, req)
	assert.Equal(t, CodeSchedulingConflict, CodeOf(err))
}

func TestCreateBookingConflictWindow(t *testing.T) {
	repo := new(MockBookingRepo)
	providers := new(MockProviderRepo)
	users := new(MockUserRepo)

	users.On("GetByID", "user-1").Return(testUser(), nil)
	providers.On("GetByID", "prov-1").Return(testProvider(), nil)
	req := validCreateRequest()
	repo.On("FindConflicting", "prov-1", req.ScheduledDateTime, conflictBuffer, "").
		Return(testBooking(models.BookingAccepted), nil)

	svc := newTestService(repo, providers, users, nil)
	_, err := svc.CreateBooking(Actor{ID: "user-1", Role: RoleUser}, req)

	assert.Equal(t, CodeSchedulingConflict, CodeOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}
