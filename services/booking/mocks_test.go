package booking

import (
	"errors"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	"handyhub/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// MockBookingRepo is a mock implementation of bookingRepo.BookingRepository.
type MockBookingRepo struct {
	mock.Mock
}

var _ bookingRepo.BookingRepository = (*MockBookingRepo)(nil)

func (m *MockBookingRepo) Create(b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

func (m *MockBookingRepo) UpdateStatusIf(id string, from, to models.BookingStatus, set bson.M, unset bson.M, entry models.TimelineEntry) (bool, error) {
	args := m.Called(id, from, to, set, unset, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) FindConflicting(providerID string, center time.Time, buffer time.Duration, excludeID string) (*models.Booking, error) {
	args := m.Called(providerID, center, buffer, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) FindActiveForDay(providerID string, day time.Time) ([]models.Booking, error) {
	args := m.Called(providerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) Find(q bookingRepo.BookingQuery) ([]models.Booking, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) Count(q bookingRepo.BookingQuery) (int64, error) {
	args := m.Called(q)
	return args.Get(0).(int64), args.Error(1)
}

// MockProviderRepo is a mock implementation of providerRepo.ProviderRepository.
type MockProviderRepo struct {
	mock.Mock
}

func (m *MockProviderRepo) GetByID(id string) (*models.Provider, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Provider), args.Error(1)
}

func (m *MockProviderRepo) GetAll() ([]models.Provider, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Provider), args.Error(1)
}

func (m *MockProviderRepo) Update(p *models.Provider) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockProviderRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

func (m *MockProviderRepo) SetAvailability(id string, available bool) error {
	args := m.Called(id, available)
	return args.Error(0)
}

func (m *MockProviderRepo) IncrementCompletedJobs(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUserRepo is a mock implementation of userRepo.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// recordingSMS captures outgoing messages instead of delivering them.
type recordingSMS struct {
	sentTo   []string
	messages []string
	fail     bool
}

func (r *recordingSMS) Send(phone, message string) error {
	if r.fail {
		return errors.New("sms gateway down")
	}
	r.sentTo = append(r.sentTo, phone)
	r.messages = append(r.messages, message)
	return nil
}

// testNow is a Tuesday morning; the fixture provider works Tuesdays 09:00-17:00.
var testNow = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Name:  "Asha",
		Phone: "+919876543210",
		Role:  "user",
		Address: models.UserAddress{
			Coordinates: &models.Coordinates{Latitude: 12.9716, Longitude: 77.5946},
		},
		IsActive: true,
	}
}

func testProvider() *models.Provider {
	return &models.Provider{
		ID:    "prov-1",
		Name:  "Ravi",
		Phone: "+919812345678",
		Location: models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{77.5946, 12.9716},
		},
		WorkingHours: models.WorkingHours{
			"tuesday": {Start: "09:00", End: "17:00", Available: true},
		},
		IsAvailable: true,
		IsActive:    true,
	}
}

func testBooking(status models.BookingStatus) *models.Booking {
	scheduled := testNow.Add(26 * time.Hour)
	b := &models.Booking{
		ID:                "bk-1",
		UserID:            "user-1",
		ProviderID:        "prov-1",
		Service:           models.BookedService{Category: "Home Repair & Maintenance", Subcategory: "Plumbing"},
		ScheduledDateTime: scheduled,
		Pricing:           models.Pricing{BasePrice: 1000, TotalAmount: 1000, PlatformFee: 100, ProviderAmount: 900},
		Status:            status,
		PaymentStatus:     models.PaymentPending,
		Timeline: []models.TimelineEntry{
			{Status: string(models.BookingPending), Timestamp: testNow.Add(-time.Hour), Note: "Booking created"},
		},
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
	if status == models.BookingPending {
		expires := testNow.Add(23 * time.Hour)
		b.ExpiresAt = &expires
	}
	return b
}

func newTestService(repo *MockBookingRepo, providers *MockProviderRepo, users *MockUserRepo, sms *recordingSMS) *DefaultBookingService {
	svc := &DefaultBookingService{
		Repo:         repo,
		ProviderRepo: providers,
		UserRepo:     users,
		Logger:       zap.NewNop(),
		Now:          fixedClock(testNow),
	}
	if sms != nil {
		svc.SMS = sms
	}
	return svc
}
