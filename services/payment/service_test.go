package payment

import (
	"testing"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	"handyhub/models"
	"handyhub/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// MockBookingRepo is a mock implementation of bookingRepo.BookingRepository.
type MockBookingRepo struct {
	mock.Mock
}

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

func paymentBooking(status models.BookingStatus, paymentStatus models.PaymentStatus) *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		UserID:        "user-1",
		ProviderID:    "prov-1",
		Status:        status,
		PaymentStatus: paymentStatus,
		Pricing:       models.Pricing{TotalAmount: 1000},
	}
}

func newPaymentService(repo *MockBookingRepo) *DefaultPaymentService {
	return &DefaultPaymentService{Repo: repo, Logger: zap.NewNop()}
}

func TestSmallestUnit(t *testing.T) {
	assert.Equal(t, int64(100000), smallestUnit(1000))
	assert.Equal(t, int64(99950), smallestUnit(999.5))
	assert.Equal(t, int64(10), smallestUnit(0.1))
}

func TestCreatePaymentIntentGuards(t *testing.T) {
	user := booking.Actor{ID: "user-1", Role: booking.RoleUser}

	t.Run("only the booking user may pay", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", "bk-1").Return(paymentBooking(models.BookingAccepted, models.PaymentPending), nil)

		_, err := newPaymentService(repo).CreatePaymentIntent(booking.Actor{ID: "prov-1", Role: booking.RoleProvider}, "bk-1")
		assert.Equal(t, booking.CodeUnauthorized, booking.CodeOf(err))
	})

	t.Run("only accepted bookings proceed to payment", func(t *testing.T) {
		for _, status := range []models.BookingStatus{
			models.BookingPending, models.BookingInProgress, models.BookingCompleted, models.BookingCancelled,
		} {
			repo := new(MockBookingRepo)
			repo.On("GetByID", "bk-1").Return(paymentBooking(status, models.PaymentPending), nil)

			_, err := newPaymentService(repo).CreatePaymentIntent(user, "bk-1")
			assert.Equal(t, booking.CodeInvalidStateTransition, booking.CodeOf(err), "status %s", status)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", "bk-1").Return(paymentBooking(models.BookingAccepted, models.PaymentPaid), nil)

		_, err := newPaymentService(repo).CreatePaymentIntent(user, "bk-1")
		assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", "ghost").Return(nil, nil)

		_, err := newPaymentService(repo).CreatePaymentIntent(user, "ghost")
		assert.Equal(t, booking.CodeNotFound, booking.CodeOf(err))
	})
}

func TestIssueRefundGuards(t *testing.T) {
	user := booking.Actor{ID: "user-1", Role: booking.RoleUser}

	t.Run("no eligible payment", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", "bk-1").Return(paymentBooking(models.BookingCancelled, models.PaymentPending), nil)

		_, err := newPaymentService(repo).IssueRefund(user, "bk-1")
		assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
	})

	t.Run("missing cancellation record", func(t *testing.T) {
		repo := new(MockBookingRepo)
		b := paymentBooking(models.BookingCancelled, models.PaymentPaid)
		b.Payment = &models.PaymentRef{IntentID: "pi_123"}
		repo.On("GetByID", "bk-1").Return(b, nil)

		_, err := newPaymentService(repo).IssueRefund(user, "bk-1")
		assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
	})

	t.Run("nothing refundable under two hours", func(t *testing.T) {
		repo := new(MockBookingRepo)
		b := paymentBooking(models.BookingCancelled, models.PaymentPaid)
		b.Payment = &models.PaymentRef{IntentID: "pi_123"}
		b.Cancellation = &models.Cancellation{RefundAmount: 0}
		repo.On("GetByID", "bk-1").Return(b, nil)

		_, err := newPaymentService(repo).IssueRefund(user, "bk-1")
		assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
	})

	t.Run("repeat refund is idempotent", func(t *testing.T) {
		repo := new(MockBookingRepo)
		b := paymentBooking(models.BookingCancelled, models.PaymentRefunded)
		b.Payment = &models.PaymentRef{IntentID: "pi_123", RefundID: "re_456"}
		b.Cancellation = &models.Cancellation{RefundAmount: 500}
		repo.On("GetByID", "bk-1").Return(b, nil)

		result, err := newPaymentService(repo).IssueRefund(user, "bk-1")
		assert.NoError(t, err)
		assert.Equal(t, "re_456", result.RefundID)
		assert.Equal(t, "already_processed", result.Status)
	})

	t.Run("strangers cannot refund", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", "bk-1").Return(paymentBooking(models.BookingCancelled, models.PaymentPaid), nil)

		_, err := newPaymentService(repo).IssueRefund(booking.Actor{ID: "other", Role: booking.RoleUser}, "bk-1")
		assert.Equal(t, booking.CodeUnauthorized, booking.CodeOf(err))
	})
}
