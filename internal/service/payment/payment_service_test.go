package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64, seats int) error {
	args := m.Called(ctx, id, seats)
	return args.Error(0)
}

func (m *MockBookingRepository) SetPaymentCompleted(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) SetCheckedIn(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var (
	owner = domain.Caller{ID: 10, Role: domain.RoleUser}
	other = domain.Caller{ID: 11, Role: domain.RoleUser}
	admin = domain.Caller{ID: 1, Role: domain.RoleAdmin}
)

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		UserID:        10,
		FlightID:      3,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		TotalPrice:    400,
	}
}

func TestPaymentService_Process_Success(t *testing.T) {
	payments := &MockPaymentRepository{}
	bookings := &MockBookingRepository{}
	producer := &MockProducer{}
	service := NewPaymentService(payments, bookings, NewStubGateway(), producer, "booking-events")
	ctx := context.Background()

	bookings.On("GetByID", ctx, int64(42)).Return(pendingBooking(), nil).Once()
	payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Payment).ID = 7
	}).Return(nil).Once()
	bookings.On("SetPaymentCompleted", ctx, int64(42)).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", "42", mock.AnythingOfType("kafka.BookingEvent")).Return(nil).Once()

	payment, err := service.Process(ctx, owner, ProcessPaymentInput{BookingID: 42, PaymentMethod: domain.PaymentMethodCreditCard})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), payment.ID)
	assert.Equal(t, 400.0, payment.Amount)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN"))
	payments.AssertExpectations(t)
	bookings.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestPaymentService_Process_MissingBookingID(t *testing.T) {
	service := NewPaymentService(&MockPaymentRepository{}, &MockBookingRepository{}, NewStubGateway(), nil, "")

	_, err := service.Process(context.Background(), owner, ProcessPaymentInput{PaymentMethod: domain.PaymentMethodPaypal})

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "bookingId", ve.Field)
}

func TestPaymentService_Process_InvalidMethod(t *testing.T) {
	service := NewPaymentService(&MockPaymentRepository{}, &MockBookingRepository{}, NewStubGateway(), nil, "")

	_, err := service.Process(context.Background(), owner, ProcessPaymentInput{BookingID: 42, PaymentMethod: "cash"})

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "paymentMethod", ve.Field)
}

func TestPaymentService_Process_BookingNotFound(t *testing.T) {
	bookings := &MockBookingRepository{}
	service := NewPaymentService(&MockPaymentRepository{}, bookings, NewStubGateway(), nil, "")
	ctx := context.Background()

	bookings.On("GetByID", ctx, int64(99)).Return(nil, domain.NotFound("Booking")).Once()

	_, err := service.Process(ctx, owner, ProcessPaymentInput{BookingID: 99, PaymentMethod: domain.PaymentMethodPaypal})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentService_Process_NotOwner(t *testing.T) {
	payments := &MockPaymentRepository{}
	bookings := &MockBookingRepository{}
	service := NewPaymentService(payments, bookings, NewStubGateway(), nil, "")
	ctx := context.Background()

	bookings.On("GetByID", ctx, int64(42)).Return(pendingBooking(), nil).Once()

	_, err := service.Process(ctx, other, ProcessPaymentInput{BookingID: 42, PaymentMethod: domain.PaymentMethodDebitCard})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	payments.AssertNotCalled(t, "Create")
}

func TestPaymentService_Process_AlreadyCompleted(t *testing.T) {
	payments := &MockPaymentRepository{}
	bookings := &MockBookingRepository{}
	service := NewPaymentService(payments, bookings, NewStubGateway(), nil, "")
	ctx := context.Background()

	booking := pendingBooking()
	booking.Status = domain.BookingStatusConfirmed
	booking.PaymentStatus = domain.PaymentStatusCompleted
	bookings.On("GetByID", ctx, int64(42)).Return(booking, nil).Once()

	_, err := service.Process(ctx, owner, ProcessPaymentInput{BookingID: 42, PaymentMethod: domain.PaymentMethodCreditCard})

	assert.ErrorIs(t, err, domain.ErrConflict)
	payments.AssertNotCalled(t, "Create")
	bookings.AssertNotCalled(t, "SetPaymentCompleted")
}

func TestPaymentService_Process_AdminCanPayForAnyBooking(t *testing.T) {
	payments := &MockPaymentRepository{}
	bookings := &MockBookingRepository{}
	service := NewPaymentService(payments, bookings, NewStubGateway(), nil, "")
	ctx := context.Background()

	bookings.On("GetByID", ctx, int64(42)).Return(pendingBooking(), nil).Once()
	payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil).Once()
	bookings.On("SetPaymentCompleted", ctx, int64(42)).Return(nil).Once()

	payment, err := service.Process(ctx, admin, ProcessPaymentInput{BookingID: 42, PaymentMethod: domain.PaymentMethodPaypal})

	assert.NoError(t, err)
	assert.Equal(t, admin.ID, payment.UserID)
}

func TestPaymentService_Get_Owner(t *testing.T) {
	payments := &MockPaymentRepository{}
	service := NewPaymentService(payments, &MockBookingRepository{}, NewStubGateway(), nil, "")
	ctx := context.Background()

	payments.On("GetByID", ctx, int64(7)).Return(&domain.Payment{ID: 7, UserID: 10}, nil).Once()

	payment, err := service.Get(ctx, owner, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), payment.ID)
}

func TestPaymentService_Get_NotOwner(t *testing.T) {
	payments := &MockPaymentRepository{}
	service := NewPaymentService(payments, &MockBookingRepository{}, NewStubGateway(), nil, "")
	ctx := context.Background()

	payments.On("GetByID", ctx, int64(7)).Return(&domain.Payment{ID: 7, UserID: 10}, nil).Once()

	_, err := service.Get(ctx, other, 7)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPaymentService_ListForUser(t *testing.T) {
	payments := &MockPaymentRepository{}
	service := NewPaymentService(payments, &MockBookingRepository{}, NewStubGateway(), nil, "")
	ctx := context.Background()

	payments.On("ListByUser", ctx, int64(10)).Return([]domain.Payment{{ID: 7, UserID: 10}}, nil).Once()

	result, err := service.ListForUser(ctx, owner)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestTransactionID_Format(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := newTransactionID()
		assert.True(t, strings.HasPrefix(id, "TXN"))
		assert.False(t, seen[id])
		seen[id] = true
	}
}
