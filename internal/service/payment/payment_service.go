package payment

import (
	"context"
	"log"
	"strconv"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/Klimentov1992/flightbooking/internal/kafka"
	"github.com/Klimentov1992/flightbooking/internal/monitoring"
	"github.com/Klimentov1992/flightbooking/internal/repository"
)

type PaymentUseCase interface {
	Process(ctx context.Context, caller domain.Caller, input ProcessPaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Payment, error)
	ListForUser(ctx context.Context, caller domain.Caller) ([]domain.Payment, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ProcessPaymentInput struct {
	BookingID     int64                `json:"bookingId"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
}

type PaymentService struct {
	payments     repository.PaymentRepository
	bookings     repository.BookingRepository
	gateway      Gateway
	producer     Producer
	bookingTopic string
}

func NewPaymentService(
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	gateway Gateway,
	producer Producer,
	bookingTopic string,
) *PaymentService {
	return &PaymentService{
		payments:     payments,
		bookings:     bookings,
		gateway:      gateway,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
}

func (s *PaymentService) Process(ctx context.Context, caller domain.Caller, input ProcessPaymentInput) (*domain.Payment, error) {
	if input.BookingID == 0 {
		return nil, domain.Validation("bookingId", "Please add a booking id")
	}
	if !domain.ValidPaymentMethod(input.PaymentMethod) {
		return nil, domain.Validation("paymentMethod", "Payment method must be credit_card, debit_card or paypal")
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if !booking.OwnedBy(caller.ID, caller.Role) {
		return nil, domain.Unauthorized("Not authorized to make payment for this booking")
	}
	if booking.PaymentStatus == domain.PaymentStatusCompleted {
		return nil, domain.Conflict("Payment is already completed for this booking")
	}

	// The gateway never declines; see StubGateway.
	charge, err := s.gateway.Charge(ctx, booking.TotalPrice, input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		BookingID:     booking.ID,
		UserID:        caller.ID,
		Amount:        booking.TotalPrice,
		PaymentMethod: input.PaymentMethod,
		Status:        domain.PaymentStatusCompleted,
		TransactionID: charge.TransactionID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.bookings.SetPaymentCompleted(ctx, booking.ID); err != nil {
		return nil, err
	}
	booking.PaymentStatus = domain.PaymentStatusCompleted
	booking.Status = domain.BookingStatusConfirmed

	monitoring.PaymentsProcessed.Inc()
	s.publish(ctx, "payment_completed", booking)
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.UserID != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, domain.Unauthorized("Not authorized to access this payment")
	}
	return payment, nil
}

func (s *PaymentService) ListForUser(ctx context.Context, caller domain.Caller) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, caller.ID)
}

func (s *PaymentService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEventFrom(eventType, booking)
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", eventType, booking.ID, err)
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
