package checkin

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/Klimentov1992/flightbooking/internal/kafka"
	"github.com/Klimentov1992/flightbooking/internal/monitoring"
	"github.com/Klimentov1992/flightbooking/internal/repository"
)

type CheckInUseCase interface {
	PerformCheckIn(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error)
	Status(ctx context.Context, caller domain.Caller, bookingID int64) (*CheckInStatus, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CheckInStatus struct {
	CheckInStatus bool                  `json:"checkInStatus"`
	Flight        *domain.FlightSummary `json:"flight"`
	Passengers    []domain.Passenger    `json:"passengers"`
}

type CheckInService struct {
	bookings     repository.BookingRepository
	producer     Producer
	bookingTopic string
	now          func() time.Time
}

type CheckInServiceOption func(*CheckInService)

// WithNow overrides the clock, used by the window tests.
func WithNow(now func() time.Time) CheckInServiceOption {
	return func(s *CheckInService) {
		s.now = now
	}
}

func NewCheckInService(bookings repository.BookingRepository, producer Producer, bookingTopic string, opts ...CheckInServiceOption) *CheckInService {
	service := &CheckInService{
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// PerformCheckIn flips the check-in flag once, gated by payment status
// and the 24-hours-before-departure window. There is no reversal.
func (s *CheckInService) PerformCheckIn(ctx context.Context, caller domain.Caller, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.OwnedBy(caller.ID, caller.Role) {
		return nil, domain.Unauthorized("Not authorized to check-in for this booking")
	}
	if booking.PaymentStatus != domain.PaymentStatusCompleted {
		return nil, domain.Conflict("Payment must be completed before check-in")
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, domain.Conflict("Cannot check-in for a cancelled booking")
	}
	if booking.CheckInStatus {
		return nil, domain.Conflict("Already checked in")
	}
	if booking.Flight == nil {
		return nil, domain.NotFound("Flight")
	}

	hoursUntilDeparture := booking.Flight.DepartureTime.Sub(s.now()).Hours()
	if hoursUntilDeparture > 24 {
		return nil, domain.Conflict("Check-in is only available within 24 hours of departure")
	}
	if hoursUntilDeparture < 0 {
		return nil, domain.Conflict("Cannot check-in after departure")
	}

	if err := s.bookings.SetCheckedIn(ctx, bookingID); err != nil {
		return nil, err
	}
	booking.CheckInStatus = true

	monitoring.CheckInsCompleted.Inc()
	s.publish(ctx, "checkin_completed", booking)
	return booking, nil
}

func (s *CheckInService) Status(ctx context.Context, caller domain.Caller, bookingID int64) (*CheckInStatus, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.OwnedBy(caller.ID, caller.Role) {
		return nil, domain.Unauthorized("Not authorized to access this booking")
	}
	return &CheckInStatus{
		CheckInStatus: booking.CheckInStatus,
		Flight:        booking.Flight,
		Passengers:    booking.Passengers,
	}, nil
}

func (s *CheckInService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEventFrom(eventType, booking)
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", eventType, booking.ID, err)
	}
}

var _ CheckInUseCase = (*CheckInService)(nil)
