package booking

import (
	"context"
	"log"
	"strconv"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/Klimentov1992/flightbooking/internal/kafka"
	"github.com/Klimentov1992/flightbooking/internal/monitoring"
	"github.com/Klimentov1992/flightbooking/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, caller domain.Caller, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, caller domain.Caller) ([]domain.Booking, error)
	Cancel(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	FlightID   int64              `json:"flight"`
	Passengers []domain.Passenger `json:"passengers"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, caller domain.Caller, input CreateBookingInput) (*domain.Booking, error) {
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	if len(input.Passengers) == 0 {
		return nil, domain.Validation("passengers", "Please add at least one passenger")
	}
	for _, p := range input.Passengers {
		if p.Name == "" {
			return nil, domain.Validation("passengers.name", "Please add passenger name")
		}
		if p.Email == "" {
			return nil, domain.Validation("passengers.email", "Please add passenger email")
		}
		if p.PassportNumber == "" {
			return nil, domain.Validation("passengers.passportNumber", "Please add passport number")
		}
	}

	requested := len(input.Passengers)
	if !flight.HasSeats(requested) {
		return nil, domain.Conflict("Not enough seats available")
	}

	booking := &domain.Booking{
		UserID:     caller.ID,
		FlightID:   flight.ID,
		Passengers: input.Passengers,
		TotalPrice: flight.Price * float64(requested),
	}

	// Insert and seat decrement run in one transaction; a stale seat
	// read above still surfaces as a conflict here.
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	booking.Flight = flight.Summary()

	s.invalidateFlights(ctx)
	monitoring.BookingsCreated.Inc()
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.OwnedBy(caller.ID, caller.Role) {
		return nil, domain.Unauthorized("Not authorized to access this booking")
	}
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, caller domain.Caller) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, caller.ID)
}

func (s *BookingService) Cancel(ctx context.Context, caller domain.Caller, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.OwnedBy(caller.ID, caller.Role) {
		return nil, domain.Unauthorized("Not authorized to cancel this booking")
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, domain.Conflict("Booking is already cancelled")
	}

	// Status flip and seat restore run in one transaction. Payment
	// status is left untouched.
	if err := s.bookings.Cancel(ctx, id, booking.Seats()); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusCancelled

	s.invalidateFlights(ctx)
	monitoring.BookingsCancelled.Inc()
	s.publish(ctx, "booking_cancelled", booking)
	return booking, nil
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEventFrom(eventType, booking)
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", eventType, booking.ID, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %d: %v", eventType, booking.ID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
