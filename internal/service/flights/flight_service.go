package flights

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/Klimentov1992/flightbooking/internal/repository"
)

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// SearchInput filters are ANDed; empty fields are ignored.
// DepartureDate is a calendar day in "2006-01-02" form, matched against
// the server's local time zone.
type SearchInput struct {
	DepartureCity string
	ArrivalCity   string
	DepartureDate string
}

type CreateFlightInput struct {
	FlightNumber   string    `json:"flightNumber"`
	Airline        string    `json:"airline"`
	DepartureCity  string    `json:"departureCity"`
	ArrivalCity    string    `json:"arrivalCity"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"availableSeats"`
}

// UpdateFlightInput carries a partial record; nil fields keep their
// current value. The merged record is re-validated as a whole.
type UpdateFlightInput struct {
	FlightNumber   *string    `json:"flightNumber"`
	Airline        *string    `json:"airline"`
	DepartureCity  *string    `json:"departureCity"`
	ArrivalCity    *string    `json:"arrivalCity"`
	DepartureTime  *time.Time `json:"departureTime"`
	ArrivalTime    *time.Time `json:"arrivalTime"`
	Price          *float64   `json:"price"`
	AvailableSeats *int       `json:"availableSeats"`
}

type FlightService struct {
	repo     repository.FlightRepository
	cache    Cache
	cacheTTL time.Duration
}

func NewFlightService(repo repository.FlightRepository, cache Cache, cacheTTL time.Duration) *FlightService {
	return &FlightService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *FlightService) Search(ctx context.Context, input SearchInput) ([]domain.Flight, error) {
	filter := repository.FlightFilter{
		DepartureCity: strings.TrimSpace(input.DepartureCity),
		ArrivalCity:   strings.TrimSpace(input.ArrivalCity),
	}
	if input.DepartureDate != "" {
		day, err := time.ParseInLocation("2006-01-02", input.DepartureDate, time.Local)
		if err != nil {
			return nil, domain.Validation("departureDate", "Invalid departure date, expected YYYY-MM-DD")
		}
		filter.DepartureFrom = day
		filter.DepartureUntil = day.AddDate(0, 0, 1)
	}

	unfiltered := filter.DepartureCity == "" && filter.ArrivalCity == "" && filter.DepartureFrom.IsZero()

	// Only the full catalog is cached; filtered searches hit the store.
	if unfiltered && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if unfiltered && s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	flight := &domain.Flight{
		FlightNumber:   strings.TrimSpace(input.FlightNumber),
		Airline:        input.Airline,
		DepartureCity:  input.DepartureCity,
		ArrivalCity:    input.ArrivalCity,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		Price:          input.Price,
		AvailableSeats: input.AvailableSeats,
	}
	if err := s.validate(ctx, flight); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FlightNumber != nil {
		flight.FlightNumber = strings.TrimSpace(*input.FlightNumber)
	}
	if input.Airline != nil {
		flight.Airline = *input.Airline
	}
	if input.DepartureCity != nil {
		flight.DepartureCity = *input.DepartureCity
	}
	if input.ArrivalCity != nil {
		flight.ArrivalCity = *input.ArrivalCity
	}
	if input.DepartureTime != nil {
		flight.DepartureTime = *input.DepartureTime
	}
	if input.ArrivalTime != nil {
		flight.ArrivalTime = *input.ArrivalTime
	}
	if input.Price != nil {
		flight.Price = *input.Price
	}
	if input.AvailableSeats != nil {
		flight.AvailableSeats = *input.AvailableSeats
	}

	if err := s.validate(ctx, flight); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// validate checks the whole record in a stable field order so the first
// violation reported is reproducible.
func (s *FlightService) validate(ctx context.Context, f *domain.Flight) error {
	if f.FlightNumber == "" {
		return domain.Validation("flightNumber", "Please add a flight number")
	}
	if f.Airline == "" {
		return domain.Validation("airline", "Please add airline name")
	}
	if f.DepartureCity == "" {
		return domain.Validation("departureCity", "Please add departure city")
	}
	if f.ArrivalCity == "" {
		return domain.Validation("arrivalCity", "Please add arrival city")
	}
	if f.DepartureTime.IsZero() {
		return domain.Validation("departureTime", "Please add departure time")
	}
	if f.ArrivalTime.IsZero() {
		return domain.Validation("arrivalTime", "Please add arrival time")
	}
	if !f.ArrivalTime.After(f.DepartureTime) {
		return domain.Validation("arrivalTime", "Arrival time must be after departure time")
	}
	if f.Price <= 0 {
		return domain.Validation("price", "Price must be positive")
	}
	if f.AvailableSeats < 0 {
		return domain.Validation("availableSeats", "Available seats cannot be negative")
	}

	existing, err := s.repo.GetByNumber(ctx, f.FlightNumber)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil && existing.ID != f.ID {
		return domain.Validation("flightNumber", "Flight number already exists")
	}
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
