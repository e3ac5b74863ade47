package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightFilter narrows Search results. Zero values mean "no filter".
// DepartureFrom/DepartureUntil bound the departure timestamp as a
// half-open interval.
type FlightFilter struct {
	DepartureCity  string
	ArrivalCity    string
	DepartureFrom  time.Time
	DepartureUntil time.Time
}

type FlightRepository interface {
	Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline, departure_city, arrival_city, departure_time, arrival_time, price, available_seats, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.Price, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights`
	var conds []string
	var args []any

	if filter.DepartureCity != "" {
		args = append(args, filter.DepartureCity)
		conds = append(conds, fmt.Sprintf("departure_city = $%d", len(args)))
	}
	if filter.ArrivalCity != "" {
		args = append(args, filter.ArrivalCity)
		conds = append(conds, fmt.Sprintf("arrival_city = $%d", len(args)))
	}
	if !filter.DepartureFrom.IsZero() {
		args = append(args, filter.DepartureFrom)
		conds = append(conds, fmt.Sprintf("departure_time >= $%d", len(args)))
	}
	if !filter.DepartureUntil.IsZero() {
		args = append(args, filter.DepartureUntil)
		conds = append(conds, fmt.Sprintf("departure_time < $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime, &f.ArrivalTime, &f.Price, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("Flight")
	}
	return f, err
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, flightNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("Flight")
	}
	return f, err
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, departure_city, arrival_city, departure_time, arrival_time, price, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Airline, flight.DepartureCity, flight.ArrivalCity, flight.DepartureTime, flight.ArrivalTime, flight.Price, flight.AvailableSeats).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `UPDATE flights SET flight_number=$2, airline=$3, departure_city=$4, arrival_city=$5, departure_time=$6, arrival_time=$7, price=$8, available_seats=$9, updated_at=now()
		WHERE id=$1
		RETURNING updated_at`,
		flight.ID, flight.FlightNumber, flight.Airline, flight.DepartureCity, flight.ArrivalCity, flight.DepartureTime, flight.ArrivalTime, flight.Price, flight.AvailableSeats).
		Scan(&flight.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound("Flight")
	}
	return err
}

// Delete removes the flight record only. Existing bookings keep their
// flight reference; dangling references are tolerated.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFound("Flight")
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
