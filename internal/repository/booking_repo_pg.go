package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// Create inserts the booking and decrements the flight's seat count
	// in a single transaction. Returns domain.ErrConflict when the
	// flight no longer has enough seats.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	// Cancel flips the booking to cancelled and restores seats to its
	// flight in a single transaction. Returns domain.ErrConflict when
	// the booking is already cancelled.
	Cancel(ctx context.Context, id int64, seats int) error
	SetPaymentCompleted(ctx context.Context, id int64) error
	SetCheckedIn(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	passengers, err := json.Marshal(booking.Passengers)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1 AND available_seats >= $2`,
		booking.FlightID, booking.Seats())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.Conflict("Not enough seats available")
	}

	booking.Status = domain.BookingStatusPending
	booking.PaymentStatus = domain.PaymentStatusPending
	booking.CheckInStatus = false
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, passengers, status, total_price, payment_status, check_in_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		booking.UserID, booking.FlightID, passengers, booking.Status, booking.TotalPrice, booking.PaymentStatus, booking.CheckInStatus).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const bookingSelect = `SELECT b.id, b.user_id, b.flight_id, b.passengers, b.status, b.total_price, b.payment_status, b.check_in_status, b.created_at, b.updated_at,
	f.id, f.flight_number, f.airline, f.departure_city, f.arrival_city, f.departure_time, f.arrival_time
	FROM bookings b LEFT JOIN flights f ON f.id = b.flight_id`

// scanBookingRow handles the LEFT JOIN: flight columns are NULL when
// the referenced flight was deleted.
func scanBookingRow(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var passengers []byte
	var fID *int64
	var fNumber, fAirline, fFrom, fTo *string
	var fDep, fArr *time.Time

	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &passengers, &b.Status, &b.TotalPrice, &b.PaymentStatus, &b.CheckInStatus, &b.CreatedAt, &b.UpdatedAt,
		&fID, &fNumber, &fAirline, &fFrom, &fTo, &fDep, &fArr); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
		return nil, err
	}
	if fID != nil {
		b.Flight = &domain.FlightSummary{
			ID:            *fID,
			FlightNumber:  *fNumber,
			Airline:       *fAirline,
			DepartureCity: *fFrom,
			ArrivalCity:   *fTo,
			DepartureTime: *fDep,
			ArrivalTime:   *fArr,
		}
	}
	return &b, nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBookingRow(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("Booking")
	}
	return b, err
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, bookingSelect+` WHERE b.user_id=$1 ORDER BY b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Cancel(ctx context.Context, id int64, seats int) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var flightID int64
	err = tx.QueryRow(ctx, `UPDATE bookings SET status=$2, updated_at=now() WHERE id=$1 AND status <> $2 RETURNING flight_id`,
		id, domain.BookingStatusCancelled).Scan(&flightID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Conflict("Booking is already cancelled")
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + $2, updated_at = now() WHERE id=$1`, flightID, seats); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) SetPaymentCompleted(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `UPDATE bookings SET payment_status=$2, status=$3, updated_at=now() WHERE id=$1`,
		id, domain.PaymentStatusCompleted, domain.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFound("Booking")
	}
	return nil
}

func (r *PGBookingRepository) SetCheckedIn(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `UPDATE bookings SET check_in_status=true, updated_at=now() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFound("Booking")
	}
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
