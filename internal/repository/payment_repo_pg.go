package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.QueryRow(ctx, `INSERT INTO payments (booking_id, user_id, amount, payment_method, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		payment.BookingID, payment.UserID, payment.Amount, payment.PaymentMethod, payment.Status, payment.TransactionID).
		Scan(&payment.ID, &payment.CreatedAt)
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT p.id, p.booking_id, p.user_id, p.amount, p.payment_method, p.status, p.transaction_id, p.created_at,
		b.status, b.total_price, b.passengers
		FROM payments p JOIN bookings b ON b.id = p.booking_id WHERE p.id=$1`, id)

	var p domain.Payment
	var summary domain.BookingSummary
	var passengers []byte
	err := row.Scan(&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.PaymentMethod, &p.Status, &p.TransactionID, &p.CreatedAt,
		&summary.Status, &summary.TotalPrice, &passengers)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("Payment")
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(passengers, &summary.Passengers); err != nil {
		return nil, err
	}
	summary.ID = p.BookingID
	p.Booking = &summary
	return &p, nil
}

func (r *PGPaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT p.id, p.booking_id, p.user_id, p.amount, p.payment_method, p.status, p.transaction_id, p.created_at,
		b.status, b.total_price
		FROM payments p JOIN bookings b ON b.id = p.booking_id WHERE p.user_id=$1 ORDER BY p.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		var summary domain.BookingSummary
		if err := rows.Scan(&p.ID, &p.BookingID, &p.UserID, &p.Amount, &p.PaymentMethod, &p.Status, &p.TransactionID, &p.CreatedAt,
			&summary.Status, &summary.TotalPrice); err != nil {
			return nil, err
		}
		summary.ID = p.BookingID
		p.Booking = &summary
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
