package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Passenger struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	PassportNumber string `json:"passportNumber"`
}

type Booking struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"user"`
	FlightID      int64          `json:"-"`
	Flight        *FlightSummary `json:"flight,omitempty"`
	Passengers    []Passenger    `json:"passengers"`
	Status        BookingStatus  `json:"status"`
	TotalPrice    float64        `json:"totalPrice"`
	PaymentStatus PaymentStatus  `json:"paymentStatus"`
	CheckInStatus bool           `json:"checkInStatus"`
	CreatedAt     time.Time      `json:"bookingDate"`
	UpdatedAt     time.Time      `json:"-"`
}

// Seats is the number of seats held by the booking.
func (b *Booking) Seats() int {
	return len(b.Passengers)
}

// OwnedBy reports whether the caller may act on the booking: the owner
// or an admin.
func (b *Booking) OwnedBy(userID int64, role Role) bool {
	return b.UserID == userID || role == RoleAdmin
}
