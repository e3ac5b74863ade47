package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodPaypal     PaymentMethod = "paypal"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPaypal:
		return true
	}
	return false
}

// BookingSummary is the subset of booking fields joined into payment
// responses.
type BookingSummary struct {
	ID         int64         `json:"id"`
	Status     BookingStatus `json:"status"`
	TotalPrice float64       `json:"totalPrice"`
	Passengers []Passenger   `json:"passengers,omitempty"`
}

// Payment is immutable once created; there are no update or delete
// operations on it.
type Payment struct {
	ID            int64           `json:"id"`
	BookingID     int64           `json:"-"`
	Booking       *BookingSummary `json:"booking,omitempty"`
	UserID        int64           `json:"user"`
	Amount        float64         `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Status        PaymentStatus   `json:"status"`
	TransactionID string          `json:"transactionId"`
	CreatedAt     time.Time       `json:"paymentDate"`
}
