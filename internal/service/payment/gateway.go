package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/google/uuid"
)

// Gateway is the seam for a real payment provider.
type Gateway interface {
	Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (*ChargeResult, error)
}

type ChargeResult struct {
	TransactionID string
	Status        domain.PaymentStatus
}

// StubGateway approves every charge. Kept behind the Gateway interface
// so a real provider can replace it without touching the service.
type StubGateway struct{}

func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

func (g *StubGateway) Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (*ChargeResult, error) {
	return &ChargeResult{
		TransactionID: newTransactionID(),
		Status:        domain.PaymentStatusCompleted,
	}, nil
}

// newTransactionID is unique per call: millisecond timestamp plus a
// random suffix.
func newTransactionID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), suffix)
}

var _ Gateway = (*StubGateway)(nil)
