package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

const (
	StatusSuccess   = "success"
	StatusConfirmed = "confirmed"
)

// Gateway is a stand-in payment and inventory integration. Real processing is
// out of scope; references are generated locally in the provider's format.
type Gateway struct {
	now   func() time.Time
	newID func() string
}

type Option func(*Gateway)

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		now:   time.Now,
		newID: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

var _ contractx.PaymentGateway = (*Gateway)(nil)

func (g *Gateway) ProcessPayment(ctx context.Context, amount float64, details map[string]any) (contractx.PaymentReceipt, error) {
	if amount <= 0 {
		return contractx.PaymentReceipt{}, fmt.Errorf("%w: payment amount must be positive", contractx.ErrValidation)
	}
	return contractx.PaymentReceipt{
		Status:        StatusSuccess,
		TransactionID: "TXN_" + g.newID(),
		Amount:        amount,
		ProcessedAt:   g.now().UTC(),
	}, nil
}

func (g *Gateway) BookInventory(ctx context.Context, items []contractx.ItineraryItem) (contractx.InventoryBooking, error) {
	if len(items) == 0 {
		return contractx.InventoryBooking{}, fmt.Errorf("%w: no items to book", contractx.ErrValidation)
	}
	return contractx.InventoryBooking{
		Status:        StatusConfirmed,
		Reference:     "EMT_" + g.newID(),
		TicketsIssued: len(items),
	}, nil
}
