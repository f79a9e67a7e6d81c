package specialist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

// bookingAgent settles the itinerary total through the payment gateway and
// reserves inventory for each item.
type bookingAgent struct {
	gateway contractx.PaymentGateway
	newID   func() string
}

func newBookingAgent(gateway contractx.PaymentGateway) (*bookingAgent, error) {
	if gateway == nil {
		return nil, fmt.Errorf("%w: payment gateway is required", contractx.ErrValidation)
	}
	return &bookingAgent{
		gateway: gateway,
		newID:   func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] },
	}, nil
}

func (a *bookingAgent) Run(ctx context.Context, req contractx.AgentRequest) (contractx.AgentResult, error) {
	items := req.ExistingItems
	var total float64
	if prev, ok := req.Previous[contractx.AgentTypePlanning]; ok && len(prev.Items) > 0 {
		items = prev.Items
		total = prev.TotalCost
	} else {
		for _, item := range items {
			total += item.Cost
		}
	}
	if len(items) == 0 {
		return contractx.AgentResult{}, fmt.Errorf("%w: booking requires a planned itinerary", contractx.ErrValidation)
	}

	receipt, err := a.gateway.ProcessPayment(ctx, total, map[string]any{
		"travelers":   req.Preferences.Travelers,
		"destination": req.Preferences.Location,
	})
	if err != nil {
		return contractx.AgentResult{}, fmt.Errorf("booking payment: %w", err)
	}

	inventory, err := a.gateway.BookInventory(ctx, items)
	if err != nil {
		return contractx.AgentResult{}, fmt.Errorf("booking inventory: %w", err)
	}

	bookingIDs := make([]string, 0, len(items))
	for range items {
		bookingIDs = append(bookingIDs, "BK_"+a.newID())
	}

	return contractx.AgentResult{
		Booking: &contractx.BookingConfirmation{
			Status:           inventory.Status,
			BookingIDs:       bookingIDs,
			Receipt:          receipt,
			Inventory:        inventory,
			ConfirmationSent: true,
		},
	}, nil
}
