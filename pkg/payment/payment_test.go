package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

func TestProcessPayment(t *testing.T) {
	t.Parallel()

	processed := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	gateway := NewGateway(WithClock(func() time.Time { return processed }))

	receipt, err := gateway.ProcessPayment(context.Background(), 2500, map[string]any{"travelers": 2})
	if err != nil {
		t.Fatalf("ProcessPayment() error = %v", err)
	}

	if receipt.Status != StatusSuccess {
		t.Fatalf("unexpected status: %s", receipt.Status)
	}
	if !strings.HasPrefix(receipt.TransactionID, "TXN_") {
		t.Fatalf("unexpected transaction id: %s", receipt.TransactionID)
	}
	if receipt.Amount != 2500 {
		t.Fatalf("unexpected amount: %f", receipt.Amount)
	}
	if !receipt.ProcessedAt.Equal(processed) {
		t.Fatalf("unexpected processed time: %v", receipt.ProcessedAt)
	}
}

func TestProcessPaymentRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	gateway := NewGateway()
	_, err := gateway.ProcessPayment(context.Background(), 0, nil)
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBookInventory(t *testing.T) {
	t.Parallel()

	gateway := NewGateway()
	items := []contractx.ItineraryItem{
		{Day: 1, Activity: "Fort visit", Cost: 500},
		{Day: 2, Activity: "Night market", Cost: 1500},
	}

	booking, err := gateway.BookInventory(context.Background(), items)
	if err != nil {
		t.Fatalf("BookInventory() error = %v", err)
	}
	if booking.Status != StatusConfirmed {
		t.Fatalf("unexpected status: %s", booking.Status)
	}
	if !strings.HasPrefix(booking.Reference, "EMT_") {
		t.Fatalf("unexpected reference: %s", booking.Reference)
	}
	if booking.TicketsIssued != 2 {
		t.Fatalf("unexpected tickets: %d", booking.TicketsIssued)
	}
}

func TestBookInventoryRejectsEmptyItems(t *testing.T) {
	t.Parallel()

	gateway := NewGateway()
	if _, err := gateway.BookInventory(context.Background(), nil); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
