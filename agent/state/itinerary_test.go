package state

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

func TestNewTripItinerary(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	it := NewTripItinerary(storedPreferences(), now)

	if !strings.HasPrefix(it.ID, "TRIP_") {
		t.Fatalf("unexpected id: %s", it.ID)
	}
	if len(it.ID) != len("TRIP_")+8 {
		t.Fatalf("unexpected id length: %s", it.ID)
	}
	if it.Status != ItineraryDraft {
		t.Fatalf("unexpected status: %s", it.Status)
	}
	if !it.CreatedAt.Equal(now) || !it.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps: %v %v", it.CreatedAt, it.UpdatedAt)
	}
}

func TestTripItineraryValidate(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	valid := NewTripItinerary(storedPreferences(), now)
	valid.Items = []contractx.ItineraryItem{{Day: 1, Activity: "Fort visit", Cost: 500}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	var nilItinerary *TripItinerary
	if err := nilItinerary.Validate(); !errors.Is(err, ErrNilItinerary) {
		t.Fatalf("expected ErrNilItinerary, got %v", err)
	}

	noID := NewTripItinerary(storedPreferences(), now)
	noID.ID = ""
	if err := noID.Validate(); !errors.Is(err, ErrInvalidItinerary) {
		t.Fatalf("expected ErrInvalidItinerary for empty id, got %v", err)
	}

	negativeCost := NewTripItinerary(storedPreferences(), now)
	negativeCost.TotalCost = -1
	if err := negativeCost.Validate(); !errors.Is(err, ErrInvalidItinerary) {
		t.Fatalf("expected ErrInvalidItinerary for negative cost, got %v", err)
	}

	dayOutOfRange := NewTripItinerary(storedPreferences(), now)
	dayOutOfRange.Items = []contractx.ItineraryItem{{Day: 9, Activity: "Late visit", Cost: 100}}
	if err := dayOutOfRange.Validate(); !errors.Is(err, ErrInvalidItinerary) {
		t.Fatalf("expected ErrInvalidItinerary for out-of-range day, got %v", err)
	}
}

func TestItemsByDaySortsWithinDay(t *testing.T) {
	t.Parallel()

	it := NewTripItinerary(storedPreferences(), time.Now().UTC())
	it.Items = []contractx.ItineraryItem{
		{Day: 2, Time: "10:00", Activity: "Museum"},
		{Day: 1, Time: "19:00", Activity: "Dinner"},
		{Day: 1, Time: "09:00", Activity: "Fort visit"},
	}

	byDay := it.ItemsByDay()
	if len(byDay) != 2 {
		t.Fatalf("expected 2 days, got %d", len(byDay))
	}
	day1 := byDay[1]
	if day1[0].Activity != "Fort visit" || day1[1].Activity != "Dinner" {
		t.Fatalf("day 1 not sorted by time: %#v", day1)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	it := NewTripItinerary(storedPreferences(), time.Now().UTC())
	if err := store.Save(ctx, it); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx, it.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.ID != it.ID {
		t.Fatalf("Load().ID = %q, want %q", loaded.ID, it.ID)
	}

	// Returned copies must not alias the stored record.
	loaded.Status = ItineraryBooked
	again, err := store.Load(ctx, it.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if again.Status == ItineraryBooked {
		t.Fatal("store returned an aliased itinerary")
	}

	if err := store.Delete(ctx, it.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(ctx, it.ID); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreRejectsEmptyID(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, err := store.Load(context.Background(), ""); !errors.Is(err, ErrInvalidTripID) {
		t.Fatalf("expected ErrInvalidTripID, got %v", err)
	}
	if err := store.Save(context.Background(), &TripItinerary{}); !errors.Is(err, ErrInvalidTripID) {
		t.Fatalf("expected ErrInvalidTripID, got %v", err)
	}
}
