package contract

import (
	"context"
	"time"
)

// Agent formats its inputs into a prompt or API request, calls the external
// service, and returns the structured result.
type Agent interface {
	Run(ctx context.Context, req AgentRequest) (AgentResult, error)
}

// Extractor turns a natural-language trip request into structured preferences.
type Extractor interface {
	Extract(ctx context.Context, prompt string, now time.Time) (TripPreferences, error)
}

// Registry resolves agents by type.
type Registry interface {
	Extractor() Extractor
	Agent(t AgentType) (Agent, bool)
	Types() []AgentType
}

// PlaceFinder resolves destinations and points of interest.
type PlaceFinder interface {
	Geocode(ctx context.Context, location string) (LatLng, error)
	FindPlaces(ctx context.Context, origin LatLng, interests []string) ([]Place, error)
}

// PaymentGateway settles the trip total and reserves inventory.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, amount float64, details map[string]any) (PaymentReceipt, error)
	BookInventory(ctx context.Context, items []ItineraryItem) (InventoryBooking, error)
}

// Notifier publishes real-time trip updates to subscribers.
type Notifier interface {
	PublishUpdate(ctx context.Context, tripID string, update any) error
}

// Translator renders text in a target language.
type Translator interface {
	Translate(ctx context.Context, text string, targetLanguage string) (string, error)
}
