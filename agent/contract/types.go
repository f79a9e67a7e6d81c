package contract

import (
	"fmt"
	"strings"
	"time"
)

type AgentType string

const (
	AgentTypeOrchestrator AgentType = "orchestrator"
	AgentTypeResearch     AgentType = "research"
	AgentTypePlanning     AgentType = "planning"
	AgentTypeBooking      AgentType = "booking"
	AgentTypeOptimization AgentType = "optimization"
	AgentTypeMonitoring   AgentType = "monitoring"
)

type RoutingStrategy string

const (
	StrategySequential  RoutingStrategy = "sequential"
	StrategyParallel    RoutingStrategy = "parallel"
	StrategyConditional RoutingStrategy = "conditional"
	StrategySemantic    RoutingStrategy = "semantic"
	StrategyPriority    RoutingStrategy = "priority"
	StrategyFeedback    RoutingStrategy = "feedback"
)

// ParseRoutingStrategy maps a label to a known strategy.
func ParseRoutingStrategy(s string) (RoutingStrategy, error) {
	switch RoutingStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategySequential:
		return StrategySequential, nil
	case StrategyParallel:
		return StrategyParallel, nil
	case StrategyConditional:
		return StrategyConditional, nil
	case StrategySemantic:
		return StrategySemantic, nil
	case StrategyPriority:
		return StrategyPriority, nil
	case StrategyFeedback:
		return StrategyFeedback, nil
	default:
		return "", fmt.Errorf("%w: unknown routing strategy %q", ErrValidation, s)
	}
}

// TripPreferences is the caller-supplied trip configuration. It is constructed
// once, passed through the pipeline, and never mutated by agents.
type TripPreferences struct {
	Budget              float64   `json:"budget"`
	DurationDays        int       `json:"duration_days"`
	Interests           []string  `json:"interests"`
	Location            string    `json:"location"`
	StartDate           time.Time `json:"start_date"`
	Travelers           int       `json:"travelers"`
	AccommodationType   string    `json:"accommodation_type,omitempty"`
	TransportPreference string    `json:"transport_preference,omitempty"`
	Language            string    `json:"language,omitempty"`
}

func (p TripPreferences) Validate() error {
	if strings.TrimSpace(p.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if p.DurationDays < 1 {
		return fmt.Errorf("%w: duration must be at least one day", ErrValidation)
	}
	if p.Travelers < 1 {
		return fmt.Errorf("%w: at least one traveler is required", ErrValidation)
	}
	if p.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrValidation)
	}
	return nil
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a point of interest returned by the research agent.
type Place struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Address  string  `json:"address,omitempty"`
	Rating   float32 `json:"rating,omitempty"`
	Position LatLng  `json:"position"`
}

type ItineraryItem struct {
	Day           int     `json:"day"`
	Time          string  `json:"time"`
	Activity      string  `json:"activity"`
	Location      string  `json:"location"`
	Cost          float64 `json:"cost"`
	DurationHours float64 `json:"duration_hours"`
	Category      string  `json:"category"`
	BookingURL    string  `json:"booking_url,omitempty"`
	Position      *LatLng `json:"position,omitempty"`
}

// AgentRequest carries everything an agent may need for a single run.
// Previous holds the results of agents that already ran in this routing pass.
type AgentRequest struct {
	Query         string                    `json:"query,omitempty"`
	Preferences   TripPreferences           `json:"preferences"`
	Previous      map[AgentType]AgentResult `json:"previous,omitempty"`
	Changes       map[string]any            `json:"changes,omitempty"`
	ExistingItems []ItineraryItem           `json:"existing_items,omitempty"`
	// InfoComplete marks destination research as already gathered; priority
	// routing boosts the research agent while it is unset.
	InfoComplete bool `json:"info_complete,omitempty"`
	ReadyToBook  bool `json:"ready_to_book,omitempty"`
}

// AgentResult is the union of everything an agent can produce. Each agent
// fills only its own section; Error carries per-agent failures when the
// routing strategy tolerates them (parallel fan-out).
type AgentResult struct {
	Places           []Place              `json:"places,omitempty"`
	Items            []ItineraryItem      `json:"items,omitempty"`
	TotalCost        float64              `json:"total_cost,omitempty"`
	Suggestions      []string             `json:"suggestions,omitempty"`
	EstimatedSavings float64              `json:"estimated_savings,omitempty"`
	Booking          *BookingConfirmation `json:"booking,omitempty"`
	Conditions       *TripConditions      `json:"conditions,omitempty"`
	Error            string               `json:"error,omitempty"`
}

type BookingConfirmation struct {
	Status           string           `json:"status"`
	BookingIDs       []string         `json:"booking_ids"`
	Receipt          PaymentReceipt   `json:"receipt"`
	Inventory        InventoryBooking `json:"inventory"`
	ConfirmationSent bool             `json:"confirmation_sent"`
}

type PaymentReceipt struct {
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	ProcessedAt   time.Time `json:"processed_at"`
}

type InventoryBooking struct {
	Status        string `json:"status"`
	Reference     string `json:"reference"`
	TicketsIssued int    `json:"tickets_issued"`
}

type TripConditions struct {
	WeatherAlert   bool      `json:"weather_alert"`
	TrafficDelay   bool      `json:"traffic_delay"`
	BookingChanges bool      `json:"booking_changes"`
	Summary        string    `json:"summary,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}
