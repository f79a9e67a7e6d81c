package tripnode

import (
	"errors"
	"fmt"
	"time"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	routingx "github.com/wayfarer-ai/wayfarer/agent/routing"
	statex "github.com/wayfarer-ai/wayfarer/agent/state"
)

var (
	ErrInvalidPreferences = errors.New("trip preferences are invalid")
	ErrNoItinerary        = errors.New("no itinerary produced")
)

type GraphInput struct {
	Preferences contractx.TripPreferences
	Strategy    contractx.RoutingStrategy
	Query       string
	Changes     map[string]any
	Existing    *statex.TripItinerary
}

type GraphOutput struct {
	Itinerary *statex.TripItinerary
}

type GraphState struct {
	Preferences contractx.TripPreferences
	Strategy    contractx.RoutingStrategy
	Query       string
	Changes     map[string]any
	Existing    *statex.TripItinerary
	Now         time.Time

	Results   routingx.Results
	Itinerary *statex.TripItinerary
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	if err := in.Preferences.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreferences, err)
	}
	if _, err := contractx.ParseRoutingStrategy(string(in.Strategy)); err != nil {
		return nil, err
	}

	return &GraphState{
		Preferences: in.Preferences,
		Strategy:    in.Strategy,
		Query:       in.Query,
		Changes:     in.Changes,
		Existing:    in.Existing,
		Now:         nowFn().UTC(),
	}, nil
}
