package tripnode

import (
	"fmt"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	statex "github.com/wayfarer-ai/wayfarer/agent/state"
)

// AssembleItinerary merges agent results into a single itinerary. The final
// cost is the planned total minus any estimated savings from optimization,
// floored at zero. Replans keep the original identity and move the status to
// updated.
func AssembleItinerary(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	itinerary := statex.NewTripItinerary(in.Preferences, in.Now)
	if in.Existing != nil {
		itinerary.ID = in.Existing.ID
		itinerary.CreatedAt = in.Existing.CreatedAt
		itinerary.Items = in.Existing.Items
		itinerary.TotalCost = in.Existing.TotalCost
	}

	if planned, ok := in.Results[contractx.AgentTypePlanning]; ok && len(planned.Items) > 0 {
		itinerary.Items = planned.Items
		itinerary.TotalCost = planned.TotalCost
		itinerary.Status = statex.ItineraryPlanned
	}

	if optimized, ok := in.Results[contractx.AgentTypeOptimization]; ok {
		itinerary.Suggestions = optimized.Suggestions
		itinerary.TotalCost -= optimized.EstimatedSavings
		if itinerary.TotalCost < 0 {
			itinerary.TotalCost = 0
		}
	}

	if monitored, ok := in.Results[contractx.AgentTypeMonitoring]; ok && monitored.Conditions != nil {
		if summary := monitored.Conditions.Summary; summary != "" {
			itinerary.Suggestions = append(itinerary.Suggestions, summary)
		}
	}

	if booked, ok := in.Results[contractx.AgentTypeBooking]; ok && booked.Booking != nil {
		itinerary.Status = statex.ItineraryBooked
	}

	if in.Existing != nil {
		itinerary.Status = statex.ItineraryUpdated
	}

	in.Itinerary = itinerary
	return in, nil
}
