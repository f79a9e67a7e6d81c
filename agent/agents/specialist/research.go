package specialist

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

// researchAgent resolves the destination and gathers points of interest
// matching the traveler's interests. It is the only agent that talks to the
// maps backend.
type researchAgent struct {
	places contractx.PlaceFinder
}

func newResearchAgent(places contractx.PlaceFinder) (*researchAgent, error) {
	if places == nil {
		return nil, fmt.Errorf("%w: place finder is required", contractx.ErrValidation)
	}
	return &researchAgent{places: places}, nil
}

func (a *researchAgent) Run(ctx context.Context, req contractx.AgentRequest) (contractx.AgentResult, error) {
	location := strings.TrimSpace(req.Preferences.Location)
	if location == "" {
		return contractx.AgentResult{}, fmt.Errorf("%w: destination is required for research", contractx.ErrValidation)
	}

	origin, err := a.places.Geocode(ctx, location)
	if err != nil {
		return contractx.AgentResult{}, fmt.Errorf("research geocode: %w", err)
	}

	interests := req.Preferences.Interests
	if len(interests) == 0 {
		interests = defaultInterests
	}

	found, err := a.places.FindPlaces(ctx, origin, interests)
	if err != nil {
		return contractx.AgentResult{}, fmt.Errorf("research places: %w", err)
	}

	return contractx.AgentResult{Places: found}, nil
}
