package tripnode

import (
	"context"
	"fmt"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	statex "github.com/wayfarer-ai/wayfarer/agent/state"
)

func SaveItinerary(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil || in.Itinerary == nil {
		return nil, fmt.Errorf("%w: itinerary is nil", contractx.ErrValidation)
	}

	in.Itinerary.Touch(in.Now)
	if err := in.Itinerary.Validate(); err != nil {
		return nil, fmt.Errorf("itinerary validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Itinerary); err != nil {
		return nil, err
	}

	return in, nil
}
