package tripnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

// PublishUpdate notifies subscribers about the new itinerary revision. A
// publish failure does not fail the run; the itinerary is already saved.
func PublishUpdate(ctx context.Context, in *GraphState, notifier contractx.Notifier) (*GraphState, error) {
	if in == nil || in.Itinerary == nil {
		return nil, fmt.Errorf("%w: itinerary is nil", contractx.ErrValidation)
	}

	if err := notifier.PublishUpdate(ctx, in.Itinerary.ID, map[string]any{
		"status":     string(in.Itinerary.Status),
		"total_cost": in.Itinerary.TotalCost,
		"items":      len(in.Itinerary.Items),
		"updated_at": in.Itinerary.UpdatedAt,
	}); err != nil {
		log.Warn().Err(err).Str("trip_id", in.Itinerary.ID).Msg("failed to publish itinerary update")
	}

	return in, nil
}
