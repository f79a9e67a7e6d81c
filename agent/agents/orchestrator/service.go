package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	tripnode "github.com/wayfarer-ai/wayfarer/agent/nodes"
	statex "github.com/wayfarer-ai/wayfarer/agent/state"
)

type Config struct {
	// DefaultStrategy is used when a caller does not pick one.
	DefaultStrategy contractx.RoutingStrategy
}

// Orchestrator drives a full planning run: route the agents, assemble their
// results into an itinerary, persist it, and notify subscribers.
type Orchestrator struct {
	store    statex.Store
	registry contractx.Registry
	router   tripnode.AgentRouter
	notifier contractx.Notifier

	graphRunner compose.Runnable[tripnode.GraphInput, tripnode.GraphOutput]

	defaultStrategy contractx.RoutingStrategy

	now func() time.Time
}

func New(
	store statex.Store,
	registry contractx.Registry,
	router tripnode.AgentRouter,
	notifier contractx.Notifier,
	cfg Config,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if registry == nil {
		return nil, errors.New("agent registry is required")
	}
	if router == nil {
		return nil, errors.New("agent router is required")
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	defaultStrategy := cfg.DefaultStrategy
	if defaultStrategy == "" {
		defaultStrategy = contractx.StrategySequential
	}

	o := &Orchestrator{
		store:           store,
		registry:        registry,
		router:          router,
		notifier:        notifier,
		defaultStrategy: defaultStrategy,
		now:             time.Now,
	}

	graphRunner, err := o.compilePlanTripGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// PlanTrip runs one planning pass under the given strategy and returns the
// persisted itinerary.
func (o *Orchestrator) PlanTrip(
	ctx context.Context,
	prefs contractx.TripPreferences,
	strategy contractx.RoutingStrategy,
) (*statex.TripItinerary, error) {
	if strategy == "" {
		strategy = o.defaultStrategy
	}

	out, err := o.graphRunner.Invoke(ctx, tripnode.GraphInput{
		Preferences: prefs,
		Strategy:    strategy,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("trip_id", out.Itinerary.ID).
		Str("strategy", string(strategy)).
		Float64("total_cost", out.Itinerary.TotalCost).
		Msg("trip planned")

	return out.Itinerary, nil
}

// PlanTripFromPrompt extracts preferences from a natural-language request and
// plans the trip.
func (o *Orchestrator) PlanTripFromPrompt(
	ctx context.Context,
	prompt string,
	strategy contractx.RoutingStrategy,
) (*statex.TripItinerary, error) {
	prefs, err := o.registry.Extractor().Extract(ctx, prompt, o.now())
	if err != nil {
		return nil, err
	}
	return o.PlanTrip(ctx, prefs, strategy)
}

// AdaptiveReplan revises a stored itinerary in response to changed conditions,
// using performance feedback to pick the agents.
func (o *Orchestrator) AdaptiveReplan(
	ctx context.Context,
	tripID string,
	changes map[string]any,
) (*statex.TripItinerary, error) {
	existing, err := o.store.Load(ctx, tripID)
	if err != nil {
		return nil, err
	}

	out, err := o.graphRunner.Invoke(ctx, tripnode.GraphInput{
		Preferences: existing.Preferences,
		Strategy:    contractx.StrategyFeedback,
		Changes:     changes,
		Existing:    existing,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("trip_id", out.Itinerary.ID).
		Int("changes", len(changes)).
		Msg("trip replanned")

	return out.Itinerary, nil
}

type noopNotifier struct{}

func (noopNotifier) PublishUpdate(context.Context, string, any) error {
	return nil
}
