package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	tripnode "github.com/wayfarer-ai/wayfarer/agent/nodes"
)

func (o *Orchestrator) compilePlanTripGraph(
	ctx context.Context,
) (compose.Runnable[tripnode.GraphInput, tripnode.GraphOutput], error) {
	graph := compose.NewGraph[tripnode.GraphInput, tripnode.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in tripnode.GraphInput) (*tripnode.GraphState, error) {
			return tripnode.ValidateRequest(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("route_agents",
		compose.InvokableLambda(func(ctx context.Context, in *tripnode.GraphState) (*tripnode.GraphState, error) {
			return tripnode.RouteAgents(ctx, in, o.router, o.registry)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node route_agents: %w", err)
	}

	if err := graph.AddLambdaNode("assemble_itinerary",
		compose.InvokableLambda(func(ctx context.Context, in *tripnode.GraphState) (*tripnode.GraphState, error) {
			return tripnode.AssembleItinerary(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node assemble_itinerary: %w", err)
	}

	if err := graph.AddLambdaNode("save_itinerary",
		compose.InvokableLambda(func(ctx context.Context, in *tripnode.GraphState) (*tripnode.GraphState, error) {
			return tripnode.SaveItinerary(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_itinerary: %w", err)
	}

	if err := graph.AddLambdaNode("publish_update",
		compose.InvokableLambda(func(ctx context.Context, in *tripnode.GraphState) (*tripnode.GraphState, error) {
			return tripnode.PublishUpdate(ctx, in, o.notifier)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node publish_update: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_itinerary",
		compose.InvokableLambda(func(ctx context.Context, in *tripnode.GraphState) (tripnode.GraphOutput, error) {
			return tripnode.FinalizeItinerary(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_itinerary: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "route_agents"},
		{"route_agents", "assemble_itinerary"},
		{"assemble_itinerary", "save_itinerary"},
		{"save_itinerary", "publish_update"},
		{"publish_update", "finalize_itinerary"},
		{"finalize_itinerary", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.plan_trip"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
