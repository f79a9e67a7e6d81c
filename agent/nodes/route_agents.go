package tripnode

import (
	"context"
	"fmt"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	routingx "github.com/wayfarer-ai/wayfarer/agent/routing"
)

// AgentRouter dispatches a routing pass across the registered agents.
type AgentRouter interface {
	Route(
		ctx context.Context,
		strategy contractx.RoutingStrategy,
		req contractx.AgentRequest,
		reg contractx.Registry,
	) (routingx.Results, error)
}

func RouteAgents(
	ctx context.Context,
	in *GraphState,
	router AgentRouter,
	registry contractx.Registry,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	req := contractx.AgentRequest{
		Query:       in.Query,
		Preferences: in.Preferences,
		Changes:     in.Changes,
	}
	if in.Existing != nil {
		req.ExistingItems = in.Existing.Items
	}

	results, err := router.Route(ctx, in.Strategy, req, registry)
	if err != nil {
		return nil, err
	}

	in.Results = results
	return in, nil
}
