package specialist

import (
	"context"
	"encoding/json"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

// planningAgent turns researched points of interest into a day-by-day
// itinerary through a structured LLM graph.
type planningAgent struct {
	runner compose.Runnable[map[string]any, planningLLMOutput]
}

type planningLLMOutput struct {
	Itinerary []contractx.ItineraryItem `json:"itinerary"`
}

func newPlanningAgent(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*planningAgent, error) {
	runner, err := compilePlanningGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile planning graph: %v", contractx.ErrModelInvoke, err)
	}
	return &planningAgent{runner: runner}, nil
}

func (a *planningAgent) Run(ctx context.Context, req contractx.AgentRequest) (contractx.AgentResult, error) {
	if err := req.Preferences.Validate(); err != nil {
		return contractx.AgentResult{}, err
	}

	var pois []contractx.Place
	if prev, ok := req.Previous[contractx.AgentTypeResearch]; ok {
		pois = prev.Places
	}

	payload := map[string]any{
		"preferences":        req.Preferences,
		"points_of_interest": pois,
	}
	if len(req.Changes) > 0 {
		payload["requested_changes"] = req.Changes
	}
	if len(req.ExistingItems) > 0 {
		payload["existing_itinerary"] = req.ExistingItems
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return contractx.AgentResult{}, fmt.Errorf("%w: marshal planning payload: %v", contractx.ErrValidation, err)
	}

	out, err := a.runner.Invoke(ctx, map[string]any{
		"input": string(inputBytes),
	})
	if err != nil {
		return contractx.AgentResult{}, fmt.Errorf("%w: planning invoke: %v", contractx.ErrModelInvoke, err)
	}

	if len(out.Itinerary) == 0 {
		return contractx.AgentResult{}, fmt.Errorf("%w: planning returned an empty itinerary", contractx.ErrSchemaViolation)
	}

	var total float64
	for i := range out.Itinerary {
		item := &out.Itinerary[i]
		if item.Day < 1 {
			item.Day = 1
		}
		if item.Day > req.Preferences.DurationDays {
			item.Day = req.Preferences.DurationDays
		}
		if item.Cost < 0 {
			return contractx.AgentResult{}, fmt.Errorf("%w: planning returned a negative cost", contractx.ErrSchemaViolation)
		}
		total += item.Cost
	}

	return contractx.AgentResult{
		Items:     out.Itinerary,
		TotalCost: total,
	}, nil
}
