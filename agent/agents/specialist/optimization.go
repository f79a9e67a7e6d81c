package specialist

import (
	"context"
	"encoding/json"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

// optimizationAgent reviews a planned itinerary for cost and experience
// improvements.
type optimizationAgent struct {
	runner compose.Runnable[map[string]any, optimizationLLMOutput]
}

type optimizationLLMOutput struct {
	Suggestions      []string `json:"suggestions"`
	EstimatedSavings float64  `json:"estimated_savings"`
}

func newOptimizationAgent(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*optimizationAgent, error) {
	runner, err := compileOptimizationGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile optimization graph: %v", contractx.ErrModelInvoke, err)
	}
	return &optimizationAgent{runner: runner}, nil
}

func (a *optimizationAgent) Run(ctx context.Context, req contractx.AgentRequest) (contractx.AgentResult, error) {
	prev, ok := req.Previous[contractx.AgentTypePlanning]
	if !ok || len(prev.Items) == 0 {
		return contractx.AgentResult{}, fmt.Errorf("%w: optimization requires a planned itinerary", contractx.ErrValidation)
	}

	payload := map[string]any{
		"preferences": req.Preferences,
		"itinerary":   prev.Items,
		"total_cost":  prev.TotalCost,
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return contractx.AgentResult{}, fmt.Errorf("%w: marshal optimization payload: %v", contractx.ErrValidation, err)
	}

	out, err := a.runner.Invoke(ctx, map[string]any{
		"input": string(inputBytes),
	})
	if err != nil {
		return contractx.AgentResult{}, fmt.Errorf("%w: optimization invoke: %v", contractx.ErrModelInvoke, err)
	}

	savings := out.EstimatedSavings
	if savings < 0 {
		savings = 0
	}
	if savings > prev.TotalCost {
		savings = prev.TotalCost
	}

	return contractx.AgentResult{
		Suggestions:      out.Suggestions,
		EstimatedSavings: savings,
	}, nil
}
