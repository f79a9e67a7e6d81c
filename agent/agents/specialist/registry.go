package specialist

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	llmx "github.com/wayfarer-ai/wayfarer/agent/llm"
	promptx "github.com/wayfarer-ai/wayfarer/agent/prompt"
)

// Deps are the external integrations the non-LLM agents run on.
type Deps struct {
	Places   contractx.PlaceFinder
	Payments contractx.PaymentGateway
	Now      func() time.Time
}

type registryImpl struct {
	extractor contractx.Extractor
	agents    map[contractx.AgentType]contractx.Agent
	types     []contractx.AgentType
}

func (r *registryImpl) Extractor() contractx.Extractor {
	return r.extractor
}

func (r *registryImpl) Agent(t contractx.AgentType) (contractx.Agent, bool) {
	agent, ok := r.agents[t]
	return agent, ok
}

func (r *registryImpl) Types() []contractx.AgentType {
	return append([]contractx.AgentType(nil), r.types...)
}

// NewRegistry compiles the LLM-backed agents and wires the integration-backed
// ones, returning the full agent set keyed by type.
func NewRegistry(ctx context.Context, cfg llmx.Config, deps Deps) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()
	if prompts.Extractor == "" || prompts.Planner == "" || prompts.Optimizer == "" {
		return nil, contractx.ErrPromptMissing
	}

	extractorModelCfg := cfg.OpenRouterFor(contractx.AgentTypeOrchestrator)
	extractorModel, err := extractorModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create extractor model: %v", contractx.ErrModelInvoke, err)
	}
	planningModelCfg := cfg.OpenRouterFor(contractx.AgentTypePlanning)
	planningModel, err := planningModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create planning model: %v", contractx.ErrModelInvoke, err)
	}
	optimizationModelCfg := cfg.OpenRouterFor(contractx.AgentTypeOptimization)
	optimizationModel, err := optimizationModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create optimization model: %v", contractx.ErrModelInvoke, err)
	}

	extractor, err := newExtractor(ctx, extractorModel, prompts.Extractor)
	if err != nil {
		return nil, err
	}
	planning, err := newPlanningAgent(ctx, planningModel, prompts.Planner)
	if err != nil {
		return nil, err
	}
	optimization, err := newOptimizationAgent(ctx, optimizationModel, prompts.Optimizer)
	if err != nil {
		return nil, err
	}
	research, err := newResearchAgent(deps.Places)
	if err != nil {
		return nil, err
	}
	booking, err := newBookingAgent(deps.Payments)
	if err != nil {
		return nil, err
	}
	monitoring := newMonitoringAgent(deps.Now)

	agents := map[contractx.AgentType]contractx.Agent{
		contractx.AgentTypeResearch:     research,
		contractx.AgentTypePlanning:     planning,
		contractx.AgentTypeOptimization: optimization,
		contractx.AgentTypeBooking:      booking,
		contractx.AgentTypeMonitoring:   monitoring,
	}

	return &registryImpl{
		extractor: extractor,
		agents:    agents,
		types: []contractx.AgentType{
			contractx.AgentTypeResearch,
			contractx.AgentTypePlanning,
			contractx.AgentTypeOptimization,
			contractx.AgentTypeBooking,
			contractx.AgentTypeMonitoring,
		},
	}, nil
}
