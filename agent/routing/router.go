package routing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

// Results maps each agent that ran to its output. Strategies that tolerate
// per-agent failures record them in AgentResult.Error instead of failing the
// whole pass.
type Results map[contractx.AgentType]contractx.AgentResult

// Decision records one routing pass for inspection and the feedback strategy.
type Decision struct {
	Strategy  contractx.RoutingStrategy `json:"strategy"`
	Agents    []contractx.AgentType     `json:"agents"`
	Rule      string                    `json:"rule,omitempty"`
	DecidedAt time.Time                 `json:"decided_at"`
}

type Config struct {
	// DomesticRegions are destination substrings treated as domestic by the
	// conditional strategy.
	DomesticRegions []string
	// PriorityThreshold gates agents in the priority strategy.
	PriorityThreshold float64
	// FeedbackThreshold gates agents in the feedback strategy.
	FeedbackThreshold float64
}

func defaultConfig() Config {
	return Config{
		DomesticRegions:   []string{"india", "domestic"},
		PriorityThreshold: 0.5,
		FeedbackThreshold: 0.6,
	}
}

type strategyFunc func(ctx context.Context, req contractx.AgentRequest, reg contractx.Registry) (Results, string, error)

// Router dispatches agents according to the selected strategy and tracks
// routing history and per-agent performance feedback.
type Router struct {
	mu          sync.Mutex
	history     []Decision
	performance map[contractx.AgentType][]float64

	cfg        Config
	strategies map[contractx.RoutingStrategy]strategyFunc
	now        func() time.Time
}

func New(cfg Config) *Router {
	def := defaultConfig()
	if len(cfg.DomesticRegions) == 0 {
		cfg.DomesticRegions = def.DomesticRegions
	}
	if cfg.PriorityThreshold <= 0 {
		cfg.PriorityThreshold = def.PriorityThreshold
	}
	if cfg.FeedbackThreshold <= 0 {
		cfg.FeedbackThreshold = def.FeedbackThreshold
	}

	r := &Router{
		performance: make(map[contractx.AgentType][]float64),
		cfg:         cfg,
		now:         time.Now,
	}
	r.strategies = map[contractx.RoutingStrategy]strategyFunc{
		contractx.StrategySequential:  r.sequential,
		contractx.StrategyParallel:    r.parallel,
		contractx.StrategyConditional: r.conditional,
		contractx.StrategySemantic:    r.semantic,
		contractx.StrategyPriority:    r.priority,
		contractx.StrategyFeedback:    r.feedback,
	}
	return r
}

// Route executes one routing pass.
func (r *Router) Route(
	ctx context.Context,
	strategy contractx.RoutingStrategy,
	req contractx.AgentRequest,
	reg contractx.Registry,
) (Results, error) {
	run, ok := r.strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown routing strategy %q", contractx.ErrValidation, strategy)
	}

	results, rule, err := run(ctx, req, reg)
	if err != nil {
		return nil, err
	}

	agents := make([]contractx.AgentType, 0, len(results))
	for agentType := range results {
		agents = append(agents, agentType)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i] < agents[j] })

	r.mu.Lock()
	r.history = append(r.history, Decision{
		Strategy:  strategy,
		Agents:    agents,
		Rule:      rule,
		DecidedAt: r.now().UTC(),
	})
	r.mu.Unlock()

	return results, nil
}

// RecordFeedback stores a performance score in [0, 1] for an agent. The
// feedback strategy prefers agents with a higher mean score.
func (r *Router) RecordFeedback(agentType contractx.AgentType, score float64) {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	r.mu.Lock()
	r.performance[agentType] = append(r.performance[agentType], score)
	r.mu.Unlock()
}

// History returns a copy of recorded routing decisions.
func (r *Router) History() []Decision {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Decision(nil), r.history...)
}

/* ------------------------------ strategies ------------------------------ */

var sequentialOrder = []contractx.AgentType{
	contractx.AgentTypeResearch,
	contractx.AgentTypePlanning,
	contractx.AgentTypeOptimization,
	contractx.AgentTypeBooking,
}

// sequential runs the pipeline in dependency order, feeding each agent the
// results of everything before it.
func (r *Router) sequential(ctx context.Context, req contractx.AgentRequest, reg contractx.Registry) (Results, string, error) {
	return r.runInOrder(ctx, req, reg, sequentialOrder)
}

func (r *Router) runInOrder(
	ctx context.Context,
	req contractx.AgentRequest,
	reg contractx.Registry,
	order []contractx.AgentType,
) (Results, string, error) {
	results := make(Results, len(order))
	for _, agentType := range order {
		agent, ok := reg.Agent(agentType)
		if !ok {
			continue
		}
		req.Previous = cloneResults(results)
		out, err := agent.Run(ctx, req)
		if err != nil {
			// An agent rejecting the request (typically a missing upstream
			// result, as when a strategy runs optimization or booking without
			// planning) is recorded as that agent's result; the rest of the
			// pass still runs.
			if errors.Is(err, contractx.ErrValidation) {
				results[agentType] = contractx.AgentResult{Error: err.Error()}
				continue
			}
			return nil, "", fmt.Errorf("agent %s: %w", agentType, err)
		}
		results[agentType] = out
	}
	return results, "", nil
}

var parallelAgents = []contractx.AgentType{
	contractx.AgentTypeResearch,
	contractx.AgentTypeMonitoring,
}

// parallel fans independent agents out concurrently. A failing agent does not
// fail the pass; its error is captured in its result.
func (r *Router) parallel(ctx context.Context, req contractx.AgentRequest, reg contractx.Registry) (Results, string, error) {
	results := make(Results, len(parallelAgents))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, agentType := range parallelAgents {
		agent, ok := reg.Agent(agentType)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(agentType contractx.AgentType, agent contractx.Agent) {
			defer wg.Done()
			out, err := agent.Run(ctx, req)
			if err != nil {
				out = contractx.AgentResult{Error: err.Error()}
			}
			mu.Lock()
			results[agentType] = out
			mu.Unlock()
		}(agentType, agent)
	}
	wg.Wait()

	return results, "", nil
}

type conditionalRule struct {
	name   string
	met    func(p contractx.TripPreferences) bool
	agents []contractx.AgentType
}

// conditional picks an agent sequence from a rule table over preference
// thresholds. Rules are evaluated in order; the first match wins.
func (r *Router) conditional(ctx context.Context, req contractx.AgentRequest, reg contractx.Registry) (Results, string, error) {
	rules := []conditionalRule{
		{
			name: "budget_high",
			met:  func(p contractx.TripPreferences) bool { return p.Budget > 100000 },
			agents: []contractx.AgentType{
				contractx.AgentTypeResearch, contractx.AgentTypePlanning, contractx.AgentTypeOptimization,
			},
		},
		{
			name: "duration_long",
			met:  func(p contractx.TripPreferences) bool { return p.DurationDays > 7 },
			agents: []contractx.AgentType{
				contractx.AgentTypeResearch, contractx.AgentTypePlanning, contractx.AgentTypeMonitoring,
			},
		},
		{
			name: "complex_interests",
			met:  func(p contractx.TripPreferences) bool { return len(p.Interests) > 3 },
			agents: []contractx.AgentType{
				contractx.AgentTypeResearch, contractx.AgentTypeOptimization,
			},
		},
		{
			name: "international",
			met:  func(p contractx.TripPreferences) bool { return !r.isDomestic(p.Location) },
			agents: []contractx.AgentType{
				contractx.AgentTypeResearch, contractx.AgentTypePlanning, contractx.AgentTypeOptimization,
			},
		},
	}

	rule := "default"
	selected := []contractx.AgentType{contractx.AgentTypeResearch, contractx.AgentTypePlanning}
	for _, candidate := range rules {
		if candidate.met(req.Preferences) {
			rule = candidate.name
			selected = candidate.agents
			break
		}
	}

	results, _, err := r.runInOrder(ctx, req, reg, selected)
	return results, rule, err
}

func (r *Router) isDomestic(location string) bool {
	loc := strings.ToLower(location)
	for _, region := range r.cfg.DomesticRegions {
		if strings.Contains(loc, strings.ToLower(region)) {
			return true
		}
	}
	return false
}

// agentCapabilities describe what each agent handles, for semantic matching
// against the user query.
var agentCapabilities = map[contractx.AgentType]string{
	contractx.AgentTypeResearch:     "find information about destinations attractions hotels restaurants local culture weather events",
	contractx.AgentTypePlanning:     "create itineraries schedule activities organize timeline plan routes optimize sequences",
	contractx.AgentTypeBooking:      "make reservations handle payments confirm bookings manage tickets process transactions",
	contractx.AgentTypeOptimization: "improve costs enhance experiences find alternatives optimize routes suggest upgrades",
}

// semantic scores the user query against agent capability descriptions by
// word overlap and runs the best match; with no match it falls back to the
// sequential pipeline.
func (r *Router) semantic(ctx context.Context, req contractx.AgentRequest, reg contractx.Registry) (Results, string, error) {
	queryWords := wordSet(req.Query)
	if len(queryWords) == 0 {
		results, _, err := r.sequential(ctx, req, reg)
		return results, "fallback_sequential", err
	}

	var (
		best      contractx.AgentType
		bestScore float64
	)
	for agentType, capabilities := range agentCapabilities {
		common := 0
		for word := range wordSet(capabilities) {
			if queryWords[word] {
				common++
			}
		}
		score := float64(common) / float64(len(queryWords))
		if score > bestScore {
			bestScore = score
			best = agentType
		}
	}

	if bestScore > 0 {
		if agent, ok := reg.Agent(best); ok {
			out, err := agent.Run(ctx, req)
			if err != nil {
				if errors.Is(err, contractx.ErrValidation) {
					return Results{best: {Error: err.Error()}}, string(best), nil
				}
				return nil, "", fmt.Errorf("agent %s: %w", best, err)
			}
			return Results{best: out}, string(best), nil
		}
	}

	results, _, err := r.sequential(ctx, req, reg)
	return results, "fallback_sequential", err
}

// priority scores each agent from the request context and runs those above
// the threshold in descending priority order.
func (r *Router) priority(ctx context.Context, req contractx.AgentRequest, reg contractx.Registry) (Results, string, error) {
	type scored struct {
		agentType contractx.AgentType
		priority  float64
	}

	candidates := []scored{
		{contractx.AgentTypeResearch, priorityScore(contractx.AgentTypeResearch, req)},
		{contractx.AgentTypePlanning, priorityScore(contractx.AgentTypePlanning, req)},
		{contractx.AgentTypeBooking, priorityScore(contractx.AgentTypeBooking, req)},
		{contractx.AgentTypeOptimization, priorityScore(contractx.AgentTypeOptimization, req)},
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].priority > candidates[j].priority })

	order := make([]contractx.AgentType, 0, len(candidates))
	for _, c := range candidates {
		if c.priority > r.cfg.PriorityThreshold {
			order = append(order, c.agentType)
		}
	}

	return r.runInOrder(ctx, req, reg, order)
}

func priorityScore(agentType contractx.AgentType, req contractx.AgentRequest) float64 {
	score := 0.5
	p := req.Preferences

	switch agentType {
	case contractx.AgentTypeResearch:
		if !req.InfoComplete {
			score += 0.4
		}
		if len(p.Interests) > 2 {
			score += 0.2
		}
	case contractx.AgentTypePlanning:
		if p.DurationDays > 3 {
			score += 0.3
		}
		if p.Budget > 50000 {
			score += 0.2
		}
	case contractx.AgentTypeBooking:
		if req.ReadyToBook {
			score += 0.5
		}
	case contractx.AgentTypeOptimization:
		if p.Budget < 20000 {
			score += 0.4
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// feedback runs the two best-performing agents from recorded scores, skipping
// anything at or below the threshold. Unscored agents default to 0.5.
func (r *Router) feedback(ctx context.Context, req contractx.AgentRequest, reg contractx.Registry) (Results, string, error) {
	type scored struct {
		agentType contractx.AgentType
		mean      float64
	}

	r.mu.Lock()
	candidates := make([]scored, 0, len(sequentialOrder)+1)
	for _, agentType := range append(append([]contractx.AgentType(nil), sequentialOrder...), contractx.AgentTypeMonitoring) {
		if _, ok := reg.Agent(agentType); !ok {
			continue
		}
		candidates = append(candidates, scored{agentType, meanScore(r.performance[agentType])})
	}
	r.mu.Unlock()

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].mean > candidates[j].mean })
	if len(candidates) > 2 {
		candidates = candidates[:2]
	}

	order := make([]contractx.AgentType, 0, len(candidates))
	for _, c := range candidates {
		if c.mean > r.cfg.FeedbackThreshold {
			order = append(order, c.agentType)
		}
	}

	return r.runInOrder(ctx, req, reg, order)
}

func meanScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.5
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

/* -------------------------------- helpers ------------------------------- */

func wordSet(s string) map[string]bool {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,!?")
		if w != "" {
			set[w] = true
		}
	}
	return set
}

func cloneResults(in Results) map[contractx.AgentType]contractx.AgentResult {
	out := make(map[contractx.AgentType]contractx.AgentResult, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
