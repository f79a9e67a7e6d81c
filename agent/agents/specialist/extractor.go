package specialist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

const (
	defaultBudget    = 50000
	defaultDuration  = 5
	defaultTravelers = 2
	defaultLeadTime  = 30 * 24 * time.Hour
)

var defaultInterests = []string{"culture"}

type extractorImpl struct {
	runner compose.Runnable[map[string]any, extractorLLMOutput]
}

type extractorLLMOutput struct {
	Budget       float64  `json:"budget"`
	DurationDays int      `json:"duration_days"`
	Interests    []string `json:"interests"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	Travelers    int      `json:"travelers"`
}

func newExtractor(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*extractorImpl, error) {
	runner, err := compileExtractorGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile extractor graph: %v", contractx.ErrModelInvoke, err)
	}
	return &extractorImpl{runner: runner}, nil
}

// Extract parses a free-form trip request into preferences. Fields the model
// leaves empty fall back to sensible defaults so downstream agents always see
// a complete request.
func (e *extractorImpl) Extract(ctx context.Context, prompt string, now time.Time) (contractx.TripPreferences, error) {
	if strings.TrimSpace(prompt) == "" {
		return contractx.TripPreferences{}, fmt.Errorf("%w: trip prompt is required", contractx.ErrValidation)
	}

	payload := map[string]any{
		"prompt": prompt,
		"today":  now.Format("2006-01-02"),
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return contractx.TripPreferences{}, fmt.Errorf("%w: marshal extractor payload: %v", contractx.ErrValidation, err)
	}

	out, err := e.runner.Invoke(ctx, map[string]any{
		"input": string(inputBytes),
	})
	if err != nil {
		return contractx.TripPreferences{}, fmt.Errorf("%w: extractor invoke: %v", contractx.ErrModelInvoke, err)
	}

	if strings.TrimSpace(out.Location) == "" {
		return contractx.TripPreferences{}, fmt.Errorf("%w: extractor returned no destination", contractx.ErrSchemaViolation)
	}

	prefs := contractx.TripPreferences{
		Budget:       out.Budget,
		DurationDays: out.DurationDays,
		Interests:    out.Interests,
		Location:     strings.TrimSpace(out.Location),
		Travelers:    out.Travelers,
	}
	if prefs.Budget <= 0 {
		prefs.Budget = defaultBudget
	}
	if prefs.DurationDays <= 0 {
		prefs.DurationDays = defaultDuration
	}
	if len(prefs.Interests) == 0 {
		prefs.Interests = append([]string(nil), defaultInterests...)
	}
	if prefs.Travelers <= 0 {
		prefs.Travelers = defaultTravelers
	}

	prefs.StartDate = now.Add(defaultLeadTime).Truncate(24 * time.Hour)
	if raw := strings.TrimSpace(out.StartDate); raw != "" {
		if parsed, perr := time.Parse("2006-01-02", raw); perr == nil && parsed.After(now) {
			prefs.StartDate = parsed
		}
	}

	if err := prefs.Validate(); err != nil {
		return contractx.TripPreferences{}, err
	}
	return prefs, nil
}
