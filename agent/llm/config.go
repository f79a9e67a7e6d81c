package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	openrouterx "github.com/wayfarer-ai/wayfarer/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"4000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.3"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	ExtractorModel          string  `envconfig:"EXTRACTOR_MODEL" split_words:"true"`
	PlanningModel           string  `envconfig:"PLANNING_MODEL" split_words:"true"`
	OptimizationModel       string  `envconfig:"OPTIMIZATION_MODEL" split_words:"true"`
	ExtractorTemperature    float32 `envconfig:"EXTRACTOR_TEMPERATURE" split_words:"true" default:"-1"`
	PlanningTemperature     float32 `envconfig:"PLANNING_TEMPERATURE" split_words:"true" default:"-1"`
	OptimizationTemperature float32 `envconfig:"OPTIMIZATION_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the model configuration for one agent, falling back
// to the shared defaults when no per-agent override is set. The extractor
// runs under the orchestrator agent type.
func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agentType {
	case contractx.AgentTypeOrchestrator:
		if v := strings.TrimSpace(c.ExtractorModel); v != "" {
			modelName = v
		}
		if c.ExtractorTemperature >= 0 {
			temp = c.ExtractorTemperature
		}
	case contractx.AgentTypePlanning:
		if v := strings.TrimSpace(c.PlanningModel); v != "" {
			modelName = v
		}
		if c.PlanningTemperature >= 0 {
			temp = c.PlanningTemperature
		}
	case contractx.AgentTypeOptimization:
		if v := strings.TrimSpace(c.OptimizationModel); v != "" {
			modelName = v
		}
		if c.OptimizationTemperature >= 0 {
			temp = c.OptimizationTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
