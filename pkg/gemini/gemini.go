package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Config struct {
	APIKey      string  `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model       string  `envconfig:"MODEL" split_words:"true" default:"gemini-2.0-flash"`
	Temperature float32 `envconfig:"TEMPERATURE" split_words:"true" default:"0.4"`
}

// Provider wraps a Gemini generative model for plain text generation.
type Provider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(strings.TrimSpace(cfg.Model))
	model.SetTemperature(cfg.Temperature)

	return &Provider{client: client, model: model}, nil
}

func (p *Provider) Close() {
	p.client.Close()
}

// Translate renders text in the target language, returning the text unchanged
// semantics-wise. The model is instructed to reply with the translation only.
func (p *Provider) Translate(ctx context.Context, text string, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following travel itinerary text to %s. Keep proper nouns "+
			"(place names, attraction names) recognizable. Reply with the translation only.\n\n%s",
		targetLanguage, text,
	)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}

	return stripFences(out.String()), nil
}

// stripFences removes markdown code fences the model occasionally wraps
// around short answers.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
