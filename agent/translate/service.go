package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	statex "github.com/wayfarer-ai/wayfarer/agent/state"
)

// DefaultLanguages are the languages itineraries can be rendered in out of
// the box.
var DefaultLanguages = []string{"english", "hindi", "tamil", "bengali", "marathi"}

// Service renders itinerary text in a traveler's language.
type Service struct {
	translator contractx.Translator
	supported  map[string]bool
}

func NewService(translator contractx.Translator, languages []string) (*Service, error) {
	if translator == nil {
		return nil, errors.New("translator is required")
	}
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	supported := make(map[string]bool, len(languages))
	for _, lang := range languages {
		supported[strings.ToLower(strings.TrimSpace(lang))] = true
	}

	return &Service{translator: translator, supported: supported}, nil
}

// TranslateItinerary returns a copy of the itinerary with activities and
// suggestions rendered in the target language. English input stays as is.
func (s *Service) TranslateItinerary(
	ctx context.Context,
	itinerary *statex.TripItinerary,
	targetLanguage string,
) (*statex.TripItinerary, error) {
	if itinerary == nil {
		return nil, statex.ErrNilItinerary
	}

	target := strings.ToLower(strings.TrimSpace(targetLanguage))
	if target == "" || target == "english" {
		return itinerary, nil
	}
	if !s.supported[target] {
		return nil, fmt.Errorf("%w: unsupported language %q", contractx.ErrValidation, targetLanguage)
	}

	out := *itinerary
	out.Items = append([]contractx.ItineraryItem(nil), itinerary.Items...)
	out.Suggestions = append([]string(nil), itinerary.Suggestions...)

	for i := range out.Items {
		translated, err := s.translator.Translate(ctx, out.Items[i].Activity, target)
		if err != nil {
			return nil, fmt.Errorf("translate activity: %w", err)
		}
		out.Items[i].Activity = translated
	}
	for i := range out.Suggestions {
		translated, err := s.translator.Translate(ctx, out.Suggestions[i], target)
		if err != nil {
			return nil, fmt.Errorf("translate suggestion: %w", err)
		}
		out.Suggestions[i] = translated
	}

	return &out, nil
}
