package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/extractor.txt
	extractorRaw string

	//go:embed template/planner.txt
	plannerRaw string

	//go:embed template/optimizer.txt
	optimizerRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Extractor string
	Planner   string
	Optimizer string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// This is safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Extractor: strings.TrimSpace(extractorRaw),
		Planner:   strings.TrimSpace(plannerRaw),
		Optimizer: strings.TrimSpace(optimizerRaw),
	}
}
