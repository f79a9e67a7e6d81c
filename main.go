package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wayfarer-ai/wayfarer/agent/agents/orchestrator"
	"github.com/wayfarer-ai/wayfarer/agent/agents/specialist"
	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	"github.com/wayfarer-ai/wayfarer/agent/geo"
	llmx "github.com/wayfarer-ai/wayfarer/agent/llm"
	routingx "github.com/wayfarer-ai/wayfarer/agent/routing"
	statex "github.com/wayfarer-ai/wayfarer/agent/state"
	"github.com/wayfarer-ai/wayfarer/agent/translate"
	configx "github.com/wayfarer-ai/wayfarer/pkg/config"
	geminix "github.com/wayfarer-ai/wayfarer/pkg/gemini"
	_ "github.com/wayfarer-ai/wayfarer/pkg/logger/autoload"
	openrouterx "github.com/wayfarer-ai/wayfarer/pkg/openrouter"
	"github.com/wayfarer-ai/wayfarer/pkg/payment"
	qstashx "github.com/wayfarer-ai/wayfarer/pkg/qstash"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	openRouterClient := openrouterx.NewClient(llmCfg.OpenRouterFor(contractx.AgentTypeOrchestrator))
	if openRouterClient == nil {
		panic("failed to initialize openrouter client")
	}

	geoCfg := configx.MustNew[geo.Config]("MAPS")
	places, err := geo.NewPlacesService(*geoCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create places service")
	}

	registry, err := specialist.NewRegistry(ctx, *llmCfg, specialist.Deps{
		Places:   places,
		Payments: payment.NewGateway(),
		Now:      time.Now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create agent registry")
	}

	store := newStore()
	notifier := newNotifier()

	planner, err := orchestrator.New(store, registry, routingx.New(routingx.Config{}), notifier, orchestrator.Config{
		DefaultStrategy: contractx.StrategySequential,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create orchestrator")
	}

	prefs := contractx.TripPreferences{
		Budget:       50000,
		DurationDays: 5,
		Interests:    []string{"heritage", "culture", "nightlife"},
		Location:     "Pune",
		StartDate:    time.Now().Add(30 * 24 * time.Hour),
		Travelers:    2,
	}

	for _, strategy := range []contractx.RoutingStrategy{
		contractx.StrategySequential,
		contractx.StrategyParallel,
		contractx.StrategyConditional,
	} {
		it, err := planner.PlanTrip(ctx, prefs, strategy)
		if err != nil {
			log.Error().Err(err).Str("strategy", string(strategy)).Msg("plan trip failed")
			continue
		}
		printItinerary(it, strategy)
	}

	it, err := planner.PlanTrip(ctx, prefs, contractx.StrategySequential)
	if err != nil {
		log.Fatal().Err(err).Msg("plan trip for replan demo failed")
	}
	replanned, err := planner.AdaptiveReplan(ctx, it.ID, map[string]any{
		"weather": "heavy rain expected on day 2",
	})
	if err != nil {
		log.Error().Err(err).Msg("adaptive replan failed")
	} else {
		printItinerary(replanned, contractx.StrategyFeedback)
	}

	translateDemo(ctx, replanned)
}

// translateDemo renders the itinerary in Hindi when a Gemini key is present.
func translateDemo(ctx context.Context, it *statex.TripItinerary) {
	if it == nil {
		return
	}

	cfg, err := configx.New[geminix.Config]("GEMINI")
	if err != nil {
		log.Warn().Msg("gemini not configured, skipping translation")
		return
	}

	provider, err := geminix.NewProvider(ctx, *cfg)
	if err != nil {
		log.Warn().Err(err).Msg("gemini provider unavailable")
		return
	}
	defer provider.Close()

	svc, err := translate.NewService(provider, nil)
	if err != nil {
		log.Warn().Err(err).Msg("translation service unavailable")
		return
	}

	translated, err := svc.TranslateItinerary(ctx, it, "hindi")
	if err != nil {
		log.Error().Err(err).Msg("translate itinerary failed")
		return
	}
	printItinerary(translated, contractx.StrategyFeedback)
}

// newStore picks the first configured backend: Upstash Redis, then Postgres,
// then process memory.
func newStore() statex.Store {
	if cfg, err := configx.New[statex.UpstashRedisConfig]("UPSTASH_REDIS"); err == nil {
		store, serr := statex.NewUpstashRedisStore(*cfg)
		if serr == nil {
			return store
		}
		log.Warn().Err(serr).Msg("upstash store unavailable")
	}

	if cfg, err := configx.New[statex.PostgresConfig]("POSTGRES"); err == nil {
		store, serr := statex.NewBunStore(*cfg)
		if serr != nil {
			log.Warn().Err(serr).Msg("postgres store unavailable")
		} else if ierr := store.Init(context.Background()); ierr != nil {
			log.Warn().Err(ierr).Msg("postgres schema init failed")
		} else {
			return store
		}
	}

	log.Warn().Msg("no persistent store configured, using in-memory store")
	return statex.NewMemoryStore()
}

// newNotifier returns a QStash-backed notifier when configured, nil otherwise.
// The orchestrator treats nil as a no-op.
func newNotifier() contractx.Notifier {
	cfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		log.Warn().Msg("qstash not configured, trip updates will not be published")
		return nil
	}

	client, err := qstashx.NewClient(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("qstash client unavailable")
		return nil
	}

	notifier, err := qstashx.NewNotifier(client, cfg.Destination)
	if err != nil {
		log.Warn().Err(err).Msg("qstash notifier unavailable")
		return nil
	}
	return notifier
}

func printItinerary(it *statex.TripItinerary, strategy contractx.RoutingStrategy) {
	fmt.Printf("\n=== %s (%s, %s) ===\n", it.ID, strategy, it.Status)
	fmt.Printf("%s, %d days, %d travelers, total %.0f\n",
		it.Preferences.Location, it.Preferences.DurationDays, it.Preferences.Travelers, it.TotalCost)

	byDay := it.ItemsByDay()
	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, day := range days {
		fmt.Printf("Day %d:\n", day)
		for _, item := range byDay[day] {
			fmt.Printf("  %s  %s @ %s (%.0f)\n", item.Time, item.Activity, item.Location, item.Cost)
		}
	}
	for _, suggestion := range it.Suggestions {
		fmt.Printf("Tip: %s\n", suggestion)
	}
}
