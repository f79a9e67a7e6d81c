package specialist

import (
	"context"
	"errors"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
	routingx "github.com/wayfarer-ai/wayfarer/agent/routing"
)

type fakeToolCallingModel struct {
	responses []*schema.Message
	err       error
	idx       int
}

func (f *fakeToolCallingModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeToolCallingModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func (f *fakeToolCallingModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return f, nil
}

type fakePlaceFinder struct {
	origin contractx.LatLng
	places []contractx.Place
	err    error
}

func (f *fakePlaceFinder) Geocode(ctx context.Context, location string) (contractx.LatLng, error) {
	if f.err != nil {
		return contractx.LatLng{}, f.err
	}
	return f.origin, nil
}

func (f *fakePlaceFinder) FindPlaces(ctx context.Context, origin contractx.LatLng, interests []string) ([]contractx.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.places, nil
}

type fakeGateway struct {
	paymentErr   error
	inventoryErr error
	paidAmount   float64
}

func (f *fakeGateway) ProcessPayment(ctx context.Context, amount float64, details map[string]any) (contractx.PaymentReceipt, error) {
	if f.paymentErr != nil {
		return contractx.PaymentReceipt{}, f.paymentErr
	}
	f.paidAmount = amount
	return contractx.PaymentReceipt{Status: "success", TransactionID: "TXN_test", Amount: amount}, nil
}

func (f *fakeGateway) BookInventory(ctx context.Context, items []contractx.ItineraryItem) (contractx.InventoryBooking, error) {
	if f.inventoryErr != nil {
		return contractx.InventoryBooking{}, f.inventoryErr
	}
	return contractx.InventoryBooking{Status: "confirmed", Reference: "EMT_test", TicketsIssued: len(items)}, nil
}

func validPreferences() contractx.TripPreferences {
	return contractx.TripPreferences{
		Budget:       50000,
		DurationDays: 3,
		Interests:    []string{"culture", "heritage"},
		Location:     "Pune",
		StartDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Travelers:    2,
	}
}

func TestExtractorExtractSuccess(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Content: `{"budget":75000,"duration_days":4,"interests":["beaches"],"location":"Goa","start_date":"2026-12-10","travelers":3}`,
			},
		},
	}

	extractor, err := newExtractor(context.Background(), fake, "extractor prompt")
	if err != nil {
		t.Fatalf("newExtractor() error = %v", err)
	}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	prefs, err := extractor.Extract(context.Background(), "4 days in Goa for 3 people, 75k budget, beaches", now)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if prefs.Location != "Goa" {
		t.Fatalf("unexpected location: %s", prefs.Location)
	}
	if prefs.Budget != 75000 {
		t.Fatalf("unexpected budget: %f", prefs.Budget)
	}
	if prefs.DurationDays != 4 {
		t.Fatalf("unexpected duration: %d", prefs.DurationDays)
	}
	if prefs.Travelers != 3 {
		t.Fatalf("unexpected travelers: %d", prefs.Travelers)
	}
	want := time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC)
	if !prefs.StartDate.Equal(want) {
		t.Fatalf("unexpected start date: %v", prefs.StartDate)
	}
}

func TestExtractorAppliesDefaults(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Content: `{"location":"Jaipur"}`},
		},
	}

	extractor, err := newExtractor(context.Background(), fake, "extractor prompt")
	if err != nil {
		t.Fatalf("newExtractor() error = %v", err)
	}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	prefs, err := extractor.Extract(context.Background(), "I want to visit Jaipur", now)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if prefs.Budget != defaultBudget {
		t.Fatalf("expected default budget, got %f", prefs.Budget)
	}
	if prefs.DurationDays != defaultDuration {
		t.Fatalf("expected default duration, got %d", prefs.DurationDays)
	}
	if prefs.Travelers != defaultTravelers {
		t.Fatalf("expected default travelers, got %d", prefs.Travelers)
	}
	if len(prefs.Interests) != 1 || prefs.Interests[0] != "culture" {
		t.Fatalf("expected default interests, got %#v", prefs.Interests)
	}
	if !prefs.StartDate.After(now) {
		t.Fatalf("expected start date in the future, got %v", prefs.StartDate)
	}
}

func TestExtractorMissingLocation(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Content: `{"budget":10000}`},
		},
	}

	extractor, err := newExtractor(context.Background(), fake, "extractor prompt")
	if err != nil {
		t.Fatalf("newExtractor() error = %v", err)
	}

	_, err = extractor.Extract(context.Background(), "somewhere nice", time.Now())
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestResearchAgentReturnsPlaces(t *testing.T) {
	t.Parallel()

	finder := &fakePlaceFinder{
		origin: contractx.LatLng{Lat: 18.52, Lng: 73.85},
		places: []contractx.Place{
			{Name: "Shaniwar Wada", Category: "heritage", Rating: 4.4},
		},
	}
	agent, err := newResearchAgent(finder)
	if err != nil {
		t.Fatalf("newResearchAgent() error = %v", err)
	}

	out, err := agent.Run(context.Background(), contractx.AgentRequest{Preferences: validPreferences()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out.Places) != 1 || out.Places[0].Name != "Shaniwar Wada" {
		t.Fatalf("unexpected places: %#v", out.Places)
	}
}

func TestResearchAgentRequiresLocation(t *testing.T) {
	t.Parallel()

	agent, err := newResearchAgent(&fakePlaceFinder{})
	if err != nil {
		t.Fatalf("newResearchAgent() error = %v", err)
	}

	_, err = agent.Run(context.Background(), contractx.AgentRequest{})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPlanningAgentTotalsCosts(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Content: `{"itinerary":[
					{"day":1,"time":"09:00","activity":"Fort visit","location":"Shaniwar Wada","cost":500,"duration_hours":2,"category":"heritage"},
					{"day":2,"time":"19:00","activity":"Night market","location":"FC Road","cost":1500,"duration_hours":3,"category":"nightlife"}
				]}`,
			},
		},
	}

	agent, err := newPlanningAgent(context.Background(), fake, "planner prompt")
	if err != nil {
		t.Fatalf("newPlanningAgent() error = %v", err)
	}

	req := contractx.AgentRequest{
		Preferences: validPreferences(),
		Previous: map[contractx.AgentType]contractx.AgentResult{
			contractx.AgentTypeResearch: {Places: []contractx.Place{{Name: "Shaniwar Wada"}}},
		},
	}
	out, err := agent.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out.Items))
	}
	if out.TotalCost != 2000 {
		t.Fatalf("expected total 2000, got %f", out.TotalCost)
	}
}

func TestPlanningAgentEmptyItinerary(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Content: `{"itinerary":[]}`},
		},
	}

	agent, err := newPlanningAgent(context.Background(), fake, "planner prompt")
	if err != nil {
		t.Fatalf("newPlanningAgent() error = %v", err)
	}

	_, err = agent.Run(context.Background(), contractx.AgentRequest{Preferences: validPreferences()})
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestOptimizationAgentClampsSavings(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Content: `{"suggestions":["book museum tickets online"],"estimated_savings":5000}`},
		},
	}

	agent, err := newOptimizationAgent(context.Background(), fake, "optimizer prompt")
	if err != nil {
		t.Fatalf("newOptimizationAgent() error = %v", err)
	}

	req := contractx.AgentRequest{
		Preferences: validPreferences(),
		Previous: map[contractx.AgentType]contractx.AgentResult{
			contractx.AgentTypePlanning: {
				Items:     []contractx.ItineraryItem{{Day: 1, Activity: "Fort visit", Cost: 2000}},
				TotalCost: 2000,
			},
		},
	}
	out, err := agent.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.EstimatedSavings != 2000 {
		t.Fatalf("expected savings clamped to 2000, got %f", out.EstimatedSavings)
	}
	if len(out.Suggestions) != 1 {
		t.Fatalf("unexpected suggestions: %#v", out.Suggestions)
	}
}

func TestOptimizationAgentRequiresPlan(t *testing.T) {
	t.Parallel()

	agent, err := newOptimizationAgent(context.Background(), &fakeToolCallingModel{}, "optimizer prompt")
	if err != nil {
		t.Fatalf("newOptimizationAgent() error = %v", err)
	}

	_, err = agent.Run(context.Background(), contractx.AgentRequest{Preferences: validPreferences()})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBookingAgentConfirms(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	agent, err := newBookingAgent(gateway)
	if err != nil {
		t.Fatalf("newBookingAgent() error = %v", err)
	}

	items := []contractx.ItineraryItem{
		{Day: 1, Activity: "Fort visit", Cost: 500},
		{Day: 2, Activity: "Night market", Cost: 1500},
	}
	req := contractx.AgentRequest{
		Preferences: validPreferences(),
		Previous: map[contractx.AgentType]contractx.AgentResult{
			contractx.AgentTypePlanning: {Items: items, TotalCost: 2000},
		},
	}
	out, err := agent.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if out.Booking == nil {
		t.Fatal("expected a booking confirmation")
	}
	if gateway.paidAmount != 2000 {
		t.Fatalf("expected payment of 2000, got %f", gateway.paidAmount)
	}
	if len(out.Booking.BookingIDs) != 2 {
		t.Fatalf("expected 2 booking ids, got %d", len(out.Booking.BookingIDs))
	}
	if out.Booking.Inventory.TicketsIssued != 2 {
		t.Fatalf("expected 2 tickets, got %d", out.Booking.Inventory.TicketsIssued)
	}
	if !out.Booking.ConfirmationSent {
		t.Fatal("expected confirmation sent")
	}
}

func TestBookingAgentRequiresItinerary(t *testing.T) {
	t.Parallel()

	agent, err := newBookingAgent(&fakeGateway{})
	if err != nil {
		t.Fatalf("newBookingAgent() error = %v", err)
	}

	_, err = agent.Run(context.Background(), contractx.AgentRequest{Preferences: validPreferences()})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestConditionalRoutingToleratesPlanlessOptimization(t *testing.T) {
	t.Parallel()

	research, err := newResearchAgent(&fakePlaceFinder{
		origin: contractx.LatLng{Lat: 28.61, Lng: 77.2},
		places: []contractx.Place{{Name: "Red Fort", Category: "heritage", Rating: 4.5}},
	})
	if err != nil {
		t.Fatalf("newResearchAgent() error = %v", err)
	}
	optimization, err := newOptimizationAgent(context.Background(), &fakeToolCallingModel{}, "optimizer prompt")
	if err != nil {
		t.Fatalf("newOptimizationAgent() error = %v", err)
	}
	reg := &registryImpl{
		agents: map[contractx.AgentType]contractx.Agent{
			contractx.AgentTypeResearch:     research,
			contractx.AgentTypeOptimization: optimization,
		},
		types: []contractx.AgentType{contractx.AgentTypeResearch, contractx.AgentTypeOptimization},
	}

	// More than three interests selects research followed directly by
	// optimization, so optimization sees no planned itinerary.
	prefs := validPreferences()
	prefs.Interests = []string{"culture", "heritage", "food", "shopping"}

	router := routingx.New(routingx.Config{})
	results, err := router.Route(context.Background(), contractx.StrategyConditional,
		contractx.AgentRequest{Preferences: prefs}, reg)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}

	if got := results[contractx.AgentTypeResearch]; len(got.Places) != 1 || got.Error != "" {
		t.Fatalf("unexpected research result: %#v", got)
	}
	if results[contractx.AgentTypeOptimization].Error == "" {
		t.Fatal("optimization without a plan should report its rejection in the result")
	}
}

func TestMonitoringAgentReportsConditions(t *testing.T) {
	t.Parallel()

	checked := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	agent := newMonitoringAgent(func() time.Time { return checked })

	out, err := agent.Run(context.Background(), contractx.AgentRequest{Preferences: validPreferences()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Conditions == nil {
		t.Fatal("expected conditions")
	}
	if out.Conditions.WeatherAlert || out.Conditions.TrafficDelay || out.Conditions.BookingChanges {
		t.Fatalf("expected all clear, got %#v", out.Conditions)
	}
	if !out.Conditions.CheckedAt.Equal(checked) {
		t.Fatalf("unexpected checked time: %v", out.Conditions.CheckedAt)
	}
}
