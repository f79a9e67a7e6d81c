package specialist

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

// monitoringAgent reports current trip conditions. Until external weather and
// traffic feeds are wired in it reports all clear with a timestamp, which is
// enough for the routing strategies that depend on it.
type monitoringAgent struct {
	now func() time.Time
}

func newMonitoringAgent(now func() time.Time) *monitoringAgent {
	if now == nil {
		now = time.Now
	}
	return &monitoringAgent{now: now}
}

func (a *monitoringAgent) Run(ctx context.Context, req contractx.AgentRequest) (contractx.AgentResult, error) {
	if err := req.Preferences.Validate(); err != nil {
		return contractx.AgentResult{}, err
	}

	return contractx.AgentResult{
		Conditions: &contractx.TripConditions{
			WeatherAlert:   false,
			TrafficDelay:   false,
			BookingChanges: false,
			Summary:        fmt.Sprintf("no disruptions reported for %s", req.Preferences.Location),
			CheckedAt:      a.now().UTC(),
		},
	}, nil
}
