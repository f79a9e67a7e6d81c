package state

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/wayfarer-ai/wayfarer/agent/contract"
)

type ItineraryStatus string

const (
	ItineraryDraft   ItineraryStatus = "draft"
	ItineraryPlanned ItineraryStatus = "planned"
	ItineraryUpdated ItineraryStatus = "updated"
	ItineraryBooked  ItineraryStatus = "booked"
)

var (
	ErrNilItinerary     = errors.New("itinerary is nil")
	ErrInvalidItinerary = errors.New("itinerary is invalid")
)

// TripItinerary is the assembled output of a planning run: the items the
// planning agent produced, the optimization agent's suggestions, and the
// final cost after savings.
type TripItinerary struct {
	ID          string                    `json:"id"`
	Preferences contractx.TripPreferences `json:"preferences"`
	Items       []contractx.ItineraryItem `json:"items,omitempty"`
	TotalCost   float64                   `json:"total_cost"`
	Suggestions []string                  `json:"suggestions,omitempty"`
	Status      ItineraryStatus           `json:"status"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

func NewTripItinerary(prefs contractx.TripPreferences, now time.Time) *TripItinerary {
	return &TripItinerary{
		ID:          newItineraryID(),
		Preferences: prefs,
		Status:      ItineraryDraft,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
}

func newItineraryID() string {
	return "TRIP_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (t *TripItinerary) Touch(now time.Time) {
	t.UpdatedAt = now.UTC()
}

func (t *TripItinerary) Validate() error {
	if t == nil {
		return ErrNilItinerary
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidItinerary)
	}
	if t.TotalCost < 0 {
		return fmt.Errorf("%w: total cost is negative", ErrInvalidItinerary)
	}
	for _, item := range t.Items {
		if item.Day < 1 {
			return fmt.Errorf("%w: item %q has day %d", ErrInvalidItinerary, item.Activity, item.Day)
		}
		if t.Preferences.DurationDays > 0 && item.Day > t.Preferences.DurationDays {
			return fmt.Errorf("%w: item %q scheduled on day %d of a %d-day trip",
				ErrInvalidItinerary, item.Activity, item.Day, t.Preferences.DurationDays)
		}
		if item.Cost < 0 {
			return fmt.Errorf("%w: item %q has negative cost", ErrInvalidItinerary, item.Activity)
		}
	}
	return nil
}

// ItemsByDay groups items by day, each day sorted by time label.
func (t *TripItinerary) ItemsByDay() map[int][]contractx.ItineraryItem {
	byDay := make(map[int][]contractx.ItineraryItem, t.Preferences.DurationDays)
	for _, item := range t.Items {
		byDay[item.Day] = append(byDay[item.Day], item)
	}
	for day := range byDay {
		items := byDay[day]
		sort.Slice(items, func(i, j int) bool { return items[i].Time < items[j].Time })
		byDay[day] = items
	}
	return byDay
}
