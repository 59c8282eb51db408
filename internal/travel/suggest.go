package travel

import (
	"fmt"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

type SuggestionType string

const (
	SuggestionEvent    SuggestionType = "event"
	SuggestionActivity SuggestionType = "activity"
)

const (
	maxSuggestions         = 10
	maxActivitySuggestions = 5
)

// Suggestion is an itinerary candidate. Exactly one of Event or Activity is set.
type Suggestion struct {
	ID       string         `json:"id"`
	Type     SuggestionType `json:"type"`
	Title    string         `json:"title"`
	Reason   string         `json:"reason"`
	Priority Priority       `json:"priority"`
	Event    *Event         `json:"event,omitempty"`
	Activity *Activity      `json:"activity,omitempty"`
}

// Suggest ranks every event as high priority followed by the first five
// activities as medium priority, capped at ten.
func Suggest(events []Event, activities []Activity, persona string) []Suggestion {
	out := make([]Suggestion, 0, maxSuggestions)
	for i := range events {
		ev := events[i]
		out = append(out, Suggestion{
			ID:       uuid.NewString(),
			Type:     SuggestionEvent,
			Title:    ev.Title,
			Reason:   fmt.Sprintf("Matches your interests as a %s.", persona),
			Priority: PriorityHigh,
			Event:    &ev,
		})
	}
	for i := range head(activities, maxActivitySuggestions) {
		act := activities[i]
		out = append(out, Suggestion{
			ID:       uuid.NewString(),
			Type:     SuggestionActivity,
			Title:    act.Name,
			Reason:   fmt.Sprintf("Popular nearby attraction for a %s.", persona),
			Priority: PriorityMedium,
			Activity: &act,
		})
	}
	return head(out, maxSuggestions)
}
