package predicthq

type EventsResponse struct {
	Count   int     `json:"count"`
	Results []Event `json:"results"`
}

type Event struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Start    string   `json:"start"`
	Category string   `json:"category"`
	Label    string   `json:"label"`
	Labels   []string `json:"labels"`
	URL      string   `json:"url"`
	Venue    string   `json:"venue"`
	Entities []Entity `json:"entities"`
}

// Entity is a venue, organization or performer attached to an event
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
