package places

import "encoding/json"

// NearbyResponse is the body of nearbysearch/json. Status is "OK" or
// "ZERO_RESULTS" on success; errors such as "REQUEST_DENIED" still arrive
// with HTTP 200.
type NearbyResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Results      []Place `json:"results"`
}

type Place struct {
	Name     string          `json:"name"`
	Rating   json.RawMessage `json:"rating"`
	Vicinity string          `json:"vicinity"`
	PlaceID  string          `json:"place_id"`
	Geometry *struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
