package travel

import "strconv"

// LatLon is a WGS84 coordinate
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FlightOffer is a priced round trip. Price is the provider's decimal string.
type FlightOffer struct {
	Price       string      `json:"price,omitempty"`
	Currency    string      `json:"currency"`
	Itineraries []FlightItinerary `json:"itineraries"`
}

// FlightItinerary is one direction of an offer
type FlightItinerary struct {
	Duration string    `json:"duration,omitempty"` // ISO 8601, e.g. PT8H40M
	Segments []Segment `json:"segments"`
}

type Segment struct {
	CarrierCode     string `json:"carrierCode,omitempty"`
	FlightNumber    string `json:"flightNumber,omitempty"`
	OriginIATA      string `json:"originIata,omitempty"`
	DestinationIATA string `json:"destinationIata,omitempty"`
	DepartureTime   string `json:"departureTime,omitempty"`
	ArrivalTime     string `json:"arrivalTime,omitempty"`
}

type HotelOffer struct {
	Name          string   `json:"name,omitempty"`
	PricePerNight string   `json:"pricePerNight,omitempty"`
	Currency      string   `json:"currency"`
	Rating        *float64 `json:"rating,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Address       string   `json:"address,omitempty"`
}

type Event struct {
	Title     string `json:"title,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	Category  string `json:"category,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty"`
	Venue     string `json:"venue,omitempty"`
}

type Activity struct {
	Name     string   `json:"name,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Address  string   `json:"address,omitempty"`
	PlaceID  string   `json:"placeId,omitempty"`
	Location *LatLon  `json:"location,omitempty"`
}

// ForecastDay summarizes one calendar day; temperatures are rounded °C
type ForecastDay struct {
	Date string `json:"date"`
	Low  int    `json:"low"`
	High int    `json:"high"`
	Icon string `json:"icon"`
}
