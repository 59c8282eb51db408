package amadeus

import "encoding/json"

// FlightOffersResponse is the body of GET /v2/shopping/flight-offers
type FlightOffersResponse struct {
	Data         []FlightOffer `json:"data"`
	Dictionaries struct {
		Currencies map[string]string `json:"currencies"`
	} `json:"dictionaries"`
}

type FlightOffer struct {
	Price       Price       `json:"price"`
	Itineraries []Itinerary `json:"itineraries"`
}

// Price amounts are decimal strings, but numbers have been seen in test data
type Price struct {
	Currency   string          `json:"currency"`
	Total      json.RawMessage `json:"total"`
	GrandTotal json.RawMessage `json:"grandTotal"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
}

type Endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// HotelOffersResponse is the body of GET /v2/shopping/hotel-offers
type HotelOffersResponse struct {
	Data []HotelOffers `json:"data"`
}

type HotelOffers struct {
	Hotel  Hotel        `json:"hotel"`
	Offers []HotelOffer `json:"offers"`
}

type Hotel struct {
	Name   string          `json:"name"`
	Rating json.RawMessage `json:"rating"` // string in v2, number in some sandboxes
	Media  []struct {
		URI string `json:"uri"`
	} `json:"media"`
	Address struct {
		Lines []string `json:"lines"`
	} `json:"address"`
}

type HotelOffer struct {
	Price struct {
		Currency string          `json:"currency"`
		Total    json.RawMessage `json:"total"`
	} `json:"price"`
}
