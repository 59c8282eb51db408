package booking

import "encoding/json"

type SearchResponse struct {
	Result []Hotel `json:"result"`
}

// Hotel prices and scores are numbers in practice but have been seen as
// strings, so they are kept raw.
type Hotel struct {
	HotelName               string          `json:"hotel_name"`
	MinTotalPrice           json.RawMessage `json:"min_total_price"`
	ReviewScore             json.RawMessage `json:"review_score"`
	Max1440PhotoURL         string          `json:"max_1440_photo_url"`
	Address                 string          `json:"address"`
	CompositePriceBreakdown struct {
		GrossAmount struct {
			Value    json.RawMessage `json:"value"`
			Currency string          `json:"currency"`
		} `json:"gross_amount"`
	} `json:"composite_price_breakdown"`
}
