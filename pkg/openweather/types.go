package openweather

import "encoding/json"

// ForecastResponse is the body of GET /data/2.5/forecast
type ForecastResponse struct {
	List []Sample `json:"list"`
}

// Sample is one 3-hour forecast slot. DtTxt is "YYYY-MM-DD hh:mm:ss" UTC.
type Sample struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp json.RawMessage `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}
