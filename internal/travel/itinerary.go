package travel

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	maxDays    = 366
)

var (
	ErrBadDate     = errors.New("dates must be YYYY-MM-DD")
	ErrTripTooLong = fmt.Errorf("trip longer than %d days", maxDays)
	ErrNoSuchDay   = errors.New("day index out of range")
)

// Day is one calendar day of a trip with the suggestions accepted into it
type Day struct {
	Date     string       `json:"date"`
	Forecast *ForecastDay `json:"forecast,omitempty"`
	Items    []Suggestion `json:"items"`
}

// Itinerary is a per-day plan. It is not safe for concurrent use.
type Itinerary struct {
	Days []Day `json:"days"`
}

// NewItinerary lists every day from start to end inclusive. Day i carries
// forecast[i] when present. An end before start yields no days.
func NewItinerary(start, end string, forecast []ForecastDay) (*Itinerary, error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrBadDate, start)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrBadDate, end)
	}

	it := &Itinerary{Days: []Day{}}
	for d, i := from, 0; !d.After(to); d, i = d.AddDate(0, 0, 1), i+1 {
		if i == maxDays {
			return nil, ErrTripTooLong
		}
		day := Day{Date: d.Format(dateLayout), Items: []Suggestion{}}
		if i < len(forecast) {
			wx := forecast[i]
			day.Forecast = &wx
		}
		it.Days = append(it.Days, day)
	}
	return it, nil
}

// Accept appends s to the given day's bucket
func (it *Itinerary) Accept(day int, s Suggestion) error {
	if day < 0 || day >= len(it.Days) {
		return fmt.Errorf("%w: %d", ErrNoSuchDay, day)
	}
	it.Days[day].Items = append(it.Days[day].Items, s)
	return nil
}

// Decline records nothing yet.
// TODO: feed declined suggestions back into Suggest once ranking uses feedback.
func (it *Itinerary) Decline(Suggestion) {}
