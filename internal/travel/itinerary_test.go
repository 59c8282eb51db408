package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItinerary(t *testing.T) {
	forecast := []ForecastDay{
		{Date: "2025-07-01", Low: 20, High: 31, Icon: "☀️"},
		{Date: "2025-07-02", Low: 21, High: 30, Icon: "☁️"},
	}

	it, err := NewItinerary("2025-06-30", "2025-07-03", forecast)
	require.NoError(t, err)
	require.Len(t, it.Days, 4)

	assert.Equal(t, "2025-06-30", it.Days[0].Date)
	assert.Equal(t, "2025-07-03", it.Days[3].Date)
	require.NotNil(t, it.Days[0].Forecast)
	assert.Equal(t, 31, it.Days[0].Forecast.High)
	assert.NotNil(t, it.Days[1].Forecast)
	assert.Nil(t, it.Days[2].Forecast)
	for _, d := range it.Days {
		assert.NotNil(t, d.Items)
		assert.Empty(t, d.Items)
	}
}

func TestNewItineraryCrossesMonthAndYear(t *testing.T) {
	it, err := NewItinerary("2024-12-30", "2025-01-02", nil)
	require.NoError(t, err)

	var dates []string
	for _, d := range it.Days {
		dates = append(dates, d.Date)
	}
	assert.Equal(t, []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"}, dates)
}

func TestNewItineraryEdges(t *testing.T) {
	it, err := NewItinerary("2025-07-05", "2025-07-01", nil)
	require.NoError(t, err)
	assert.Empty(t, it.Days)

	it, err = NewItinerary("2025-07-05", "2025-07-05", nil)
	require.NoError(t, err)
	assert.Len(t, it.Days, 1)

	_, err = NewItinerary("07/01/2025", "2025-07-05", nil)
	assert.ErrorIs(t, err, ErrBadDate)

	_, err = NewItinerary("2025-01-01", "2026-06-01", nil)
	assert.ErrorIs(t, err, ErrTripTooLong)
}

func TestItineraryAccept(t *testing.T) {
	it, err := NewItinerary("2025-07-01", "2025-07-02", nil)
	require.NoError(t, err)

	s := Suggest([]Event{{Title: "Concert"}}, nil, "music lover")[0]
	require.NoError(t, it.Accept(1, s))
	assert.Empty(t, it.Days[0].Items)
	require.Len(t, it.Days[1].Items, 1)
	assert.Equal(t, s.ID, it.Days[1].Items[0].ID)

	assert.ErrorIs(t, it.Accept(2, s), ErrNoSuchDay)
	assert.ErrorIs(t, it.Accept(-1, s), ErrNoSuchDay)

	it.Decline(s)
	assert.Len(t, it.Days[1].Items, 1)
}
