package tour

import (
	"time"

	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"
)

// Tour is a sellable group departure. DailyItinerary holds the day plan shown to customers.
// DepartureDate is "2006-01-02" and may be empty while the date is undecided.
type Tour struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	CityID         string          `json:"city_id"`
	DepartureDate  string          `json:"departure_date,omitempty"`
	NumDays        int             `json:"num_days"`
	DailyItinerary []itinerary.Day `json:"daily_itinerary"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
