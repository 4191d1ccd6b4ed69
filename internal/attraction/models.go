package attraction

import "time"

type Attraction struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	NameEn          string    `json:"name_en,omitempty"`
	Description     string    `json:"description,omitempty"`
	CountryID       string    `json:"country_id"`
	CityID          string    `json:"city_id"`
	Category        string    `json:"category,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	Images          []string  `json:"images,omitempty"`
	Thumbnail       string    `json:"thumbnail,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	IsActive        bool      `json:"is_active"`
	DisplayOrder    int       `json:"display_order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (a Attraction) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// WithDistance is an attraction annotated during a single generation run.
// nil fields mean no distance could be computed for the entry.
type WithDistance struct {
	Attraction
	DistanceFromPrevious *float64 `json:"distance_from_previous,omitempty"`
	TravelTimeMinutes    *int     `json:"travel_time_minutes,omitempty"`
}
