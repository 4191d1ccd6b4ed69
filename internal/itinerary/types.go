package itinerary

import "github.com/Corner-venturo/Corner-sub010/internal/schedule"

// Style selects a travel pace and the attraction categories favoured for it.
type Style string

const (
	StyleRelax     Style = "relax"
	StyleAdventure Style = "adventure"
	StyleCulture   Style = "culture"
	StyleFood      Style = "food"
)

func (s Style) Valid() bool {
	switch s {
	case StyleRelax, StyleAdventure, StyleCulture, StyleFood:
		return true
	}
	return false
}

// AccommodationPlan is one stay of a multi-city trip.
type AccommodationPlan struct {
	CityID   string `json:"cityId" validate:"required"`
	CityName string `json:"cityName"`
	Nights   int    `json:"nights" validate:"gte=0"`
}

type Request struct {
	CityID         string                  `json:"cityId" validate:"required"`
	NumDays        int                     `json:"numDays" validate:"gte=1,lte=60"`
	DepartureDate  string                  `json:"departureDate" validate:"required,datetime=2006-01-02"`
	OutboundFlight schedule.OutboundFlight `json:"outboundFlight"`
	ReturnFlight   schedule.ReturnFlight   `json:"returnFlight"`
	Style          Style                   `json:"style,omitempty" validate:"omitempty,oneof=relax adventure culture food"`
	Accommodations []AccommodationPlan     `json:"accommodations,omitempty" validate:"dive"`
}

type Activity struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// Day is one day of a generated itinerary as stored on a tour.
type Day struct {
	DayLabel        string     `json:"dayLabel"`
	Date            string     `json:"date"`
	Title           string     `json:"title"`
	Highlight       string     `json:"highlight"`
	Description     string     `json:"description"`
	Activities      []Activity `json:"activities"`
	Recommendations []string   `json:"recommendations"`
	Meals           Meals      `json:"meals"`
	Accommodation   string     `json:"accommodation"`
	Images          []string   `json:"images"`
}

type Stats struct {
	TotalAttractions   int `json:"totalAttractions"`
	TotalDuration      int `json:"totalDuration"`
	AttractionsInDB    int `json:"attractionsInDb"`
	SuggestedRelaxDays int `json:"suggestedRelaxDays"`
}

type Result struct {
	Success        bool     `json:"success"`
	DailyItinerary []Day    `json:"dailyItinerary"`
	Stats          Stats    `json:"stats"`
	Warnings       []string `json:"warnings"`
}
