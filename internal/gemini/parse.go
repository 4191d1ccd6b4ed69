package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"
)

var errNoItinerary = errors.New("response has no dailyItinerary")

type rawActivity struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type rawMeals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

type rawDay struct {
	DayLabel        string        `json:"dayLabel"`
	Date            string        `json:"date"`
	Title           string        `json:"title"`
	Highlight       string        `json:"highlight"`
	Description     string        `json:"description"`
	Activities      []rawActivity `json:"activities"`
	Recommendations []string      `json:"recommendations"`
	Meals           rawMeals      `json:"meals"`
	Accommodation   string        `json:"accommodation"`
	Images          []string      `json:"images"`
}

type rawResponse struct {
	DailyItinerary *[]rawDay `json:"dailyItinerary"`
}

// stripFences drops markdown code fences and any prose around the JSON object.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

// ParseItinerary decodes the model's answer. Missing fields get defaults so every day is complete.
func ParseItinerary(text string) ([]itinerary.Day, error) {
	var resp rawResponse
	if err := json.Unmarshal([]byte(stripFences(text)), &resp); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	if resp.DailyItinerary == nil {
		return nil, errNoItinerary
	}

	raw := *resp.DailyItinerary
	days := make([]itinerary.Day, 0, len(raw))
	for i, d := range raw {
		days = append(days, normalizeDay(d, i+1, i == len(raw)-1))
	}
	return days, nil
}

func normalizeDay(d rawDay, dayNumber int, last bool) itinerary.Day {
	activities := make([]itinerary.Activity, 0, len(d.Activities))
	for _, a := range d.Activities {
		activities = append(activities, itinerary.Activity{
			Icon:        orDefault(a.Icon, "📍"),
			Title:       orDefault(a.Title, "自由活動"),
			Description: a.Description,
			Image:       a.Image,
		})
	}

	highlight := d.Highlight
	if highlight == "" && len(activities) > 0 {
		highlight = activities[0].Title
	}

	accommodation := "當地精選飯店"
	if last {
		accommodation = "返回溫暖的家"
	}

	recs := d.Recommendations
	if recs == nil {
		recs = []string{}
	}
	images := d.Images
	if images == nil {
		images = []string{}
	}

	return itinerary.Day{
		DayLabel:        orDefault(d.DayLabel, fmt.Sprintf("Day %d", dayNumber)),
		Date:            d.Date,
		Title:           orDefault(d.Title, fmt.Sprintf("第 %d 天", dayNumber)),
		Highlight:       orDefault(highlight, "自由活動"),
		Description:     d.Description,
		Activities:      activities,
		Recommendations: recs,
		Meals: itinerary.Meals{
			Breakfast: orDefault(d.Meals.Breakfast, "飯店內享用"),
			Lunch:     orDefault(d.Meals.Lunch, "當地特色餐廳"),
			Dinner:    orDefault(d.Meals.Dinner, "當地特色餐廳"),
		},
		Accommodation: orDefault(d.Accommodation, accommodation),
		Images:        images,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
