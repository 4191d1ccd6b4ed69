package itinerary

import (
	"slices"
	"sort"
	"strings"

	"github.com/Corner-venturo/Corner-sub010/internal/attraction"
)

type dailyRange struct {
	min, max int
}

var styleAttractionsPerDay = map[Style]dailyRange{
	StyleRelax:     {2, 3},
	StyleAdventure: {3, 5},
	StyleCulture:   {2, 4},
	StyleFood:      {3, 4},
}

var styleCategoryPriority = map[Style][]string{
	StyleRelax:     {"景點", "咖啡廳", "公園", "溫泉"},
	StyleAdventure: {"戶外", "自然", "體驗", "景點"},
	StyleCulture:   {"寺廟", "神社", "博物館", "古蹟", "景點"},
	StyleFood:      {"餐廳", "市場", "小吃", "景點"},
}

// MaxPerDay is the daily attraction cap for a style, 0 when uncapped.
func MaxPerDay(style Style) int {
	return styleAttractionsPerDay[style].max
}

// SortByStyle stably moves attractions whose category matches an earlier priority of the style to
// the front. Categories match by substring. Without a style the list is returned as is.
func SortByStyle(list []attraction.Attraction, style Style) []attraction.Attraction {
	priorities, ok := styleCategoryPriority[style]
	if !ok {
		return list
	}

	score := func(a attraction.Attraction) int {
		category := a.Category
		if category == "" {
			category = "其他"
		}
		for i, p := range priorities {
			if strings.Contains(category, p) {
				return i
			}
		}
		return len(priorities)
	}

	out := append([]attraction.Attraction(nil), list...)
	sort.SliceStable(out, func(i, j int) bool { return score(out[i]) < score(out[j]) })
	return out
}

type dayCity struct {
	id   string
	name string
}

// cityPerDay spreads days over the accommodation plan: a stay of N nights covers N days and days
// past the plan stay in the last city.
func cityPerDay(numDays int, defaultCity string, plans []AccommodationPlan) []dayCity {
	days := make([]dayCity, 0, max(numDays, 0))
	if len(plans) == 0 {
		for len(days) < numDays {
			days = append(days, dayCity{id: defaultCity})
		}
		return days
	}

	for _, p := range plans {
		for i := 0; i < p.Nights && len(days) < numDays; i++ {
			days = append(days, dayCity{id: p.CityID, name: p.CityName})
		}
	}
	last := plans[len(plans)-1]
	for len(days) < numDays {
		days = append(days, dayCity{id: last.CityID, name: last.CityName})
	}
	return days
}

// visitedCities lists the cities at least one day is spent in, in trip order.
func visitedCities(days []dayCity) []string {
	var out []string
	for _, d := range days {
		if d.id != "" && !slices.Contains(out, d.id) {
			out = append(out, d.id)
		}
	}
	return out
}

func cityName(req Request, cityID string) string {
	for _, p := range req.Accommodations {
		if p.CityID == cityID && p.CityName != "" {
			return p.CityName
		}
	}
	return "目的地"
}
