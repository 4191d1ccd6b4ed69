package itinerary

import (
	"fmt"
	"time"

	"github.com/Corner-venturo/Corner-sub010/internal/attraction"
	"github.com/Corner-venturo/Corner-sub010/internal/geo"
	"github.com/Corner-venturo/Corner-sub010/internal/schedule"
)

// DefaultAttractionMinutes is used for attractions without a visit duration.
const DefaultAttractionMinutes = 90

// relaxThreshold is how much unused time earns a day an extra relax activity.
const relaxThreshold = 120

var now = time.Now

// Generate plans req day by day from the attraction pool. It never fails: a thin pool or bad input
// degrades to relax days and warnings.
func Generate(req Request, attractions []attraction.Attraction, cfg schedule.Config) Result {
	var warnings []string

	departure, err := schedule.ParseDate(req.DepartureDate)
	if err != nil {
		departure = now()
		warnings = append(warnings, fmt.Sprintf("出發日期格式錯誤（%s），改以今天日期排程", req.DepartureDate))
	}

	slots := schedule.DailyTimeSlots(req.NumDays, departure, req.OutboundFlight, req.ReturnFlight, cfg)
	days := cityPerDay(req.NumDays, req.CityID, req.Accommodations)

	pools := map[string][]attraction.WithDistance{}
	inDB := 0
	for _, cityID := range visitedCities(days) {
		pool := candidatePool(cityID, attractions, req.Style, cfg)
		pools[cityID] = pool
		inDB += len(pool)
		if len(pool) == 0 {
			warnings = append(warnings, cityName(req, cityID)+"的景點資料較少，建議放慢腳步享受旅程")
		}
	}

	limit := MaxPerDay(req.Style)
	pointers := map[string]int{}
	itinerary := make([]Day, 0, len(slots))
	stats := Stats{AttractionsInDB: inDB}

	for i, slot := range slots {
		city := days[i]
		pool := pools[city.id]
		start := pointers[city.id]

		day, used := planDay(slot, pool[start:], limit, cfg)
		if city.name != "" && !slot.IsLastDay {
			day.Accommodation = city.name + "精選飯店"
		}

		// the leg into a day's first stop is never travelled
		for j, a := range pool[start : start+used] {
			if j == 0 {
				continue
			}
			if a.DistanceFromPrevious != nil && *a.DistanceFromPrevious > cfg.MaxDistanceKm {
				warnings = append(warnings, fmt.Sprintf("%s 與前一站距離約 %.1f 公里，超過建議的 %.0f 公里",
					a.Name, *a.DistanceFromPrevious, cfg.MaxDistanceKm))
			}
		}

		itinerary = append(itinerary, day)
		pointers[city.id] = start + used
		stats.TotalAttractions += used
		if used == 0 {
			stats.SuggestedRelaxDays++
		}
	}

	leftover := 0
	for cityID, pool := range pools {
		for _, a := range pool[:pointers[cityID]] {
			stats.TotalDuration += visitMinutes(a.Attraction)
			if a.TravelTimeMinutes != nil {
				stats.TotalDuration += *a.TravelTimeMinutes
			}
		}
		leftover += len(pool) - pointers[cityID]
	}

	if stats.TotalAttractions < req.NumDays*2 {
		warnings = append(warnings, "景點較少，部分天數建議自由探索")
	}
	if leftover > 0 {
		warnings = append(warnings, fmt.Sprintf("尚有 %d 個景點未排入，可考慮延長行程天數", leftover))
	}
	if len(req.Accommodations) > 0 {
		nights := 0
		for _, p := range req.Accommodations {
			nights += p.Nights
		}
		if expected := req.NumDays - 1; nights != expected {
			warnings = append(warnings, fmt.Sprintf("住宿晚數（%d）與行程夜數（%d）不符", nights, expected))
		}
	}

	if warnings == nil {
		warnings = []string{}
	}
	return Result{
		Success:        true,
		DailyItinerary: itinerary,
		Stats:          stats,
		Warnings:       warnings,
	}
}

// candidatePool filters one city's active attractions, orders them by style and proximity, and
// annotates travel legs. Attractions without coordinates follow the optimised tour.
func candidatePool(cityID string, all []attraction.Attraction, style Style, cfg schedule.Config) []attraction.WithDistance {
	var city []attraction.Attraction
	for _, a := range all {
		if a.CityID == cityID && a.IsActive {
			city = append(city, a)
		}
	}
	city = SortByStyle(city, style)

	var ordered []attraction.Attraction
	if len(city) > 1 {
		ordered = geo.OptimizeOrder(city, nil)
		for _, a := range city {
			if !a.HasCoordinates() {
				ordered = append(ordered, a)
			}
		}
	} else {
		ordered = city
	}
	return geo.DistancesBetween(ordered, nil, cfg)
}

// planDay packs candidates into the slot in order and stops at the first one that does not fit.
// limit caps the number of attractions when positive.
func planDay(slot schedule.DailyTimeSlot, candidates []attraction.WithDistance, limit int, cfg schedule.Config) (Day, int) {
	remaining := schedule.UsableTime(slot, cfg)
	activities := []Activity{}
	used := 0

	for used < len(candidates) && remaining > 0 {
		if limit > 0 && used >= limit {
			break
		}
		c := candidates[used]
		needed := visitMinutes(c.Attraction)
		if used > 0 {
			needed += travelMinutes(c, cfg)
		}
		if needed > remaining {
			break
		}
		activities = append(activities, activityFrom(c.Attraction))
		remaining -= needed
		used++
	}

	if used == 0 || remaining >= relaxThreshold {
		activities = append(activities, RelaxActivity(slot.DayNumber))
	}

	kind := KindOf(slot, activities)
	accommodation := defaultHotel
	if slot.IsLastDay {
		accommodation = homeLabel
	}

	return Day{
		DayLabel:        fmt.Sprintf("Day %d", slot.DayNumber),
		Date:            slot.DisplayDate,
		Title:           DayTitle(kind, activities),
		Highlight:       highlight(activities),
		Description:     DayDescription(kind, activities),
		Activities:      activities,
		Recommendations: recommendations(activities),
		Meals:           mealsFor(slot),
		Accommodation:   accommodation,
		Images:          []string{},
	}, used
}

func visitMinutes(a attraction.Attraction) int {
	if a.DurationMinutes > 0 {
		return a.DurationMinutes
	}
	return DefaultAttractionMinutes
}

func travelMinutes(a attraction.WithDistance, cfg schedule.Config) int {
	if a.TravelTimeMinutes != nil && *a.TravelTimeMinutes > 0 {
		return *a.TravelTimeMinutes
	}
	return cfg.MinTravelTime
}
