package schedule

import (
	"sort"
	"time"
)

type OutboundFlight struct {
	ArrivalTime string `json:"arrivalTime"`
}

type ReturnFlight struct {
	DepartureTime string `json:"departureTime"`
}

// DailyTimeSlot is the schedulable window of one trip day.
type DailyTimeSlot struct {
	DayNumber        int    `json:"dayNumber"`
	Date             string `json:"date"`
	DisplayDate      string `json:"displayDate"`
	AvailableMinutes int    `json:"availableMinutes"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	IsFirstDay       bool   `json:"isFirstDay"`
	IsLastDay        bool   `json:"isLastDay"`
}

// DailyTimeSlots computes one slot per trip day. The first day starts no earlier than arrival
// plus PostArrivalBuffer and the last day ends no later than departure minus PreDepartureBuffer,
// both kept inside the default day bounds. A one-day trip gets both constraints.
func DailyTimeSlots(numDays int, departure time.Time, outbound OutboundFlight, ret ReturnFlight, cfg Config) []DailyTimeSlot {
	if numDays <= 0 {
		return nil
	}

	dayStart := TimeToMinutes(cfg.DefaultDayStart)
	dayEnd := TimeToMinutes(cfg.DefaultDayEnd)

	slots := make([]DailyTimeSlot, 0, numDays)
	for i := 0; i < numDays; i++ {
		first := i == 0
		last := i == numDays-1

		start, end := dayStart, dayEnd
		if first && outbound.ArrivalTime != "" {
			start = max(TimeToMinutes(outbound.ArrivalTime)+cfg.PostArrivalBuffer, dayStart)
		}
		if last && ret.DepartureTime != "" {
			end = min(TimeToMinutes(ret.DepartureTime)-cfg.PreDepartureBuffer, dayEnd)
		}
		// an empty window collapses onto its start so neither bound wraps past midnight
		start = min(start, dayEnd)
		end = max(end, start)

		date := departure.AddDate(0, 0, i)
		slots = append(slots, DailyTimeSlot{
			DayNumber:        i + 1,
			Date:             FormatDate(date),
			DisplayDate:      FormatDisplayDate(date),
			AvailableMinutes: end - start,
			StartTime:        MinutesToTime(start),
			EndTime:          MinutesToTime(end),
			IsFirstDay:       first,
			IsLastDay:        last,
		})
	}
	return slots
}

type mealWindow struct {
	start, end int
}

func mealWindows(cfg Config) []mealWindow {
	windows := []mealWindow{
		{TimeToMinutes(cfg.LunchTime), TimeToMinutes(cfg.LunchTime) + cfg.MealDuration},
		{TimeToMinutes(cfg.DinnerTime), TimeToMinutes(cfg.DinnerTime) + cfg.MealDuration},
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })
	return windows
}

// UsableTime is the slot's available minutes minus every meal block overlapping the slot.
func UsableTime(slot DailyTimeSlot, cfg Config) int {
	if slot.AvailableMinutes <= 0 {
		return 0
	}
	start := TimeToMinutes(slot.StartTime)
	end := TimeToMinutes(slot.EndTime)

	usable := slot.AvailableMinutes
	for _, meal := range mealWindows(cfg) {
		if start < meal.end && end > meal.start {
			usable -= cfg.MealDuration
		}
	}
	return max(usable, 0)
}

// EndTimeWithMeals returns the clock time an activity of the given length finishes when lunch and
// dinner are not spent on it.
func EndTimeWithMeals(start string, durationMinutes int, cfg Config) string {
	cursor := TimeToMinutes(start)
	remaining := durationMinutes

	for _, meal := range mealWindows(cfg) {
		if meal.end <= meal.start || cursor >= meal.end {
			continue
		}
		if cursor >= meal.start {
			cursor = meal.end
			continue
		}
		if cursor+remaining <= meal.start {
			break
		}
		remaining -= meal.start - cursor
		cursor = meal.end
	}
	return MinutesToTime(cursor + remaining)
}
