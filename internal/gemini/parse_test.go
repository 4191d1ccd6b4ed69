package gemini

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"
)

func TestParseItineraryStripsFences(t *testing.T) {
	days, err := ParseItinerary("```json\n" + validJSON + "\n```")
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if len(days) != 1 || days[0].Title != "抵達京都" || days[0].Meals.Dinner != "懷石料理" {
		t.Fatalf("unexpected days: %+v", days)
	}

	days, err = ParseItinerary("Here is your plan:\n" + validJSON + "\nEnjoy!")
	if err != nil || len(days) != 1 {
		t.Fatalf("parse wrapped: %v %+v", err, days)
	}
}

func TestParseItineraryDefaults(t *testing.T) {
	days, err := ParseItinerary(`{"dailyItinerary":[{"activities":[{"title":"嵐山"},{}]},{}]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}

	first := days[0]
	if first.DayLabel != "Day 1" || first.Title != "第 1 天" || first.Highlight != "嵐山" {
		t.Fatalf("unexpected headline defaults: %+v", first)
	}
	if first.Activities[0] != (itinerary.Activity{Icon: "📍", Title: "嵐山"}) || first.Activities[1].Title != "自由活動" {
		t.Fatalf("unexpected activity defaults: %+v", first.Activities)
	}
	if first.Meals != (itinerary.Meals{Breakfast: "飯店內享用", Lunch: "當地特色餐廳", Dinner: "當地特色餐廳"}) {
		t.Fatalf("unexpected meals: %+v", first.Meals)
	}
	if first.Accommodation != "當地精選飯店" || first.Recommendations == nil || first.Images == nil {
		t.Fatalf("unexpected defaults: %+v", first)
	}

	last := days[1]
	if last.DayLabel != "Day 2" || last.Highlight != "自由活動" || last.Accommodation != "返回溫暖的家" || last.Activities == nil {
		t.Fatalf("unexpected last day: %+v", last)
	}
}

func TestParseItineraryFailures(t *testing.T) {
	if _, err := ParseItinerary("not json"); err == nil {
		t.Fatalf("expected error for plain text")
	}
	if _, err := ParseItinerary(`{"days":[]}`); !errors.Is(err, errNoItinerary) {
		t.Fatalf("expected errNoItinerary, got %v", err)
	}

	days, err := ParseItinerary(`{"dailyItinerary":[]}`)
	if err != nil || len(days) != 0 {
		t.Fatalf("expected empty plan: %v %+v", err, days)
	}
}

func TestAPIErrorClassification(t *testing.T) {
	cases := []struct {
		err   *APIError
		quota bool
	}{
		{&APIError{StatusCode: 429, Message: "Too Many Requests"}, true},
		{&APIError{StatusCode: 403, Message: "Quota exceeded for metric"}, true},
		{&APIError{StatusCode: 400, Message: "RESOURCE_EXHAUSTED"}, true},
		{&APIError{StatusCode: 400, Status: "RESOURCE_EXHAUSTED", Message: "limit"}, true},
		{&APIError{StatusCode: 400, Message: "API key not valid"}, false},
		{&APIError{StatusCode: 500, Message: "internal"}, false},
	}
	for _, tc := range cases {
		if got := tc.err.Quota(); got != tc.quota {
			t.Fatalf("%s: quota %v, want %v", tc.err.Error(), got, tc.quota)
		}
	}

	if got := (&APIError{Message: "quota"}).RetryAfter(); got != 60*time.Second {
		t.Fatalf("default retry %s", got)
	}
	if got := (&APIError{Message: "Please retry in 37.2s"}).RetryAfter(); got != 37*time.Second {
		t.Fatalf("hinted retry %s", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	req := Request{
		Destination:   "京都",
		CountryName:   "日本",
		NumDays:       4,
		DepartureDate: "2025-06-01",
		ArrivalTime:   "11:00",
		DepartureTime: "16:00",
		Style:         itinerary.StyleCulture,
		Accommodations: []itinerary.AccommodationPlan{
			{CityID: "kyoto", CityName: "京都", Nights: 2},
			{CityID: "osaka", CityName: "大阪", Nights: 1},
		},
	}
	prompt := BuildPrompt(req)

	for _, want := range []string{"日本 京都", "4 天", "2025-06-01", "11:00", "16:00", "文化深度", "京都：2 晚（第 1 天起）", "大阪：1 晚（第 3 天起）", `"dailyItinerary"`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	plain := BuildPrompt(Request{Destination: "首爾", NumDays: 2, DepartureDate: "2025-06-01"})
	for _, absent := range []string{"旅遊風格", "住宿安排", "抵達時間"} {
		if strings.Contains(plain, absent) {
			t.Fatalf("prompt should not mention %q", absent)
		}
	}
}

func TestEveryStyleHasProfile(t *testing.T) {
	for _, s := range []itinerary.Style{itinerary.StyleRelax, itinerary.StyleAdventure, itinerary.StyleCulture, itinerary.StyleFood} {
		if _, ok := styleProfiles[s]; !ok {
			t.Fatalf("no profile for %s", s)
		}
	}
}
