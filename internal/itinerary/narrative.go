package itinerary

import (
	"fmt"

	"github.com/Corner-venturo/Corner-sub010/internal/attraction"
	"github.com/Corner-venturo/Corner-sub010/internal/schedule"
)

// NarrativeKind picks the title and description templates for a day.
type NarrativeKind int

const (
	NarrativeFirstDay NarrativeKind = iota
	NarrativeLastDay
	NarrativeEmpty
	NarrativeSingle
	NarrativeMulti
)

func (k NarrativeKind) String() string {
	switch k {
	case NarrativeFirstDay:
		return "first_day"
	case NarrativeLastDay:
		return "last_day"
	case NarrativeEmpty:
		return "empty"
	case NarrativeSingle:
		return "single"
	case NarrativeMulti:
		return "multi"
	}
	return fmt.Sprintf("NarrativeKind(%d)", int(k))
}

// KindOf classifies a day. First day wins over last day on a one-day trip.
func KindOf(slot schedule.DailyTimeSlot, activities []Activity) NarrativeKind {
	switch {
	case slot.IsFirstDay:
		return NarrativeFirstDay
	case slot.IsLastDay:
		return NarrativeLastDay
	case len(activities) == 0:
		return NarrativeEmpty
	case len(activities) == 1:
		return NarrativeSingle
	default:
		return NarrativeMulti
	}
}

type narrative struct {
	title       func([]Activity) string
	description func([]Activity) string
}

var narratives = map[NarrativeKind]narrative{
	NarrativeFirstDay: {
		title: func(a []Activity) string {
			if len(a) == 0 {
				return "抵達目的地"
			}
			return "抵達 → " + a[0].Title
		},
		description: func([]Activity) string {
			return "抵達後開始精彩旅程，讓專屬包車帶您探索這座城市的魅力。"
		},
	},
	NarrativeLastDay: {
		title: func(a []Activity) string {
			if len(a) == 0 {
				return homeLabel
			}
			return a[0].Title + " → 返程"
		},
		description: func([]Activity) string {
			return "最後一天的精彩時光，把握機會留下美好回憶後，前往機場踏上歸途。"
		},
	},
	NarrativeEmpty: {
		title:       func([]Activity) string { return "自由探索日" },
		description: slowDescription,
	},
	NarrativeSingle: {
		title:       func(a []Activity) string { return a[0].Title },
		description: slowDescription,
	},
	NarrativeMulti: {
		title: func(a []Activity) string {
			return a[0].Title + " → " + a[len(a)-1].Title
		},
		description: func(a []Activity) string {
			return fmt.Sprintf("今天我們將造訪 %d 個精選景點，深入體驗在地風情。", len(a))
		},
	},
}

func slowDescription([]Activity) string {
	return "放慢腳步，用自己的節奏感受這座城市的美好。"
}

// DayTitle and DayDescription render the templates registered for kind.
func DayTitle(kind NarrativeKind, activities []Activity) string {
	return narratives[kind].title(activities)
}

func DayDescription(kind NarrativeKind, activities []Activity) string {
	return narratives[kind].description(activities)
}

func highlight(activities []Activity) string {
	if len(activities) == 0 {
		return "自由活動"
	}
	return activities[0].Title
}

const (
	homeLabel       = "返回溫暖的家"
	defaultHotel    = "當地精選飯店"
	relaxIcon       = "🌿"
	iconLandmark    = "🏛️"
	iconShopping    = "🛍️"
	defaultCategory = "景點"
)

var categoryIcons = map[string]string{
	"景點": iconLandmark,
	"餐廳": "🍽️",
	"購物": iconShopping,
	"交通": "🚗",
	"住宿": "🏨",
}

// CategoryIcon maps an attraction category to its marker; unknown categories get 📍.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "📍"
}

func activityFrom(a attraction.Attraction) Activity {
	category := a.Category
	if category == "" {
		category = defaultCategory
	}

	desc := a.Notes
	if desc == "" {
		desc = a.Description
	}
	if desc == "" {
		desc = "探索" + a.Name
	}

	image := a.Thumbnail
	if image == "" && len(a.Images) > 0 {
		image = a.Images[0]
	}

	return Activity{
		Icon:        CategoryIcon(category),
		Title:       a.Name,
		Description: desc,
		Image:       image,
	}
}

var relaxSuggestions = []Activity{
	{Icon: relaxIcon, Title: "自由探索", Description: "放慢腳步，隨意漫步在街道上，發現當地的小驚喜"},
	{Icon: relaxIcon, Title: "咖啡時光", Description: "找一間舒適的咖啡廳，品味當地咖啡，享受悠閒時光"},
	{Icon: relaxIcon, Title: "在地市場巡禮", Description: "逛逛傳統市場，體驗最道地的在地生活"},
	{Icon: relaxIcon, Title: "飯店設施放鬆", Description: "享用飯店泳池、SPA 等設施，徹底放鬆身心"},
	{Icon: relaxIcon, Title: "街頭美食探險", Description: "品嚐路邊小吃，發掘隱藏版美食"},
}

// RelaxActivity cycles through the suggestions so consecutive days differ.
func RelaxActivity(dayNumber int) Activity {
	n := len(relaxSuggestions)
	return relaxSuggestions[((dayNumber-1)%n+n)%n]
}

var (
	firstDayMeals = Meals{Breakfast: "機上享用", Lunch: "當地特色餐廳", Dinner: "當地特色餐廳"}
	lastDayMeals  = Meals{Breakfast: "飯店內享用", Lunch: "機場或機上享用", Dinner: "-"}
	defaultMeals  = Meals{Breakfast: "飯店內享用", Lunch: "當地特色餐廳", Dinner: "當地特色餐廳"}
)

func mealsFor(slot schedule.DailyTimeSlot) Meals {
	switch {
	case slot.IsFirstDay:
		return firstDayMeals
	case slot.IsLastDay:
		return lastDayMeals
	default:
		return defaultMeals
	}
}

func recommendations(activities []Activity) []string {
	out := []string{"建議穿著舒適的步行鞋", "攜帶防曬用品和水"}
	if hasIcon(activities, iconShopping) {
		out = append(out, "準備足夠現金以便購物")
	}
	if hasIcon(activities, iconLandmark) {
		out = append(out, "參觀寺廟請穿著得體服裝")
	}
	return out
}

func hasIcon(activities []Activity, icon string) bool {
	for _, a := range activities {
		if a.Icon == icon {
			return true
		}
	}
	return false
}
