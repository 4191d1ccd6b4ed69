package gemini

import (
	"fmt"
	"strings"

	"github.com/Corner-venturo/Corner-sub010/internal/itinerary"
)

// Request describes the trip the model should plan.
type Request struct {
	Destination    string                        `json:"destination" validate:"required"`
	CountryName    string                        `json:"countryName,omitempty"`
	NumDays        int                           `json:"numDays" validate:"gte=1,lte=30"`
	DepartureDate  string                        `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ArrivalTime    string                        `json:"arrivalTime,omitempty"`
	DepartureTime  string                        `json:"departureTime,omitempty"`
	Style          itinerary.Style               `json:"style,omitempty" validate:"omitempty,oneof=relax adventure culture food"`
	Accommodations []itinerary.AccommodationPlan `json:"accommodations,omitempty"`
}

type styleProfile struct {
	name    string
	density string
	tone    string
}

var styleProfiles = map[itinerary.Style]styleProfile{
	itinerary.StyleRelax: {
		name:    "悠閒放鬆",
		density: "每天 2-3 個景點，保留充足的休息與自由活動時間",
		tone:    "步調緩慢，多安排咖啡廳、公園、溫泉等放鬆行程",
	},
	itinerary.StyleAdventure: {
		name:    "冒險探索",
		density: "每天 3-5 個景點，行程緊湊充實",
		tone:    "以戶外活動、自然景觀與特色體驗為主",
	},
	itinerary.StyleCulture: {
		name:    "文化深度",
		density: "每天 2-4 個景點，每個景點停留較久",
		tone:    "著重寺廟、神社、博物館與古蹟，介紹歷史背景",
	},
	itinerary.StyleFood: {
		name:    "美食饗宴",
		density: "每天 3-4 個景點，穿插在地美食",
		tone:    "以餐廳、市場與街頭小吃為主軸，描述推薦餐點",
	},
}

// BuildPrompt renders the planning instructions sent to the model.
func BuildPrompt(req Request) string {
	var b strings.Builder

	destination := req.Destination
	if req.CountryName != "" {
		destination = req.CountryName + " " + req.Destination
	}

	fmt.Fprintf(&b, "你是一位專業的旅遊行程規劃師。請為前往%s的旅客規劃 %d 天的行程。\n\n", destination, req.NumDays)
	fmt.Fprintf(&b, "出發日期：%s\n", req.DepartureDate)
	if req.ArrivalTime != "" {
		fmt.Fprintf(&b, "第一天抵達時間：%s\n", req.ArrivalTime)
	}
	if req.DepartureTime != "" {
		fmt.Fprintf(&b, "最後一天回程班機時間：%s\n", req.DepartureTime)
	}

	if profile, ok := styleProfiles[req.Style]; ok {
		fmt.Fprintf(&b, "\n旅遊風格：%s\n- %s\n- %s\n", profile.name, profile.density, profile.tone)
	}

	if len(req.Accommodations) > 0 {
		b.WriteString("\n住宿安排：\n")
		day := 1
		for _, acc := range req.Accommodations {
			name := acc.CityName
			if name == "" {
				name = acc.CityID
			}
			fmt.Fprintf(&b, "- %s：%d 晚（第 %d 天起）\n", name, acc.Nights, day)
			day += acc.Nights
		}
		b.WriteString("請依照住宿城市安排每天的景點。\n")
	}

	b.WriteString(`
請只回傳 JSON，不要加任何說明文字，格式如下：
{
  "dailyItinerary": [
    {
      "dayLabel": "Day 1",
      "date": "MM/DD (星期)",
      "title": "當日標題",
      "highlight": "當日亮點",
      "description": "當日行程描述",
      "activities": [
        {"icon": "emoji", "title": "活動名稱", "description": "活動說明"}
      ],
      "recommendations": ["建議事項"],
      "meals": {"breakfast": "早餐", "lunch": "午餐", "dinner": "晚餐"},
      "accommodation": "住宿"
    }
  ]
}
第一天早餐為機上享用，最後一天晚餐以 "-" 表示，最後一天住宿為「返回溫暖的家」。
`)
	return b.String()
}
