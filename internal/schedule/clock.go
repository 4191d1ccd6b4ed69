package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

const dateLayout = "2006-01-02"

var weekdaysChinese = [...]string{"日", "一", "二", "三", "四", "五", "六"}

// TimeToMinutes converts "HH:MM" to minutes since midnight. Malformed parts count as zero.
func TimeToMinutes(clock string) int {
	h, m, _ := strings.Cut(strings.TrimSpace(clock), ":")
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return hours*60 + minutes
}

// MinutesToTime formats minutes since midnight as "HH:MM", wrapping into a single day.
func MinutesToTime(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DurationMinutes returns end minus start; negative when end precedes start.
func DurationMinutes(start, end string) int {
	return TimeToMinutes(end) - TimeToMinutes(start)
}

func AddMinutes(clock string, delta int) string {
	return MinutesToTime(TimeToMinutes(clock) + delta)
}

func WeekdayChinese(t time.Time) string {
	return weekdaysChinese[t.Weekday()]
}

// FormatDisplayDate renders "MM/DD (X)" where X is the Chinese weekday.
func FormatDisplayDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d (%s)", int(t.Month()), t.Day(), WeekdayChinese(t))
}

// ParseDate parses an ISO calendar date ("2006-01-02") in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
