package analytics

import (
	"time"
)

// PeriodKey names one of the six fixed dashboard windows.
type PeriodKey string

const (
	PeriodToday     PeriodKey = "today"
	PeriodYesterday PeriodKey = "yesterday"
	PeriodLast7     PeriodKey = "last_7_days"
	PeriodLast30    PeriodKey = "last_30_days"
	PeriodLastMonth PeriodKey = "last_month"
	PeriodMTD       PeriodKey = "month_to_date"
)

// PeriodKeys lists the windows in display order.
var PeriodKeys = []PeriodKey{
	PeriodToday,
	PeriodYesterday,
	PeriodLast7,
	PeriodLast30,
	PeriodLastMonth,
	PeriodMTD,
}

var periodLabels = map[PeriodKey]string{
	PeriodToday:     "Today",
	PeriodYesterday: "Yesterday",
	PeriodLast7:     "Last 7 Days",
	PeriodLast30:    "Last 30 Days",
	PeriodLastMonth: "Last Month",
	PeriodMTD:       "Month to Date",
}

// Label returns the human name for the window.
func (k PeriodKey) Label() string {
	if l, ok := periodLabels[k]; ok {
		return l
	}
	return string(k)
}

// Period is a half-open [Start, End) window in UTC.
type Period struct {
	Key   PeriodKey
	Start time.Time
	End   time.Time
}

// PeriodBoundaries computes all six windows. Civil boundaries (midnight,
// first of month) are taken in loc and converted to UTC, so queries against
// UTC-stored timestamps line up with the local business day.
func PeriodBoundaries(now time.Time, loc *time.Location) []Period {
	local := now.In(loc)
	todayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	tomorrowStart := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	return []Period{
		{Key: PeriodToday, Start: todayStart.UTC(), End: tomorrowStart.UTC()},
		{Key: PeriodYesterday, Start: todayStart.AddDate(0, 0, -1).UTC(), End: todayStart.UTC()},
		{Key: PeriodLast7, Start: todayStart.AddDate(0, 0, -6).UTC(), End: tomorrowStart.UTC()},
		{Key: PeriodLast30, Start: todayStart.AddDate(0, 0, -29).UTC(), End: tomorrowStart.UTC()},
		{Key: PeriodLastMonth, Start: prevMonthStart.UTC(), End: monthStart.UTC()},
		{Key: PeriodMTD, Start: monthStart.UTC(), End: tomorrowStart.UTC()},
	}
}
