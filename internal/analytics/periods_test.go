package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func periodByKey(t *testing.T, periods []Period, key PeriodKey) Period {
	t.Helper()
	for _, p := range periods {
		if p.Key == key {
			return p
		}
	}
	t.Fatalf("period %s missing", key)
	return Period{}
}

func TestPeriodBoundariesConvertCivilMidnightToUTC(t *testing.T) {
	loc := kolkata(t)
	// 2026-03-10 10:00 IST == 04:30 UTC.
	now := time.Date(2026, 3, 10, 4, 30, 0, 0, time.UTC)

	periods := PeriodBoundaries(now, loc)

	today := periodByKey(t, periods, PeriodToday)
	// Midnight IST on Mar 10 is 18:30 UTC on Mar 9.
	assert.Equal(t, time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC), today.Start)
	assert.Equal(t, time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC), today.End)

	yesterday := periodByKey(t, periods, PeriodYesterday)
	assert.Equal(t, today.Start.AddDate(0, 0, -1), yesterday.Start)
	assert.Equal(t, today.Start, yesterday.End)
}

func TestPeriodBoundariesLocalDateWins(t *testing.T) {
	loc := kolkata(t)
	// 2026-03-09 20:00 UTC is already 2026-03-10 01:30 IST, so the local
	// business day is Mar 10.
	now := time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)

	today := periodByKey(t, PeriodBoundaries(now, loc), PeriodToday)
	assert.Equal(t, time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC), today.Start)
}

func TestPeriodBoundariesCalendarMonthEdges(t *testing.T) {
	loc := kolkata(t)
	// March 1st in IST.
	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	periods := PeriodBoundaries(now, loc)

	lastMonth := periodByKey(t, periods, PeriodLastMonth)
	// February 2026 in IST: Feb 1 00:00 IST .. Mar 1 00:00 IST.
	assert.Equal(t, time.Date(2026, 1, 31, 18, 30, 0, 0, time.UTC), lastMonth.Start)
	assert.Equal(t, time.Date(2026, 2, 28, 18, 30, 0, 0, time.UTC), lastMonth.End)

	mtd := periodByKey(t, periods, PeriodMTD)
	assert.Equal(t, lastMonth.End, mtd.Start)
	today := periodByKey(t, periods, PeriodToday)
	assert.Equal(t, today.End, mtd.End)
}

func TestPeriodBoundariesJanuaryLastMonthCrossesYear(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	lastMonth := periodByKey(t, PeriodBoundaries(now, loc), PeriodLastMonth)
	assert.Equal(t, time.Date(2025, 11, 30, 18, 30, 0, 0, time.UTC), lastMonth.Start)
	assert.Equal(t, time.Date(2025, 12, 31, 18, 30, 0, 0, time.UTC), lastMonth.End)
}

func TestPeriodBoundariesTrailingWindows(t *testing.T) {
	loc := kolkata(t)
	now := time.Date(2026, 3, 10, 4, 30, 0, 0, time.UTC)
	periods := PeriodBoundaries(now, loc)

	today := periodByKey(t, periods, PeriodToday)

	last7 := periodByKey(t, periods, PeriodLast7)
	assert.Equal(t, today.Start.AddDate(0, 0, -6), last7.Start)
	assert.Equal(t, today.End, last7.End)

	last30 := periodByKey(t, periods, PeriodLast30)
	assert.Equal(t, today.Start.AddDate(0, 0, -29), last30.Start)
	assert.Equal(t, today.End, last30.End)
}
