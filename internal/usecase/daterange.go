package usecase

import (
	"time"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

// Named range presets accepted by the KPI query surface.
const (
	RangeThisMonth = "this_month"
	RangeLast7Days = "last_7_days"
	RangeAll       = "all"
)

// allTimeFloor is the fixed lower bound of the "all" preset. Nothing in
// the store predates the company's launch.
var allTimeFloor = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// ResolvePreset maps a preset name to concrete inclusive bounds in UTC.
// Unknown names fall back to "all".
func ResolvePreset(name string, now time.Time) entity.DateRange {
	now = now.UTC()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)

	var from time.Time
	switch name {
	case RangeThisMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case RangeLast7Days:
		start := now.AddDate(0, 0, -6)
		from = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	default:
		from = allTimeFloor
	}

	return entity.DateRange{From: &from, To: &endOfToday}
}

// ClampForSeries fills in missing bounds so the day buckets of a chart
// can be enumerated: open starts clamp to the all-time floor, open ends
// to the end of today.
func ClampForSeries(r entity.DateRange, now time.Time) entity.DateRange {
	now = now.UTC()
	if r.From == nil {
		from := allTimeFloor
		r.From = &from
	}
	if r.To == nil {
		to := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
		r.To = &to
	}
	return r
}

func dayFloor(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
