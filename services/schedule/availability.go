package schedule

import (
	"sort"
	"time"

	"tempo/models"
)

type interval struct {
	start, end time.Time
}

// ComputeAvailability returns the ordered, non-overlapping free slots within
// the day's working hours that are at least durationMinutes long and not
// covered by a busy interval or, when respectProtectedTime is set, a
// protected-time block. Gaps shorter than the minimum are dropped, never
// truncated. A zero-width working window yields an empty list, not an error:
// zero availability is a valid answer.
func ComputeAvailability(
	events []models.TimedEvent,
	day time.Time,
	policy models.UserPolicy,
	durationMinutes int,
	respectProtectedTime bool,
) []models.TimeSlot {
	loc := policyLocation(policy)

	windowStart, windowEnd, ok := workingWindow(day, policy, loc)
	if !ok {
		return nil
	}

	if durationMinutes <= 0 {
		durationMinutes = policy.DefaultMeetingDurationMinutes
	}
	if durationMinutes <= 0 {
		durationMinutes = 30
	}
	minGap := time.Duration(durationMinutes) * time.Minute

	var busy []interval
	for _, ev := range events {
		if ev.AllDay || !ev.End.After(ev.Start) {
			continue
		}
		busy = append(busy, interval{start: ev.Start, end: ev.End})
	}
	if respectProtectedTime {
		busy = append(busy, protectedIntervals(day, policy, loc)...)
	}
	merged := mergeIntervals(busy)

	var slots []models.TimeSlot
	cursor := windowStart
	for _, iv := range merged {
		if iv.start.After(cursor) {
			gapEnd := iv.start
			if gapEnd.After(windowEnd) {
				gapEnd = windowEnd
			}
			if gapEnd.Sub(cursor) >= minGap {
				slots = append(slots, models.TimeSlot{Start: cursor, End: gapEnd, Available: true})
			}
		}
		if iv.end.After(cursor) {
			cursor = iv.end
		}
		if !cursor.Before(windowEnd) {
			return slots
		}
	}
	if windowEnd.Sub(cursor) >= minGap {
		slots = append(slots, models.TimeSlot{Start: cursor, End: windowEnd, Available: true})
	}
	return slots
}

// NextSlot returns the first slot whose start is at or after floor, or nil.
func NextSlot(slots []models.TimeSlot, floor time.Time) *models.TimeSlot {
	for i := range slots {
		if !slots[i].Start.Before(floor) {
			return &slots[i]
		}
	}
	return nil
}

// workingWindow materializes the policy's working hours for a specific date.
// ok is false when the clock strings are malformed or the window has no
// width.
func workingWindow(day time.Time, policy models.UserPolicy, loc *time.Location) (time.Time, time.Time, bool) {
	startH, startM, ok1 := parseClock(policy.WorkingHours.Start)
	endH, endM, ok2 := parseClock(policy.WorkingHours.End)
	if !ok1 || !ok2 {
		return time.Time{}, time.Time{}, false
	}
	d := day.In(loc)
	ws := time.Date(d.Year(), d.Month(), d.Day(), startH, startM, 0, 0, loc)
	we := time.Date(d.Year(), d.Month(), d.Day(), endH, endM, 0, 0, loc)
	if !ws.Before(we) {
		return time.Time{}, time.Time{}, false
	}
	return ws, we, true
}

// protectedIntervals expresses every protected block recurring on the given
// date's weekday as an absolute interval for that date.
func protectedIntervals(day time.Time, policy models.UserPolicy, loc *time.Location) []interval {
	d := day.In(loc)
	weekday := int(d.Weekday())

	var out []interval
	for _, block := range policy.ProtectedTimeBlocks {
		if !containsDay(block.DaysOfWeek, weekday) {
			continue
		}
		startH, startM, ok1 := parseClock(block.Start)
		endH, endM, ok2 := parseClock(block.End)
		if !ok1 || !ok2 {
			continue
		}
		bs := time.Date(d.Year(), d.Month(), d.Day(), startH, startM, 0, 0, loc)
		be := time.Date(d.Year(), d.Month(), d.Day(), endH, endM, 0, 0, loc)
		if bs.Before(be) {
			out = append(out, interval{start: bs, end: be})
		}
	}
	return out
}

// mergeIntervals collapses overlapping or adjacent intervals into a minimal
// disjoint set sorted by start.
func mergeIntervals(ivs []interval) []interval {
	if len(ivs) == 0 {
		return nil
	}
	sort.Slice(ivs, func(i, j int) bool {
		return ivs[i].start.Before(ivs[j].start)
	})
	merged := []interval{ivs[0]}
	for _, iv := range ivs[1:] {
		last := &merged[len(merged)-1]
		if !iv.start.After(last.end) {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

func parseClock(s string) (hour, minute int, ok bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func policyLocation(policy models.UserPolicy) *time.Location {
	loc, err := time.LoadLocation(policy.Timezone)
	if err != nil || policy.Timezone == "" {
		return time.UTC
	}
	return loc
}
