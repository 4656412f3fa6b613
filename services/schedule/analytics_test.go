package schedule

import (
	"math"
	"testing"
	"time"

	"tempo/models"
)

func meetingEv(id string, start, end time.Time) models.TimedEvent {
	return models.TimedEvent{
		ID: id, Title: id, Start: start, End: end,
		Category:  models.CategoryMeeting,
		Attendees: []models.Attendee{{Email: "peer@example.com"}},
	}
}

func focusEv(id string, start, end time.Time) models.TimedEvent {
	return models.TimedEvent{ID: id, Title: id, Start: start, End: end, Category: models.CategoryFocus}
}

func buildDay(t *testing.T, events []models.TimedEvent, policy models.UserPolicy) models.DaySchedule {
	t.Helper()
	days := BuildDaySchedules(events, testDay, testDay, policy)
	if len(days) != 1 {
		t.Fatalf("expected one day schedule, got %d", len(days))
	}
	return days[0]
}

func TestComputeAnalytics_HeavyMeetingDay(t *testing.T) {
	policy := testPolicy()
	// Six contiguous meeting hours inside an eight-hour working day.
	events := []models.TimedEvent{
		meetingEv("m1", at(9, 0), at(12, 0)),
		meetingEv("m2", at(12, 0), at(15, 0)),
	}
	day := buildDay(t, events, policy)

	analytics := ComputeAnalytics([]models.DaySchedule{day}, models.PeriodDay, policy)

	if math.Abs(analytics.MeetingPercent-75.0) > 0.5 {
		t.Errorf("MeetingPercent = %.1f, want ~75", analytics.MeetingPercent)
	}
	if analytics.FocusPercent != 0 {
		t.Errorf("FocusPercent = %.1f, want 0", analytics.FocusPercent)
	}
	if math.Abs(analytics.AvailablePercent-25.0) > 0.5 {
		t.Errorf("AvailablePercent = %.1f, want ~25", analytics.AvailablePercent)
	}
	if analytics.TotalMeetingHours != 6.0 {
		t.Errorf("TotalMeetingHours = %.1f, want 6.0", analytics.TotalMeetingHours)
	}
	if analytics.BusiestDay != "2026-03-02" {
		t.Errorf("BusiestDay = %q, want 2026-03-02", analytics.BusiestDay)
	}
}

func TestComputeAnalytics_PercentagesSumToHundred(t *testing.T) {
	policy := testPolicy()
	events := []models.TimedEvent{
		meetingEv("m1", at(9, 0), at(10, 0)),
		meetingEv("m2", at(10, 5), at(10, 25)), // leaves a sub-minimum gap -> buffer
		focusEv("f1", at(13, 0), at(15, 0)),
	}
	day := buildDay(t, events, policy)

	analytics := ComputeAnalytics([]models.DaySchedule{day}, models.PeriodDay, policy)

	sum := analytics.MeetingPercent + analytics.FocusPercent + analytics.AvailablePercent + analytics.BufferPercent
	if math.Abs(sum-100.0) > 0.5 {
		t.Errorf("percentages sum to %.2f, want ~100", sum)
	}
	if analytics.BufferPercent <= 0 {
		t.Errorf("BufferPercent = %.1f, want > 0 for sub-minimum gaps", analytics.BufferPercent)
	}
}

func TestComputeAnalytics_NoWorkingTime(t *testing.T) {
	policy := testPolicy()
	policy.WorkingHours = models.WorkingHours{Start: "09:00", End: "09:00"}
	day := buildDay(t, nil, policy)

	analytics := ComputeAnalytics([]models.DaySchedule{day}, models.PeriodDay, policy)

	if analytics.MeetingPercent != 0 || analytics.FocusPercent != 0 ||
		analytics.AvailablePercent != 0 || analytics.BufferPercent != 0 {
		t.Errorf("all percentages must be 0 with no working time, got %+v", analytics)
	}
}

func TestComputeAnalytics_BusiestDayTieBreaksEarliest(t *testing.T) {
	policy := testPolicy()
	dayOne := buildDay(t, []models.TimedEvent{meetingEv("m1", at(9, 0), at(10, 0))}, policy)

	tuesday := testDay.AddDate(0, 0, 1)
	dayTwoEvents := []models.TimedEvent{
		meetingEv("m2", tuesday.Add(9*time.Hour), tuesday.Add(10*time.Hour)),
	}
	dayTwoList := BuildDaySchedules(dayTwoEvents, tuesday, tuesday, policy)

	analytics := ComputeAnalytics([]models.DaySchedule{dayOne, dayTwoList[0]}, models.PeriodWeek, policy)

	if analytics.BusiestDay != "2026-03-02" {
		t.Errorf("BusiestDay = %q, want the earlier 2026-03-02 on a tie", analytics.BusiestDay)
	}
}

func TestComputeAnalytics_LongestFocusBlock(t *testing.T) {
	policy := testPolicy()
	events := []models.TimedEvent{
		focusEv("f1", at(9, 0), at(10, 30)),
		focusEv("f2", at(13, 0), at(13, 45)),
	}
	day := buildDay(t, events, policy)

	analytics := ComputeAnalytics([]models.DaySchedule{day}, models.PeriodDay, policy)

	if analytics.LongestFocusBlockMinutes != 90 {
		t.Errorf("LongestFocusBlockMinutes = %d, want 90", analytics.LongestFocusBlockMinutes)
	}
}

func TestComputeAnalytics_NoFocusBlocksIsZero(t *testing.T) {
	policy := testPolicy()
	day := buildDay(t, []models.TimedEvent{meetingEv("m1", at(9, 0), at(10, 0))}, policy)

	analytics := ComputeAnalytics([]models.DaySchedule{day}, models.PeriodDay, policy)

	if analytics.LongestFocusBlockMinutes != 0 {
		t.Errorf("LongestFocusBlockMinutes = %d, want 0", analytics.LongestFocusBlockMinutes)
	}
}

func TestComputeAnalytics_BackToBackInsight(t *testing.T) {
	policy := testPolicy()
	events := []models.TimedEvent{
		meetingEv("m1", at(9, 0), at(10, 0)),
		meetingEv("m2", at(10, 0), at(11, 0)),
		meetingEv("m3", at(11, 0), at(12, 0)),
		meetingEv("m4", at(12, 5), at(13, 0)),
	}
	day := buildDay(t, events, policy)

	analytics := ComputeAnalytics([]models.DaySchedule{day}, models.PeriodDay, policy)

	found := false
	for _, ins := range analytics.Insights {
		if ins.Type == models.InsightWarning && ins.Prompt != "" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a back-to-back warning insight, got %v", analytics.Insights)
	}
}

func TestComputeAnalytics_EmptyPeriod(t *testing.T) {
	analytics := ComputeAnalytics(nil, models.PeriodWeek, testPolicy())

	if analytics.MeetingPercent != 0 || analytics.BusiestDay != "" {
		t.Errorf("empty period must produce zeroes, got %+v", analytics)
	}
}

func TestPeriodRange(t *testing.T) {
	loc := time.UTC
	// Wednesday 2026-03-04.
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, loc)

	start, end := PeriodRange(now, models.PeriodWeek, loc)
	if start.Format("2006-01-02") != "2026-03-02" || end.Format("2006-01-02") != "2026-03-08" {
		t.Errorf("week range = %s..%s, want 2026-03-02..2026-03-08", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	start, end = PeriodRange(now, models.PeriodDay, loc)
	if !start.Equal(end) || start.Format("2006-01-02") != "2026-03-04" {
		t.Errorf("day range = %s..%s, want the single day", start, end)
	}

	start, end = PeriodRange(now, models.PeriodMonth, loc)
	if start.Format("2006-01-02") != "2026-03-01" || end.Format("2006-01-02") != "2026-03-31" {
		t.Errorf("month range = %s..%s, want the calendar month", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
}
