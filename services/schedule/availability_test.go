package schedule

import (
	"reflect"
	"testing"
	"time"

	"tempo/models"
)

func testPolicy() models.UserPolicy {
	return models.UserPolicy{
		WorkingHours:                  models.WorkingHours{Start: "09:00", End: "17:00"},
		DefaultMeetingDurationMinutes: 30,
		Timezone:                      "UTC",
	}
}

// Monday 2026-03-02.
var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestComputeAvailability_SingleMeeting(t *testing.T) {
	events := []models.TimedEvent{ev("m", at(10, 0), at(11, 0))}

	slots := ComputeAvailability(events, testDay, testPolicy(), 30, false)

	want := []models.TimeSlot{
		{Start: at(9, 0), End: at(10, 0), Available: true},
		{Start: at(11, 0), End: at(17, 0), Available: true},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}
}

func TestComputeAvailability_EmptyCalendar(t *testing.T) {
	slots := ComputeAvailability(nil, testDay, testPolicy(), 30, true)

	if len(slots) != 1 {
		t.Fatalf("expected one full-day slot, got %v", slots)
	}
	if !slots[0].Start.Equal(at(9, 0)) || !slots[0].End.Equal(at(17, 0)) {
		t.Errorf("slot = %v, want 09:00-17:00", slots[0])
	}
}

func TestComputeAvailability_ShortGapsDroppedNotTruncated(t *testing.T) {
	events := []models.TimedEvent{
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(10, 20), at(17, 0)), // 20-minute gap, below the 30-minute minimum
	}

	slots := ComputeAvailability(events, testDay, testPolicy(), 30, false)

	if len(slots) != 0 {
		t.Errorf("expected no slots, got %v", slots)
	}
}

func TestComputeAvailability_MinimumDurationHonored(t *testing.T) {
	events := []models.TimedEvent{ev("m", at(10, 0), at(16, 30))}

	slots := ComputeAvailability(events, testDay, testPolicy(), 45, false)

	// 09:00-10:00 qualifies (60 min); 16:30-17:00 does not (30 min).
	if len(slots) != 1 {
		t.Fatalf("slots = %v, want exactly one", slots)
	}
	for _, s := range slots {
		if s.DurationMinutes() < 45 {
			t.Errorf("slot %v shorter than requested minimum", s)
		}
	}
}

func TestComputeAvailability_ProtectedTime(t *testing.T) {
	policy := testPolicy()
	policy.ProtectedTimeBlocks = []models.ProtectedTimeBlock{
		{Label: "workout", Start: "12:00", End: "13:00", DaysOfWeek: []int{1, 3, 5}},
	}

	withProtection := ComputeAvailability(nil, testDay, policy, 30, true)
	for _, s := range withProtection {
		if s.Start.Before(at(13, 0)) && s.End.After(at(12, 0)) {
			t.Errorf("slot %v intersects the protected block", s)
		}
	}

	// Same day, protection off: the block is plain availability again.
	without := ComputeAvailability(nil, testDay, policy, 30, false)
	if len(without) != 1 || !without[0].Start.Equal(at(9, 0)) || !without[0].End.Equal(at(17, 0)) {
		t.Errorf("without protection = %v, want single 09:00-17:00 slot", without)
	}
}

func TestComputeAvailability_ProtectedBlockWrongWeekday(t *testing.T) {
	policy := testPolicy()
	policy.ProtectedTimeBlocks = []models.ProtectedTimeBlock{
		{Label: "workout", Start: "12:00", End: "13:00", DaysOfWeek: []int{0, 6}}, // weekends only
	}

	slots := ComputeAvailability(nil, testDay, policy, 30, true) // Monday

	if len(slots) != 1 {
		t.Errorf("weekend block must not apply on Monday, got %v", slots)
	}
}

func TestComputeAvailability_OverlappingBusyIntervalsMerged(t *testing.T) {
	events := []models.TimedEvent{
		ev("a", at(10, 0), at(11, 0)),
		ev("b", at(10, 30), at(11, 30)),
		ev("c", at(11, 30), at(12, 0)), // adjacent
	}

	slots := ComputeAvailability(events, testDay, testPolicy(), 30, false)

	want := []models.TimeSlot{
		{Start: at(9, 0), End: at(10, 0), Available: true},
		{Start: at(12, 0), End: at(17, 0), Available: true},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}
}

func TestComputeAvailability_AllDayEventIgnored(t *testing.T) {
	events := []models.TimedEvent{
		{ID: "offsite", Start: testDay, End: testDay.AddDate(0, 0, 1), AllDay: true},
	}

	slots := ComputeAvailability(events, testDay, testPolicy(), 30, true)

	if len(slots) != 1 {
		t.Errorf("all-day event must not consume availability, got %v", slots)
	}
}

func TestComputeAvailability_EventSpillingPastWorkingHours(t *testing.T) {
	events := []models.TimedEvent{
		ev("early", at(7, 0), at(9, 30)),
		ev("late", at(16, 30), at(19, 0)),
	}

	slots := ComputeAvailability(events, testDay, testPolicy(), 30, false)

	want := []models.TimeSlot{{Start: at(9, 30), End: at(16, 30), Available: true}}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("slots = %v, want %v", slots, want)
	}
}

func TestComputeAvailability_ZeroWidthWorkingHours(t *testing.T) {
	policy := testPolicy()
	policy.WorkingHours = models.WorkingHours{Start: "09:00", End: "09:00"}

	if slots := ComputeAvailability(nil, testDay, policy, 30, true); len(slots) != 0 {
		t.Errorf("zero-width working hours must yield no slots, got %v", slots)
	}
}

func TestComputeAvailability_MalformedPolicy(t *testing.T) {
	policy := testPolicy()
	policy.WorkingHours = models.WorkingHours{Start: "nine", End: "17:00"}

	if slots := ComputeAvailability(nil, testDay, policy, 30, true); len(slots) != 0 {
		t.Errorf("malformed working hours must yield no slots, got %v", slots)
	}
}

func TestComputeAvailability_Idempotent(t *testing.T) {
	events := []models.TimedEvent{
		ev("a", at(10, 0), at(11, 0)),
		ev("b", at(13, 0), at(14, 0)),
	}
	policy := testPolicy()

	first := ComputeAvailability(events, testDay, policy, 30, true)
	second := ComputeAvailability(events, testDay, policy, 30, true)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestNextSlot(t *testing.T) {
	slots := []models.TimeSlot{
		{Start: at(9, 0), End: at(10, 0), Available: true},
		{Start: at(11, 0), End: at(12, 0), Available: true},
	}

	if got := NextSlot(slots, at(10, 30)); got == nil || !got.Start.Equal(at(11, 0)) {
		t.Errorf("NextSlot = %v, want the 11:00 slot", got)
	}
	if got := NextSlot(slots, at(13, 0)); got != nil {
		t.Errorf("NextSlot past all slots = %v, want nil", got)
	}
}

func TestComputeAvailability_TimezoneRespected(t *testing.T) {
	policy := testPolicy()
	policy.Timezone = "America/New_York"

	slots := ComputeAvailability(nil, testDay, policy, 30, true)

	loc, _ := time.LoadLocation("America/New_York")
	if len(slots) != 1 {
		t.Fatalf("slots = %v, want one", slots)
	}
	if got := slots[0].Start.In(loc).Hour(); got != 9 {
		t.Errorf("slot starts at %d local, want 9", got)
	}
}
