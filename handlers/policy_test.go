package handlers

import (
	"testing"

	"tempo/models"
)

func validTestPolicy() models.UserPolicy {
	return models.UserPolicy{
		WorkingHours:                  models.WorkingHours{Start: "09:00", End: "17:00"},
		DefaultMeetingDurationMinutes: 30,
		Timezone:                      "UTC",
	}
}

func TestValidatePolicy_Accepts(t *testing.T) {
	p := validTestPolicy()
	p.ProtectedTimeBlocks = []models.ProtectedTimeBlock{
		{Label: "Gym", Start: "12:00", End: "13:00", DaysOfWeek: []int{1, 3, 5}},
	}
	if reason, ok := validatePolicy(p); !ok {
		t.Fatalf("expected valid policy, got %q", reason)
	}
}

func TestValidatePolicy_RejectsInvertedWorkingHours(t *testing.T) {
	p := validTestPolicy()
	p.WorkingHours = models.WorkingHours{Start: "17:00", End: "09:00"}
	if _, ok := validatePolicy(p); ok {
		t.Fatal("expected inverted working hours to be rejected")
	}
}

func TestValidatePolicy_RejectsMalformedClock(t *testing.T) {
	p := validTestPolicy()
	p.WorkingHours.Start = "nine"
	if _, ok := validatePolicy(p); ok {
		t.Fatal("expected malformed clock to be rejected")
	}
}

func TestValidatePolicy_RejectsUnknownTimezone(t *testing.T) {
	p := validTestPolicy()
	p.Timezone = "Mars/Olympus_Mons"
	if _, ok := validatePolicy(p); ok {
		t.Fatal("expected unknown timezone to be rejected")
	}
}

func TestValidatePolicy_RejectsBadProtectedBlockDay(t *testing.T) {
	p := validTestPolicy()
	p.ProtectedTimeBlocks = []models.ProtectedTimeBlock{
		{Label: "Gym", Start: "12:00", End: "13:00", DaysOfWeek: []int{7}},
	}
	if _, ok := validatePolicy(p); ok {
		t.Fatal("expected out-of-range weekday to be rejected")
	}
}

func TestValidatePolicy_RejectsNegativeDuration(t *testing.T) {
	p := validTestPolicy()
	p.DefaultMeetingDurationMinutes = -5
	if _, ok := validatePolicy(p); ok {
		t.Fatal("expected negative duration to be rejected")
	}
}
