package models

import "time"

// TimeSlot is a contiguous interval within a day, expressed as absolute
// instants in the governing timezone.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// DurationMinutes returns the slot length in whole minutes.
func (s TimeSlot) DurationMinutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// DayStats summarizes how one day's time is spent, in minutes.
type DayStats struct {
	MeetingMinutes   int `json:"meetingMinutes"`
	FocusMinutes     int `json:"focusMinutes"`
	AvailableMinutes int `json:"availableMinutes"`
}

// DaySchedule is the enriched view of a single calendar day: the day's
// events plus computed availability and usage stats. Built fresh per
// request, never persisted.
type DaySchedule struct {
	Date           string       `json:"date"` // "2006-01-02" in the policy timezone
	Timezone       string       `json:"timezone"`
	Events         []TimedEvent `json:"events"`
	AvailableSlots []TimeSlot   `json:"availableSlots"`
	Stats          DayStats     `json:"stats"`
}

// EventConflict maps one event to the other events whose time range overlaps
// it. Symmetric: if A conflicts with B, B conflicts with A.
type EventConflict struct {
	EventID             string   `json:"eventId"`
	ConflictingEventIDs []string `json:"conflictingEventIds"`
}
