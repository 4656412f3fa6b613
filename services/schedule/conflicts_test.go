package schedule

import (
	"testing"
	"time"

	"tempo/models"
)

func ev(id string, start, end time.Time) models.TimedEvent {
	return models.TimedEvent{ID: id, Title: id, Start: start, End: end, Category: models.CategoryMeeting}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestDetectConflicts_OverlappingPair(t *testing.T) {
	events := []models.TimedEvent{
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(9, 30), at(10, 30)),
		ev("c", at(11, 0), at(12, 0)),
	}

	conflicts := DetectConflicts(events)

	if got := conflicts["a"].ConflictingEventIDs; len(got) != 1 || got[0] != "b" {
		t.Errorf("conflicts[a] = %v, want [b]", got)
	}
	if got := conflicts["b"].ConflictingEventIDs; len(got) != 1 || got[0] != "a" {
		t.Errorf("conflicts[b] = %v, want [a]", got)
	}
	if got := conflicts["c"].ConflictingEventIDs; len(got) != 0 {
		t.Errorf("conflicts[c] = %v, want empty", got)
	}
}

func TestDetectConflicts_Symmetry(t *testing.T) {
	events := []models.TimedEvent{
		ev("a", at(9, 0), at(11, 0)),
		ev("b", at(9, 30), at(10, 0)),
		ev("c", at(10, 30), at(12, 0)),
		ev("d", at(11, 30), at(13, 0)),
		ev("e", at(14, 0), at(15, 0)),
	}

	conflicts := DetectConflicts(events)

	for id, c := range conflicts {
		for _, other := range c.ConflictingEventIDs {
			found := false
			for _, back := range conflicts[other].ConflictingEventIDs {
				if back == id {
					found = true
				}
			}
			if !found {
				t.Errorf("%s conflicts with %s but not vice versa", id, other)
			}
		}
	}
}

func TestDetectConflicts_AllDayExcluded(t *testing.T) {
	allDay := models.TimedEvent{
		ID:     "holiday",
		Start:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		AllDay: true,
	}
	events := []models.TimedEvent{
		allDay,
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(9, 30), at(10, 30)),
	}

	conflicts := DetectConflicts(events)

	if _, ok := conflicts["holiday"]; ok {
		t.Error("all-day event must not appear in the conflict map")
	}
	for id, c := range conflicts {
		for _, other := range c.ConflictingEventIDs {
			if other == "holiday" {
				t.Errorf("%s lists the all-day event as a conflict", id)
			}
		}
	}
}

func TestDetectConflicts_ZeroDurationNeverConflicts(t *testing.T) {
	events := []models.TimedEvent{
		ev("a", at(9, 0), at(10, 0)),
		ev("zero", at(9, 30), at(9, 30)),
		ev("zero2", at(9, 30), at(9, 30)),
	}

	conflicts := DetectConflicts(events)

	if got := conflicts["zero"].ConflictingEventIDs; len(got) != 0 {
		t.Errorf("zero-duration event conflicts = %v, want empty", got)
	}
	if got := conflicts["a"].ConflictingEventIDs; len(got) != 0 {
		t.Errorf("event a conflicts = %v, want empty (zero-duration neighbors)", got)
	}
}

func TestDetectConflicts_IdenticalRanges(t *testing.T) {
	events := []models.TimedEvent{
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(9, 0), at(10, 0)),
	}

	conflicts := DetectConflicts(events)

	if got := conflicts["a"].ConflictingEventIDs; len(got) != 1 || got[0] != "b" {
		t.Errorf("conflicts[a] = %v, want [b]", got)
	}
}

func TestDetectConflicts_TouchingEventsDoNotConflict(t *testing.T) {
	events := []models.TimedEvent{
		ev("a", at(9, 0), at(10, 0)),
		ev("b", at(10, 0), at(11, 0)),
	}

	conflicts := DetectConflicts(events)

	if got := conflicts["a"].ConflictingEventIDs; len(got) != 0 {
		t.Errorf("back-to-back events should not conflict, got %v", got)
	}
}

func TestDetectConflicts_Empty(t *testing.T) {
	if got := DetectConflicts(nil); len(got) != 0 {
		t.Errorf("DetectConflicts(nil) = %v, want empty map", got)
	}
}
