package calendar

import (
	"testing"

	"tempo/models"
)

func TestInferCategory_FocusKeywordWins(t *testing.T) {
	ev := models.TimedEvent{
		Title:     "Deep work: quarterly report",
		Attendees: []models.Attendee{{Email: "peer@example.com"}},
	}
	if got := inferCategory(ev); got != models.CategoryFocus {
		t.Fatalf("expected focus, got %s", got)
	}
}

func TestInferCategory_PersonalKeyword(t *testing.T) {
	ev := models.TimedEvent{Title: "Dentist appointment"}
	if got := inferCategory(ev); got != models.CategoryPersonal {
		t.Fatalf("expected personal, got %s", got)
	}
}

func TestInferCategory_SoloEventIsPersonal(t *testing.T) {
	ev := models.TimedEvent{Title: "Prep slides"}
	if got := inferCategory(ev); got != models.CategoryPersonal {
		t.Fatalf("expected personal for solo event, got %s", got)
	}
}

func TestInferCategory_ExternalOrganizer(t *testing.T) {
	ev := models.TimedEvent{
		Title:       "Vendor sync",
		Organizer:   "sales@vendor.io",
		IsOrganizer: false,
		Attendees: []models.Attendee{
			{Email: "me@example.com"},
			{Email: "sales@vendor.io"},
		},
	}
	// Organizer shares a domain with an attendee, so this stays a meeting.
	if got := inferCategory(ev); got != models.CategoryMeeting {
		t.Fatalf("expected meeting, got %s", got)
	}

	ev.Attendees = []models.Attendee{{Email: "me@example.com"}, {Email: "peer@example.com"}}
	if got := inferCategory(ev); got != models.CategoryExternal {
		t.Fatalf("expected external, got %s", got)
	}
}

func TestInferCategory_OwnMeetingStaysMeeting(t *testing.T) {
	ev := models.TimedEvent{
		Title:       "1:1 with Sam",
		Organizer:   "me@example.com",
		IsOrganizer: true,
		Attendees: []models.Attendee{
			{Email: "me@example.com"},
			{Email: "sam@example.com"},
		},
	}
	if got := inferCategory(ev); got != models.CategoryMeeting {
		t.Fatalf("expected meeting, got %s", got)
	}
}
