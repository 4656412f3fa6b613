package calendar

import (
	"strings"

	"tempo/models"
)

var focusKeywords = []string{"focus", "deep work", "heads down", "writing", "coding"}
var personalKeywords = []string{"lunch", "gym", "workout", "doctor", "dentist", "personal", "errand"}

// inferCategory classifies a fetched event so the engine receives typed
// input. Title keywords win; otherwise attendee shape decides: solo events
// are personal time, meetings organized outside the user's calendar are
// external, the rest are plain meetings.
func inferCategory(ev models.TimedEvent) models.EventCategory {
	title := strings.ToLower(ev.Title)
	for _, kw := range focusKeywords {
		if strings.Contains(title, kw) {
			return models.CategoryFocus
		}
	}
	for _, kw := range personalKeywords {
		if strings.Contains(title, kw) {
			return models.CategoryPersonal
		}
	}
	if len(ev.Attendees) == 0 {
		return models.CategoryPersonal
	}
	if ev.Organizer != "" && !ev.IsOrganizer && !sharesDomain(ev.Organizer, ev.Attendees) {
		return models.CategoryExternal
	}
	return models.CategoryMeeting
}

// sharesDomain reports whether the organizer's email domain appears among
// the attendees marked as the user themselves.
func sharesDomain(organizer string, attendees []models.Attendee) bool {
	orgDomain := emailDomain(organizer)
	if orgDomain == "" {
		return true
	}
	for _, a := range attendees {
		if d := emailDomain(a.Email); d != "" && d == orgDomain {
			return true
		}
	}
	return false
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
