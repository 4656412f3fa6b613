package models

import "time"

// EventCategory classifies how a calendar event spends the user's time.
type EventCategory string

const (
	CategoryMeeting  EventCategory = "meeting"
	CategoryFocus    EventCategory = "focus"
	CategoryPersonal EventCategory = "personal"
	CategoryExternal EventCategory = "external"
)

// Attendee is a participant on a calendar event.
type Attendee struct {
	Email          string `bson:"email" json:"email"`
	Name           string `bson:"name,omitempty" json:"name,omitempty"`
	Optional       bool   `bson:"optional,omitempty" json:"optional,omitempty"`
	ResponseStatus string `bson:"responseStatus,omitempty" json:"responseStatus,omitempty"` // "accepted", "declined", "tentative", "needsAction"
}

// TimedEvent is the normalized view of one calendar event as returned by the
// external provider. Invariant: Start < End unless AllDay. All-day events
// never participate in conflict or busy-interval reasoning.
type TimedEvent struct {
	ID          string        `bson:"id" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Start       time.Time     `bson:"start" json:"start"`
	End         time.Time     `bson:"end" json:"end"`
	AllDay      bool          `bson:"allDay" json:"allDay"`
	Category    EventCategory `bson:"category" json:"category"`
	Attendees   []Attendee    `bson:"attendees,omitempty" json:"attendees,omitempty"`
	Organizer   string        `bson:"organizer,omitempty" json:"organizer,omitempty"`
	IsOrganizer bool          `bson:"isOrganizer,omitempty" json:"isOrganizer,omitempty"`
	Location    string        `bson:"location,omitempty" json:"location,omitempty"`
}

// DurationMinutes returns the event length in whole minutes, 0 for all-day events.
func (e TimedEvent) DurationMinutes() int {
	if e.AllDay {
		return 0
	}
	return int(e.End.Sub(e.Start) / time.Minute)
}

// EventInput carries the fields needed to create a new calendar event.
type EventInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start" binding:"required"`
	End         time.Time  `json:"end" binding:"required"`
	Timezone    string     `json:"timezone,omitempty"`
	Attendees   []Attendee `json:"attendees,omitempty"`
	Location    string     `json:"location,omitempty"`
}

// EventPatch is a partial update applied to an existing event. Nil fields are
// left untouched by the provider.
type EventPatch struct {
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
	Timezone *string    `json:"timezone,omitempty"`
}
