package models

// WorkingHours is the daily window the user is willing to have meetings in,
// expressed as "HH:mm" wall-clock times in the policy timezone. Start < End.
type WorkingHours struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// ProtectedTimeBlock is recurring time the user never wants booked (e.g. a
// workout). Overlapping blocks simply union their excluded time.
type ProtectedTimeBlock struct {
	Label      string `bson:"label" json:"label"`
	Start      string `bson:"start" json:"start"` // "HH:mm"
	End        string `bson:"end" json:"end"`     // "HH:mm"
	DaysOfWeek []int  `bson:"daysOfWeek" json:"daysOfWeek"` // 0 = Sunday .. 6 = Saturday
}

// UserPolicy is the user's time policy. It is supplied fresh per request and
// treated as immutable for the duration of one computation.
type UserPolicy struct {
	WorkingHours                  WorkingHours         `bson:"workingHours" json:"workingHours"`
	ProtectedTimeBlocks           []ProtectedTimeBlock `bson:"protectedTimeBlocks,omitempty" json:"protectedTimeBlocks,omitempty"`
	DefaultMeetingDurationMinutes int                  `bson:"defaultMeetingDurationMinutes" json:"defaultMeetingDurationMinutes"`
	Timezone                      string               `bson:"timezone" json:"timezone"`
}

// DefaultUserPolicy returns the policy used when a user has not configured
// one. Callers pass it explicitly into every entry point; the engine itself
// never falls back to a shared default.
func DefaultUserPolicy() UserPolicy {
	return UserPolicy{
		WorkingHours:                  WorkingHours{Start: "09:00", End: "17:00"},
		DefaultMeetingDurationMinutes: 30,
		Timezone:                      "UTC",
	}
}

// PolicyRecord is the persisted form of a user's policy.
type PolicyRecord struct {
	UserID    string     `bson:"userId" json:"userId"`
	Email     string     `bson:"email,omitempty" json:"email,omitempty"`
	Policy    UserPolicy `bson:"policy" json:"policy"`
	UpdatedAt int64      `bson:"updatedAt" json:"updatedAt"` // unix seconds
}
