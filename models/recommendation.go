package models

import "time"

// RecommendationType identifies which heuristic produced a recommendation
// and which executor branch handles it.
type RecommendationType string

const (
	RecScheduleFocusTime RecommendationType = "schedule_focus_time"
	RecAddBuffer         RecommendationType = "add_buffer"
	RecBatchMeetings     RecommendationType = "batch_meetings"
	RecDeclineMeeting    RecommendationType = "decline_meeting"
	RecReschedule        RecommendationType = "reschedule"
)

// RecommendationPriority is rule-assigned, never learned.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

// FocusSlotPayload names the concrete slot a focus block should cover.
type FocusSlotPayload struct {
	Date  string    `json:"date"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BufferPayload identifies the gap between two meetings to protect.
type BufferPayload struct {
	AfterEventID  string    `json:"afterEventId"`
	BeforeEventID string    `json:"beforeEventId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// BatchPayload lists the scattered short meetings to review together.
type BatchPayload struct {
	Date     string   `json:"date"`
	EventIDs []string `json:"eventIds"`
}

// DeclinePayload targets one meeting, or lists candidates when no single
// target was chosen.
type DeclinePayload struct {
	EventID           string   `json:"eventId,omitempty"`
	CandidateEventIDs []string `json:"candidateEventIds,omitempty"`
}

// ReschedulePayload targets one meeting to move, or lists candidates for the
// user to pick from.
type ReschedulePayload struct {
	EventID           string   `json:"eventId,omitempty"`
	CandidateEventIDs []string `json:"candidateEventIds,omitempty"`
}

// ActionPayload is a tagged union keyed by the recommendation type: exactly
// one variant is set for a well-formed payload. The executor validates the
// variant matching the type before touching the external provider.
type ActionPayload struct {
	Focus      *FocusSlotPayload  `json:"focus,omitempty"`
	Buffer     *BufferPayload     `json:"buffer,omitempty"`
	Batch      *BatchPayload      `json:"batch,omitempty"`
	Decline    *DeclinePayload    `json:"decline,omitempty"`
	Reschedule *ReschedulePayload `json:"reschedule,omitempty"`
}

// RecommendationAction is the executable half of a recommendation.
type RecommendationAction struct {
	Type    RecommendationType `json:"type"`
	Payload ActionPayload      `json:"payload"`
	Prompt  string             `json:"prompt,omitempty"`
}

// Recommendation is a generated, prioritized suggestion. It has no lifecycle
// of its own; it exists only until the caller decides to execute it.
type Recommendation struct {
	ID          string                 `json:"id"`
	Type        RecommendationType     `json:"type"`
	Priority    RecommendationPriority `json:"priority"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Impact      string                 `json:"impact,omitempty"`
	Action      RecommendationAction   `json:"action"`
}
