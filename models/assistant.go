package models

// AssistantRequest is one natural-language instruction from the user.
type AssistantRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text" binding:"required"`
}

// AssistantTurn is one prior exchange in a conversation. History is an
// immutable, explicitly-passed list; nothing mutates past turns.
type AssistantTurn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// AssistantContext is the conversation state persisted between requests.
type AssistantContext struct {
	Turns []AssistantTurn `json:"turns"`
}

// AssistantResponse carries free text plus, when the instruction maps to an
// executable suggestion, the structured recommendation to confirm.
type AssistantResponse struct {
	Intent          string           `json:"intent"` // "chat", "analytics", "availability", "recommend"
	ResponseText    string           `json:"responseText"`
	Analytics       *TimeAnalytics   `json:"analytics,omitempty"`
	AvailableSlots  []TimeSlot       `json:"availableSlots,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}
