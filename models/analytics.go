package models

// AnalyticsPeriod names the span a time-analytics run covers.
type AnalyticsPeriod string

const (
	PeriodDay   AnalyticsPeriod = "day"
	PeriodWeek  AnalyticsPeriod = "week"
	PeriodMonth AnalyticsPeriod = "month"
)

// InsightType classifies a generated insight.
type InsightType string

const (
	InsightObservation InsightType = "observation"
	InsightWarning     InsightType = "warning"
	InsightSuggestion  InsightType = "suggestion"
)

// Insight is one natural-language observation about how the period's time
// was spent. Prompt, when set, is a suggested follow-up the user can send to
// the assistant.
type Insight struct {
	Type    InsightType `json:"type"`
	Message string      `json:"message"`
	Prompt  string      `json:"prompt,omitempty"`
}

// TimeAnalytics aggregates time usage across a period. Percentages are each
// bucket's share of total classified minutes and sum to 100 (up to rounding)
// whenever any working time exists; all are 0 otherwise.
type TimeAnalytics struct {
	Period                   AnalyticsPeriod `json:"period"`
	MeetingPercent           float64         `json:"meetingPercent"`
	FocusPercent             float64         `json:"focusPercent"`
	AvailablePercent         float64         `json:"availablePercent"`
	BufferPercent            float64         `json:"bufferPercent"`
	TotalMeetingHours        float64         `json:"totalMeetingHours"`
	LongestFocusBlockMinutes int             `json:"longestFocusBlockMinutes"`
	BusiestDay               string          `json:"busiestDay,omitempty"` // "2006-01-02"
	Insights                 []Insight       `json:"insights"`
}
