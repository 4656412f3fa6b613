package schedule

import (
	"fmt"
	"sort"
	"time"

	"tempo/models"

	"github.com/google/uuid"
)

const (
	focusSlotThresholdMinutes = 120
	focusTargetMinutes        = 90
	bufferGapMinutes          = 10
	shortMeetingMinutes       = 30
	scatterGapMinutes         = 60
	declineLoadRatio          = 0.75
)

// GenerateRecommendations applies the scheduling heuristics to a period's
// enriched day schedules. Each heuristic is independent; several may fire
// for the same day. The result is ordered priority-descending, stable on
// generation order within a tier.
func GenerateRecommendations(days []models.DaySchedule, policy models.UserPolicy) []models.Recommendation {
	loc := policyLocation(policy)
	var recs []models.Recommendation

	for _, day := range days {
		if r := focusTimeRecommendation(day); r != nil {
			recs = append(recs, *r)
		}
		recs = append(recs, bufferRecommendations(day)...)
		if r := batchRecommendation(day); r != nil {
			recs = append(recs, *r)
		}
		if r := declineRecommendation(day, policy, loc); r != nil {
			recs = append(recs, *r)
		}
		recs = append(recs, rescheduleRecommendations(day, policy, loc)...)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank(recs[i].Priority) < priorityRank(recs[j].Priority)
	})
	return recs
}

func priorityRank(p models.RecommendationPriority) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	default:
		return 2
	}
}

// focusTimeRecommendation fires when the day has a large open slot but
// little scheduled focus time.
func focusTimeRecommendation(day models.DaySchedule) *models.Recommendation {
	if day.Stats.FocusMinutes >= focusTargetMinutes {
		return nil
	}
	var longest *models.TimeSlot
	for i := range day.AvailableSlots {
		s := &day.AvailableSlots[i]
		if longest == nil || s.DurationMinutes() > longest.DurationMinutes() {
			longest = s
		}
	}
	if longest == nil || longest.DurationMinutes() < focusSlotThresholdMinutes {
		return nil
	}

	priority := models.PriorityMedium
	if day.Stats.FocusMinutes == 0 {
		priority = models.PriorityHigh
	}
	return &models.Recommendation{
		ID:          uuid.New().String(),
		Type:        models.RecScheduleFocusTime,
		Priority:    priority,
		Title:       "Protect a focus block",
		Description: fmt.Sprintf("%s has a %d-minute open stretch and only %d minutes of focus time.", day.Date, longest.DurationMinutes(), day.Stats.FocusMinutes),
		Impact:      fmt.Sprintf("Reclaims up to %d minutes of deep work", longest.DurationMinutes()),
		Action: models.RecommendationAction{
			Type:   models.RecScheduleFocusTime,
			Prompt: fmt.Sprintf("Block focus time on %s", day.Date),
			Payload: models.ActionPayload{
				Focus: &models.FocusSlotPayload{Date: day.Date, Start: longest.Start, End: longest.End},
			},
		},
	}
}

// bufferRecommendations fires for each pair of consecutive meetings whose
// gap is under the buffer threshold but still wide enough to hold an event.
func bufferRecommendations(day models.DaySchedule) []models.Recommendation {
	meetings := meetingsOf(day)
	var recs []models.Recommendation
	for i := 1; i < len(meetings); i++ {
		prev, next := meetings[i-1], meetings[i]
		gap := next.Start.Sub(prev.End)
		if gap <= 0 || gap >= bufferGapMinutes*time.Minute {
			continue
		}
		recs = append(recs, models.Recommendation{
			ID:          uuid.New().String(),
			Type:        models.RecAddBuffer,
			Priority:    models.PriorityMedium,
			Title:       "Add a buffer between meetings",
			Description: fmt.Sprintf("Only %d minutes between %q and %q on %s.", int(gap/time.Minute), prev.Title, next.Title, day.Date),
			Impact:      "Protects transition time so meetings stop bleeding into each other",
			Action: models.RecommendationAction{
				Type:   models.RecAddBuffer,
				Prompt: fmt.Sprintf("Add a buffer after %q", prev.Title),
				Payload: models.ActionPayload{
					Buffer: &models.BufferPayload{
						AfterEventID:  prev.ID,
						BeforeEventID: next.ID,
						Start:         prev.End,
						End:           next.Start,
					},
				},
			},
		})
	}
	return recs
}

// batchRecommendation fires when a day has several short small meetings
// scattered across it rather than stacked together. Informational: the
// payload lists the meetings, it does not mutate anything.
func batchRecommendation(day models.DaySchedule) *models.Recommendation {
	meetings := meetingsOf(day)
	var short []models.TimedEvent
	for _, ev := range meetings {
		if ev.DurationMinutes() < shortMeetingMinutes && len(ev.Attendees) <= 2 {
			short = append(short, ev)
		}
	}
	if len(short) < 3 {
		return nil
	}

	scattered := false
	for i := 1; i < len(short); i++ {
		if short[i].Start.Sub(short[i-1].End) > scatterGapMinutes*time.Minute {
			scattered = true
			break
		}
	}
	if !scattered {
		return nil
	}

	ids := make([]string, len(short))
	for i, ev := range short {
		ids[i] = ev.ID
	}
	return &models.Recommendation{
		ID:          uuid.New().String(),
		Type:        models.RecBatchMeetings,
		Priority:    models.PriorityLow,
		Title:       "Batch your short meetings",
		Description: fmt.Sprintf("%d short 1:1s are scattered across %s.", len(short), day.Date),
		Impact:      "Consolidating them frees contiguous time for deep work",
		Action: models.RecommendationAction{
			Type:    models.RecBatchMeetings,
			Prompt:  fmt.Sprintf("Help me consolidate my short meetings on %s", day.Date),
			Payload: models.ActionPayload{Batch: &models.BatchPayload{Date: day.Date, EventIDs: ids}},
		},
	}
}

// declineRecommendation fires when a day's meeting load exceeds the policy
// threshold, pointing at optional or non-organized meetings as decline
// candidates.
func declineRecommendation(day models.DaySchedule, policy models.UserPolicy, loc *time.Location) *models.Recommendation {
	working := workingMinutes(day, policy, loc)
	if working <= 0 || float64(day.Stats.MeetingMinutes) <= declineLoadRatio*float64(working) {
		return nil
	}

	var candidates []string
	for _, ev := range meetingsOf(day) {
		if !ev.IsOrganizer || attendeeIsOptional(ev) {
			candidates = append(candidates, ev.ID)
		}
	}
	return &models.Recommendation{
		ID:          uuid.New().String(),
		Type:        models.RecDeclineMeeting,
		Priority:    models.PriorityHigh,
		Title:       "Meeting overload",
		Description: fmt.Sprintf("Meetings fill %d of %d working minutes on %s.", day.Stats.MeetingMinutes, working, day.Date),
		Impact:      "Declining one or two optional meetings wins the day back",
		Action: models.RecommendationAction{
			Type:    models.RecDeclineMeeting,
			Prompt:  fmt.Sprintf("Which meetings on %s should I decline?", day.Date),
			Payload: models.ActionPayload{Decline: &models.DeclinePayload{CandidateEventIDs: candidates}},
		},
	}
}

// rescheduleRecommendations flags meetings falling outside working hours.
func rescheduleRecommendations(day models.DaySchedule, policy models.UserPolicy, loc *time.Location) []models.Recommendation {
	date, err := time.ParseInLocation("2006-01-02", day.Date, loc)
	if err != nil {
		return nil
	}
	ws, we, ok := workingWindow(date, policy, loc)
	if !ok {
		return nil
	}

	var recs []models.Recommendation
	for _, ev := range meetingsOf(day) {
		if !ev.Start.Before(ws) && !ev.End.After(we) {
			continue
		}
		recs = append(recs, models.Recommendation{
			ID:          uuid.New().String(),
			Type:        models.RecReschedule,
			Priority:    models.PriorityMedium,
			Title:       "Meeting outside working hours",
			Description: fmt.Sprintf("%q on %s runs outside your %s–%s window.", ev.Title, day.Date, policy.WorkingHours.Start, policy.WorkingHours.End),
			Impact:      "Moving it keeps evenings and mornings yours",
			Action: models.RecommendationAction{
				Type:    models.RecReschedule,
				Prompt:  fmt.Sprintf("Reschedule %q into my working hours", ev.Title),
				Payload: models.ActionPayload{Reschedule: &models.ReschedulePayload{EventID: ev.ID}},
			},
		})
	}
	return recs
}

func attendeeIsOptional(ev models.TimedEvent) bool {
	for _, a := range ev.Attendees {
		if a.Optional {
			return true
		}
	}
	return false
}
