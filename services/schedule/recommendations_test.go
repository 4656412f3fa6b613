package schedule

import (
	"testing"
	"time"

	"tempo/models"
)

func recsOfType(recs []models.Recommendation, t models.RecommendationType) []models.Recommendation {
	var out []models.Recommendation
	for _, r := range recs {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

func TestGenerateRecommendations_FocusTime(t *testing.T) {
	policy := testPolicy()
	// One morning meeting leaves the whole afternoon open, no focus booked.
	day := buildDay(t, []models.TimedEvent{meetingEv("m1", at(9, 0), at(10, 0))}, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	focus := recsOfType(recs, models.RecScheduleFocusTime)
	if len(focus) != 1 {
		t.Fatalf("focus recommendations = %d, want 1", len(focus))
	}
	if focus[0].Priority != models.PriorityHigh {
		t.Errorf("priority = %s, want high for a zero-focus day", focus[0].Priority)
	}
	payload := focus[0].Action.Payload.Focus
	if payload == nil {
		t.Fatal("focus payload missing")
	}
	if !payload.Start.Equal(at(10, 0)) || !payload.End.Equal(at(17, 0)) {
		t.Errorf("payload slot = %v-%v, want the 10:00-17:00 stretch", payload.Start, payload.End)
	}
}

func TestGenerateRecommendations_FocusTimeSkippedWhenFocusSufficient(t *testing.T) {
	policy := testPolicy()
	day := buildDay(t, []models.TimedEvent{focusEv("f1", at(9, 0), at(11, 0))}, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	if got := recsOfType(recs, models.RecScheduleFocusTime); len(got) != 0 {
		t.Errorf("focus recommendations = %v, want none with 120 focus minutes booked", got)
	}
}

func TestGenerateRecommendations_AddBuffer(t *testing.T) {
	policy := testPolicy()
	day := buildDay(t, []models.TimedEvent{
		meetingEv("m1", at(9, 0), at(10, 0)),
		meetingEv("m2", at(10, 5), at(11, 0)),
	}, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	buffers := recsOfType(recs, models.RecAddBuffer)
	if len(buffers) != 1 {
		t.Fatalf("buffer recommendations = %d, want 1", len(buffers))
	}
	p := buffers[0].Action.Payload.Buffer
	if p == nil || p.AfterEventID != "m1" || p.BeforeEventID != "m2" {
		t.Fatalf("buffer payload = %+v, want the m1->m2 gap", p)
	}
	if !p.Start.Equal(at(10, 0)) || !p.End.Equal(at(10, 5)) {
		t.Errorf("buffer slot = %v-%v, want 10:00-10:05", p.Start, p.End)
	}
}

func TestGenerateRecommendations_NoBufferForTrueBackToBack(t *testing.T) {
	policy := testPolicy()
	// Zero gap: there is nowhere to put a buffer event.
	day := buildDay(t, []models.TimedEvent{
		meetingEv("m1", at(9, 0), at(10, 0)),
		meetingEv("m2", at(10, 0), at(11, 0)),
	}, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	if got := recsOfType(recs, models.RecAddBuffer); len(got) != 0 {
		t.Errorf("buffer recommendations = %v, want none for a zero gap", got)
	}
}

func TestGenerateRecommendations_BatchMeetings(t *testing.T) {
	policy := testPolicy()
	day := buildDay(t, []models.TimedEvent{
		meetingEv("s1", at(9, 0), at(9, 20)),
		meetingEv("s2", at(11, 0), at(11, 20)),
		meetingEv("s3", at(14, 0), at(14, 20)),
	}, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	batches := recsOfType(recs, models.RecBatchMeetings)
	if len(batches) != 1 {
		t.Fatalf("batch recommendations = %d, want 1", len(batches))
	}
	p := batches[0].Action.Payload.Batch
	if p == nil || len(p.EventIDs) != 3 {
		t.Errorf("batch payload = %+v, want the three short meetings", p)
	}
}

func TestGenerateRecommendations_BatchSkippedWhenStacked(t *testing.T) {
	policy := testPolicy()
	day := buildDay(t, []models.TimedEvent{
		meetingEv("s1", at(9, 0), at(9, 20)),
		meetingEv("s2", at(9, 20), at(9, 40)),
		meetingEv("s3", at(9, 40), at(10, 0)),
	}, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	if got := recsOfType(recs, models.RecBatchMeetings); len(got) != 0 {
		t.Errorf("batch recommendations = %v, want none when already adjacent", got)
	}
}

func TestGenerateRecommendations_DeclineOnOverload(t *testing.T) {
	policy := testPolicy()
	// Seven meeting hours in an eight-hour day: over the 75% threshold.
	day := buildDay(t, []models.TimedEvent{
		meetingEv("m1", at(9, 0), at(13, 0)),
		meetingEv("m2", at(13, 0), at(16, 0)),
	}, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	declines := recsOfType(recs, models.RecDeclineMeeting)
	if len(declines) != 1 {
		t.Fatalf("decline recommendations = %d, want 1", len(declines))
	}
	if declines[0].Priority != models.PriorityHigh {
		t.Errorf("priority = %s, want high", declines[0].Priority)
	}
	if declines[0].Action.Payload.Decline == nil {
		t.Error("decline payload missing")
	}
}

func TestGenerateRecommendations_RescheduleOutsideWorkingHours(t *testing.T) {
	policy := testPolicy()
	day := buildDay(t, []models.TimedEvent{meetingEv("late", at(18, 0), at(19, 0))}, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	moves := recsOfType(recs, models.RecReschedule)
	if len(moves) != 1 {
		t.Fatalf("reschedule recommendations = %d, want 1", len(moves))
	}
	p := moves[0].Action.Payload.Reschedule
	if p == nil || p.EventID != "late" {
		t.Errorf("reschedule payload = %+v, want the out-of-hours meeting", p)
	}
}

func TestGenerateRecommendations_PriorityOrdering(t *testing.T) {
	policy := testPolicy()
	// Overload day (high) plus a short-gap pair (medium) plus scattered
	// short meetings on another day (low).
	overload := buildDay(t, []models.TimedEvent{
		meetingEv("m1", at(9, 0), at(13, 0)),
		meetingEv("m2", at(13, 5), at(16, 0)),
	}, policy)

	tuesday := testDay.AddDate(0, 0, 1)
	tu := func(h, m int) time.Time { return time.Date(2026, 3, 3, h, m, 0, 0, time.UTC) }
	scattered := BuildDaySchedules([]models.TimedEvent{
		meetingEv("s1", tu(9, 0), tu(9, 20)),
		meetingEv("s2", tu(11, 0), tu(11, 20)),
		meetingEv("s3", tu(14, 0), tu(14, 20)),
		focusEv("f1", tu(15, 0), tu(16, 40)),
	}, tuesday, tuesday, policy)

	recs := GenerateRecommendations([]models.DaySchedule{overload, scattered[0]}, policy)

	if len(recs) < 3 {
		t.Fatalf("expected several recommendations, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if priorityRank(recs[i-1].Priority) > priorityRank(recs[i].Priority) {
			t.Errorf("recommendations out of priority order at %d: %s before %s",
				i, recs[i-1].Priority, recs[i].Priority)
		}
	}
	if recs[0].Priority != models.PriorityHigh {
		t.Errorf("first recommendation priority = %s, want high", recs[0].Priority)
	}
}

func TestGenerateRecommendations_QuietDayYieldsAtMostFocus(t *testing.T) {
	policy := testPolicy()
	day := buildDay(t, nil, policy)

	recs := GenerateRecommendations([]models.DaySchedule{day}, policy)

	for _, r := range recs {
		if r.Type != models.RecScheduleFocusTime {
			t.Errorf("unexpected recommendation %s on an empty day", r.Type)
		}
	}
}
