package schedule

import (
	"context"
	"fmt"
	"time"

	"tempo/models"
	"tempo/services/calendar"
	"tempo/utils"

	"go.uber.org/zap"
)

const (
	rescheduleSearchDays = 14
	defaultExecTimeout   = 15 * time.Second
)

// Executor turns one chosen recommendation into at most one calendar
// mutation, or a descriptive non-success result. Every branch is terminal:
// no retries, no partial application. Infrastructure-class provider failures
// are the only outcomes returned as error; everything else is an
// ExecutionResult whose payload says yes or no.
type Executor struct {
	Calendar calendar.Provider
	Timeout  time.Duration
}

func NewExecutor(provider calendar.Provider, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = defaultExecTimeout
	}
	return &Executor{Calendar: provider, Timeout: timeout}
}

func (ex *Executor) ExecuteRecommendation(
	ctx context.Context,
	userID string,
	recType models.RecommendationType,
	payload models.ActionPayload,
	policy models.UserPolicy,
) (models.ExecutionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, ex.Timeout)
	defer cancel()

	switch recType {
	case models.RecScheduleFocusTime:
		return ex.executeFocusTime(ctx, userID, payload.Focus, policy)
	case models.RecAddBuffer:
		return ex.executeAddBuffer(ctx, userID, payload.Buffer, policy)
	case models.RecReschedule:
		return ex.executeReschedule(ctx, userID, payload.Reschedule, policy)
	case models.RecDeclineMeeting:
		return ex.executeDecline(ctx, userID, payload.Decline)
	case models.RecBatchMeetings:
		return ex.executeBatch(payload.Batch)
	default:
		return models.ExecutionResult{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown recommendation type %q", recType)}
	}
}

func (ex *Executor) executeFocusTime(ctx context.Context, userID string, payload *models.FocusSlotPayload, policy models.UserPolicy) (models.ExecutionResult, error) {
	if payload == nil {
		return models.ExecutionResult{}, &ValidationError{Field: "focus"}
	}
	if payload.Start.IsZero() || payload.End.IsZero() || !payload.Start.Before(payload.End) {
		return models.ExecutionResult{}, &ValidationError{Field: "focus.start", Reason: "payload must name a concrete slot"}
	}

	created, err := ex.Calendar.CreateEvent(ctx, userID, models.EventInput{
		Title:       "Focus time",
		Description: "Protected deep-work block",
		Start:       payload.Start,
		End:         payload.End,
		Timezone:    policy.Timezone,
	})
	if err != nil {
		return ex.providerOutcome(err, "create the focus block")
	}

	loc := policyLocation(policy)
	return models.ExecutionResult{
		Success: true,
		Message: fmt.Sprintf("Focus time booked %s–%s.", created.Start.In(loc).Format("Mon Jan 2 15:04"), created.End.In(loc).Format("15:04")),
		Data:    map[string]any{"eventId": created.ID, "start": created.Start, "end": created.End},
	}, nil
}

func (ex *Executor) executeAddBuffer(ctx context.Context, userID string, payload *models.BufferPayload, policy models.UserPolicy) (models.ExecutionResult, error) {
	if payload == nil {
		return models.ExecutionResult{}, &ValidationError{Field: "buffer"}
	}
	if payload.AfterEventID == "" {
		return models.ExecutionResult{}, &ValidationError{Field: "buffer.afterEventId"}
	}
	if payload.Start.IsZero() || payload.End.IsZero() || !payload.Start.Before(payload.End) {
		return models.ExecutionResult{}, &ValidationError{Field: "buffer.start", Reason: "payload must name a concrete slot"}
	}

	created, err := ex.Calendar.CreateEvent(ctx, userID, models.EventInput{
		Title:    "Buffer",
		Start:    payload.Start,
		End:      payload.End,
		Timezone: policy.Timezone,
	})
	if err != nil {
		return ex.providerOutcome(err, "create the buffer")
	}
	return models.ExecutionResult{
		Success: true,
		Message: fmt.Sprintf("Added a %d-minute buffer.", int(payload.End.Sub(payload.Start)/time.Minute)),
		Data:    map[string]any{"eventId": created.ID},
	}, nil
}

func (ex *Executor) executeReschedule(ctx context.Context, userID string, payload *models.ReschedulePayload, policy models.UserPolicy) (models.ExecutionResult, error) {
	if payload == nil {
		return models.ExecutionResult{}, &ValidationError{Field: "reschedule"}
	}

	// Multiple candidates: do not act; hand the list back so the caller can
	// let the user pick one to reschedule individually.
	if payload.EventID == "" && len(payload.CandidateEventIDs) > 0 {
		return models.ExecutionResult{
			Success: true,
			Message: fmt.Sprintf("%d meetings could be rescheduled. Pick one to move.", len(payload.CandidateEventIDs)),
			Data:    map[string]any{"candidateEventIds": payload.CandidateEventIDs},
		}, nil
	}
	if payload.EventID == "" {
		return models.ExecutionResult{}, &ValidationError{Field: "reschedule.eventId"}
	}

	event, err := ex.Calendar.GetEvent(ctx, userID, payload.EventID)
	if err != nil {
		if calendar.KindOf(err) == calendar.KindNotFound {
			return models.ExecutionResult{
				Success: false,
				Message: "That meeting no longer exists — it may already have been moved or cancelled.",
			}, nil
		}
		return ex.providerOutcome(err, "look up the meeting")
	}

	duration := event.End.Sub(event.Start)
	if duration <= 0 {
		duration = time.Duration(policy.DefaultMeetingDurationMinutes) * time.Minute
	}

	slot, err := ex.findRescheduleSlot(ctx, userID, event.ID, duration, policy)
	if err != nil {
		return ex.providerOutcome(err, "search your calendar")
	}
	if slot == nil {
		return models.ExecutionResult{
			Success: false,
			Message: fmt.Sprintf("No open %d-minute slot in the next %d days within your working hours.", int(duration/time.Minute), rescheduleSearchDays),
			Data: map[string]any{
				"suggestions": []string{
					"Loosen a protected time block for that week",
					"Extend your working hours temporarily",
					"Ask the organizer to propose times outside your usual window",
				},
			},
		}, nil
	}

	newStart := slot.Start
	newEnd := newStart.Add(duration)
	updated, err := ex.Calendar.UpdateEvent(ctx, userID, event.ID, models.EventPatch{Start: &newStart, End: &newEnd})
	if err != nil {
		switch calendar.KindOf(err) {
		case calendar.KindNotOrganizer, calendar.KindPermissionDenied:
			return models.ExecutionResult{
				Success: false,
				Message: fmt.Sprintf("You are not the organizer of %q. Ask %s to propose a new time instead.", event.Title, organizerName(event)),
				Data:    map[string]any{"organizer": event.Organizer},
			}, nil
		case calendar.KindNotFound:
			return models.ExecutionResult{
				Success: false,
				Message: "That meeting no longer exists — it may already have been moved or cancelled.",
			}, nil
		}
		return ex.providerOutcome(err, "move the meeting")
	}

	loc := policyLocation(policy)
	return models.ExecutionResult{
		Success: true,
		Message: fmt.Sprintf("%q moved to %s.", updated.Title, newStart.In(loc).Format("Mon Jan 2 15:04")),
		Data:    map[string]any{"eventId": updated.ID, "newStart": newStart, "newEnd": newEnd},
	}, nil
}

// findRescheduleSlot scans the next two weeks, starting tomorrow, for the
// first working-hours slot that fits the duration and respects protected
// time. The event being moved is excluded from the busy set.
func (ex *Executor) findRescheduleSlot(ctx context.Context, userID, excludeEventID string, duration time.Duration, policy models.UserPolicy) (*models.TimeSlot, error) {
	loc := policyLocation(policy)
	now := time.Now().In(loc)
	floor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	events, err := ex.Calendar.FetchEvents(ctx, userID, floor, floor.AddDate(0, 0, rescheduleSearchDays))
	if err != nil {
		return nil, err
	}
	kept := events[:0]
	for _, ev := range events {
		if ev.ID != excludeEventID {
			kept = append(kept, ev)
		}
	}

	minutes := int(duration / time.Minute)
	for offset := 0; offset < rescheduleSearchDays; offset++ {
		day := floor.AddDate(0, 0, offset)
		slots := ComputeAvailability(kept, day, policy, minutes, true)
		if slot := NextSlot(slots, floor); slot != nil {
			return slot, nil
		}
	}
	return nil, nil
}

func (ex *Executor) executeDecline(ctx context.Context, userID string, payload *models.DeclinePayload) (models.ExecutionResult, error) {
	if payload == nil {
		return models.ExecutionResult{}, &ValidationError{Field: "decline"}
	}

	// No specific target: return guidance on what makes a good decline
	// candidate rather than guessing at a mutation.
	if payload.EventID == "" {
		result := models.ExecutionResult{
			Success: true,
			Message: "Good decline candidates: meetings where you are optional, large meetings with no agenda, and recurring check-ins you have not spoken in recently.",
		}
		if len(payload.CandidateEventIDs) > 0 {
			result.Data = map[string]any{"candidateEventIds": payload.CandidateEventIDs}
		}
		return result, nil
	}

	if err := ex.Calendar.DeclineEvent(ctx, userID, payload.EventID); err != nil {
		switch calendar.KindOf(err) {
		case calendar.KindNotFound:
			return models.ExecutionResult{
				Success: false,
				Message: "That meeting no longer exists — nothing to decline.",
			}, nil
		case calendar.KindPermissionDenied, calendar.KindNotOrganizer:
			return models.ExecutionResult{
				Success: false,
				Message: "The calendar would not accept the decline. Open the event and decline it manually, or message the organizer.",
			}, nil
		}
		return ex.providerOutcome(err, "decline the meeting")
	}
	return models.ExecutionResult{
		Success: true,
		Message: "Meeting declined. The organizer has been notified.",
		Data:    map[string]any{"eventId": payload.EventID},
	}, nil
}

func (ex *Executor) executeBatch(payload *models.BatchPayload) (models.ExecutionResult, error) {
	if payload == nil || len(payload.EventIDs) == 0 {
		return models.ExecutionResult{}, &ValidationError{Field: "batch.eventIds"}
	}
	// Batching is a review, not a mutation: surface the affected meetings so
	// the caller can let the user act on them one by one.
	return models.ExecutionResult{
		Success: true,
		Message: fmt.Sprintf("%d short meetings on %s could be consolidated. Reschedule them individually to stack them together.", len(payload.EventIDs), payload.Date),
		Data:    map[string]any{"date": payload.Date, "eventIds": payload.EventIDs},
	}, nil
}

// providerOutcome translates a provider failure into either a hard error
// (infrastructure class) or a non-success business result.
func (ex *Executor) providerOutcome(err error, attempted string) (models.ExecutionResult, error) {
	if calendar.IsInfrastructure(err) {
		return models.ExecutionResult{}, fmt.Errorf("calendar provider unavailable while trying to %s: %w", attempted, err)
	}
	utils.GetLogger().Warn("calendar rejected execution", zap.String("attempted", attempted), zap.Error(err))
	return models.ExecutionResult{
		Success: false,
		Message: fmt.Sprintf("The calendar would not let me %s (%s).", attempted, calendar.KindOf(err)),
	}, nil
}

func organizerName(ev *models.TimedEvent) string {
	if ev.Organizer != "" {
		return ev.Organizer
	}
	return "the organizer"
}
