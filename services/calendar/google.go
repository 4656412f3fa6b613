package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tempo/models"
	"tempo/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const primaryCalendarID = "primary"

// GoogleProvider implements Provider against the Google Calendar API. A
// calendar service is built per call from the user's stored OAuth2 token.
type GoogleProvider struct {
	cfg    *oauth2.Config
	tokens TokenStore
}

// NewGoogleProvider wires a Google Calendar provider from OAuth2 client
// credentials and a per-user token store.
func NewGoogleProvider(clientID, clientSecret string, tokens TokenStore) *GoogleProvider {
	return &GoogleProvider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{gcal.CalendarScope},
			Endpoint:     google.Endpoint,
		},
		tokens: tokens,
	}
}

func (p *GoogleProvider) serviceFor(ctx context.Context, userID string) (*gcal.Service, error) {
	tok, err := p.tokens.Token(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, err := gcal.NewService(ctx, option.WithTokenSource(p.cfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, &ProviderError{Kind: KindUnavailable, Op: "service", Err: err}
	}
	return svc, nil
}

func (p *GoogleProvider) FetchEvents(ctx context.Context, userID string, start, end time.Time) ([]models.TimedEvent, error) {
	svc, err := p.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, err := svc.Events.List(primaryCalendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		OrderBy("startTime").
		MaxResults(2500).
		Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError("fetchEvents", err)
	}

	events := make([]models.TimedEvent, 0, len(res.Items))
	for _, item := range res.Items {
		if item.Status == "cancelled" {
			continue
		}
		ev, ok := toTimedEvent(item)
		if !ok {
			utils.GetLogger().Warn("skipping unparseable calendar event", zap.String("eventID", item.Id))
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (p *GoogleProvider) CreateEvent(ctx context.Context, userID string, input models.EventInput) (*models.TimedEvent, error) {
	svc, err := p.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	ev := &gcal.Event{
		Summary:     input.Title,
		Description: input.Description,
		Location:    input.Location,
		Start:       &gcal.EventDateTime{DateTime: input.Start.Format(time.RFC3339), TimeZone: input.Timezone},
		End:         &gcal.EventDateTime{DateTime: input.End.Format(time.RFC3339), TimeZone: input.Timezone},
	}
	for _, a := range input.Attendees {
		ev.Attendees = append(ev.Attendees, &gcal.EventAttendee{Email: a.Email, Optional: a.Optional})
	}

	created, err := svc.Events.Insert(primaryCalendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError("createEvent", err)
	}
	out, _ := toTimedEvent(created)
	return &out, nil
}

func (p *GoogleProvider) UpdateEvent(ctx context.Context, userID, eventID string, patch models.EventPatch) (*models.TimedEvent, error) {
	svc, err := p.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	ev := &gcal.Event{}
	if patch.Start != nil {
		ev.Start = &gcal.EventDateTime{DateTime: patch.Start.Format(time.RFC3339)}
		if patch.Timezone != nil {
			ev.Start.TimeZone = *patch.Timezone
		}
	}
	if patch.End != nil {
		ev.End = &gcal.EventDateTime{DateTime: patch.End.Format(time.RFC3339)}
		if patch.Timezone != nil {
			ev.End.TimeZone = *patch.Timezone
		}
	}

	updated, err := svc.Events.Patch(primaryCalendarID, eventID, ev).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError("updateEvent", err)
	}
	out, _ := toTimedEvent(updated)
	return &out, nil
}

func (p *GoogleProvider) DeclineEvent(ctx context.Context, userID, eventID string) error {
	svc, err := p.serviceFor(ctx, userID)
	if err != nil {
		return err
	}

	ev, err := svc.Events.Get(primaryCalendarID, eventID).Context(ctx).Do()
	if err != nil {
		return mapGoogleError("declineEvent", err)
	}

	var self *gcal.EventAttendee
	for _, a := range ev.Attendees {
		if a.Self {
			self = a
			break
		}
	}
	if self == nil {
		return &ProviderError{
			Kind: KindPermissionDenied,
			Op:   "declineEvent",
			Err:  fmt.Errorf("user is not an attendee of event %s", eventID),
		}
	}
	self.ResponseStatus = "declined"

	_, err = svc.Events.Patch(primaryCalendarID, eventID, &gcal.Event{Attendees: ev.Attendees}).Context(ctx).Do()
	if err != nil {
		return mapGoogleError("declineEvent", err)
	}
	return nil
}

func (p *GoogleProvider) GetEvent(ctx context.Context, userID, eventID string) (*models.TimedEvent, error) {
	svc, err := p.serviceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	ev, err := svc.Events.Get(primaryCalendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError("getEvent", err)
	}
	if ev.Status == "cancelled" {
		return nil, &ProviderError{Kind: KindNotFound, Op: "getEvent", Err: fmt.Errorf("event %s is cancelled", eventID)}
	}
	out, ok := toTimedEvent(ev)
	if !ok {
		return nil, &ProviderError{Kind: KindInvalidInput, Op: "getEvent", Err: fmt.Errorf("event %s has no usable times", eventID)}
	}
	return &out, nil
}

// toTimedEvent converts a Google event to the normalized model. The second
// return is false when the event carries no usable start/end.
func toTimedEvent(item *gcal.Event) (models.TimedEvent, bool) {
	ev := models.TimedEvent{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Location:    item.Location,
	}
	if item.Organizer != nil {
		ev.Organizer = item.Organizer.Email
		ev.IsOrganizer = item.Organizer.Self
	}
	for _, a := range item.Attendees {
		ev.Attendees = append(ev.Attendees, models.Attendee{
			Email:          a.Email,
			Name:           a.DisplayName,
			Optional:       a.Optional,
			ResponseStatus: a.ResponseStatus,
		})
	}

	switch {
	case item.Start == nil || item.End == nil:
		return ev, false
	case item.Start.Date != "":
		// All-day events carry dates, not datetimes.
		start, err1 := time.Parse("2006-01-02", item.Start.Date)
		end, err2 := time.Parse("2006-01-02", item.End.Date)
		if err1 != nil || err2 != nil {
			return ev, false
		}
		ev.Start, ev.End, ev.AllDay = start, end, true
	default:
		start, err1 := time.Parse(time.RFC3339, item.Start.DateTime)
		end, err2 := time.Parse(time.RFC3339, item.End.DateTime)
		if err1 != nil || err2 != nil {
			return ev, false
		}
		ev.Start, ev.End = start, end
	}

	ev.Category = inferCategory(ev)
	return ev, true
}

// mapGoogleError translates a Google API failure into a structured kind.
// This is the only place code or reason strings are inspected.
func mapGoogleError(op string, err error) error {
	if gerr, ok := err.(*googleapi.Error); ok {
		kind := KindUnavailable
		switch gerr.Code {
		case http.StatusNotFound, http.StatusGone:
			kind = KindNotFound
		case http.StatusForbidden:
			kind = KindPermissionDenied
			for _, item := range gerr.Errors {
				if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
					kind = KindRateLimited
				}
				if item.Reason == "forbiddenForNonOrganizer" || item.Reason == "cannotChangeOrganizer" {
					kind = KindNotOrganizer
				}
			}
		case http.StatusTooManyRequests:
			kind = KindRateLimited
		case http.StatusBadRequest:
			kind = KindInvalidInput
		}
		return &ProviderError{Kind: kind, Op: op, Err: err}
	}
	if err == context.DeadlineExceeded || err == context.Canceled {
		return &ProviderError{Kind: KindUnavailable, Op: op, Err: err}
	}
	return &ProviderError{Kind: KindUnavailable, Op: op, Err: err}
}
