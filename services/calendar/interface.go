package calendar

import (
	"context"
	"time"

	"tempo/models"
)

// Provider is the external calendar capability the engine depends on. Every
// implementation must return *ProviderError with a populated Kind for
// provider-side failures so callers can branch over a closed set instead of
// matching error strings.
type Provider interface {
	// FetchEvents returns all non-cancelled events intersecting [start, end),
	// including all-day events.
	FetchEvents(ctx context.Context, userID string, start, end time.Time) ([]models.TimedEvent, error)

	// CreateEvent persists a new event and returns it with its assigned ID.
	CreateEvent(ctx context.Context, userID string, input models.EventInput) (*models.TimedEvent, error)

	// UpdateEvent applies a partial update. Fails with KindNotFound when the
	// event does not exist and KindNotOrganizer / KindPermissionDenied when
	// the caller may not change it.
	UpdateEvent(ctx context.Context, userID, eventID string, patch models.EventPatch) (*models.TimedEvent, error)

	// DeclineEvent declines the user's own attendance on an event.
	DeclineEvent(ctx context.Context, userID, eventID string) error

	// GetEvent fetches a single event by ID.
	GetEvent(ctx context.Context, userID, eventID string) (*models.TimedEvent, error)
}
