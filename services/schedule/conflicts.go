package schedule

import (
	"sort"

	"tempo/models"
)

// DetectConflicts maps every timed event's ID to the set of other event IDs
// whose time range overlaps it. All-day events are excluded entirely: they
// are never flagged and never flag others. The result is symmetric.
//
// Events are sorted by start and swept left to right; once a later event
// starts at or after the current event's end, no later-starting event can
// overlap it, so the inner scan stops. Output work is proportional to the
// number of true overlapping pairs in the common sparse case.
func DetectConflicts(events []models.TimedEvent) map[string]models.EventConflict {
	sets := make(map[string]map[string]struct{}, len(events))
	timed := make([]models.TimedEvent, 0, len(events))
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		sets[ev.ID] = make(map[string]struct{})
		// Zero-duration events have an empty span and can overlap nothing;
		// they still get an (empty) entry in the result.
		if ev.Start.Before(ev.End) {
			timed = append(timed, ev)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Start.Before(timed[j].Start)
	})

	for i := range timed {
		for j := i + 1; j < len(timed); j++ {
			if !timed[j].Start.Before(timed[i].End) {
				break
			}
			if timed[i].Start.Before(timed[j].End) && timed[j].Start.Before(timed[i].End) {
				sets[timed[i].ID][timed[j].ID] = struct{}{}
				sets[timed[j].ID][timed[i].ID] = struct{}{}
			}
		}
	}

	out := make(map[string]models.EventConflict, len(sets))
	for id, set := range sets {
		ids := make([]string, 0, len(set))
		for other := range set {
			ids = append(ids, other)
		}
		sort.Strings(ids)
		out[id] = models.EventConflict{EventID: id, ConflictingEventIDs: ids}
	}
	return out
}
