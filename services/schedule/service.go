package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"tempo/models"
	"tempo/services/calendar"
	"tempo/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ScheduleService is the surface the API layer consumes. Every method takes
// the policy explicitly; there is no hidden default.
type ScheduleService interface {
	DaySchedules(ctx context.Context, userID string, start, end time.Time, policy models.UserPolicy) ([]models.DaySchedule, error)
	Conflicts(ctx context.Context, userID string, start, end time.Time) (map[string]models.EventConflict, error)
	Availability(ctx context.Context, userID string, day time.Time, policy models.UserPolicy, durationMinutes int, respectProtectedTime bool) ([]models.TimeSlot, error)
	Analytics(ctx context.Context, userID string, period models.AnalyticsPeriod, policy models.UserPolicy) (*models.TimeAnalytics, error)
	Recommendations(ctx context.Context, userID string, policy models.UserPolicy) ([]models.Recommendation, error)
	Execute(ctx context.Context, userID string, recType models.RecommendationType, payload models.ActionPayload, policy models.UserPolicy) (models.ExecutionResult, error)
}

// DefaultScheduleService wires the pure engine functions to the external
// calendar provider, with short-lived Redis caching of built day schedules.
type DefaultScheduleService struct {
	Calendar calendar.Provider
	Cache    *redis.Client
	Executor *Executor
	CacheTTL time.Duration
}

const defaultScheduleCacheTTL = 5 * time.Minute

// BuildDaySchedules partitions fetched events into per-day schedules in the
// policy timezone and enriches each day with availability and usage stats.
// Days carrying no events still appear so analytics sees the whole period.
func BuildDaySchedules(events []models.TimedEvent, start, end time.Time, policy models.UserPolicy) []models.DaySchedule {
	loc := policyLocation(policy)
	first := dateOf(start, loc)
	last := dateOf(end, loc)

	byDate := make(map[string][]models.TimedEvent)
	for _, ev := range events {
		if ev.AllDay {
			// All-day events span [Start, End) in whole dates.
			for d := ev.Start; d.Before(ev.End); d = d.AddDate(0, 0, 1) {
				key := d.Format("2006-01-02")
				byDate[key] = append(byDate[key], ev)
			}
			continue
		}
		key := ev.Start.In(loc).Format("2006-01-02")
		byDate[key] = append(byDate[key], ev)
	}

	var days []models.DaySchedule
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		dayEvents := byDate[key]
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].Start.Before(dayEvents[j].Start)
		})

		slots := ComputeAvailability(dayEvents, d, policy, policy.DefaultMeetingDurationMinutes, true)

		var stats models.DayStats
		for _, ev := range dayEvents {
			if ev.AllDay {
				continue
			}
			switch ev.Category {
			case models.CategoryMeeting, models.CategoryExternal:
				stats.MeetingMinutes += ev.DurationMinutes()
			case models.CategoryFocus:
				stats.FocusMinutes += ev.DurationMinutes()
			}
		}
		for _, s := range slots {
			stats.AvailableMinutes += s.DurationMinutes()
		}

		days = append(days, models.DaySchedule{
			Date:           key,
			Timezone:       loc.String(),
			Events:         dayEvents,
			AvailableSlots: slots,
			Stats:          stats,
		})
	}
	return days
}

func (s *DefaultScheduleService) DaySchedules(ctx context.Context, userID string, start, end time.Time, policy models.UserPolicy) ([]models.DaySchedule, error) {
	logger := utils.GetLogger()
	cacheKey := fmt.Sprintf("schedule:days:%s:%s:%s", userID, start.Format("2006-01-02"), end.Format("2006-01-02"))

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.DaySchedule
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	events, err := s.Calendar.FetchEvents(ctx, userID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	days := BuildDaySchedules(events, start, end, policy)

	if s.Cache != nil {
		ttl := s.CacheTTL
		if ttl <= 0 {
			ttl = defaultScheduleCacheTTL
		}
		if b, err := json.Marshal(days); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, b, ttl).Err(); err != nil {
				logger.Warn("failed to cache day schedules", zap.String("userID", userID), zap.Error(err))
			}
		}
	}
	return days, nil
}

func (s *DefaultScheduleService) Conflicts(ctx context.Context, userID string, start, end time.Time) (map[string]models.EventConflict, error) {
	events, err := s.Calendar.FetchEvents(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return DetectConflicts(events), nil
}

func (s *DefaultScheduleService) Availability(ctx context.Context, userID string, day time.Time, policy models.UserPolicy, durationMinutes int, respectProtectedTime bool) ([]models.TimeSlot, error) {
	loc := policyLocation(policy)
	dayStart := dateOf(day, loc)
	events, err := s.Calendar.FetchEvents(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return ComputeAvailability(events, day, policy, durationMinutes, respectProtectedTime), nil
}

func (s *DefaultScheduleService) Analytics(ctx context.Context, userID string, period models.AnalyticsPeriod, policy models.UserPolicy) (*models.TimeAnalytics, error) {
	start, end := PeriodRange(time.Now(), period, policyLocation(policy))
	days, err := s.DaySchedules(ctx, userID, start, end, policy)
	if err != nil {
		return nil, err
	}
	analytics := ComputeAnalytics(days, period, policy)
	return &analytics, nil
}

func (s *DefaultScheduleService) Recommendations(ctx context.Context, userID string, policy models.UserPolicy) ([]models.Recommendation, error) {
	start, end := PeriodRange(time.Now(), models.PeriodWeek, policyLocation(policy))
	days, err := s.DaySchedules(ctx, userID, start, end, policy)
	if err != nil {
		return nil, err
	}
	return GenerateRecommendations(days, policy), nil
}

func (s *DefaultScheduleService) Execute(ctx context.Context, userID string, recType models.RecommendationType, payload models.ActionPayload, policy models.UserPolicy) (models.ExecutionResult, error) {
	return s.Executor.ExecuteRecommendation(ctx, userID, recType, payload, policy)
}

// PeriodRange resolves a named period to concrete date bounds (inclusive)
// around now: the current day, the Monday-based current week, or the current
// calendar month.
func PeriodRange(now time.Time, period models.AnalyticsPeriod, loc *time.Location) (time.Time, time.Time) {
	today := dateOf(now, loc)
	switch period {
	case models.PeriodDay:
		return today, today
	case models.PeriodMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		last := first.AddDate(0, 1, -1)
		return first, last
	default: // week
		offset := (int(today.Weekday()) + 6) % 7 // days since Monday
		monday := today.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 6)
	}
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	d := t.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
