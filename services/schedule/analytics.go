package schedule

import (
	"fmt"
	"math"
	"time"

	"tempo/models"
)

const (
	backToBackGapMinutes  = 10
	backToBackRunWarnAt   = 4
	heavyMeetingPercent   = 60.0
	lightWeekPercent      = 50.0
	lowFocusPercent       = 15.0
	missingAgendaWarnAt   = 3
)

// ComputeAnalytics aggregates a period's day schedules into percentage and
// duration summaries plus threshold-rule insights.
//
// Buffer is defined as the residual: working-hours minutes not classified as
// meeting, focus, or available. That conflates genuinely free time with
// small inter-meeting gaps; the definition is kept deliberately.
func ComputeAnalytics(days []models.DaySchedule, period models.AnalyticsPeriod, policy models.UserPolicy) models.TimeAnalytics {
	loc := policyLocation(policy)

	var meetingTotal, focusTotal, availableTotal, bufferTotal int
	var longestFocus int
	busiestDay := ""
	busiestMinutes := -1

	for _, day := range days {
		meetingTotal += day.Stats.MeetingMinutes
		focusTotal += day.Stats.FocusMinutes
		availableTotal += day.Stats.AvailableMinutes

		if day.Stats.MeetingMinutes > busiestMinutes {
			busiestMinutes = day.Stats.MeetingMinutes
			busiestDay = day.Date
		}

		for _, ev := range day.Events {
			if ev.Category == models.CategoryFocus && !ev.AllDay && ev.DurationMinutes() > longestFocus {
				longestFocus = ev.DurationMinutes()
			}
		}

		if w := workingMinutes(day, policy, loc); w > 0 {
			residual := w - day.Stats.MeetingMinutes - day.Stats.FocusMinutes - day.Stats.AvailableMinutes
			if residual > 0 {
				bufferTotal += residual
			}
		}
	}

	total := meetingTotal + focusTotal + availableTotal + bufferTotal
	analytics := models.TimeAnalytics{
		Period:                   period,
		TotalMeetingHours:        math.Round(float64(meetingTotal)/60.0*10) / 10,
		LongestFocusBlockMinutes: longestFocus,
	}
	if busiestMinutes > 0 {
		analytics.BusiestDay = busiestDay
	}
	if total > 0 {
		analytics.MeetingPercent = pct(meetingTotal, total)
		analytics.FocusPercent = pct(focusTotal, total)
		analytics.AvailablePercent = pct(availableTotal, total)
		analytics.BufferPercent = pct(bufferTotal, total)
	}

	analytics.Insights = buildInsights(days, analytics, period)
	return analytics
}

func pct(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// workingMinutes is the width of the day's working window, 0 for a
// malformed policy.
func workingMinutes(day models.DaySchedule, policy models.UserPolicy, loc *time.Location) int {
	date, err := time.ParseInLocation("2006-01-02", day.Date, loc)
	if err != nil {
		return 0
	}
	ws, we, ok := workingWindow(date, policy, loc)
	if !ok {
		return 0
	}
	return int(we.Sub(ws) / time.Minute)
}

func buildInsights(days []models.DaySchedule, analytics models.TimeAnalytics, period models.AnalyticsPeriod) []models.Insight {
	insights := []models.Insight{}
	label := periodLabel(period)

	if analytics.MeetingPercent > heavyMeetingPercent {
		insights = append(insights, models.Insight{
			Type:    models.InsightWarning,
			Message: fmt.Sprintf("Meetings consume %.0f%% of your working time this %s.", analytics.MeetingPercent, label),
			Prompt:  "Which meetings could I decline or shorten?",
		})
	}

	if day, run := longestBackToBackRun(days); run >= backToBackRunWarnAt {
		insights = append(insights, models.Insight{
			Type:    models.InsightWarning,
			Message: fmt.Sprintf("%s has %d back-to-back meetings with no breathing room.", day, run),
			Prompt:  fmt.Sprintf("Add buffers between my meetings on %s", day),
		})
	}

	if analytics.FocusPercent < lowFocusPercent && analytics.MeetingPercent > 0 {
		insights = append(insights, models.Insight{
			Type:    models.InsightSuggestion,
			Message: fmt.Sprintf("Only %.0f%% of this %s is protected focus time.", analytics.FocusPercent, label),
			Prompt:  "Schedule focus time in my largest open slots",
		})
	}

	if n := meetingsMissingAgenda(days); n >= missingAgendaWarnAt {
		insights = append(insights, models.Insight{
			Type:    models.InsightObservation,
			Message: fmt.Sprintf("%d meetings this %s have no agenda in their description.", n, label),
		})
	}

	if analytics.AvailablePercent > lightWeekPercent {
		insights = append(insights, models.Insight{
			Type:    models.InsightObservation,
			Message: fmt.Sprintf("Over half of this %s's working hours are still open.", label),
		})
	}

	return insights
}

// longestBackToBackRun finds the day with the longest chain of consecutive
// meetings separated by gaps under the buffer threshold.
func longestBackToBackRun(days []models.DaySchedule) (string, int) {
	bestDay := ""
	best := 0
	for _, day := range days {
		meetings := meetingsOf(day)
		run := 1
		for i := 1; i < len(meetings); i++ {
			gap := meetings[i].Start.Sub(meetings[i-1].End)
			if gap >= 0 && gap < backToBackGapMinutes*time.Minute {
				run++
				if run > best {
					best = run
					bestDay = day.Date
				}
			} else {
				run = 1
			}
		}
	}
	return bestDay, best
}

func meetingsMissingAgenda(days []models.DaySchedule) int {
	n := 0
	for _, day := range days {
		for _, ev := range day.Events {
			if ev.AllDay || len(ev.Attendees) == 0 {
				continue
			}
			if (ev.Category == models.CategoryMeeting || ev.Category == models.CategoryExternal) && ev.Description == "" {
				n++
			}
		}
	}
	return n
}

func meetingsOf(day models.DaySchedule) []models.TimedEvent {
	var out []models.TimedEvent
	for _, ev := range day.Events {
		if ev.AllDay {
			continue
		}
		if ev.Category == models.CategoryMeeting || ev.Category == models.CategoryExternal {
			out = append(out, ev)
		}
	}
	return out
}

func periodLabel(period models.AnalyticsPeriod) string {
	switch period {
	case models.PeriodDay:
		return "day"
	case models.PeriodMonth:
		return "month"
	default:
		return "week"
	}
}
