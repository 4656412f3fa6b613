package handlers

import (
	"net/http"
	"time"

	"tempo/models"
	"tempo/services/calendar"
	"tempo/services/schedule"
	"tempo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// authedUserID pulls the user ID set by the auth middleware.
func authedUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing user identity")
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing user identity")
		return "", false
	}
	return id, true
}

// respondScheduleError maps engine and provider failures onto HTTP statuses.
// Business outcomes never reach here; they travel as ExecutionResult bodies.
func respondScheduleError(c *gin.Context, err error) {
	logger := utils.GetLogger()

	if schedule.IsValidation(err) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	switch calendar.KindOf(err) {
	case calendar.KindNotFound:
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case calendar.KindPermissionDenied, calendar.KindNotOrganizer:
		utils.JSONError(c, http.StatusForbidden, "Calendar access denied", err.Error())
	case calendar.KindInvalidInput:
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case calendar.KindRateLimited:
		utils.JSONError(c, http.StatusTooManyRequests, "Calendar rate limit hit", err.Error())
	case calendar.KindUnavailable:
		utils.JSONError(c, http.StatusBadGateway, "Calendar provider unavailable", err.Error())
	default:
		logger.Error("Unhandled schedule error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", "")
	}
}

// parseDateRange reads start/end query params, defaulting to the current
// Monday-based week in the policy timezone.
func parseDateRange(c *gin.Context, policy models.UserPolicy) (time.Time, time.Time, bool) {
	loc, err := time.LoadLocation(policy.Timezone)
	if err != nil {
		loc = time.UTC
	}
	start, end := schedule.PeriodRange(time.Now(), models.PeriodWeek, loc)

	if s := c.Query("start"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "start must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.ParseInLocation(dateLayout, e, loc)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "end must be YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		end = parsed
	}
	if end.Before(start) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "end must not precede start")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// GetConflictsHandler returns the conflict sets for the requested range.
func GetConflictsHandler(svc schedule.ScheduleService, policies PolicyLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}
		policy := policies.PolicyFor(userID)
		start, end, ok := parseDateRange(c, policy)
		if !ok {
			return
		}

		conflicts, err := svc.Conflicts(c.Request.Context(), userID, start, end.AddDate(0, 0, 1))
		if err != nil {
			respondScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
	}
}

// GetAvailabilityHandler returns the open slots for one day.
func GetAvailabilityHandler(svc schedule.ScheduleService, policies PolicyLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}
		policy := policies.PolicyFor(userID)

		loc, err := time.LoadLocation(policy.Timezone)
		if err != nil {
			loc = time.UTC
		}
		day := time.Now().In(loc)
		if d := c.Query("date"); d != "" {
			parsed, err := time.ParseInLocation(dateLayout, d, loc)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date must be YYYY-MM-DD")
				return
			}
			day = parsed
		}

		var query struct {
			DurationMinutes      int   `form:"duration"`
			RespectProtectedTime *bool `form:"respectProtected"`
		}
		if err := c.ShouldBindQuery(&query); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		respectProtected := true
		if query.RespectProtectedTime != nil {
			respectProtected = *query.RespectProtectedTime
		}

		slots, err := svc.Availability(c.Request.Context(), userID, day, policy, query.DurationMinutes, respectProtected)
		if err != nil {
			respondScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"date":  day.Format(dateLayout),
			"slots": slots,
		})
	}
}

// GetDaySchedulesHandler returns the per-day schedules for the requested range.
func GetDaySchedulesHandler(svc schedule.ScheduleService, policies PolicyLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}
		policy := policies.PolicyFor(userID)
		start, end, ok := parseDateRange(c, policy)
		if !ok {
			return
		}

		days, err := svc.DaySchedules(c.Request.Context(), userID, start, end, policy)
		if err != nil {
			respondScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"days": days})
	}
}

// GetAnalyticsHandler returns the time breakdown for a named period.
func GetAnalyticsHandler(svc schedule.ScheduleService, policies PolicyLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}
		policy := policies.PolicyFor(userID)

		period := models.AnalyticsPeriod(c.DefaultQuery("period", string(models.PeriodWeek)))
		switch period {
		case models.PeriodDay, models.PeriodWeek, models.PeriodMonth:
		default:
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "period must be day, week, or month")
			return
		}

		analytics, err := svc.Analytics(c.Request.Context(), userID, period, policy)
		if err != nil {
			respondScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, analytics)
	}
}

// GetRecommendationsHandler returns this week's generated recommendations.
func GetRecommendationsHandler(svc schedule.ScheduleService, policies PolicyLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}
		policy := policies.PolicyFor(userID)

		recs, err := svc.Recommendations(c.Request.Context(), userID, policy)
		if err != nil {
			respondScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recommendations": recs})
	}
}

// ExecuteRecommendationHandler applies one confirmed recommendation. Blocked
// outcomes (no open slot, not the organizer) come back 200 with success=false
// so clients can show the message; only infrastructure failures map to errors.
func ExecuteRecommendationHandler(svc schedule.ScheduleService, policies PolicyLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}
		policy := policies.PolicyFor(userID)

		var input struct {
			Type    models.RecommendationType `json:"type" binding:"required"`
			Payload models.ActionPayload      `json:"payload"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		result, err := svc.Execute(c.Request.Context(), userID, input.Type, input.Payload, policy)
		if err != nil {
			respondScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
