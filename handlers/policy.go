package handlers

import (
	"net/http"
	"time"

	policyRepo "tempo/database/repository/policy"
	"tempo/models"
	"tempo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PolicyLoader resolves the effective policy for a user. Lookups that fail
// fall back to the default policy so read endpoints keep working.
type PolicyLoader interface {
	PolicyFor(userID string) models.UserPolicy
}

// RepoPolicyLoader loads policies from the repository, falling back to the
// default when the user has never saved one.
type RepoPolicyLoader struct {
	Repo policyRepo.PolicyRepository
}

func (l *RepoPolicyLoader) PolicyFor(userID string) models.UserPolicy {
	rec, err := l.Repo.GetByUserID(userID)
	if err != nil {
		utils.GetLogger().Warn("Failed to load policy, using default", zap.String("userID", userID), zap.Error(err))
		return models.DefaultUserPolicy()
	}
	if rec == nil {
		return models.DefaultUserPolicy()
	}
	return rec.Policy
}

// validatePolicy checks the invariants a stored policy must hold.
func validatePolicy(p models.UserPolicy) (string, bool) {
	start, err1 := time.Parse("15:04", p.WorkingHours.Start)
	end, err2 := time.Parse("15:04", p.WorkingHours.End)
	if err1 != nil || err2 != nil {
		return "working hours must be HH:mm", false
	}
	if !start.Before(end) {
		return "working hours start must precede end", false
	}
	if p.DefaultMeetingDurationMinutes < 0 {
		return "default meeting duration must not be negative", false
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return "unknown timezone", false
	}
	for _, block := range p.ProtectedTimeBlocks {
		bs, err1 := time.Parse("15:04", block.Start)
		be, err2 := time.Parse("15:04", block.End)
		if err1 != nil || err2 != nil {
			return "protected block times must be HH:mm", false
		}
		if !bs.Before(be) {
			return "protected block start must precede end", false
		}
		for _, d := range block.DaysOfWeek {
			if d < 0 || d > 6 {
				return "protected block days must be 0 (Sunday) through 6 (Saturday)", false
			}
		}
	}
	return "", true
}

// GetPolicyHandler returns the caller's stored policy, or the default when
// none has been saved yet.
func GetPolicyHandler(repo policyRepo.PolicyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}

		rec, err := repo.GetByUserID(userID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load policy", err.Error())
			return
		}
		if rec == nil {
			c.JSON(http.StatusOK, gin.H{
				"policy":  models.DefaultUserPolicy(),
				"default": true,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"policy": rec.Policy, "default": false})
	}
}

// UpdatePolicyHandler validates and stores the caller's policy.
func UpdatePolicyHandler(repo policyRepo.PolicyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}

		var input struct {
			Email  string            `json:"email"`
			Policy models.UserPolicy `json:"policy" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if reason, ok := validatePolicy(input.Policy); !ok {
			utils.JSONError(c, http.StatusBadRequest, "Invalid policy", reason)
			return
		}

		rec := &models.PolicyRecord{
			UserID: userID,
			Email:  input.Email,
			Policy: input.Policy,
		}
		if err := repo.Upsert(rec); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to save policy", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"policy": rec.Policy})
	}
}
