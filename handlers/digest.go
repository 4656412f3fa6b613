package handlers

import (
	"net/http"
	"time"

	policyRepo "tempo/database/repository/policy"
	"tempo/models"
	"tempo/services/tasks"
	"tempo/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// TriggerDigestHandler enqueues a digest email for the caller. The body may
// carry an email override; otherwise the address on the stored policy is used.
func TriggerDigestHandler(client *asynq.Client, repo policyRepo.PolicyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}

		var input struct {
			Email string `json:"email"`
		}
		// Body is optional.
		_ = c.ShouldBindJSON(&input)

		email := input.Email
		if email == "" {
			rec, err := repo.GetByUserID(userID)
			if err != nil {
				utils.JSONError(c, http.StatusInternalServerError, "Failed to load policy", err.Error())
				return
			}
			if rec != nil {
				email = rec.Email
			}
		}
		if email == "" {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "no email on file; pass one in the request body")
			return
		}

		task, opts, err := tasks.NewDigestTask(models.DigestPayload{UserID: userID, Email: email}, time.Now())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to build digest task", err.Error())
			return
		}
		info, err := client.Enqueue(task, opts...)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to enqueue digest", err.Error())
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"taskId": info.ID, "email": email})
	}
}
