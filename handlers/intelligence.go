package handlers

import (
	"net/http"

	"tempo/models"
	"tempo/services/intelligence"
	"tempo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantChatHandler routes one natural-language instruction through the
// assistant service.
func AssistantChatHandler(svc intelligence.AssistantService, policies PolicyLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUserID(c)
		if !ok {
			return
		}

		var req models.AssistantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		req.UserID = userID

		policy := policies.PolicyFor(userID)
		resp, err := svc.ProcessUserInput(c.Request.Context(), req, policy)
		if err != nil {
			utils.GetLogger().Error("Assistant request failed", zap.String("userID", userID), zap.Error(err))
			respondScheduleError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
