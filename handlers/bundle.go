package handlers

import (
	policyRepo "tempo/database/repository/policy"
	"tempo/services/intelligence"
	"tempo/services/schedule"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	PolicyRepo policyRepo.PolicyRepository

	// Schedule endpoints
	GetConflictsHandler          gin.HandlerFunc
	GetAvailabilityHandler       gin.HandlerFunc
	GetDaySchedulesHandler       gin.HandlerFunc
	GetAnalyticsHandler          gin.HandlerFunc
	GetRecommendationsHandler    gin.HandlerFunc
	ExecuteRecommendationHandler gin.HandlerFunc
	TriggerDigestHandler         gin.HandlerFunc

	// Policy endpoints
	GetPolicyHandler    gin.HandlerFunc
	UpdatePolicyHandler gin.HandlerFunc

	// Assistant endpoints
	AssistantChatHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler against the shared services.
func NewHandlerBundle(
	schedSvc schedule.ScheduleService,
	assistantSvc intelligence.AssistantService,
	policies policyRepo.PolicyRepository,
	queue *asynq.Client,
) *HandlerBundle {
	loader := &RepoPolicyLoader{Repo: policies}

	return &HandlerBundle{
		PolicyRepo: policies,

		GetConflictsHandler:          GetConflictsHandler(schedSvc, loader),
		GetAvailabilityHandler:       GetAvailabilityHandler(schedSvc, loader),
		GetDaySchedulesHandler:       GetDaySchedulesHandler(schedSvc, loader),
		GetAnalyticsHandler:          GetAnalyticsHandler(schedSvc, loader),
		GetRecommendationsHandler:    GetRecommendationsHandler(schedSvc, loader),
		ExecuteRecommendationHandler: ExecuteRecommendationHandler(schedSvc, loader),
		TriggerDigestHandler:         TriggerDigestHandler(queue, policies),

		GetPolicyHandler:    GetPolicyHandler(policies),
		UpdatePolicyHandler: UpdatePolicyHandler(policies),

		AssistantChatHandler: AssistantChatHandler(assistantSvc, loader),
	}
}
