package intelligence

import (
	"context"

	"tempo/models"
)

// AssistantService turns natural-language instructions into schedule answers.
type AssistantService interface {
	ProcessUserInput(ctx context.Context, req models.AssistantRequest, policy models.UserPolicy) (*models.AssistantResponse, error)
}
