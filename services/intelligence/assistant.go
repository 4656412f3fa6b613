package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tempo/models"
	"tempo/services/schedule"
	"tempo/utils"

	"go.uber.org/zap"
)

// DefaultAssistantService resolves intent locally with keyword matching,
// answers from the schedule engine, and uses Gemini only to phrase the reply.
// Structured data in the response always comes from the engine, never from
// the model.
type DefaultAssistantService struct {
	ctxStore *RedisContextStore
	schedSvc schedule.ScheduleService
	gemini   *GeminiClient
}

func NewDefaultAssistantService(
	ctxStore *RedisContextStore,
	schedSvc schedule.ScheduleService,
	gemini *GeminiClient,
) *DefaultAssistantService {
	return &DefaultAssistantService{
		ctxStore: ctxStore,
		schedSvc: schedSvc,
		gemini:   gemini,
	}
}

func (s *DefaultAssistantService) ProcessUserInput(ctx context.Context, req models.AssistantRequest, policy models.UserPolicy) (*models.AssistantResponse, error) {
	aCtx, err := s.ctxStore.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}

	intent := detectIntent(req.Text)

	var resp *models.AssistantResponse
	switch intent {
	case "analytics":
		resp, err = s.handleAnalytics(ctx, req, policy)
	case "availability":
		resp, err = s.handleAvailability(ctx, req, policy)
	case "recommend":
		resp, err = s.handleRecommend(ctx, req, policy)
	default:
		resp, err = s.handleChat(ctx, req, aCtx)
	}
	if err != nil {
		return nil, err
	}

	aCtx.Turns = append(aCtx.Turns,
		models.AssistantTurn{Role: "user", Text: req.Text},
		models.AssistantTurn{Role: "assistant", Text: resp.ResponseText},
	)
	if err := s.ctxStore.Set(ctx, req.UserID, aCtx); err != nil {
		utils.GetLogger().Warn("failed to save assistant context", zap.String("userID", req.UserID), zap.Error(err))
	}
	return resp, nil
}

// detectIntent matches keywords against the instruction text. Order matters:
// availability phrasing often contains "time", so it is checked before
// analytics catches the generic forms.
func detectIntent(text string) string {
	lowerText := strings.ToLower(text)
	switch {
	case containsAny(lowerText, "free", "available", "availability", "open slot", "when can"):
		return "availability"
	case containsAny(lowerText, "analytics", "how much time", "time spent", "how busy", "breakdown"):
		return "analytics"
	case containsAny(lowerText, "recommend", "suggest", "optimize", "improve my"):
		return "recommend"
	default:
		return "chat"
	}
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func (s *DefaultAssistantService) handleAnalytics(ctx context.Context, req models.AssistantRequest, policy models.UserPolicy) (*models.AssistantResponse, error) {
	period := models.PeriodWeek
	if strings.Contains(strings.ToLower(req.Text), "today") {
		period = models.PeriodDay
	} else if strings.Contains(strings.ToLower(req.Text), "month") {
		period = models.PeriodMonth
	}

	analytics, err := s.schedSvc.Analytics(ctx, req.UserID, period, policy)
	if err != nil {
		return nil, fmt.Errorf("compute analytics: %w", err)
	}

	summary := fmt.Sprintf(
		"This %s you spent %.1f%% of working time in meetings (%.1f hours), %.1f%% in focus work, with %.1f%% still open.",
		period, analytics.MeetingPercent, analytics.TotalMeetingHours, analytics.FocusPercent, analytics.AvailablePercent,
	)
	text := s.phrase(ctx, req.Text, summary)

	return &models.AssistantResponse{
		Intent:       "analytics",
		ResponseText: text,
		Analytics:    analytics,
	}, nil
}

func (s *DefaultAssistantService) handleAvailability(ctx context.Context, req models.AssistantRequest, policy models.UserPolicy) (*models.AssistantResponse, error) {
	day := time.Now()
	if strings.Contains(strings.ToLower(req.Text), "tomorrow") {
		day = day.AddDate(0, 0, 1)
	}

	slots, err := s.schedSvc.Availability(ctx, req.UserID, day, policy, 0, true)
	if err != nil {
		return nil, fmt.Errorf("compute availability: %w", err)
	}

	var summary string
	if len(slots) == 0 {
		summary = "No open slots fit inside working hours that day."
	} else {
		parts := make([]string, 0, len(slots))
		for _, slot := range slots {
			parts = append(parts, fmt.Sprintf("%s to %s", slot.Start.Format("15:04"), slot.End.Format("15:04")))
		}
		summary = "Open slots: " + strings.Join(parts, ", ") + "."
	}
	text := s.phrase(ctx, req.Text, summary)

	return &models.AssistantResponse{
		Intent:         "availability",
		ResponseText:   text,
		AvailableSlots: slots,
	}, nil
}

func (s *DefaultAssistantService) handleRecommend(ctx context.Context, req models.AssistantRequest, policy models.UserPolicy) (*models.AssistantResponse, error) {
	recs, err := s.schedSvc.Recommendations(ctx, req.UserID, policy)
	if err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	var summary string
	if len(recs) == 0 {
		summary = "Your week already looks well balanced; nothing to change."
	} else {
		titles := make([]string, 0, len(recs))
		for _, r := range recs {
			titles = append(titles, r.Title)
		}
		summary = "Suggestions for this week: " + strings.Join(titles, "; ") + "."
	}
	text := s.phrase(ctx, req.Text, summary)

	return &models.AssistantResponse{
		Intent:          "recommend",
		ResponseText:    text,
		Recommendations: recs,
	}, nil
}

func (s *DefaultAssistantService) handleChat(ctx context.Context, req models.AssistantRequest, aCtx *models.AssistantContext) (*models.AssistantResponse, error) {
	var b strings.Builder
	b.WriteString("You are a concise scheduling assistant. Answer the user's message in at most three sentences.\n")
	for _, turn := range aCtx.Turns {
		b.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Text))
	}
	b.WriteString("user: " + req.Text + "\n")

	fallback := "I can tell you about your availability, time analytics, or suggest schedule improvements. What would you like?"
	text := fallback
	if s.gemini != nil {
		generated, err := s.gemini.GenerateContent(ctx, b.String())
		if err != nil {
			utils.GetLogger().Warn("gemini chat failed", zap.Error(err))
		} else if strings.TrimSpace(generated) != "" {
			text = strings.TrimSpace(generated)
		}
	}

	return &models.AssistantResponse{
		Intent:       "chat",
		ResponseText: text,
	}, nil
}

// phrase asks Gemini to restate an engine-produced summary in the voice of
// the conversation. On any model failure the plain summary is returned, so
// answers never depend on the model being up.
func (s *DefaultAssistantService) phrase(ctx context.Context, question, summary string) string {
	if s.gemini == nil {
		return summary
	}
	prompt := fmt.Sprintf(
		"Rephrase the following facts as a short, friendly answer to the question. Do not invent numbers.\nQuestion: %s\nFacts: %s",
		question, summary,
	)
	text, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		return summary
	}
	return strings.TrimSpace(text)
}
