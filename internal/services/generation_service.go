package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fitmanager/internal/models"
)

// ModelInvoker is the generative model endpoint: one ordered turn list
// in, one assistant reply out. Implemented by ClaudeClient; substituted
// with fakes in tests.
type ModelInvoker interface {
	Invoke(ctx context.Context, turns []models.Turn) (*models.ModelReply, error)
}

// GenerationService drives the multi-turn program-generation
// conversation. It holds no per-session state: every call is a function
// of the history value the caller passes in, so concurrent sessions just
// use separate histories. Callers serialize calls within one session.
type GenerationService struct {
	invoker ModelInvoker
}

// NewGenerationService creates the conversation orchestrator.
func NewGenerationService(invoker ModelInvoker) *GenerationService {
	return &GenerationService{invoker: invoker}
}

// Start opens a conversation with the assembled initial prompt and
// returns a two-turn history (user + assistant). On any outbound failure
// the returned history is empty: the caller can retry Start as-is.
func (s *GenerationService) Start(ctx context.Context, initialPrompt string) (models.History, *models.Usage, error) {
	if strings.TrimSpace(initialPrompt) == "" {
		return nil, nil, &ValidationError{Field: "prompt", Reason: "initial prompt is empty"}
	}

	history := models.History{{Role: models.RoleUser, Content: initialPrompt}}

	reply, err := s.call(ctx, history)
	if err != nil {
		return models.History{}, nil, err
	}

	history = append(history, models.Turn{Role: models.RoleAssistant, Content: reply.Text})
	log.Printf("🏋️ [GENERATE] Conversation started: %d turns, %d output tokens", len(history), reply.Usage.OutputTokens)
	return history, &reply.Usage, nil
}

// Continue appends userText to a copy of the history and requests the
// next assistant turn. On failure the returned history contains the new
// user turn but no assistant turn, so the caller can retry without
// resending the message.
func (s *GenerationService) Continue(ctx context.Context, history models.History, userText string) (models.History, *models.Usage, error) {
	if strings.TrimSpace(userText) == "" {
		return history, nil, &ValidationError{Field: "user_message", Reason: "message is empty"}
	}
	if len(history) == 0 {
		return history, nil, &ValidationError{Field: "conversation_history", Reason: "history is empty; call start first"}
	}
	if !history.Alternates() {
		return history, nil, &ValidationError{Field: "conversation_history", Reason: "turns must alternate user/assistant starting with user"}
	}
	if history[len(history)-1].Role != models.RoleAssistant {
		return history, nil, &ValidationError{Field: "conversation_history", Reason: "history must end with an assistant turn"}
	}

	next := append(history.Clone(), models.Turn{Role: models.RoleUser, Content: userText})

	reply, err := s.call(ctx, next)
	if err != nil {
		return next, nil, err
	}

	next = append(next, models.Turn{Role: models.RoleAssistant, Content: reply.Text})
	log.Printf("🏋️ [GENERATE] Conversation continued: %d turns, %d output tokens", len(next), reply.Usage.OutputTokens)
	return next, &reply.Usage, nil
}

// call performs exactly one model invocation. No retries here: a blind
// retry would duplicate a costly, non-idempotent generation call, so
// retry policy stays with the caller.
func (s *GenerationService) call(ctx context.Context, turns []models.Turn) (*models.ModelReply, error) {
	start := time.Now()
	reply, err := s.invoker.Invoke(ctx, turns)
	if err != nil {
		GetMetrics().RecordGenerationError("invoke_failed")
		return nil, &GenerationError{Err: err}
	}
	if reply == nil || strings.TrimSpace(reply.Text) == "" {
		GetMetrics().RecordGenerationError("empty_reply")
		return nil, &GenerationError{Err: fmt.Errorf("model reply contains no text content")}
	}
	GetMetrics().RecordGeneration(time.Since(start).Seconds(), reply.Usage)
	return reply, nil
}
