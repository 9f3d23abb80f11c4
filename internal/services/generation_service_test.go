package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fitmanager/internal/models"
)

type fakeInvoker struct {
	replies []string
	err     error
	calls   []models.History
}

func (f *fakeInvoker) Invoke(ctx context.Context, turns []models.Turn) (*models.ModelReply, error) {
	f.calls = append(f.calls, models.History(turns).Clone())
	if f.err != nil {
		return nil, f.err
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return &models.ModelReply{
		Text:  reply,
		Usage: models.Usage{InputTokens: 100, OutputTokens: 50},
	}, nil
}

func TestGenerationStart(t *testing.T) {
	invoker := &fakeInvoker{replies: []string{"Ecco l'analisi del cliente."}}
	service := NewGenerationService(invoker)

	history, usage, err := service.Start(context.Background(), "PROMPT INIZIALE")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(history))
	}
	if history[0].Role != models.RoleUser || history[0].Content != "PROMPT INIZIALE" {
		t.Error("Expected first turn to carry the initial prompt")
	}
	if history[1].Role != models.RoleAssistant || history[1].Content != "Ecco l'analisi del cliente." {
		t.Error("Expected second turn to carry the assistant reply")
	}
	if usage == nil || usage.OutputTokens != 50 {
		t.Errorf("Expected usage accounting, got %+v", usage)
	}
}

func TestGenerationStart_EmptyPrompt(t *testing.T) {
	service := NewGenerationService(&fakeInvoker{})

	var ve *ValidationError
	if _, _, err := service.Start(context.Background(), "  \n"); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for empty prompt, got %v", err)
	}
}

func TestGenerationStart_InvokeFailure(t *testing.T) {
	invoker := &fakeInvoker{err: fmt.Errorf("connection refused")}
	service := NewGenerationService(invoker)

	history, _, err := service.Start(context.Background(), "PROMPT")
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("Expected GenerationError, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history after failed start, got %d turns", len(history))
	}
}

func TestGenerationContinue(t *testing.T) {
	invoker := &fakeInvoker{replies: []string{"Modifica applicata."}}
	service := NewGenerationService(invoker)

	prior := models.History{
		{Role: models.RoleUser, Content: "PROMPT"},
		{Role: models.RoleAssistant, Content: "Programma v1"},
	}

	next, usage, err := service.Continue(context.Background(), prior, "Sostituisci lo squat")
	if err != nil {
		t.Fatalf("Continue failed: %v", err)
	}
	if len(next) != 4 {
		t.Fatalf("Expected 4 turns, got %d", len(next))
	}
	if next[2].Content != "Sostituisci lo squat" || next[3].Content != "Modifica applicata." {
		t.Error("Expected user turn then assistant turn appended")
	}
	if usage == nil {
		t.Error("Expected usage accounting")
	}
	// The caller's slice stays untouched.
	if len(prior) != 2 {
		t.Errorf("Expected input history to remain 2 turns, got %d", len(prior))
	}
}

func TestGenerationContinue_InvokeFailure(t *testing.T) {
	invoker := &fakeInvoker{err: fmt.Errorf("status 529")}
	service := NewGenerationService(invoker)

	prior := models.History{
		{Role: models.RoleUser, Content: "PROMPT"},
		{Role: models.RoleAssistant, Content: "Programma v1"},
	}

	next, _, err := service.Continue(context.Background(), prior, "Aggiungi una fase")
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("Expected GenerationError, got %v", err)
	}
	// The pending user turn survives so the caller can retry without
	// resending the message.
	if len(next) != 3 {
		t.Fatalf("Expected 3 turns after failed continue, got %d", len(next))
	}
	if next[2].Role != models.RoleUser || next[2].Content != "Aggiungi una fase" {
		t.Error("Expected the pending user turn at the end")
	}
}

func TestGenerationContinue_Validation(t *testing.T) {
	service := NewGenerationService(&fakeInvoker{replies: []string{"ok"}})
	ctx := context.Background()

	valid := models.History{
		{Role: models.RoleUser, Content: "a"},
		{Role: models.RoleAssistant, Content: "b"},
	}

	var ve *ValidationError
	if _, _, err := service.Continue(ctx, valid, ""); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for empty message, got %v", err)
	}
	if _, _, err := service.Continue(ctx, models.History{}, "msg"); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for empty history, got %v", err)
	}

	notAlternating := models.History{
		{Role: models.RoleUser, Content: "a"},
		{Role: models.RoleUser, Content: "b"},
	}
	if _, _, err := service.Continue(ctx, notAlternating, "msg"); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for non-alternating history, got %v", err)
	}

	endsWithUser := models.History{{Role: models.RoleUser, Content: "a"}}
	if _, _, err := service.Continue(ctx, endsWithUser, "msg"); !errors.As(err, &ve) {
		t.Errorf("Expected ValidationError for history ending with user turn, got %v", err)
	}
}

func TestGenerationCall_EmptyReply(t *testing.T) {
	invoker := &fakeInvoker{replies: []string{"   "}}
	service := NewGenerationService(invoker)

	_, _, err := service.Start(context.Background(), "PROMPT")
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Errorf("Expected GenerationError for blank reply, got %v", err)
	}
}
