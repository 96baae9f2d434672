package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cvmate/backend/models"
)

// fakeStore keeps interviews in a map and counts writes.
type fakeStore struct {
	interviews map[string]*models.Interview
	nextID     int
	saves      int
	createErr  error
	saveErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{interviews: map[string]*models.Interview{}}
}

func (f *fakeStore) CreateInterview(ctx context.Context, interview *models.Interview) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	interview.ID = fmt.Sprintf("iv-%d", f.nextID)
	interview.CreatedAt = time.Now()
	interview.UpdatedAt = interview.CreatedAt
	f.interviews[interview.ID] = cloneInterview(interview)
	return nil
}

func (f *fakeStore) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	interview, ok := f.interviews[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return cloneInterview(interview), nil
}

func (f *fakeStore) SaveInterview(ctx context.Context, interview *models.Interview) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.interviews[interview.ID] = cloneInterview(interview)
	return nil
}

func (f *fakeStore) ListInterviewsByOwner(ctx context.Context, ownerID string) ([]models.Interview, error) {
	var out []models.Interview
	for _, interview := range f.interviews {
		if interview.OwnerID == ownerID {
			out = append(out, *cloneInterview(interview))
		}
	}
	return out, nil
}

func cloneInterview(in *models.Interview) *models.Interview {
	out := *in
	out.ChatHistory = append([]models.ChatTurn(nil), in.ChatHistory...)
	if in.Feedback != nil {
		fb := *in.Feedback
		out.Feedback = &fb
	}
	return &out
}

// fakeGenerator returns canned replies and records the windows it saw.
type fakeGenerator struct {
	chatReply  string
	chatErr    error
	chatCalls  int
	lastWindow []models.ChatTurn
	genReply   string
	genErr     error
	genCalls   int
	lastPrompt string
}

func (f *fakeGenerator) Chat(ctx context.Context, turns []models.ChatTurn) (string, error) {
	f.chatCalls++
	f.lastWindow = append([]models.ChatTurn(nil), turns...)
	return f.chatReply, f.chatErr
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.genCalls++
	f.lastPrompt = prompt
	return f.genReply, f.genErr
}

func newTestService(store Store, generator TextGenerator) *Service {
	return NewService(store, generator, zap.NewNop())
}

func TestStartSeedsHistory(t *testing.T) {
	for _, personaID := range PersonaIDs() {
		t.Run(personaID, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestService(store, &fakeGenerator{})

			interview, err := svc.Start(context.Background(), "alice@example.com", personaID)
			if err != nil {
				t.Fatalf("Start() error: %v", err)
			}

			if interview.Status != models.InterviewActive {
				t.Errorf("status = %q, expected %q", interview.Status, models.InterviewActive)
			}
			if len(interview.ChatHistory) != 2 {
				t.Fatalf("history length = %d, expected 2", len(interview.ChatHistory))
			}

			persona, _ := LookupPersona(personaID)
			if interview.ChatHistory[0].Role != models.TurnSystem {
				t.Errorf("first turn role = %q, expected system", interview.ChatHistory[0].Role)
			}
			if interview.ChatHistory[0].Content != persona.SystemPrompt {
				t.Errorf("first turn content is not the persona system prompt")
			}
			if interview.ChatHistory[1].Role != models.TurnAssistant {
				t.Errorf("second turn role = %q, expected assistant", interview.ChatHistory[1].Role)
			}
			if interview.ChatHistory[1].Content != persona.OpeningLine {
				t.Errorf("second turn content is not the persona opening line")
			}
			if interview.Feedback != nil {
				t.Error("new interview should have no feedback")
			}
		})
	}
}

func TestStartInvalidPersona(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGenerator{})

	_, err := svc.Start(context.Background(), "alice@example.com", "chaotic-ceo")
	if !errors.Is(err, ErrInvalidPersona) {
		t.Fatalf("Start() error = %v, expected ErrInvalidPersona", err)
	}
}

func TestStartDoesNotCallGenerator(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestService(newFakeStore(), gen)

	if _, err := svc.Start(context.Background(), "alice@example.com", "friendly-hr"); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if gen.chatCalls != 0 || gen.genCalls != 0 {
		t.Errorf("Start() called the generator (chat=%d, generate=%d)", gen.chatCalls, gen.genCalls)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGenerator{})

	created, err := svc.Start(context.Background(), "alice@example.com", "friendly-hr")
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID, "alice@example.com"); err != nil {
		t.Errorf("owner Get() error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID, "mallory@example.com"); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign Get() error = %v, expected ErrForbidden", err)
	}
}

func TestSendMessageAppendsTwoTurns(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{chatReply: "Good, elaborate."}
	svc := newTestService(store, gen)

	created, _ := svc.Start(context.Background(), "alice@example.com", "strict-manager")

	updated, err := svc.SendMessage(context.Background(), created.ID, "alice@example.com", "I led a migration.")
	if err != nil {
		t.Fatalf("SendMessage() error: %v", err)
	}

	if len(updated.ChatHistory) != 4 {
		t.Fatalf("history length = %d, expected 4", len(updated.ChatHistory))
	}
	if updated.ChatHistory[2].Role != models.TurnUser || updated.ChatHistory[2].Content != "I led a migration." {
		t.Errorf("user turn not recorded: %+v", updated.ChatHistory[2])
	}
	if updated.ChatHistory[3].Role != models.TurnAssistant || updated.ChatHistory[3].Content != "Good, elaborate." {
		t.Errorf("assistant turn not recorded: %+v", updated.ChatHistory[3])
	}

	stored, _ := store.GetInterview(context.Background(), created.ID)
	if len(stored.ChatHistory) != 4 {
		t.Errorf("stored history length = %d, expected 4", len(stored.ChatHistory))
	}

	if len(gen.lastWindow) == 0 || gen.lastWindow[0].Role != models.TurnSystem {
		t.Errorf("generator window does not start with the system turn")
	}
	if last := gen.lastWindow[len(gen.lastWindow)-1]; last.Role != models.TurnUser {
		t.Errorf("generator window does not end with the user turn")
	}
}

func TestSendMessageGeneratorFailureKeepsUserTurn(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{chatErr: errors.New("quota exhausted")}
	svc := newTestService(store, gen)

	created, _ := svc.Start(context.Background(), "alice@example.com", "friendly-hr")

	_, err := svc.SendMessage(context.Background(), created.ID, "alice@example.com", "Hello?")
	if !errors.Is(err, ErrGenerator) {
		t.Fatalf("SendMessage() error = %v, expected ErrGenerator", err)
	}

	// The user turn survives the failure; a retry appends a fresh one.
	stored, _ := store.GetInterview(context.Background(), created.ID)
	if len(stored.ChatHistory) != 3 {
		t.Fatalf("stored history length = %d, expected 3 (user turn persisted)", len(stored.ChatHistory))
	}
	last := stored.ChatHistory[2]
	if last.Role != models.TurnUser || last.Content != "Hello?" {
		t.Errorf("persisted turn = %+v, expected the user turn", last)
	}

	gen.chatErr = nil
	gen.chatReply = "Welcome back."
	updated, err := svc.SendMessage(context.Background(), created.ID, "alice@example.com", "Hello again.")
	if err != nil {
		t.Fatalf("retry SendMessage() error: %v", err)
	}
	if len(updated.ChatHistory) != 5 {
		t.Errorf("history length after retry = %d, expected 5", len(updated.ChatHistory))
	}
}

func TestSendMessageRejectsCompleted(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{genReply: `{"score": 70, "strengths": [], "improvements": [], "summary": "ok"}`}
	svc := newTestService(store, gen)

	created, _ := svc.Start(context.Background(), "alice@example.com", "friendly-hr")
	if _, err := svc.End(context.Background(), created.ID, "alice@example.com"); err != nil {
		t.Fatalf("End() error: %v", err)
	}

	_, err := svc.SendMessage(context.Background(), created.ID, "alice@example.com", "One more thing.")
	if !errors.Is(err, ErrCompleted) {
		t.Fatalf("SendMessage() on completed session error = %v, expected ErrCompleted", err)
	}
}

func TestSendMessageForbidden(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGenerator{chatReply: "ok"})

	created, _ := svc.Start(context.Background(), "alice@example.com", "friendly-hr")

	_, err := svc.SendMessage(context.Background(), created.ID, "mallory@example.com", "Hi")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("SendMessage() error = %v, expected ErrForbidden", err)
	}
}

func TestContextWindowBounds(t *testing.T) {
	tests := []struct {
		name        string
		historyLen  int
		expectedLen int
	}{
		{name: "short history travels whole", historyLen: 5, expectedLen: 5},
		{name: "exactly at window", historyLen: 11, expectedLen: 11},
		{name: "long history is trimmed", historyLen: 30, expectedLen: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := make([]models.ChatTurn, tt.historyLen)
			history[0] = models.ChatTurn{Role: models.TurnSystem, Content: "prompt"}
			for i := 1; i < tt.historyLen; i++ {
				history[i] = models.ChatTurn{Role: models.TurnUser, Content: fmt.Sprintf("turn %d", i)}
			}

			window := contextWindow(history)
			if len(window) != tt.expectedLen {
				t.Fatalf("window length = %d, expected %d", len(window), tt.expectedLen)
			}
			if window[0].Role != models.TurnSystem {
				t.Errorf("window[0] role = %q, expected system", window[0].Role)
			}
			if last := window[len(window)-1]; last.Content != history[len(history)-1].Content {
				t.Errorf("window does not end with the newest turn")
			}
		})
	}
}

func TestEndParsesFeedback(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{
		chatReply: "Good, elaborate.",
		genReply:  "```json\n{\"score\": 80, \"strengths\": [\"clear answers\"], \"improvements\": [\"more detail\"], \"summary\": \"Solid interview.\"}\n```",
	}
	svc := newTestService(store, gen)

	created, _ := svc.Start(context.Background(), "alice@example.com", "strict-manager")
	if _, err := svc.SendMessage(context.Background(), created.ID, "alice@example.com", "I led a migration."); err != nil {
		t.Fatalf("SendMessage() error: %v", err)
	}

	ended, err := svc.End(context.Background(), created.ID, "alice@example.com")
	if err != nil {
		t.Fatalf("End() error: %v", err)
	}

	if ended.Status != models.InterviewCompleted {
		t.Errorf("status = %q, expected completed", ended.Status)
	}
	if ended.Feedback == nil {
		t.Fatal("expected feedback")
	}
	if ended.Feedback.Score != 80 {
		t.Errorf("score = %d, expected 80", ended.Feedback.Score)
	}
	if len(ended.Feedback.Strengths) != 1 || ended.Feedback.Strengths[0] != "clear answers" {
		t.Errorf("strengths = %v", ended.Feedback.Strengths)
	}
	if ended.Feedback.Summary != "Solid interview." {
		t.Errorf("summary = %q", ended.Feedback.Summary)
	}
	if !strings.Contains(gen.lastPrompt, "USER: I led a migration.") {
		t.Errorf("analysis prompt does not include the transcript")
	}
}

func TestEndIdempotent(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{genReply: `{"score": 65, "strengths": [], "improvements": [], "summary": "ok"}`}
	svc := newTestService(store, gen)

	created, _ := svc.Start(context.Background(), "alice@example.com", "friendly-hr")

	first, err := svc.End(context.Background(), created.ID, "alice@example.com")
	if err != nil {
		t.Fatalf("first End() error: %v", err)
	}
	second, err := svc.End(context.Background(), created.ID, "alice@example.com")
	if err != nil {
		t.Fatalf("second End() error: %v", err)
	}

	if gen.genCalls != 1 {
		t.Errorf("generator called %d times, expected exactly 1", gen.genCalls)
	}
	if second.Feedback == nil || first.Feedback == nil || second.Feedback.Score != first.Feedback.Score {
		t.Errorf("second End() returned different feedback")
	}
	if second.Status != models.InterviewCompleted {
		t.Errorf("status = %q, expected completed", second.Status)
	}
}

func TestEndFallbackOnGeneratorFailure(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{genErr: errors.New("backend down")}
	svc := newTestService(store, gen)

	created, _ := svc.Start(context.Background(), "alice@example.com", "friendly-hr")

	ended, err := svc.End(context.Background(), created.ID, "alice@example.com")
	if err != nil {
		t.Fatalf("End() error: %v", err)
	}

	if ended.Status != models.InterviewCompleted {
		t.Errorf("status = %q, expected completed even on feedback failure", ended.Status)
	}
	if ended.Feedback == nil {
		t.Fatal("expected fallback feedback")
	}
	if ended.Feedback.Score != 0 {
		t.Errorf("fallback score = %d, expected 0", ended.Feedback.Score)
	}
	if ended.Feedback.Summary != fallbackSummary {
		t.Errorf("fallback summary = %q", ended.Feedback.Summary)
	}
	if ended.Feedback.Strengths == nil || ended.Feedback.Improvements == nil {
		t.Error("fallback slices should be empty, not nil")
	}
}

func TestEndFallbackOnUnparseableReply(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{genReply: "I would rate this interview quite highly overall."}
	svc := newTestService(store, gen)

	created, _ := svc.Start(context.Background(), "alice@example.com", "friendly-hr")

	ended, err := svc.End(context.Background(), created.ID, "alice@example.com")
	if err != nil {
		t.Fatalf("End() error: %v", err)
	}
	if ended.Feedback == nil || ended.Feedback.Summary != fallbackSummary {
		t.Errorf("expected fallback feedback, got %+v", ended.Feedback)
	}
}

func TestEndForbidden(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeGenerator{})

	created, _ := svc.Start(context.Background(), "alice@example.com", "friendly-hr")

	_, err := svc.End(context.Background(), created.ID, "mallory@example.com")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("End() error = %v, expected ErrForbidden", err)
	}
}

func TestParseFeedbackClampsScore(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected int
	}{
		{name: "negative clamps to zero", reply: `{"score": -5, "summary": "x"}`, expected: 0},
		{name: "over 100 clamps to 100", reply: `{"score": 250, "summary": "x"}`, expected: 100},
		{name: "in range passes through", reply: `{"score": 55, "summary": "x"}`, expected: 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback, err := parseFeedback(tt.reply)
			if err != nil {
				t.Fatalf("parseFeedback() error: %v", err)
			}
			if feedback.Score != tt.expected {
				t.Errorf("score = %d, expected %d", feedback.Score, tt.expected)
			}
			if feedback.Strengths == nil || feedback.Improvements == nil {
				t.Error("missing arrays should decode to empty slices")
			}
		})
	}
}

func TestListProjectsSummaries(t *testing.T) {
	store := newFakeStore()
	gen := &fakeGenerator{chatReply: "Next question."}
	svc := newTestService(store, gen)

	created, _ := svc.Start(context.Background(), "alice@example.com", "friendly-hr")
	if _, err := svc.SendMessage(context.Background(), created.ID, "alice@example.com", "Hi!"); err != nil {
		t.Fatalf("SendMessage() error: %v", err)
	}
	if _, err := svc.Start(context.Background(), "bob@example.com", "strict-manager"); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	summaries, err := svc.List(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("List() returned %d summaries, expected 1", len(summaries))
	}
	if summaries[0].Turns != 4 {
		t.Errorf("turns = %d, expected 4", summaries[0].Turns)
	}
	if summaries[0].Persona != "friendly-hr" {
		t.Errorf("persona = %q", summaries[0].Persona)
	}
}

func TestTranscriptSkipsSystemTurn(t *testing.T) {
	history := []models.ChatTurn{
		{Role: models.TurnSystem, Content: "secret prompt"},
		{Role: models.TurnAssistant, Content: "Tell me about yourself."},
		{Role: models.TurnUser, Content: "I write Go."},
	}

	got := transcript(history)
	expected := "ASSISTANT: Tell me about yourself.\nUSER: I write Go.\n"
	if got != expected {
		t.Errorf("transcript() = %q, expected %q", got, expected)
	}
}
