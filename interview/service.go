// Package interview owns the mock interview session lifecycle: persona
// selection, turn-taking against the text-generation collaborator, and
// end-of-interview feedback derivation.
package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cvmate/backend/models"
)

// Sentinel errors mapped to HTTP statuses by the handler layer.
var (
	// ErrInvalidPersona rejects a start request outside the persona set.
	ErrInvalidPersona = errors.New("invalid persona")
	// ErrForbidden rejects callers who do not own the session.
	ErrForbidden = errors.New("not the interview owner")
	// ErrCompleted rejects user turns on a completed session.
	ErrCompleted = errors.New("interview already ended")
	// ErrGenerator marks a collaborator failure on the per-turn path.
	ErrGenerator = errors.New("text generation unavailable")
)

// windowTurns is how many trailing turns accompany the system prompt in
// the context window sent to the collaborator. Older turns stay in
// stored history but drop out of the prompt.
const windowTurns = 10

// fallbackSummary is stored when feedback generation fails; the failure
// is absorbed and the session still completes.
const fallbackSummary = "Feedback generation failed. Your interview was saved, but automatic analysis is unavailable right now."

// Store is the persistence surface the session machine needs.
type Store interface {
	CreateInterview(ctx context.Context, interview *models.Interview) error
	GetInterview(ctx context.Context, id string) (*models.Interview, error)
	SaveInterview(ctx context.Context, interview *models.Interview) error
	ListInterviewsByOwner(ctx context.Context, ownerID string) ([]models.Interview, error)
}

// TextGenerator is the text-generation collaborator boundary.
type TextGenerator interface {
	// Chat returns the next assistant reply for a conversation window.
	Chat(ctx context.Context, turns []models.ChatTurn) (string, error)
	// Generate returns the raw reply for a one-shot prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service drives interview sessions. All dependencies are injected so
// tests can substitute deterministic fakes.
type Service struct {
	store     Store
	generator TextGenerator
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates an interview service
func NewService(store Store, generator TextGenerator, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// Start creates a new active session for the persona. The history is
// seeded with the persona's system prompt and its static opening line;
// no collaborator call happens here.
func (s *Service) Start(ctx context.Context, ownerID, personaID string) (*models.Interview, error) {
	persona, ok := LookupPersona(personaID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPersona, personaID)
	}

	now := s.now()
	interview := &models.Interview{
		OwnerID: ownerID,
		Persona: personaID,
		Status:  models.InterviewActive,
		ChatHistory: []models.ChatTurn{
			{Role: models.TurnSystem, Content: persona.SystemPrompt, Timestamp: now},
			{Role: models.TurnAssistant, Content: persona.OpeningLine, Timestamp: now},
		},
	}

	if err := s.store.CreateInterview(ctx, interview); err != nil {
		return nil, err
	}

	s.logger.Info("interview started",
		zap.String("interviewId", interview.ID),
		zap.String("persona", personaID))

	return interview, nil
}

// Get returns a session, enforcing ownership.
func (s *Service) Get(ctx context.Context, id, callerID string) (*models.Interview, error) {
	interview, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return interview, nil
}

// List returns the caller's sessions projected to their list view.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.InterviewSummary, error) {
	interviews, err := s.store.ListInterviewsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.InterviewSummary, 0, len(interviews))
	for i := range interviews {
		summaries = append(summaries, interviews[i].Summary())
	}
	return summaries, nil
}

// SendMessage appends the user turn, asks the collaborator for the next
// assistant reply over a bounded context window, and appends it.
//
// The user turn is persisted before the collaborator call. When the call
// fails the turn stays in history and ErrGenerator is returned; the
// caller retries with a fresh SendMessage.
func (s *Service) SendMessage(ctx context.Context, id, callerID, text string) (*models.Interview, error) {
	interview, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.OwnerID != callerID {
		return nil, ErrForbidden
	}
	if interview.Status != models.InterviewActive {
		return nil, ErrCompleted
	}

	interview.ChatHistory = append(interview.ChatHistory, models.ChatTurn{
		Role:      models.TurnUser,
		Content:   text,
		Timestamp: s.now(),
	})
	if err := s.store.SaveInterview(ctx, interview); err != nil {
		return nil, err
	}

	reply, err := s.generator.Chat(ctx, contextWindow(interview.ChatHistory))
	if err != nil {
		s.logger.Warn("interview turn generation failed",
			zap.String("interviewId", id),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerator, err)
	}

	interview.ChatHistory = append(interview.ChatHistory, models.ChatTurn{
		Role:      models.TurnAssistant,
		Content:   reply,
		Timestamp: s.now(),
	})
	if err := s.store.SaveInterview(ctx, interview); err != nil {
		return nil, err
	}

	return interview, nil
}

// End completes the session and derives feedback from the transcript.
//
// Idempotent: once feedback exists the stored record is returned
// unchanged and the collaborator is not consulted again. A failed or
// unparseable analysis is absorbed into a zero-score fallback; the
// session still transitions to completed.
func (s *Service) End(ctx context.Context, id, callerID string) (*models.Interview, error) {
	interview, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.OwnerID != callerID {
		return nil, ErrForbidden
	}
	if interview.Status == models.InterviewCompleted && interview.Feedback != nil {
		return interview, nil
	}

	feedback := s.deriveFeedback(ctx, interview)

	interview.Status = models.InterviewCompleted
	interview.Feedback = feedback
	if err := s.store.SaveInterview(ctx, interview); err != nil {
		return nil, err
	}

	s.logger.Info("interview completed",
		zap.String("interviewId", id),
		zap.Int("score", feedback.Score))

	return interview, nil
}

func (s *Service) deriveFeedback(ctx context.Context, interview *models.Interview) *models.Feedback {
	prompt := fmt.Sprintf(`You are an interview coach. Analyze this mock interview transcript and rate the candidate.
Return a JSON object with:
1. "score" (0-100)
2. "strengths" (array of strings)
3. "improvements" (array of strings)
4. "summary" (short overall feedback)

TRANSCRIPT:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, transcript(interview.ChatHistory))

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("feedback generation failed",
			zap.String("interviewId", interview.ID),
			zap.Error(err))
		return fallbackFeedback()
	}

	feedback, err := parseFeedback(reply)
	if err != nil {
		s.logger.Warn("feedback reply unparseable",
			zap.String("interviewId", interview.ID),
			zap.Error(err))
		return fallbackFeedback()
	}

	return feedback
}

// contextWindow is the prompt sent per turn: the system turn plus the
// last windowTurns turns of history.
func contextWindow(history []models.ChatTurn) []models.ChatTurn {
	if len(history) == 0 {
		return nil
	}

	start := len(history) - windowTurns
	if start < 1 {
		start = 1
	}

	window := make([]models.ChatTurn, 0, 1+len(history)-start)
	window = append(window, history[0])
	window = append(window, history[start:]...)
	return window
}

// transcript flattens all non-system turns into "ROLE: content" lines.
func transcript(history []models.ChatTurn) string {
	var sb strings.Builder
	for _, turn := range history {
		if turn.Role == models.TurnSystem {
			continue
		}
		sb.WriteString(strings.ToUpper(turn.Role))
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

func parseFeedback(reply string) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := json.Unmarshal([]byte(cleanJSON(reply)), &feedback); err != nil {
		return nil, fmt.Errorf("non-JSON feedback reply: %w", err)
	}

	// Missing keys come back as zero values; only bound the score.
	if feedback.Score < 0 {
		feedback.Score = 0
	}
	if feedback.Score > 100 {
		feedback.Score = 100
	}
	if feedback.Strengths == nil {
		feedback.Strengths = []string{}
	}
	if feedback.Improvements == nil {
		feedback.Improvements = []string{}
	}

	return &feedback, nil
}

func fallbackFeedback() *models.Feedback {
	return &models.Feedback{
		Score:        0,
		Strengths:    []string{},
		Improvements: []string{},
		Summary:      fallbackSummary,
	}
}

func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
