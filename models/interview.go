package models

import "time"

// Chat turn roles
const (
	TurnSystem    = "system"
	TurnUser      = "user"
	TurnAssistant = "assistant"
)

// Interview statuses
const (
	InterviewActive    = "active"
	InterviewCompleted = "completed"
)

// ChatTurn is one entry in an interview's chat history
// @Description Single chat turn attributed to system, user or assistant
type ChatTurn struct {
	Role      string    `json:"role" firestore:"role" example:"assistant"`
	Content   string    `json:"content" firestore:"content" example:"Tell me about yourself."`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// Feedback is the end-of-interview analysis
// @Description Interview feedback produced at completion
type Feedback struct {
	Score        int      `json:"score" firestore:"score" example:"80"`
	Strengths    []string `json:"strengths" firestore:"strengths" example:"clarity"`
	Improvements []string `json:"improvements" firestore:"improvements" example:"depth"`
	Summary      string   `json:"summary" firestore:"summary" example:"Solid."`
}

// Interview represents a mock interview session in Firestore.
//
// chatHistory[0] is always the persona's system prompt and chatHistory[1]
// the static opening line; while the session is active, turns alternate
// user/assistant from index 2 on.
// @Description Mock interview session
type Interview struct {
	ID          string     `json:"id" firestore:"-"`
	OwnerID     string     `json:"ownerId" firestore:"ownerId" example:"user@example.com"`
	Persona     string     `json:"persona" firestore:"persona" example:"strict-manager"`
	ChatHistory []ChatTurn `json:"chatHistory" firestore:"chatHistory"`
	Status      string     `json:"status" firestore:"status" example:"active"`
	Feedback    *Feedback  `json:"feedback,omitempty" firestore:"feedback,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

// InterviewSummary is the projected list view of an interview: the full
// chat history is omitted, only the turn count travels.
// @Description Interview list item without chat history
type InterviewSummary struct {
	ID        string    `json:"id"`
	Persona   string    `json:"persona" example:"friendly-hr"`
	Status    string    `json:"status" example:"completed"`
	Turns     int       `json:"turns" example:"12"`
	Feedback  *Feedback `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary projects an interview into its list view.
func (i *Interview) Summary() InterviewSummary {
	return InterviewSummary{
		ID:        i.ID,
		Persona:   i.Persona,
		Status:    i.Status,
		Turns:     len(i.ChatHistory),
		Feedback:  i.Feedback,
		CreatedAt: i.CreatedAt,
	}
}

// StartInterviewRequest represents the start-interview request
// @Description Start interview request
type StartInterviewRequest struct {
	Persona string `json:"persona" binding:"required" example:"strict-manager"`
}

// InterviewMessageRequest represents a single user turn
// @Description Interview message request
type InterviewMessageRequest struct {
	Message string `json:"message" binding:"required" example:"I refactored a monolith"`
}
