package models

import "time"

// Notification types
const (
	NotifyLike     = "like"
	NotifyComment  = "comment"
	NotifyJobAlert = "job_alert"
	NotifySystem   = "system"
)

// Notification represents a user notification in Firestore
// @Description User notification
type Notification struct {
	ID          string    `json:"id" firestore:"-"`
	RecipientID string    `json:"recipientId" firestore:"recipientId" example:"bob@example.com"`
	SenderID    string    `json:"senderId,omitempty" firestore:"senderId"` // empty for system notifications
	Type        string    `json:"type" firestore:"type" example:"like"`
	Message     string    `json:"message" firestore:"message" example:"John Doe liked your post"`
	Link        string    `json:"link,omitempty" firestore:"link" example:"/community"`
	Read        bool      `json:"read" firestore:"read"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

// DashboardStats aggregates per-user record counts
// @Description Dashboard statistics
type DashboardStats struct {
	ResumeCount    int `json:"cvCount" example:"3"`
	PostCount      int `json:"postCount" example:"12"`
	ArticleCount   int `json:"articleCount" example:"1"`
	InterviewCount int `json:"interviewCount" example:"5"`
}
