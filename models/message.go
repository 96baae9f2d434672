package models

import "time"

// Message represents a direct message between two users in Firestore
// @Description Direct message
type Message struct {
	ID         string    `json:"id" firestore:"-"`
	SenderID   string    `json:"senderId" firestore:"senderId" example:"alice@example.com"`
	ReceiverID string    `json:"receiverId" firestore:"receiverId" example:"bob@example.com"`
	Content    string    `json:"content" firestore:"content" example:"Hi, saw your post about the Go role"`
	Read       bool      `json:"read" firestore:"read"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

// CreateMessageRequest represents a new direct message
// @Description Send message request
type CreateMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required" example:"bob@example.com"`
	Content    string `json:"content" binding:"required" example:"Hi there"`
}

// Conversation is one entry in the conversations list: the peer user
// reduced to display fields.
// @Description Conversation peer
type Conversation struct {
	UserID string `json:"userId" example:"bob@example.com"`
	Name   string `json:"name" example:"Bob"`
	Avatar string `json:"avatar,omitempty"`
}
