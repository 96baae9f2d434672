package models

import "time"

// Comment is a sub-record appended to a post
// @Description Post comment
type Comment struct {
	ID        string    `json:"id" firestore:"id"`
	OwnerID   string    `json:"ownerId" firestore:"ownerId" example:"user@example.com"`
	OwnerName string    `json:"ownerName" firestore:"ownerName" example:"John Doe"`
	Text      string    `json:"text" firestore:"text" example:"Congrats on the new role!"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// Post represents a community feed post in Firestore
// @Description Community post
type Post struct {
	ID        string    `json:"id" firestore:"-"`
	OwnerID   string    `json:"ownerId" firestore:"ownerId" example:"user@example.com"`
	OwnerName string    `json:"ownerName" firestore:"ownerName" example:"John Doe"`
	Content   string    `json:"content" firestore:"content" example:"Just passed my mock interview!"`
	Image     string    `json:"image,omitempty" firestore:"image"`
	Likes     []string  `json:"likes" firestore:"likes"` // user ids, membership toggled
	Comments  []Comment `json:"comments" firestore:"comments"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// CreatePostRequest represents a new post
// @Description Create post request
type CreatePostRequest struct {
	Content string `json:"content" binding:"required" example:"Just passed my mock interview!"`
	Image   string `json:"image,omitempty"`
}

// CommentRequest represents a new comment on a post
// @Description Create comment request
type CommentRequest struct {
	Text string `json:"text" binding:"required" example:"Congrats!"`
}
