package models

import "time"

// Article categories
const (
	CategoryTipsCV        = "Tips CV"
	CategoryInterviewHack = "Interview Hack"
	CategoryMarketNews    = "Market News"
)

// ArticleCategories is the fixed category set for blog articles.
var ArticleCategories = []string{CategoryTipsCV, CategoryInterviewHack, CategoryMarketNews}

// Article represents a blog article in Firestore
// @Description Blog article
type Article struct {
	ID         string    `json:"id" firestore:"-"`
	AuthorID   string    `json:"authorId" firestore:"authorId" example:"admin@example.com"`
	AuthorName string    `json:"authorName" firestore:"authorName" example:"Jane Admin"`
	Title      string    `json:"title" firestore:"title" example:"Ten ATS mistakes to avoid"`
	Slug       string    `json:"slug" firestore:"slug" example:"ten-ats-mistakes-to-avoid"`
	Content    string    `json:"content" firestore:"content"`
	Category   string    `json:"category" firestore:"category" example:"Tips CV"`
	Summary    string    `json:"summary" firestore:"summary"`
	Image      string    `json:"image,omitempty" firestore:"image"`
	Views      int64     `json:"views" firestore:"views" example:"120"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// CreateArticleRequest represents a new article
// @Description Create article request
type CreateArticleRequest struct {
	Title    string `json:"title" binding:"required" example:"Ten ATS mistakes to avoid"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category,omitempty" example:"Tips CV"`
	Image    string `json:"image,omitempty"`
}

// UpdateArticleRequest represents a partial article update
// @Description Update article request
type UpdateArticleRequest struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
}

// ArticleQuery holds list filters parsed from the query string
type ArticleQuery struct {
	Page     int
	Limit    int
	Search   string // case-insensitive substring over title/content
	Category string // exact match
}
