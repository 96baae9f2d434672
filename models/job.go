package models

import "time"

// Job represents a job posting in Firestore
// @Description Job posting
type Job struct {
	ID           string    `json:"id" firestore:"-"`
	Title        string    `json:"title" firestore:"title" example:"Backend Engineer"`
	Company      string    `json:"company" firestore:"company" example:"Acme Corp"`
	Location     string    `json:"location" firestore:"location" example:"Jakarta"`
	Type         string    `json:"type" firestore:"type" example:"Full-time"` // Full-time, Part-time, Remote, Contract
	Salary       string    `json:"salary,omitempty" firestore:"salary" example:"$100k - $120k"`
	Description  string    `json:"description" firestore:"description"`
	Requirements []string  `json:"requirements" firestore:"requirements"`
	Logo         string    `json:"logo,omitempty" firestore:"logo"`
	PostedAt     time.Time `json:"postedAt" firestore:"postedAt"`
	Applicants   []string  `json:"applicants" firestore:"applicants"` // user ids, each at most once
}

// CreateJobRequest represents a new job posting
// @Description Create job request
type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required" example:"Backend Engineer"`
	Company      string   `json:"company" binding:"required" example:"Acme Corp"`
	Location     string   `json:"location" binding:"required" example:"Jakarta"`
	Type         string   `json:"type" binding:"required" example:"Full-time"`
	Salary       string   `json:"salary,omitempty" example:"$100k - $120k"`
	Description  string   `json:"description" binding:"required"`
	Requirements []string `json:"requirements,omitempty"`
	Logo         string   `json:"logo,omitempty"`
}

// JobQuery holds list filters parsed from the query string
type JobQuery struct {
	Page   int
	Limit  int
	Search string // case-insensitive substring over title/company/location
	Type   string // exact match
}
