package models

import "time"

// PersonalInfo holds the contact block of a resume
type PersonalInfo struct {
	FullName string `json:"fullName" firestore:"fullName" example:"John Doe"`
	Email    string `json:"email" firestore:"email" example:"john@example.com"`
	Phone    string `json:"phone" firestore:"phone" example:"+62 812 3456 7890"`
	Address  string `json:"address" firestore:"address" example:"Jakarta, Indonesia"`
	LinkedIn string `json:"linkedin" firestore:"linkedin" example:"linkedin.com/in/johndoe"`
	Website  string `json:"website" firestore:"website" example:"johndoe.dev"`
}

// Experience represents one work history entry
type Experience struct {
	Company     string `json:"company" firestore:"company" example:"Acme Corp"`
	Position    string `json:"position" firestore:"position" example:"Software Engineer"`
	StartDate   string `json:"startDate" firestore:"startDate" example:"2020-01"`
	EndDate     string `json:"endDate" firestore:"endDate" example:"2023-12"`
	Description string `json:"description" firestore:"description"`
}

// Education represents one education entry
type Education struct {
	Institution string `json:"institution" firestore:"institution" example:"University of Indonesia"`
	Degree      string `json:"degree" firestore:"degree" example:"B.Sc. Computer Science"`
	StartDate   string `json:"startDate" firestore:"startDate" example:"2016"`
	EndDate     string `json:"endDate" firestore:"endDate" example:"2020"`
	Description string `json:"description" firestore:"description"`
}

// ThemeConfig holds resume rendering preferences
type ThemeConfig struct {
	Color  string `json:"color" firestore:"color" example:"#000000"`
	Font   string `json:"font" firestore:"font" example:"Inter"`
	Layout string `json:"layout" firestore:"layout" example:"standard"`
}

// Resume represents a resume document in Firestore
// @Description Resume document
type Resume struct {
	ID           string       `json:"id" firestore:"-"`
	OwnerID      string       `json:"ownerId" firestore:"ownerId" example:"user@example.com"`
	Title        string       `json:"title" firestore:"title" example:"Backend Engineer CV"`
	PersonalInfo PersonalInfo `json:"personalInfo" firestore:"personalInfo"`
	Summary      string       `json:"summary" firestore:"summary"`
	Experience   []Experience `json:"experience" firestore:"experience"`
	Education    []Education  `json:"education" firestore:"education"`
	Skills       []string     `json:"skills" firestore:"skills" example:"Go,PostgreSQL"`
	ThemeConfig  ThemeConfig  `json:"themeConfig" firestore:"themeConfig"`
	ATSScore     int          `json:"atsScore" firestore:"atsScore" example:"75"`
	CreatedAt    time.Time    `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt" firestore:"updatedAt"`
}

// ResumeListItem is the projected list view of a resume
// @Description Resume list item
type ResumeListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" example:"Backend Engineer CV"`
	FullName  string    `json:"fullName" example:"John Doe"`
	ATSScore  int       `json:"atsScore" example:"75"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListItem projects a resume into its list view.
func (r *Resume) ListItem() ResumeListItem {
	return ResumeListItem{
		ID:        r.ID,
		Title:     r.Title,
		FullName:  r.PersonalInfo.FullName,
		ATSScore:  r.ATSScore,
		UpdatedAt: r.UpdatedAt,
	}
}

// EnhanceRequest represents an AI text enhancement request
// @Description Resume text enhancement request
type EnhanceRequest struct {
	Text string `json:"text" binding:"required" example:"responsible for backend services"`
	Type string `json:"type,omitempty" example:"experience description"`
}

// ResumeAnalysis is the structured ATS review of a resume
// @Description ATS analysis result
type ResumeAnalysis struct {
	Score        int      `json:"score" example:"75"`
	Strengths    []string `json:"strengths" example:"Good structure"`
	Improvements []string `json:"improvements" example:"Add more keywords"`
	Summary      string   `json:"summary" example:"Well organized, light on metrics."`
}
