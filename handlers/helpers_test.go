package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestToggleLike(t *testing.T) {
	tests := []struct {
		name          string
		current       []string
		userID        string
		expectedLikes []string
		expectedLiked bool
	}{
		{
			name:          "first like appends",
			current:       []string{},
			userID:        "alice@example.com",
			expectedLikes: []string{"alice@example.com"},
			expectedLiked: false,
		},
		{
			name:          "second toggle removes",
			current:       []string{"alice@example.com"},
			userID:        "alice@example.com",
			expectedLikes: []string{},
			expectedLiked: true,
		},
		{
			name:          "other likes survive removal",
			current:       []string{"bob@example.com", "alice@example.com", "carol@example.com"},
			userID:        "alice@example.com",
			expectedLikes: []string{"bob@example.com", "carol@example.com"},
			expectedLiked: true,
		},
		{
			name:          "appends after others",
			current:       []string{"bob@example.com"},
			userID:        "alice@example.com",
			expectedLikes: []string{"bob@example.com", "alice@example.com"},
			expectedLiked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			likes, liked := toggleLike(tt.current, tt.userID)
			if liked != tt.expectedLiked {
				t.Errorf("liked = %v, expected %v", liked, tt.expectedLiked)
			}
			if len(likes) != len(tt.expectedLikes) {
				t.Fatalf("likes = %v, expected %v", likes, tt.expectedLikes)
			}
			for i := range likes {
				if likes[i] != tt.expectedLikes[i] {
					t.Fatalf("likes = %v, expected %v", likes, tt.expectedLikes)
				}
			}
		})
	}
}

func TestToggleLikePairIsIdentity(t *testing.T) {
	original := []string{"bob@example.com", "carol@example.com"}

	once, _ := toggleLike(original, "alice@example.com")
	twice, _ := toggleLike(once, "alice@example.com")

	if len(twice) != len(original) {
		t.Fatalf("double toggle changed the like set: %v", twice)
	}
	for i := range twice {
		if twice[i] != original[i] {
			t.Fatalf("double toggle changed the like set: %v", twice)
		}
	}
}

func TestHasApplied(t *testing.T) {
	applicants := []string{"alice@example.com", "bob@example.com"}

	if !hasApplied(applicants, "alice@example.com") {
		t.Error("hasApplied() missed an existing applicant")
	}
	if hasApplied(applicants, "carol@example.com") {
		t.Error("hasApplied() matched a non-applicant")
	}
	if hasApplied(nil, "alice@example.com") {
		t.Error("hasApplied() matched against a nil applicant list")
	}
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		query         string
		expectedPage  int
		expectedLimit int
	}{
		{name: "defaults", query: "", expectedPage: 1, expectedLimit: 10},
		{name: "explicit values", query: "page=3&limit=25", expectedPage: 3, expectedLimit: 25},
		{name: "zero page clamps", query: "page=0", expectedPage: 1, expectedLimit: 10},
		{name: "negative limit clamps", query: "limit=-5", expectedPage: 1, expectedLimit: 10},
		{name: "oversized limit clamps", query: "limit=5000", expectedPage: 1, expectedLimit: 10},
		{name: "non-numeric input", query: "page=abc&limit=xyz", expectedPage: 1, expectedLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, limit := pageParams(c)
			if page != tt.expectedPage {
				t.Errorf("page = %d, expected %d", page, tt.expectedPage)
			}
			if limit != tt.expectedLimit {
				t.Errorf("limit = %d, expected %d", limit, tt.expectedLimit)
			}
		})
	}
}
