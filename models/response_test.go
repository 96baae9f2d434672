package models

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		limit         int
		total         int
		expectedPage  int
		expectedLimit int
		expectedPages int
	}{
		{name: "exact division", page: 1, limit: 10, total: 40, expectedPage: 1, expectedLimit: 10, expectedPages: 4},
		{name: "partial last page", page: 2, limit: 10, total: 42, expectedPage: 2, expectedLimit: 10, expectedPages: 5},
		{name: "empty result set", page: 1, limit: 10, total: 0, expectedPage: 1, expectedLimit: 10, expectedPages: 0},
		{name: "single item", page: 1, limit: 10, total: 1, expectedPage: 1, expectedLimit: 10, expectedPages: 1},
		{name: "zero page defaults to one", page: 0, limit: 10, total: 5, expectedPage: 1, expectedLimit: 10, expectedPages: 1},
		{name: "zero limit defaults to ten", page: 1, limit: 0, total: 25, expectedPage: 1, expectedLimit: 10, expectedPages: 3},
		{name: "limit one", page: 3, limit: 1, total: 3, expectedPage: 3, expectedLimit: 1, expectedPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			if p.Page != tt.expectedPage {
				t.Errorf("Page = %d, expected %d", p.Page, tt.expectedPage)
			}
			if p.Limit != tt.expectedLimit {
				t.Errorf("Limit = %d, expected %d", p.Limit, tt.expectedLimit)
			}
			if p.Total != tt.total {
				t.Errorf("Total = %d, expected %d", p.Total, tt.total)
			}
			if p.Pages != tt.expectedPages {
				t.Errorf("Pages = %d, expected %d", p.Pages, tt.expectedPages)
			}
		})
	}
}

func TestEnvelopeHelpers(t *testing.T) {
	if r := OK("payload"); !r.Success || r.Data != "payload" || r.Message != "" {
		t.Errorf("OK() = %+v", r)
	}
	if r := OKMessage("done"); !r.Success || r.Message != "done" || r.Data != nil {
		t.Errorf("OKMessage() = %+v", r)
	}
	if r := Fail("boom"); r.Success || r.Message != "boom" {
		t.Errorf("Fail() = %+v", r)
	}
	p := NewPagination(1, 10, 3)
	if r := Paginated([]int{1, 2, 3}, p); !r.Success || r.Pagination != p {
		t.Errorf("Paginated() = %+v", r)
	}
}

func TestInterviewSummaryProjection(t *testing.T) {
	interview := &Interview{
		ID:      "iv-1",
		Persona: "friendly-hr",
		Status:  InterviewCompleted,
		ChatHistory: []ChatTurn{
			{Role: TurnSystem, Content: "prompt"},
			{Role: TurnAssistant, Content: "hello"},
			{Role: TurnUser, Content: "hi"},
		},
		Feedback: &Feedback{Score: 70},
	}

	summary := interview.Summary()
	if summary.ID != "iv-1" || summary.Persona != "friendly-hr" {
		t.Errorf("Summary() identity fields = %+v", summary)
	}
	if summary.Turns != 3 {
		t.Errorf("Turns = %d, expected 3", summary.Turns)
	}
	if summary.Feedback == nil || summary.Feedback.Score != 70 {
		t.Errorf("Feedback not carried through: %+v", summary.Feedback)
	}
}
