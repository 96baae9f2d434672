package storage

import (
	"testing"

	"github.com/cvmate/backend/models"
)

func TestJobMatches(t *testing.T) {
	job := &models.Job{
		Title:    "Senior Go Engineer",
		Company:  "Acme Corp",
		Location: "Jakarta, Indonesia",
	}

	tests := []struct {
		name     string
		search   string
		expected bool
	}{
		{name: "title substring", search: "go engineer", expected: true},
		{name: "company substring", search: "acme", expected: true},
		{name: "location substring", search: "jakarta", expected: true},
		{name: "case insensitive", search: "SENIOR", expected: true},
		{name: "no match", search: "rust", expected: false},
		{name: "description not searched", search: "kubernetes", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jobMatches(job, tt.search); got != tt.expected {
				t.Errorf("jobMatches(%q) = %v, expected %v", tt.search, got, tt.expected)
			}
		})
	}
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		page     int
		limit    int
		expected []int
	}{
		{name: "first page", page: 1, limit: 3, expected: []int{1, 2, 3}},
		{name: "middle page", page: 2, limit: 3, expected: []int{4, 5, 6}},
		{name: "partial last page", page: 3, limit: 3, expected: []int{7}},
		{name: "past the end", page: 4, limit: 3, expected: []int{}},
		{name: "whole set in one page", page: 1, limit: 100, expected: []int{1, 2, 3, 4, 5, 6, 7}},
		{name: "zero page defaults to one", page: 0, limit: 3, expected: []int{1, 2, 3}},
		{name: "zero limit defaults to ten", page: 1, limit: 0, expected: []int{1, 2, 3, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageSlice(items, tt.page, tt.limit)
			if len(got) != len(tt.expected) {
				t.Fatalf("pageSlice() returned %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("pageSlice() returned %v, expected %v", got, tt.expected)
				}
			}
		})
	}
}

func TestPageSliceEmpty(t *testing.T) {
	got := pageSlice([]string{}, 1, 10)
	if len(got) != 0 {
		t.Errorf("pageSlice() on empty input returned %v", got)
	}
}
