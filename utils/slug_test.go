package utils

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{name: "simple title", title: "Ten ATS mistakes to avoid", expected: "ten-ats-mistakes-to-avoid"},
		{name: "punctuation collapses", title: "Go, Rust & Python: a comparison!", expected: "go-rust-python-a-comparison"},
		{name: "leading and trailing noise", title: "  --Hello World--  ", expected: "hello-world"},
		{name: "digits survive", title: "Top 10 interview tips for 2026", expected: "top-10-interview-tips-for-2026"},
		{name: "already a slug", title: "already-a-slug", expected: "already-a-slug"},
		{name: "empty title", title: "", expected: ""},
		{name: "only punctuation", title: "!!!", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.title); got != tt.expected {
				t.Errorf("Slug(%q) = %q, expected %q", tt.title, got, tt.expected)
			}
		})
	}
}
