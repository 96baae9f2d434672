package interview

import "testing"

func TestLookupPersona(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected bool
	}{
		{name: "friendly HR", id: "friendly-hr", expected: true},
		{name: "strict manager", id: "strict-manager", expected: true},
		{name: "English native", id: "english-native", expected: true},
		{name: "unknown persona", id: "chaotic-ceo", expected: false},
		{name: "empty id", id: "", expected: false},
		{name: "case sensitive", id: "Friendly-HR", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			persona, ok := LookupPersona(tt.id)
			if ok != tt.expected {
				t.Fatalf("LookupPersona(%q) ok = %v, expected %v", tt.id, ok, tt.expected)
			}
			if ok && (persona.SystemPrompt == "" || persona.OpeningLine == "") {
				t.Errorf("persona %q has empty prompt or opening line", tt.id)
			}
		})
	}
}

func TestPersonaIDs(t *testing.T) {
	ids := PersonaIDs()
	if len(ids) != 3 {
		t.Fatalf("PersonaIDs() returned %d ids, expected 3", len(ids))
	}
	for _, id := range ids {
		if _, ok := LookupPersona(id); !ok {
			t.Errorf("PersonaIDs() lists %q but LookupPersona rejects it", id)
		}
	}
}
