package interview

// Persona is a fixed interviewer personality: the system prompt that
// steers the model and the static opening line shown at session start.
type Persona struct {
	SystemPrompt string
	OpeningLine  string
}

// personas is the fixed configuration table. Membership here is the only
// validation rule for the persona chosen at start.
var personas = map[string]Persona{
	"friendly-hr": {
		SystemPrompt: "You are a friendly HR recruiter. Ask questions about culture fit, strengths, and weaknesses. Be encouraging and polite.",
		OpeningLine:  "Hi! Great to meet you. Let's keep this relaxed. Could you start by telling me a bit about yourself?",
	},
	"strict-manager": {
		SystemPrompt: "You are a strict hiring manager. Ask technical questions and case studies. Be concise, direct, and challenge the candidate's answers.",
		OpeningLine:  "Let's get started. Walk me through the most technically challenging project you have worked on.",
	},
	"english-native": {
		SystemPrompt: "You are an English native speaker conducting a language proficiency interview. Focus on grammar, vocabulary, and fluency. Correct mistakes politely.",
		OpeningLine:  "Hello! I'd like to assess your English today. To begin, please describe your current role in a few sentences.",
	},
}

// LookupPersona returns the persona configuration for an id.
func LookupPersona(id string) (Persona, bool) {
	p, ok := personas[id]
	return p, ok
}

// PersonaIDs lists the valid persona ids.
func PersonaIDs() []string {
	ids := make([]string, 0, len(personas))
	for id := range personas {
		ids = append(ids, id)
	}
	return ids
}
