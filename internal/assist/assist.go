// Package assist defines the core data model for codepane's conversation
// sessions: message turns, the session state machine's observable state,
// the page context prompts are grounded in, and the catalog of selectable
// chat models.
package assist

// ModelInfo represents information about a selectable chat model.
type ModelInfo struct {
	ID          string // Model identifier (e.g., "gpt-4o-mini")
	Description string // Human-readable description of the model
	IsDefault   bool   // Whether this is the default model
}

// DefaultModel is used when no model is configured or selected.
const DefaultModel = "gpt-4o-mini"

// models is the fixed set of models the assistant may talk to. The model
// picker and the --model flag are both validated against this list.
var models = []ModelInfo{
	{ID: "gpt-4o-mini", Description: "Fast, low-cost general model", IsDefault: true},
	{ID: "gpt-4o", Description: "General model with stronger reasoning"},
	{ID: "gpt-4.1-mini", Description: "Small 4.1-series model"},
	{ID: "gpt-4.1", Description: "Full 4.1-series model"},
	{ID: "o4-mini", Description: "Reasoning model for harder problems"},
}

// Models returns the catalog of selectable models.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(models))
	copy(out, models)
	return out
}

// SupportedModel reports whether id names a model from the catalog.
func SupportedModel(id string) bool {
	for _, m := range models {
		if m.ID == id {
			return true
		}
	}
	return false
}

// PageContext is the read-only page state a turn is grounded in.
// Both fields may be empty; composition substitutes empty strings.
type PageContext struct {
	ProblemStatement    string
	ProgrammingLanguage string
}
