package prompt

import (
	"strings"

	"github.com/codepane-dev/codepane/internal/assist"
)

// Placeholders an instruction template may carry. Each is substituted
// exactly once per occurrence; absent values substitute as empty strings.
const (
	PlaceholderProblem  = "{{problem_statement}}"
	PlaceholderLanguage = "{{programming_language}}"
	PlaceholderCode     = "{{user_code}}"
)

// Compose builds the system instruction for a turn by substituting the
// page context and extracted editor code into the instruction template.
// No placeholder remains in the output. Pure and deterministic.
func Compose(instruction string, page assist.PageContext, code string) string {
	out := strings.ReplaceAll(instruction, PlaceholderProblem, page.ProblemStatement)
	out = strings.ReplaceAll(out, PlaceholderLanguage, page.ProgrammingLanguage)
	out = strings.ReplaceAll(out, PlaceholderCode, code)
	return out
}
