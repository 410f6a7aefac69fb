// Package interpret parses raw completion replies into assistant messages.
package interpret

import (
	"encoding/json"
	"strings"

	"github.com/codepane-dev/codepane/internal/assist"
)

// structuredReply mirrors the JSON object the instruction template asks
// the model to emit.
type structuredReply struct {
	Output string `json:"output"`
	Code   string `json:"code"`
}

// Interpret converts raw reply text into an assistant message. It is a
// total function: a reply that does not parse as the structured object
// degrades to a rich-text message carrying the raw text verbatim, with no
// code. Only an empty reply produces no message, reported by ok=false.
func Interpret(raw string) (assist.Message, bool) {
	if strings.TrimSpace(raw) == "" {
		return assist.Message{}, false
	}

	var reply structuredReply
	if err := json.Unmarshal([]byte(raw), &reply); err == nil && reply.Output != "" {
		return assist.NewAssistantMessage(reply.Output, reply.Code), true
	}

	return assist.NewAssistantMessage(raw, ""), true
}
