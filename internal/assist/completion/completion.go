// Package completion is the transport boundary to the chat completion
// API. It sends an ordered message list and returns raw reply text; it
// never interprets the payload.
package completion

import "context"

// Roles a wire message may carry.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role/content pair on the wire.
type Message struct {
	Role    string
	Content string
}

// Client sends an ordered message list to the completion API and returns
// the raw text of the first choice. One outbound request per call, no
// retry. Implementations request structured (JSON) output from the model;
// interpreting that output is the caller's concern.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}
