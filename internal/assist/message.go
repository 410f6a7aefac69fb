package assist

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind identifies how a message body should be rendered.
type Kind string

const (
	KindPlainText Kind = "plain-text"
	KindRichText  Kind = "rich-text"
)

// Message represents a single turn in a conversation. Messages are
// immutable once created; the only mutation a session performs is append.
//
// A user message is always plain-text and never carries code. An assistant
// message is rich-text and may carry a code snippet the user can apply to
// the page editor.
type Message struct {
	Role      Role      `json:"role"`
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	Code      string    `json:"code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a plain-text user message.
func NewUserMessage(text string) Message {
	return Message{
		Role:      RoleUser,
		Kind:      KindPlainText,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates a rich-text assistant message. code may be
// empty when the reply carried no applicable snippet.
func NewAssistantMessage(text, code string) Message {
	return Message{
		Role:      RoleAssistant,
		Kind:      KindRichText,
		Text:      text,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// HasCode reports whether the message carries an applicable code snippet.
func (m Message) HasCode() bool {
	return m.Code != ""
}
